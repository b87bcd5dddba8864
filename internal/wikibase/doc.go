// Package wikibase is a client for the Wikibase REST API and the MediaWiki
// Action API, limited to the calls record ingestion needs: connection check,
// item search by label, item creation, property lookup and creation, and
// statement creation.
//
// Every request uses HTTP basic authentication with credentials supplied by
// the caller; the client has no built-in credentials. Idempotent reads go
// through a retry.Executor; writes are sent exactly once.
package wikibase
