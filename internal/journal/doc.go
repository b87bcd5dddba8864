// Package journal records a transcript of every ingest run.
//
// Remote writes to Wikibase are not transactional: once an item exists, a
// rejected statement leaves it partially populated. The journal keeps an
// append-only record of what was written (run start, item creation, each
// statement, failure, completion) so an operator can find and repair such
// items.
//
// Backends:
//   - File: JSON Lines appended to a local file
//   - Postgres: rows in the ingest_journal table
//   - Null: discards events
//   - Memory: keeps events in memory, used by tests and dry runs
package journal
