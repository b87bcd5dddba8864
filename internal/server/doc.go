// Package server exposes record validation and ingestion over HTTP.
//
// Routes:
//
//	GET  /                    liveness banner
//	GET  /health              health check
//	POST /validation          validate a record and ingest it as a new item
//	POST /validation/check    validate a record without touching the knowledge base
//	GET  /validation/schemas  registered resource types
//	GET  /metrics             Prometheus metrics, when enabled
//
// Record uploads are multipart forms with a "file" part and a
// "resource_type" field. Content failures are reported with status 200 and
// the validation body; operational failures use {"detail": "..."}.
package server
