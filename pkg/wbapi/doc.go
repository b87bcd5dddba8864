// Package wbapi holds the public contracts shared by the validation engine,
// the ingest pipeline and the command line: sentinel errors, exit codes,
// defaults, the Logger interface and the retry interfaces.
package wbapi
