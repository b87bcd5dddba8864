// Package ingest orchestrates record validation and Wikibase ingestion.
//
// The pipeline runs in fixed stages and stops at the first failing one:
//
//  1. Resource type lookup (unknown type is an error, nothing is parsed)
//  2. Well-formedness (a syntax error is returned as the only diagnostic)
//  3. Schema validation (every missing mandatory field is reported)
//  4. Full detection sweep over the resource type's fields
//  5. Remote checks: connection and duplicate label
//  6. Plan: property datatypes and referenced items are resolved
//  7. Apply: the item is created, then one statement per planned value
//
// Content problems come back as a validation.Result with a nil error.
// Lookup and remote problems come back as errors wrapping a wbapi sentinel.
// Planning before creation leaves statement writes as the only remote calls
// that can fail once the item exists; every write is recorded in the journal.
package ingest
