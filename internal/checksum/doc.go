// Package checksum computes record digests recorded in the ingest journal.
//
// Two digests are produced per record:
//
//   - Raw digest: SHA-256 of the exact bytes received
//   - Normalized digest: SHA-256 after removing XML comments and collapsing
//     insignificant whitespace, so a reformatted copy of a record keeps its
//     identity
//
// # Normalization Strategy
//
//  1. Remove XML comments (<!-- ... -->), leaving CDATA sections untouched
//  2. Drop whitespace-only runs between a closing '>' and the next '<'
//  3. Collapse every other whitespace run to a single space
//  4. Trim leading/trailing whitespace
//
// Case is preserved; XML names and values are case-sensitive.
//
// # Example Usage
//
//	calculator := checksum.New()
//	d := calculator.Digest(content)
//	fmt.Println(d.Raw, d.Normalized)
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
