// Package detect locates bibliographic fields in parsed records.
//
// Every field is described by a Rule: a primary container location, an
// optional legacy container location, item patterns evaluated inside each
// container, and an extraction Strategy. A single generic evaluator runs all
// rules, so adding a field means adding a table row.
//
// Evaluation order for one rule:
//
//  1. Primary containers are selected; those lying inside the rule's legacy
//     region (for example sourceDesc) are discarded.
//  2. Legacy containers are selected; those lying inside a primary container
//     are discarded, so no element is visited twice.
//  3. Item patterns run relative to each container. An element reached more
//     than once is kept once.
//  4. Values are extracted, trimmed, emptied values dropped and duplicates
//     removed by exact string comparison, keeping first occurrence order.
//
// Patterns are written once with the "ns:" alias. The alias-free variant is
// derived by stripping the alias and is used for documents whose root has no
// namespace.
package detect
