// Package xmldoc parses bibliographic records into immutable trees.
//
// The Checker performs the single parse a record goes through: a parse
// failure becomes a one-error validation.Result, a success yields a Document
// that the detection engine reuses. Each Document carries the namespace
// context resolved from its root element, so every detector evaluated against
// it agrees on whether namespace aliases apply.
package xmldoc
