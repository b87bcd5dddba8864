// Package validation holds the outcome model shared by the well-formedness
// checker, the schema registry and the transport layer.
//
// A Result is built through a Builder and never changes afterwards. It is
// valid exactly when it carries no errors.
package validation
