// Package scanner discovers XML records for batch validation.
//
// Each argument is one of:
//   - a file path, returned as is whatever its extension
//   - a directory, walked recursively for files with the record extension
//   - a doublestar pattern such as records/**/*.xml, matched against files only
//
// The scanner reads through io/fs, so production code uses the OS filesystem
// and tests use fstest.MapFS.
package scanner
