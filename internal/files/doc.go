// Package files groups record discovery on disk.
//
// Sub-packages:
//   - scanner: expands files, directories and doublestar globs into records
//   - watcher: reports changed records under watched directories
//
// # Usage
//
//	s := scanner.NewOSScanner(checksum.New())
//	records, err := s.Scan("records/**/*.xml", "extra/one.xml")
package files
