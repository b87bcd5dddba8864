package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireRecordPaths validates that at least one record path, directory or
// pattern is provided.
func RequireRecordPaths(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`requires at least 1 arg: <path|dir|glob>

Usage: %s

Example:
  %s ./records 'archive/**/*.xml'`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// RequireRecordFile validates that exactly one record file is provided.
func RequireRecordFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`accepts 1 arg(s), received 0: missing <record.xml>

Usage: %s

Example:
  %s ./records/scheda.xml`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
