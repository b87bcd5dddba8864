package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/ppedin/wikibase-api/internal/cli"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(wbapi.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(wbapi.ExitCodeForError(err))
	}
}
