package tui

import (
	"os"

	"golang.org/x/term"
)

// EnvNonInteractive forces non-interactive mode when set to "1".
const EnvNonInteractive = "WIKIBASE_API_NON_INTERACTIVE"

// Mode represents the interaction mode of the command line.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether prompts may be shown.
//
// Returns ModeNonInteractive if:
//   - stdin or stdout is not a terminal
//   - WIKIBASE_API_NON_INTERACTIVE=1 is set
//   - CI is set
//   - NO_COLOR is set
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	if os.Getenv(EnvNonInteractive) == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive reports whether DetectMode returns ModeInteractive.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
