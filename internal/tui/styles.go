package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Symbols for visual feedback.
const (
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolWarning    = "!"
	SymbolArrowRight = "→"
	SymbolBullet     = "•"
)

// styles are bound to one renderer so color is decided per output stream.
type styles struct {
	title   lipgloss.Style
	key     lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
	value   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		key:     r.NewStyle().Foreground(ColorSecondary),
		success: r.NewStyle().Foreground(ColorSuccess),
		failure: r.NewStyle().Foreground(ColorError),
		warning: r.NewStyle().Foreground(ColorWarning),
		muted:   r.NewStyle().Foreground(ColorMuted),
		value:   r.NewStyle().Bold(true),
	}
}
