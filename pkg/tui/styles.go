package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor    = lipgloss.Color("#6c6c6c")
	TextColor   = lipgloss.Color("#e0e0e0")
	AccentColor = lipgloss.Color("#7aa2f7")
	ErrorColor  = lipgloss.Color("#f7768e")
	OKColor     = lipgloss.Color("#9ece6a")
)

// Status line styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(OKColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	HintStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	TargetStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)
)

// Status prefixes
const (
	SuccessPrefix = "✓ "
	ErrorPrefix   = "✗ "
	HintPrefix    = "  "
)

// Success formats a completed action, e.g. "✓ wrote request.sh".
func Success(msg string) string {
	return SuccessStyle.Render(SuccessPrefix + msg)
}

// Failure formats an error line.
func Failure(err error) string {
	return ErrorStyle.Render(ErrorPrefix + err.Error())
}

// Hint formats a dimmed follow-up line.
func Hint(msg string) string {
	return HintStyle.Render(HintPrefix + msg)
}

// Path highlights a file path inside a status line.
func Path(p string) string {
	return PathStyle.Render(p)
}
