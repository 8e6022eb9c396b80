package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by --color / ui.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ShouldDisableColor reports whether color output should be suppressed:
// NO_COLOR is set (any value, per https://no-color.org/) or stdout is not
// a terminal.
func ShouldDisableColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	fd := os.Stdout.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// ApplyColorMode configures the global lipgloss renderer for mode and
// returns whether color ended up enabled. Unknown modes behave like auto.
func ApplyColorMode(mode string) bool {
	switch mode {
	case ColorNever:
		DisableColors()
		return false
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
		return true
	default:
		if ShouldDisableColor() {
			DisableColors()
			return false
		}
		return true
	}
}

// DisableColors switches lipgloss to the Ascii profile so every Render
// produces plain text.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
