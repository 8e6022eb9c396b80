// Package ui provides terminal styling shared by the sysdash CLI commands.
//
// # Color
//
// ApplyColorMode honours --color (auto, always, never). In auto mode color
// is dropped when NO_COLOR is set or stdout is not a terminal, by switching
// lipgloss to the Ascii profile so every styled render is plain text.
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Advisories
//	ColorMuted     (gray)   - Secondary text, timing info
//
// # Spinner
//
// Headless commands that wait on several sampling ticks show progress
// with a Spinner:
//
//	s := ui.NewSpinner("Sampling")
//	s.Start()
//	// ... collect ...
//	s.Success() // or s.Fail()
package ui
