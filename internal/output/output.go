// Package output provides styled terminal output for the CLI commands.
// Everything goes to stderr so stdout stays clean for rendered context and
// MCP framing.
package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Title prints a bold heading.
func Title(format string, args ...any) {
	fmt.Fprintln(os.Stderr, titleStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a completed-operation message.
func Success(format string, args ...any) {
	fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints a failure that needs user attention.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a non-fatal finding.
func Warn(format string, args ...any) {
	fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf(format, args...)))
}

// Dim prints secondary detail.
func Dim(format string, args ...any) {
	fmt.Fprintln(os.Stderr, dimStyle.Render(fmt.Sprintf(format, args...)))
}
