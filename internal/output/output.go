// Package output formats command results for the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Stderr is where Error and Warning write. Tests replace it.
var Stderr io.Writer = os.Stderr

// Error prints a formatted error line to Stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR:")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a formatted warning line to Stderr.
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, warningStyle.Render("WARNING:")+" "+fmt.Sprintf(format, args...))
}

// Success renders s in the success colour.
func Success(s string) string {
	return successStyle.Render(s)
}

// Failure renders s in the error colour.
func Failure(s string) string {
	return errorStyle.Render(s)
}
