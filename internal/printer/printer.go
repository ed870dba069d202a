// Package printer formats CLI status output with color.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	green.Printf("✓ %s", fmt.Sprintf(format, a...))
}

// Failure prints a failure message in red with a cross prefix
func Failure(format string, a ...any) {
	red.Printf("✗ %s", fmt.Sprintf(format, a...))
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Warning prints a warning message in yellow
func Warning(format string, a ...any) {
	yellow.Printf("⚠ %s", fmt.Sprintf(format, a...))
}

// Step prints a step message with emphasis (used in multi-step operations)
func Step(format string, a ...any) {
	cyan.Printf("→ %s", fmt.Sprintf(format, a...))
}

// Error prints a title to stderr in red and returns a matching error for
// Cobra (not printed again thanks to SilenceErrors)
func Error(title string, explanation string) error {
	red.Fprintf(os.Stderr, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(os.Stderr, "%s\n", explanation)
	}
	return fmt.Errorf("%s", title)
}

// Println prints a plain message (for output that doesn't need coloring)
func Println(a ...any) {
	fmt.Println(a...)
}

// Printf prints a plain formatted message (for output that doesn't need coloring)
func Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}
