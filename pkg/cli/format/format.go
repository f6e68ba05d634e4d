// Package format provides colored CLI output helpers.
package format

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	headerColor  = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.Faint)
)

// Success prints a green success line.
func Success(format string, args ...interface{}) {
	successColor.Fprintf(os.Stdout, "✓ "+format+"\n", args...)
}

// Error prints a red error line to stderr.
func Error(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning line.
func Warning(format string, args ...interface{}) {
	warnColor.Fprintf(os.Stdout, "! "+format+"\n", args...)
}

// Header prints a bold section header.
func Header(format string, args ...interface{}) {
	headerColor.Fprintf(os.Stdout, format+"\n", args...)
}

// Dim prints a faint line.
func Dim(format string, args ...interface{}) {
	dimColor.Fprintf(os.Stdout, format+"\n", args...)
}

// Line prints a plain line.
func Line(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
