package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Warning prints a warning message to standard error, highlighting the warning
// label if standard error is a color-capable terminal.
func Warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// Error prints an error message to standard error, highlighting the error
// label if standard error is a color-capable terminal.
func Error(err error) {
	fmt.Fprintln(color.Error, color.RedString("Error:"), err)
}

// Fatal prints an error message to standard error and then terminates the
// process with an error exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}
