package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DelimiterLine is a line of dashes used to delimit sections of console
// output.
var DelimiterLine = strings.Repeat("-", statusLineWidth)

// StatusLinePrinter provides printing facilities for dynamically updating
// status lines in the console. It supports colorized printing.
type StatusLinePrinter struct {
	// UseStandardError causes the printer to use standard error for its output
	// instead of standard output (the default).
	UseStandardError bool
	// nonEmpty indicates whether or not the printer has printed any non-empty
	// content to the status line.
	nonEmpty bool
}

// stream returns the output stream that the printer should use. Both choices
// are routed through the color package so that color escape sequences are
// handled correctly on all platforms - in all other respects they behave just
// like their os counterparts.
func (p *StatusLinePrinter) stream() io.Writer {
	if p.UseStandardError {
		return color.Error
	}
	return color.Output
}

// Print prints a message to the status line, overwriting any existing content.
// Color escape sequences are supported. Messages will be truncated to a
// platform-dependent maximum length and padded appropriately.
func (p *StatusLinePrinter) Print(message string) {
	// Print the message, prefixed with a carriage return to wipe out the
	// previous line (if any) and truncated or right-padded with spaces to the
	// status line width so that the cursor stays parked at a stable column.
	// TODO: We should probably try to detect the console width.
	fmt.Fprintf(p.stream(), "\r%-*.*s", statusLineWidth, statusLineWidth, message)

	// Update our non-empty status. We're always non-empty after printing
	// because we print padding as well.
	p.nonEmpty = true
}

// Clear clears any content on the status line and moves the cursor back to the
// beginning of the line.
func (p *StatusLinePrinter) Clear() {
	// If there's no content on the status line, then there's nothing to do.
	if !p.nonEmpty {
		return
	}

	// Wipe out any existing content and return the cursor to the beginning of
	// the line.
	fmt.Fprintf(p.stream(), "\r%-*.*s\r", statusLineWidth, statusLineWidth, "")

	// Update our non-empty status.
	p.nonEmpty = false
}

// BreakIfNonEmpty prints a newline character if the current line is non-empty.
func (p *StatusLinePrinter) BreakIfNonEmpty() {
	// If the status line contents are non-empty, then print a newline and mark
	// ourselves as empty.
	if p.nonEmpty {
		fmt.Fprintln(p.stream())
		p.nonEmpty = false
	}
}
