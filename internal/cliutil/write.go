// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteList writes a titled, indented list, or nothing when items is empty.
func WriteList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	Writef(w, "%s (%d):\n", title, len(items))
	for _, item := range items {
		Writef(w, "  - %s\n", item)
	}
}
