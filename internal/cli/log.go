// Package cli implements the dagcheck command-line interface.
//
// The CLI is built using cobra. It runs the HTTP service (serve) and
// classifies pipeline files locally (check). All commands support
// --verbose (-v) for debug-level logging via charmbracelet/log.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting that writes to w and
// filters messages at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
