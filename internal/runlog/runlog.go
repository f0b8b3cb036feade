// Package runlog provides the human-readable progress log used by
// cmd/physarum, separate from the structured slog warnings the simulation
// packages emit directly.
package runlog

import (
	"fmt"
	"io"
)

// writer is the destination for log output; nil means stdout.
var writer io.Writer

// SetWriter sets the log output destination.
func SetWriter(w io.Writer) {
	writer = w
}

// Logf writes a formatted progress line.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if writer != nil {
		fmt.Fprintln(writer, msg)
	} else {
		fmt.Println(msg)
	}
}
