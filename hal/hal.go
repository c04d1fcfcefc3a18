// Package hal is the host platform layer: the periodic tick source that
// drives the kernel clock, a line logger, and the desktop window that
// displays the scheduler timeline.
package hal

import (
	"bytes"
	"io"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Time is a periodic tick source. Each value on the channel is a
// monotonically increasing sequence number; consumers treat every receive as
// one timer interrupt.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is the platform surface the demo app runs against.
type HAL interface {
	Logger() Logger
	Time() Time
	Timeline() *Timeline
}

// Writer adapts a Logger to io.Writer for log libraries that expect one.
// Each Write call carries one line; a trailing newline is stripped because
// WriteLineBytes appends its own.
func Writer(l Logger) io.Writer { return loggerWriter{l: l} }

type loggerWriter struct {
	l Logger
}

func (w loggerWriter) Write(p []byte) (int, error) {
	w.l.WriteLineBytes(bytes.TrimRight(p, "\n"))
	return len(p), nil
}
