package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// timelineCols is the number of history ticks the window shows.
const timelineCols = 512

// timelineRows bounds the number of threads the window can display.
const timelineRows = 64

type hostHAL struct {
	logger *hostLogger
	t      *hostTime
	tl     *Timeline
}

// New returns a host HAL implementation.
func New() HAL {
	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		t:      newHostTime(),
		tl:     NewTimeline(timelineCols, timelineRows),
	}
}

func (h *hostHAL) Logger() Logger      { return h.logger }
func (h *hostHAL) Time() Time          { return h.t }
func (h *hostHAL) Timeline() *Timeline { return h.tl }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
