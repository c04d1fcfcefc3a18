package hal

import (
	"image/color"
	"sync"
)

// Timeline is a scrolling thread-state strip: one column per kernel tick,
// one row per thread, newest column at the right edge. The app pushes
// columns; the window snapshots pixels once per frame.
type Timeline struct {
	mu    sync.Mutex
	w, h  int
	cells []color.RGBA // w*h, row-major, col indexes the ring seam
	col   int          // next column to overwrite
}

// NewTimeline allocates a strip of w history columns and h thread rows.
func NewTimeline(w, h int) *Timeline {
	return &Timeline{w: w, h: h, cells: make([]color.RGBA, w*h)}
}

// Size returns the strip dimensions in cells.
func (tl *Timeline) Size() (w, h int) { return tl.w, tl.h }

// Push writes one column of per-thread colors and advances the cursor.
// Missing rows are cleared.
func (tl *Timeline) Push(rows []color.RGBA) {
	tl.mu.Lock()
	for y := 0; y < tl.h; y++ {
		var c color.RGBA
		if y < len(rows) {
			c = rows[y]
		}
		tl.cells[y*tl.w+tl.col] = c
	}
	tl.col = (tl.col + 1) % tl.w
	tl.mu.Unlock()
}

// SnapshotRGBA renders the strip into dst (len >= w*h*4), unrolling the ring
// so the oldest column lands at x=0.
func (tl *Timeline) SnapshotRGBA(dst []byte) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for y := 0; y < tl.h; y++ {
		for x := 0; x < tl.w; x++ {
			c := tl.cells[y*tl.w+(tl.col+x)%tl.w]
			i := (y*tl.w + x) * 4
			dst[i+0] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = 0xFF
		}
	}
}
