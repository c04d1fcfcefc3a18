package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"tickos/internal/buildinfo"
)

// RunWindow starts a desktop window that displays the scheduler timeline.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	w, ht := h.tl.Size()
	ebiten.SetWindowTitle("tickos (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*2, ht*6)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	tlImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.h.tl.Size()
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.tlImg = ebiten.NewImage(w, h)
	}

	g.h.tl.SnapshotRGBA(g.img.Pix)
	g.tlImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.tlImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.tl.Size()
}
