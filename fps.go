package riverpass

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget shows the current FPS and TPS in the top-left corner, refreshed
// about twice a second.
type fpsWidget struct {
	img        *ebiten.Image
	lastUpdate float64
	dirty      bool
}

func newFPSWidget() *fpsWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsWidget{img: ebiten.NewImage(100, 32), dirty: true}
}

func (w *fpsWidget) update(dt float64) {
	w.lastUpdate += dt
	if w.lastUpdate < 0.5 && !w.dirty {
		return
	}
	w.lastUpdate = 0
	w.dirty = false

	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// SetShowFPS toggles the FPS widget.
func (s *Scene) SetShowFPS(on bool) {
	s.showFPS = on
	if on && s.fps == nil {
		s.fps = newFPSWidget()
	}
}

func (s *Scene) drawFPS(screen *ebiten.Image) {
	if s.fps == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s.ui, s.ui)
	op.GeoM.Translate(8*s.ui, 8*s.ui)
	screen.DrawImage(s.fps.img, &op)
}
