package riverpass

import "github.com/hajimehoshi/ebiten/v2"

// PointerSample is one raw pointer reading in surface pixels.
type PointerSample struct {
	X, Y    float64
	Pressed bool
	Touch   bool
}

// PointerSource supplies raw pointer samples once per tick. ok is false
// while nothing is known about the pointer yet.
type PointerSource interface {
	Poll() (sample PointerSample, ok bool)
}

// ebitenPointer polls Ebitengine's mouse and touch state. The first touch
// wins over the mouse; after a touch ends the last touch position is kept
// until the mouse actually moves.
type ebitenPointer struct {
	touchIDs []ebiten.TouchID

	mouseX, mouseY int
	mouseSeen      bool
	last           PointerSample
	lastOK         bool
}

// NewEbitenPointer returns the hardware pointer source used by default.
func NewEbitenPointer() PointerSource {
	return &ebitenPointer{}
}

func (p *ebitenPointer) Poll() (PointerSample, bool) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(p.touchIDs[0])
		p.last = PointerSample{X: float64(tx), Y: float64(ty), Pressed: true, Touch: true}
		p.lastOK = true
		return p.last, true
	}

	mx, my := ebiten.CursorPosition()
	moved := !p.mouseSeen || mx != p.mouseX || my != p.mouseY
	p.mouseX, p.mouseY = mx, my
	p.mouseSeen = true
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if p.last.Touch && !moved {
		// Touch lifted; hold position.
		p.last.Pressed = false
		return p.last, p.lastOK
	}
	if !p.lastOK && mx == 0 && my == 0 && !pressed {
		// The cursor has not entered the window yet.
		return PointerSample{}, false
	}
	p.last = PointerSample{X: float64(mx), Y: float64(my), Pressed: pressed}
	p.lastOK = true
	return p.last, true
}

// processInput reads one pointer sample into the frame state. Injected
// samples take priority over the hardware source.
func (s *Scene) processInput() {
	sample, ok := s.popInjected()
	if !ok && s.pointer != nil {
		sample, ok = s.pointer.Poll()
	}
	s.pressedPrev = s.pressed
	if !ok {
		s.frame.clearMovement()
		s.pressed = false
		return
	}
	s.frame.setPointer(sample.X, sample.Y, sample.Touch)
	s.pressed = sample.Pressed
}

// justReleased reports a press-to-release transition this tick.
func (s *Scene) justReleased() bool {
	return s.pressedPrev && !s.pressed
}
