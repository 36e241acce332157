package riverpass

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func newTestParallax(n int) (*Parallax, *FrameState) {
	frame := &FrameState{Width: 800, Height: 600}
	cam := NewCamera(Rect{Width: 800, Height: 600})
	return NewParallax(ParallaxConfig{}, frame, cam, make([]*ebiten.Image, n)), frame
}

func TestPlaneSize(t *testing.T) {
	tests := []struct {
		name         string
		viewW, viewH float64
		wantW, wantH float64
	}{
		{"wide viewport", 20, 5, 21.2, 21.2 / 1.77},
		{"tall viewport", 4, 8, 9.2 * 1.77, 9.2},
		{"square viewport", 10, 10, 11.2 * 1.77, 11.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := PlaneSize(tt.viewW, tt.viewH, 1.77, 1.2)
			if !approxEqual(w, tt.wantW, 1e-9) || !approxEqual(h, tt.wantH, 1e-9) {
				t.Errorf("PlaneSize = %v x %v, want %v x %v", w, h, tt.wantW, tt.wantH)
			}
			if !approxEqual(w/h, 1.77, 1e-9) {
				t.Errorf("aspect = %v, want 1.77", w/h)
			}
			if w < tt.viewW || h < tt.viewH {
				t.Error("plane does not cover the viewport")
			}
		})
	}
}

func TestParallaxTargets(t *testing.T) {
	p, _ := newTestParallax(4)
	if x, r := p.Targets(0, 1); x != 0 || r != 0 {
		t.Errorf("layer 0 target = %v, %v, want pinned", x, r)
	}
	x1, r1 := p.Targets(1, 0.5)
	if !approxEqual(x1, -0.1, 1e-12) || !approxEqual(r1, 0.0025, 1e-12) {
		t.Errorf("layer 1 = %v, %v", x1, r1)
	}
	prevX, prevR := 0.0, 0.0
	for i := 1; i < 4; i++ {
		x, r := p.Targets(i, 0.5)
		if math.Abs(x) <= math.Abs(prevX) || math.Abs(r) <= math.Abs(prevR) {
			t.Errorf("layer %d displacement not increasing: %v, %v", i, x, r)
		}
		prevX, prevR = x, r
	}
}

func TestParallaxConverges(t *testing.T) {
	p, _ := newTestParallax(4)
	p.Step(0.8, 0)
	if p.Layers[0].X != 0 || p.Layers[0].RotationZ != 0 {
		t.Error("layer 0 moved")
	}
	tx, _ := p.Targets(3, 0.8)
	if !approxEqual(p.Layers[3].X, tx*0.025, 1e-12) {
		t.Errorf("first step X = %v, want %v", p.Layers[3].X, tx*0.025)
	}
	for i := 0; i < 2000; i++ {
		p.Step(0.8, 0)
	}
	if !p.Settled(0.8, 1e-9) {
		t.Error("layers did not converge")
	}
	if p.Ticks() != 2001 {
		t.Errorf("Ticks = %d", p.Ticks())
	}
}

func TestParallaxDriftsCamera(t *testing.T) {
	p, _ := newTestParallax(2)
	p.Step(0, math.Pi/2)
	if !approxEqual(p.Camera.X, 1.0/15, 1e-12) || !approxEqual(p.Camera.Y, 0, 1e-12) {
		t.Errorf("camera = %v, %v", p.Camera.X, p.Camera.Y)
	}

	cfg := DefaultParallaxConfig()
	cfg.NoDrift = true
	still := NewParallax(cfg, &FrameState{}, NewCamera(Rect{Width: 10, Height: 10}), nil)
	still.Step(0, 1)
	if still.Camera.X != 0 || still.Camera.Y != 0 {
		t.Error("NoDrift camera moved")
	}
}

func TestParallaxScheduled(t *testing.T) {
	p, frame := newTestParallax(3)
	s := NewFrameScheduler()
	p.Start(s)
	p.Start(s)
	if s.Pending() != 1 || !p.Running() {
		t.Fatalf("Pending = %d, want 1", s.Pending())
	}
	frame.setPointer(800, 300, false)
	for i := 0; i < 10; i++ {
		s.Tick(time.Duration(i) * 16 * time.Millisecond)
	}
	if p.Ticks() != 10 {
		t.Errorf("Ticks = %d, want 10", p.Ticks())
	}
	if p.Layers[2].X >= 0 {
		t.Errorf("pointer right should move layers left, X = %v", p.Layers[2].X)
	}
	p.Stop()
	s.Tick(time.Second)
	if p.Ticks() != 10 || p.Running() {
		t.Error("Stop did not cancel the loop")
	}
}
