package riverpass

import "testing"

func cursorFrame(x, y, width, dt float64) *FrameState {
	f := &FrameState{Width: width, Height: 600, Delta: dt}
	f.setPointer(x, y, false)
	return f
}

func TestPointerIndicatorDefaults(t *testing.T) {
	c := NewPointerIndicator(CursorConfig{})
	if c.Size() != 25 || c.Hovering() {
		t.Errorf("Size=%v Hovering=%v", c.Size(), c.Hovering())
	}
	if col := c.Color(); !approxEqual(col.R, 1, 1e-9) || !approxEqual(col.A, 0.5, 1e-9) {
		t.Errorf("Color = %+v", col)
	}
}

func TestPointerIndicatorMoveTo(t *testing.T) {
	c := NewPointerIndicator(CursorConfig{})
	c.MoveTo(100, 50)
	if c.X != 87.5 || c.Y != 37.5 {
		t.Errorf("position = (%v, %v), want (87.5, 37.5)", c.X, c.Y)
	}
	c.SetDeviceScale(2)
	c.MoveTo(100, 50)
	if c.X != 75 || c.Y != 25 {
		t.Errorf("scaled position = (%v, %v), want (75, 25)", c.X, c.Y)
	}
}

func TestPointerIndicatorHoverTransition(t *testing.T) {
	c := NewPointerIndicator(CursorConfig{})
	c.SetHovering(true)
	if !c.Hovering() {
		t.Fatal("logical state should flip immediately")
	}
	c.Update(cursorFrame(400, 300, 1024, 0.25))
	mid := c.Color()
	if mid.R <= 0 || mid.R >= 1 {
		t.Errorf("halfway R = %v, want between styles", mid.R)
	}
	c.Update(cursorFrame(400, 300, 1024, 0.25))
	if col := c.Color(); !approxEqual(col.R, 0, 1e-3) || !approxEqual(col.A, 0.5, 1e-3) {
		t.Errorf("after 0.5s Color = %+v, want hover style", col)
	}

	c.SetHovering(false)
	c.SetHovering(false)
	c.Update(cursorFrame(400, 300, 1024, 0.5))
	if col := c.Color(); !approxEqual(col.R, 1, 1e-3) {
		t.Errorf("back to default R = %v", col.R)
	}
}

func TestPointerIndicatorHidden(t *testing.T) {
	tests := []struct {
		name  string
		frame func() *FrameState
		want  bool
	}{
		{"desktop", func() *FrameState { return cursorFrame(10, 10, 1024, 0) }, false},
		{"narrow", func() *FrameState { return cursorFrame(10, 10, 700, 0) }, true},
		{"no pointer yet", func() *FrameState { return &FrameState{Width: 1024} }, true},
		{"touch", func() *FrameState {
			f := &FrameState{Width: 1024}
			f.setPointer(10, 10, true)
			return f
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPointerIndicator(CursorConfig{})
			c.Update(tt.frame())
			if c.Hidden() != tt.want {
				t.Errorf("Hidden = %v, want %v", c.Hidden(), tt.want)
			}
		})
	}
}

func TestPointerIndicatorHiddenUsesLogicalWidth(t *testing.T) {
	c := NewPointerIndicator(CursorConfig{})
	c.SetDeviceScale(2)
	c.Update(cursorFrame(10, 10, 1400, 0))
	if !c.Hidden() {
		t.Error("1400 surface px at scale 2 is 700 logical px and should hide")
	}
}
