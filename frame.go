package riverpass

import "time"

// Clock is a monotonic time source. Now returns the time elapsed since an
// arbitrary fixed origin and never decreases.
type Clock interface {
	Now() time.Duration
}

// systemClock measures time since its creation using the runtime's monotonic
// clock reading.
type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock backed by time.Since.
func NewSystemClock() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock is a Clock advanced explicitly. Useful for deterministic
// playback and tests.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// PointerState is the most recent pointer sample.
type PointerState struct {
	// X and Y are viewport pixel coordinates, origin top-left.
	X, Y float64
	// NDC holds normalized device coordinates in [-1, 1]; Y points up.
	NDC Vec2
	// DX and DY are the pixel movement since the previous tick.
	DX, DY float64
	// Moved reports whether the pointer moved this tick.
	Moved bool
	// Touch reports whether the latest sample came from a touch screen.
	Touch bool
	// Seen is false until the first sample arrives.
	Seen bool
}

// FrameState is the per-tick state shared by every component. The scene
// writes it once at the start of each tick; components only read it.
type FrameState struct {
	// Now is the clock reading for this tick.
	Now time.Duration
	// Elapsed is Now in seconds.
	Elapsed float64
	// Delta is the time since the previous tick in seconds.
	Delta float64
	// Frame counts ticks since the scene started.
	Frame uint64
	// Width and Height are the render surface size in pixels.
	Width, Height float64
	// Pointer is the latest pointer sample.
	Pointer PointerState
}

// advance records a new tick at now. The first tick has a zero delta.
func (f *FrameState) advance(now time.Duration) {
	if f.Frame > 0 && now > f.Now {
		f.Delta = (now - f.Now).Seconds()
	} else {
		f.Delta = 0
	}
	f.Now = now
	f.Elapsed = now.Seconds()
	f.Frame++
}

// setPointer stores a pointer sample in pixels and derives NDC and movement.
func (f *FrameState) setPointer(x, y float64, touch bool) {
	p := &f.Pointer
	if p.Seen {
		p.DX, p.DY = x-p.X, y-p.Y
	} else {
		p.DX, p.DY = 0, 0
	}
	p.Moved = p.Seen && (p.DX != 0 || p.DY != 0)
	p.X, p.Y = x, y
	p.Touch = touch
	p.Seen = true
	p.NDC = toNDC(x, y, f.Width, f.Height)
}

// clearMovement resets the per-tick movement when no sample arrived.
func (f *FrameState) clearMovement() {
	f.Pointer.DX, f.Pointer.DY = 0, 0
	f.Pointer.Moved = false
}

// toNDC maps pixel coordinates to [-1, 1] with Y up. A zero-sized surface
// maps everything to the origin.
func toNDC(x, y, w, h float64) Vec2 {
	if w <= 0 || h <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: Clamp(x/w*2-1, -1, 1),
		Y: Clamp(-(y/h*2 - 1), -1, 1),
	}
}
