package riverpass

import "math"

// Camera projects the z=0 world plane onto the screen the way a perspective
// camera looking down -Z would: world units, Y up, centered on (X, Y).
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// FOV is the vertical field of view in degrees. Default 75.
	FOV float64
	// Distance is how far the camera sits from the z=0 plane. Default 5.
	Distance float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// NewCamera creates a camera with default lens settings for the given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		FOV:      75,
		Distance: 5,
		Viewport: viewport,
		dirty:    true,
	}
}

// Drift applies the idle Lissajous motion for elapsed seconds t.
func (c *Camera) Drift(t float64) {
	c.X = math.Sin(t) / 15
	c.Y = math.Cos(t) / 20
	c.dirty = true
}

// SetViewport changes the screen rectangle (e.g. after a resize).
func (c *Camera) SetViewport(vp Rect) {
	if vp != c.Viewport {
		c.Viewport = vp
		c.dirty = true
	}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// VisibleSize returns the world-space width and height seen at z=0.
func (c *Camera) VisibleSize() (w, h float64) {
	h = 2 * math.Tan(c.FOV*math.Pi/360) * c.Distance
	if c.Viewport.Height <= 0 {
		return 0, h
	}
	return h * c.Viewport.Width / c.Viewport.Height, h
}

// PixelsPerUnit returns how many screen pixels one world unit spans at z=0.
func (c *Camera) PixelsPerUnit() float64 {
	_, h := c.VisibleSize()
	if h <= 0 {
		return 0
	}
	return c.Viewport.Height / h
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(ppu, -ppu) * Translate(-X, -Y)
// where cx, cy = viewport center. The negative Y scale flips world Y-up into
// screen Y-down.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	s := c.PixelsPerUnit()

	c.viewMatrix = [6]float64{s, 0, 0, -s, cx - s*c.X, cy + s*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	sx, sy = transformPoint(c.viewMatrix, wx, wy)
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	wx, wy = transformPoint(c.invViewMatrix, sx, sy)
	return
}
