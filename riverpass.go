package riverpass

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/mazznoer/csscolorparser"
)

// Sentinel errors returned by constructors. Compare with errors.Is.
var (
	ErrInvalidScale    = errors.New("riverpass: scale must be positive")
	ErrInvalidDuration = errors.New("riverpass: duration must be positive")
	ErrInvalidColor    = errors.New("riverpass: invalid color")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ParseColor parses any CSS color string ("#a5d7e8", "rgba(0, 0, 0, 0.5)",
// "white", "hsl(...)").
func ParseColor(s string) (Color, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level defaults.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp blends c toward o by t, component-wise.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: Lerp(c.R, o.R, t),
		G: Lerp(c.G, o.G, t),
		B: Lerp(c.B, o.B, t),
		A: Lerp(c.A, o.A, t),
	}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Premultiplied returns the color as premultiplied float32 components, the
// layout Kage uniforms and ColorScale expect.
func (c Color) Premultiplied() [4]float32 {
	a := clamp01(c.A)
	return [4]float32{
		float32(clamp01(c.R) * a),
		float32(clamp01(c.G) * a),
		float32(clamp01(c.B) * a),
		float32(a),
	}
}

// ToRGBA converts to a premultiplied color.RGBA for image.Fill and vector APIs.
func (c Color) ToRGBA() color.RGBA {
	p := c.Premultiplied()
	return color.RGBA{
		R: uint8(p[0]*255 + 0.5),
		G: uint8(p[1]*255 + 0.5),
		B: uint8(p[2]*255 + 0.5),
		A: uint8(p[3]*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
