package riverpass

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// riverShaderSrc remaps the source UV toward a radial, multi-frequency
// cosine field. Progress 0 is the identity; progress 1 is fully distorted.
// Must stay in sync with RiverUV.
const riverShaderSrc = `//kage:unit pixels
package main

var Time float
var Progress float
var Scale float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	uv := (src - origin) / size

	p := 2.0*uv - vec2(1.0)
	p += 0.4 * cos(Scale*2.0*p.yx + vec2(1.4*Time) + vec2(2.2, 3.4))
	p += 0.4 * cos(Scale*3.5*p.yx + vec2(1.8*Time) + vec2(1.2, 3.4))
	p += 0.3 * cos(Scale*5.0*p.yx + vec2(2.2*Time) + vec2(4.2, 1.4))

	d := length(p)*0.5 + 0.5
	uv = mix(uv, vec2(d), Progress)

	// Clamp to edge, like a texture sampler with CLAMP_TO_EDGE.
	pos := clamp(uv*size, vec2(0), size-vec2(1)) + origin
	return imageSrc0UnsafeAt(pos)
}
`

// RiverUV is the CPU reference of the river shader: it maps uv in [0,1]²
// for the given progress, scale and elapsed time t.
func RiverUV(uv Vec2, progress, scale, t float64) Vec2 {
	px, py := 2*uv.X-1, 2*uv.Y-1

	// Each term reads the swizzled (y, x) of the running point.
	px, py = px+0.4*math.Cos(scale*2.0*py+1.4*t+2.2), py+0.4*math.Cos(scale*2.0*px+1.4*t+3.4)
	px, py = px+0.4*math.Cos(scale*3.5*py+1.8*t+1.2), py+0.4*math.Cos(scale*3.5*px+1.8*t+3.4)
	px, py = px+0.3*math.Cos(scale*5.0*py+2.2*t+4.2), py+0.3*math.Cos(scale*5.0*px+2.2*t+1.4)

	d := math.Hypot(px, py)*0.5 + 0.5
	return Vec2{
		X: Lerp(uv.X, d, progress),
		Y: Lerp(uv.Y, d, progress),
	}
}

// DistortionEffect is the river post-process stage. Its scale is fixed at
// construction; elapsed time accumulates every Update regardless of
// progress, so the field keeps moving even when fully hidden or revealed.
type DistortionEffect struct {
	progress float64
	scale    float64
	elapsed  float64

	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewDistortionEffect creates a river effect with elapsed time 0.
func NewDistortionEffect(scale, progress float64) (*DistortionEffect, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("distortion effect: %w (got %v)", ErrInvalidScale, scale)
	}
	e := &DistortionEffect{
		scale:    scale,
		uniforms: make(map[string]any, 3),
	}
	e.SetProgress(progress)
	// Scale is constant for the effect's lifetime.
	e.uniforms["Scale"] = float32(scale)
	return e, nil
}

// SetProgress sets the blend weight, clamped to [0, 1].
func (e *DistortionEffect) SetProgress(p float64) {
	if math.IsNaN(p) {
		p = 0
	}
	e.progress = Clamp(p, 0, 1)
}

// Progress returns the current blend weight.
func (e *DistortionEffect) Progress() float64 { return e.progress }

// Scale returns the spatial frequency multiplier.
func (e *DistortionEffect) Scale() float64 { return e.scale }

// ElapsedTime returns the accumulated time uniform in seconds.
func (e *DistortionEffect) ElapsedTime() float64 { return e.elapsed }

// Update adds dt seconds to the time uniform. Negative deltas are ignored.
func (e *DistortionEffect) Update(dt float64) {
	if dt > 0 {
		e.elapsed += dt
	}
}

// RemapUV applies the effect's current parameters to uv.
func (e *DistortionEffect) RemapUV(uv Vec2) Vec2 {
	return RiverUV(uv, e.progress, e.scale, e.elapsed)
}

// Apply renders src into dst through the river shader. src is only read.
func (e *DistortionEffect) Apply(src, dst *ebiten.Image) error {
	shader, err := compileShader("river", riverShaderSrc)
	if err != nil {
		return err
	}
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	e.uniforms["Time"] = float32(e.elapsed)
	e.uniforms["Progress"] = float32(e.progress)
	bounds := src.Bounds()
	e.shaderOp.Images[0] = src
	e.shaderOp.Uniforms = e.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &e.shaderOp)
	return nil
}

// RiverPass owns the current DistortionEffect. Progress changes mutate the
// live effect; a scale change replaces it with a fresh one, which restarts
// its time uniform at zero. The restart is deliberate: scale is a
// construction parameter, not a uniform.
type RiverPass struct {
	effect   *DistortionEffect
	progress float64
	rebuilds int
}

// NewRiverPass creates a pass with an initial effect.
func NewRiverPass(scale, progress float64) (*RiverPass, error) {
	e, err := NewDistortionEffect(scale, progress)
	if err != nil {
		return nil, err
	}
	return &RiverPass{effect: e, progress: e.Progress()}, nil
}

// Effect returns the live effect. The pointer changes after SetScale with a
// new value.
func (p *RiverPass) Effect() *DistortionEffect { return p.effect }

// SetProgress updates the live effect's uniform.
func (p *RiverPass) SetProgress(progress float64) {
	p.effect.SetProgress(progress)
	p.progress = p.effect.Progress()
}

// SetScale constructs a new effect when scale differs from the current one
// and discards the old effect. The current progress carries over.
func (p *RiverPass) SetScale(scale float64) error {
	if scale == p.effect.Scale() {
		return nil
	}
	e, err := NewDistortionEffect(scale, p.progress)
	if err != nil {
		return err
	}
	p.effect = e
	p.rebuilds++
	return nil
}

// Rebuilds returns how many times SetScale replaced the effect.
func (p *RiverPass) Rebuilds() int { return p.rebuilds }
