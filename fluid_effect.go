package riverpass

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// fluidShaderSrc composites the packed fluid field (image 1) over the scene
// (image 0). Field texels hold R,G = velocity in [-1,1] mapped to [0,1]
// and B = dye density.
const fluidShaderSrc = `//kage:unit pixels
package main

var Distortion float
var Intensity float
var Blend float
var ShowBackground float
var Rainbow float
var PixelScale float
var FluidColor vec4
var BackgroundColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	local := src - origin

	field := imageSrc1UnsafeAt(local + imageSrc1Origin())
	vel := field.rg*2.0 - vec2(1.0)
	dens := field.b

	pos := clamp(local-vel*PixelScale*Distortion, vec2(0), size-vec2(1)) + origin
	c := imageSrc0UnsafeAt(pos)

	tint := FluidColor.rgb
	if Rainbow > 0.5 {
		h := vec3(atan2(vel.y, vel.x)/6.2831853) + vec3(0.0, 0.33, 0.67)
		tint = vec3(0.5) + 0.5*cos(6.2831853*h)
	}
	a := clamp(dens*Intensity, 0.0, 1.0)
	c = vec4(c.rgb*(1.0-a)+tint*a, c.a*(1.0-a)+a)

	if ShowBackground > 0.5 {
		c = c + BackgroundColor*(1.0-c.a)
		c = vec4(mix(c.rgb, BackgroundColor.rgb, Blend), c.a)
	}
	return c
}
`

// fluidPixelScale is the displacement, as a fraction of the longer screen
// side, produced by a full-range packed velocity.
const fluidPixelScale = 0.1

// FluidEffect is the pointer-driven fluid stage. The solver runs on the CPU
// every Update; Apply uploads the packed field and composites it.
type FluidEffect struct {
	sim        *FluidSim
	fluidColor Color
	bgColor    Color

	field     *ebiten.Image // sim-sized
	fieldFull *ebiten.Image // src-sized, linearly upscaled
	pix       []byte
	dirty     bool

	uniforms map[string]any
	fluidVec []float32
	bgVec    []float32
	shaderOp ebiten.DrawRectShaderOptions
	scaleOp  ebiten.DrawImageOptions
}

// NewFluidEffect creates the stage for a surface of width×height pixels.
// Color fields are CSS strings; an unparsable one returns ErrInvalidColor.
func NewFluidEffect(cfg FluidConfig, width, height float64) (*FluidEffect, error) {
	cfg = cfg.withDefaults()
	fc, err := ParseColor(cfg.FluidColor)
	if err != nil {
		return nil, fmt.Errorf("fluid color: %w", err)
	}
	bc, err := ParseColor(cfg.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("fluid background: %w", err)
	}
	e := &FluidEffect{
		sim:        NewFluidSim(cfg, width, height),
		fluidColor: fc,
		bgColor:    bc,
		uniforms:   make(map[string]any, 8),
		dirty:      true,
	}
	fp, bp := fc.Premultiplied(), bc.WithAlpha(1).Premultiplied()
	e.fluidVec = fp[:]
	e.bgVec = bp[:]
	e.uniforms["Distortion"] = float32(cfg.Distortion)
	e.uniforms["Intensity"] = float32(cfg.Intensity)
	e.uniforms["Blend"] = float32(cfg.Blend)
	e.uniforms["ShowBackground"] = boolUniform(cfg.ShowBackground)
	e.uniforms["Rainbow"] = boolUniform(cfg.Rainbow)
	e.uniforms["FluidColor"] = e.fluidVec
	e.uniforms["BackgroundColor"] = e.bgVec
	e.scaleOp.Filter = ebiten.FilterLinear
	e.scaleOp.Blend = ebiten.BlendCopy
	return e, nil
}

func boolUniform(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Sim exposes the underlying solver.
func (e *FluidEffect) Sim() *FluidSim { return e.sim }

// Feed turns a pointer sample into a splat. Width and height are the
// surface size in pixels; dt is the tick length in seconds.
func (e *FluidEffect) Feed(p PointerState, width, height, dt float64) {
	if !p.Moved || dt <= 0 || width <= 0 || height <= 0 {
		return
	}
	e.sim.Splat(p.X/width, p.Y/height, p.DX/width/dt, p.DY/height/dt)
}

// Resize adapts the grid to a new surface aspect.
func (e *FluidEffect) Resize(width, height float64) {
	e.sim.Resize(width, height)
	e.dirty = true
}

// Update steps the solver by dt seconds.
func (e *FluidEffect) Update(dt float64) {
	if dt <= 0 {
		return
	}
	e.sim.Step(dt)
	e.dirty = true
}

// Apply composites the fluid field over src into dst.
func (e *FluidEffect) Apply(src, dst *ebiten.Image) error {
	shader, err := compileShader("fluid", fluidShaderSrc)
	if err != nil {
		return err
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	e.uploadField(w, h)

	e.uniforms["PixelScale"] = float32(fluidPixelScale * float64(max(w, h)))
	e.shaderOp.Images[0] = src
	e.shaderOp.Images[1] = e.fieldFull
	e.shaderOp.Uniforms = e.uniforms
	dst.DrawRectShader(w, h, shader, &e.shaderOp)
	return nil
}

// uploadField packs the solver state into the sim-sized texture and
// stretches it to the surface size.
func (e *FluidEffect) uploadField(w, h int) {
	gw, gh := e.sim.Size()
	if e.field == nil || e.field.Bounds().Dx() != gw || e.field.Bounds().Dy() != gh {
		if e.field != nil {
			e.field.Deallocate()
		}
		e.field = ebiten.NewImageWithOptions(image.Rect(0, 0, gw, gh), nil)
		e.dirty = true
	}
	if e.fieldFull == nil || e.fieldFull.Bounds().Dx() != w || e.fieldFull.Bounds().Dy() != h {
		if e.fieldFull != nil {
			e.fieldFull.Deallocate()
		}
		e.fieldFull = ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{Unmanaged: true})
		e.dirty = true
	}
	if !e.dirty {
		return
	}
	e.pix = e.sim.Pack(e.pix)
	e.field.WritePixels(e.pix)

	e.scaleOp.GeoM.Reset()
	e.scaleOp.GeoM.Scale(float64(w)/float64(gw), float64(h)/float64(gh))
	e.fieldFull.DrawImage(e.field, &e.scaleOp)
	e.dirty = false
}

// Dispose frees the field textures.
func (e *FluidEffect) Dispose() {
	if e.field != nil {
		e.field.Deallocate()
		e.field = nil
	}
	if e.fieldFull != nil {
		e.fieldFull.Deallocate()
		e.fieldFull = nil
	}
}
