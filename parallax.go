package riverpass

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ParallaxConfig controls the background layer stack.
type ParallaxConfig struct {
	// AspectRatio is the width/height ratio every plane keeps. Default 1.77.
	AspectRatio float64
	// Bleed is the extra world units added beyond the viewport so edges
	// never show while layers move. Default 1.2.
	Bleed float64
	// Strength scales the horizontal displacement per layer index. Default 0.1.
	Strength float64
	// RotationStrength scales the roll per layer index. Default 0.005.
	RotationStrength float64
	// PositionLerp is the per-tick smoothing factor for X. Default 0.025.
	PositionLerp float64
	// RotationLerp is the per-tick smoothing factor for roll. Default 0.1.
	RotationLerp float64
	// NoDrift disables the idle camera motion.
	NoDrift bool
}

// DefaultParallaxConfig returns the stock layer motion.
func DefaultParallaxConfig() ParallaxConfig {
	return ParallaxConfig{
		AspectRatio:      1.77,
		Bleed:            1.2,
		Strength:         0.1,
		RotationStrength: 0.005,
		PositionLerp:     0.025,
		RotationLerp:     0.1,
	}
}

// ParallaxLayer is one background plane. Index 0 is the back-most layer
// and never moves.
type ParallaxLayer struct {
	Index int
	// Image is the layer texture. A nil image keeps the layer in the
	// simulation but skips drawing it.
	Image *ebiten.Image
	// Base is the rest position in world units.
	Base Vec2
	// X is the current horizontal world offset from Base.
	X float64
	// RotationZ is the current roll in radians.
	RotationZ float64

	imgOp ebiten.DrawImageOptions
}

// Parallax moves a back-to-front stack of planes against the pointer and
// drifts the camera.
type Parallax struct {
	cfg    ParallaxConfig
	Layers []*ParallaxLayer
	Camera *Camera

	frame  *FrameState
	handle FrameHandle
	ticks  int
}

// NewParallax builds one layer per image, back to front. frame is the shared
// per-tick state the scheduled callback reads. Zero config fields take the
// defaults.
func NewParallax(cfg ParallaxConfig, frame *FrameState, cam *Camera, images []*ebiten.Image) *Parallax {
	def := DefaultParallaxConfig()
	if cfg.AspectRatio <= 0 {
		cfg.AspectRatio = def.AspectRatio
	}
	if cfg.Bleed == 0 {
		cfg.Bleed = def.Bleed
	}
	if cfg.Strength == 0 {
		cfg.Strength = def.Strength
	}
	if cfg.RotationStrength == 0 {
		cfg.RotationStrength = def.RotationStrength
	}
	if cfg.PositionLerp <= 0 {
		cfg.PositionLerp = def.PositionLerp
	}
	if cfg.RotationLerp <= 0 {
		cfg.RotationLerp = def.RotationLerp
	}
	p := &Parallax{cfg: cfg, Camera: cam, frame: frame}
	for i, img := range images {
		p.Layers = append(p.Layers, &ParallaxLayer{Index: i, Image: img})
	}
	return p
}

// PlaneSize returns the plane dimensions that cover a (viewW, viewH) world
// viewport plus the bleed while keeping the aspect ratio. Width drives the
// size when the viewport is wider than the aspect ratio, height otherwise.
func (p *Parallax) PlaneSize(viewW, viewH float64) (w, h float64) {
	return PlaneSize(viewW, viewH, p.cfg.AspectRatio, p.cfg.Bleed)
}

// PlaneSize is the free-standing form of Parallax.PlaneSize.
func PlaneSize(viewW, viewH, aspect, bleed float64) (w, h float64) {
	if viewW > viewH*aspect {
		return viewW + bleed, (viewW + bleed) / aspect
	}
	return (viewH + bleed) * aspect, viewH + bleed
}

// Targets returns the displacement and roll a layer is heading toward for
// a normalized pointer X.
func (p *Parallax) Targets(index int, pointerX float64) (x, rot float64) {
	if index == 0 {
		return 0, 0
	}
	x = -(pointerX * float64(index*2) * p.cfg.Strength)
	rot = pointerX * p.cfg.RotationStrength * float64(index)
	return x, rot
}

// Step advances every layer one tick toward the pointer and drifts the
// camera for elapsed seconds.
func (p *Parallax) Step(pointerX, elapsed float64) {
	p.ticks++
	if p.Camera != nil && !p.cfg.NoDrift {
		p.Camera.Drift(elapsed)
	}
	for _, l := range p.Layers {
		if l.Index == 0 {
			continue
		}
		tx, tr := p.Targets(l.Index, pointerX)
		l.X = Lerp(l.X, tx, p.cfg.PositionLerp)
		l.RotationZ = Lerp(l.RotationZ, tr, p.cfg.RotationLerp)
	}
}

// Ticks returns how many steps have run.
func (p *Parallax) Ticks() int { return p.ticks }

// Settled reports whether every layer is within eps of its target for
// pointerX.
func (p *Parallax) Settled(pointerX, eps float64) bool {
	for _, l := range p.Layers {
		tx, tr := p.Targets(l.Index, pointerX)
		if !approxZero(l.X-tx, eps) || !approxZero(l.RotationZ-tr, eps) {
			return false
		}
	}
	return true
}

// Start registers a self-rescheduling frame callback that steps the layers
// from the shared frame state. Calling Start twice is a no-op.
func (p *Parallax) Start(sched *FrameScheduler) {
	if p.handle.Valid() {
		return
	}
	var loop FrameFunc
	loop = func(time.Duration) {
		p.Step(p.frame.Pointer.NDC.X, p.frame.Elapsed)
		p.handle = sched.RequestFrame(loop)
	}
	p.handle = sched.RequestFrame(loop)
}

// Stop cancels the frame callback.
func (p *Parallax) Stop() {
	p.handle.Cancel()
	p.handle = FrameHandle{}
}

// Running reports whether the frame callback is scheduled.
func (p *Parallax) Running() bool { return p.handle.Valid() }

// Draw renders the layers back to front onto dst through the camera.
func (p *Parallax) Draw(dst *ebiten.Image) {
	if p.Camera == nil {
		return
	}
	view := p.Camera.computeViewMatrix()
	vw, vh := p.Camera.VisibleSize()
	w, h := p.PlaneSize(vw, vh)

	for _, l := range p.Layers {
		if l.Image == nil {
			continue
		}
		b := l.Image.Bounds()
		iw, ih := float64(b.Dx()), float64(b.Dy())
		if iw == 0 || ih == 0 {
			continue
		}
		// Image pixels (Y down) to plane-local units (Y up).
		texToPlane := [6]float64{w / iw, 0, 0, -h / ih, 0, h}
		plane := planeTransform(l.Base.X+l.X, l.Base.Y, w, h, l.RotationZ)
		m := multiplyAffine(view, multiplyAffine(plane, texToPlane))

		op := &l.imgOp
		op.GeoM = geoM(m)
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(l.Image, op)
	}
}
