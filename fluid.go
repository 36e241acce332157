package riverpass

import "math"

// FluidConfig controls the pointer-driven fluid overlay. The field names
// follow the usual WebGL fluid-distortion knobs.
type FluidConfig struct {
	// Resolution is the number of simulation cells along the longer screen
	// axis. Default 128.
	Resolution int
	// Radius is the splat radius as a fraction of the grid width. Default 0.03.
	Radius float64
	// Curl is the vorticity confinement strength. Default 10.
	Curl float64
	// Swirl is the number of pressure solver iterations. Default 5.
	Swirl int
	// Distortion scales how far the velocity field displaces the scene.
	// Default 1.
	Distortion float64
	// Force multiplies pointer velocity when splatting. Default 2.
	Force float64
	// Pressure is the per-tick carry-over of the pressure field. Default 0.94.
	Pressure float64
	// DensityDissipation is the per-frame (at 60 FPS) dye retention. Default 0.98.
	DensityDissipation float64
	// VelocityDissipation is the per-frame (at 60 FPS) velocity retention.
	// Default 0.99.
	VelocityDissipation float64
	// Intensity scales the dye tint. Default 0.3.
	Intensity float64
	// Rainbow tints by velocity direction instead of FluidColor.
	Rainbow bool
	// Blend mixes the background color over the scene, 0..1.
	Blend float64
	// ShowBackground composites the scene over BackgroundColor.
	ShowBackground bool
	// BackgroundColor is a CSS color. Default "#a5d7e8".
	BackgroundColor string
	// FluidColor is a CSS color. Default "#d6edf5".
	FluidColor string
}

// DefaultFluidConfig returns the stock overlay settings.
func DefaultFluidConfig() FluidConfig {
	return FluidConfig{
		Resolution:          128,
		Radius:              0.03,
		Curl:                10,
		Swirl:               5,
		Distortion:          1,
		Force:               2,
		Pressure:            0.94,
		DensityDissipation:  0.98,
		VelocityDissipation: 0.99,
		Intensity:           0.3,
		ShowBackground:      true,
		BackgroundColor:     "#a5d7e8",
		FluidColor:          "#d6edf5",
	}
}

// withDefaults fills zero numeric fields. Booleans and Blend are taken as given.
func (c FluidConfig) withDefaults() FluidConfig {
	def := DefaultFluidConfig()
	if c.Resolution <= 0 {
		c.Resolution = def.Resolution
	}
	if c.Radius <= 0 {
		c.Radius = def.Radius
	}
	if c.Curl == 0 {
		c.Curl = def.Curl
	}
	if c.Swirl <= 0 {
		c.Swirl = def.Swirl
	}
	if c.Distortion == 0 {
		c.Distortion = def.Distortion
	}
	if c.Force == 0 {
		c.Force = def.Force
	}
	if c.Pressure == 0 {
		c.Pressure = def.Pressure
	}
	if c.DensityDissipation == 0 {
		c.DensityDissipation = def.DensityDissipation
	}
	if c.VelocityDissipation == 0 {
		c.VelocityDissipation = def.VelocityDissipation
	}
	if c.Intensity == 0 {
		c.Intensity = def.Intensity
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = def.BackgroundColor
	}
	if c.FluidColor == "" {
		c.FluidColor = def.FluidColor
	}
	c.Blend = Clamp(c.Blend, 0, 1)
	return c
}

// splat is a queued pointer impulse in normalized [0,1] coordinates with
// velocity in normalized units per second.
type splat struct {
	u, v   float64
	du, dv float64
}

// FluidSim is a small CPU stable-fluids solver (semi-Lagrangian advection,
// vorticity confinement, Jacobi pressure projection). Grid cells are
// indexed x right, y down; velocities are in cells per second.
type FluidSim struct {
	cfg  FluidConfig
	w, h int

	vx, vy   []float64
	vx0, vy0 []float64
	dens     []float64
	dens0    []float64
	curl     []float64
	div      []float64
	pres     []float64
	pres0    []float64

	splats []splat
	steps  int
}

// NewFluidSim creates a solver sized for a surface of aspect width/height.
func NewFluidSim(cfg FluidConfig, width, height float64) *FluidSim {
	s := &FluidSim{cfg: cfg.withDefaults()}
	s.Resize(width, height)
	return s
}

// gridSize derives the cell grid for a surface, putting Resolution cells on
// the longer axis.
func gridSize(res int, width, height float64) (int, int) {
	if width <= 0 || height <= 0 {
		return res, res
	}
	if width >= height {
		return res, max(1, int(math.Round(float64(res)*height/width)))
	}
	return max(1, int(math.Round(float64(res)*width/height))), res
}

// Resize reallocates the grid for a new surface aspect. The field is
// cleared when the grid dimensions change.
func (s *FluidSim) Resize(width, height float64) {
	w, h := gridSize(s.cfg.Resolution, width, height)
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	n := w * h
	s.vx, s.vy = make([]float64, n), make([]float64, n)
	s.vx0, s.vy0 = make([]float64, n), make([]float64, n)
	s.dens, s.dens0 = make([]float64, n), make([]float64, n)
	s.curl, s.div = make([]float64, n), make([]float64, n)
	s.pres, s.pres0 = make([]float64, n), make([]float64, n)
}

// Size returns the grid dimensions in cells.
func (s *FluidSim) Size() (w, h int) { return s.w, s.h }

// Config returns the effective configuration.
func (s *FluidSim) Config() FluidConfig { return s.cfg }

// Steps returns how many solver steps have run.
func (s *FluidSim) Steps() int { return s.steps }

// Splat queues an impulse at normalized position (u, v) moving by (du, dv)
// normalized units per second. It is applied on the next Step.
func (s *FluidSim) Splat(u, v, du, dv float64) {
	s.splats = append(s.splats, splat{u: u, v: v, du: du, dv: dv})
}

// PendingSplats returns the number of queued impulses.
func (s *FluidSim) PendingSplats() int { return len(s.splats) }

// Velocity returns the velocity at cell (x, y), clamped to the grid.
func (s *FluidSim) Velocity(x, y int) (vx, vy float64) {
	i := s.idx(x, y)
	return s.vx[i], s.vy[i]
}

// Density returns the dye amount at cell (x, y), clamped to the grid.
func (s *FluidSim) Density(x, y int) float64 {
	return s.dens[s.idx(x, y)]
}

// TotalDensity sums the dye over the grid.
func (s *FluidSim) TotalDensity() float64 {
	var t float64
	for _, d := range s.dens {
		t += d
	}
	return t
}

// Divergence returns the sum of |div v| over the grid.
func (s *FluidSim) Divergence() float64 {
	s.computeDivergence()
	var t float64
	for _, d := range s.div {
		t += math.Abs(d)
	}
	return t
}

func (s *FluidSim) idx(x, y int) int {
	x = Clamp(x, 0, s.w-1)
	y = Clamp(y, 0, s.h-1)
	return y*s.w + x
}

// Step advances the simulation by dt seconds. Non-positive dt does nothing
// (queued splats stay queued).
func (s *FluidSim) Step(dt float64) {
	if dt <= 0 || s.w == 0 {
		return
	}
	s.steps++
	s.applySplats()
	s.vorticity(dt)
	s.computeDivergence()
	s.solvePressure()
	s.subtractGradient()

	advect(s.vx0, s.vx, s.vx, s.vy, s.w, s.h, dt)
	advect(s.vy0, s.vy, s.vx, s.vy, s.w, s.h, dt)
	s.vx, s.vx0 = s.vx0, s.vx
	s.vy, s.vy0 = s.vy0, s.vy
	advect(s.dens0, s.dens, s.vx, s.vy, s.w, s.h, dt)
	s.dens, s.dens0 = s.dens0, s.dens

	vk := math.Pow(s.cfg.VelocityDissipation, dt*60)
	dk := math.Pow(s.cfg.DensityDissipation, dt*60)
	for i := range s.vx {
		s.vx[i] *= vk
		s.vy[i] *= vk
		s.dens[i] *= dk
	}
}

func (s *FluidSim) applySplats() {
	if len(s.splats) == 0 {
		return
	}
	fw, fh := float64(s.w), float64(s.h)
	r := s.cfg.Radius * fw
	r2 := r * r
	reach := int(math.Ceil(r * 3))
	for _, sp := range s.splats {
		cx, cy := sp.u*fw, sp.v*fh
		fx := sp.du * fw * s.cfg.Force
		fy := sp.dv * fh * s.cfg.Force
		x0, x1 := int(cx)-reach, int(cx)+reach
		y0, y1 := int(cy)-reach, int(cy)+reach
		for y := max(0, y0); y <= min(s.h-1, y1); y++ {
			for x := max(0, x0); x <= min(s.w-1, x1); x++ {
				dx := float64(x) + 0.5 - cx
				dy := float64(y) + 0.5 - cy
				g := math.Exp(-(dx*dx + dy*dy) / r2)
				if g < 1e-4 {
					continue
				}
				i := y*s.w + x
				s.vx[i] += fx * g
				s.vy[i] += fy * g
				s.dens[i] = min(1, s.dens[i]+g)
			}
		}
	}
	s.splats = s.splats[:0]
}

// vorticity adds the confinement force that keeps small eddies alive.
func (s *FluidSim) vorticity(dt float64) {
	w, h := s.w, s.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.curl[y*w+x] = 0.5 * ((s.vy[s.idx(x+1, y)] - s.vy[s.idx(x-1, y)]) -
				(s.vx[s.idx(x, y+1)] - s.vx[s.idx(x, y-1)]))
		}
	}
	if s.cfg.Curl == 0 {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			nx := 0.5 * (math.Abs(s.curl[s.idx(x+1, y)]) - math.Abs(s.curl[s.idx(x-1, y)]))
			ny := 0.5 * (math.Abs(s.curl[s.idx(x, y+1)]) - math.Abs(s.curl[s.idx(x, y-1)]))
			l := math.Hypot(nx, ny) + 1e-5
			nx, ny = nx/l, ny/l
			c := s.curl[i] * s.cfg.Curl
			s.vx[i] += ny * c * dt
			s.vy[i] -= nx * c * dt
		}
	}
}

func (s *FluidSim) computeDivergence() {
	w, h := s.w, s.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.div[y*w+x] = 0.5 * ((s.vx[s.idx(x+1, y)] - s.vx[s.idx(x-1, y)]) +
				(s.vy[s.idx(x, y+1)] - s.vy[s.idx(x, y-1)]))
		}
	}
}

func (s *FluidSim) solvePressure() {
	for i := range s.pres {
		s.pres[i] *= s.cfg.Pressure
	}
	w, h := s.w, s.h
	for k := 0; k < s.cfg.Swirl; k++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				s.pres0[y*w+x] = 0.25 * (s.pres[s.idx(x-1, y)] + s.pres[s.idx(x+1, y)] +
					s.pres[s.idx(x, y-1)] + s.pres[s.idx(x, y+1)] - s.div[y*w+x])
			}
		}
		s.pres, s.pres0 = s.pres0, s.pres
	}
}

func (s *FluidSim) subtractGradient() {
	w, h := s.w, s.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			s.vx[i] -= 0.5 * (s.pres[s.idx(x+1, y)] - s.pres[s.idx(x-1, y)])
			s.vy[i] -= 0.5 * (s.pres[s.idx(x, y+1)] - s.pres[s.idx(x, y-1)])
		}
	}
}

// advect traces each cell center back along (vx, vy) and samples src there
// bilinearly into dst.
func advect(dst, src, vx, vy []float64, w, h int, dt float64) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			px := float64(x) - dt*vx[i]
			py := float64(y) - dt*vy[i]
			dst[i] = sampleBilinear(src, w, h, px, py)
		}
	}
}

func sampleBilinear(f []float64, w, h int, x, y float64) float64 {
	x = Clamp(x, 0, float64(w-1))
	y = Clamp(y, 0, float64(h-1))
	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, w-1), min(y0+1, h-1)
	tx, ty := x-float64(x0), y-float64(y0)
	top := Lerp(f[y0*w+x0], f[y0*w+x1], tx)
	bot := Lerp(f[y1*w+x0], f[y1*w+x1], tx)
	return Lerp(top, bot, ty)
}

// velocityRange is the cell speed that saturates the packed texture.
func (s *FluidSim) velocityRange() float64 {
	return float64(max(s.w, s.h))
}

// Pack writes the field into buf as RGBA bytes, one pixel per cell:
// R,G = velocity mapped from [-range, range] to [0, 255], B = density,
// A = 255. buf is grown as needed and returned.
func (s *FluidSim) Pack(buf []byte) []byte {
	n := s.w * s.h * 4
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	vr := s.velocityRange()
	for i := 0; i < s.w*s.h; i++ {
		off := i * 4
		buf[off+0] = packSigned(s.vx[i] / vr)
		buf[off+1] = packSigned(s.vy[i] / vr)
		buf[off+2] = byte(Clamp(s.dens[i], 0, 1)*255 + 0.5)
		buf[off+3] = 255
	}
	return buf
}

func packSigned(v float64) byte {
	return byte((Clamp(v, -1, 1)*0.5+0.5)*255 + 0.5)
}
