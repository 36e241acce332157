package riverpass

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// MagnetConfig controls the magnetic pull of an interactive control.
type MagnetConfig struct {
	// Radius is the capture distance in pixels. Default 120.
	Radius float64
	// Strength is the offset at the edge of the radius. Default 50.
	Strength float64
	// FPS is the spring step rate. Default 60.
	FPS int
	// Frequency is the spring's angular frequency. Default 6.
	Frequency float64
	// Damping is the spring damping ratio; 1 is critically damped. Default 1.
	Damping float64
}

// DefaultMagnetConfig returns the stock 120px / 50px pull.
func DefaultMagnetConfig() MagnetConfig {
	return MagnetConfig{Radius: 120, Strength: 50, FPS: 60, Frequency: 6, Damping: 1}
}

// MagneticHover drags a control toward the pointer while the pointer is
// within Radius of the control's center, and springs it home otherwise.
type MagneticHover struct {
	cfg    MagnetConfig
	spring harmonica.Spring

	// DX and DY are the current smoothed offset applied to the control.
	DX, DY float64

	vx, vy   float64
	targetDX float64
	targetDY float64
}

// NewMagneticHover creates a magnet at rest. Zero config fields take the
// defaults.
func NewMagneticHover(cfg MagnetConfig) *MagneticHover {
	def := DefaultMagnetConfig()
	if cfg.Radius <= 0 {
		cfg.Radius = def.Radius
	}
	if cfg.Strength == 0 {
		cfg.Strength = def.Strength
	}
	if cfg.FPS <= 0 {
		cfg.FPS = def.FPS
	}
	if cfg.Frequency <= 0 {
		cfg.Frequency = def.Frequency
	}
	if cfg.Damping <= 0 {
		cfg.Damping = def.Damping
	}
	return &MagneticHover{
		cfg:    cfg,
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
	}
}

// TargetOffset returns the unsmoothed pull for a control centered at center
// with the pointer at pointer: (pointer-center)/Radius*Strength per axis when
// the distance is below Radius, zero otherwise.
func (m *MagneticHover) TargetOffset(center, pointer Vec2) (dx, dy float64) {
	d := pointer.Sub(center)
	dist := math.Hypot(d.X, d.Y)
	if dist >= m.cfg.Radius {
		return 0, 0
	}
	return d.X / m.cfg.Radius * m.cfg.Strength, d.Y / m.cfg.Radius * m.cfg.Strength
}

// Update steps the spring one frame toward the current target.
func (m *MagneticHover) Update(center, pointer Vec2) {
	m.targetDX, m.targetDY = m.TargetOffset(center, pointer)
	m.step()
}

// Release sends the control home, e.g. when the pointer left the window.
func (m *MagneticHover) Release() {
	m.targetDX, m.targetDY = 0, 0
	m.step()
}

func (m *MagneticHover) step() {
	m.DX, m.vx = m.spring.Update(m.DX, m.vx, m.targetDX)
	m.DY, m.vy = m.spring.Update(m.DY, m.vy, m.targetDY)
}

// Target returns the offset the spring is heading for.
func (m *MagneticHover) Target() (dx, dy float64) { return m.targetDX, m.targetDY }

// Radius returns the capture radius.
func (m *MagneticHover) Radius() float64 { return m.cfg.Radius }
