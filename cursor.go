package riverpass

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

// CursorStyle is one of the two discrete pointer indicator looks.
type CursorStyle struct {
	Color Color
	Size  float64
}

// CursorConfig controls the pointer indicator.
type CursorConfig struct {
	// Default is the resting style. Default rgba(255,255,255,0.5), 25px.
	Default CursorStyle
	// Hover is the style while an interactive control is hovered.
	// Default rgba(0,0,0,0.5), 25px.
	Hover CursorStyle
	// ColorDuration is the color transition time in seconds. Default 0.5.
	ColorDuration float32
	// SizeDuration is the size transition time in seconds. Default 0.075.
	SizeDuration float32
	// HideBelowWidth hides the indicator on viewports narrower than this
	// many pixels. Default 768.
	HideBelowWidth float64
	// Glow is the width of the soft halo around the dot. Default 5.
	Glow float64
}

// DefaultCursorConfig returns the stock indicator styling.
func DefaultCursorConfig() CursorConfig {
	return CursorConfig{
		Default:        CursorStyle{Color: MustParseColor("rgba(255, 255, 255, 0.5)"), Size: 25},
		Hover:          CursorStyle{Color: MustParseColor("rgba(0, 0, 0, 0.5)"), Size: 25},
		ColorDuration:  0.5,
		SizeDuration:   0.075,
		HideBelowWidth: 768,
		Glow:           5,
	}
}

// PointerIndicator is the decorative dot that follows the pointer. It only
// draws; it never takes part in hit testing.
type PointerIndicator struct {
	cfg CursorConfig

	// X and Y are the top-left of the indicator box, i.e. the pointer
	// position minus half the current size.
	X, Y float64

	color    Color
	size     float64
	hovering bool
	hidden   bool

	colorTween *TweenGroup
	sizeTween  *TweenGroup

	ui float64 // device scale factor
}

// NewPointerIndicator creates an indicator in its default style. Zero config
// fields take the defaults.
func NewPointerIndicator(cfg CursorConfig) *PointerIndicator {
	def := DefaultCursorConfig()
	if cfg.Default == (CursorStyle{}) {
		cfg.Default = def.Default
	}
	if cfg.Hover == (CursorStyle{}) {
		cfg.Hover = def.Hover
	}
	if cfg.ColorDuration <= 0 {
		cfg.ColorDuration = def.ColorDuration
	}
	if cfg.SizeDuration <= 0 {
		cfg.SizeDuration = def.SizeDuration
	}
	if cfg.HideBelowWidth == 0 {
		cfg.HideBelowWidth = def.HideBelowWidth
	}
	if cfg.Glow == 0 {
		cfg.Glow = def.Glow
	}
	return &PointerIndicator{
		cfg:   cfg,
		color: cfg.Default.Color,
		size:  cfg.Default.Size,
		ui:    1,
	}
}

// SetDeviceScale sets the factor between logical and surface pixels. Size
// and HideBelowWidth are logical.
func (c *PointerIndicator) SetDeviceScale(ui float64) {
	if ui <= 0 {
		ui = 1
	}
	c.ui = ui
}

// MoveTo records a raw pointer sample in pixels, centering the indicator on it.
func (c *PointerIndicator) MoveTo(px, py float64) {
	c.X = px - c.size*c.ui/2
	c.Y = py - c.size*c.ui/2
}

// SetHovering switches between the default and hover styles. The logical
// state flips immediately; color and size ease toward the new style.
func (c *PointerIndicator) SetHovering(on bool) {
	if on == c.hovering {
		return
	}
	c.hovering = on
	target := c.cfg.Default
	if on {
		target = c.cfg.Hover
	}
	c.colorTween = TweenColor(&c.color, target.Color, c.cfg.ColorDuration, ease.InOutQuad)
	c.sizeTween = TweenValue(&c.size, target.Size, c.cfg.SizeDuration, ease.InOutQuad)
}

// Hovering reports the logical hover state.
func (c *PointerIndicator) Hovering() bool { return c.hovering }

// Color returns the currently rendered color.
func (c *PointerIndicator) Color() Color { return c.color }

// Size returns the currently rendered diameter in pixels.
func (c *PointerIndicator) Size() float64 { return c.size }

// Hidden reports whether the indicator is suppressed this tick.
func (c *PointerIndicator) Hidden() bool { return c.hidden }

// Update advances the style transitions and applies the latest pointer
// sample from f.
func (c *PointerIndicator) Update(f *FrameState) {
	dt := float32(f.Delta)
	c.colorTween.Update(dt)
	c.sizeTween.Update(dt)

	p := f.Pointer
	c.hidden = !p.Seen || p.Touch || f.Width/c.ui < c.cfg.HideBelowWidth
	if p.Seen {
		c.MoveTo(p.X, p.Y)
	}
}

// Draw renders the indicator. Nothing is drawn while hidden.
func (c *PointerIndicator) Draw(dst *ebiten.Image) {
	if c.hidden || c.size <= 0 {
		return
	}
	r := float32(c.size * c.ui / 2)
	cx := float32(c.X) + r
	cy := float32(c.Y) + r

	// Halo: a few widening rings with falling alpha.
	glow := float32(c.cfg.Glow * c.ui)
	for i := 1; i <= 3; i++ {
		w := glow * float32(i) / 3
		halo := c.color.WithAlpha(0.35 / float64(i))
		vector.StrokeCircle(dst, cx, cy, r+w/2, w, halo.ToRGBA(), true)
	}
	vector.FillCircle(dst, cx, cy, r, c.color.ToRGBA(), true)
}
