package riverpass

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Sequencer item names used by the content overlay.
const (
	ItemTop      = "top"
	ItemTopText  = "top.text"
	ItemMiddle   = "middle"
	ItemHeading  = "middle.heading"
	ItemSubtitle = "middle.subtitle"
	ItemRSVP     = "middle.rsvp"
	ItemBottom   = "bottom"
	ItemBottomTx = "bottom.text"
)

// ButtonTarget is the hover target name reported in events.
const ButtonTarget = "rsvp"

// ContentConfig is the copy and styling of the text overlay.
type ContentConfig struct {
	Top      string
	Heading  string
	Subtitle string
	Button   string
	Bottom   string

	// TextColor, ButtonColor and ButtonTextColor are CSS colors.
	TextColor       string
	ButtonColor     string
	ButtonTextColor string
	OrnamentColor   string

	// Breakpoint is the logical width at which text switches to the large
	// sizes. Default 768.
	Breakpoint float64
}

// DefaultContentConfig returns the invitation copy.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		Top:             "We can't wait to begin our journey as a family, surrounded by those we love most.",
		Heading:         "Andreea & Vlad",
		Subtitle:        "are getting married, and you're invited!",
		Button:          "RSVP HERE",
		Bottom:          "Sunday, June 29, 2025, 17:00 • Villa Corsini a Mezzomonte (Tuscany, Italy)",
		TextColor:       "#1f2b33",
		ButtonColor:     "#ffffff",
		ButtonTextColor: "#000000",
		OrnamentColor:   "rgba(255, 255, 255, 0.85)",
		Breakpoint:      768,
	}
}

// fontSet holds the base sources; sizes are derived per layout.
type fontSet struct {
	regular *Font
	italic  *Font
	heading *Font
}

func loadFontSet() (fontSet, error) {
	regular, err := LoadFont(goregular.TTF, 16)
	if err != nil {
		return fontSet{}, err
	}
	italic, err := LoadFont(goitalic.TTF, 16)
	if err != nil {
		return fontSet{}, err
	}
	heading, err := LoadFont(gomedium.TTF, 36)
	if err != nil {
		return fontSet{}, err
	}
	return fontSet{regular: regular, italic: italic, heading: heading}, nil
}

// Content is the overlay drawn above the post-processed scene: three text
// groups, the RSVP button and corner ornaments. It never goes through the
// effect chain.
type Content struct {
	cfg   ContentConfig
	fonts fontSet

	top, heading, subtitle, button, bottom *TextBlock

	buttonColor   Color
	ornamentColor Color

	items map[string]*RevealItem

	// Layout, in surface pixels.
	w, h, ui    float64
	topY        float64
	headingY    float64
	subtitleY   float64
	bottomY     float64
	buttonBase  Rect
	ornamentGap float64

	offsetX, offsetY float64
}

// NewContent builds the overlay and registers its reveal groups on seq.
func NewContent(cfg ContentConfig, seq *Sequencer) (*Content, error) {
	def := DefaultContentConfig()
	if cfg.Breakpoint <= 0 {
		cfg.Breakpoint = def.Breakpoint
	}
	textColor, err := parseOr(cfg.TextColor, def.TextColor)
	if err != nil {
		return nil, fmt.Errorf("content text color: %w", err)
	}
	buttonColor, err := parseOr(cfg.ButtonColor, def.ButtonColor)
	if err != nil {
		return nil, fmt.Errorf("content button color: %w", err)
	}
	buttonText, err := parseOr(cfg.ButtonTextColor, def.ButtonTextColor)
	if err != nil {
		return nil, fmt.Errorf("content button text color: %w", err)
	}
	ornament, err := parseOr(cfg.OrnamentColor, def.OrnamentColor)
	if err != nil {
		return nil, fmt.Errorf("content ornament color: %w", err)
	}
	fonts, err := loadFontSet()
	if err != nil {
		return nil, err
	}

	c := &Content{
		cfg:           cfg,
		fonts:         fonts,
		top:           NewTextBlock(cfg.Top, fonts.italic, textColor),
		heading:       NewTextBlock(cfg.Heading, fonts.heading, textColor),
		subtitle:      NewTextBlock(cfg.Subtitle, fonts.italic, textColor),
		button:        NewTextBlock(cfg.Button, fonts.regular, buttonText),
		bottom:        NewTextBlock(cfg.Bottom, fonts.regular, textColor),
		buttonColor:   buttonColor,
		ornamentColor: ornament,
		items:         make(map[string]*RevealItem, 8),
	}

	for _, g := range []*RevealGroup{
		seq.AddGroup(ItemTop, ItemTopText),
		seq.AddGroup(ItemMiddle, ItemHeading, ItemSubtitle, ItemRSVP),
		seq.AddGroup(ItemBottom, ItemBottomTx),
	} {
		c.items[g.Container.Name] = g.Container
		for _, it := range g.Children {
			c.items[it.Name] = it
		}
	}
	return c, nil
}

func parseOr(s, fallback string) (Color, error) {
	if s == "" {
		s = fallback
	}
	return ParseColor(s)
}

// Item returns the reveal item registered under name, or nil.
func (c *Content) Item(name string) *RevealItem { return c.items[name] }

// Layout positions everything for a w×h surface. ui is the device scale
// factor; sizes are specified in logical pixels and multiplied by it.
func (c *Content) Layout(w, h, ui float64) {
	if ui <= 0 {
		ui = 1
	}
	if w == c.w && h == c.h && ui == c.ui {
		return
	}
	c.w, c.h, c.ui = w, h, ui

	large := w/ui >= c.cfg.Breakpoint
	bodySize, headingSize := 16.0, 36.0
	if large {
		bodySize, headingSize = 24, 60
	}
	c.top.SetFont(c.fonts.italic.WithSize(bodySize * ui))
	c.subtitle.SetFont(c.fonts.italic.WithSize(bodySize * ui))
	c.bottom.SetFont(c.fonts.regular.WithSize(bodySize * ui))
	c.heading.SetFont(c.fonts.heading.WithSize(headingSize * ui))
	c.button.SetFont(c.fonts.regular.WithSize(18 * ui))

	wrap := max(w-160*ui, 120*ui)
	for _, tb := range []*TextBlock{c.top, c.heading, c.subtitle, c.bottom} {
		tb.SetWrapWidth(wrap)
	}

	_, topH := c.top.Measure()
	c.topY = 28*ui + topH/2
	_, bottomH := c.bottom.Measure()
	c.bottomY = h - 32*ui - bottomH/2

	// Middle column, centered vertically as one stack.
	_, headH := c.heading.Measure()
	_, subH := c.subtitle.Measure()
	btnW, btnH := c.button.Measure()
	btnW += 64 * ui
	btnH += 20 * ui
	c.ornamentGap = 14 * ui
	stack := headH + 8*ui + subH + 40*ui + c.ornamentGap + 8*ui + btnH + 8*ui + c.ornamentGap
	y := (h - stack) / 2
	c.headingY = y + headH/2
	y += headH + 8*ui
	c.subtitleY = y + subH/2
	y += subH + 40*ui + c.ornamentGap + 8*ui
	c.buttonBase = Rect{X: (w - btnW) / 2, Y: y, Width: btnW, Height: btnH}
}

// SetButtonOffset applies the magnetic displacement to the button.
func (c *Content) SetButtonOffset(dx, dy float64) {
	c.offsetX, c.offsetY = dx, dy
}

// ButtonBase returns the resting button rectangle.
func (c *Content) ButtonBase() Rect { return c.buttonBase }

// ButtonRect returns the button rectangle as currently drawn.
func (c *Content) ButtonRect() Rect {
	r := c.buttonBase.Offset(c.offsetX, c.offsetY)
	if it := c.items[ItemRSVP]; it != nil {
		r.Y += it.Visual.OffsetY + c.items[ItemMiddle].Visual.OffsetY
	}
	return r
}

// visual composes a child's visual with its container's.
func (c *Content) visual(container, child string) ItemVisual {
	p, ch := c.items[container].Visual, c.items[child].Visual
	return ItemVisual{
		Alpha:   p.Alpha * ch.Alpha,
		OffsetY: p.OffsetY + ch.OffsetY,
		Scale:   p.Scale * ch.Scale,
	}
}

// Draw renders the overlay onto dst.
func (c *Content) Draw(dst *ebiten.Image) {
	cx := c.w / 2
	c.drawCorners(dst)
	c.top.Draw(dst, cx, c.topY, c.visual(ItemTop, ItemTopText))
	c.heading.Draw(dst, cx, c.headingY, c.visual(ItemMiddle, ItemHeading))
	c.subtitle.Draw(dst, cx, c.subtitleY, c.visual(ItemMiddle, ItemSubtitle))
	c.drawButton(dst, c.visual(ItemMiddle, ItemRSVP))
	c.bottom.Draw(dst, cx, c.bottomY, c.visual(ItemBottom, ItemBottomTx))
}

func (c *Content) drawButton(dst *ebiten.Image, v ItemVisual) {
	if v.Alpha <= 0 {
		return
	}
	r := c.buttonBase.Offset(c.offsetX, c.offsetY+v.OffsetY)
	center := r.Center()
	w, h := r.Width*v.Scale, r.Height*v.Scale

	orn := c.ornamentColor.WithAlpha(c.ornamentColor.A * v.Alpha)
	drawOrnament(dst, c.buttonBase.Center().X, c.buttonBase.Y+v.OffsetY-8*c.ui-c.ornamentGap/2, 70*c.ui*v.Scale, c.ui, orn)
	drawOrnament(dst, c.buttonBase.Center().X, c.buttonBase.Y+c.buttonBase.Height+v.OffsetY+8*c.ui+c.ornamentGap/2, 70*c.ui*v.Scale, c.ui, orn)

	fill := c.buttonColor.WithAlpha(c.buttonColor.A * v.Alpha)
	vector.FillRect(dst,
		float32(center.X-w/2), float32(center.Y-h/2), float32(w), float32(h),
		fill.ToRGBA(), true)
	c.button.Draw(dst, center.X, center.Y, ItemVisual{Alpha: v.Alpha, Scale: v.Scale})
}

// drawOrnament draws a thin rule with a dot in the middle.
func drawOrnament(dst *ebiten.Image, cx, cy, halfW, ui float64, col Color) {
	rgba := col.ToRGBA()
	sw := float32(max(1, ui))
	d := 4 * ui
	vector.StrokeLine(dst, float32(cx-halfW), float32(cy), float32(cx-d*2), float32(cy), sw, rgba, true)
	vector.StrokeLine(dst, float32(cx+d*2), float32(cy), float32(cx+halfW), float32(cy), sw, rgba, true)

	vector.FillCircle(dst, float32(cx), float32(cy), float32(d*0.75), rgba, true)
}

// drawCorners draws the four 50px corner brackets inset 20px from each edge.
func (c *Content) drawCorners(dst *ebiten.Image) {
	ui := c.ui
	inset, size := 20*ui, 50*ui
	sw := float32(1.5 * ui)
	col := c.ornamentColor.ToRGBA()
	corners := [4][2]float64{
		{inset, inset},
		{c.w - inset, inset},
		{inset, c.h - inset},
		{c.w - inset, c.h - inset},
	}
	for _, pt := range corners {
		x, y := pt[0], pt[1]
		sx, sy := 1.0, 1.0
		if x > c.w/2 {
			sx = -1
		}
		if y > c.h/2 {
			sy = -1
		}
		vector.StrokeLine(dst, float32(x), float32(y), float32(x+sx*size), float32(y), sw, col, true)
		vector.StrokeLine(dst, float32(x), float32(y), float32(x), float32(y+sy*size), sw, col, true)
		vector.StrokeLine(dst, float32(x+sx*size*0.3), float32(y+sy*size*0.3), float32(x+sx*size*0.6), float32(y+sy*size*0.3), sw, col, true)
		vector.StrokeLine(dst, float32(x+sx*size*0.3), float32(y+sy*size*0.3), float32(x+sx*size*0.3), float32(y+sy*size*0.6), sw, col, true)
	}
}
