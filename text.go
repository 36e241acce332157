package riverpass

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextAlign controls horizontal text alignment within a TextBlock.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align lines to the left edge
	TextAlignCenter                  // center lines horizontally (default for content)
	TextAlignRight                   // align lines to the right edge
)

// --- Font ---

// Font wraps Ebitengine's text/v2 for TrueType rendering at one size.
type Font struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadFont parses TrueType or OpenType data at the given pixel size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("riverpass: parse font: %w", err)
	}
	return newFont(source, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// WithSize returns a font sharing the same source at a new size.
func (f *Font) WithSize(size float64) *Font {
	if size == f.size {
		return f
	}
	return newFont(f.source, size)
}

// Size returns the pixel size.
func (f *Font) Size() float64 { return f.size }

// MeasureString returns the width and height of s, honoring newlines.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Face returns the underlying GoTextFace.
func (f *Font) Face() *text.GoTextFace { return f.face }

// --- TextBlock ---

// TextBlock holds a paragraph, its style and its cached line layout.
type TextBlock struct {
	Content   string
	Font      *Font
	Align     TextAlign
	WrapWidth float64 // 0 = no wrapping
	Color     Color

	layoutDirty bool
	lines       []textLine
	measuredW   float64
	measuredH   float64
	op          text.DrawOptions
}

type textLine struct {
	s     string
	width float64
}

// NewTextBlock creates a centered block.
func NewTextBlock(content string, font *Font, c Color) *TextBlock {
	return &TextBlock{
		Content:     content,
		Font:        font,
		Align:       TextAlignCenter,
		Color:       c,
		layoutDirty: true,
	}
}

// SetFont swaps the font and invalidates the layout.
func (tb *TextBlock) SetFont(f *Font) {
	if tb.Font == f {
		return
	}
	tb.Font = f
	tb.layoutDirty = true
}

// SetWrapWidth changes the wrap width and invalidates the layout.
func (tb *TextBlock) SetWrapWidth(w float64) {
	if tb.WrapWidth == w {
		return
	}
	tb.WrapWidth = w
	tb.layoutDirty = true
}

// Invalidate forces a relayout on next use.
func (tb *TextBlock) Invalidate() { tb.layoutDirty = true }

// Measure returns the laid-out size.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// Lines returns the wrapped lines.
func (tb *TextBlock) Lines() []string {
	tb.layout()
	out := make([]string, len(tb.lines))
	for i, l := range tb.lines {
		out[i] = l.s
	}
	return out
}

// layout greedily wraps words to WrapWidth. A single word wider than the
// wrap width gets a line of its own.
func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.layoutDirty = false
	tb.lines = tb.lines[:0]
	tb.measuredW, tb.measuredH = 0, 0
	if tb.Font == nil {
		return
	}
	face := tb.Font.face

	for _, para := range strings.Split(tb.Content, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			tb.lines = append(tb.lines, textLine{})
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if tb.WrapWidth > 0 && text.Advance(candidate, face) > tb.WrapWidth {
				tb.lines = append(tb.lines, textLine{s: cur, width: text.Advance(cur, face)})
				cur = w
				continue
			}
			cur = candidate
		}
		tb.lines = append(tb.lines, textLine{s: cur, width: text.Advance(cur, face)})
	}

	for _, l := range tb.lines {
		tb.measuredW = max(tb.measuredW, l.width)
	}
	tb.measuredH = float64(len(tb.lines)) * tb.Font.lh
}

// Draw renders the block centered on (cx, cy) with the given reveal visual
// applied: alpha multiplies the color, OffsetY shifts down, Scale grows
// about the center.
func (tb *TextBlock) Draw(dst *ebiten.Image, cx, cy float64, v ItemVisual) {
	tb.layout()
	if v.Alpha <= 0 || len(tb.lines) == 0 {
		return
	}
	lh := tb.Font.lh
	for i, l := range tb.lines {
		if l.s == "" {
			continue
		}
		var x float64
		switch tb.Align {
		case TextAlignLeft:
			x = -tb.measuredW / 2
		case TextAlignCenter:
			x = -l.width / 2
		case TextAlignRight:
			x = tb.measuredW/2 - l.width
		}
		y := -tb.measuredH/2 + float64(i)*lh

		op := &tb.op
		op.GeoM.Reset()
		op.GeoM.Translate(x, y)
		op.GeoM.Scale(v.Scale, v.Scale)
		op.GeoM.Translate(cx, cy+v.OffsetY)
		op.ColorScale.Reset()
		op.ColorScale.ScaleWithColor(tb.Color.ToRGBA())
		op.ColorScale.ScaleAlpha(float32(v.Alpha))
		op.Filter = ebiten.FilterLinear
		text.Draw(dst, l.s, tb.Font.face, op)
	}
}
