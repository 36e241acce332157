package riverpass

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// NewTweenGroup or the convenience constructors and call Update(dt) each
// tick; the group writes values straight into the target fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// NewTweenGroup tweens each field from its current value to the matching
// entry in to. Extra fields beyond four are ignored.
func NewTweenGroup(fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	for i := 0; i < len(fields) && i < len(to) && i < len(g.tweens); i++ {
		g.tweens[i] = gween.New(float32(*fields[i]), float32(to[i]), duration, fn)
		g.fields[i] = fields[i]
		g.count++
	}
	g.Done = g.count == 0
	return g
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenColor animates all four components of *c to the target color.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return NewTweenGroup(
		[]*float64{&c.R, &c.G, &c.B, &c.A},
		[]float64{to.R, to.G, to.B, to.A},
		duration, fn,
	)
}

// TweenValue animates a single field.
func TweenValue(v *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return NewTweenGroup([]*float64{v}, []float64{to}, duration, fn)
}
