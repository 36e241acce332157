package riverpass

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Effect is a full-screen post-processing stage.
type Effect interface {
	// Update advances the stage's own time by dt seconds.
	Update(dt float64)
	// Apply reads src and writes dst. src and dst are the same size and are
	// never the same image.
	Apply(src, dst *ebiten.Image) error
}

// EffectChain runs an ordered list of effects, scene first and screen last.
type EffectChain struct {
	effects    []Effect
	generation int

	pool    bufferPool
	buffers [2]*ebiten.Image
}

// NewEffectChain creates a chain over effects.
func NewEffectChain(effects ...Effect) *EffectChain {
	c := &EffectChain{}
	c.SetEffects(effects...)
	return c
}

// SetEffects replaces the stage list. The chain is only rebuilt when the
// list differs by identity from the current one; rebuilding bumps the
// generation and drops the intermediate buffers.
func (c *EffectChain) SetEffects(effects ...Effect) {
	if sameEffects(c.effects, effects) {
		return
	}
	c.effects = append(c.effects[:0:0], effects...)
	c.generation++
	c.releaseBuffers()
}

func sameEffects(a, b []Effect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Effects returns the current stage list. The slice must not be modified.
func (c *EffectChain) Effects() []Effect { return c.effects }

// Generation counts chain rebuilds.
func (c *EffectChain) Generation() int { return c.generation }

// Update forwards dt to every stage.
func (c *EffectChain) Update(dt float64) {
	for _, e := range c.effects {
		e.Update(dt)
	}
}

// Apply renders scene through every stage into screen. Intermediate results
// ping-pong between two pooled buffers the size of scene. With no stages
// the scene is copied to screen unchanged.
func (c *EffectChain) Apply(scene, screen *ebiten.Image) error {
	if len(c.effects) == 0 {
		screen.DrawImage(scene, nil)
		return nil
	}

	b := scene.Bounds()
	c.ensureBuffers(b.Dx(), b.Dy())

	current := scene
	next := 0
	for i, e := range c.effects {
		dst := screen
		if i < len(c.effects)-1 {
			dst = c.buffers[next]
			dst.Clear()
			next ^= 1
		}
		if err := e.Apply(current, dst); err != nil {
			return fmt.Errorf("riverpass: effect stage %d: %w", i, err)
		}
		current = dst
	}
	return nil
}

// Dispose drops the intermediate buffers.
func (c *EffectChain) Dispose() {
	c.releaseBuffers()
	c.pool.Dispose()
}

func (c *EffectChain) ensureBuffers(w, h int) {
	need := min(len(c.effects)-1, 2)
	for i := 0; i < need; i++ {
		if buf := c.buffers[i]; buf != nil {
			if bb := buf.Bounds(); bb.Dx() == w && bb.Dy() == h {
				continue
			}
			c.pool.Release(buf)
		}
		c.buffers[i] = c.pool.Acquire(w, h)
	}
}

func (c *EffectChain) releaseBuffers() {
	for i, buf := range c.buffers {
		c.pool.Release(buf)
		c.buffers[i] = nil
	}
}

// bufferPool keeps offscreen images keyed by exact size. Shader stages
// require every source image to share one size, so sizes are not rounded.
type bufferPool struct {
	buckets map[image.Point][]*ebiten.Image
}

// Acquire returns a cleared image of exactly w×h pixels.
func (p *bufferPool) Acquire(w, h int) *ebiten.Image {
	key := image.Pt(w, h)
	if stack := p.buckets[key]; len(stack) > 0 {
		img := stack[len(stack)-1]
		p.buckets[key] = stack[:len(stack)-1]
		img.Clear()
		return img
	}
	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns img for reuse. It is cleared on the next Acquire.
func (p *bufferPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	if p.buckets == nil {
		p.buckets = make(map[image.Point][]*ebiten.Image)
	}
	b := img.Bounds()
	key := image.Pt(b.Dx(), b.Dy())
	p.buckets[key] = append(p.buckets[key], img)
}

// Len returns the number of idle images.
func (p *bufferPool) Len() int {
	n := 0
	for _, s := range p.buckets {
		n += len(s)
	}
	return n
}

// Dispose deallocates every idle image.
func (p *bufferPool) Dispose() {
	for k, s := range p.buckets {
		for _, img := range s {
			img.Deallocate()
		}
		delete(p.buckets, k)
	}
}
