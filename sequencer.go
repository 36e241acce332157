package riverpass

import (
	"time"

	"github.com/tanema/gween/ease"
)

// SequencerConfig controls the staggered reveal of content groups.
type SequencerConfig struct {
	// Delay is the initial offset after the reveal before the first
	// container starts. Default 200ms.
	Delay time.Duration
	// ChildDelay is the extra delay between a container and its first
	// child. Default 150ms.
	ChildDelay time.Duration
	// Stagger separates consecutive children. Default 120ms.
	Stagger time.Duration
	// Duration is the length of each item's transition. Default 800ms.
	Duration time.Duration
	// Hidden is the pre-reveal visual state.
	Hidden ItemVisual
	// Ease is the easing curve. Default ease.OutCubic.
	Ease ease.TweenFunc
}

// DefaultSequencerConfig returns the stock stagger timings.
func DefaultSequencerConfig() SequencerConfig {
	return SequencerConfig{
		Delay:      200 * time.Millisecond,
		ChildDelay: 150 * time.Millisecond,
		Stagger:    120 * time.Millisecond,
		Duration:   800 * time.Millisecond,
		Hidden:     ItemVisual{Alpha: 0, OffsetY: 24, Scale: 0.96},
		Ease:       ease.OutCubic,
	}
}

// ItemVisual is the presentational state of one revealed element.
type ItemVisual struct {
	Alpha   float64
	OffsetY float64
	Scale   float64
}

// visibleState is the fully shown target.
var visibleState = ItemVisual{Alpha: 1, OffsetY: 0, Scale: 1}

// RevealItem is one element animated by the Sequencer. Read Visual when
// drawing.
type RevealItem struct {
	Name   string
	Visual ItemVisual

	startAt   time.Duration
	started   bool
	visibleAt time.Duration
	tween     *TweenGroup
}

// Started reports whether the item's transition has begun.
func (it *RevealItem) Started() bool { return it.started }

// VisibleAt returns the sequencer time at which the transition began. Only
// meaningful once Started is true.
func (it *RevealItem) VisibleAt() time.Duration { return it.visibleAt }

// Settled reports whether the item has finished animating in.
func (it *RevealItem) Settled() bool { return it.started && it.tween != nil && it.tween.Done }

// RevealGroup is a container followed by children that enter one by one.
type RevealGroup struct {
	Container *RevealItem
	Children  []*RevealItem
}

// Sequencer orchestrates the staggered reveal. Nothing moves until
// SetRevealed(true); after that each item starts at its scheduled offset.
type Sequencer struct {
	cfg      SequencerConfig
	groups   []*RevealGroup
	items    []*RevealItem
	revealed bool
	now      time.Duration
	sinceOn  time.Duration
}

// NewSequencer creates a sequencer. Zero config fields take the defaults.
func NewSequencer(cfg SequencerConfig) *Sequencer {
	def := DefaultSequencerConfig()
	if cfg.Delay == 0 {
		cfg.Delay = def.Delay
	}
	if cfg.ChildDelay == 0 {
		cfg.ChildDelay = def.ChildDelay
	}
	if cfg.Stagger == 0 {
		cfg.Stagger = def.Stagger
	}
	if cfg.Duration <= 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Hidden == (ItemVisual{}) {
		cfg.Hidden = def.Hidden
	}
	if cfg.Ease == nil {
		cfg.Ease = def.Ease
	}
	return &Sequencer{cfg: cfg}
}

// AddGroup registers a container with named children and returns it. Groups
// start one after another in registration order, separated by Stagger.
func (s *Sequencer) AddGroup(container string, children ...string) *RevealGroup {
	g := &RevealGroup{Container: s.newItem(container)}
	for _, name := range children {
		g.Children = append(g.Children, s.newItem(name))
	}

	base := s.cfg.Delay + time.Duration(len(s.groups))*s.cfg.Stagger
	g.Container.startAt = base
	for i, c := range g.Children {
		c.startAt = base + s.cfg.ChildDelay + time.Duration(i)*s.cfg.Stagger
	}
	s.groups = append(s.groups, g)
	return g
}

func (s *Sequencer) newItem(name string) *RevealItem {
	it := &RevealItem{Name: name, Visual: s.cfg.Hidden}
	s.items = append(s.items, it)
	return it
}

// Groups returns the registered groups. The returned slice MUST NOT be mutated.
func (s *Sequencer) Groups() []*RevealGroup { return s.groups }

// Items returns every item in registration order (container before its
// children).
func (s *Sequencer) Items() []*RevealItem { return s.items }

// SetRevealed flips the gate. Only the first transition to true matters;
// setting false afterwards does not hide anything again.
func (s *Sequencer) SetRevealed(on bool) {
	if on && !s.revealed {
		s.revealed = true
		s.sinceOn = 0
	}
}

// Revealed reports whether the gate is open.
func (s *Sequencer) Revealed() bool { return s.revealed }

// Now returns the sequencer's own clock (sum of all Update deltas).
func (s *Sequencer) Now() time.Duration { return s.now }

// Done reports whether every item has settled.
func (s *Sequencer) Done() bool {
	for _, it := range s.items {
		if !it.Settled() {
			return false
		}
	}
	return s.revealed
}

// Update advances the sequencer clock by dt and animates started items.
func (s *Sequencer) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	if !s.revealed {
		return
	}
	s.sinceOn += dt
	secs := float32(dt.Seconds())
	for _, it := range s.items {
		if !it.started {
			if s.sinceOn < it.startAt {
				continue
			}
			it.started = true
			it.visibleAt = s.now
			it.tween = NewTweenGroup(
				[]*float64{&it.Visual.Alpha, &it.Visual.OffsetY, &it.Visual.Scale},
				[]float64{visibleState.Alpha, visibleState.OffsetY, visibleState.Scale},
				float32(s.cfg.Duration.Seconds()), s.cfg.Ease,
			)
			// Only the time past the start offset counts this tick.
			it.tween.Update(float32((s.sinceOn - it.startAt).Seconds()))
			continue
		}
		it.tween.Update(secs)
	}
}
