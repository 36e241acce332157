package riverpass

import (
	"fmt"
	"time"
)

// RevealPhase is the state of a Reveal.
type RevealPhase uint8

const (
	RevealIdle     RevealPhase = iota // constructed, Start not called yet
	RevealIntro                       // progress decaying toward the floor
	RevealRevealed                    // progress pinned at the floor (terminal)
)

func (p RevealPhase) String() string {
	switch p {
	case RevealIdle:
		return "idle"
	case RevealIntro:
		return "intro"
	case RevealRevealed:
		return "revealed"
	default:
		return fmt.Sprintf("RevealPhase(%d)", uint8(p))
	}
}

// RevealConfig controls the intro decay.
type RevealConfig struct {
	// Duration is the wall-clock length of the decay. Default 2500ms.
	Duration time.Duration
	// Floor is the terminal progress value. Default 0.01.
	Floor float64
}

// DefaultRevealConfig returns the stock 2500ms decay to 0.01.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{Duration: 2500 * time.Millisecond, Floor: 0.01}
}

// Subscription removes a registered listener.
type Subscription struct {
	remove func()
}

// Cancel unregisters the listener. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.remove != nil {
		s.remove()
	}
}

type progressListener struct {
	id uint32
	fn func(progress float64)
}

type revealedListener struct {
	id uint32
	fn func(at time.Duration)
}

// Reveal is the one-shot intro state machine. Once started it decays
// progress from 1 to Floor over Duration, stepping once per scheduler tick,
// and then stops rescheduling. There is no way back to the intro.
type Reveal struct {
	cfg   RevealConfig
	sched *FrameScheduler

	phase      RevealPhase
	progress   float64
	start      time.Duration
	revealedAt time.Duration
	steps      int
	handle     FrameHandle
	cancelled  bool

	onProgress []progressListener
	onRevealed []revealedListener
	nextID     uint32
}

// NewReveal creates a reveal bound to sched. Zero config fields take the
// defaults; a negative duration or a floor outside [0, 1) is an error.
func NewReveal(sched *FrameScheduler, cfg RevealConfig) (*Reveal, error) {
	def := DefaultRevealConfig()
	if cfg.Duration == 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Floor == 0 {
		cfg.Floor = def.Floor
	}
	if cfg.Duration < 0 {
		return nil, fmt.Errorf("reveal: %w (got %v)", ErrInvalidDuration, cfg.Duration)
	}
	if cfg.Floor < 0 || cfg.Floor >= 1 {
		return nil, fmt.Errorf("riverpass: reveal floor %v outside [0, 1)", cfg.Floor)
	}
	return &Reveal{cfg: cfg, sched: sched, progress: 1}, nil
}

// Start begins the decay with now as the start time. Only the first call has
// any effect.
func (r *Reveal) Start(now time.Duration) {
	if r.phase != RevealIdle || r.cancelled {
		return
	}
	r.phase = RevealIntro
	r.start = now
	r.handle = r.sched.RequestFrame(r.step)
}

// Cancel stops the pending frame callback. Progress and phase keep their
// current values.
func (r *Reveal) Cancel() {
	r.cancelled = true
	r.handle.Cancel()
	r.handle = FrameHandle{}
}

// ProgressAt returns the progress the reveal would report at now without
// changing any state.
func (r *Reveal) ProgressAt(now time.Duration) float64 {
	if r.phase == RevealIdle {
		return 1
	}
	elapsed := now - r.start
	if elapsed < 0 {
		elapsed = 0
	}
	p := 1 - float64(elapsed)/float64(r.cfg.Duration)
	return max(r.cfg.Floor, p)
}

func (r *Reveal) step(now time.Duration) {
	r.handle = FrameHandle{}
	r.steps++
	r.progress = r.ProgressAt(now)
	for _, l := range r.onProgress {
		l.fn(r.progress)
	}
	if r.progress > r.cfg.Floor {
		if !r.cancelled {
			r.handle = r.sched.RequestFrame(r.step)
		}
		return
	}
	r.phase = RevealRevealed
	r.revealedAt = now
	for _, l := range r.onRevealed {
		l.fn(now)
	}
}

// Phase returns the current phase.
func (r *Reveal) Phase() RevealPhase { return r.phase }

// Revealed reports whether the floor has been reached.
func (r *Reveal) Revealed() bool { return r.phase == RevealRevealed }

// Progress returns the last computed progress (1 before the first step).
func (r *Reveal) Progress() float64 { return r.progress }

// Floor returns the terminal progress value.
func (r *Reveal) Floor() float64 { return r.cfg.Floor }

// Steps returns how many frame steps have run.
func (r *Reveal) Steps() int { return r.steps }

// RevealedAt returns the clock time of the final step. Zero until revealed.
func (r *Reveal) RevealedAt() time.Duration { return r.revealedAt }

// Scheduled reports whether a step is waiting for the next tick.
func (r *Reveal) Scheduled() bool { return r.handle.Valid() }

// OnProgress registers fn to run after every step with the new progress.
func (r *Reveal) OnProgress(fn func(progress float64)) Subscription {
	r.nextID++
	id := r.nextID
	r.onProgress = append(r.onProgress, progressListener{id: id, fn: fn})
	return Subscription{remove: func() {
		for i := range r.onProgress {
			if r.onProgress[i].id == id {
				r.onProgress = append(r.onProgress[:i], r.onProgress[i+1:]...)
				return
			}
		}
	}}
}

// OnRevealed registers fn to run once when the floor is reached. If the
// reveal already finished, fn is not called retroactively; check Revealed.
func (r *Reveal) OnRevealed(fn func(at time.Duration)) Subscription {
	r.nextID++
	id := r.nextID
	r.onRevealed = append(r.onRevealed, revealedListener{id: id, fn: fn})
	return Subscription{remove: func() {
		for i := range r.onRevealed {
			if r.onRevealed[i].id == id {
				r.onRevealed = append(r.onRevealed[:i], r.onRevealed[i+1:]...)
				return
			}
		}
	}}
}
