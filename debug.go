package riverpass

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timings. Only populated when Scene.debug is
// true.
type debugStats struct {
	updateTime   time.Duration
	parallaxTime time.Duration
	chainTime    time.Duration
	overlayTime  time.Duration
}

// debugLogUpdate prints the update timing and the animation state to stderr.
func (s *Scene) debugLogUpdate(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[riverpass] frame %d | update: %v | reveal: %s %.3f | river t=%.2fs | pending: %d\n",
		s.frame.Frame, stats.updateTime, s.reveal.Phase(), s.reveal.Progress(),
		s.river.Effect().ElapsedTime(), s.sched.Pending())
}

// debugLogDraw prints the draw stage timings to stderr.
func (s *Scene) debugLogDraw(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.parallaxTime + stats.chainTime + stats.overlayTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[riverpass] parallax: %v | chain: %v | overlay: %v | total: %v | chain gen: %d\n",
		stats.parallaxTime, stats.chainTime, stats.overlayTime, total, s.chain.Generation())
}
