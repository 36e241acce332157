package riverpass

// InjectMove queues a synthetic pointer sample at the given surface
// coordinates with no button held. Each queued sample is consumed by one
// Update, ahead of the hardware pointer.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, PointerSample{X: x, Y: y})
}

// InjectPress queues a sample with the primary button held.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, PointerSample{X: x, Y: y, Pressed: true})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two ticks.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectMove(x, y)
}

// InjectTouch queues a touch sample. Touch input hides the pointer
// indicator.
func (s *Scene) InjectTouch(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, PointerSample{X: x, Y: y, Pressed: pressed, Touch: true})
}

// InjectSweep queues a straight pointer path from (fromX, fromY) to
// (toX, toY) across the given number of ticks, both ends included.
// Minimum frames is 2.
func (s *Scene) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(Lerp(fromX, toX, t), Lerp(fromY, toY, t))
	}
}

// PendingInjections returns how many synthetic samples are still queued.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

func (s *Scene) popInjected() (PointerSample, bool) {
	if len(s.injectQueue) == 0 {
		return PointerSample{}, false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return evt, true
}
