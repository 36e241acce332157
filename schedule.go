package riverpass

import "time"

// FrameFunc is a callback run once on the next scheduler tick.
type FrameFunc func(now time.Duration)

type frameCallback struct {
	id uint32
	fn FrameFunc
}

// FrameScheduler is the request-next-frame primitive. Callbacks requested
// with RequestFrame run exactly once on the following Tick unless cancelled.
// A callback that wants to keep running must request itself again.
//
// The order of callbacks within one tick is not part of the contract.
type FrameScheduler struct {
	pending   []frameCallback
	running   []frameCallback
	cancelled map[uint32]struct{}
	nextID    uint32
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{cancelled: make(map[uint32]struct{})}
}

// FrameHandle cancels a pending frame callback.
type FrameHandle struct {
	id    uint32
	sched *FrameScheduler
}

// Cancel prevents the callback from running. Cancelling a callback that
// already ran, or cancelling twice, is a no-op.
func (h FrameHandle) Cancel() {
	if h.sched == nil || h.id == 0 {
		return
	}
	h.sched.cancel(h.id)
}

// Valid reports whether the handle refers to a scheduled callback.
func (h FrameHandle) Valid() bool {
	return h.sched != nil && h.id != 0
}

// RequestFrame schedules fn for the next Tick. Requests made while a tick is
// running are deferred to the tick after.
func (s *FrameScheduler) RequestFrame(fn FrameFunc) FrameHandle {
	s.nextID++
	if s.nextID == 0 {
		s.nextID = 1
	}
	s.pending = append(s.pending, frameCallback{id: s.nextID, fn: fn})
	return FrameHandle{id: s.nextID, sched: s}
}

// Pending returns the number of callbacks waiting for the next tick.
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

// Tick runs every callback queued before this call.
func (s *FrameScheduler) Tick(now time.Duration) {
	if len(s.pending) == 0 {
		return
	}
	s.running, s.pending = s.pending, s.running[:0]
	for i := range s.running {
		cb := s.running[i]
		if _, dead := s.cancelled[cb.id]; dead {
			delete(s.cancelled, cb.id)
			continue
		}
		cb.fn(now)
	}
	for i := range s.running {
		delete(s.cancelled, s.running[i].id)
		s.running[i] = frameCallback{}
	}
	s.running = s.running[:0]
}

// cancel removes a pending callback, or marks one in the running batch so
// it is skipped if it has not run yet.
func (s *FrameScheduler) cancel(id uint32) {
	for i := range s.pending {
		if s.pending[i].id == id {
			copy(s.pending[i:], s.pending[i+1:])
			s.pending[len(s.pending)-1] = frameCallback{}
			s.pending = s.pending[:len(s.pending)-1]
			return
		}
	}
	for i := range s.running {
		if s.running[i].id == id {
			s.cancelled[id] = struct{}{}
			return
		}
	}
}
