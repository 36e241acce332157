package riverpass

import "time"

// SceneEventType identifies a scene-level event.
type SceneEventType uint8

const (
	EventRevealed   SceneEventType = iota // reveal reached its floor
	EventHoverEnter                       // pointer entered a hover target
	EventHoverLeave                       // pointer left a hover target
	EventActivate                         // press then release over a hover target
	EventItemShown                        // a sequencer item began its transition
)

// String returns the event name.
func (t SceneEventType) String() string {
	switch t {
	case EventRevealed:
		return "revealed"
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverLeave:
		return "hover-leave"
	case EventActivate:
		return "activate"
	case EventItemShown:
		return "item-shown"
	default:
		return "unknown"
	}
}

// SceneEvent carries one event to an EventSink.
type SceneEvent struct {
	Type SceneEventType
	// Target names the element involved, empty for scene-wide events.
	Target string
	// X and Y are the pointer position in surface pixels.
	X, Y float64
	// At is the scene clock reading when the event fired.
	At time.Duration
}

// EventSink receives scene events. When set on a Scene, every event is
// forwarded in the order it fired.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// EventRecorder is an EventSink that keeps every event in memory.
type EventRecorder struct {
	Events []SceneEvent
}

// EmitEvent appends event.
func (r *EventRecorder) EmitEvent(event SceneEvent) {
	r.Events = append(r.Events, event)
}

// Count returns how many recorded events have type t.
func (r *EventRecorder) Count(t SceneEventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (s *Scene) emit(t SceneEventType, target string) {
	if s.sink == nil {
		return
	}
	p := s.frame.Pointer
	s.sink.EmitEvent(SceneEvent{
		Type:   t,
		Target: target,
		X:      p.X,
		Y:      p.Y,
		At:     s.frame.Now,
	})
}
