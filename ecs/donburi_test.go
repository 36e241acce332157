package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/riverpass"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiStore(world) == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStoreQueuesUntilProcessed(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []riverpass.SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e riverpass.SceneEvent) {
		received = append(received, e)
	})

	store.EmitEvent(riverpass.SceneEvent{
		Type:   riverpass.EventHoverEnter,
		Target: riverpass.ButtonTarget,
		X:      320,
		Y:      240,
		At:     3 * time.Second,
	})
	store.EmitEvent(riverpass.SceneEvent{Type: riverpass.EventRevealed, At: 2500 * time.Millisecond})

	if len(received) != 0 {
		t.Fatalf("delivered %d events before ProcessEvents", len(received))
	}
	SceneEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != riverpass.EventHoverEnter || e0.Target != "rsvp" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 320 || e0.Y != 240 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}
	if received[1].Type != riverpass.EventRevealed {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStoreImplementsEventSink(t *testing.T) {
	var _ riverpass.EventSink = NewDonburiStore(donburi.NewWorld())
}

func TestDonburiStoreMultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	SceneEventType.Subscribe(world, func(w donburi.World, e riverpass.SceneEvent) {
		count1++
	})
	SceneEventType.Subscribe(world, func(w donburi.World, e riverpass.SceneEvent) {
		count2++
	})

	store.EmitEvent(riverpass.SceneEvent{Type: riverpass.EventActivate})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
