package ecs

import (
	"github.com/phanxgames/riverpass"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for riverpass scene events.
var SceneEventType = events.NewEventType[riverpass.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Events are
// queued on SceneEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) riverpass.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event riverpass.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
