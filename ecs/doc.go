// Package ecs bridges riverpass scene events into a [Donburi] world.
//
// [NewDonburiStore] returns a riverpass.EventSink that publishes every scene
// event (reveal finished, button hover, button activation, item shown) as a
// typed Donburi event. Subscribe to [SceneEventType] in your systems.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
