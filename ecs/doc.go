// Package ecs provides ECS adapters for cadence's animation events.
//
// The primary adapter is [NewDonburiSink], which bridges cadence animation
// events (start, complete, repeat, reverseComplete) into a [Donburi] world as
// typed events. Subscribe to [AnimationEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
