package ecs

import (
	"github.com/phanxgames/cadence"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationEventType is the Donburi event type for cadence animation events.
// Only components with an ID emit events.
var AnimationEventType = events.NewEventType[cadence.AnimationEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Animation events are published to AnimationEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) cadence.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event cadence.AnimationEvent) {
	AnimationEventType.Publish(s.world, event)
}
