package ecs

import (
	"github.com/phanxgames/tooni"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CompositionEventType is the Donburi event type for tooni controller events.
var CompositionEventType = events.NewEventType[tooni.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to CompositionEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) tooni.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event tooni.Event) {
	CompositionEventType.Publish(s.world, event)
}
