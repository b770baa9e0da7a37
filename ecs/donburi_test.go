package ecs

import (
	"testing"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/anim"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []cadence.AnimationEvent
	AnimationEventType.Subscribe(world, func(w donburi.World, e cadence.AnimationEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(cadence.AnimationEvent{Type: cadence.EventStart, ID: "intro"})
	sink.EmitEvent(cadence.AnimationEvent{Type: cadence.EventComplete, ID: "intro", TotalTime: 1.5})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	AnimationEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != cadence.EventStart || received[0].ID != "intro" {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != cadence.EventComplete || received[1].TotalTime != 1.5 {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	AnimationEventType.Subscribe(world, func(w donburi.World, e cadence.AnimationEvent) {
		count1++
	})
	AnimationEventType.Subscribe(world, func(w donburi.World, e cadence.AnimationEvent) {
		count2++
	})

	sink.EmitEvent(cadence.AnimationEvent{Type: cadence.EventRepeat, ID: "loop"})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_FromScene(t *testing.T) {
	world := donburi.NewWorld()
	s := cadence.NewScene(anim.New(anim.Config{}))
	s.SetEventSink(NewDonburiSink(world))

	var got []string
	AnimationEventType.Subscribe(world, func(w donburi.World, e cadence.AnimationEvent) {
		got = append(got, e.ID+":"+e.Type.String())
	})

	s.Render(cadence.TweenProps{
		ID:       "fade",
		To:       anim.Vars{"alpha": 0},
		Duration: cadence.Float(0.5),
		Children: []cadence.Element{cadence.NewNode("n")},
	})
	s.Update(0.25)
	s.Update(0.5)
	events.ProcessAllEvents(world)

	want := []string{"fade:start", "fade:complete"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %v, want %v", got, want)
	}
}
