package cadence

import "github.com/phanxgames/cadence/anim"

// EventSink receives animation events. Set one with Scene.SetEventSink to
// bridge playback into an ECS or a network peer.
type EventSink interface {
	EmitEvent(event AnimationEvent)
}

// AnimationEventType identifies what happened to an animation.
type AnimationEventType uint8

const (
	EventStart AnimationEventType = iota
	EventComplete
	EventRepeat
	EventReverseComplete
)

var animationEventNames = [...]string{
	EventStart:           "start",
	EventComplete:        "complete",
	EventRepeat:          "repeat",
	EventReverseComplete: "reverseComplete",
}

func (t AnimationEventType) String() string {
	if int(t) < len(animationEventNames) {
		return animationEventNames[t]
	}
	return "unknown"
}

// AnimationEvent carries a playback event for the component with ID.
type AnimationEvent struct {
	Type AnimationEventType
	ID   string
	// TotalTime is the animation's playhead when the event fired.
	TotalTime float64
}

// callbackEvents pairs vars callback keys with the events they emit.
var callbackEvents = []struct {
	key string
	typ AnimationEventType
}{
	{"onStart", EventStart},
	{"onComplete", EventComplete},
	{"onRepeat", EventRepeat},
	{"onReverseComplete", EventReverseComplete},
}

// hookEvents returns vars whose callbacks also emit events for id. The
// user's callbacks run first. current is read when the event fires.
func (env *environment) hookEvents(id string, vars anim.Vars, current func() anim.Animation) anim.Vars {
	if id == "" {
		return vars
	}
	out := vars.Clone()
	for _, ce := range callbackEvents {
		user := vars.Func(ce.key)
		typ := ce.typ
		out[ce.key] = func() {
			if user != nil {
				user()
			}
			env.emit(id, typ, current())
		}
	}
	return out
}

// hookCompleteAll wraps a stagger group's completion callback.
func (env *environment) hookCompleteAll(id string, fn func(), current func() anim.Animation) func() {
	if id == "" {
		return fn
	}
	return func() {
		if fn != nil {
			fn()
		}
		env.emit(id, EventComplete, current())
	}
}

func (env *environment) emit(id string, typ AnimationEventType, a anim.Animation) {
	if env.sink == nil {
		return
	}
	ev := AnimationEvent{Type: typ, ID: id}
	if a != nil {
		ev.TotalTime = a.TotalTime()
	}
	env.sink.EmitEvent(ev)
}
