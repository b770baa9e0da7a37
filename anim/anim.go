// Package anim is cadence's retained animation engine: tweens that drive
// named properties of targets over time, timelines that compose them, and a
// process-wide [Engine] whose root timeline is advanced by the host loop.
//
// Interpolation is delegated to [gween] and its ease package; colour
// properties are blended in Lab space with [go-colorful].
//
// The engine is single-threaded. All calls, including [Engine.Tick], must
// come from the goroutine that drives the host frame loop.
//
// [gween]: https://github.com/tanema/gween
// [go-colorful]: https://github.com/lucasb-eyer/go-colorful
package anim

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultDuration is the duration in seconds used by callers that have no
// explicit duration for a tween.
const DefaultDuration = 0.5

// Sentinel errors returned by timeline placement.
var (
	ErrUnknownLabel     = errors.New("anim: unknown label")
	ErrInvalidPosition  = errors.New("anim: invalid position")
	ErrInvalidAlign     = errors.New("anim: invalid align")
	ErrForeignAnimation = errors.New("anim: animation was not created by this package")
	ErrKilled           = errors.New("anim: animation has been killed")
)

// Target is anything with named numeric properties that a tween can drive.
type Target interface {
	// Property returns the current value of the named property. The boolean
	// is false when the target cannot hold the property at all.
	Property(name string) (float64, bool)
	SetProperty(name string, v float64)
}

// ColorTarget is a Target that also exposes colour properties.
type ColorTarget interface {
	Target
	ColorProperty(name string) (c colorful.Color, alpha float64, ok bool)
	SetColorProperty(name string, c colorful.Color, alpha float64)
}

// VisibilityTarget is a Target whose visibility can be toggled. Used by the
// autoAlpha plugin.
type VisibilityTarget interface {
	Target
	SetVisible(visible bool)
}

// Animation is the playback surface shared by tweens and timelines.
//
// Times are in seconds. Duration and Progress refer to a single iteration;
// the Total variants include repeats and repeat delays.
type Animation interface {
	Duration() float64
	SetDuration(d float64)
	TotalDuration() float64
	Time() float64
	TotalTime() float64
	Seek(totalTime float64)
	Progress() float64
	SetProgress(p float64)
	TotalProgress() float64
	SetTotalProgress(p float64)
	Delay() float64
	SetDelay(d float64)
	TimeScale() float64
	SetTimeScale(s float64)

	Play()
	Pause()
	PauseAt(totalTime float64)
	Resume()
	Reverse()
	ReverseFrom(totalTime float64)
	Restart(includeDelay bool)
	Paused() bool
	Reversed() bool
	IsActive() bool

	// Vars returns a copy of the animation's configuration.
	Vars() Vars
	// SetVars replaces the configuration. Already-recorded start values are
	// kept until Invalidate is called.
	SetVars(v Vars)
	// Invalidate discards recorded start and end values so they are read
	// again on the next render.
	Invalidate()
	Kill()
	Killed() bool
}

// Tweener is an Animation that drives targets directly.
type Tweener interface {
	Animation
	Targets() []Target
}

// Sequencer is an Animation that contains other animations.
type Sequencer interface {
	Animation
	// Add places children at position. See ParsePosition for the position
	// grammar and Align for how multiple children are laid out.
	Add(children []Animation, position string, align Align, stagger float64) error
	AddLabel(name, position string) error
	Children() []Animation
	Remove(child Animation)
	Clear()
}

// Factory constructs engine animations. *Engine implements it; tests can
// substitute a recording fake.
type Factory interface {
	Timeline(vars Vars) Sequencer
	To(targets []Target, duration float64, vars Vars) Animation
	From(targets []Target, duration float64, vars Vars) Animation
	FromTo(targets []Target, duration float64, from, to Vars) Animation
	StaggerTo(targets []Target, duration float64, vars Vars, stagger float64, onCompleteAll func()) Sequencer
	StaggerFrom(targets []Target, duration float64, vars Vars, stagger float64, onCompleteAll func()) Sequencer
	StaggerFromTo(targets []Target, duration float64, from, to Vars, stagger float64, onCompleteAll func()) Sequencer
}

// Align controls how Sequencer.Add lays out several children.
type Align string

const (
	// AlignNormal places every child at the position, offset by stagger*index.
	AlignNormal Align = "normal"
	// AlignSequence places children one after another, separated by stagger.
	AlignSequence Align = "sequence"
	// AlignStart is like AlignNormal but ignores each child's delay.
	AlignStart Align = "start"
)

// Valid reports whether a is one of the known alignments. The empty string
// is treated as AlignNormal.
func (a Align) Valid() bool {
	switch a {
	case "", AlignNormal, AlignSequence, AlignStart:
		return true
	}
	return false
}
