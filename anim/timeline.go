package anim

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var errCycle = errors.New("anim: a timeline cannot contain itself")

// Timeline is a container animation. Children are placed at a start time
// on the timeline and rendered from its playhead.
type Timeline struct {
	core

	children []Animation
	labels   map[string]float64
	// smoothChildTiming lets children be paused, reversed or re-timed
	// without jumping: their start moves to keep the playhead in place.
	smoothChildTiming bool
	root              bool
	lastT             float64
}

var _ Sequencer = (*Timeline)(nil)

func newTimeline(e *Engine, vars Vars) *Timeline {
	tl := &Timeline{labels: make(map[string]float64)}
	tl.engine = e
	tl.self = tl
	tl.impl = tl
	v := vars.Clone()
	tl.configure(v)
	tl.paused = v.Bool("paused", false)
	tl.reversed = v.Bool("reversed", false)
	return tl
}

func (tl *Timeline) configure(v Vars) {
	tl.applyTiming(v)
	tl.smoothChildTiming = v.Bool("smoothChildTiming", false)
	if raw, ok := v["duration"]; ok {
		if d, ok := toFloat(raw); ok {
			tl.fixedDuration = max(0, d)
		}
	}
}

// SetVars replaces the configuration.
func (tl *Timeline) SetVars(v Vars) {
	v = v.Clone()
	tl.configure(v)
	tl.dirty = true
}

// Duration returns the forced duration when one is set, otherwise the end
// of the last child. A timeline holding an endlessly repeating child lasts
// forever (+Inf) and cannot be stretched.
func (tl *Timeline) Duration() float64 {
	d := tl.iterationDuration()
	if tl.fixedDuration > 0 && !math.IsInf(d, 1) {
		return tl.fixedDuration
	}
	return d
}

// SetDuration forces the timeline to last d by scaling its time. A
// non-positive d restores the natural duration.
func (tl *Timeline) SetDuration(d float64) {
	tl.fixedDuration = max(0, d)
	tl.realign()
}

// Add places children at position. With AlignSequence each child follows
// the previous one; with AlignStart child delays are ignored. stagger
// offsets successive children.
func (tl *Timeline) Add(children []Animation, position string, align Align, stagger float64) error {
	if tl.killed {
		return ErrKilled
	}
	if !align.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAlign, string(align))
	}
	bases := make([]*core, 0, len(children))
	for _, ch := range children {
		cb := baseOf(ch)
		if cb == nil || cb.engine != tl.engine {
			return ErrForeignAnimation
		}
		if cb.killed {
			return ErrKilled
		}
		if tl.hasAncestor(cb) {
			return errCycle
		}
		bases = append(bases, cb)
	}
	pos, err := ParsePosition(position)
	if err != nil {
		return err
	}
	at, err := pos.resolve(tl.end(), tl.labels)
	if err != nil {
		return err
	}
	cursor := at
	for i, cb := range bases {
		switch align {
		case AlignSequence:
			tl.insert(cb, cursor, true)
			cursor = cb.start + cb.placedSpan() + stagger
		case AlignStart:
			tl.insert(cb, at+stagger*float64(i), false)
		default:
			tl.insert(cb, at+stagger*float64(i), true)
		}
	}
	return nil
}

// AddLabel marks a named time on the timeline.
func (tl *Timeline) AddLabel(name, position string) error {
	if name == "" {
		return fmt.Errorf("%w: empty label name", ErrInvalidPosition)
	}
	pos, err := ParsePosition(position)
	if err != nil {
		return err
	}
	at, err := pos.resolve(tl.end(), tl.labels)
	if err != nil {
		return err
	}
	tl.labels[name] = at
	return nil
}

// Label returns the time of a label.
func (tl *Timeline) Label(name string) (float64, bool) {
	at, ok := tl.labels[name]
	return at, ok
}

// Children returns the direct children in insertion order.
func (tl *Timeline) Children() []Animation {
	return slices.Clone(tl.children)
}

// Remove detaches a child. The child stops rendering until added elsewhere.
func (tl *Timeline) Remove(a Animation) {
	if cb := baseOf(a); cb != nil && cb.parent == tl {
		tl.removeChild(cb)
	}
}

// Clear removes every child and label.
func (tl *Timeline) Clear() {
	for _, ch := range tl.Children() {
		tl.Remove(ch)
	}
	clear(tl.labels)
}

// end is where "" positions resolve to.
func (tl *Timeline) end() float64 {
	if tl.root {
		return tl.engine.time
	}
	return tl.childrenEnd(true)
}

func (tl *Timeline) hasAncestor(cb *core) bool {
	for p := tl; p != nil; p = p.parent {
		if &p.core == cb {
			return true
		}
	}
	return false
}

func (tl *Timeline) insert(cb *core, at float64, withDelay bool) {
	if cb.parent != nil {
		cb.parent.removeChild(cb)
	}
	cb.parent = tl
	cb.placed = at
	cb.start = at
	if withDelay {
		cb.start += cb.delay
	}
	tl.children = append(tl.children, cb.self)
}

func (tl *Timeline) removeChild(cb *core) {
	tl.children = slices.DeleteFunc(tl.children, func(a Animation) bool {
		return baseOf(a) == cb
	})
	cb.parent = nil
}

// iterationDuration is the end of the last child, +Inf when a child
// repeats forever.
func (tl *Timeline) iterationDuration() float64 {
	return tl.childrenEnd(false)
}

// childrenEnd is the latest child end. With placed set, endless children
// count a single iteration.
func (tl *Timeline) childrenEnd(placed bool) float64 {
	end := 0.0
	for _, ch := range tl.children {
		cb := baseOf(ch)
		span := cb.parentSpan()
		if placed {
			span = cb.placedSpan()
		}
		if e := cb.start + span; e > end {
			end = e
		}
	}
	return end
}

func (tl *Timeline) renderIteration(t float64, force bool) {
	children := slices.Clone(tl.children)
	if t < tl.lastT {
		// Backwards: render later children first so earlier ones win.
		slices.Reverse(children)
	}
	tl.lastT = t
	for _, ch := range children {
		cb := baseOf(ch)
		if cb.parent != tl || cb.killed {
			continue
		}
		if cb.paused && !force {
			continue
		}
		local := cb.localFromParent(t)
		if local < 0 && cb.totalTime <= 0 {
			continue
		}
		if cb.paused {
			// A forced render only refreshes paused children in place.
			cb.renderTotal(cb.totalTime, true)
			continue
		}
		cb.renderTotal(local, force)
	}
}

func (tl *Timeline) invalidate() {
	for _, ch := range tl.children {
		ch.Invalidate()
	}
}

func (tl *Timeline) kill() {}
