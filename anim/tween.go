package anim

import (
	"maps"
	"slices"

	"github.com/tanema/gween/ease"
)

type tweenMode uint8

const (
	modeTo tweenMode = iota
	modeFrom
	modeFromTo
)

// Tween animates the properties named in its vars on one or more targets.
// Start values are captured lazily, the first time the tween renders after
// creation or Invalidate.
type Tween struct {
	core

	targets  []Target
	duration float64
	mode     tweenMode
	// to holds the destination vars (To and FromTo), from the origin vars
	// (From and FromTo).
	to, from Vars
	easeFn   ease.TweenFunc

	interps []Interpolator
	initted bool
}

var _ Tweener = (*Tween)(nil)

func newTween(e *Engine, targets []Target, duration float64, mode tweenMode, from, to Vars) *Tween {
	tw := &Tween{
		targets:  slices.Clone(targets),
		duration: max(0, duration),
		mode:     mode,
		from:     from.Clone(),
		to:       to.Clone(),
	}
	tw.engine = e
	tw.self = tw
	tw.impl = tw
	primary := tw.primaryVars()
	tw.configure(primary)
	tw.paused = primary.Bool("paused", false)
	tw.reversed = primary.Bool("reversed", false)
	if primary.Bool("immediateRender", mode != modeTo) && len(tw.targets) > 0 {
		tw.renderTotal(0, true)
	}
	return tw
}

// primaryVars is the vars map that carries timing keys for this mode.
func (tw *Tween) primaryVars() Vars {
	if tw.mode == modeFrom {
		return tw.from
	}
	return tw.to
}

func (tw *Tween) configure(v Vars) {
	tw.applyTiming(v)
	if raw, ok := v["duration"]; ok {
		if d, ok := toFloat(raw); ok {
			tw.duration = max(0, d)
		}
	}
	tw.easeFn = tw.engine.eases.lookup(v["ease"])
}

// Targets returns the objects the tween animates.
func (tw *Tween) Targets() []Target { return slices.Clone(tw.targets) }

// Duration returns the length of one iteration.
func (tw *Tween) Duration() float64 { return tw.duration }

// SetDuration changes the iteration length, keeping overall progress.
func (tw *Tween) SetDuration(d float64) {
	p := tw.TotalProgress()
	tw.duration = max(0, d)
	tw.totalTime = p * tw.totalDurationLocal()
	tw.time, tw.iteration = tw.iterationTime(tw.totalTime)
	tw.dirty = true
	tw.realign()
}

// SetVars replaces the configuration. For a FromTo tween v holds the
// destination and, under "startAt", the origin. Captured start values are
// kept until Invalidate.
func (tw *Tween) SetVars(v Vars) {
	v = v.Clone()
	switch tw.mode {
	case modeFrom:
		tw.from = v
	case modeFromTo:
		tw.to = v
		if start := v.Vars("startAt"); start != nil {
			tw.from = start.Clone()
		}
	default:
		tw.to = v
	}
	tw.configure(v)
	tw.dirty = true
}

func (tw *Tween) iterationDuration() float64 { return tw.duration }

func (tw *Tween) renderIteration(t float64, _ bool) {
	if len(tw.targets) == 0 {
		return
	}
	if !tw.initted {
		tw.init()
	}
	r := 1.0
	if tw.duration > 0 {
		r = t / tw.duration
	}
	for _, ip := range tw.interps {
		ip.Render(float32(r))
	}
}

func (tw *Tween) init() {
	tw.interps = tw.interps[:0]
	names := tw.propertyNames()
	for _, target := range tw.targets {
		for _, name := range names {
			spec := PropSpec{Target: target, Name: name, Ease: tw.easeFn}
			switch tw.mode {
			case modeTo:
				spec.To = tw.to[name]
			case modeFrom:
				spec.From = tw.from[name]
			case modeFromTo:
				spec.From = tw.from[name]
				spec.To = tw.to[name]
			}
			ip, err := tw.engine.pluginFor(name, spec).Init(spec)
			if err != nil {
				warnf("tween: %v", err)
				continue
			}
			if ip != nil {
				tw.interps = append(tw.interps, ip)
			}
		}
	}
	tw.initted = true
}

func (tw *Tween) propertyNames() []string {
	set := make(map[string]struct{})
	if tw.mode != modeFrom {
		for _, k := range tw.to.Properties() {
			set[k] = struct{}{}
		}
	}
	if tw.mode != modeTo {
		for _, k := range tw.from.Properties() {
			set[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

func (tw *Tween) invalidate() {
	tw.initted = false
	tw.interps = nil
}

func (tw *Tween) kill() {
	tw.interps = nil
}
