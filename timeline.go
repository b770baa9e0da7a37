package cadence

import (
	"slices"

	"github.com/phanxgames/cadence/anim"
)

// Timeline is the component form of an engine timeline. It collects the
// nodes of its Target elements and provides them, with its timeline, as
// the Context of everything nested in Children.
type Timeline struct {
	props   TimelineProps
	ambient Context
	host    *Node

	tl    anim.Sequencer
	ctx   Context
	state lifecycle

	targets  []mounted
	children []mounted
}

// NewTimeline returns an unbuilt Timeline component.
func NewTimeline(props TimelineProps) *Timeline {
	return &Timeline{props: props}
}

// MountTimeline creates and mounts a Timeline component. Nodes rendered by
// it are attached to host, which may be nil.
func MountTimeline(props TimelineProps, ctx Context, host *Node) *Timeline {
	t := NewTimeline(props)
	t.Mount(ctx, host)
	return t
}

// Mount builds the engine timeline, registers it into ctx's timeline if
// there is one, and mounts the target and child elements.
func (t *Timeline) Mount(ctx Context, host *Node) {
	if t.state != stateUnbuilt {
		return
	}
	t.ambient, t.host = ctx, host
	env := ctx.environment()
	p := t.props

	vars := anim.Vars{"smoothChildTiming": true}.Merge(p.Vars)
	vars = env.hookEvents(p.ID, vars, t.Animation)
	t.tl = env.factory.Timeline(vars)
	if ctx.Timeline != nil {
		addToTimeline(ctx.Timeline, t.tl, p.Position, p.Align, p.Stagger)
	}
	if p.Duration != nil {
		t.tl.SetDuration(*p.Duration)
	}
	t.state = stateActive
	env.register(p.ID, t)

	t.render()
	applyInitial(t.tl, p.Progress, p.TotalProgress, p.PlayState)
}

// Update applies new props. Target and child elements are reconciled
// first; then every changed playback control is pushed to the engine.
func (t *Timeline) Update(props TimelineProps, ctx Context) {
	if t.state != stateActive {
		return
	}
	prev := t.props
	t.props, t.ambient = props, ctx
	if prev.ID != props.ID {
		env := ctx.environment()
		env.unregister(prev.ID, t)
		env.register(props.ID, t)
	}
	t.render()
	applyControls(t.tl, prev.Progress, props.Progress, prev.TotalProgress, props.TotalProgress, prev.Duration, props.Duration)
	ApplyPlayState(t.tl, prev.PlayState, props.PlayState)
}

// Unmount kills the engine timeline and unmounts nested elements.
func (t *Timeline) Unmount() {
	if t.state == stateDisposed {
		return
	}
	if t.tl != nil {
		t.tl.Kill()
	}
	unmountAll(t.targets)
	unmountAll(t.children)
	t.targets, t.children = nil, nil
	if t.state == stateActive {
		t.ambient.environment().unregister(t.props.ID, t)
	}
	t.state = stateDisposed
}

// render collects targets, derives the context for nested components and
// reconciles the target and child elements under it.
func (t *Timeline) render() {
	targets := collectTargets(t.props.Target)
	if len(targets) == 0 {
		targets = t.ambient.Targets
	}
	t.ctx = t.ambient.with(t.tl, slices.Clip(targets))
	t.targets = reconcile(t.targets, t.props.Target, t.ctx, t.host)
	t.children = reconcile(t.children, t.props.Children, t.ctx, t.host)
}

// ID returns the ID prop.
func (t *Timeline) ID() string { return t.props.ID }

// Animation returns the engine timeline, or nil before Mount.
func (t *Timeline) Animation() anim.Animation {
	if t.tl == nil {
		return nil
	}
	return t.tl
}

// Sequencer returns the engine timeline, or nil before Mount.
func (t *Timeline) Sequencer() anim.Sequencer { return t.tl }

// Context returns the context provided to nested components.
func (t *Timeline) Context() Context { return t.ctx }

// Targets returns the targets provided to nested components: the collected
// Target nodes, or the ambient targets when none were collected.
func (t *Timeline) Targets() []*Node { return t.ctx.Targets }

// addToTimeline registers a into parent using the placement defaults.
func addToTimeline(parent anim.Sequencer, a anim.Animation, position string, align anim.Align, stagger float64) {
	if position == "" {
		position = "+=0"
	}
	if align == "" {
		align = anim.AlignNormal
	}
	if err := parent.Add([]anim.Animation{a}, position, align, stagger); err != nil {
		warnf("add to timeline at %q: %v", position, err)
	}
}

// applyInitial pushes controls set at mount time.
func applyInitial(a anim.Animation, progress, totalProgress *float64, state PlayState) {
	applyControls(a, nil, progress, nil, totalProgress, nil, nil)
	ApplyPlayState(a, "", state)
}

// applyControls calls each setter whose value changed to a set value.
func applyControls(a anim.Animation, prevP, p, prevTP, tp, prevD, d *float64) {
	if changed(prevP, p) {
		a.SetProgress(*p)
	}
	if changed(prevTP, tp) {
		a.SetTotalProgress(*tp)
	}
	if changed(prevD, d) {
		a.SetDuration(*d)
	}
}

// changed reports whether next is set and differs from prev.
func changed(prev, next *float64) bool {
	if next == nil {
		return false
	}
	return prev == nil || *prev != *next
}
