package cadence

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/phanxgames/cadence/anim"
)

// Tween is the component form of an engine tween or stagger group. Inside a
// Timeline it animates its own child nodes, or the timeline's targets when
// it has none, and registers into the timeline. Outside a Timeline it
// animates its own child nodes on the engine's root timeline.
type Tween struct {
	props   TweenProps
	ambient Context
	host    *Node

	anim    anim.Animation
	targets []*Node
	state   lifecycle

	children []mounted
}

// NewTween returns an unbuilt Tween component.
func NewTween(props TweenProps) *Tween {
	return &Tween{props: props}
}

// MountTween creates and mounts a Tween component.
func MountTween(props TweenProps, ctx Context, host *Node) *Tween {
	tw := NewTween(props)
	tw.Mount(ctx, host)
	return tw
}

// Mount mounts the child elements, then builds the engine tween against
// them.
func (tw *Tween) Mount(ctx Context, host *Node) {
	if tw.state != stateUnbuilt {
		return
	}
	tw.ambient, tw.host = ctx, host
	tw.children = reconcile(nil, tw.props.Children, ctx, host)
	tw.build()
	ctx.environment().register(tw.props.ID, tw)
	p := tw.props
	if !p.Disabled {
		applyInitial(tw.anim, p.Progress, p.TotalProgress, p.PlayState)
	}
}

// Update applies new props in a fixed order: rebuild on a changed child
// count, stop if disabled, then playback controls, To, StaggerTo and
// finally PlayState.
func (tw *Tween) Update(props TweenProps, ctx Context) {
	if tw.state != stateActive {
		return
	}
	prev := tw.props
	tw.props, tw.ambient = props, ctx
	env := ctx.environment()
	if prev.ID != props.ID {
		env.unregister(prev.ID, tw)
		env.register(props.ID, tw)
	}
	tw.children = reconcile(tw.children, props.Children, ctx, tw.host)

	if countChildren(prev.Children) != countChildren(props.Children) {
		tw.dispose()
		tw.build()
	}
	if props.Disabled {
		return
	}

	a := tw.anim
	applyControls(a, prev.Progress, props.Progress, prev.TotalProgress, props.TotalProgress, prev.Duration, props.Duration)

	if !varsEqual(prev.To, props.To) {
		a.SetVars(env.hookEvents(props.ID, props.To.Merge(props.Vars), tw.Animation))
		a.Invalidate()
		if !a.Paused() {
			a.Restart(false)
		}
	}
	if !varsEqual(prev.StaggerTo, props.StaggerTo) {
		if group, ok := a.(anim.Sequencer); ok {
			for i, child := range group.Children() {
				child.SetVars(props.StaggerTo.Merge(props.Vars, anim.Vars{"delay": props.Stagger * float64(i)}))
				child.Invalidate()
			}
			if !a.Paused() {
				a.Restart(true)
			}
		}
	}

	ApplyPlayState(a, prev.PlayState, props.PlayState)
}

// Unmount kills the engine tween, if one was built, and unmounts the child
// elements.
func (tw *Tween) Unmount() {
	if tw.state == stateDisposed {
		return
	}
	wasActive := tw.state == stateActive
	tw.dispose()
	unmountAll(tw.children)
	tw.children = nil
	if wasActive {
		tw.ambient.environment().unregister(tw.props.ID, tw)
	}
}

// build resolves targets and creates the engine tween. It moves the
// component from unbuilt or disposed to active.
func (tw *Tween) build() {
	ctx, p := tw.ambient, tw.props
	env := ctx.environment()

	tw.targets = collectTargets(p.Children)
	if ctx.Timeline != nil {
		if len(tw.targets) == 0 {
			tw.targets = ctx.Targets
		}
	} else if len(tw.targets) == 0 {
		warnf("tween %q has no targets: put it inside a Timeline or give it node children", p.ID)
	}

	tw.anim = newEngineTween(env, asTargets(tw.targets), p, tw.Animation)
	if ctx.Timeline != nil {
		addToTimeline(ctx.Timeline, tw.anim, p.Position, p.Align, p.Stagger)
	}
	tw.state = stateActive
}

// dispose kills the engine tween. It is the only transition into the
// disposed state.
func (tw *Tween) dispose() {
	if tw.state == stateActive && tw.anim != nil {
		tw.anim.Kill()
	}
	tw.state = stateDisposed
}

// ID returns the ID prop.
func (tw *Tween) ID() string { return tw.props.ID }

// Animation returns the engine tween or stagger group, or nil before Mount.
func (tw *Tween) Animation() anim.Animation { return tw.anim }

// Targets returns the nodes the tween was built against.
func (tw *Tween) Targets() []*Node { return tw.targets }

// newEngineTween picks the engine constructor for p: a single tween for
// From/To, a stagger group for StaggerFrom/StaggerTo, and a To tween over
// Vars alone otherwise.
func newEngineTween(env *environment, targets []anim.Target, p TweenProps, current func() anim.Animation) anim.Animation {
	f := env.factory
	duration := anim.DefaultDuration
	if p.Duration != nil {
		duration = *p.Duration
	}
	hook := func(v anim.Vars) anim.Vars { return env.hookEvents(p.ID, v, current) }
	completeAll := env.hookCompleteAll(p.ID, p.OnCompleteAll, current)

	switch {
	case p.From != nil && p.To != nil:
		return f.FromTo(targets, duration, p.From, hook(p.To.Merge(p.Vars)))
	case p.To != nil:
		return f.To(targets, duration, hook(p.To.Merge(p.Vars)))
	case p.From != nil:
		return f.From(targets, duration, hook(p.From.Merge(p.Vars)))
	case p.StaggerFrom != nil && p.StaggerTo != nil:
		return f.StaggerFromTo(targets, duration, p.StaggerFrom, p.StaggerTo.Merge(p.Vars), p.Stagger, completeAll)
	case p.StaggerFrom != nil:
		return f.StaggerFrom(targets, duration, p.StaggerFrom.Merge(p.Vars), p.Stagger, completeAll)
	case p.StaggerTo != nil:
		return f.StaggerTo(targets, duration, p.StaggerTo.Merge(p.Vars), p.Stagger, completeAll)
	}
	return f.To(targets, duration, hook(p.Vars.Clone()))
}

// varsEqual compares vars structurally. Nil and empty are equal.
func varsEqual(a, b anim.Vars) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}
