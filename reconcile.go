package cadence

import "github.com/phanxgames/cadence/anim"

// Component is a mounted Timeline or Tween.
type Component interface {
	// ID returns the component's ID prop, possibly empty.
	ID() string
	// Animation returns the engine object the component owns, or nil
	// before it has been built.
	Animation() anim.Animation
	// Unmount kills the owned animation and unmounts nested elements.
	// Calling it more than once is a no-op.
	Unmount()
}

// mounted is the reconciler's handle on one element slot.
type mounted interface {
	accepts(el Element) bool
	update(el Element, ctx Context)
	unmount()
}

// reconcile brings prev in line with elems, slot by slot. A slot whose
// element kind is unchanged is updated in place; any other slot is
// unmounted and mounted afresh. Nil elements leave an empty slot.
func reconcile(prev []mounted, elems []Element, ctx Context, host *Node) []mounted {
	next := make([]mounted, len(elems))
	for i, el := range elems {
		var old mounted
		if i < len(prev) {
			old = prev[i]
		}
		switch {
		case isNilElement(el):
			if old != nil {
				old.unmount()
			}
		case old != nil && old.accepts(el):
			old.update(el, ctx)
			next[i] = old
		default:
			if old != nil {
				old.unmount()
			}
			next[i] = mountElement(el, ctx, host)
		}
	}
	for i := len(elems); i < len(prev); i++ {
		if prev[i] != nil {
			prev[i].unmount()
		}
	}
	return next
}

func unmountAll(ms []mounted) {
	for _, m := range ms {
		if m != nil {
			m.unmount()
		}
	}
}

func mountElement(el Element, ctx Context, host *Node) mounted {
	switch e := el.(type) {
	case *Node:
		m := &nodeMount{env: ctx.environment(), host: host}
		m.attach(e)
		return m
	case Fragment:
		return &fragmentMount{children: reconcile(nil, e, ctx, host), host: host}
	case TimelineProps:
		return timelineMount{MountTimeline(e, ctx, host)}
	case TweenProps:
		return tweenMount{MountTween(e, ctx, host)}
	}
	warnf("cannot mount element of type %T", el)
	return nil
}

// --- Nodes ---

// nodeMount keeps a *Node element attached to the host node. Attachment is
// reference counted per environment so a node that moves between slots in
// one pass stays attached.
type nodeMount struct {
	env  *environment
	host *Node
	node *Node
}

func (m *nodeMount) accepts(el Element) bool {
	_, ok := el.(*Node)
	return ok
}

func (m *nodeMount) update(el Element, _ Context) {
	n := el.(*Node)
	if n == m.node {
		return
	}
	old := m.node
	m.attach(n)
	m.env.detach(old, m.host)
}

func (m *nodeMount) attach(n *Node) {
	m.node = n
	m.env.attach(n, m.host)
}

func (m *nodeMount) unmount() {
	m.env.detach(m.node, m.host)
	m.node = nil
}

func (env *environment) attach(n, host *Node) {
	if n == nil || host == nil {
		return
	}
	if n.disposed {
		if globalDebug {
			debugCheckDisposed(n, "mount")
		}
		return
	}
	if env.attached == nil {
		env.attached = make(map[*Node]int)
	}
	env.attached[n]++
	if n.Parent != host {
		host.AddChild(n)
	}
}

func (env *environment) detach(n, host *Node) {
	if n == nil || host == nil || env.attached[n] == 0 {
		return
	}
	env.attached[n]--
	if env.attached[n] > 0 {
		return
	}
	delete(env.attached, n)
	if n.Parent == host {
		host.RemoveChild(n)
	}
}

// --- Fragments ---

type fragmentMount struct {
	host     *Node
	children []mounted
}

func (m *fragmentMount) accepts(el Element) bool {
	_, ok := el.(Fragment)
	return ok
}

func (m *fragmentMount) update(el Element, ctx Context) {
	m.children = reconcile(m.children, el.(Fragment), ctx, m.host)
}

func (m *fragmentMount) unmount() {
	unmountAll(m.children)
	m.children = nil
}

// --- Components ---

type timelineMount struct{ *Timeline }

func (timelineMount) accepts(el Element) bool {
	_, ok := el.(TimelineProps)
	return ok
}

func (m timelineMount) update(el Element, ctx Context) { m.Update(el.(TimelineProps), ctx) }
func (m timelineMount) unmount() { m.Unmount() }

type tweenMount struct{ *Tween }

func (tweenMount) accepts(el Element) bool {
	_, ok := el.(TweenProps)
	return ok
}

func (m tweenMount) update(el Element, ctx Context) { m.Update(el.(TweenProps), ctx) }
func (m tweenMount) unmount() { m.Unmount() }
