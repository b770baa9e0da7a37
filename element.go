package cadence

import "github.com/phanxgames/cadence/anim"

// Element is one entry of a declarative tree. The concrete kinds are
// *Node, Fragment, TimelineProps and TweenProps.
type Element interface {
	isElement()
}

// Fragment groups elements without adding a component of its own. A
// Fragment inside a Timeline's Target list is flattened one level.
type Fragment []Element

func (Fragment) isElement() {}

// TimelineProps declares a Timeline component.
type TimelineProps struct {
	// ID names the component for Scene.Lookup, Scene.Control and events.
	ID string

	// Target lists the elements whose nodes become the timeline's targets.
	Target []Element

	// Live playback controls. A nil pointer or empty PlayState means unset.
	Duration      *float64
	Progress      *float64
	TotalProgress *float64
	PlayState     PlayState

	// Placement inside an ancestor timeline. Defaults: "+=0", normal, 0.
	Position string
	Align    anim.Align
	Stagger  float64

	// Vars is passed through to the engine timeline.
	Vars anim.Vars

	Children []Element
}

func (TimelineProps) isElement() {}

// TweenProps declares a Tween component.
type TweenProps struct {
	ID string

	// Duration of each tween in seconds. Nil uses anim.DefaultDuration.
	Duration      *float64
	Progress      *float64
	TotalProgress *float64
	PlayState     PlayState

	Position string
	Align    anim.Align
	// Stagger is the per-target delay of a stagger group and the stagger
	// passed when registering into an ancestor timeline.
	Stagger float64

	To          anim.Vars
	From        anim.Vars
	StaggerTo   anim.Vars
	StaggerFrom anim.Vars

	// Disabled freezes the tween: later prop changes other than the child
	// count are ignored.
	Disabled bool
	// OnCompleteAll runs when every tween of a stagger group has finished.
	OnCompleteAll func()

	Vars anim.Vars

	Children []Element
}

func (TweenProps) isElement() {}

// collectTargets returns the nodes named directly in elems, flattening
// fragments one level. Disposed nodes are skipped, or panic in debug mode.
func collectTargets(elems []Element) []*Node {
	var out []*Node
	add := func(el Element) {
		n, ok := el.(*Node)
		if !ok || n == nil {
			return
		}
		if n.disposed {
			if globalDebug {
				debugCheckDisposed(n, "animation target")
			}
			return
		}
		out = append(out, n)
	}
	for _, el := range elems {
		if frag, ok := el.(Fragment); ok {
			for _, inner := range frag {
				add(inner)
			}
			continue
		}
		add(el)
	}
	return out
}

// countChildren counts the non-nil top-level elements.
func countChildren(elems []Element) int {
	n := 0
	for _, el := range elems {
		if !isNilElement(el) {
			n++
		}
	}
	return n
}

func isNilElement(el Element) bool {
	if el == nil {
		return true
	}
	n, ok := el.(*Node)
	return ok && n == nil
}

// asTargets converts nodes to engine targets.
func asTargets(nodes []*Node) []anim.Target {
	out := make([]anim.Target, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
