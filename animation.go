package cadence

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/cadence/anim"
)

// Convenience constructors for one-off node tweens outside a component tree.
// Each returns an engine animation that starts immediately on f's root
// timeline; advance it by ticking the engine. A nil ease uses the engine
// default. Writes to a disposed node are ignored by the node itself.

// TweenPosition animates node.X and node.Y to the given coordinates.
func TweenPosition(f anim.Factory, node *Node, toX, toY, duration float64, fn ease.TweenFunc) anim.Animation {
	return f.To(nodeTargets(node), duration, easeVars(fn, anim.Vars{"x": toX, "y": toY}))
}

// TweenScale animates node.ScaleX and node.ScaleY to the given values.
func TweenScale(f anim.Factory, node *Node, toSX, toSY, duration float64, fn ease.TweenFunc) anim.Animation {
	return f.To(nodeTargets(node), duration, easeVars(fn, anim.Vars{"scaleX": toSX, "scaleY": toSY}))
}

// TweenColor animates node.Color, alpha channel included, to the target
// colour. Channels are blended in Lab space.
func TweenColor(f anim.Factory, node *Node, to Color, duration float64, fn ease.TweenFunc) anim.Animation {
	return f.To(nodeTargets(node), duration, easeVars(fn, anim.Vars{"color": to.Hex()}))
}

// TweenAlpha animates node.Alpha to the target value.
func TweenAlpha(f anim.Factory, node *Node, to, duration float64, fn ease.TweenFunc) anim.Animation {
	return f.To(nodeTargets(node), duration, easeVars(fn, anim.Vars{"alpha": to}))
}

// TweenRotation animates node.Rotation (radians) to the target value.
func TweenRotation(f anim.Factory, node *Node, to, duration float64, fn ease.TweenFunc) anim.Animation {
	return f.To(nodeTargets(node), duration, easeVars(fn, anim.Vars{"rotation": to}))
}

func nodeTargets(nodes ...*Node) []anim.Target {
	out := make([]anim.Target, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func easeVars(fn ease.TweenFunc, v anim.Vars) anim.Vars {
	if fn != nil {
		v["ease"] = fn
	}
	return v
}
