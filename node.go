package cadence

import (
	"maps"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/cadence/anim"
)

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, cadence is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a retained scene element and the thing tweens animate. A single
// flat struct is used for every node; hosts decide how to draw it.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Size of the node's box in local units. Hosts draw a Width x Height
	// rectangle; zero means nothing is drawn.
	Width, Height float64

	// Computed during UpdateTransforms.
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Appearance
	Alpha   float64
	Color   Color
	Visible bool
	ZIndex  int

	// Values holds free-form numeric properties. A tween may animate any key
	// that is present.
	Values map[string]float64

	// Metadata
	UserData any

	disposed bool
}

var (
	_ anim.ColorTarget      = (*Node)(nil)
	_ anim.VisibilityTarget = (*Node)(nil)
)

// NewNode creates a visible, untransformed white node.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Color:          ColorWhite,
		Visible:        true,
		transformDirty: true,
	}
}

// NewRect creates a node with a w x h box filled with c.
func NewRect(name string, w, h float64, c Color) *Node {
	n := NewNode(name)
	n.Width, n.Height = w, h
	n.Color = c
	return n
}

func (*Node) isElement() {}

// --- Animation target ---

// Property implements anim.Target. Besides the transform and appearance
// fields it exposes every key of Values.
func (n *Node) Property(name string) (float64, bool) {
	switch name {
	case "x":
		return n.X, true
	case "y":
		return n.Y, true
	case "scale", "scaleX":
		return n.ScaleX, true
	case "scaleY":
		return n.ScaleY, true
	case "rotation":
		return n.Rotation, true
	case "pivotX":
		return n.PivotX, true
	case "pivotY":
		return n.PivotY, true
	case "width":
		return n.Width, true
	case "height":
		return n.Height, true
	case "alpha", "opacity":
		return n.Alpha, true
	}
	v, ok := n.Values[name]
	return v, ok
}

// SetProperty implements anim.Target. Writes to a disposed node are ignored.
func (n *Node) SetProperty(name string, v float64) {
	if n.disposed {
		return
	}
	switch name {
	case "x":
		n.X = v
	case "y":
		n.Y = v
	case "scale":
		n.ScaleX, n.ScaleY = v, v
	case "scaleX":
		n.ScaleX = v
	case "scaleY":
		n.ScaleY = v
	case "rotation":
		n.Rotation = v
	case "pivotX":
		n.PivotX = v
	case "pivotY":
		n.PivotY = v
	case "width":
		n.Width = v
		return
	case "height":
		n.Height = v
		return
	case "alpha", "opacity":
		n.Alpha = v
	default:
		if _, ok := n.Values[name]; ok {
			n.Values[name] = v
		}
		return
	}
	n.transformDirty = true
}

// ColorProperty implements anim.ColorTarget for "color" and "tint".
func (n *Node) ColorProperty(name string) (colorful.Color, float64, bool) {
	if name != "color" && name != "tint" {
		return colorful.Color{}, 0, false
	}
	return n.Color.Colorful(), n.Color.A, true
}

// SetColorProperty implements anim.ColorTarget.
func (n *Node) SetColorProperty(name string, c colorful.Color, alpha float64) {
	if n.disposed || (name != "color" && name != "tint") {
		return
	}
	n.Color = ColorFrom(c, alpha)
}

// SetVisible implements anim.VisibilityTarget.
func (n *Node) SetVisible(v bool) {
	if n.disposed {
		return
	}
	n.Visible = v
}

// SetValue sets a free-form property, creating it if needed.
func (n *Node) SetValue(name string, v float64) {
	if n.Values == nil {
		n.Values = make(map[string]float64)
	}
	n.Values[name] = v
}

// Snapshot returns the animatable state of n keyed by property name.
func (n *Node) Snapshot() map[string]float64 {
	out := map[string]float64{
		"x": n.X, "y": n.Y,
		"scaleX": n.ScaleX, "scaleY": n.ScaleY,
		"rotation": n.Rotation,
		"width":    n.Width, "height": n.Height,
		"alpha": n.Alpha,
	}
	maps.Copy(out, n.Values)
	return out
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("cadence: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("cadence: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("cadence: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("cadence: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("cadence: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
	}
	if child.Parent != n {
		panic("cadence: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("cadence: child index out of range")
	}
	child := n.children[index]
	n.children = slices.Delete(n.children, index, index+1)
	child.Parent = nil
	markSubtreeDirty(child)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// FindChild returns the first descendant named name, depth first.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and every descendant in draw order: children sorted
// by ZIndex, ties kept in insertion order. Returning false skips the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	kids := slices.Clone(n.children)
	slices.SortStableFunc(kids, func(a, b *Node) int { return a.ZIndex - b.ZIndex })
	for _, c := range kids {
		c.Walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Values = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
