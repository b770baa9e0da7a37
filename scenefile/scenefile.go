// Package scenefile loads declarative cadence scenes from YAML.
//
// A scene file names its nodes up front and then describes a tree of
// timelines, tweens, node references and fragments:
//
//	nodes:
//	  - name: box
//	    width: 40
//	    height: 40
//	    color: "#e94f37"
//	tree:
//	  - kind: timeline
//	    id: intro
//	    target: [box]
//	    vars: {repeat: -1, yoyo: true}
//	    children:
//	      - kind: tween
//	        to: {x: 200}
//	        duration: 1
//
// A plain string anywhere an entry is expected is shorthand for a node
// reference.
package scenefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/anim"
)

// ErrUnknownNode is returned by Build when an entry references a node that
// the document does not declare.
var ErrUnknownNode = errors.New("scenefile: unknown node")

// Entry kinds.
const (
	KindTimeline = "timeline"
	KindTween    = "tween"
	KindNode     = "node"
	KindFragment = "fragment"
)

var kinds = []string{KindTimeline, KindTween, KindNode, KindFragment}

// Document is a parsed scene file.
type Document struct {
	Nodes []NodeSpec `yaml:"nodes"`
	Tree  []Entry    `yaml:"tree"`
}

// NodeSpec declares a named node and its initial fields. Unset pointer
// fields keep the NewNode defaults.
type NodeSpec struct {
	Name string `yaml:"name"`
	// Parent names another declared node. Nodes without a parent are only
	// attached to the scene when the tree references them.
	Parent string `yaml:"parent,omitempty"`

	X        float64  `yaml:"x,omitempty"`
	Y        float64  `yaml:"y,omitempty"`
	Width    float64  `yaml:"width,omitempty"`
	Height   float64  `yaml:"height,omitempty"`
	Rotation float64  `yaml:"rotation,omitempty"`
	Scale    *float64 `yaml:"scale,omitempty"`
	ScaleX   *float64 `yaml:"scaleX,omitempty"`
	ScaleY   *float64 `yaml:"scaleY,omitempty"`
	PivotX   float64  `yaml:"pivotX,omitempty"`
	PivotY   float64  `yaml:"pivotY,omitempty"`
	Alpha    *float64 `yaml:"alpha,omitempty"`
	Color    string   `yaml:"color,omitempty"`
	Visible  *bool    `yaml:"visible,omitempty"`
	ZIndex   int      `yaml:"zIndex,omitempty"`

	Values map[string]float64 `yaml:"values,omitempty"`
}

// Entry is one element of the tree.
type Entry struct {
	Kind string `yaml:"kind"`
	ID   string `yaml:"id,omitempty"`

	// Ref names the node of a node entry.
	Ref string `yaml:"ref,omitempty"`
	// Items holds the members of a fragment entry.
	Items []Entry `yaml:"items,omitempty"`

	Target []Entry `yaml:"target,omitempty"`

	Duration      *float64          `yaml:"duration,omitempty"`
	Progress      *float64          `yaml:"progress,omitempty"`
	TotalProgress *float64          `yaml:"totalProgress,omitempty"`
	PlayState     cadence.PlayState `yaml:"playState,omitempty"`

	Position string     `yaml:"position,omitempty"`
	Align    anim.Align `yaml:"align,omitempty"`
	Stagger  float64    `yaml:"stagger,omitempty"`

	To          anim.Vars `yaml:"to,omitempty"`
	From        anim.Vars `yaml:"from,omitempty"`
	StaggerTo   anim.Vars `yaml:"staggerTo,omitempty"`
	StaggerFrom anim.Vars `yaml:"staggerFrom,omitempty"`
	Disabled    bool      `yaml:"disabled,omitempty"`

	Vars     anim.Vars `yaml:"vars,omitempty"`
	Children []Entry   `yaml:"children,omitempty"`
}

// UnmarshalYAML accepts a bare string as a node reference. It uses the
// function form so the decoder's known-fields check still applies.
func (e *Entry) UnmarshalYAML(unmarshal func(any) error) error {
	var ref string
	if err := unmarshal(&ref); err == nil {
		*e = Entry{Kind: KindNode, Ref: ref}
		return nil
	}
	type plain Entry
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Load decodes a scene file from r.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("scenefile: decode: %w", err)
	}
	return &doc, nil
}

// LoadFile decodes the scene file at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	defer f.Close()
	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Build creates the document's nodes and converts its tree into an element
// ready for Scene.Render. A tree with a single entry yields that entry's
// element; otherwise the entries are wrapped in a Fragment. The returned
// map holds every declared node by name.
func (d *Document) Build() (cadence.Element, map[string]*cadence.Node, error) {
	nodes, err := d.buildNodes()
	if err != nil {
		return nil, nil, err
	}
	b := builder{nodes: nodes}
	elems, err := b.entries(d.Tree, "tree")
	if err != nil {
		return nil, nil, err
	}
	if len(elems) == 1 {
		return elems[0], nodes, nil
	}
	return cadence.Fragment(elems), nodes, nil
}

func (d *Document) buildNodes() (map[string]*cadence.Node, error) {
	nodes := make(map[string]*cadence.Node, len(d.Nodes))
	for i, spec := range d.Nodes {
		if spec.Name == "" {
			return nil, fmt.Errorf("scenefile: nodes[%d]: missing name", i)
		}
		if _, dup := nodes[spec.Name]; dup {
			return nil, fmt.Errorf("scenefile: nodes[%d]: duplicate node %q", i, spec.Name)
		}
		n, err := spec.node()
		if err != nil {
			return nil, fmt.Errorf("scenefile: node %q: %w", spec.Name, err)
		}
		nodes[spec.Name] = n
	}
	// Parents are wired after every node exists so order does not matter.
	for _, spec := range d.Nodes {
		if spec.Parent == "" {
			continue
		}
		parent, ok := nodes[spec.Parent]
		if !ok {
			return nil, fmt.Errorf("%w %q (parent of %q)%s", ErrUnknownNode, spec.Parent, spec.Name, anim.DidYouMean(spec.Parent, names(nodes)))
		}
		child := nodes[spec.Name]
		if parent == child || isAncestor(child, parent) {
			return nil, fmt.Errorf("scenefile: node %q: parent %q would create a cycle", spec.Name, spec.Parent)
		}
		parent.AddChild(child)
	}
	return nodes, nil
}

func isAncestor(candidate, n *cadence.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (s NodeSpec) node() (*cadence.Node, error) {
	n := cadence.NewNode(s.Name)
	n.X, n.Y = s.X, s.Y
	n.Width, n.Height = s.Width, s.Height
	n.Rotation = s.Rotation
	n.PivotX, n.PivotY = s.PivotX, s.PivotY
	n.ZIndex = s.ZIndex
	if s.Scale != nil {
		n.ScaleX, n.ScaleY = *s.Scale, *s.Scale
	}
	if s.ScaleX != nil {
		n.ScaleX = *s.ScaleX
	}
	if s.ScaleY != nil {
		n.ScaleY = *s.ScaleY
	}
	if s.Alpha != nil {
		n.Alpha = *s.Alpha
	}
	if s.Visible != nil {
		n.Visible = *s.Visible
	}
	if s.Color != "" {
		c, err := cadence.ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		n.Color = c
	}
	for k, v := range s.Values {
		n.SetValue(k, v)
	}
	return n, nil
}
