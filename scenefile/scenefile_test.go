package scenefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/anim"
)

const demo = `
nodes:
  - name: box
    x: 10
    width: 40
    height: 20
    color: "#ff0000"
  - name: dot
    parent: box
    scale: 2
    alpha: 0.5
    values: {glow: 1}
tree:
  - kind: timeline
    id: intro
    target: [box, {kind: fragment, items: [dot]}]
    vars: {repeat: -1, yoyo: true}
    children:
      - kind: tween
        id: slide
        to: {x: 200}
        duration: 1.5
        position: "+=0.25"
`

func load(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return doc
}

func TestLoadAndBuild(t *testing.T) {
	el, nodes, err := load(t, demo).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tl, ok := el.(cadence.TimelineProps)
	if !ok {
		t.Fatalf("root element = %T, want TimelineProps", el)
	}
	if tl.ID != "intro" || len(tl.Target) != 2 || len(tl.Children) != 1 {
		t.Fatalf("timeline = %+v", tl)
	}
	if tl.Target[0] != cadence.Element(nodes["box"]) {
		t.Error("target[0] should be the box node")
	}
	if frag, ok := tl.Target[1].(cadence.Fragment); !ok || len(frag) != 1 || frag[0] != cadence.Element(nodes["dot"]) {
		t.Errorf("target[1] = %#v, want fragment of dot", tl.Target[1])
	}
	if diff := cmp.Diff(anim.Vars{"repeat": -1, "yoyo": true}, tl.Vars); diff != "" {
		t.Errorf("vars (-want +got):\n%s", diff)
	}

	tw, ok := tl.Children[0].(cadence.TweenProps)
	if !ok {
		t.Fatalf("child = %T, want TweenProps", tl.Children[0])
	}
	if tw.ID != "slide" || tw.Position != "+=0.25" || tw.Duration == nil || *tw.Duration != 1.5 {
		t.Errorf("tween = %+v", tw)
	}
	if diff := cmp.Diff(anim.Vars{"x": 200}, tw.To); diff != "" {
		t.Errorf("to (-want +got):\n%s", diff)
	}
}

func TestBuildNodes(t *testing.T) {
	_, nodes, err := load(t, demo).Build()
	if err != nil {
		t.Fatal(err)
	}
	box, dot := nodes["box"], nodes["dot"]
	if box.X != 10 || box.Width != 40 || box.Height != 20 {
		t.Errorf("box = (%v, %v, %v)", box.X, box.Width, box.Height)
	}
	if box.Color != (cadence.Color{R: 1, G: 0, B: 0, A: 1}) {
		t.Errorf("box color = %+v", box.Color)
	}
	if dot.Parent != box {
		t.Error("dot should be a child of box")
	}
	if dot.ScaleX != 2 || dot.ScaleY != 2 || dot.Alpha != 0.5 {
		t.Errorf("dot scale/alpha = (%v, %v, %v)", dot.ScaleX, dot.ScaleY, dot.Alpha)
	}
	if v, ok := dot.Property("glow"); !ok || v != 1 {
		t.Errorf("dot glow = %v, %v", v, ok)
	}
}

func TestBuildMultipleEntriesMakesFragment(t *testing.T) {
	doc := load(t, `
nodes: [{name: a}, {name: b}]
tree: [a, b]
`)
	el, _, err := doc.Build()
	if err != nil {
		t.Fatal(err)
	}
	if frag, ok := el.(cadence.Fragment); !ok || len(frag) != 2 {
		t.Errorf("element = %#v, want 2-entry fragment", el)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown kind", "tree: [{kind: timline}]", `unknown kind "timline" (did you mean "timeline"?)`},
		{"missing kind", "tree: [{id: x}]", "missing kind"},
		{"unknown node", "nodes: [{name: box}]\ntree: [bx]", `unknown node "bx" (did you mean "box"?)`},
		{"unknown parent", "nodes: [{name: a, parent: nope}]", `unknown node "nope"`},
		{"duplicate node", "nodes: [{name: a}, {name: a}]", "duplicate node"},
		{"unnamed node", "nodes: [{x: 1}]", "missing name"},
		{"cycle", "nodes: [{name: a, parent: b}, {name: b, parent: a}]", "cycle"},
		{"bad color", "nodes: [{name: a, color: red}]", "parse color"},
		{"bad play state", "tree: [{kind: tween, playState: pase}]", `did you mean "pause"`},
		{"bad align", "tree: [{kind: timeline, align: middle}]", "invalid align"},
		{"bad position", "tree: [{kind: tween, position: '+=x'}]", "invalid position"},
		{"tween target", "nodes: [{name: a}]\ntree: [{kind: tween, target: [a]}]", "no target list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := load(t, tt.src).Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestBuildUnknownNodeIsSentinel(t *testing.T) {
	_, _, err := load(t, "tree: [ghost]").Build()
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("err = %v, want ErrUnknownNode", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("tree: [{kind: tween, too: {x: 1}}]"))
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoadEmpty(t *testing.T) {
	doc, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	el, nodes, err := doc.Build()
	if err != nil {
		t.Fatal(err)
	}
	if frag, ok := el.(cadence.Fragment); !ok || len(frag) != 0 || len(nodes) != 0 {
		t.Errorf("element = %#v, nodes = %v", el, nodes)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(demo), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Tree) != 1 {
		t.Errorf("doc = %+v", doc)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuiltSceneRuns(t *testing.T) {
	el, nodes, err := load(t, `
nodes: [{name: box}]
tree:
  - kind: tween
    children: [box]
    to: {x: 100}
    duration: 1
    vars: {ease: Linear}
`).Build()
	if err != nil {
		t.Fatal(err)
	}
	s := cadence.NewScene(anim.New(anim.Config{}))
	s.Render(el)
	s.Update(0.5)
	if x := nodes["box"].X; x < 49.99 || x > 50.01 {
		t.Errorf("x = %v, want 50", x)
	}
}
