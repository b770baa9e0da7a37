package cadence

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/phanxgames/cadence/anim"
)

// fakeAnim records every call made on it. It serves as both a tween and a
// timeline.
type fakeAnim struct {
	kind     string
	targets  []anim.Target
	duration float64
	vars     anim.Vars
	from     anim.Vars
	stagger  float64

	paused   bool
	reversed bool
	killed   bool

	calls    []string
	added    []addCall
	children []*fakeAnim
}

type addCall struct {
	child    anim.Animation
	position string
	align    anim.Align
	stagger  float64
}

var _ anim.Sequencer = (*fakeAnim)(nil)

func (f *fakeAnim) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// count returns how many recorded calls start with prefix.
func (f *fakeAnim) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeAnim) reset() { f.calls = nil }

func (f *fakeAnim) Duration() float64 { return f.duration }
func (f *fakeAnim) SetDuration(d float64) { f.record("SetDuration(%v)", d); f.duration = d }
func (f *fakeAnim) TotalDuration() float64 { return f.duration }
func (f *fakeAnim) Time() float64 { return 0 }
func (f *fakeAnim) TotalTime() float64 { return 0 }
func (f *fakeAnim) Seek(t float64) { f.record("Seek(%v)", t) }
func (f *fakeAnim) Progress() float64 { return 0 }
func (f *fakeAnim) SetProgress(p float64) { f.record("SetProgress(%v)", p) }
func (f *fakeAnim) TotalProgress() float64 { return 0 }
func (f *fakeAnim) SetTotalProgress(p float64) { f.record("SetTotalProgress(%v)", p) }
func (f *fakeAnim) Delay() float64 { return f.vars.Float("delay", 0) }
func (f *fakeAnim) SetDelay(d float64) { f.record("SetDelay(%v)", d) }
func (f *fakeAnim) TimeScale() float64 { return 1 }
func (f *fakeAnim) SetTimeScale(s float64) { f.record("SetTimeScale(%v)", s) }

func (f *fakeAnim) Play() { f.record("Play"); f.paused, f.reversed = false, false }
func (f *fakeAnim) Pause() { f.record("Pause"); f.paused = true }
func (f *fakeAnim) PauseAt(t float64) { f.record("PauseAt(%v)", t); f.paused = true }
func (f *fakeAnim) Resume() { f.record("Resume"); f.paused = false }
func (f *fakeAnim) Reverse() { f.record("Reverse"); f.reversed = true }
func (f *fakeAnim) ReverseFrom(t float64) { f.record("ReverseFrom(%v)", t); f.reversed = true }
func (f *fakeAnim) Restart(includeDelay bool) { f.record("Restart(%v)", includeDelay); f.paused = false }
func (f *fakeAnim) Paused() bool { return f.paused }
func (f *fakeAnim) Reversed() bool { return f.reversed }
func (f *fakeAnim) IsActive() bool { return !f.paused && !f.killed }

func (f *fakeAnim) Vars() anim.Vars { return f.vars.Clone() }
func (f *fakeAnim) SetVars(v anim.Vars) { f.record("SetVars"); f.vars = v.Clone() }
func (f *fakeAnim) Invalidate() { f.record("Invalidate") }
func (f *fakeAnim) Kill() { f.record("Kill"); f.killed = true }
func (f *fakeAnim) Killed() bool { return f.killed }

func (f *fakeAnim) Add(children []anim.Animation, position string, align anim.Align, stagger float64) error {
	for _, c := range children {
		f.added = append(f.added, addCall{child: c, position: position, align: align, stagger: stagger})
		if fc, ok := c.(*fakeAnim); ok {
			f.children = append(f.children, fc)
		}
	}
	return nil
}

func (f *fakeAnim) AddLabel(name, position string) error {
	f.record("AddLabel(%s, %s)", name, position)
	return nil
}

func (f *fakeAnim) Children() []anim.Animation {
	out := make([]anim.Animation, len(f.children))
	for i, c := range f.children {
		out[i] = c
	}
	return out
}

func (f *fakeAnim) Remove(child anim.Animation) { f.record("Remove") }
func (f *fakeAnim) Clear() { f.record("Clear"); f.children = nil }

// fakeFactory records every animation it creates.
type fakeFactory struct {
	created []*fakeAnim
}

var _ anim.Factory = (*fakeFactory)(nil)

func (ff *fakeFactory) newAnim(kind string, targets []anim.Target, duration float64, from, vars anim.Vars) *fakeAnim {
	a := &fakeAnim{kind: kind, targets: targets, duration: duration, from: from.Clone(), vars: vars.Clone()}
	a.paused = vars.Bool("paused", false)
	ff.created = append(ff.created, a)
	return a
}

func (ff *fakeFactory) Timeline(vars anim.Vars) anim.Sequencer {
	return ff.newAnim("timeline", nil, 0, nil, vars)
}

func (ff *fakeFactory) To(targets []anim.Target, duration float64, vars anim.Vars) anim.Animation {
	return ff.newAnim("to", targets, duration, nil, vars)
}

func (ff *fakeFactory) From(targets []anim.Target, duration float64, vars anim.Vars) anim.Animation {
	return ff.newAnim("from", targets, duration, vars, nil)
}

func (ff *fakeFactory) FromTo(targets []anim.Target, duration float64, from, to anim.Vars) anim.Animation {
	return ff.newAnim("fromTo", targets, duration, from, to)
}

func (ff *fakeFactory) stagger(kind string, targets []anim.Target, duration float64, from, to anim.Vars, stagger float64) anim.Sequencer {
	group := ff.newAnim(kind, targets, duration, from, to)
	group.stagger = stagger
	for i, t := range targets {
		child := &fakeAnim{
			kind:     "to",
			targets:  []anim.Target{t},
			duration: duration,
			from:     from.Clone(),
			vars:     to.Merge(anim.Vars{"delay": stagger * float64(i)}),
		}
		group.children = append(group.children, child)
	}
	return group
}

func (ff *fakeFactory) StaggerTo(targets []anim.Target, duration float64, vars anim.Vars, stagger float64, _ func()) anim.Sequencer {
	return ff.stagger("staggerTo", targets, duration, nil, vars, stagger)
}

func (ff *fakeFactory) StaggerFrom(targets []anim.Target, duration float64, vars anim.Vars, stagger float64, _ func()) anim.Sequencer {
	return ff.stagger("staggerFrom", targets, duration, vars, nil, stagger)
}

func (ff *fakeFactory) StaggerFromTo(targets []anim.Target, duration float64, from, to anim.Vars, stagger float64, _ func()) anim.Sequencer {
	return ff.stagger("staggerFromTo", targets, duration, from, to, stagger)
}

// last returns the most recently created animation.
func (ff *fakeFactory) last(t *testing.T) *fakeAnim {
	t.Helper()
	if len(ff.created) == 0 {
		t.Fatal("no animation created")
	}
	return ff.created[len(ff.created)-1]
}

// ofKind returns the created animations of the given kind in order.
func (ff *fakeFactory) ofKind(kind string) []*fakeAnim {
	var out []*fakeAnim
	for _, a := range ff.created {
		if a.kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// captureWarnings redirects diagnostics to a buffer for the rest of the
// test.
func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetWarningOutput(&buf)
	t.Cleanup(func() { SetWarningOutput(nil) })
	return &buf
}

func fakeContext() (*fakeFactory, Context) {
	ff := &fakeFactory{}
	return ff, NewContext(ff)
}

// asNodes converts engine targets back to nodes for comparison.
func asNodes(ts []anim.Target) []*Node {
	out := make([]*Node, len(ts))
	for i, t := range ts {
		out[i] = t.(*Node)
	}
	return out
}
