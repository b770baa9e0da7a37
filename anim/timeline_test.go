package anim

import (
	"errors"
	"math"
	"testing"
)

func startOf(a Animation) float64 { return baseOf(a).start }

func TestTimelineAppendsAtEnd(t *testing.T) {
	e := New(Config{})
	b1, b2 := newBox(0), newBox(0)
	tl := e.Timeline(nil)
	a := e.To(targets(b1), 1, linear.Merge(Vars{"x": 100}))
	b := e.To(targets(b2), 1, linear.Merge(Vars{"x": 100}))

	if err := tl.Add([]Animation{a}, "+=0", AlignNormal, 0); err != nil {
		t.Fatal(err)
	}
	if err := tl.Add([]Animation{b}, "", AlignNormal, 0); err != nil {
		t.Fatal(err)
	}
	if tl.Duration() != 2 {
		t.Fatalf("Duration = %f, want 2", tl.Duration())
	}
	if n := len(e.Root().Children()); n != 1 {
		t.Errorf("root children = %d, want 1 (tweens moved into the timeline)", n)
	}

	e.Tick(1.5)
	assertNear(t, "first x", b1.x, 100)
	assertNear(t, "second x", b2.x, 50)
}

func TestTimelineRelativePositions(t *testing.T) {
	e := New(Config{})
	tl := e.Timeline(nil)
	a := e.To(targets(newBox(0)), 2, Vars{"x": 1})
	b := e.To(targets(newBox(0)), 1, Vars{"x": 1})
	c := e.To(targets(newBox(0)), 1, Vars{"x": 1})

	mustAdd(t, tl, "", AlignNormal, 0, a)
	mustAdd(t, tl, "-=0.5", AlignNormal, 0, b)
	mustAdd(t, tl, "+=1", AlignNormal, 0, c)

	if got := startOf(b); got != 1.5 {
		t.Errorf("b start = %f, want 1.5", got)
	}
	if got := startOf(c); got != 3.5 {
		t.Errorf("c start = %f, want 3.5", got)
	}
}

func TestTimelineLabels(t *testing.T) {
	e := New(Config{})
	tl := e.Timeline(nil)
	if err := tl.AddLabel("mid", "2"); err != nil {
		t.Fatal(err)
	}
	a := e.To(targets(newBox(0)), 1, Vars{"x": 1})
	mustAdd(t, tl, "mid+=0.5", AlignNormal, 0, a)

	if got := startOf(a); got != 2.5 {
		t.Errorf("start = %f, want 2.5", got)
	}
	if tl.Duration() != 3.5 {
		t.Errorf("Duration = %f, want 3.5", tl.Duration())
	}

	err := tl.Add([]Animation{e.To(targets(newBox(0)), 1, Vars{"x": 1})}, "mdi", AlignNormal, 0)
	if !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("Add(unknown label) = %v, want ErrUnknownLabel", err)
	}
}

func TestTimelineAlignSequence(t *testing.T) {
	e := New(Config{})
	tl := e.Timeline(nil)
	a := e.To(targets(newBox(0)), 1, Vars{"x": 1})
	b := e.To(targets(newBox(0)), 1, Vars{"x": 1})
	c := e.To(targets(newBox(0)), 1, Vars{"x": 1})
	mustAdd(t, tl, "", AlignSequence, 0.5, a, b, c)

	for i, want := range []float64{0, 1.5, 3} {
		if got := startOf([]Animation{a, b, c}[i]); got != want {
			t.Errorf("child %d start = %f, want %f", i, got, want)
		}
	}
	if tl.Duration() != 4 {
		t.Errorf("Duration = %f, want 4", tl.Duration())
	}
}

func TestTimelineAlignNormalAndStart(t *testing.T) {
	e := New(Config{})
	tl := e.Timeline(nil)
	a := e.To(targets(newBox(0)), 1, Vars{"x": 1, "delay": 1})
	b := e.To(targets(newBox(0)), 1, Vars{"x": 1, "delay": 1})
	mustAdd(t, tl, "1", AlignNormal, 0.25, a, b)
	if startOf(a) != 2 || startOf(b) != 2.25 {
		t.Errorf("normal starts = %f, %f, want 2, 2.25", startOf(a), startOf(b))
	}

	tl.Clear()
	mustAdd(t, tl, "1", AlignStart, 0.25, a, b)
	if startOf(a) != 1 || startOf(b) != 1.25 {
		t.Errorf("start-aligned starts = %f, %f, want 1, 1.25", startOf(a), startOf(b))
	}
}

func TestTimelineInvalidAlign(t *testing.T) {
	e := New(Config{})
	tl := e.Timeline(nil)
	err := tl.Add([]Animation{e.To(nil, 1, nil)}, "", Align("zigzag"), 0)
	if !errors.Is(err, ErrInvalidAlign) {
		t.Fatalf("Add = %v, want ErrInvalidAlign", err)
	}
}

func TestTimelineSetDurationScalesTime(t *testing.T) {
	e := New(Config{})
	b := newBox(0)
	tl := e.Timeline(nil)
	mustAdd(t, tl, "", AlignNormal, 0, e.To(targets(b), 1, linear.Merge(Vars{"x": 100})))

	tl.SetDuration(2)
	if tl.Duration() != 2 || tl.TotalDuration() != 2 {
		t.Fatalf("Duration = %f, TotalDuration = %f, want 2", tl.Duration(), tl.TotalDuration())
	}
	e.Tick(1)
	assertNear(t, "x", b.x, 50)
	assertNear(t, "Progress", tl.Progress(), 0.5)
}

func TestTimelineProgressDrivesChildren(t *testing.T) {
	e := New(Config{})
	b1, b2 := newBox(0), newBox(0)
	tl := e.Timeline(Vars{"paused": true})
	mustAdd(t, tl, "", AlignSequence, 0,
		e.To(targets(b1), 1, linear.Merge(Vars{"x": 100})),
		e.To(targets(b2), 1, linear.Merge(Vars{"x": 100})))

	tl.SetProgress(0.75)
	assertNear(t, "first x", b1.x, 100)
	assertNear(t, "second x", b2.x, 50)

	tl.SetProgress(0.25)
	assertNear(t, "first x rewound", b1.x, 50)
	assertNear(t, "second x rewound", b2.x, 0)
}

func TestTimelineSmoothChildTiming(t *testing.T) {
	e := New(Config{})
	b := newBox(0)
	tl := e.Timeline(Vars{"smoothChildTiming": true})
	tw := e.To(targets(b), 1, linear.Merge(Vars{"x": 100}))
	mustAdd(t, tl, "", AlignNormal, 0, tw)

	e.Tick(0.25)
	tw.Pause()
	e.Tick(0.25)
	tw.Resume()
	e.Tick(0.25)
	assertNear(t, "x", b.x, 50)
}

func TestNestedTimelines(t *testing.T) {
	e := New(Config{})
	b := newBox(0)
	outer := e.Timeline(nil)
	inner := e.Timeline(nil)
	mustAdd(t, inner, "", AlignNormal, 0, e.To(targets(b), 1, linear.Merge(Vars{"x": 100})))
	mustAdd(t, outer, "1", AlignNormal, 0, inner)

	if outer.Duration() != 2 {
		t.Fatalf("outer Duration = %f, want 2", outer.Duration())
	}
	e.Tick(1.5)
	assertNear(t, "x", b.x, 50)

	if err := inner.Add([]Animation{outer}, "", AlignNormal, 0); err == nil {
		t.Error("adding an ancestor should fail")
	}
}

func TestTimelineWithEndlessChild(t *testing.T) {
	e := New(Config{})
	b, next := newBox(0), newBox(0)
	completed := 0
	tl := e.Timeline(Vars{"onComplete": func() { completed++ }})
	endless := e.To(targets(b), 1, linear.Merge(Vars{"x": 100, "repeat": -1}))
	mustAdd(t, tl, "", AlignNormal, 0, endless)
	mustAdd(t, tl, "", AlignNormal, 0, e.To(targets(next), 1, linear.Merge(Vars{"x": 100})))

	if d := tl.Duration(); !math.IsInf(d, 1) {
		t.Fatalf("Duration = %f, want +Inf", d)
	}
	if got := startOf(tl.Children()[1]); got != 1 {
		t.Errorf("sibling start = %f, want 1 (one iteration of the endless child)", got)
	}

	e.Tick(0.5)
	assertNear(t, "x at 0.5s", b.x, 50)
	e.Tick(1)
	assertNear(t, "x at 1.5s", b.x, 50)
	assertNear(t, "sibling x at 1.5s", next.x, 50)
	e.Tick(1)
	assertNear(t, "x at 2.5s", b.x, 50)
	e.Tick(10)
	assertNear(t, "x at 12.5s", b.x, 50)
	if completed != 0 {
		t.Errorf("onComplete calls = %d, want 0", completed)
	}
	if !tl.IsActive() {
		t.Error("timeline with an endless child should stay active")
	}
}

func TestNestedTimelineWithEndlessChild(t *testing.T) {
	e := New(Config{})
	b := newBox(0)
	outer := e.Timeline(nil)
	inner := e.Timeline(nil)
	mustAdd(t, inner, "", AlignNormal, 0, e.To(targets(b), 1, linear.Merge(Vars{"x": 100, "repeat": -1, "yoyo": true})))
	mustAdd(t, outer, "", AlignNormal, 0, inner)

	if d := outer.Duration(); !math.IsInf(d, 1) {
		t.Fatalf("outer Duration = %f, want +Inf", d)
	}
	e.Tick(1.25)
	assertNear(t, "x at 1.25s (yoyo back)", b.x, 75)
	e.Tick(1)
	assertNear(t, "x at 2.25s", b.x, 25)

	outer.SetProgress(0.5)
	outer.SetTotalProgress(0.5)
	assertNear(t, "x after progress on endless timeline", b.x, 25)
}

func TestTimelineRemoveAndKill(t *testing.T) {
	e := New(Config{})
	b := newBox(0)
	tl := e.Timeline(nil)
	tw := e.To(targets(b), 1, linear.Merge(Vars{"x": 100}))
	mustAdd(t, tl, "", AlignNormal, 0, tw)

	tl.Remove(tw)
	if len(tl.Children()) != 0 {
		t.Fatal("child still present after Remove")
	}
	e.Tick(1)
	assertNear(t, "x of removed tween", b.x, 0)

	tl.Kill()
	if err := tl.Add(nil, "", AlignNormal, 0); !errors.Is(err, ErrKilled) {
		t.Errorf("Add after Kill = %v, want ErrKilled", err)
	}
}

func TestStaggerTo(t *testing.T) {
	e := New(Config{})
	bs := []*box{newBox(0), newBox(0), newBox(0)}
	done := 0
	group := e.StaggerTo(targets(bs...), 1, linear.Merge(Vars{"x": 100}), 0.5, func() { done++ })

	if group.Duration() != 2 {
		t.Fatalf("Duration = %f, want 2", group.Duration())
	}
	if n := len(group.Children()); n != 3 {
		t.Fatalf("children = %d, want 3", n)
	}
	e.Tick(1)
	assertNear(t, "box 0", bs[0].x, 100)
	assertNear(t, "box 1", bs[1].x, 50)
	assertNear(t, "box 2", bs[2].x, 0)
	if done != 0 {
		t.Fatal("onCompleteAll called early")
	}

	e.Tick(1)
	for _, b := range bs {
		assertNear(t, "box x", b.x, 100)
	}
	if done != 1 {
		t.Errorf("onCompleteAll called %d times, want 1", done)
	}
}

func TestStaggerFromRendersImmediately(t *testing.T) {
	e := New(Config{})
	bs := []*box{newBox(10), newBox(10)}
	e.StaggerFrom(targets(bs...), 1, Vars{"x": 0}, 0.1, nil)
	for _, b := range bs {
		assertNear(t, "x", b.x, 0)
	}
}

func TestStaggerKeepsBaseDelay(t *testing.T) {
	e := New(Config{})
	group := e.StaggerFromTo(targets(newBox(0), newBox(0)), 1, Vars{"x": 0}, Vars{"x": 1, "delay": 1}, 0.5, nil)
	kids := group.Children()
	if kids[0].Delay() != 1 || kids[1].Delay() != 1.5 {
		t.Errorf("delays = %f, %f, want 1, 1.5", kids[0].Delay(), kids[1].Delay())
	}
}

func mustAdd(t *testing.T, tl Sequencer, pos string, align Align, stagger float64, children ...Animation) {
	t.Helper()
	if err := tl.Add(children, pos, align, stagger); err != nil {
		t.Fatalf("Add(%q) = %v", pos, err)
	}
}
