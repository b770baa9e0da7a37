package anim

import "math"

// renderer is implemented by the concrete animation kinds embedding core.
type renderer interface {
	// iterationDuration is the natural length of one iteration in local
	// time.
	iterationDuration() float64
	renderIteration(t float64, force bool)
	invalidate()
	kill()
}

// timed is satisfied by every animation created by this package.
type timed interface {
	base() *core
}

func baseOf(a Animation) *core {
	if t, ok := a.(timed); ok {
		return t.base()
	}
	return nil
}

// core is the timing state shared by tweens and timelines.
//
// totalTime is the local playhead in natural units, in [0, totalDuration].
// start is the parent time at which the local playhead is zero (or, while
// reversed, the parent time at which it will reach zero).
type core struct {
	engine *Engine
	self   Animation
	impl   renderer
	parent *Timeline
	vars   Vars

	delay       float64
	repeat      int
	repeatDelay float64
	yoyo        bool
	timeScale   float64
	// fixedDuration, when positive, stretches the natural duration to this
	// length by scaling time. Only timelines set it.
	fixedDuration float64

	placed    float64
	start     float64
	totalTime float64
	time      float64
	iteration int

	paused    bool
	reversed  bool
	killed    bool
	rendered  bool
	dirty     bool
	started   bool
	completed bool

	onStart           func()
	onUpdate          func()
	onComplete        func()
	onRepeat          func()
	onReverseComplete func()
}

func (c *core) base() *core { return c }

// applyTiming reads the reserved timing and callback keys from v.
func (c *core) applyTiming(v Vars) {
	c.vars = v
	c.SetDelay(v.Float("delay", 0))
	c.repeat = v.Int("repeat", 0)
	c.repeatDelay = v.Float("repeatDelay", 0)
	c.yoyo = v.Bool("yoyo", false)
	if ts := v.Float("timeScale", 1); ts > 0 {
		c.timeScale = ts
	} else {
		c.timeScale = 1
	}
	c.onStart = v.Func("onStart")
	c.onUpdate = v.Func("onUpdate")
	c.onComplete = v.Func("onComplete")
	c.onRepeat = v.Func("onRepeat")
	c.onReverseComplete = v.Func("onReverseComplete")
}

// factor converts natural local time to public time units.
func (c *core) factor() float64 {
	if c.fixedDuration > 0 {
		if n := c.impl.iterationDuration(); n > 0 && !math.IsInf(n, 1) {
			return c.fixedDuration / n
		}
	}
	return 1
}

// scale is the rate of local natural time per unit of parent time.
func (c *core) scale() float64 {
	return c.timeScale / c.factor()
}

func (c *core) totalDurationLocal() float64 {
	if c.repeat < 0 {
		return math.Inf(1)
	}
	d := c.impl.iterationDuration()
	return d*float64(c.repeat+1) + c.repeatDelay*float64(c.repeat)
}

// parentSpan is how much parent time the animation occupies. Infinite
// repeats occupy +Inf.
func (c *core) parentSpan() float64 {
	s := c.scale()
	if s <= 0 {
		return 0
	}
	return c.totalDurationLocal() / s
}

// placedSpan is the parent time used when placing later siblings after
// the animation. An infinitely repeating animation counts one iteration.
func (c *core) placedSpan() float64 {
	td := c.totalDurationLocal()
	if math.IsInf(td, 1) {
		if tl, ok := c.impl.(*Timeline); ok {
			td = tl.childrenEnd(true)
		} else {
			td = c.impl.iterationDuration()
		}
		if math.IsInf(td, 1) {
			td = 0
		}
	}
	s := c.scale()
	if s <= 0 {
		return 0
	}
	return td / s
}

func (c *core) localFromParent(pt float64) float64 {
	s := c.scale()
	if c.reversed {
		return (c.start - pt) * s
	}
	return (pt - c.start) * s
}

// realign moves start so the local playhead stays where it is under the
// parent's current time. Only parents with smooth child timing do this.
func (c *core) realign() {
	if c.parent == nil || !c.parent.smoothChildTiming {
		return
	}
	s := c.scale()
	if s <= 0 {
		return
	}
	pt := c.parent.time
	if c.reversed {
		c.start = pt + c.totalTime/s
	} else {
		c.start = pt - c.totalTime/s
	}
}

func (c *core) iterationTime(total float64) (float64, int) {
	d := c.impl.iterationDuration()
	if d <= 0 {
		return 0, 0
	}
	if math.IsInf(d, 1) {
		return total, 0
	}
	if c.repeat == 0 {
		return math.Min(total, d), 0
	}
	cycle := d + c.repeatDelay
	iter := int(total / cycle)
	if c.repeat > 0 && iter > c.repeat {
		iter = c.repeat
	}
	t := total - float64(iter)*cycle
	if t > d {
		t = d
	}
	if c.yoyo && iter%2 == 1 {
		t = d - t
	}
	return t, iter
}

// renderTotal moves the local playhead to total and renders. Unless force
// is set, rendering the same position twice is skipped.
func (c *core) renderTotal(total float64, force bool) {
	if c.killed {
		return
	}
	td := c.totalDurationLocal()
	if math.IsInf(total, 1) && math.IsInf(td, 1) {
		// The end of an endless animation is never reached.
		total = c.totalTime
	}
	total = math.Max(0, math.Min(total, td))
	if !force && c.rendered && !c.dirty && total == c.totalTime {
		return
	}
	prev := c.totalTime
	prevIter := c.iteration
	t, iter := c.iterationTime(total)
	c.totalTime = total
	c.time = t
	c.iteration = iter
	c.rendered = true
	c.dirty = false

	if !c.started && total > 0 {
		c.started = true
		call(c.onStart)
	}
	c.impl.renderIteration(t, force)
	if c.killed {
		return
	}
	call(c.onUpdate)
	if iter != prevIter && c.repeat != 0 {
		call(c.onRepeat)
	}
	switch {
	case total >= td && !c.completed:
		c.completed = true
		call(c.onComplete)
	case total < td:
		c.completed = false
	}
	if total <= 0 && prev > 0 {
		c.started = false
		call(c.onReverseComplete)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// --- Public timing API (promoted to Tween and Timeline) ---

// TotalDuration returns the length including repeats. Infinite repeats
// report +Inf.
func (c *core) TotalDuration() float64 { return c.totalDurationLocal() * c.factor() }

// Time returns the playhead within the current iteration.
func (c *core) Time() float64 { return c.time * c.factor() }

// TotalTime returns the playhead including repeats.
func (c *core) TotalTime() float64 { return c.totalTime * c.factor() }

// Seek jumps the playhead and renders immediately.
func (c *core) Seek(totalTime float64) {
	c.seekLocal(totalTime / c.factor())
}

func (c *core) seekLocal(total float64) {
	c.renderTotal(total, true)
	c.realign()
}

// Progress returns the position within the current iteration, 0 to 1.
func (c *core) Progress() float64 {
	d := c.impl.iterationDuration()
	if d <= 0 {
		if c.completed {
			return 1
		}
		return 0
	}
	return c.time / d
}

// SetProgress moves the playhead within the current iteration. Ignored
// when the iteration itself never ends.
func (c *core) SetProgress(p float64) {
	p = clamp01(p)
	d := c.impl.iterationDuration()
	if math.IsInf(d, 1) {
		return
	}
	t := p * d
	if c.yoyo && c.iteration%2 == 1 {
		t = d - t
	}
	c.seekLocal(float64(c.iteration)*(d+c.repeatDelay) + t)
}

// TotalProgress returns the overall position including repeats, 0 to 1.
// Infinitely repeating animations always report 0.
func (c *core) TotalProgress() float64 {
	td := c.totalDurationLocal()
	if math.IsInf(td, 1) {
		return 0
	}
	if td <= 0 {
		if c.completed {
			return 1
		}
		return 0
	}
	return c.totalTime / td
}

// SetTotalProgress moves the playhead to a fraction of the total duration.
// Ignored for infinitely repeating animations.
func (c *core) SetTotalProgress(p float64) {
	td := c.totalDurationLocal()
	if math.IsInf(td, 1) {
		return
	}
	c.seekLocal(clamp01(p) * td)
}

// Delay returns the delay applied when the animation is placed.
func (c *core) Delay() float64 { return c.delay }

// SetDelay changes the delay, shifting the start accordingly.
func (c *core) SetDelay(d float64) {
	c.start += d - c.delay
	c.delay = d
}

// TimeScale returns the playback rate multiplier.
func (c *core) TimeScale() float64 { return c.timeScale }

// SetTimeScale changes the playback rate without moving the playhead.
func (c *core) SetTimeScale(s float64) {
	if s <= 0 {
		return
	}
	c.timeScale = s
	c.realign()
}

// Play resumes forward playback.
func (c *core) Play() {
	c.setReversed(false)
	c.setPaused(false)
}

// Pause freezes the playhead.
func (c *core) Pause() { c.setPaused(true) }

// PauseAt seeks to totalTime and pauses there.
func (c *core) PauseAt(totalTime float64) {
	c.Seek(totalTime)
	c.setPaused(true)
}

// Resume unpauses without changing direction.
func (c *core) Resume() { c.setPaused(false) }

// Reverse plays backwards from the current playhead.
func (c *core) Reverse() {
	c.setReversed(true)
	c.setPaused(false)
}

// ReverseFrom seeks to totalTime and plays backwards from there.
func (c *core) ReverseFrom(totalTime float64) {
	c.Seek(totalTime)
	c.Reverse()
}

// Restart plays forward from the beginning. With includeDelay the delay is
// honoured again.
func (c *core) Restart(includeDelay bool) {
	c.reversed = false
	c.paused = false
	c.started = false
	c.completed = false
	c.renderTotal(0, true)
	if c.parent != nil {
		c.start = c.parent.time
		if includeDelay {
			c.start += c.delay
		}
	}
}

// Paused reports whether the playhead is frozen.
func (c *core) Paused() bool { return c.paused }

// Reversed reports whether the animation plays backwards.
func (c *core) Reversed() bool { return c.reversed }

// IsActive reports whether the animation is running and between its start
// and end.
func (c *core) IsActive() bool {
	return !c.paused && !c.killed && c.started && !c.completed
}

// Vars returns a copy of the configuration.
func (c *core) Vars() Vars { return c.vars.Clone() }

// Invalidate discards recorded start values.
func (c *core) Invalidate() {
	c.impl.invalidate()
	c.dirty = true
}

// Kill removes the animation from its parent and stops it permanently.
// Killing twice is a no-op.
func (c *core) Kill() {
	if c.killed {
		return
	}
	c.killed = true
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.impl.kill()
}

// Killed reports whether Kill has been called.
func (c *core) Killed() bool { return c.killed }

func (c *core) setPaused(p bool) {
	if c.paused == p {
		return
	}
	c.paused = p
	if !p {
		c.realign()
	}
}

func (c *core) setReversed(r bool) {
	if c.reversed == r {
		return
	}
	c.reversed = r
	c.realign()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
