package anim

// stagger builds a group timeline holding one tween per target. Each
// tween's delay is the base delay plus stagger times its index, and
// onCompleteAll runs when the last one finishes.
func (e *Engine) stagger(targets []Target, duration float64, mode tweenMode, from, to Vars, stagger float64, onCompleteAll func()) *Timeline {
	group := newTimeline(e, Vars{"onComplete": onCompleteAll})
	primary := to
	if mode == modeFrom {
		primary = from
	}
	base := primary.Float("delay", 0)
	for i, target := range targets {
		delay := base + stagger*float64(i)
		f, t := from, to
		switch mode {
		case modeFrom:
			f = from.Merge(Vars{"delay": delay})
		default:
			t = to.Merge(Vars{"delay": delay})
		}
		tw := newTween(e, []Target{target}, duration, mode, f, t)
		group.insert(&tw.core, 0, true)
	}
	e.autoplay(&group.core)
	return group
}

// StaggerTo tweens each target to vars, one after another.
func (e *Engine) StaggerTo(targets []Target, duration float64, vars Vars, stagger float64, onCompleteAll func()) Sequencer {
	return e.stagger(targets, duration, modeTo, nil, vars, stagger, onCompleteAll)
}

// StaggerFrom tweens each target from vars to its current values.
func (e *Engine) StaggerFrom(targets []Target, duration float64, vars Vars, stagger float64, onCompleteAll func()) Sequencer {
	return e.stagger(targets, duration, modeFrom, vars, nil, stagger, onCompleteAll)
}

// StaggerFromTo tweens each target from one set of values to another.
func (e *Engine) StaggerFromTo(targets []Target, duration float64, from, to Vars, stagger float64, onCompleteAll func()) Sequencer {
	return e.stagger(targets, duration, modeFromTo, from, to, stagger, onCompleteAll)
}
