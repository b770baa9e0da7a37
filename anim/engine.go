package anim

import (
	"maps"
	"sync"

	"github.com/tanema/gween/ease"
)

// Config configures an Engine. The zero value is usable.
type Config struct {
	// LagThreshold and AdjustedLag smooth over long frames: a Tick larger
	// than LagThreshold advances time by AdjustedLag instead. Zero disables
	// lag smoothing.
	LagThreshold float64
	AdjustedLag  float64

	// DefaultEase names the ease used when vars name none. Defaults to
	// DefaultEase.
	DefaultEase string
	// DefaultDuration is reported by Engine.DefaultDuration. Defaults to
	// the package constant DefaultDuration.
	DefaultDuration float64

	// Eases adds or overrides named easing functions.
	Eases map[string]ease.TweenFunc
	// Plugins adds or overrides property plugins, keyed by Plugin.Name.
	Plugins []Plugin
}

// Engine owns a root timeline advanced by Tick. New animations start on the
// root timeline at the current time.
type Engine struct {
	cfg     Config
	root    *Timeline
	time    float64
	eases   *easeRegistry
	plugins map[string]Plugin
}

var _ Factory = (*Engine)(nil)

// New returns an independent engine.
func New(cfg Config) *Engine {
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = DefaultDuration
	}
	e := &Engine{
		cfg:   cfg,
		eases: newEaseRegistry(cfg.Eases, cfg.DefaultEase),
		plugins: map[string]Plugin{
			"color":     ColorPlugin("color"),
			"autoAlpha": autoAlphaPlugin{},
		},
	}
	for _, p := range cfg.Plugins {
		if p == nil || p.Name() == "" {
			warnf("ignoring plugin without a name")
			continue
		}
		e.plugins[p.Name()] = p
	}
	e.root = newTimeline(e, Vars{"smoothChildTiming": true})
	e.root.root = true
	return e
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Init configures the process-wide engine. Only the first call has any
// effect; later calls return the existing engine and warn.
func Init(cfg Config) *Engine {
	first := false
	defaultOnce.Do(func() {
		defaultEngine = New(cfg)
		first = true
	})
	if !first {
		warnf("engine already initialised; Init ignored")
	}
	return defaultEngine
}

// Default returns the process-wide engine, initialising it with a zero
// Config if Init was never called.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New(Config{})
	})
	return defaultEngine
}

// Tick advances the engine by dt seconds and renders every running
// animation.
func (e *Engine) Tick(dt float64) {
	if dt < 0 {
		return
	}
	if e.cfg.LagThreshold > 0 && dt > e.cfg.LagThreshold {
		dt = e.cfg.AdjustedLag
	}
	e.time += dt
	e.root.time = e.time
	e.root.totalTime = e.time
	e.root.renderIteration(e.time, false)
}

// Time returns the engine clock in seconds.
func (e *Engine) Time() float64 { return e.time }

// Root returns the timeline that holds every top-level animation.
func (e *Engine) Root() Sequencer { return e.root }

// DefaultDuration is the configured fallback tween duration.
func (e *Engine) DefaultDuration() float64 { return e.cfg.DefaultDuration }

// Eases returns the names of every registered ease, sorted.
func (e *Engine) Eases() []string { return e.eases.names() }

// Plugins returns the registered plugins by name.
func (e *Engine) Plugins() map[string]Plugin { return maps.Clone(e.plugins) }

func (e *Engine) pluginFor(name string, spec PropSpec) Plugin {
	if p, ok := e.plugins[name]; ok {
		return p
	}
	if isColorValue(spec.To) || isColorValue(spec.From) {
		return colorPlugin{name: name}
	}
	return numericPlugin{}
}

func (e *Engine) autoplay(c *core) {
	e.root.insert(c, e.time, true)
}

// Timeline creates a timeline on the root timeline.
func (e *Engine) Timeline(vars Vars) Sequencer {
	tl := newTimeline(e, vars)
	e.autoplay(&tl.core)
	return tl
}

// To tweens targets from their current values to vars.
func (e *Engine) To(targets []Target, duration float64, vars Vars) Animation {
	tw := newTween(e, targets, duration, modeTo, nil, vars)
	e.autoplay(&tw.core)
	return tw
}

// From tweens targets from vars to their current values.
func (e *Engine) From(targets []Target, duration float64, vars Vars) Animation {
	tw := newTween(e, targets, duration, modeFrom, vars, nil)
	e.autoplay(&tw.core)
	return tw
}

// FromTo tweens targets between two explicit sets of values.
func (e *Engine) FromTo(targets []Target, duration float64, from, to Vars) Animation {
	tw := newTween(e, targets, duration, modeFromTo, from, to)
	e.autoplay(&tw.core)
	return tw
}
