package cadence

import (
	"maps"
	"slices"

	"github.com/phanxgames/cadence/anim"
)

// Context is the ambient value a Timeline hands to the components nested
// inside it. The zero Context has no timeline and means "no parent"; its
// animations are created with anim.Default().
type Context struct {
	// Timeline is the nearest ancestor timeline, or nil.
	Timeline anim.Sequencer
	// Targets is the ancestor's collected target list. Never mutated.
	Targets []*Node

	env *environment
}

// NewContext returns a root context whose components build their
// animations with f. A nil f uses anim.Default().
func NewContext(f anim.Factory) Context {
	return Context{env: newEnvironment(f)}
}

// with returns a copy of ctx carrying a new timeline and target list.
func (ctx Context) with(tl anim.Sequencer, targets []*Node) Context {
	return Context{Timeline: tl, Targets: targets, env: ctx.env}
}

func (ctx Context) environment() *environment {
	if ctx.env == nil {
		return defaultEnvironment()
	}
	return ctx.env
}

// environment is shared by every component mounted from one root context.
type environment struct {
	factory  anim.Factory
	sink     EventSink
	registry map[string]Component
	attached map[*Node]int
}

func newEnvironment(f anim.Factory) *environment {
	if f == nil {
		f = anim.Default()
	}
	return &environment{factory: f, registry: make(map[string]Component)}
}

var fallbackEnv *environment

func defaultEnvironment() *environment {
	if fallbackEnv == nil {
		fallbackEnv = newEnvironment(nil)
	}
	return fallbackEnv
}

func (env *environment) register(id string, c Component) {
	if id == "" {
		return
	}
	if prev, ok := env.registry[id]; ok && prev != c {
		warnf("duplicate component id %q; the newest mount wins", id)
	}
	env.registry[id] = c
}

func (env *environment) unregister(id string, c Component) {
	if id != "" && env.registry[id] == c {
		delete(env.registry, id)
	}
}

func (env *environment) lookup(id string) (Component, bool) {
	c, ok := env.registry[id]
	return c, ok
}

func (env *environment) ids() []string {
	return slices.Sorted(maps.Keys(env.registry))
}
