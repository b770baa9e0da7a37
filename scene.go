package cadence

import (
	"errors"
	"fmt"
	"sync"

	"github.com/phanxgames/cadence/anim"
)

// Errors returned by Scene.Control.
var (
	ErrUnknownComponent = errors.New("cadence: unknown component")
	ErrNotBuilt         = errors.New("cadence: component has no animation")
	ErrInvalidPlayState = errors.New("cadence: invalid play state")
)

// Ticker is implemented by factories that own a clock, such as
// *anim.Engine. Scene.Update ticks it.
type Ticker interface {
	Tick(dt float64)
}

// Command is an imperative playback instruction for the component with
// ID, typically received from outside the frame loop.
type Command struct {
	ID            string    `json:"id" yaml:"id"`
	PlayState     PlayState `json:"playState,omitempty" yaml:"playState,omitempty"`
	Progress      *float64  `json:"progress,omitempty" yaml:"progress,omitempty"`
	TotalProgress *float64  `json:"totalProgress,omitempty" yaml:"totalProgress,omitempty"`
}

// Scene is the top-level object that owns the node tree, the mounted
// element tree and the animation factory.
type Scene struct {
	root  *Node
	env   *environment
	tree  []mounted
	debug bool

	script      *ScriptRunner
	screenshots []string

	mu      sync.Mutex
	pending []Command
}

// NewScene creates a scene with a pre-created root node. A nil factory
// uses anim.Default().
func NewScene(f anim.Factory) *Scene {
	return &Scene{
		root: NewNode("root"),
		env:  newEnvironment(f),
	}
}

// Root returns the scene's root node. Mounted *Node elements are attached
// to it.
func (s *Scene) Root() *Node {
	return s.root
}

// Factory returns the factory components build their animations with.
func (s *Scene) Factory() anim.Factory {
	return s.env.factory
}

// Context returns the root context: no timeline, no targets.
func (s *Scene) Context() Context {
	return Context{env: s.env}
}

// Render reconciles the mounted tree against els. Call it again with new
// props to update components; slots are matched by index.
func (s *Scene) Render(els ...Element) {
	s.tree = reconcile(s.tree, els, s.Context(), s.root)
}

// Update applies queued commands, advances the factory's clock by dt
// seconds and refreshes world transforms.
func (s *Scene) Update(dt float64) {
	if s.script != nil {
		s.script.step(s)
	}
	for _, cmd := range s.drain() {
		if err := s.Control(cmd.ID, cmd); err != nil {
			warnf("command %+v: %v", cmd, err)
		}
	}
	if t, ok := s.env.factory.(Ticker); ok {
		t.Tick(dt)
	}
	UpdateTransforms(s.root)
}

// Unmount unmounts the whole element tree, killing every animation.
func (s *Scene) Unmount() {
	unmountAll(s.tree)
	s.tree = nil
}

// Lookup returns the mounted component with the given ID.
func (s *Scene) Lookup(id string) (Component, bool) {
	return s.env.lookup(id)
}

// Components returns the IDs of all mounted components, sorted.
func (s *Scene) Components() []string {
	return s.env.ids()
}

// Control applies cmd to the component with the given ID immediately. It
// must be called from the frame goroutine; use Enqueue elsewhere.
func (s *Scene) Control(id string, cmd Command) error {
	c, ok := s.env.lookup(id)
	if !ok {
		return fmt.Errorf("%w %q%s", ErrUnknownComponent, id, anim.DidYouMean(id, s.env.ids()))
	}
	a := c.Animation()
	if a == nil {
		return fmt.Errorf("%w: %q", ErrNotBuilt, id)
	}
	if !cmd.PlayState.Valid() {
		names := make([]string, len(PlayStates))
		for i, ps := range PlayStates {
			names[i] = string(ps)
		}
		return fmt.Errorf("%w %q%s", ErrInvalidPlayState, cmd.PlayState, anim.DidYouMean(string(cmd.PlayState), names))
	}
	if cmd.Progress != nil {
		a.SetProgress(*cmd.Progress)
	}
	if cmd.TotalProgress != nil {
		a.SetTotalProgress(*cmd.TotalProgress)
	}
	ApplyPlayState(a, "", cmd.PlayState)
	return nil
}

// Enqueue queues cmd for the next Update. Safe for concurrent use.
func (s *Scene) Enqueue(cmd Command) {
	s.mu.Lock()
	s.pending = append(s.pending, cmd)
	s.mu.Unlock()
}

func (s *Scene) drain() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmds := s.pending
	s.pending = nil
	return cmds
}

// SetEventSink sets the receiver of animation events for components with
// an ID. Pass nil to stop emitting.
func (s *Scene) SetEventSink(sink EventSink) {
	s.env.sink = sink
}

// SetDebugMode enables or disables debug checks. When enabled, using a
// disposed node as a target or tree operand panics, and deep or wide trees
// produce warnings.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Screenshot asks the host to capture the next drawn frame under label.
func (s *Scene) Screenshot(label string) {
	s.screenshots = append(s.screenshots, label)
}

// TakeScreenshots returns and clears the pending screenshot labels. Hosts
// call it after drawing a frame.
func (s *Scene) TakeScreenshots() []string {
	labels := s.screenshots
	s.screenshots = nil
	return labels
}
