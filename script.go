package cadence

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/cadence/anim"
)

// scriptStep is a single action in a playback script.
type scriptStep struct {
	Action        string    `json:"action" yaml:"action"`
	ID            string    `json:"id,omitempty" yaml:"id,omitempty"`
	PlayState     PlayState `json:"playState,omitempty" yaml:"playState,omitempty"`
	Progress      *float64  `json:"progress,omitempty" yaml:"progress,omitempty"`
	TotalProgress *float64  `json:"totalProgress,omitempty" yaml:"totalProgress,omitempty"`
	Label         string    `json:"label,omitempty" yaml:"label,omitempty"`
	Frames        int       `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// script is the top-level JSON structure of a playback script.
type script struct {
	Steps []scriptStep `json:"steps" yaml:"steps"`
}

var scriptActions = []string{"control", "wait", "screenshot"}

// ScriptRunner sequences playback commands and screenshots across frames,
// for automated visual checks of an animation. Attach it with
// Scene.SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON playback script:
//
//	{"steps": [
//		{"action": "control", "id": "intro", "playState": "pause", "progress": 0.5},
//		{"action": "wait", "frames": 3},
//		{"action": "screenshot", "label": "half-way"}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return newScriptRunner(s.Steps)
}

func newScriptRunner(steps []scriptStep) (*ScriptRunner, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range steps {
		known := false
		for _, a := range scriptActions {
			known = known || st.Action == a
		}
		if !known {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q%s", i, st.Action, anim.DidYouMean(st.Action, scriptActions))
		}
		if st.Action == "control" && st.ID == "" {
			return nil, fmt.Errorf("parse script: step %d: control needs an id", i)
		}
	}
	return &ScriptRunner{steps: steps}, nil
}

// SetScriptRunner attaches a runner to the scene. Its step method is called
// at the start of every Scene.Update.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "control":
		cmd := Command{ID: st.ID, PlayState: st.PlayState, Progress: st.Progress, TotalProgress: st.TotalProgress}
		if err := s.Control(st.ID, cmd); err != nil {
			warnf("script step %d: %v", r.cursor-1, err)
		}
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
