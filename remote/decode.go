package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/anim"
)

// ErrEmptyPayload is returned by Decode for blank messages.
var ErrEmptyPayload = errors.New("remote: empty payload")

// Decode parses a payload holding one command or a list of commands.
// Payloads starting with '{' or '[' are JSON; anything else is YAML. Every
// command must name a component, and play states must be known.
func Decode(payload []byte) ([]cadence.Command, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}

	var cmds []cadence.Command
	var err error
	switch trimmed[0] {
	case '{':
		var cmd cadence.Command
		err = json.Unmarshal(trimmed, &cmd)
		cmds = []cadence.Command{cmd}
	case '[':
		err = json.Unmarshal(trimmed, &cmds)
	default:
		cmds, err = decodeYAML(trimmed)
	}
	if err != nil {
		return nil, fmt.Errorf("remote: decode: %w", err)
	}

	for i, cmd := range cmds {
		if err := validate(cmd); err != nil {
			return nil, fmt.Errorf("remote: command %d: %w", i, err)
		}
	}
	return cmds, nil
}

func decodeYAML(data []byte) ([]cadence.Command, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, ErrEmptyPayload
	}
	doc := node.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var cmds []cadence.Command
		err := doc.Decode(&cmds)
		return cmds, err
	}
	var cmd cadence.Command
	if err := doc.Decode(&cmd); err != nil {
		return nil, err
	}
	return []cadence.Command{cmd}, nil
}

func validate(cmd cadence.Command) error {
	if cmd.ID == "" {
		return errors.New("missing id")
	}
	if !cmd.PlayState.Valid() {
		names := make([]string, len(cadence.PlayStates))
		for i, ps := range cadence.PlayStates {
			names[i] = string(ps)
		}
		return fmt.Errorf("%w %q%s", cadence.ErrInvalidPlayState, cmd.PlayState, anim.DidYouMean(string(cmd.PlayState), names))
	}
	return nil
}
