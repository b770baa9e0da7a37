package scenefile

import (
	"fmt"
	"slices"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/anim"
)

type builder struct {
	nodes map[string]*cadence.Node
}

func (b builder) entries(es []Entry, path string) ([]cadence.Element, error) {
	if len(es) == 0 {
		return nil, nil
	}
	out := make([]cadence.Element, len(es))
	for i, e := range es {
		el, err := b.entry(e, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = el
	}
	return out, nil
}

func (b builder) entry(e Entry, path string) (cadence.Element, error) {
	switch e.Kind {
	case KindNode:
		n, ok := b.nodes[e.Ref]
		if !ok {
			return nil, fmt.Errorf("%s: %w %q%s", path, ErrUnknownNode, e.Ref, anim.DidYouMean(e.Ref, names(b.nodes)))
		}
		return n, nil

	case KindFragment:
		items, err := b.entries(e.Items, path+".items")
		if err != nil {
			return nil, err
		}
		return cadence.Fragment(items), nil

	case KindTimeline:
		if err := validate(e, path); err != nil {
			return nil, err
		}
		target, err := b.entries(e.Target, path+".target")
		if err != nil {
			return nil, err
		}
		children, err := b.entries(e.Children, path+".children")
		if err != nil {
			return nil, err
		}
		return cadence.TimelineProps{
			ID:            e.ID,
			Target:        target,
			Duration:      e.Duration,
			Progress:      e.Progress,
			TotalProgress: e.TotalProgress,
			PlayState:     e.PlayState,
			Position:      e.Position,
			Align:         e.Align,
			Stagger:       e.Stagger,
			Vars:          e.Vars,
			Children:      children,
		}, nil

	case KindTween:
		if err := validate(e, path); err != nil {
			return nil, err
		}
		if len(e.Target) > 0 {
			return nil, fmt.Errorf("%s: a tween has no target list; put its nodes in children", path)
		}
		children, err := b.entries(e.Children, path+".children")
		if err != nil {
			return nil, err
		}
		return cadence.TweenProps{
			ID:            e.ID,
			Duration:      e.Duration,
			Progress:      e.Progress,
			TotalProgress: e.TotalProgress,
			PlayState:     e.PlayState,
			Position:      e.Position,
			Align:         e.Align,
			Stagger:       e.Stagger,
			To:            e.To,
			From:          e.From,
			StaggerTo:     e.StaggerTo,
			StaggerFrom:   e.StaggerFrom,
			Disabled:      e.Disabled,
			Vars:          e.Vars,
			Children:      children,
		}, nil
	}

	if e.Kind == "" {
		return nil, fmt.Errorf("%s: missing kind", path)
	}
	return nil, fmt.Errorf("%s: unknown kind %q%s", path, e.Kind, anim.DidYouMean(e.Kind, kinds))
}

func validate(e Entry, path string) error {
	if !e.PlayState.Valid() {
		return fmt.Errorf("%s: %w %q%s", path, cadence.ErrInvalidPlayState, e.PlayState, anim.DidYouMean(string(e.PlayState), playStateNames()))
	}
	if !e.Align.Valid() {
		return fmt.Errorf("%s: %w %q", path, anim.ErrInvalidAlign, e.Align)
	}
	if e.Position != "" {
		if _, err := anim.ParsePosition(e.Position); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func playStateNames() []string {
	out := make([]string, len(cadence.PlayStates))
	for i, ps := range cadence.PlayStates {
		out[i] = string(ps)
	}
	return out
}

func names(nodes map[string]*cadence.Node) []string {
	out := make([]string, 0, len(nodes))
	for k := range nodes {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
