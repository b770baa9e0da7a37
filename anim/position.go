package anim

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Position is a parsed placement within a timeline.
//
//	""          end of the timeline
//	"+=1"       one second past the end
//	"-=0.5"     half a second before the end
//	"2"         absolute time 2
//	"intro"     at label intro
//	"intro+=1"  one second after label intro
type Position struct {
	Label    string
	Offset   float64
	Absolute bool
}

// ParsePosition parses the position grammar used by Sequencer.Add.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Position{}, nil
	}
	if strings.HasPrefix(s, "+=") || strings.HasPrefix(s, "-=") {
		d, ok := relative(s)
		if !ok {
			return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
		}
		return Position{Offset: d}, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return Position{}, fmt.Errorf("%w: %q is negative", ErrInvalidPosition, s)
		}
		return Position{Offset: f, Absolute: true}, nil
	}
	label, off := s, 0.0
	if i := offsetIndex(s); i > 0 {
		d, ok := relative(s[i:])
		if !ok {
			return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
		}
		label, off = strings.TrimSpace(s[:i]), d
	}
	return Position{Label: label, Offset: off}, nil
}

// resolve turns p into a time in the timeline whose end is end.
func (p Position) resolve(end float64, labels map[string]float64) (float64, error) {
	switch {
	case p.Absolute:
		return p.Offset, nil
	case p.Label == "":
		return max(0, end+p.Offset), nil
	}
	at, ok := labels[p.Label]
	if !ok {
		names := make([]string, 0, len(labels))
		for name := range labels {
			names = append(names, name)
		}
		slices.Sort(names)
		return 0, fmt.Errorf("%w: %q%s", ErrUnknownLabel, p.Label, DidYouMean(p.Label, names))
	}
	return max(0, at+p.Offset), nil
}

// offsetIndex finds the start of a "+=" or "-=" suffix after a label.
func offsetIndex(s string) int {
	if i := strings.LastIndex(s, "+="); i >= 0 {
		return i
	}
	return strings.LastIndex(s, "-=")
}
