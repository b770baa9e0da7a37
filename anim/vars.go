package anim

import (
	"maps"
	"sort"
	"strconv"
	"strings"
)

// Vars is a free-form animation configuration. Reserved keys configure
// timing and callbacks; every other key names a property to animate.
type Vars map[string]any

// reserved lists the keys that never name an animated property.
var reserved = map[string]bool{
	"delay":             true,
	"duration":          true,
	"ease":              true,
	"repeat":            true,
	"repeatDelay":       true,
	"yoyo":              true,
	"paused":            true,
	"reversed":          true,
	"timeScale":         true,
	"immediateRender":   true,
	"smoothChildTiming": true,
	"startAt":           true,
	"onStart":           true,
	"onUpdate":          true,
	"onComplete":        true,
	"onRepeat":          true,
	"onReverseComplete": true,
}

// IsReserved reports whether key configures the animation rather than
// naming a property.
func IsReserved(key string) bool {
	return reserved[key]
}

// Clone returns a shallow copy of v. A nil Vars clones to an empty map.
func (v Vars) Clone() Vars {
	out := make(Vars, len(v))
	maps.Copy(out, v)
	return out
}

// Merge returns a new Vars holding v overlaid with each of others in order.
func (v Vars) Merge(others ...Vars) Vars {
	out := v.Clone()
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Properties returns the non-reserved keys in sorted order.
func (v Vars) Properties() []string {
	var keys []string
	for k := range v {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Float returns the numeric value stored at key, or def when absent or not
// numeric.
func (v Vars) Float(key string, def float64) float64 {
	raw, ok := v[key]
	if !ok {
		return def
	}
	if f, ok := toFloat(raw); ok {
		return f
	}
	return def
}

// Int returns the integer value stored at key, or def.
func (v Vars) Int(key string, def int) int {
	raw, ok := v[key]
	if !ok {
		return def
	}
	if f, ok := toFloat(raw); ok {
		return int(f)
	}
	return def
}

// Bool returns the boolean value stored at key, or def.
func (v Vars) Bool(key string, def bool) bool {
	if b, ok := v[key].(bool); ok {
		return b
	}
	return def
}

// String returns the string value stored at key, or def.
func (v Vars) String(key string, def string) string {
	if s, ok := v[key].(string); ok {
		return s
	}
	return def
}

// Func returns the callback stored at key, or nil.
func (v Vars) Func(key string) func() {
	if fn, ok := v[key].(func()); ok {
		return fn
	}
	return nil
}

// Vars returns the nested Vars stored at key, or nil.
func (v Vars) Vars(key string) Vars {
	switch n := v[key].(type) {
	case Vars:
		return n
	case map[string]any:
		return Vars(n)
	}
	return nil
}

// toFloat converts the numeric kinds that appear in hand-written and
// YAML-decoded vars. Plain numeric strings are accepted too.
func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// relative parses "+=x" / "-=x" strings. ok is false for anything else.
func relative(raw any) (delta float64, ok bool) {
	s, isStr := raw.(string)
	if !isStr || len(s) < 3 {
		return 0, false
	}
	sign := 1.0
	switch s[:2] {
	case "+=":
	case "-=":
		sign = -1
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s[2:]), 64)
	if err != nil {
		return 0, false
	}
	return sign * f, true
}
