package anim

import (
	"maps"
	"slices"

	fease "github.com/fogleman/ease"
	"github.com/tanema/gween/ease"
)

// DefaultEase is used when a tween names no ease, or an unknown one.
const DefaultEase = "OutQuad"

// builtinEases maps names to the gween easing functions.
var builtinEases = map[string]ease.TweenFunc{
	"Linear":       ease.Linear,
	"InQuad":       ease.InQuad,
	"OutQuad":      ease.OutQuad,
	"InOutQuad":    ease.InOutQuad,
	"OutInQuad":    ease.OutInQuad,
	"InCubic":      ease.InCubic,
	"OutCubic":     ease.OutCubic,
	"InOutCubic":   ease.InOutCubic,
	"OutInCubic":   ease.OutInCubic,
	"InQuart":      ease.InQuart,
	"OutQuart":     ease.OutQuart,
	"InOutQuart":   ease.InOutQuart,
	"OutInQuart":   ease.OutInQuart,
	"InQuint":      ease.InQuint,
	"OutQuint":     ease.OutQuint,
	"InOutQuint":   ease.InOutQuint,
	"OutInQuint":   ease.OutInQuint,
	"InSine":       ease.InSine,
	"OutSine":      ease.OutSine,
	"InOutSine":    ease.InOutSine,
	"OutInSine":    ease.OutInSine,
	"InExpo":       ease.InExpo,
	"OutExpo":      ease.OutExpo,
	"InOutExpo":    ease.InOutExpo,
	"OutInExpo":    ease.OutInExpo,
	"InCirc":       ease.InCirc,
	"OutCirc":      ease.OutCirc,
	"InOutCirc":    ease.InOutCirc,
	"OutInCirc":    ease.OutInCirc,
	"InElastic":    ease.InElastic,
	"OutElastic":   ease.OutElastic,
	"InOutElastic": ease.InOutElastic,
	"OutInElastic": ease.OutInElastic,
	"InBack":       ease.InBack,
	"OutBack":      ease.OutBack,
	"InOutBack":    ease.InOutBack,
	"OutInBack":    ease.OutInBack,
	"InBounce":     ease.InBounce,
	"OutBounce":    ease.OutBounce,
	"InOutBounce":  ease.InOutBounce,
	"OutInBounce":  ease.OutInBounce,

	// Step curves gween lacks, from fogleman/ease's square waves. StepEnd
	// jumps at the end, StepStart right after the start, StepMiddle at
	// the halfway point.
	"StepEnd":    Curve(fease.InSquare),
	"StepStart":  Curve(fease.OutSquare),
	"StepMiddle": Curve(fease.InOutSquare),
}

// Curve adapts a normalised curve (t in [0,1] to progress) to the gween
// easing signature.
func Curve(fn func(float64) float64) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(fn(float64(t/d)))
	}
}

// easeRegistry resolves ease names for one Engine.
type easeRegistry struct {
	funcs map[string]ease.TweenFunc
	def   string
}

func newEaseRegistry(extra map[string]ease.TweenFunc, def string) *easeRegistry {
	r := &easeRegistry{funcs: maps.Clone(builtinEases), def: DefaultEase}
	maps.Copy(r.funcs, extra)
	if def != "" {
		if _, ok := r.funcs[def]; ok {
			r.def = def
		} else {
			warnf("unknown default ease %q%s", def, DidYouMean(def, r.names()))
		}
	}
	return r
}

// lookup resolves an ease value from vars: a name, a TweenFunc or a plain
// curve. Unknown names fall back to the default with a warning.
func (r *easeRegistry) lookup(raw any) ease.TweenFunc {
	switch v := raw.(type) {
	case nil:
	case ease.TweenFunc:
		return v
	case func(t, b, c, d float32) float32:
		return v
	case func(float64) float64:
		return Curve(v)
	case string:
		if fn, ok := r.funcs[v]; ok {
			return fn
		}
		warnf("unknown ease %q%s", v, DidYouMean(v, r.names()))
	default:
		warnf("unsupported ease value of type %T", raw)
	}
	return r.funcs[r.def]
}

func (r *easeRegistry) names() []string {
	return slices.Sorted(maps.Keys(r.funcs))
}
