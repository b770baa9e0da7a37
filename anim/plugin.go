package anim

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PropSpec describes one property of one target inside a tween.
type PropSpec struct {
	Target Target
	Name   string
	// From and To are the raw values from vars. A nil value means "use the
	// target's current value".
	From, To any
	Ease     ease.TweenFunc
}

// Interpolator writes a property's value for a normalised time in [0, 1].
// Tweens render through interpolators over a unit duration so a duration
// change never invalidates captured values.
type Interpolator interface {
	Render(t float32)
}

// Plugin animates properties of a particular name. Plugins are registered
// once through Config.Plugins and looked up by Name.
type Plugin interface {
	Name() string
	// Init captures start and end values. It returns nil, nil when the
	// target cannot hold the property.
	Init(spec PropSpec) (Interpolator, error)
}

// --- Numeric ---

type numericPlugin struct{}

func (numericPlugin) Name() string { return "" }

func (numericPlugin) Init(spec PropSpec) (Interpolator, error) {
	current, ok := spec.Target.Property(spec.Name)
	if !ok {
		return nil, nil
	}
	begin, err := resolveNumber(spec.From, current)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", spec.Name, err)
	}
	end, err := resolveNumber(spec.To, current)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", spec.Name, err)
	}
	return &numberTween{
		target: spec.Target,
		name:   spec.Name,
		tween:  gween.New(float32(begin), float32(end), 1, spec.Ease),
	}, nil
}

// resolveNumber turns a raw vars value into an absolute number relative to
// the current value ("+=10").
func resolveNumber(raw any, current float64) (float64, error) {
	if raw == nil {
		return current, nil
	}
	if d, ok := relative(raw); ok {
		return current + d, nil
	}
	if f, ok := toFloat(raw); ok {
		return f, nil
	}
	return 0, fmt.Errorf("value %v (%T) is not numeric", raw, raw)
}

type numberTween struct {
	target Target
	name   string
	tween  *gween.Tween
}

func (n *numberTween) Render(t float32) {
	v, _ := n.tween.Set(t)
	n.target.SetProperty(n.name, float64(v))
}

// --- Colour ---

type colorPlugin struct{ name string }

// ColorPlugin returns a plugin that blends the named colour property in Lab
// space. "color" is registered by default.
func ColorPlugin(name string) Plugin { return colorPlugin{name: name} }

func (p colorPlugin) Name() string { return p.name }

func (p colorPlugin) Init(spec PropSpec) (Interpolator, error) {
	ct, ok := spec.Target.(ColorTarget)
	if !ok {
		return nil, nil
	}
	current, alpha, ok := ct.ColorProperty(spec.Name)
	if !ok {
		return nil, nil
	}
	begin, beginA, err := resolveColor(spec.From, current, alpha)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", spec.Name, err)
	}
	end, endA, err := resolveColor(spec.To, current, alpha)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", spec.Name, err)
	}
	return &colorTween{
		target: ct,
		name:   spec.Name,
		begin:  begin,
		end:    end,
		beginA: beginA,
		endA:   endA,
		ratio:  gween.New(0, 1, 1, spec.Ease),
	}, nil
}

// isColorValue reports whether a raw vars value looks like a colour.
func isColorValue(raw any) bool {
	switch v := raw.(type) {
	case colorful.Color:
		return true
	case string:
		return strings.HasPrefix(v, "#")
	}
	return false
}

func resolveColor(raw any, current colorful.Color, alpha float64) (colorful.Color, float64, error) {
	switch v := raw.(type) {
	case nil:
		return current, alpha, nil
	case colorful.Color:
		return v, alpha, nil
	case string:
		c, a, err := parseHexColor(v)
		if err != nil {
			return current, alpha, err
		}
		return c, a, nil
	}
	return current, alpha, fmt.Errorf("value %v (%T) is not a colour", raw, raw)
}

// parseHexColor accepts #rgb, #rrggbb and #rrggbbaa.
func parseHexColor(s string) (colorful.Color, float64, error) {
	if len(s) == 9 {
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return c, 1, err
		}
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return c, 1, fmt.Errorf("parse alpha of %q: %w", s, err)
		}
		return c, float64(a) / 255, nil
	}
	c, err := colorful.Hex(s)
	return c, 1, err
}

type colorTween struct {
	target       ColorTarget
	name         string
	begin, end   colorful.Color
	beginA, endA float64
	ratio        *gween.Tween
}

func (c *colorTween) Render(t float32) {
	r, _ := c.ratio.Set(t)
	f := float64(r)
	col := c.begin.BlendLab(c.end, f).Clamped()
	c.target.SetColorProperty(c.name, col, c.beginA+(c.endA-c.beginA)*f)
}

// --- autoAlpha ---

// autoAlphaPlugin animates "alpha" and hides the target while it is zero.
type autoAlphaPlugin struct{}

func (autoAlphaPlugin) Name() string { return "autoAlpha" }

func (autoAlphaPlugin) Init(spec PropSpec) (Interpolator, error) {
	inner, err := numericPlugin{}.Init(PropSpec{
		Target: spec.Target,
		Name:   "alpha",
		From:   spec.From,
		To:     spec.To,
		Ease:   spec.Ease,
	})
	if inner == nil || err != nil {
		return inner, err
	}
	vt, _ := spec.Target.(VisibilityTarget)
	return &autoAlphaTween{inner: inner.(*numberTween), vis: vt}, nil
}

type autoAlphaTween struct {
	inner *numberTween
	vis   VisibilityTarget
}

func (a *autoAlphaTween) Render(t float32) {
	a.inner.Render(t)
	if a.vis == nil {
		return
	}
	v, _ := a.inner.target.Property("alpha")
	a.vis.SetVisible(v > 0)
}
