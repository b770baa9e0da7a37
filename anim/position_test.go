package anim

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"", Position{}},
		{"+=0", Position{}},
		{"+=1.5", Position{Offset: 1.5}},
		{"-=0.25", Position{Offset: -0.25}},
		{"3", Position{Offset: 3, Absolute: true}},
		{"intro", Position{Label: "intro"}},
		{"intro+=1", Position{Label: "intro", Offset: 1}},
		{"intro -=2", Position{Label: "intro", Offset: -2}},
		{"fade-in", Position{Label: "fade-in"}},
	}
	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if err != nil {
			t.Errorf("ParsePosition(%q) error: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParsePosition(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestParsePositionErrors(t *testing.T) {
	for _, in := range []string{"+=x", "-5", "intro+=abc"} {
		if _, err := ParsePosition(in); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("ParsePosition(%q) = %v, want ErrInvalidPosition", in, err)
		}
	}
}

func TestResolvePosition(t *testing.T) {
	labels := map[string]float64{"intro": 2}
	tests := []struct {
		in   string
		want float64
	}{
		{"", 5},
		{"+=1", 6},
		{"-=10", 0},
		{"1", 1},
		{"intro-=0.5", 1.5},
	}
	for _, tt := range tests {
		p, err := ParsePosition(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		got, err := p.resolve(5, labels)
		if err != nil {
			t.Fatalf("resolve(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("resolve(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}

	p, _ := ParsePosition("intr")
	if _, err := p.resolve(5, labels); !errors.Is(err, ErrUnknownLabel) {
		t.Errorf("resolve(intr) = %v, want ErrUnknownLabel", err)
	}
}

func TestVarsHelpers(t *testing.T) {
	v := Vars{"x": 1, "delay": "0.5", "ease": "Linear", "yoyo": true, "alpha": 0.5}

	if diff := cmp.Diff([]string{"alpha", "x"}, v.Properties()); diff != "" {
		t.Errorf("Properties mismatch (-want +got):\n%s", diff)
	}
	if got := v.Float("delay", 0); got != 0.5 {
		t.Errorf("Float(delay) = %f, want 0.5", got)
	}
	if !v.Bool("yoyo", false) {
		t.Error("Bool(yoyo) = false")
	}
	if got := v.Int("missing", 7); got != 7 {
		t.Errorf("Int(missing) = %d, want 7", got)
	}

	merged := v.Merge(Vars{"x": 2})
	if v["x"] != 1 || merged["x"] != 2 {
		t.Errorf("Merge mutated receiver or lost override: %v / %v", v["x"], merged["x"])
	}
}

func TestSuggest(t *testing.T) {
	names := []string{"play", "pause", "reverse", "restart"}
	if got := Suggest("pasue", names); got != "pause" {
		t.Errorf("Suggest(pasue) = %q, want pause", got)
	}
	if got := Suggest("xylophone", names); got != "" {
		t.Errorf("Suggest(xylophone) = %q, want empty", got)
	}
}

func TestUnknownLabelSuggestionIsStable(t *testing.T) {
	// "ontro" is one edit from every label; the alphabetically first wins.
	labels := map[string]float64{"intro": 1, "antro": 2, "outro": 3}
	p, _ := ParsePosition("ontro")
	for range 20 {
		_, err := p.resolve(5, labels)
		if err == nil || !strings.Contains(err.Error(), `did you mean "antro"`) {
			t.Fatalf("resolve(ontro) = %v, want a suggestion of antro", err)
		}
	}
}
