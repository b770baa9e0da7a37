package ebitenhost

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/anim"
)

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- Geometry ---

func TestNodeGeoMTranslateAndSize(t *testing.T) {
	n := cadence.NewRect("r", 4, 2, cadence.ColorWhite)
	n.X, n.Y = 10, 20
	cadence.UpdateTransforms(n)

	g := nodeGeoM(n)
	x, y := g.Apply(1, 1)
	assertNear(t, "x", x, 14)
	assertNear(t, "y", y, 22)
	x, y = g.Apply(0, 0)
	assertNear(t, "origin x", x, 10)
	assertNear(t, "origin y", y, 20)
}

func TestNodeGeoMFollowsParent(t *testing.T) {
	parent := cadence.NewNode("parent")
	parent.X = 100
	parent.ScaleX, parent.ScaleY = 2, 2
	child := cadence.NewRect("child", 10, 10, cadence.ColorWhite)
	child.X = 5
	parent.AddChild(child)
	cadence.UpdateTransforms(parent)

	g := nodeGeoM(child)
	x, y := g.Apply(1, 1)
	assertNear(t, "x", x, 100+2*(5+10))
	assertNear(t, "y", y, 20)
}

func TestNodeGeoMRotation(t *testing.T) {
	n := cadence.NewRect("r", 10, 10, cadence.ColorWhite)
	n.Rotation = math.Pi / 2
	cadence.UpdateTransforms(n)

	g := nodeGeoM(n)
	x, y := g.Apply(1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 10)
}

func TestTintPremultipliesWorldAlpha(t *testing.T) {
	parent := cadence.NewNode("parent")
	parent.Alpha = 0.5
	child := cadence.NewRect("child", 1, 1, cadence.Color{R: 1, G: 0.5, B: 0, A: 0.8})
	parent.AddChild(child)
	cadence.UpdateTransforms(parent)

	r, g, b, a := tint(child)
	want := [4]float32{0.4, 0.2, 0, 0.4}
	for i, got := range [4]float32{r, g, b, a} {
		if math.Abs(float64(got-want[i])) > 1e-6 {
			t.Errorf("tint[%d] = %v, want %v", i, got, want[i])
		}
	}
}

// --- Game ---

func TestGameUpdateAdvancesScene(t *testing.T) {
	s := cadence.NewScene(anim.New(anim.Config{}))
	n := cadence.NewRect("n", 10, 10, cadence.ColorWhite)
	s.Render(cadence.TweenProps{
		To:       anim.Vars{"x": 60},
		Duration: cadence.Float(1),
		Vars:     anim.Vars{"ease": "Linear"},
		Children: []cadence.Element{n},
	})

	calls := 0
	g := NewGame(s, RunConfig{UpdateFunc: func() error { calls++; return nil }})
	for range 30 {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 30 {
		t.Errorf("UpdateFunc calls = %d, want 30", calls)
	}
	if math.Abs(n.X-30) > 0.01 {
		t.Errorf("x after 30 ticks at 60 TPS = %v, want 30", n.X)
	}
}

func TestGameLayout(t *testing.T) {
	g := NewGame(cadence.NewScene(nil), RunConfig{Width: 320, Height: 240})
	if w, h := g.Layout(1000, 800); w != 320 || h != 240 {
		t.Errorf("Layout = %dx%d, want 320x240", w, h)
	}
	g = NewGame(cadence.NewScene(nil), RunConfig{})
	if w, h := g.Layout(1000, 800); w != 1000 || h != 800 {
		t.Errorf("Layout = %dx%d, want 1000x800", w, h)
	}
}

func TestNewGameDefaults(t *testing.T) {
	g := NewGame(cadence.NewScene(nil), RunConfig{ShowFPS: true})
	if g.cfg.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want screenshots", g.cfg.ScreenshotDir)
	}
	if g.fps == nil {
		t.Error("fps overlay should be created when ShowFPS is set")
	}
}

// --- Screenshots ---

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half alpha
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{
		255, 127, 0, 128,
		10, 20, 30, 255,
		0, 0, 0, 0,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := unpremultiply([]byte{255, 0, 0, 255}, 1, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("bounds = %v, want 1x1", b)
	}
}
