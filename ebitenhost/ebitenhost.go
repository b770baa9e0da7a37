// Package ebitenhost runs a cadence scene in an [Ebitengine] window.
//
// Every visible node with a non-zero Width and Height is drawn as a filled
// rectangle in its world transform, tinted by its Color and world alpha.
//
//	scene := cadence.NewScene(anim.New(anim.Config{}))
//	scene.Render(el)
//	ebitenhost.Run(scene, ebitenhost.RunConfig{Title: "demo", Width: 640, Height: 480})
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/cadence"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// TPS sets ebiten's tick rate. Zero keeps the default of 60.
	TPS int
	// Background fills the screen before drawing. The zero value is black.
	Background cadence.Color
	ShowFPS    bool
	// ScreenshotDir receives PNGs for labels queued with Scene.Screenshot.
	// Defaults to "screenshots".
	ScreenshotDir string
	// UpdateFunc runs at the start of every tick, before the scene updates.
	// A non-nil error stops the game loop.
	UpdateFunc func() error
}

// Game implements ebiten.Game for a scene.
type Game struct {
	scene *cadence.Scene
	cfg   RunConfig
	fps   *fpsOverlay
	op    ebiten.DrawImageOptions
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wraps scene. Use it directly to embed cadence in your own loop;
// Run does this for you.
func NewGame(scene *cadence.Scene, cfg RunConfig) *Game {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	g := &Game{scene: scene, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Update advances the scene by one tick.
func (g *Game) Update() error {
	if g.cfg.UpdateFunc != nil {
		if err := g.cfg.UpdateFunc(); err != nil {
			return err
		}
	}
	dt := 1.0 / float64(ebiten.TPS())
	g.scene.Update(dt)
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

// Draw fills the background, draws every visible node and then writes any
// screenshots queued during Update.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background.NRGBA())
	g.scene.Root().Walk(func(n *cadence.Node) bool {
		if !n.Visible || n.IsDisposed() {
			return false
		}
		g.drawNode(screen, n)
		return true
	})
	if g.fps != nil {
		g.fps.draw(screen)
	}
	if labels := g.scene.TakeScreenshots(); len(labels) > 0 {
		if err := saveScreenshots(screen, g.cfg.ScreenshotDir, labels); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[cadence] screenshot: %v\n", err)
		}
	}
}

// Layout keeps the configured logical size, or follows the window when none
// was given.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		return g.cfg.Width, g.cfg.Height
	}
	return outsideWidth, outsideHeight
}

func (g *Game) drawNode(screen *ebiten.Image, n *cadence.Node) {
	if n.Width <= 0 || n.Height <= 0 {
		return
	}
	r, gr, b, a := tint(n)
	if a <= 0 {
		return
	}
	g.op.GeoM = nodeGeoM(n)
	g.op.ColorScale.Reset()
	g.op.ColorScale.Scale(r, gr, b, a)
	screen.DrawImage(ensureWhitePixel(), &g.op)
}

// nodeGeoM maps the unit square onto the node's Width x Height box in world
// space.
func nodeGeoM(n *cadence.Node) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(n.Width, n.Height)
	g.Concat(affineGeoM(n.WorldTransform()))
	return g
}

// affineGeoM converts an [a, b, c, d, tx, ty] matrix.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// tint returns the premultiplied color scale for a node.
func tint(n *cadence.Node) (r, g, b, a float32) {
	alpha := n.Color.A * n.WorldAlpha()
	if alpha > 1 {
		alpha = 1
	}
	a = float32(alpha)
	return float32(n.Color.R) * a, float32(n.Color.G) * a, float32(n.Color.B) * a, a
}

// --- White pixel singleton (no sync.Once, drawing is single-threaded) ---

var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Run opens a window and runs scene until the window closes or UpdateFunc
// returns an error.
func Run(scene *cadence.Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(scene, cfg))
}
