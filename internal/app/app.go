//go:build ebiten

package app

import (
	"lifeworld/internal/core"
	"lifeworld/internal/render"
	"lifeworld/internal/ui"
	"lifeworld/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

type algorithmKey struct {
	key ebiten.Key
	tag string
}

var algorithmKeys = []algorithmKey{
	{ebiten.Key1, core.TagNormal},
	{ebiten.Key2, core.TagCoEx},
	{ebiten.Key3, core.TagMove},
}

// Game adapts a world controller to the ebiten.Game interface.
type Game struct {
	world   *world.World
	painter *render.GridPainter
	hud     *ui.HUD

	scale   int
	density float64

	lastX, lastY int
}

// New constructs a Game for the provided world.
func New(w *world.World, scale int, density float64) *Game {
	size := w.Size()
	return &Game{
		world:   w,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(w, hudWidth),
		scale:   scale,
		density: density,
	}
}

// WindowSize returns the preferred window size in pixels.
func (g *Game) WindowSize() (int, int) {
	size := g.world.Size()
	return size.W*g.scale + g.hud.Width(), size.H * g.scale
}

// Update handles input and applies any generations the worker delivered.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.world.Stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.world.Running() {
			g.world.Stop()
		} else {
			g.world.Start(true)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.world.Start(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Stop()
		size := g.world.Size()
		g.world.SeedRandom(g.density, 0, 0, size.W-1, size.H-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.world.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.painter.Mode = (g.painter.Mode + 1) % 2
	}
	for _, ak := range algorithmKeys {
		if inpututil.IsKeyJustPressed(ak.key) {
			g.world.Stop()
			g.world.SetAlgorithm(ak.tag)
		}
	}

	g.handleMouse()
	g.world.Update()
	return nil
}

// handleMouse toggles on click and paints on drag. Edits stop the worker
// first so the grid is never written while a generation is in flight.
func (g *Game) handleMouse() {
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if !pressed {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	size := g.world.Size()
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return
	}
	click := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if !click && x == g.lastX && y == g.lastY {
		return
	}
	g.lastX, g.lastY = x, y
	g.world.Stop()
	g.world.ToggleCell(x, y, click)
}

// Draw renders the current grid and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world.Cells(), g.scale)
	size := g.world.Size()
	g.hud.Draw(screen, size.W*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
