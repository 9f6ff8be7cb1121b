//go:build ebiten

package ui

import (
	"image/color"

	"lifeworld/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineSpacing  = 16
)

// HUD renders the status footer and parameter list to the right of the grid.
type HUD struct {
	world *world.World
	width int
	panel *ebiten.Image
}

// NewHUD constructs a HUD for the provided world and panel width.
func NewHUD(w *world.World, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{world: w, width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := screen.Bounds().Dy()
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 24, G: 24, B: 30, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + lineSpacing
	for _, line := range StatusLines(h.world.Status()) {
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		y += lineSpacing
	}
	y += lineSpacing / 2
	for _, line := range ParameterLines(h.world.Algorithm()) {
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		y += lineSpacing
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
