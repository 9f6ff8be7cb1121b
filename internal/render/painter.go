//go:build ebiten

package render

import (
	"image/color"

	"lifeworld/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter updates a single RGBA image from packed cell records.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte

	Palette []color.RGBA
	Off     color.RGBA
	Mode    Mode
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{
		w:       w,
		h:       h,
		buf:     make([]byte, 4*w*h),
		Palette: DefaultPalette,
		Off:     color.RGBA{A: 255},
	}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the provided cells into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []int32, scale int) {
	if len(cells) != gp.w*gp.h*core.NumFields {
		return
	}
	fillRecordsRGBA(gp.buf, cells, gp.Palette, gp.Off, gp.Mode)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
