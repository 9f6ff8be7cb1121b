package render

import (
	"image/color"

	"lifeworld/internal/core"
)

// DefaultPalette colours live cells by cohort.
var DefaultPalette = []color.RGBA{
	{R: 120, G: 220, B: 120, A: 255},
	{R: 240, G: 200, B: 80, A: 255},
	{R: 110, G: 170, B: 250, A: 255},
	{R: 240, G: 110, B: 110, A: 255},
	{R: 200, G: 130, B: 240, A: 255},
	{R: 90, G: 220, B: 220, A: 255},
}

// Mode selects which field drives the colour of a live cell.
type Mode int

const (
	// ByGroup colours cells by cohort.
	ByGroup Mode = iota
	// ByType colours cooperative and exclusive cells differently.
	ByType
)

// fillRecordsRGBA converts packed cell records into RGBA pixels in buf.
// Dead cells get off; live cells a palette entry picked by mode. When the
// palette is empty live cells are drawn white.
func fillRecordsRGBA(buf []byte, cells []int32, palette []color.RGBA, off color.RGBA, mode Mode) {
	n := len(cells) / core.NumFields
	for i := 0; i < n; i++ {
		rec := cells[i*core.NumFields : (i+1)*core.NumFields]
		col := off
		if rec[core.FieldAlive] != 0 {
			col = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if len(palette) > 0 {
				key := rec[core.FieldGroup]
				if mode == ByType {
					key = rec[core.FieldType]
				}
				idx := int(key) % len(palette)
				if idx < 0 {
					idx += len(palette)
				}
				col = palette[idx]
			}
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
