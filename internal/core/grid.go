package core

import "errors"

// Field indices of the per-cell record.
const (
	FieldAlive = iota
	FieldID
	FieldGroup
	FieldAge
	FieldSex
	FieldPower
	FieldDirX // 0-2
	FieldDirY // 0-2
	FieldType // 0 = cooperative, 1 = exclusive
	FieldInfo1

	NumFields
)

var (
	// ErrInvalidSize is returned when a grid is requested with a non-positive dimension.
	ErrInvalidSize = errors.New("grid dimensions must be positive")
	// ErrRecordLength is returned when a record does not have NumFields entries.
	ErrRecordLength = errors.New("record must have exactly NumFields fields")
)

// Grid stores a 2D grid of cell records in row-major order. Each cell occupies
// NumFields consecutive values.
type Grid struct {
	W, H int
	data []int32
}

// NewGrid allocates a zero-filled grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	return &Grid{W: w, H: h, data: make([]int32, w*h*NumFields)}, nil
}

// GridFromCells wraps an existing buffer. The buffer length must match w*h*NumFields.
func GridFromCells(w, h int, cells []int32) (*Grid, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h*NumFields {
		return nil, ErrInvalidSize
	}
	return &Grid{W: w, H: h, data: cells}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []int32 { return g.data }

// Index returns the slice offset of field 0 of the cell at (x, y).
func (g *Grid) Index(x, y int) int { return (y*g.W + x) * NumFields }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns one field of the cell at (x, y).
func (g *Grid) Get(x, y, field int) int32 { return g.data[g.Index(x, y)+field] }

// Set writes one field of the cell at (x, y).
func (g *Grid) Set(x, y, field int, v int32) { g.data[g.Index(x, y)+field] = v }

// Alive reports whether the cell at (x, y) is alive.
func (g *Grid) Alive(x, y int) bool { return g.data[g.Index(x, y)+FieldAlive] != 0 }

// Record returns a copy of the record at (x, y).
func (g *Grid) Record(x, y int) []int32 {
	rec := make([]int32, NumFields)
	copy(rec, g.view(x, y))
	return rec
}

// SetRecord replaces the record at (x, y). Records of the wrong length are
// rejected without writing anything.
func (g *Grid) SetRecord(x, y int, rec []int32) error {
	if len(rec) != NumFields {
		return ErrRecordLength
	}
	copy(g.view(x, y), rec)
	return nil
}

// Kill zeroes the whole record at (x, y).
func (g *Grid) Kill(x, y int) {
	clear(g.view(x, y))
}

func (g *Grid) view(x, y int) []int32 {
	i := g.Index(x, y)
	return g.data[i : i+NumFields : i+NumFields]
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	clear(g.data)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]int32, len(g.data))
	copy(data, g.data)
	return &Grid{W: g.W, H: g.H, data: data}
}

// CountAlive returns the number of live cells.
func (g *Grid) CountAlive() int {
	n := 0
	for i := FieldAlive; i < len(g.data); i += NumFields {
		if g.data[i] != 0 {
			n++
		}
	}
	return n
}

// ForEachNeighbor calls fn for each in-bounds Moore neighbour of (x, y).
// Edges do not wrap.
func (g *Grid) ForEachNeighbor(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			if dx == 0 && dy == 0 {
				continue
			}
			fn(nx, ny)
		}
	}
}

// LiveNeighbors counts the live Moore neighbours of (x, y).
func (g *Grid) LiveNeighbors(x, y int) int {
	n := 0
	g.ForEachNeighbor(x, y, func(nx, ny int) {
		if g.Alive(nx, ny) {
			n++
		}
	})
	return n
}
