/*
Package grid implements the pixel-art canvas model.

A canvas is a flat, row-major sequence of cells addressed as
i = y*resolution + x with the origin in the top-left corner. Each cell is
either a fully opaque RGB color or transparent; there is no partial
alpha. Grids are always square with a side length drawn from a small set
of supported resolutions.
*/
package grid

import (
	"errors"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Resolutions enumerates the supported square grid side lengths.
var Resolutions = []int{32, 64, 128, 256}

// ErrResolution is returned when a grid of an unsupported side length is
// requested.
var ErrResolution = errors.New("grid: unsupported resolution")

// ValidResolution reports whether n is a supported grid side length.
func ValidResolution(n int) bool {
	for _, r := range Resolutions {
		if n == r {
			return true
		}
	}
	return false
}

// Cell is a single canvas element. The zero value is the transparent
// sentinel; any opaque cell carries a fully opaque RGB color.
type Cell struct {
	R, G, B uint8
	Opaque  bool
}

// Transparent is the absent-pixel sentinel.
var Transparent = Cell{}

// RGB returns an opaque cell of the given color.
func RGB(r, g, b uint8) Cell {
	return Cell{R: r, G: g, B: b, Opaque: true}
}

// Hex returns the canonical "#rrggbb" form of an opaque cell. The
// transparent sentinel has no hex form and renders as the empty string.
func (c Cell) Hex() string {
	if !c.Opaque {
		return ""
	}
	return c.Colorful().Hex()
}

// Colorful converts the cell color for colorimetric math.
func (c Cell) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// NRGBA converts the cell to its bitmap pixel value; transparent cells
// map to the fully transparent pixel.
func (c Cell) NRGBA() color.NRGBA {
	if !c.Opaque {
		return color.NRGBA{}
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// ParseHex parses a "#rrggbb" string into an opaque cell.
func ParseHex(s string) (Cell, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return Transparent, err
	}
	r, g, b := col.RGB255()
	return RGB(r, g, b), nil
}

// Grid is a square pixel-art canvas. Cells is row-major with the origin
// in the top-left corner and always holds exactly Resolution² elements.
type Grid struct {
	Resolution int
	Cells      []Cell
}

// New returns a fully transparent canvas of the given side length.
func New(resolution int) (*Grid, error) {
	if !ValidResolution(resolution) {
		return nil, ErrResolution
	}
	return &Grid{
		Resolution: resolution,
		Cells:      make([]Cell, resolution*resolution),
	}, nil
}

// InBounds reports whether (x, y) addresses a cell of the canvas.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Resolution && y >= 0 && y < g.Resolution
}

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) Cell {
	return g.Cells[y*g.Resolution+x]
}

// Set overwrites the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) {
	g.Cells[y*g.Resolution+x] = c
}

// Clone returns an independent copy of the canvas.
func (g *Grid) Clone() *Grid {
	dup := &Grid{
		Resolution: g.Resolution,
		Cells:      make([]Cell, len(g.Cells)),
	}
	copy(dup.Cells, g.Cells)
	return dup
}

// Equal reports whether both canvases hold identical cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Resolution != o.Resolution || len(g.Cells) != len(o.Cells) {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// Palette returns the unique opaque colors of the canvas in
// first-occurrence order. The order is deterministic so derived formats
// are reproducible.
func (g *Grid) Palette() []Cell {
	seen := make(map[Cell]struct{})
	var palette []Cell
	for _, c := range g.Cells {
		if !c.Opaque {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		palette = append(palette, c)
	}
	return palette
}
