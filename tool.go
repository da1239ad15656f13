package pixelart

import "github.com/bodgit/pixelart/grid"

// Tool enumerates the raster editing tools.
type Tool int

const (
	// ToolNone is the idle state; it never mutates the grid.
	ToolNone Tool = iota
	// ToolPencil stamps the drawing color over the brush footprint.
	ToolPencil
	// ToolEraser stamps transparency over the brush footprint.
	ToolEraser
	// ToolMagicEraser clears every cell matching the target cell's
	// color across the whole grid in one step.
	ToolMagicEraser
)

func (t Tool) String() string {
	switch t {
	case ToolPencil:
		return "pencil"
	case ToolEraser:
		return "eraser"
	case ToolMagicEraser:
		return "magic eraser"
	default:
		return "none"
	}
}

// ToolState is the transient editing state of a session. It is never
// persisted.
type ToolState struct {
	Tool      Tool
	BrushSize int
	Color     grid.Cell
}

// DefaultToolState is the state handed to the user when a new grid
// arrives: pencil, single-cell brush, drawing in the first opaque color
// found in the grid, or black when the grid holds none.
func DefaultToolState(g *grid.Grid) ToolState {
	ts := ToolState{
		Tool:      ToolPencil,
		BrushSize: 1,
		Color:     grid.RGB(0, 0, 0),
	}
	if g == nil {
		ts.Tool = ToolNone
		return ts
	}
	for _, c := range g.Cells {
		if c.Opaque {
			ts.Color = c
			break
		}
	}
	return ts
}

// ApplyTool applies ts at grid coordinate (x, y). The input grid is
// never mutated: when nothing would change the original grid is
// returned with changed == false, otherwise a fresh copy carrying the
// edit is returned with changed == true. Coordinates outside the grid
// are a silent no-op since pointer positions naturally fall off the
// canvas at its edges.
func ApplyTool(g *grid.Grid, ts ToolState, x, y int) (out *grid.Grid, changed bool) {
	if g == nil || !g.InBounds(x, y) {
		return g, false
	}

	switch ts.Tool {
	case ToolPencil:
		return applyBrush(g, ts.BrushSize, x, y, ts.Color)
	case ToolEraser:
		return applyBrush(g, ts.BrushSize, x, y, grid.Transparent)
	case ToolMagicEraser:
		return applyMagicEraser(g, x, y)
	default:
		return g, false
	}
}

// applyBrush stamps a size × size footprint of c anchored so an odd
// brush is centered on the cursor cell and an even brush is biased
// toward lower indices. Cells already holding c do not count as
// changed.
func applyBrush(g *grid.Grid, size, x, y int, c grid.Cell) (*grid.Grid, bool) {
	if size < 1 {
		size = 1
	}
	half := size / 2

	var out *grid.Grid
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			cx, cy := x-half+dx, y-half+dy
			if !g.InBounds(cx, cy) {
				continue
			}
			if g.At(cx, cy) == c {
				continue
			}
			if out == nil {
				out = g.Clone()
			}
			out.Set(cx, cy, c)
		}
	}
	if out == nil {
		return g, false
	}
	return out, true
}

// applyMagicEraser clears every cell holding the target cell's exact
// color. It is a global replace by value, not a connected-region fill,
// and a no-op when the target is already transparent.
func applyMagicEraser(g *grid.Grid, x, y int) (*grid.Grid, bool) {
	target := g.At(x, y)
	if !target.Opaque {
		return g, false
	}
	out := g.Clone()
	for i, c := range out.Cells {
		if c == target {
			out.Cells[i] = grid.Transparent
		}
	}
	return out, true
}
