/*
Package pixelart is a library for converting raster images into editable
fixed-resolution pixel-art grids.

The grid produced by the quant package is the single authoritative model
of a drawing; everything on screen is a regenerable projection of it. A
Session owns exactly one grid at a time together with the transient tool
state, and applies pointer-driven edits strictly in delivery order.
*/
package pixelart

import (
	"io"
	"log"

	"github.com/bodgit/pixelart/grid"
)

// Session owns the authoritative grid for one editing session.
type Session struct {
	grid   *grid.Grid
	tools  ToolState
	drag   drag
	logger *log.Logger
}

// NewSession returns an idle session with no grid loaded. A nil logger
// discards all output.
func NewSession(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{logger: logger}
}

// Grid returns the current canvas, or nil before the first generation
// completes.
func (s *Session) Grid() *grid.Grid {
	return s.grid
}

// SetGrid replaces the canvas wholesale and resets the tool state to the
// defaults for the new canvas. Any drag in progress is abandoned.
func (s *Session) SetGrid(g *grid.Grid) {
	s.grid = g
	s.tools = DefaultToolState(g)
	s.drag = drag{}
	if g != nil {
		s.logger.Printf("session: new %dx%d grid, %d palette colors\n",
			g.Resolution, g.Resolution, len(g.Palette()))
	}
}

// Tools returns the current tool state.
func (s *Session) Tools() ToolState {
	return s.tools
}

// SetTool selects the active tool. Any tool is reachable from any other.
func (s *Session) SetTool(t Tool) {
	s.tools.Tool = t
}

// SetBrushSize sets the brush footprint side length, clamped to at
// least one cell.
func (s *Session) SetBrushSize(n int) {
	if n < 1 {
		n = 1
	}
	s.tools.BrushSize = n
}

// SetColor sets the pencil drawing color. Transparent is not a drawing
// color; use the eraser instead.
func (s *Session) SetColor(c grid.Cell) {
	if !c.Opaque {
		return
	}
	s.tools.Color = c
}

// drag tracks a held pointer between press and release.
type drag struct {
	active       bool
	lastX, lastY int
}

// Press starts a pointer stroke at grid coordinate (x, y) and applies
// the active tool there. It reports whether the canvas changed.
func (s *Session) Press(x, y int) bool {
	if s.grid == nil {
		return false
	}
	s.drag = drag{active: true, lastX: x, lastY: y}
	return s.apply(x, y)
}

// Move continues a held stroke. The magic eraser applies only on the
// initiating press, so moves are ignored while it is active, as are
// samples landing on the cell of the previous sample.
func (s *Session) Move(x, y int) bool {
	if !s.drag.active || s.grid == nil {
		return false
	}
	if s.tools.Tool == ToolMagicEraser {
		return false
	}
	if x == s.drag.lastX && y == s.drag.lastY {
		return false
	}
	s.drag.lastX, s.drag.lastY = x, y
	return s.apply(x, y)
}

// Release ends the stroke.
func (s *Session) Release() {
	s.drag.active = false
}

// Dragging reports whether a pointer stroke is in progress.
func (s *Session) Dragging() bool {
	return s.drag.active
}

func (s *Session) apply(x, y int) bool {
	g, changed := ApplyTool(s.grid, s.tools, x, y)
	if changed {
		s.grid = g
	}
	return changed
}
