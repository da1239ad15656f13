package tui

import "github.com/bodgit/pixelart"

const (
	// cellAspect is the number of terminal columns drawn per logical
	// pixel so cells come out roughly square.
	cellAspect = 2

	// statusRows is the number of rows reserved below the canvas.
	statusRows = 2
)

// layout describes where the canvas sits on the screen.
type layout struct {
	resolution int
	scale      int
	ox, oy     int
}

// computeLayout fits a grid of the given resolution into a width ×
// height screen, leaving room for the status rows.
func computeLayout(width, height, resolution int) layout {
	l := layout{
		resolution: resolution,
		scale:      pixelart.ViewportScale(width/cellAspect, height-statusRows, resolution),
	}
	l.ox = (width - resolution*l.scale*cellAspect) / 2
	l.oy = (height - statusRows - resolution*l.scale) / 2
	if l.ox < 0 {
		l.ox = 0
	}
	if l.oy < 0 {
		l.oy = 0
	}
	return l
}

// gridCoord translates a screen position into a grid coordinate,
// reporting false for positions outside the canvas.
func (l layout) gridCoord(screenX, screenY int) (x, y int, ok bool) {
	if screenX < l.ox || screenY < l.oy {
		return 0, 0, false
	}
	x, y = pixelart.GridCoord((screenX-l.ox)/cellAspect, screenY-l.oy, l.scale)
	if x >= l.resolution || y >= l.resolution {
		return 0, 0, false
	}
	return x, y, true
}

// cellRect returns the screen rectangle covered by grid cell (x, y).
func (l layout) cellRect(x, y int) (sx, sy, w, h int) {
	return l.ox + x*l.scale*cellAspect, l.oy + y*l.scale, l.scale * cellAspect, l.scale
}
