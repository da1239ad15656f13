package pixelart

// ViewportMargin is the fixed padding kept around the canvas when
// fitting it into a display area.
const ViewportMargin = 64

// ViewportScale returns the integer magnification that fits a grid of
// the given resolution into a width × height display area, never less
// than one so the canvas stays visible in cramped containers. The scale
// is purely presentational and never affects the grid.
func ViewportScale(width, height, resolution int) int {
	if resolution < 1 {
		return 1
	}
	side := width
	if height < side {
		side = height
	}
	scale := (side - ViewportMargin) / resolution
	if scale < 1 {
		return 1
	}
	return scale
}

// GridCoord translates a display-space coordinate into grid space by
// floor division with the viewport scale.
func GridCoord(displayX, displayY, scale int) (x, y int) {
	return displayX / scale, displayY / scale
}
