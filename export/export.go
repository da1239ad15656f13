/*
Package export rasterizes a pixel-art grid into a magnified bitmap.

Every opaque cell becomes a scale × scale block of solid color while
transparent cells are left unpainted, so the output keeps true
transparency. The checkerboard backdrop shown while editing is an
on-screen aid only and is never baked into an export.
*/
package export

import (
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/bodgit/pixelart/grid"
)

// DefaultScale is the reference export magnification.
const DefaultScale = 10

// ErrScale is returned when the requested magnification is below one.
var ErrScale = errors.New("export: scale must be at least 1")

// Render returns g magnified by scale as an alpha-capable bitmap of
// Resolution*scale pixels per side. Blocks are pixel-aligned with no
// interpolation.
func Render(g *grid.Grid, scale int) (*image.NRGBA, error) {
	if scale < 1 {
		return nil, ErrScale
	}

	side := g.Resolution * scale
	m := image.NewNRGBA(image.Rect(0, 0, side, side))

	for y := 0; y < g.Resolution; y++ {
		for x := 0; x < g.Resolution; x++ {
			c := g.At(x, y)
			if !c.Opaque {
				continue
			}
			px := c.NRGBA()
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					m.SetNRGBA(x*scale+dx, y*scale+dy, px)
				}
			}
		}
	}

	return m, nil
}

// Encode renders g at the given scale and writes it to w as PNG.
func Encode(w io.Writer, g *grid.Grid, scale int) error {
	m, err := Render(g, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}
