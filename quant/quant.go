/*
Package quant converts an arbitrary raster image into a fixed-resolution
pixel-art grid.

The source bitmap is resampled to the target resolution with a
Catmull-Rom kernel and every resulting pixel is classified against a
background reference color: anything within a small RGB distance of the
reference, or whose source alpha falls below a cutoff, becomes
transparent. The reference is normally the top-left pixel of the
resampled image which assumes the source has a uniform background; if
the subject itself reaches the top-left corner that region is
misclassified as background. This is an accepted limitation of the
heuristic rather than a bug; the dominant-color background mode exists
as an alternative for exactly that case.
*/
package quant

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/bodgit/pixelart/grid"
)

// ErrResolution is returned when the target resolution is not a
// supported grid side length.
var ErrResolution = errors.New("quant: unsupported resolution")

// BackgroundMode selects how the background reference color is chosen.
type BackgroundMode int

const (
	// BackgroundTopLeft reads the top-left pixel of the resampled
	// image, assuming the source places the subject on a uniform
	// background.
	BackgroundTopLeft BackgroundMode = iota
	// BackgroundDominant uses the dominant color of the source image
	// instead, for sources whose subject touches the top-left corner.
	BackgroundDominant
)

func (m BackgroundMode) String() string {
	switch m {
	case BackgroundDominant:
		return "dominant"
	default:
		return "topleft"
	}
}

// Options are the classification tuning knobs. The defaults were chosen
// empirically; neither threshold is a correctness requirement.
type Options struct {
	// DistanceThreshold is the RGB Euclidean distance below which a
	// pixel counts as background, on a 0..441.67 scale where 441.67 is
	// the distance between black and white.
	DistanceThreshold float64
	// AlphaCutoff is the source alpha (0..255) below which a pixel is
	// discarded regardless of its color.
	AlphaCutoff uint8
	// Background selects the reference color strategy.
	Background BackgroundMode
}

// DefaultOptions returns the reference tuning.
func DefaultOptions() Options {
	return Options{
		DistanceThreshold: 60,
		AlphaCutoff:       50,
		Background:        BackgroundTopLeft,
	}
}

// Quantize resamples m down to resolution × resolution and classifies
// every pixel as either an opaque color or transparent background. The
// result is a deterministic pure function of m and opt.
func Quantize(m image.Image, resolution int, opt Options) (*grid.Grid, error) {
	if !grid.ValidResolution(resolution) {
		return nil, ErrResolution
	}

	// Nearest-neighbour downsampling aliases fine detail so the source
	// is smoothed with a Catmull-Rom kernel before any pixel is read.
	dst := image.NewNRGBA(image.Rect(0, 0, resolution, resolution))
	draw.CatmullRom.Scale(dst, dst.Rect, m, m.Bounds(), draw.Src, nil)

	ref := reference(m, dst, opt.Background)

	g, err := grid.New(resolution)
	if err != nil {
		return nil, err
	}

	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			px := dst.NRGBAAt(x, y)
			if px.A < opt.AlphaCutoff {
				continue
			}
			c := grid.RGB(px.R, px.G, px.B)
			if c.Colorful().DistanceRgb(ref)*255 < opt.DistanceThreshold {
				continue
			}
			g.Set(x, y, c)
		}
	}

	return g, nil
}

// Decode reads, decodes and quantizes a bitmap in one step. Callers are
// expected to register the image formats they accept via blank imports.
func Decode(r io.Reader, resolution int, opt Options) (*grid.Grid, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("quant: decoding bitmap: %w", err)
	}
	return Quantize(m, resolution, opt)
}

func reference(src image.Image, dst *image.NRGBA, mode BackgroundMode) colorful.Color {
	switch mode {
	case BackgroundDominant:
		c := dominantcolor.Find(src)
		return colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}
	default:
		c := dst.NRGBAAt(0, 0)
		return grid.RGB(c.R, c.G, c.B).Colorful()
	}
}
