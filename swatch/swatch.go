/*
Package swatch extracts a small set of representative colors from an
image or grid for the editor's color picker.

Swatches are suggestions only. The canvas keeps whatever colors the
quantizer produced; it is never reduced to the swatch set.
*/
package swatch

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/bodgit/pixelart/export"
	"github.com/bodgit/pixelart/grid"
)

// kmeansMaxSamples bounds the number of pixels fed to the clusterer so
// large sources stay tractable.
const kmeansMaxSamples = 4096

// Method selects the color extraction strategy.
type Method int

const (
	// MethodMedianCut derives swatches with a median-cut quantizer.
	MethodMedianCut Method = iota
	// MethodKMeans derives swatches by k-means clustering of a pixel
	// sample. Falls back to median-cut when clustering fails.
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "mediancut"
	}
}

// FromImage returns up to k swatch colors extracted from m.
func FromImage(m image.Image, k int, method Method) []grid.Cell {
	if k < 1 {
		return nil
	}
	switch method {
	case MethodKMeans:
		return kmeansSwatches(m, k)
	default:
		return medianCutSwatches(m, k)
	}
}

// FromGrid returns up to k swatch colors for a canvas. A palette that
// already fits is returned as-is, in first-occurrence order.
func FromGrid(g *grid.Grid, k int, method Method) []grid.Cell {
	if k < 1 {
		return nil
	}
	p := g.Palette()
	if len(p) <= k {
		return p
	}
	m, err := export.Render(g, 1)
	if err != nil {
		return p[:k]
	}
	return FromImage(m, k, method)
}

func medianCutSwatches(m image.Image, k int) []grid.Cell {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, k), m)

	out := make([]grid.Cell, 0, len(p))
	for _, c := range p {
		r, g, b, a := c.RGBA()
		if a == 0 {
			continue
		}
		out = append(out, grid.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
	}
	return dedupe(out)
}

func kmeansSwatches(m image.Image, k int) []grid.Cell {
	b := m.Bounds()

	// Subsample to keep clustering tractable on large images.
	step := 1
	for (b.Dx()/step+1)*(b.Dy()/step+1) > kmeansMaxSamples {
		step++
	}

	var obs clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bb, a := m.At(x, y).RGBA()
			if a < 1<<15 {
				continue
			}
			obs = append(obs, clusters.Coordinates{
				float64(r>>8) / 255,
				float64(g>>8) / 255,
				float64(bb>>8) / 255,
			})
		}
	}
	if len(obs) == 0 {
		return nil
	}
	if k > len(obs) {
		k = len(obs)
	}

	km := kmeans.New()
	cs, err := km.Partition(obs, k)
	if err != nil {
		return medianCutSwatches(m, k)
	}

	out := make([]grid.Cell, 0, len(cs))
	for _, c := range cs {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, grid.RGB(
			round255(c.Center[0]),
			round255(c.Center[1]),
			round255(c.Center[2]),
		))
	}
	if len(out) == 0 {
		return medianCutSwatches(m, k)
	}
	return dedupe(out)
}

func round255(f float64) uint8 {
	v := f*255 + 0.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func dedupe(in []grid.Cell) []grid.Cell {
	seen := make(map[grid.Cell]struct{}, len(in))
	out := in[:0]
	for _, c := range in {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
