package quant

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/pixelart/export"
	"github.com/bodgit/pixelart/grid"
)

// squareOnBackground paints a centered subject square over a uniform
// background, mimicking the kind of image the upstream generator
// produces.
func squareOnBackground(side int, background, subject color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			m.SetNRGBA(x, y, background)
		}
	}
	for y := side / 4; y < 3*side/4; y++ {
		for x := side / 4; x < 3*side/4; x++ {
			m.SetNRGBA(x, y, subject)
		}
	}
	return m
}

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
)

func TestQuantizeRemovesBackground(t *testing.T) {
	m := squareOnBackground(128, white, red)

	g, err := Quantize(m, 32, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 32, g.Resolution)
	require.Len(t, g.Cells, 32*32)

	// Background corners go transparent, the subject interior stays.
	for _, p := range [][2]int{{0, 0}, {31, 0}, {0, 31}, {31, 31}, {2, 2}} {
		assert.Equal(t, grid.Transparent, g.At(p[0], p[1]), "(%d,%d)", p[0], p[1])
	}
	center := g.At(16, 16)
	assert.True(t, center.Opaque)
	assert.Greater(t, center.R, uint8(0xc0))
	assert.Less(t, center.G, uint8(0x40))
}

func TestQuantizeIsDeterministic(t *testing.T) {
	m := squareOnBackground(100, white, red)

	a, err := Quantize(m, 32, DefaultOptions())
	require.NoError(t, err)
	b, err := Quantize(m, 32, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestQuantizeAlphaCutoff(t *testing.T) {
	// A fully transparent subject is discarded even though its color is
	// nothing like the background.
	m := squareOnBackground(128, color.NRGBA{R: 0x20, G: 0x20, B: 0xff, A: 0xff}, color.NRGBA{R: 0xff})

	g, err := Quantize(m, 32, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, grid.Transparent, g.At(16, 16))
}

func TestQuantizeBadResolution(t *testing.T) {
	m := squareOnBackground(64, white, red)

	_, err := Quantize(m, 48, DefaultOptions())
	assert.ErrorIs(t, err, ErrResolution)
}

func TestQuantizeDominantBackground(t *testing.T) {
	// The subject touches the top-left corner, the documented failure
	// mode of the default reference. The dominant mode resolves it.
	side := 64
	m := image.NewNRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			m.SetNRGBA(x, y, white)
		}
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			m.SetNRGBA(x, y, red)
		}
	}

	opt := DefaultOptions()
	opt.Background = BackgroundDominant

	g, err := Quantize(m, 32, opt)
	require.NoError(t, err)

	// The red corner survives and the white background is removed.
	assert.True(t, g.At(2, 2).Opaque)
	assert.Equal(t, grid.Transparent, g.At(31, 31))

	// The default reference erases the corner instead; that documented
	// approximation is the price of the heuristic.
	g, err = Quantize(m, 32, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, grid.Transparent, g.At(2, 2))
}

func TestQuantizeExportFixedPoint(t *testing.T) {
	// Re-quantizing the renderer's own 1:1 export must preserve the
	// opaque/transparent classification of interior cells.
	m := squareOnBackground(128, white, red)

	g, err := Quantize(m, 32, DefaultOptions())
	require.NoError(t, err)

	rendered, err := export.Render(g, 1)
	require.NoError(t, err)

	again, err := Quantize(rendered, 32, DefaultOptions())
	require.NoError(t, err)

	interior := func(v int) bool {
		// Cells well away from the subject boundary at 8 and 23;
		// boundary cells may pick up antialiasing noise.
		return v <= 5 || (v >= 12 && v <= 19) || v >= 26
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if !interior(x) || !interior(y) {
				continue
			}
			assert.Equal(t, g.At(x, y).Opaque, again.At(x, y).Opaque, "(%d,%d)", x, y)
		}
	}
}

func TestDecode(t *testing.T) {
	m := squareOnBackground(64, white, red)
	var b bytes.Buffer
	require.NoError(t, export.Encode(&b, mustQuantize(t, m), 1))

	g, err := Decode(&b, 32, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 32, g.Resolution)

	_, err = Decode(bytes.NewReader([]byte("not an image")), 32, DefaultOptions())
	assert.Error(t, err)
}

func mustQuantize(t *testing.T, m image.Image) *grid.Grid {
	t.Helper()
	g, err := Quantize(m, 32, DefaultOptions())
	require.NoError(t, err)
	return g
}
