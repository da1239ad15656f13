package export

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/pixelart/grid"
)

func TestRender(t *testing.T) {
	g, err := grid.New(32)
	require.NoError(t, err)
	g.Set(1, 0, grid.RGB(0xff, 0, 0))

	m, err := Render(g, 3)
	require.NoError(t, err)

	assert.Equal(t, 96, m.Bounds().Dx())
	assert.Equal(t, 96, m.Bounds().Dy())

	// The opaque cell fills its whole block, no interpolation.
	for y := 0; y < 3; y++ {
		for x := 3; x < 6; x++ {
			assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, m.NRGBAAt(x, y), "(%d,%d)", x, y)
		}
	}

	// Transparent cells stay fully transparent; no checkerboard is
	// baked in.
	assert.Equal(t, color.NRGBA{}, m.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, m.NRGBAAt(6, 0))
	assert.Equal(t, color.NRGBA{}, m.NRGBAAt(95, 95))
}

func TestRenderBadScale(t *testing.T) {
	g, err := grid.New(32)
	require.NoError(t, err)

	_, err = Render(g, 0)
	assert.ErrorIs(t, err, ErrScale)
	_, err = Render(g, -3)
	assert.ErrorIs(t, err, ErrScale)
}

func TestEncode(t *testing.T) {
	g, err := grid.New(32)
	require.NoError(t, err)
	g.Set(0, 0, grid.RGB(0, 0xff, 0))

	var b bytes.Buffer
	require.NoError(t, Encode(&b, g, DefaultScale))

	m, err := png.Decode(&b)
	require.NoError(t, err)

	assert.Equal(t, 320, m.Bounds().Dx())
	assert.Equal(t, 320, m.Bounds().Dy())

	r, gr, bl, a := m.At(5, 5).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), gr)
	assert.Equal(t, uint32(0), bl)
	assert.Equal(t, uint32(0xffff), a)

	// An untouched cell decodes with zero alpha.
	_, _, _, a = m.At(319, 319).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestEncodeBadScale(t *testing.T) {
	g, err := grid.New(32)
	require.NoError(t, err)

	var b bytes.Buffer
	assert.ErrorIs(t, Encode(&b, g, 0), ErrScale)
}
