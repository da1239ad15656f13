package pixelart

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/pixelart/grid"
	"github.com/bodgit/pixelart/quant"
)

func testImage() image.Image {
	m := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			m.Set(x, y, grid.RGB(0xff, 0xff, 0xff).NRGBA())
		}
	}
	for y := 16; y < 48; y++ {
		for x := 16; x < 48; x++ {
			m.Set(x, y, grid.RGB(0xff, 0, 0).NRGBA())
		}
	}
	return m
}

func TestGeneratorDelivers(t *testing.T) {
	var gen Generator

	res, ok := <-gen.Start(context.Background(), testImage(), 32, quant.DefaultOptions())
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, 32, res.Grid.Resolution)
}

func TestGeneratorDeliversError(t *testing.T) {
	var gen Generator

	res, ok := <-gen.Start(context.Background(), testImage(), 48, quant.DefaultOptions())
	require.True(t, ok)
	assert.ErrorIs(t, res.Err, quant.ErrResolution)
	assert.Nil(t, res.Grid)
}

func TestGeneratorLastWriterWins(t *testing.T) {
	release := make(chan struct{})

	var gen Generator
	gen.quantize = func(m image.Image, resolution int, opt quant.Options) (*grid.Grid, error) {
		<-release
		return grid.New(resolution)
	}

	// The first request is still in flight when the second one starts,
	// so its result must be dropped on arrival.
	first := gen.Start(context.Background(), testImage(), 32, quant.DefaultOptions())
	second := gen.Start(context.Background(), testImage(), 64, quant.DefaultOptions())
	close(release)

	res, ok := <-first
	assert.False(t, ok, "stale result delivered: %+v", res)

	res, ok = <-second
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, 64, res.Grid.Resolution)
}

func TestGeneratorCancelled(t *testing.T) {
	release := make(chan struct{})

	var gen Generator
	gen.quantize = func(m image.Image, resolution int, opt quant.Options) (*grid.Grid, error) {
		<-release
		return grid.New(resolution)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := gen.Start(ctx, testImage(), 32, quant.DefaultOptions())
	cancel()
	close(release)

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("generator did not finish")
	}
}
