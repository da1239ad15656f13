package pixelart

import (
	"context"
	"image"
	"sync"

	"github.com/bodgit/pixelart/grid"
	"github.com/bodgit/pixelart/quant"
)

// Result is the outcome of one generation request.
type Result struct {
	Grid *grid.Grid
	Err  error
}

// Generator runs quantization off the event loop. Only the most recent
// request may deliver: a result arriving after a newer Start call is
// dropped, so a slow generation can never clobber a fresher canvas.
type Generator struct {
	mu  sync.Mutex
	seq int

	// quantize is swappable for tests.
	quantize func(image.Image, int, quant.Options) (*grid.Grid, error)
}

// Start quantizes m asynchronously. The returned channel receives
// exactly one Result and is then closed, unless the request is
// superseded by a later Start or ctx is cancelled first, in which case
// the channel is closed without a value.
func (gen *Generator) Start(ctx context.Context, m image.Image, resolution int, opt quant.Options) <-chan Result {
	gen.mu.Lock()
	gen.seq++
	seq := gen.seq
	q := gen.quantize
	gen.mu.Unlock()

	if q == nil {
		q = quant.Quantize
	}

	out := make(chan Result, 1)
	go func() {
		defer close(out)

		g, err := q(m, resolution, opt)

		gen.mu.Lock()
		stale := seq != gen.seq
		gen.mu.Unlock()

		if stale || ctx.Err() != nil {
			return
		}
		out <- Result{Grid: g, Err: err}
	}()

	return out
}
