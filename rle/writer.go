package rle

import (
	"encoding/json"
	"io"

	"github.com/bodgit/pixelart/grid"
)

// Encode compresses g into a record. The palette is the grid's own
// palette so output is reproducible for identical grids.
func Encode(g *grid.Grid) *Record {
	palette := g.Palette()
	index := make(map[grid.Cell]int, len(palette))
	for i, c := range palette {
		index[c] = i
	}

	rec := &Record{
		Format:  FormatTag,
		Width:   g.Resolution,
		Height:  g.Resolution,
		Palette: make([]string, len(palette)),
		Data:    make([]int, 0, 2*len(g.Cells)),
	}
	for i, c := range palette {
		rec.Palette[i] = c.Hex()
	}

	prev, run := 0, 0
	for i, c := range g.Cells {
		v := TransparentIndex
		if c.Opaque {
			v = index[c]
		}
		switch {
		case i == 0:
			prev, run = v, 1
		case v == prev:
			run++
		default:
			rec.Data = append(rec.Data, prev, run)
			prev, run = v, 1
		}
	}
	if run > 0 {
		rec.Data = append(rec.Data, prev, run)
	}

	return rec
}

// Write encodes g and writes it to w as a JSON record.
func Write(w io.Writer, g *grid.Grid) error {
	return json.NewEncoder(w).Encode(Encode(g))
}
