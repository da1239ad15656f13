package rle

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bodgit/pixelart/grid"
)

// Decode expands rec back into a grid. A malformed record is rejected
// wholesale; no partially decoded grid is ever returned.
func Decode(rec *Record) (*grid.Grid, error) {
	if rec.Format != FormatTag {
		return nil, ErrFormat
	}
	if rec.Width != rec.Height || !grid.ValidResolution(rec.Width) {
		return nil, ErrShape
	}
	if len(rec.Data)%2 != 0 {
		return nil, ErrData
	}

	palette := make([]grid.Cell, len(rec.Palette))
	for i, s := range rec.Palette {
		c, err := grid.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("rle: palette entry %d: %w", i, err)
		}
		palette[i] = c
	}

	g, err := grid.New(rec.Width)
	if err != nil {
		return nil, err
	}

	pos := 0
	for i := 0; i < len(rec.Data); i += 2 {
		v, n := rec.Data[i], rec.Data[i+1]
		if n < 1 {
			return nil, ErrRunCount
		}
		if v != TransparentIndex && (v < 0 || v >= len(palette)) {
			return nil, ErrPaletteIndex
		}
		if pos+n > len(g.Cells) {
			return nil, ErrRunSum
		}
		if v != TransparentIndex {
			c := palette[v]
			for j := 0; j < n; j++ {
				g.Cells[pos+j] = c
			}
		}
		pos += n
	}
	if pos != len(g.Cells) {
		return nil, ErrRunSum
	}

	return g, nil
}

// Read parses a JSON record from r and reconstructs the grid it
// describes.
func Read(r io.Reader) (*grid.Grid, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("rle: decoding record: %w", err)
	}
	return Decode(&rec)
}
