/*
Package rle implements the pixel-art grid exchange format.

A grid is stored as its palette of unique opaque colors in
first-occurrence order plus a run-length encoded stream of palette
indices. The stream is a flat sequence of (value, count) pairs where
value is a 0-based palette index or -1 for a transparent run; a run of
length one is still a pair. The counts of a valid record always sum to
width × height, and decoding reconstructs the original grid exactly.
*/
package rle

import "errors"

// FormatTag identifies the exchange format and is carried by every
// record so a decoder never has to guess the layout.
const FormatTag = "RLE (Value, Count)"

// TransparentIndex is the reserved run value for transparent cells.
const TransparentIndex = -1

var (
	// ErrFormat is returned when the format tag is not recognized.
	ErrFormat = errors.New("rle: unrecognized format tag")
	// ErrShape is returned when the record is not square or its side
	// length is not a supported resolution.
	ErrShape = errors.New("rle: unsupported grid shape")
	// ErrData is returned when the run stream has an odd length.
	ErrData = errors.New("rle: run stream length is not a multiple of two")
	// ErrRunCount is returned when a run count is less than one.
	ErrRunCount = errors.New("rle: run count must be positive")
	// ErrPaletteIndex is returned when a run value is outside the
	// palette and is not the transparent marker.
	ErrPaletteIndex = errors.New("rle: palette index out of range")
	// ErrRunSum is returned when the run counts do not sum to
	// width × height.
	ErrRunSum = errors.New("rle: run counts do not sum to width*height")
)

// Record is the JSON form of an encoded grid.
type Record struct {
	Format  string   `json:"format"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Palette []string `json:"palette"`
	Data    []int    `json:"data"`
}
