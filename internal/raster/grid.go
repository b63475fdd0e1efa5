package raster

import (
	"bytes"
	"fmt"
)

// MaxChannels is the largest channel count a Grid may carry.
const MaxChannels = 4

// MaxPixels is the largest height*width a Grid may have. Operations whose
// output would exceed it fail with ErrInvalidParameter instead of
// allocating.
const MaxPixels = 1 << 26

// Grid is an immutable 2D array of 8-bit values with an optional trailing
// channel axis.
//
// The zero value is not usable; construct grids with New, FromMask,
// FromImage or Generate.
type Grid struct {
	height   int
	width    int
	channels int
	pix      []uint8
}

// New creates a grid of the given shape from a copy of pix.
//
// Parameters:
//   - height, width: Dimensions in pixels. Both must be positive.
//   - channels: Values per pixel, 1 to MaxChannels.
//   - pix: Row-major interleaved values; len(pix) must equal
//     height*width*channels.
//
// Returns ErrEmptyInput for a zero dimension, ErrShape for negative
// dimensions, an unsupported channel count or a pixel slice of the wrong
// length, and ErrInvalidParameter for grids larger than MaxPixels.
func New(height, width, channels int, pix []uint8) (*Grid, error) {
	if err := checkShape(height, width, channels); err != nil {
		return nil, err
	}
	if len(pix) != height*width*channels {
		return nil, fmt.Errorf("%w: %d values for a %dx%dx%d grid",
			ErrShape, len(pix), height, width, channels)
	}
	cp := make([]uint8, len(pix))
	copy(cp, pix)
	return &Grid{height: height, width: width, channels: channels, pix: cp}, nil
}

// FromMask creates a single-channel binary grid from a boolean mask.
// True becomes 255 (foreground) and false becomes 0 (background).
func FromMask(height, width int, mask []bool) (*Grid, error) {
	if err := checkShape(height, width, 1); err != nil {
		return nil, err
	}
	if len(mask) != height*width {
		return nil, fmt.Errorf("%w: %d mask values for a %dx%d grid",
			ErrShape, len(mask), height, width)
	}
	pix := make([]uint8, len(mask))
	for i, on := range mask {
		if on {
			pix[i] = 255
		}
	}
	return &Grid{height: height, width: width, channels: 1, pix: pix}, nil
}

func checkShape(height, width, channels int) error {
	if height < 0 || width < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrShape, height, width)
	}
	if height == 0 || width == 0 {
		return fmt.Errorf("%w: %dx%d grid has no pixels", ErrEmptyInput, height, width)
	}
	if channels < 1 || channels > MaxChannels {
		return fmt.Errorf("%w: unsupported channel count %d", ErrShape, channels)
	}
	if !WithinBudget(height, width) {
		return fmt.Errorf("%w: %dx%d grid exceeds the %d pixel limit",
			ErrInvalidParameter, height, width, MaxPixels)
	}
	return nil
}

// WithinBudget reports whether a height x width grid fits in MaxPixels.
// Non-positive dimensions are within budget; checkShape rejects them
// separately.
func WithinBudget(height, width int) bool {
	if height <= 0 || width <= 0 {
		return true
	}
	return height <= MaxPixels/width
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Channels returns the number of values per pixel.
func (g *Grid) Channels() int { return g.channels }

// At returns channel c of the pixel at row y, column x.
// It panics if the coordinates are outside the grid.
func (g *Grid) At(y, x, c int) uint8 {
	return g.pix[(y*g.width+x)*g.channels+c]
}

// Pixels returns a copy of the row-major interleaved pixel values.
func (g *Grid) Pixels() []uint8 {
	cp := make([]uint8, len(g.pix))
	copy(cp, g.pix)
	return cp
}

// Mask returns channel 0 as a boolean mask, true wherever the value is
// non-zero.
func (g *Grid) Mask() []bool {
	mask := make([]bool, g.height*g.width)
	for i := range mask {
		mask[i] = g.pix[i*g.channels] != 0
	}
	return mask
}

// IsBinary reports whether every value in the grid is 0 or 255.
func (g *Grid) IsBinary() bool {
	for _, v := range g.pix {
		if v != 0 && v != 255 {
			return false
		}
	}
	return true
}

// Equal reports whether two grids have the same shape and values.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.height == other.height &&
		g.width == other.width &&
		g.channels == other.channels &&
		bytes.Equal(g.pix, other.pix)
}

// String returns a short description of the grid shape.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%dx%d)", g.height, g.width, g.channels)
}

// Crop extracts the width x height region whose top-left corner is (x, y).
//
// The region must lie entirely within the grid and have positive
// dimensions; otherwise Crop returns an error wrapping ErrOutOfBounds.
func (g *Grid) Crop(x, y, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: crop size %dx%d must be positive", ErrOutOfBounds, width, height)
	}
	if x < 0 || y < 0 || x+width > g.width || y+height > g.height {
		return nil, fmt.Errorf("%w: crop region (%d,%d) %dx%d outside %dx%d grid",
			ErrOutOfBounds, x, y, width, height, g.width, g.height)
	}
	c := g.channels
	return Generate(height, width, c, func(row int, dst []uint8) {
		start := ((y+row)*g.width + x) * c
		copy(dst, g.pix[start:start+width*c])
	})
}
