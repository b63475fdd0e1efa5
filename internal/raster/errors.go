package raster

import "errors"

// Error kinds reported by grid operations. Operations wrap these with
// details, so test for them with errors.Is.
var (
	// ErrShape reports a dimension or channel-count mismatch.
	ErrShape = errors.New("shape error")

	// ErrEmptyInput reports a grid with no pixels.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidParameter reports an out-of-range numeric parameter.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInput reports data a binary-only operation cannot accept.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfBounds reports a region that exceeds the source dimensions.
	ErrOutOfBounds = errors.New("out of bounds")
)
