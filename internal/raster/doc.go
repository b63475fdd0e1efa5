// Package raster defines the Grid, the immutable pixel array shared by every
// operation in this module, together with the error kinds those operations
// report.
//
// # Layout
//
// A Grid has a height, a width and a channel count. Pixels are stored row
// major with channels interleaved, so the value of channel c at row y and
// column x lives at index (y*width+x)*channels+c. Coordinates are 0-based with
// (0,0) at the top-left corner, X increasing rightward and Y downward.
//
// # Immutability
//
// Grids are never modified after construction. Every operation returns a new
// Grid; it is safe to share a Grid between goroutines. Operations build their
// output with Generate, which hands out row slices of a fresh buffer and
// freezes it on return.
//
// # Binary Grids
//
// Binary grids hold only the values 0 (background) and 255 (foreground).
// FromMask converts a boolean mask to this form and Mask converts back.
//
// # Errors
//
// Operations fail fast and wrap one of the sentinel errors (ErrShape,
// ErrEmptyInput, ErrInvalidParameter, ErrInvalidInput, ErrOutOfBounds) so
// callers can classify failures with errors.Is.
package raster
