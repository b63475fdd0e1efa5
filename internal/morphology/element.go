package morphology

import (
	"fmt"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// MaxRadius is the largest radius accepted by Square and Cross. Elements
// built with NewElement may be at most 2*MaxRadius+1 on a side.
const MaxRadius = 32

// Element is a structuring element: a small odd-sized boolean mask whose
// center pixel is the origin.
type Element struct {
	height int
	width  int
	mask   []bool
}

// offset is a cell of an element relative to its center.
type offset struct {
	dy, dx int
}

// NewElement creates an element from a row-major mask.
//
// Both dimensions must be odd so the element has a center (raster.ErrShape
// otherwise), at most 2*MaxRadius+1, and at least one cell must be set
// (raster.ErrInvalidParameter).
func NewElement(height, width int, mask []bool) (*Element, error) {
	if height <= 0 || width <= 0 || height%2 == 0 || width%2 == 0 {
		return nil, fmt.Errorf("%w: element %dx%d has no center; dimensions must be odd",
			raster.ErrShape, height, width)
	}
	if limit := 2*MaxRadius + 1; height > limit || width > limit {
		return nil, fmt.Errorf("%w: element %dx%d exceeds %dx%d",
			raster.ErrInvalidParameter, height, width, limit, limit)
	}
	if len(mask) != height*width {
		return nil, fmt.Errorf("%w: %d mask values for a %dx%d element",
			raster.ErrShape, len(mask), height, width)
	}
	e := &Element{height: height, width: width, mask: append([]bool(nil), mask...)}
	if len(e.offsets()) == 0 {
		return nil, fmt.Errorf("%w: element has no active cells", raster.ErrInvalidParameter)
	}
	return e, nil
}

// FromGrid creates an element from a single-channel binary grid, with
// foreground cells active.
func FromGrid(g *raster.Grid) (*Element, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", raster.ErrEmptyInput)
	}
	if g.Channels() != 1 {
		return nil, fmt.Errorf("%w: element grid needs 1 channel, got %d", raster.ErrShape, g.Channels())
	}
	if !g.IsBinary() {
		return nil, fmt.Errorf("%w: element grid is not binary", raster.ErrInvalidInput)
	}
	return NewElement(g.Height(), g.Width(), g.Mask())
}

// Square returns the full (2*radius+1) x (2*radius+1) element. Radius 1 gives
// the default 3x3 element.
func Square(radius int) (*Element, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	size := 2*radius + 1
	mask := make([]bool, size*size)
	for i := range mask {
		mask[i] = true
	}
	return NewElement(size, size, mask)
}

// Cross returns the plus-shaped element of the given radius: the center row
// and column of a (2*radius+1) square. Radius 1 is 4-connectivity.
func Cross(radius int) (*Element, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	size := 2*radius + 1
	mask := make([]bool, size*size)
	for i := 0; i < size; i++ {
		mask[radius*size+i] = true
		mask[i*size+radius] = true
	}
	return NewElement(size, size, mask)
}

func checkRadius(radius int) error {
	if radius < 0 || radius > MaxRadius {
		return fmt.Errorf("%w: radius %d is outside 0..%d", raster.ErrInvalidParameter, radius, MaxRadius)
	}
	return nil
}

// Height returns the number of rows in the element.
func (e *Element) Height() int { return e.height }

// Width returns the number of columns in the element.
func (e *Element) Width() int { return e.width }

// Active reports whether the cell at row y, column x is set.
func (e *Element) Active(y, x int) bool { return e.mask[y*e.width+x] }

func (e *Element) offsets() []offset {
	cy, cx := e.height/2, e.width/2
	var offs []offset
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			if e.mask[y*e.width+x] {
				offs = append(offs, offset{dy: y - cy, dx: x - cx})
			}
		}
	}
	return offs
}

// reach returns the largest vertical and horizontal distance of an active
// cell from the center.
func (e *Element) reach() (int, int) {
	var ry, rx int
	for _, o := range e.offsets() {
		ry = max(ry, abs(o.dy))
		rx = max(rx, abs(o.dx))
	}
	return ry, rx
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
