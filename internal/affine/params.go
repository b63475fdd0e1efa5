package affine

import (
	"fmt"
	"math"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Order selects the interpolation used when sampling the source grid.
type Order int

const (
	// Nearest samples the closest source pixel.
	Nearest Order = 0
	// Bilinear blends the four surrounding source pixels.
	Bilinear Order = 1
)

// String returns the interpolation name.
func (o Order) String() string {
	switch o {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// SizePolicy selects the dimensions of the output canvas.
type SizePolicy int

const (
	// FixedSize keeps the input dimensions; content outside is clipped.
	FixedSize SizePolicy = iota
	// ExpandToFit sizes the canvas to the transformed bounding box.
	ExpandToFit
)

// Params describes one affine transform.
type Params struct {
	// Angle is the rotation in degrees, counter-clockwise as displayed.
	Angle float64
	// ShiftX and ShiftY translate the result, in output pixels.
	ShiftX float64
	ShiftY float64
	// Scale is the uniform scale factor. Must be > 0.
	Scale float64
	// Order is the interpolation order.
	Order Order
	// Fill is written wherever the source has no data.
	Fill uint8
	// Size is the output canvas policy.
	Size SizePolicy
}

// DefaultParams returns the identity transform: no rotation or shift, unit
// scale, nearest sampling, zero fill and a fixed-size canvas.
func DefaultParams() Params {
	return Params{Scale: 1}
}

// Validate checks that every numeric parameter is usable.
func (p Params) Validate() error {
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: scale must be a positive finite number, got %v", raster.ErrInvalidParameter, p.Scale)
	}
	for name, v := range map[string]float64{"angle": p.Angle, "shift x": p.ShiftX, "shift y": p.ShiftY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", raster.ErrInvalidParameter, name, v)
		}
	}
	if p.Order != Nearest && p.Order != Bilinear {
		return fmt.Errorf("%w: unsupported interpolation order %d", raster.ErrInvalidParameter, int(p.Order))
	}
	if p.Size != FixedSize && p.Size != ExpandToFit {
		return fmt.Errorf("%w: unsupported size policy %d", raster.ErrInvalidParameter, int(p.Size))
	}
	return nil
}

// translationOnly reports whether p moves pixels by whole-pixel offsets only.
func (p Params) translationOnly() bool {
	return normalizeAngle(p.Angle) == 0 && p.Scale == 1 &&
		p.ShiftX == math.Trunc(p.ShiftX) && p.ShiftY == math.Trunc(p.ShiftY)
}

// normalizeAngle maps an angle in degrees into [0, 360).
func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// sinCos returns the sine and cosine of an angle in degrees, exact for
// multiples of 90.
func sinCos(deg float64) (sin, cos float64) {
	switch a := normalizeAngle(deg); a {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	default:
		return math.Sincos(a * math.Pi / 180)
	}
}
