package raster

import "fmt"

// Luminance weights in units of 1/10000 (0.2989, 0.5870, 0.1140).
const (
	weightR   = 2989
	weightG   = 5870
	weightB   = 1140
	weightSum = weightR + weightG + weightB
)

// Luma returns the intensity of one RGB pixel.
//
// The weights 0.2989, 0.5870 and 0.1140 are applied in fixed point and the
// sum is divided by the total weight (9999) rather than by 10000, then
// truncated. A neutral pixel (R=G=B=v) therefore maps to exactly v, where the
// literal weights would give v-1. The price is that about 1% of colors come
// out one level brighter than the truncated literal formula: (0, 30, 249)
// gives 46 instead of 45.
func Luma(r, g, b uint8) uint8 {
	sum := weightR*int(r) + weightG*int(g) + weightB*int(b)
	return uint8(clamp(sum/weightSum, 0, 255))
}

// ToGray reduces a 3-channel RGB grid to a single-channel intensity grid.
//
// Returns an error wrapping ErrShape if rgb does not have exactly three
// channels.
func ToGray(rgb *Grid) (*Grid, error) {
	if rgb == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrEmptyInput)
	}
	if rgb.channels != 3 {
		return nil, fmt.Errorf("%w: luminance needs 3 channels, got %d", ErrShape, rgb.channels)
	}
	return Generate(rgb.height, rgb.width, 1, func(y int, row []uint8) {
		src := rgb.pix[y*rgb.width*3:]
		for x := range row {
			i := x * 3
			row[x] = Luma(src[i], src[i+1], src[i+2])
		}
	})
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
