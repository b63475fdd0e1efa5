package threshold

import (
	"fmt"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Levels is the number of intensity levels in a histogram.
const Levels = 256

// Global is the result of Otsu thresholding.
type Global struct {
	// Level is the selected cut t*. Pixels with intensity > Level are
	// foreground.
	Level uint8 `json:"level"`

	// Binary is the binarized grid with values {0, 255}.
	Binary *raster.Grid `json:"-"`
}

// Cut returns the decision boundary between the two classes, Level+0.5.
// It lies strictly between the brightest background level and the darkest
// foreground level.
func (g *Global) Cut() float64 {
	return float64(g.Level) + 0.5
}

// Histogram counts how many pixels of a single-channel grid have each
// intensity level.
func Histogram(g *raster.Grid) ([Levels]int, error) {
	var hist [Levels]int
	if err := checkIntensity(g); err != nil {
		return hist, err
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			hist[g.At(y, x, 0)]++
		}
	}
	return hist, nil
}

// OtsuLevel computes the Otsu cut level of a single-channel grid.
//
// For every candidate t in [0, 255) the inter-class variance
// w0(t)*w1(t)*(mu0(t)-mu1(t))^2 is evaluated, where class 0 holds the levels
// <= t. The t with the largest variance wins; ties go to the smallest t.
// A constant grid yields its single value as the level.
func OtsuLevel(g *raster.Grid) (uint8, error) {
	hist, err := Histogram(g)
	if err != nil {
		return 0, err
	}
	return LevelFromHistogram(hist)
}

// LevelFromHistogram runs the Otsu selection on a precomputed histogram.
//
// Returns an error wrapping raster.ErrEmptyInput if the histogram is empty.
func LevelFromHistogram(hist [Levels]int) (uint8, error) {
	var total, weighted int
	lo, hi := -1, -1
	for level, n := range hist {
		if n < 0 {
			return 0, fmt.Errorf("%w: negative count at level %d", raster.ErrInvalidInput, level)
		}
		if n == 0 {
			continue
		}
		if lo < 0 {
			lo = level
		}
		hi = level
		total += n
		weighted += level * n
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: histogram has no pixels", raster.ErrEmptyInput)
	}
	if lo == hi {
		return uint8(lo), nil
	}

	var (
		best      uint8
		bestScore = -1.0
		n0, sum0  int
	)
	for t := 0; t < Levels-1; t++ {
		n0 += hist[t]
		sum0 += t * hist[t]
		n1 := total - n0
		if n0 == 0 || n1 == 0 {
			continue
		}

		w0 := float64(n0) / float64(total)
		w1 := float64(n1) / float64(total)
		mu0 := float64(sum0) / float64(n0)
		mu1 := float64(weighted-sum0) / float64(n1)
		score := w0 * w1 * (mu0 - mu1) * (mu0 - mu1)
		if score > bestScore {
			bestScore = score
			best = uint8(t)
		}
	}
	return best, nil
}

// Otsu binarizes a single-channel grid with its Otsu level.
func Otsu(g *raster.Grid) (*Global, error) {
	level, err := OtsuLevel(g)
	if err != nil {
		return nil, err
	}
	bin, err := Apply(g, level)
	if err != nil {
		return nil, err
	}
	return &Global{Level: level, Binary: bin}, nil
}

// Apply binarizes a single-channel grid against a fixed level: 255 where the
// intensity is greater than level, 0 elsewhere.
func Apply(g *raster.Grid, level uint8) (*raster.Grid, error) {
	if err := checkIntensity(g); err != nil {
		return nil, err
	}
	return raster.Generate(g.Height(), g.Width(), 1, func(y int, row []uint8) {
		for x := range row {
			if g.At(y, x, 0) > level {
				row[x] = 255
			}
		}
	})
}

// checkIntensity rejects grids that are not single-channel intensity grids.
func checkIntensity(g *raster.Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", raster.ErrEmptyInput)
	}
	if g.Channels() != 1 {
		return fmt.Errorf("%w: thresholding needs 1 channel, got %d", raster.ErrShape, g.Channels())
	}
	return nil
}
