package threshold

import (
	"fmt"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// MinBlockSize is the smallest accepted local window.
const MinBlockSize = 3

// DefaultBlockSize is the local window used when the caller does not pick one.
const DefaultBlockSize = 35

// maxPaddedPixels bounds the reflect-padded summed-area table.
const maxPaddedPixels = 4 * raster.MaxPixels

// MaxBlockSize returns the largest window accepted for a height x width
// grid: one that reaches every pixel from every other pixel. It is odd, so
// an even request at or below it never needs to grow past it.
func MaxBlockSize(height, width int) int {
	return 2*max(height, width) + 1
}

// BlockSizeFor returns requested, or DefaultBlockSize capped to
// MaxBlockSize when requested is zero.
func BlockSizeFor(requested, height, width int) int {
	if requested != 0 {
		return requested
	}
	return min(DefaultBlockSize, MaxBlockSize(height, width))
}

// Surface is a per-pixel cut surface produced by local thresholding.
// It has the same height and width as the grid it was computed from.
type Surface struct {
	// BlockSize is the window size actually used (always odd).
	BlockSize int

	// Requested is the block size the caller asked for.
	Requested int

	// Adjusted is true when Requested was even and BlockSize = Requested+1.
	Adjusted bool

	// Offset is the bias subtracted from every local mean.
	Offset float64

	height int
	width  int
	cut    []float64
}

// Height returns the number of rows in the surface.
func (s *Surface) Height() int { return s.height }

// Width returns the number of columns in the surface.
func (s *Surface) Width() int { return s.width }

// At returns the cut value at row y, column x.
func (s *Surface) At(y, x int) float64 { return s.cut[y*s.width+x] }

// Warning describes the block size adjustment, or returns "" if none was made.
func (s *Surface) Warning() string {
	if !s.Adjusted {
		return ""
	}
	return fmt.Sprintf("block size %d is even; using %d", s.Requested, s.BlockSize)
}

// Apply binarizes g against the surface: 255 where the intensity is greater
// than the cut at that pixel, 0 elsewhere. g must have the surface's shape.
func (s *Surface) Apply(g *raster.Grid) (*raster.Grid, error) {
	if err := checkIntensity(g); err != nil {
		return nil, err
	}
	if g.Height() != s.height || g.Width() != s.width {
		return nil, fmt.Errorf("%w: %dx%d grid against %dx%d surface",
			raster.ErrShape, g.Height(), g.Width(), s.height, s.width)
	}
	return raster.Generate(s.height, s.width, 1, func(y int, row []uint8) {
		cuts := s.cut[y*s.width : (y+1)*s.width]
		for x := range row {
			if float64(g.At(y, x, 0)) > cuts[x] {
				row[x] = 255
			}
		}
	})
}

// LocalResult is the outcome of adaptive thresholding.
type LocalResult struct {
	// Binary is the binarized grid with values {0, 255}.
	Binary *raster.Grid

	// BlockSize is the window size actually used.
	BlockSize int

	// Adjusted is true when the requested block size was raised to odd.
	Adjusted bool

	warning string
}

// Warning describes the block size adjustment, or returns "" if none was made.
func (r *LocalResult) Warning() string { return r.warning }

// LocalSurface computes the cut surface mean(window) - offset for every pixel
// of a single-channel grid.
//
// Parameters:
//   - g: Single-channel intensity grid.
//   - blockSize: Window side length, from 3 to MaxBlockSize. An even value is
//     raised to the next odd value and flagged on the returned surface.
//   - offset: Bias subtracted from each local mean. Positive values make the
//     foreground stricter.
//
// Returns an error wrapping raster.ErrInvalidParameter if blockSize is out of
// range or the padded grid would be too large, and raster.ErrShape if g is
// not single-channel.
func LocalSurface(g *raster.Grid, blockSize int, offset float64) (*Surface, error) {
	if err := checkIntensity(g); err != nil {
		return nil, err
	}
	if blockSize < MinBlockSize {
		return nil, fmt.Errorf("%w: block size %d is below %d",
			raster.ErrInvalidParameter, blockSize, MinBlockSize)
	}
	if limit := MaxBlockSize(g.Height(), g.Width()); blockSize > limit {
		return nil, fmt.Errorf("%w: block size %d exceeds %d for a %dx%d grid",
			raster.ErrInvalidParameter, blockSize, limit, g.Height(), g.Width())
	}
	if r := blockSize / 2; (g.Height()+2*r)*(g.Width()+2*r) > maxPaddedPixels {
		return nil, fmt.Errorf("%w: block size %d pads a %dx%d grid past %d pixels",
			raster.ErrInvalidParameter, blockSize, g.Height(), g.Width(), maxPaddedPixels)
	}

	s := &Surface{
		BlockSize: blockSize,
		Requested: blockSize,
		Offset:    offset,
		height:    g.Height(),
		width:     g.Width(),
	}
	if blockSize%2 == 0 {
		s.BlockSize++
		s.Adjusted = true
	}

	integ, stride := paddedIntegral(g, s.BlockSize/2)
	area := float64(s.BlockSize * s.BlockSize)
	b := s.BlockSize
	s.cut = make([]float64, s.height*s.width)
	raster.ForEachBand(s.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			top := integ[y*stride:]
			bottom := integ[(y+b)*stride:]
			for x := 0; x < s.width; x++ {
				sum := bottom[x+b] - top[x+b] - bottom[x] + top[x]
				s.cut[y*s.width+x] = float64(sum)/area - offset
			}
		}
	})
	return s, nil
}

// Local binarizes a single-channel grid with a local mean threshold.
// See LocalSurface for the parameters and errors.
func Local(g *raster.Grid, blockSize int, offset float64) (*LocalResult, error) {
	s, err := LocalSurface(g, blockSize, offset)
	if err != nil {
		return nil, err
	}
	bin, err := s.Apply(g)
	if err != nil {
		return nil, err
	}
	return &LocalResult{
		Binary:    bin,
		BlockSize: s.BlockSize,
		Adjusted:  s.Adjusted,
		warning:   s.Warning(),
	}, nil
}

// paddedIntegral builds the summed-area table of g reflect-padded by radius
// on every side. Entry (py, px) holds the sum of the padded pixels above and
// left of it; the returned stride is the table's row length.
func paddedIntegral(g *raster.Grid, radius int) ([]int64, int) {
	h, w := g.Height(), g.Width()
	ph, pw := h+2*radius, w+2*radius
	stride := pw + 1

	cols := make([]int, pw)
	for px := range cols {
		cols[px] = reflect(px-radius, w)
	}

	integ := make([]int64, (ph+1)*stride)
	for py := 0; py < ph; py++ {
		sy := reflect(py-radius, h)
		var rowSum int64
		prev := integ[py*stride:]
		cur := integ[(py+1)*stride:]
		for px, sx := range cols {
			rowSum += int64(g.At(sy, sx, 0))
			cur[px+1] = prev[px+1] + rowSum
		}
	}
	return integ, stride
}

// reflect maps an index outside [0, n) back into range by half-sample
// symmetric reflection, repeating as far as needed.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
