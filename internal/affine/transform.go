package affine

import (
	"fmt"
	"math"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Transform resamples g under the affine transform described by p.
//
// Each channel is resampled independently and the fill value is written to
// every channel of pixels that map outside the source. Whole-pixel
// translations without rotation or scaling are copied directly; the result
// is identical to the general path.
//
// Returns an error wrapping raster.ErrInvalidParameter if p fails Validate
// or the expanded canvas would exceed raster.MaxPixels.
func Transform(g *raster.Grid, p Params) (*raster.Grid, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", raster.ErrEmptyInput)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.translationOnly() {
		return shift(g, int(p.ShiftX), int(p.ShiftY), p.Fill)
	}
	return resample(g, p)
}

// Translate shifts g by (dx, dy) pixels on a fixed-size canvas, filling the
// vacated strip with fill.
func Translate(g *raster.Grid, dx, dy int, fill uint8) (*raster.Grid, error) {
	p := DefaultParams()
	p.ShiftX, p.ShiftY, p.Fill = float64(dx), float64(dy), fill
	return Transform(g, p)
}

// Rotate turns g by angle degrees about its center on a canvas expanded to
// fit the rotated grid.
func Rotate(g *raster.Grid, angle float64, order Order, fill uint8) (*raster.Grid, error) {
	p := DefaultParams()
	p.Angle, p.Order, p.Fill, p.Size = angle, order, fill, ExpandToFit
	return Transform(g, p)
}

// Zoom scales g by factor on a canvas resized to ceil(factor*W) x
// ceil(factor*H).
func Zoom(g *raster.Grid, factor float64, order Order) (*raster.Grid, error) {
	p := DefaultParams()
	p.Scale, p.Order, p.Size = factor, order, ExpandToFit
	return Transform(g, p)
}

// resample is the general inverse-mapping path.
func resample(g *raster.Grid, p Params) (*raster.Grid, error) {
	w, h, ch := g.Width(), g.Height(), g.Channels()
	dstW, dstH, err := CanvasSize(w, h, p)
	if err != nil {
		return nil, err
	}
	inv := Inverse(w, h, dstW, dstH, p)

	return raster.Generate(dstH, dstW, ch, func(y int, row []uint8) {
		for x := 0; x < dstW; x++ {
			px, py := inv.Apply(float64(x), float64(y))
			out := row[x*ch : x*ch+ch]
			if !inside(px, w) || !inside(py, h) {
				for c := range out {
					out[c] = p.Fill
				}
				continue
			}
			switch p.Order {
			case Bilinear:
				sampleBilinear(g, px, py, out)
			default:
				sampleNearest(g, px, py, out)
			}
		}
	})
}

// inside reports whether coordinate v lies within half a pixel of the pixel
// centers 0..n-1, which is exactly where nearest rounding lands in range.
func inside(v float64, n int) bool {
	return v > -0.5 && v < float64(n)-0.5
}

func sampleNearest(g *raster.Grid, px, py float64, out []uint8) {
	x := clampIndex(int(math.Round(px)), g.Width())
	y := clampIndex(int(math.Round(py)), g.Height())
	for c := range out {
		out[c] = g.At(y, x, c)
	}
}

func sampleBilinear(g *raster.Grid, px, py float64, out []uint8) {
	x0, x1, fx := neighbors(px, g.Width())
	y0, y1, fy := neighbors(py, g.Height())
	for c := range out {
		top := (1-fx)*float64(g.At(y0, x0, c)) + fx*float64(g.At(y0, x1, c))
		bottom := (1-fx)*float64(g.At(y1, x0, c)) + fx*float64(g.At(y1, x1, c))
		v := math.Round((1-fy)*top + fy*bottom)
		out[c] = uint8(math.Max(0, math.Min(255, v)))
	}
}

// neighbors returns the two pixel indices around coordinate v, clamped to
// [0, n-1], and the weight of the second.
func neighbors(v float64, n int) (int, int, float64) {
	v = math.Max(0, math.Min(float64(n-1), v))
	i0 := int(math.Floor(v))
	if i0 >= n-1 {
		return n - 1, n - 1, 0
	}
	return i0, i0 + 1, v - float64(i0)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// shift copies g offset by whole pixels onto a same-sized canvas.
func shift(g *raster.Grid, dx, dy int, fill uint8) (*raster.Grid, error) {
	w, h, ch := g.Width(), g.Height(), g.Channels()
	return raster.Generate(h, w, ch, func(y int, row []uint8) {
		sy := y - dy
		for x := 0; x < w; x++ {
			sx := x - dx
			out := row[x*ch : x*ch+ch]
			if sx < 0 || sx >= w || sy < 0 || sy >= h {
				for c := range out {
					out[c] = fill
				}
				continue
			}
			for c := range out {
				out[c] = g.At(sy, sx, c)
			}
		}
	})
}
