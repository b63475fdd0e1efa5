package morphology

import (
	"fmt"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// MaxIterations is the largest repetition count accepted by the operators.
const MaxIterations = 100

// Erode shrinks the foreground: a pixel stays foreground only if every pixel
// under an active cell of se is foreground. The pass is repeated iterations
// times.
func Erode(g *raster.Grid, se *Element, iterations int) (*raster.Grid, error) {
	if err := validate(g, se, iterations); err != nil {
		return nil, err
	}
	return repeat(g, se.offsets(), iterations, erodeOnce)
}

// Dilate grows the foreground: a pixel becomes foreground if any pixel under
// an active cell of the reflected se is foreground. The pass is repeated
// iterations times.
func Dilate(g *raster.Grid, se *Element, iterations int) (*raster.Grid, error) {
	if err := validate(g, se, iterations); err != nil {
		return nil, err
	}
	return repeat(g, se.offsets(), iterations, dilateOnce)
}

// Open erodes iterations times and then dilates iterations times. It removes
// foreground specks smaller than the element and never adds foreground.
func Open(g *raster.Grid, se *Element, iterations int) (*raster.Grid, error) {
	if err := validate(g, se, iterations); err != nil {
		return nil, err
	}
	offs := se.offsets()
	eroded, err := repeat(g, offs, iterations, erodeOnce)
	if err != nil {
		return nil, err
	}
	return repeat(eroded, offs, iterations, dilateOnce)
}

// Close dilates iterations times and then erodes iterations times. It fills
// background gaps smaller than the element and never removes foreground.
func Close(g *raster.Grid, se *Element, iterations int) (*raster.Grid, error) {
	if err := validate(g, se, iterations); err != nil {
		return nil, err
	}
	ry, rx := se.reach()
	padY, padX := ry*iterations, rx*iterations

	padded, err := pad(g, padY, padX)
	if err != nil {
		return nil, err
	}
	offs := se.offsets()
	dilated, err := repeat(padded, offs, iterations, dilateOnce)
	if err != nil {
		return nil, err
	}
	closed, err := repeat(dilated, offs, iterations, erodeOnce)
	if err != nil {
		return nil, err
	}
	return closed.Crop(padX, padY, g.Width(), g.Height())
}

func validate(g *raster.Grid, se *Element, iterations int) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", raster.ErrEmptyInput)
	}
	if se == nil {
		return fmt.Errorf("%w: nil structuring element", raster.ErrInvalidParameter)
	}
	if g.Channels() != 1 {
		return fmt.Errorf("%w: morphology needs 1 channel, got %d", raster.ErrShape, g.Channels())
	}
	if iterations <= 0 || iterations > MaxIterations {
		return fmt.Errorf("%w: iterations must be 1..%d, got %d", raster.ErrInvalidParameter, MaxIterations, iterations)
	}
	if !g.IsBinary() {
		return fmt.Errorf("%w: morphology needs a binary grid with values 0 and 255", raster.ErrInvalidInput)
	}
	return nil
}

type pass func(g *raster.Grid, offs []offset) (*raster.Grid, error)

func repeat(g *raster.Grid, offs []offset, n int, op pass) (*raster.Grid, error) {
	out := g
	for i := 0; i < n; i++ {
		next, err := op(out, offs)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func erodeOnce(g *raster.Grid, offs []offset) (*raster.Grid, error) {
	h, w := g.Height(), g.Width()
	return raster.Generate(h, w, 1, func(y int, row []uint8) {
		for x := range row {
			keep := true
			for _, o := range offs {
				sy, sx := y+o.dy, x+o.dx
				if sy < 0 || sy >= h || sx < 0 || sx >= w || g.At(sy, sx, 0) == 0 {
					keep = false
					break
				}
			}
			if keep {
				row[x] = 255
			}
		}
	})
}

func dilateOnce(g *raster.Grid, offs []offset) (*raster.Grid, error) {
	h, w := g.Height(), g.Width()
	return raster.Generate(h, w, 1, func(y int, row []uint8) {
		for x := range row {
			for _, o := range offs {
				sy, sx := y-o.dy, x-o.dx
				if sy >= 0 && sy < h && sx >= 0 && sx < w && g.At(sy, sx, 0) != 0 {
					row[x] = 255
					break
				}
			}
		}
	})
}

// pad surrounds g with padY rows and padX columns of background.
func pad(g *raster.Grid, padY, padX int) (*raster.Grid, error) {
	h, w := g.Height(), g.Width()
	return raster.Generate(h+2*padY, w+2*padX, 1, func(y int, row []uint8) {
		sy := y - padY
		if sy < 0 || sy >= h {
			return
		}
		for x := 0; x < w; x++ {
			row[x+padX] = g.At(sy, x, 0)
		}
	})
}
