package pipeline

import (
	"fmt"

	"github.com/ironsheep/raster-tools-mcp/internal/affine"
	"github.com/ironsheep/raster-tools-mcp/internal/morphology"
	"github.com/ironsheep/raster-tools-mcp/internal/raster"
	"github.com/ironsheep/raster-tools-mcp/internal/threshold"
)

// Step operation names.
const (
	OpCrop      = "crop"
	OpGray      = "gray"
	OpOtsu      = "otsu"
	OpLocal     = "local"
	OpTransform = "transform"
	OpErode     = "erode"
	OpDilate    = "dilate"
	OpOpen      = "open"
	OpClose     = "close"
)

// Structuring element shapes.
const (
	ShapeSquare = "square"
	ShapeCross  = "cross"
)

// Step is one operation in a pipeline. Only the fields relevant to Op are
// read.
type Step struct {
	// Op is one of the Op* constants.
	Op string `json:"op"`

	// Crop region (crop).
	X      int `json:"x,omitempty"`
	Y      int `json:"y,omitempty"`
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Local threshold window and bias (local). BlockSize defaults to
	// threshold.DefaultBlockSize, capped to the grid.
	BlockSize int     `json:"block_size,omitempty"`
	Offset    float64 `json:"offset,omitempty"`

	// Affine parameters (transform). Scale defaults to 1 when omitted.
	Angle  float64  `json:"angle,omitempty"`
	ShiftX float64  `json:"dx,omitempty"`
	ShiftY float64  `json:"dy,omitempty"`
	Scale  *float64 `json:"scale,omitempty"`
	Order  int      `json:"order,omitempty"`
	Fill   Fill     `json:"fill,omitempty"`
	Expand bool     `json:"expand,omitempty"`

	// Structuring element and repetition (erode, dilate, open, close).
	// Radius defaults to 1, Shape to square and Iterations to 1.
	Radius     *int   `json:"radius,omitempty"`
	Shape      string `json:"shape,omitempty"`
	Iterations *int   `json:"iterations,omitempty"`
}

// Result is the outcome of running a pipeline.
type Result struct {
	// Grid is the output of the last step.
	Grid *raster.Grid

	// Level is the cut chosen by the most recent otsu step, if any.
	Level *uint8

	// Warnings collects adjustments made by steps, such as an even local
	// block size raised to odd.
	Warnings []string

	// Applied lists the operations in the order they ran.
	Applied []string
}

// Run applies steps to g in order and returns the final grid.
//
// An empty step list returns g unchanged. Errors name the failing step and
// wrap the underlying raster error kind.
func Run(g *raster.Grid, steps []Step) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", raster.ErrEmptyInput)
	}
	res := &Result{Grid: g}
	for i, step := range steps {
		if err := apply(res, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
		res.Applied = append(res.Applied, step.Op)
	}
	return res, nil
}

func apply(res *Result, step Step) error {
	g := res.Grid
	var (
		out *raster.Grid
		err error
	)

	switch step.Op {
	case OpCrop:
		out, err = g.Crop(step.X, step.Y, step.Width, step.Height)
	case OpGray:
		if g.Channels() == 1 {
			out = g
			break
		}
		out, err = raster.ToGray(g)
	case OpOtsu:
		var global *threshold.Global
		if global, err = threshold.Otsu(g); err == nil {
			level := global.Level
			res.Level = &level
			out = global.Binary
		}
	case OpLocal:
		var local *threshold.LocalResult
		if local, err = threshold.Local(g, threshold.BlockSizeFor(step.BlockSize, g.Height(), g.Width()), step.Offset); err == nil {
			if w := local.Warning(); w != "" {
				res.Warnings = append(res.Warnings, w)
			}
			out = local.Binary
		}
	case OpTransform:
		out, err = affine.Transform(g, step.affineParams())
	case OpErode, OpDilate, OpOpen, OpClose:
		out, err = morph(g, step)
	default:
		return fmt.Errorf("%w: unknown operation %q", raster.ErrInvalidParameter, step.Op)
	}
	if err != nil {
		return err
	}
	res.Grid = out
	return nil
}

func (s Step) affineParams() affine.Params {
	p := affine.DefaultParams()
	if s.Scale != nil {
		p.Scale = *s.Scale
	}
	p.Angle = s.Angle
	p.ShiftX, p.ShiftY = s.ShiftX, s.ShiftY
	p.Order = affine.Order(s.Order)
	p.Fill = uint8(s.Fill)
	if s.Expand {
		p.Size = affine.ExpandToFit
	}
	return p
}

// Element builds the structuring element described by the step.
func (s Step) Element() (*morphology.Element, error) {
	radius := 1
	if s.Radius != nil {
		radius = *s.Radius
	}
	switch s.Shape {
	case "", ShapeSquare:
		return morphology.Square(radius)
	case ShapeCross:
		return morphology.Cross(radius)
	default:
		return nil, fmt.Errorf("%w: unknown element shape %q", raster.ErrInvalidParameter, s.Shape)
	}
}

func morph(g *raster.Grid, s Step) (*raster.Grid, error) {
	se, err := s.Element()
	if err != nil {
		return nil, err
	}
	iterations := 1
	if s.Iterations != nil {
		iterations = *s.Iterations
	}
	switch s.Op {
	case OpErode:
		return morphology.Erode(g, se, iterations)
	case OpDilate:
		return morphology.Dilate(g, se, iterations)
	case OpOpen:
		return morphology.Open(g, se, iterations)
	default:
		return morphology.Close(g, se, iterations)
	}
}
