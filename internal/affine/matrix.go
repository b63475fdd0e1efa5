package affine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Matrix is a 2x3 affine map in row-major order:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
type Matrix [6]float64

// Identity is the matrix that maps every point to itself.
var Identity = Matrix{1, 0, 0, 0, 1, 0}

// Apply maps the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Invert returns the inverse map. It fails with raster.ErrInvalidParameter
// if the matrix is singular.
func (m Matrix) Invert() (Matrix, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Matrix{}, fmt.Errorf("%w: affine matrix is not invertible: %v", raster.ErrInvalidParameter, err)
	}
	return fromDense(&inv), nil
}

func (m Matrix) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0], m[1], m[2],
		m[3], m[4], m[5],
		0, 0, 1,
	})
}

func fromDense(d mat.Matrix) Matrix {
	return Matrix{d.At(0, 0), d.At(0, 1), d.At(0, 2), d.At(1, 0), d.At(1, 1), d.At(1, 2)}
}

// CanvasSize returns the output width and height for a w x h source.
//
// With ExpandToFit the canvas is the bounding box of the scaled and rotated
// source: ceil(s*(h*|sin|+w*|cos|)) wide and ceil(s*(h*|cos|+w*|sin|)) high,
// never smaller than one pixel. A canvas larger than raster.MaxPixels fails
// with raster.ErrInvalidParameter.
func CanvasSize(w, h int, p Params) (int, int, error) {
	if p.Size != ExpandToFit {
		return w, h, nil
	}
	sin, cos := sinCos(p.Angle)
	sin, cos = math.Abs(sin), math.Abs(cos)
	fw, fh := float64(w), float64(h)
	nw := p.Scale * (fh*sin + fw*cos)
	nh := p.Scale * (fh*cos + fw*sin)
	if math.IsNaN(nw) || math.IsNaN(nh) || math.Max(nw, 1)*math.Max(nh, 1) > raster.MaxPixels+1 {
		return 0, 0, fmt.Errorf("%w: %.6gx%.6g canvas exceeds the %d pixel limit",
			raster.ErrInvalidParameter, nw, nh, raster.MaxPixels)
	}
	dw, dh := max(ceilTolerant(nw), 1), max(ceilTolerant(nh), 1)
	if !raster.WithinBudget(dh, dw) {
		return 0, 0, fmt.Errorf("%w: %dx%d canvas exceeds the %d pixel limit",
			raster.ErrInvalidParameter, dw, dh, raster.MaxPixels)
	}
	return dw, dh, nil
}

// ceilTolerant rounds up, ignoring floating point noise just above an
// integer.
func ceilTolerant(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

// Forward builds the matrix that maps source coordinates of a srcW x srcH
// grid onto a dstW x dstH canvas: scale, then rotation about the source
// center, then translation placing the source center on the canvas center
// plus (ShiftX, ShiftY).
func Forward(srcW, srcH, dstW, dstH int, p Params) Matrix {
	f := factorsFor(srcW, srcH, dstW, dstH, p)
	var m mat.Dense
	m.Product(f.place, f.rotate, f.scale, f.center)
	return fromDense(&m)
}

// Inverse builds the matrix that maps canvas coordinates back to source
// coordinates. It composes the inverted factors directly rather than
// inverting Forward numerically, so whole-pixel placements stay exact.
func Inverse(srcW, srcH, dstW, dstH int, p Params) Matrix {
	f := factorsFor(srcW, srcH, dstW, dstH, p)
	var m mat.Dense
	m.Product(f.uncenter, f.unscale, f.unrotate, f.unplace)
	return fromDense(&m)
}

type factors struct {
	center, scale, rotate, place         *mat.Dense
	uncenter, unscale, unrotate, unplace *mat.Dense
}

func factorsFor(srcW, srcH, dstW, dstH int, p Params) factors {
	sin, cos := sinCos(p.Angle)
	cx, cy := float64(srcW-1)/2, float64(srcH-1)/2
	tx := float64(dstW-1)/2 + p.ShiftX
	ty := float64(dstH-1)/2 + p.ShiftY
	s := p.Scale

	return factors{
		center:   translation(-cx, -cy),
		scale:    linear(s, 0, 0, s),
		rotate:   linear(cos, sin, -sin, cos),
		place:    translation(tx, ty),
		uncenter: translation(cx, cy),
		unscale:  linear(1/s, 0, 0, 1/s),
		unrotate: linear(cos, -sin, sin, cos),
		unplace:  translation(-tx, -ty),
	}
}

func translation(tx, ty float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	})
}

func linear(a, b, c, d float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		a, b, 0,
		c, d, 0,
		0, 0, 1,
	})
}
