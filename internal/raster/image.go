package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// FromImage converts a decoded image into a 3-channel RGB grid.
//
// The image is normalized to non-premultiplied RGBA first; alpha is dropped
// and the raw color channels are kept. The grid origin is the image's
// top-left pixel regardless of its bounds.
func FromImage(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEmptyInput)
	}
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	return Generate(b.Dy(), b.Dx(), 3, func(y int, row []uint8) {
		src := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < b.Dx(); x++ {
			copy(row[x*3:x*3+3], src[x*4:x*4+3])
		}
	})
}

// ToImage converts the grid into an image suitable for encoding.
//
// Single-channel grids become *image.Gray. Three-channel grids become
// opaque *image.NRGBA, and four-channel grids are copied as NRGBA directly.
// Two-channel grids are treated as gray plus alpha.
func (g *Grid) ToImage() image.Image {
	rect := image.Rect(0, 0, g.width, g.height)
	if g.channels == 1 {
		img := image.NewGray(rect)
		for y := 0; y < g.height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+g.width], g.pix[y*g.width:(y+1)*g.width])
		}
		return img
	}

	img := image.NewNRGBA(rect)
	for y := 0; y < g.height; y++ {
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < g.width; x++ {
			src := g.pix[(y*g.width+x)*g.channels:]
			d := dst[x*4 : x*4+4]
			switch g.channels {
			case 2:
				d[0], d[1], d[2], d[3] = src[0], src[0], src[0], src[1]
			case 3:
				d[0], d[1], d[2], d[3] = src[0], src[1], src[2], 255
			default:
				copy(d, src[:4])
			}
		}
	}
	return img
}
