package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Region selects a rectangle of an image by its top-left corner and size.
// The zero Region selects the whole image.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsZero reports whether r is the zero Region.
func (r Region) IsZero() bool {
	return r == Region{}
}

// Rect returns r as an image rectangle relative to origin.
func (r Region) Rect(origin image.Point) image.Rectangle {
	topLeft := origin.Add(image.Pt(r.X, r.Y))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(r.Width, r.Height))}
}

// CropRegion extracts r from img and returns it as an RGB grid.
//
// Region coordinates are relative to the image's top-left pixel. The zero
// Region returns the whole image. A region with non-positive size or one
// that extends past the image is rejected with raster.ErrOutOfBounds.
func CropRegion(img image.Image, r Region) (*raster.Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrEmptyInput)
	}
	if r.IsZero() {
		return raster.FromImage(img)
	}

	bounds := img.Bounds()
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("%w: region size %dx%d must be positive", raster.ErrOutOfBounds, r.Width, r.Height)
	}
	rect := r.Rect(bounds.Min)
	if !rect.In(bounds) {
		return nil, fmt.Errorf("%w: region (%d,%d) %dx%d outside %dx%d image",
			raster.ErrOutOfBounds, r.X, r.Y, r.Width, r.Height, bounds.Dx(), bounds.Dy())
	}

	return raster.FromImage(imaging.Crop(img, rect))
}

// LoadRegion loads the image at path through cache and crops it to r.
func LoadRegion(cache *ImageCache, path string, r Region) (*raster.Grid, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return CropRegion(img, r)
}
