package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

func TestCropRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name    string
		region  Region
		wantW   int
		wantH   int
		wantRGB [3]uint8
		wantErr error
	}{
		{"whole image", Region{}, 100, 100, [3]uint8{255, 0, 0}, nil},
		{"top-left quadrant", Region{0, 0, 50, 50}, 50, 50, [3]uint8{255, 0, 0}, nil},
		{"top-right quadrant", Region{50, 0, 50, 50}, 50, 50, [3]uint8{0, 255, 0}, nil},
		{"bottom-right strip", Region{60, 90, 40, 10}, 40, 10, [3]uint8{255, 255, 255}, nil},
		{"single pixel", Region{10, 60, 1, 1}, 1, 1, [3]uint8{0, 0, 255}, nil},
		{"past right edge", Region{60, 0, 50, 10}, 0, 0, [3]uint8{}, raster.ErrOutOfBounds},
		{"negative origin", Region{-1, 0, 10, 10}, 0, 0, [3]uint8{}, raster.ErrOutOfBounds},
		{"zero width", Region{5, 5, 0, 10}, 0, 0, [3]uint8{}, raster.ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := CropRegion(img, tt.region)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CropRegion failed: %v", err)
			}
			if g.Width() != tt.wantW || g.Height() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", g.Width(), g.Height(), tt.wantW, tt.wantH)
			}
			got := [3]uint8{g.At(0, 0, 0), g.At(0, 0, 1), g.At(0, 0, 2)}
			if got != tt.wantRGB {
				t.Errorf("first pixel: got %v, want %v", got, tt.wantRGB)
			}
		})
	}
}

func TestCropRegion_OffsetBounds(t *testing.T) {
	// SubImage keeps the parent's coordinates, so bounds start at (20, 30).
	parent := createPatternImage(100, 100)
	sub := parent.SubImage(image.Rect(20, 30, 70, 80))

	g, err := CropRegion(sub, Region{X: 30, Y: 20, Width: 20, Height: 10})
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}
	// Region origin maps to parent pixel (50, 50), the white quadrant.
	if g.At(0, 0, 0) != 255 || g.At(0, 0, 1) != 255 || g.At(0, 0, 2) != 255 {
		t.Errorf("expected white, got %d,%d,%d", g.At(0, 0, 0), g.At(0, 0, 1), g.At(0, 0, 2))
	}

	if _, err := CropRegion(sub, Region{X: 40, Y: 0, Width: 20, Height: 1}); !errors.Is(err, raster.ErrOutOfBounds) {
		t.Errorf("region past sub-image edge: got %v, want ErrOutOfBounds", err)
	}
}

func TestCropRegion_NilImage(t *testing.T) {
	if _, err := CropRegion(nil, Region{}); !errors.Is(err, raster.ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestLoadRegion(t *testing.T) {
	cache := NewImageCache()
	path := writePNG(t, createInMemoryImage(20, 10, color.RGBA{40, 80, 120, 255}))

	g, err := LoadRegion(cache, path, Region{X: 5, Y: 2, Width: 10, Height: 4})
	if err != nil {
		t.Fatalf("LoadRegion failed: %v", err)
	}
	if g.Width() != 10 || g.Height() != 4 {
		t.Errorf("dimensions: got %dx%d, want 10x4", g.Width(), g.Height())
	}
	if g.At(3, 9, 2) != 120 {
		t.Errorf("blue channel: got %d, want 120", g.At(3, 9, 2))
	}

	if _, err := LoadRegion(cache, "/nonexistent/image.png", Region{}); err == nil {
		t.Error("LoadRegion should fail for non-existent file")
	}
}
