package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

func binaryGrid(t *testing.T) *raster.Grid {
	t.Helper()
	g, err := raster.FromMask(2, 3, []bool{true, false, true, false, true, false})
	if err != nil {
		t.Fatalf("FromMask failed: %v", err)
	}
	return g
}

func TestEncodeGrid(t *testing.T) {
	g := binaryGrid(t)

	result, err := EncodeGrid(g)
	if err != nil {
		t.Fatalf("EncodeGrid failed: %v", err)
	}
	if result.Width != 3 || result.Height != 2 || result.Channels != 1 {
		t.Errorf("shape: got %dx%dx%d", result.Height, result.Width, result.Channels)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	back, err := raster.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	gray, err := raster.ToGray(back)
	if err != nil {
		t.Fatalf("ToGray failed: %v", err)
	}
	if !gray.Equal(g) {
		t.Errorf("round trip changed pixels: got %v, want %v", gray.Pixels(), g.Pixels())
	}
}

func TestEncodeGrid_Nil(t *testing.T) {
	if _, err := EncodeGrid(nil); !errors.Is(err, raster.ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestSaveGrid(t *testing.T) {
	g := binaryGrid(t)
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.bmp", "out.jpg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveGrid(path, g); err != nil {
				t.Fatalf("SaveGrid failed: %v", err)
			}

			dims, err := GetDimensions(NewImageCache(), path)
			if err != nil {
				t.Fatalf("saved file does not decode: %v", err)
			}
			if dims.Width != 3 || dims.Height != 2 {
				t.Errorf("dimensions: got %dx%d, want 3x2", dims.Width, dims.Height)
			}
		})
	}
}

func TestSaveGrid_Errors(t *testing.T) {
	if err := SaveGrid(filepath.Join(t.TempDir(), "x.png"), nil); !errors.Is(err, raster.ErrEmptyInput) {
		t.Errorf("nil grid: got %v, want ErrEmptyInput", err)
	}
	if err := SaveGrid("/nonexistent/dir/out.png", binaryGrid(t)); err == nil {
		t.Error("SaveGrid should fail for an unwritable path")
	}
}
