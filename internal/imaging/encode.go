package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// JPEGQuality is the quality used when a grid is saved as JPEG.
const JPEGQuality = 95

// GridResult carries an encoded grid back to an MCP client.
type GridResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Channels    int    `json:"channels"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeGrid encodes g as a base64 PNG.
func EncodeGrid(g *raster.Grid) (*GridResult, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", raster.ErrEmptyInput)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, g.ToImage()); err != nil {
		return nil, fmt.Errorf("failed to encode grid: %w", err)
	}

	return &GridResult{
		Width:       g.Width(),
		Height:      g.Height(),
		Channels:    g.Channels(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveGrid writes g to path. The encoder is chosen from the extension:
// ".jpg" and ".jpeg" give JPEG, ".bmp" gives BMP and anything else PNG.
func SaveGrid(path string, g *raster.Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", raster.ErrEmptyInput)
	}
	if err := imgio.Save(path, g.ToImage(), encoderFor(path)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func encoderFor(path string) imgio.Encoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(JPEGQuality)
	case ".bmp":
		return imgio.BMPEncoder()
	default:
		return imgio.PNGEncoder()
	}
}
