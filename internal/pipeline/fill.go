package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Fill is the value written where a transform has no source data.
//
// In JSON it is either an intensity from 0 to 255 or a hex color string such
// as "#808080", which is reduced to its luminance.
type Fill uint8

// UnmarshalJSON accepts a number or a hex color string.
func (f *Fill) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseFill(s)
		if err != nil {
			return err
		}
		*f = v
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("fill must be a number or hex color: %w", err)
	}
	if n < 0 || n > 255 || n != math.Trunc(n) {
		return fmt.Errorf("%w: fill %v is not an integer in [0, 255]", raster.ErrInvalidParameter, n)
	}
	*f = Fill(n)
	return nil
}

// ParseFill converts a hex color like "#FF8000" to the luminance used as a
// fill value.
func ParseFill(hex string) (Fill, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("%w: fill color %q: %v", raster.ErrInvalidParameter, hex, err)
	}
	r, g, b := c.RGB255()
	return Fill(raster.Luma(r, g, b)), nil
}
