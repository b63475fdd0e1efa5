package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.Set(10, 20, color.RGBA{255, 0, 0, 255})
	img.Set(12, 21, color.RGBA{0, 0, 255, 255})

	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if g.Height() != 2 || g.Width() != 3 || g.Channels() != 3 {
		t.Fatalf("shape: got %s, want 2x3x3", g)
	}
	if r := g.At(0, 0, 0); r != 255 {
		t.Errorf("top-left red: got %d, want 255", r)
	}
	if b := g.At(1, 2, 2); b != 255 {
		t.Errorf("bottom-right blue: got %d, want 255", b)
	}
}

func TestFromImage_Nil(t *testing.T) {
	if _, err := FromImage(nil); err == nil {
		t.Error("FromImage(nil) should fail")
	}
}

func TestToImage_Gray(t *testing.T) {
	g := mustGrid(t, [][]uint8{{0, 128}, {255, 7}})
	img, ok := g.ToImage().(*image.Gray)
	if !ok {
		t.Fatalf("ToImage: got %T, want *image.Gray", g.ToImage())
	}
	if got := img.GrayAt(1, 0).Y; got != 128 {
		t.Errorf("GrayAt(1,0): got %d, want 128", got)
	}
	if got := img.GrayAt(1, 1).Y; got != 7 {
		t.Errorf("GrayAt(1,1): got %d, want 7", got)
	}
}

func TestImageRoundTrip_RGB(t *testing.T) {
	pix := []uint8{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	g := mustNew(t, 2, 2, 3, pix)

	back, err := FromImage(g.ToImage())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("round trip: got %v, want %v", back.Pixels(), pix)
	}
}
