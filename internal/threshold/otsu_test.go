package threshold

import (
	"errors"
	"testing"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

func gridFromRows(t *testing.T, rows [][]uint8) *raster.Grid {
	t.Helper()
	var pix []uint8
	for _, r := range rows {
		pix = append(pix, r...)
	}
	g, err := raster.New(len(rows), len(rows[0]), 1, pix)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	return g
}

func uniformGrid(t *testing.T, height, width int, v uint8) *raster.Grid {
	t.Helper()
	g, err := raster.Generate(height, width, 1, func(_ int, row []uint8) {
		for x := range row {
			row[x] = v
		}
	})
	if err != nil {
		t.Fatalf("raster.Generate failed: %v", err)
	}
	return g
}

func TestOtsu_TwoLevelScenario(t *testing.T) {
	g := gridFromRows(t, [][]uint8{
		{10, 10, 200, 200},
		{10, 10, 200, 200},
	})

	res, err := Otsu(g)
	if err != nil {
		t.Fatalf("Otsu failed: %v", err)
	}
	if res.Level != 10 {
		t.Errorf("Level: got %d, want 10 (smallest of the tied levels)", res.Level)
	}
	if cut := res.Cut(); cut <= 10 || cut > 200 {
		t.Errorf("Cut: got %.1f, want in (10, 200]", cut)
	}

	want := gridFromRows(t, [][]uint8{
		{0, 0, 255, 255},
		{0, 0, 255, 255},
	})
	if !res.Binary.Equal(want) {
		t.Errorf("Binary: got %v, want %v", res.Binary.Pixels(), want.Pixels())
	}
}

func TestOtsu_BimodalCutBetweenLevels(t *testing.T) {
	tests := []struct {
		name string
		a, b uint8
	}{
		{"extremes", 0, 255},
		{"adjacent", 100, 101},
		{"dark pair", 3, 40},
		{"bright pair", 180, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := raster.Generate(6, 6, 1, func(y int, row []uint8) {
				for x := range row {
					if (x+y)%2 == 0 {
						row[x] = tt.a
					} else {
						row[x] = tt.b
					}
				}
			})
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			res, err := Otsu(g)
			if err != nil {
				t.Fatalf("Otsu failed: %v", err)
			}
			if cut := res.Cut(); cut <= float64(tt.a) || cut >= float64(tt.b) {
				t.Errorf("Cut: got %.1f, want strictly between %d and %d", cut, tt.a, tt.b)
			}
			for i, v := range res.Binary.Pixels() {
				y, x := i/6, i%6
				want := uint8(0)
				if (x+y)%2 == 1 {
					want = 255
				}
				if v != want {
					t.Fatalf("pixel (%d,%d): got %d, want %d", y, x, v, want)
				}
			}
		})
	}
}

func TestOtsu_ConstantGrid(t *testing.T) {
	for _, v := range []uint8{0, 77, 255} {
		res, err := Otsu(uniformGrid(t, 5, 7, v))
		if err != nil {
			t.Fatalf("Otsu failed: %v", err)
		}
		if res.Level != v {
			t.Errorf("constant %d: Level got %d, want %d", v, res.Level, v)
		}
		for _, p := range res.Binary.Pixels() {
			if p != 0 {
				t.Fatalf("constant %d: expected all-background output, got %d", v, p)
			}
		}
	}
}

func TestOtsuLevel_UnequalClasses(t *testing.T) {
	// Variance for t in [0,100) is 5625, for t in [100,200) about 5208.
	g := gridFromRows(t, [][]uint8{{0, 0, 100, 200}})
	level, err := OtsuLevel(g)
	if err != nil {
		t.Fatalf("OtsuLevel failed: %v", err)
	}
	if level != 0 {
		t.Errorf("level: got %d, want 0", level)
	}
}

func TestLevelFromHistogram_Empty(t *testing.T) {
	var hist [Levels]int
	if _, err := LevelFromHistogram(hist); !errors.Is(err, raster.ErrEmptyInput) {
		t.Errorf("error: got %v, want ErrEmptyInput", err)
	}
}

func TestOtsu_RejectsMultiChannel(t *testing.T) {
	g, err := raster.New(1, 1, 3, []uint8{1, 2, 3})
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	if _, err := Otsu(g); !errors.Is(err, raster.ErrShape) {
		t.Errorf("error: got %v, want ErrShape", err)
	}
	if _, err := Otsu(nil); !errors.Is(err, raster.ErrEmptyInput) {
		t.Errorf("nil grid: got %v, want ErrEmptyInput", err)
	}
}

func TestHistogram(t *testing.T) {
	hist, err := Histogram(gridFromRows(t, [][]uint8{{1, 1, 9}, {255, 1, 0}}))
	if err != nil {
		t.Fatalf("Histogram failed: %v", err)
	}
	want := map[int]int{0: 1, 1: 3, 9: 1, 255: 1}
	for level, n := range hist {
		if n != want[level] {
			t.Errorf("hist[%d]: got %d, want %d", level, n, want[level])
		}
	}
}

func TestApply(t *testing.T) {
	g := gridFromRows(t, [][]uint8{{0, 127, 128, 255}})
	bin, err := Apply(g, 127)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := []uint8{0, 0, 255, 255}
	for i, v := range bin.Pixels() {
		if v != want[i] {
			t.Errorf("pixel %d: got %d, want %d", i, v, want[i])
		}
	}
}
