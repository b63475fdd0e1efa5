package raster

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minParallelRows is the smallest grid height split across goroutines.
const minParallelRows = 64

// Generate builds a new grid by calling fill once for every row.
//
// fill receives the row index and a slice of width*channels values to write;
// it must only write to that slice and must not retain it. Rows may be filled
// concurrently and in any order, so fill must not depend on other output rows.
// The returned grid is immutable.
func Generate(height, width, channels int, fill func(y int, row []uint8)) (*Grid, error) {
	if err := checkShape(height, width, channels); err != nil {
		return nil, err
	}
	stride := width * channels
	pix := make([]uint8, height*stride)
	ForEachBand(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			fill(y, pix[y*stride:(y+1)*stride:(y+1)*stride])
		}
	})
	return &Grid{height: height, width: width, channels: channels, pix: pix}, nil
}

// ForEachBand splits [0, rows) into contiguous bands and calls fn for each,
// running one band per GOMAXPROCS slot. It returns once every band is done.
// Small inputs run on the calling goroutine.
//
// fn cannot fail: every caller writes into a preallocated buffer, so the
// group is only used to join the bands and its Wait result is always nil.
func ForEachBand(rows int, fn func(y0, y1 int)) {
	workers := runtime.GOMAXPROCS(0)
	if rows < minParallelRows || workers < 2 {
		fn(0, rows)
		return
	}
	band := (rows + workers - 1) / workers

	var g errgroup.Group
	for y0 := 0; y0 < rows; y0 += band {
		y0 := y0
		y1 := min(y0+band, rows)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}
