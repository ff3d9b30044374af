package slicer

import (
	"math"

	"github.com/slicegrid/slicegrid-mcp/internal/grid"
)

// CropRect is one cell's crop region in source pixels, kept in float64 so the
// percentage-to-pixel conversion stays exact; rounding to addressable pixels
// happens in the encoder. Index is the cell's row-major scan position among
// all attempted cells, which is why the indices of a pass can have gaps.
type CropRect struct {
	X float64
	Y float64
	W float64
	H float64

	Row   int
	Col   int
	Index int
}

// ComputeCropRects converts a boundary set plus source dimensions into crop
// rectangles. The band for row r spans from horizontal[r].End to
// horizontal[r+1].Start (the region between two gutters), and likewise for
// columns; percentages scale by the image dimension over 100.
//
// A cell whose band is zero or negative in either axis (including bands
// inverted by a drag) produces no rectangle but still consumes its index
// slot. Archive naming depends on these gaps, so they are preserved exactly.
func ComputeCropRects(lines grid.Lines, imageWidth, imageHeight int) []CropRect {
	numRows := lines.Rows()
	numCols := lines.Cols()
	if numRows < 1 || numCols < 1 {
		return nil
	}

	rects := make([]CropRect, 0, numRows*numCols)
	index := 0
	for r := 0; r < numRows; r++ {
		yStart := lines.Horizontal[r].End / 100 * float64(imageHeight)
		yEnd := lines.Horizontal[r+1].Start / 100 * float64(imageHeight)
		h := math.Max(0, yEnd-yStart)

		for c := 0; c < numCols; c++ {
			xStart := lines.Vertical[c].End / 100 * float64(imageWidth)
			xEnd := lines.Vertical[c+1].Start / 100 * float64(imageWidth)
			w := math.Max(0, xEnd-xStart)

			if w <= 0 || h <= 0 {
				index++
				continue
			}

			rects = append(rects, CropRect{
				X:     xStart,
				Y:     yStart,
				W:     w,
				H:     h,
				Row:   r,
				Col:   c,
				Index: index,
			})
			index++
		}
	}
	return rects
}
