package slicer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/slicegrid/slicegrid-mcp/internal/grid"
)

// Resolution caps applied to tile output dimensions.
const (
	// maxDimOptimized caps tiles at web-delivery size.
	maxDimOptimized = 1080

	// maxDimFull is the ceiling applied even when optimization is off.
	maxDimFull = 4096
)

// Encoder resamples crop regions and encodes them to the configured format.
//
// One scratch surface is resized and redrawn by every tile in a pass, which
// is safe only because tiles are encoded strictly in sequence on one
// goroutine. If tile encoding is ever parallelized, give each worker its own
// Encoder rather than sharing this one.
type Encoder struct {
	scratch *image.NRGBA
}

// NewEncoder returns an encoder with an empty scratch surface.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// TargetSize applies the resolution cap to a crop's float dimensions. When
// either dimension exceeds the cap, both are scaled by the same ratio so the
// aspect ratio is preserved exactly before rounding. Dimensions round with
// math.Round and are floored at one pixel.
func TargetSize(w, h float64, optimize bool) (int, int) {
	maxDim := float64(maxDimFull)
	if optimize {
		maxDim = maxDimOptimized
	}

	if w > maxDim || h > maxDim {
		ratio := math.Min(maxDim/w, maxDim/h)
		w *= ratio
		h *= ratio
	}

	tw := int(math.Round(w))
	th := int(math.Round(h))
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	return tw, th
}

// rectToPixels converts a float crop rect to integer pixel bounds. Each edge
// position is rounded with math.Round (half away from zero); rounding edges
// rather than width and height keeps adjacent tiles from drifting apart by a
// pixel on non-integral boundaries.
func rectToPixels(rc CropRect) image.Rectangle {
	x0 := int(math.Round(rc.X))
	y0 := int(math.Round(rc.Y))
	x1 := int(math.Round(rc.X + rc.W))
	y1 := int(math.Round(rc.Y + rc.H))
	return image.Rect(x0, y0, x1, y1)
}

// EncodeTile crops one rectangle from src, resamples it to the capped target
// size, and encodes it. The error return is for the pipeline's bookkeeping
// only; Slice absorbs it and simply omits the tile.
func (e *Encoder) EncodeTile(src image.Image, rc CropRect, cfg grid.SliceConfig) ([]byte, error) {
	sr := rectToPixels(rc).Add(src.Bounds().Min).Intersect(src.Bounds())
	if sr.Empty() {
		return nil, fmt.Errorf("crop region %v rounds to an empty pixel rect", rc)
	}

	tw, th := TargetSize(rc.W, rc.H, cfg.OptimizeResolution)
	tile := e.render(src, sr, tw, th)

	buf := new(bytes.Buffer)
	var err error
	switch cfg.Format {
	case grid.FormatJPEG:
		err = imaging.Encode(buf, tile, imaging.JPEG, imaging.JPEGQuality(lossyQuality(cfg)))
	case grid.FormatWebP:
		err = webp.Encode(buf, tile, &webp.Options{Quality: float32(lossyQuality(cfg))})
	case grid.FormatPNG:
		err = imaging.Encode(buf, tile, imaging.PNG)
	default:
		err = fmt.Errorf("unknown output format: %q", cfg.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s tile: %w", cfg.Format, err)
	}
	return buf.Bytes(), nil
}

// render draws the source region onto the scratch surface at the target size
// using Catmull-Rom interpolation. The scratch is reallocated only when the
// target size changes; draw.Src overwrites every destination pixel, so no
// clear is needed between tiles.
func (e *Encoder) render(src image.Image, sr image.Rectangle, tw, th int) *image.NRGBA {
	if e.scratch == nil || e.scratch.Bounds().Dx() != tw || e.scratch.Bounds().Dy() != th {
		e.scratch = image.NewNRGBA(image.Rect(0, 0, tw, th))
	}
	xdraw.CatmullRom.Scale(e.scratch, e.scratch.Bounds(), src, sr, xdraw.Src, nil)
	return e.scratch
}

// lossyQuality maps the normalized quality to the 1-100 scale used by the
// JPEG and WebP encoders.
func lossyQuality(cfg grid.SliceConfig) int {
	return int(math.Round(cfg.ClampedQuality() * 100))
}

// Slice runs one full slicing pass: geometry over the boundary set, then a
// strictly sequential crop/resample/encode loop. Degenerate cells and encode
// failures are locally absorbed, so the returned collection holds a
// best-effort subset of tiles; callers detect losses by comparing the
// collection length with the expected cell count.
func (e *Encoder) Slice(src image.Image, lines grid.Lines, cfg grid.SliceConfig) *Collection {
	bounds := src.Bounds()
	rects := ComputeCropRects(lines, bounds.Dx(), bounds.Dy())

	col := &Collection{format: cfg.Format}
	for _, rc := range rects {
		payload, err := e.EncodeTile(src, rc, cfg)
		if err != nil {
			continue
		}
		tw, th := TargetSize(rc.W, rc.H, cfg.OptimizeResolution)
		col.results = append(col.results, Result{
			Payload: base64.StdEncoding.EncodeToString(payload),
			Index:   rc.Index,
			Row:     rc.Row,
			Col:     rc.Col,
			Width:   tw,
			Height:  th,
		})
	}
	return col
}
