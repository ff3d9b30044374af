package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/transform"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/slicegrid/slicegrid-mcp/internal/grid"
	"github.com/slicegrid/slicegrid-mcp/internal/slicer"
)

// defaultLineColor marks boundary edges when no color is configured.
const defaultLineColor = "#FF3B30"

// gutterDim is the brightness factor applied to excluded gutter strips.
const gutterDim = 0.45

// Options configures an overlay render.
type Options struct {
	// LineColor is the boundary edge color as a hex string ("#RRGGBB").
	// Unparseable values fall back to the default red.
	LineColor string

	// ShowLabels draws a "row,col" label in each cell band.
	ShowLabels bool

	// MaxDim, when positive, downscales the rendered overlay so neither
	// dimension exceeds it. Zero renders at source size.
	MaxDim int
}

// Overlay is a rendered editing-surface view.
type Overlay struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Render draws the grid state over a copy of src. Gutter strips (including
// the fixed outer margins) are dimmed, each boundary's start and end edges
// are drawn as lines, and cells are optionally labeled.
func Render(src image.Image, lines grid.Lines, opts Options) (*Overlay, error) {
	lineColor := parseLineColor(opts.LineColor)

	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Src)

	for _, b := range lines.Horizontal {
		y0, y1 := spanToPixels(b, h)
		dimRows(canvas, 0, w, y0, y1)
		drawHLine(canvas, y0, lineColor)
		drawHLine(canvas, y1-1, lineColor)
	}
	for _, b := range lines.Vertical {
		x0, x1 := spanToPixels(b, w)
		dimCols(canvas, x0, x1, 0, h)
		drawVLine(canvas, x0, lineColor)
		drawVLine(canvas, x1-1, lineColor)
	}

	if opts.ShowLabels {
		labelCells(canvas, lines)
	}

	out := image.Image(canvas)
	if opts.MaxDim > 0 && (w > opts.MaxDim || h > opts.MaxDim) {
		ratio := math.Min(float64(opts.MaxDim)/float64(w), float64(opts.MaxDim)/float64(h))
		tw := int(math.Round(float64(w) * ratio))
		th := int(math.Round(float64(h) * ratio))
		out = transform.Resize(canvas, tw, th, transform.Linear)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		return nil, fmt.Errorf("encode overlay: %w", err)
	}

	ob := out.Bounds()
	return &Overlay{
		Width:       ob.Dx(),
		Height:      ob.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// parseLineColor maps a hex string to a color, falling back to the default
// red on empty or unparseable input.
func parseLineColor(hex string) color.NRGBA {
	if hex == "" {
		hex = defaultLineColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(defaultLineColor)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// spanToPixels converts a boundary's percentage span to a pixel range along
// an axis of the given size. Inverted boundaries draw as their normalized
// span so the dragged edge stays visible.
func spanToPixels(b grid.Boundary, size int) (int, int) {
	lo := math.Min(b.Start, b.End)
	hi := math.Max(b.Start, b.End)
	p0 := int(math.Round(lo / 100 * float64(size)))
	p1 := int(math.Round(hi / 100 * float64(size)))
	if p1 > size {
		p1 = size
	}
	if p0 < 0 {
		p0 = 0
	}
	return p0, p1
}

func dimRows(img *image.NRGBA, x0, x1, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dimPixel(img, x, y)
		}
	}
}

func dimCols(img *image.NRGBA, x0, x1, y0, y1 int) {
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			dimPixel(img, x, y)
		}
	}
}

func dimPixel(img *image.NRGBA, x, y int) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = uint8(float64(img.Pix[i+0]) * gutterDim)
	img.Pix[i+1] = uint8(float64(img.Pix[i+1]) * gutterDim)
	img.Pix[i+2] = uint8(float64(img.Pix[i+2]) * gutterDim)
}

func drawHLine(img *image.NRGBA, y int, c color.NRGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetNRGBA(x, y, c)
	}
}

func drawVLine(img *image.NRGBA, x int, c color.NRGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		img.SetNRGBA(x, y, c)
	}
}

// labelCells writes "row,col" into the top-left corner of each cell band.
// Degenerate cells have no band to label, so they are naturally skipped.
func labelCells(img *image.NRGBA, lines grid.Lines) {
	b := img.Bounds()
	rects := slicer.ComputeCropRects(lines, b.Dx(), b.Dy())

	face := basicfont.Face7x13
	for _, rc := range rects {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.NRGBA{255, 255, 255, 255}),
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.I(int(rc.X) + 3),
				Y: fixed.I(int(rc.Y) + face.Ascent + 2),
			},
		}
		d.DrawString(fmt.Sprintf("%d,%d", rc.Row, rc.Col))
	}
}
