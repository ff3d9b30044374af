package grid

// Boundary marks the near and far edge of one gutter strip along an axis,
// as percentages of that axis. Start may exceed End while the user drags an
// edge past its partner; downstream geometry treats such a band as zero-area
// rather than an error, so no ordering is enforced here.
type Boundary struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

const (
	// outerMargin is the width of the fixed strip excluded at each image edge.
	outerMargin = 1.5

	// gutterHalf is half the width of a default interior gutter.
	gutterHalf = 1.0
)

// GenerateBoundaries returns the default gutter boundaries for one axis split
// into count cells. The result has count+1 entries: a fixed outer margin at
// each image edge and a 2-unit gutter centered on every interior grid line.
// A count below 1 is treated as 1.
func GenerateBoundaries(count int) []Boundary {
	if count < 1 {
		count = 1
	}
	step := 100.0 / float64(count)

	bounds := make([]Boundary, count+1)
	for i := 0; i <= count; i++ {
		switch i {
		case 0:
			bounds[i] = Boundary{Start: 0, End: outerMargin}
		case count:
			bounds[i] = Boundary{Start: 100 - outerMargin, End: 100}
		default:
			center := float64(i) * step
			bounds[i] = Boundary{Start: center - gutterHalf, End: center + gutterHalf}
		}
	}
	return bounds
}

// Lines is the full boundary set for a grid. Index 0 is the top (or left)
// image edge; the last index is the bottom (or right) edge. Sequence order is
// positionally significant.
type Lines struct {
	Horizontal []Boundary `json:"horizontal"`
	Vertical   []Boundary `json:"vertical"`
}

// NewLines builds the default boundary set for cfg: Rows+1 horizontal and
// Cols+1 vertical boundaries.
func NewLines(cfg Config) Lines {
	cfg = cfg.Clamped()
	return Lines{
		Horizontal: GenerateBoundaries(cfg.Rows),
		Vertical:   GenerateBoundaries(cfg.Cols),
	}
}

// Rows returns the number of row bands described by the horizontal boundaries.
func (l Lines) Rows() int { return len(l.Horizontal) - 1 }

// Cols returns the number of column bands described by the vertical boundaries.
func (l Lines) Cols() int { return len(l.Vertical) - 1 }
