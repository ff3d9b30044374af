package drag

import (
	"errors"
	"fmt"

	"github.com/slicegrid/slicegrid-mcp/internal/grid"
)

// Axis selects which boundary sequence a drag edits.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// ParseAxis maps a user-supplied axis name to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch Axis(s) {
	case AxisHorizontal, AxisVertical:
		return Axis(s), nil
	default:
		return "", fmt.Errorf("unknown axis: %q", s)
	}
}

// Side selects which scalar of a boundary a drag edits.
type Side string

const (
	SideStart Side = "start"
	SideEnd   Side = "end"
)

// ParseSide maps a user-supplied side name to a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideStart, SideEnd:
		return Side(s), nil
	default:
		return "", fmt.Errorf("unknown boundary side: %q", s)
	}
}

var (
	// ErrDragging is returned by Press while a drag is already active.
	ErrDragging = errors.New("drag already in progress")

	// ErrNotDragging is returned by operations that require an active drag.
	ErrNotDragging = errors.New("no drag in progress")
)

// capture identifies the single scalar a drag is editing.
type capture struct {
	axis  Axis
	index int
	side  Side
}

// Controller mutates one Lines value in response to pointer gestures.
// It is not safe for concurrent use; drags are driven by a single event loop.
type Controller struct {
	lines  *grid.Lines
	active *capture
	detach func()
}

// NewController returns a controller editing lines in place.
func NewController(lines *grid.Lines) *Controller {
	return &Controller{lines: lines}
}

// Dragging reports whether a boundary edge is currently captured.
func (c *Controller) Dragging() bool { return c.active != nil }

// Press captures one boundary scalar for editing. Pressing while a drag is
// already active is rejected so a stray second pointer cannot steal the
// capture mid-gesture.
func (c *Controller) Press(axis Axis, index int, side Side) error {
	if c.active != nil {
		return ErrDragging
	}
	seq := c.sequence(axis)
	if seq == nil {
		return fmt.Errorf("unknown axis: %q", axis)
	}
	if index < 0 || index >= len(seq) {
		return fmt.Errorf("boundary index %d out of range [0,%d)", index, len(seq))
	}
	if side != SideStart && side != SideEnd {
		return fmt.Errorf("unknown boundary side: %q", side)
	}
	c.active = &capture{axis: axis, index: index, side: side}
	return nil
}

// Move overwrites the captured scalar with pct clamped to [0,100]. Moves
// while idle are ignored. No ordering between Start and End is enforced, so
// a drag may invert the boundary; geometry treats that band as zero-area.
func (c *Controller) Move(pct float64) {
	if c.active == nil {
		return
	}
	seq := c.sequence(c.active.axis)
	if c.active.index >= len(seq) {
		// Lines were regenerated under an active drag; nothing to edit.
		return
	}
	pct = clamp(pct, 0, 100)
	b := &seq[c.active.index]
	if c.active.side == SideStart {
		b.Start = pct
	} else {
		b.End = pct
	}
}

// Release ends the drag unconditionally, detaching any bound pointer
// listeners. It is safe to call while idle.
func (c *Controller) Release() {
	c.active = nil
	if c.detach != nil {
		detach := c.detach
		c.detach = nil
		detach()
	}
}

func (c *Controller) sequence(axis Axis) []grid.Boundary {
	switch axis {
	case AxisHorizontal:
		return c.lines.Horizontal
	case AxisVertical:
		return c.lines.Vertical
	default:
		return nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SurfacePercent converts a pointer coordinate to a percentage of the editing
// surface's bounding box along one axis. The result is clamped to [0,100];
// a degenerate surface size yields 0.
func SurfacePercent(pointer, surfaceMin, surfaceSize float64) float64 {
	if surfaceSize <= 0 {
		return 0
	}
	return clamp((pointer-surfaceMin)/surfaceSize*100, 0, 100)
}

// PointerSource delivers pointer positions while a drag is active. Subscribe
// attaches a move handler (surface percentage on the drag's axis) and a
// release handler, and returns a cancel func that detaches both.
type PointerSource interface {
	Subscribe(move func(pct float64), release func()) (cancel func())
}

// PressBound is Press plus scoped listener acquisition: move and release
// handlers are subscribed on a successful press and detached on every exit
// path, including Release called directly by the host.
func (c *Controller) PressBound(src PointerSource, axis Axis, index int, side Side) error {
	if err := c.Press(axis, index, side); err != nil {
		return err
	}
	c.detach = src.Subscribe(c.Move, c.Release)
	return nil
}
