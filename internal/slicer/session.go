package slicer

import (
	"errors"
	"image"

	"github.com/slicegrid/slicegrid-mcp/internal/drag"
	"github.com/slicegrid/slicegrid-mcp/internal/grid"
)

// State is the editing session's lifecycle phase. The three states replace
// the independently toggled image/dirty/in-progress flags this engine's
// behavior was originally described with.
type State string

const (
	// StateNoImage means no source bitmap has been loaded.
	StateNoImage State = "no_image"

	// StateEditing means an image is loaded and boundaries may be dragged
	// or sliced.
	StateEditing State = "editing"

	// StateSlicing means a slicing pass is in flight; drags and further
	// passes are rejected until it completes.
	StateSlicing State = "slicing"
)

var (
	// ErrNoImage is returned by operations that require a loaded image.
	ErrNoImage = errors.New("no image loaded")

	// ErrBusy is returned when a slicing pass is already in progress.
	ErrBusy = errors.New("slicing pass already in progress")
)

// Session owns one image's editing lifecycle: the source bitmap, the boundary
// set being edited, the drag controller bound to it, and the settings of the
// last completed pass. All state is in-memory and discarded with the session;
// nothing is persisted.
//
// Session is single-threaded by design. The encoder's scratch surface is
// mutated in place across a pass, and the Slicing state rejects re-entrant
// passes triggered by rapid repeated requests.
type Session struct {
	state   State
	img     image.Image
	gridCfg grid.Config
	lines   grid.Lines
	drag    *drag.Controller
	encoder *Encoder
	last    *grid.Settings
	lastRun *Collection
}

// NewSession returns a session in StateNoImage.
func NewSession() *Session {
	s := &Session{
		state:   StateNoImage,
		encoder: NewEncoder(),
	}
	s.drag = drag.NewController(&s.lines)
	return s
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Lines returns the boundary set currently being edited.
func (s *Session) Lines() grid.Lines { return s.lines }

// GridConfig returns the grid shape the current lines were generated from.
func (s *Session) GridConfig() grid.Config { return s.gridCfg }

// Drag returns the controller editing this session's lines.
func (s *Session) Drag() *drag.Controller { return s.drag }

// Image returns the loaded source bitmap, or nil in StateNoImage.
func (s *Session) Image() image.Image { return s.img }

// LoadImage installs a new source bitmap and regenerates default boundaries
// for cfg, discarding any prior edits and any active drag. Loading is allowed
// from every state except mid-pass.
func (s *Session) LoadImage(img image.Image, cfg grid.Config) error {
	if s.state == StateSlicing {
		return ErrBusy
	}
	s.drag.Release()
	s.img = img
	s.gridCfg = cfg.Clamped()
	s.lines = grid.NewLines(s.gridCfg)
	s.last = nil
	s.lastRun = nil
	s.state = StateEditing
	return nil
}

// SetGrid regenerates default boundaries for a new grid shape. Changing the
// shape is a full reset: prior boundary edits are discarded.
func (s *Session) SetGrid(cfg grid.Config) error {
	switch s.state {
	case StateNoImage:
		return ErrNoImage
	case StateSlicing:
		return ErrBusy
	}
	s.drag.Release()
	s.gridCfg = cfg.Clamped()
	s.lines = grid.NewLines(s.gridCfg)
	return nil
}

// Slice runs one slicing pass over the current image and boundaries. The
// pass runs to completion synchronously; the Slicing state exists so that a
// re-entrant request arriving through a callback is rejected instead of
// racing the shared scratch surface.
func (s *Session) Slice(cfg grid.SliceConfig) (*Collection, error) {
	switch s.state {
	case StateNoImage:
		return nil, ErrNoImage
	case StateSlicing:
		return nil, ErrBusy
	}
	s.state = StateSlicing
	defer func() { s.state = StateEditing }()

	col := s.encoder.Slice(s.img, s.lines, cfg)
	s.last = &grid.Settings{Grid: s.gridCfg, Slice: cfg}
	s.lastRun = col
	return col, nil
}

// LastResults returns the collection produced by the most recent pass, or nil
// if none has run since the last image or grid reset. It is replaced
// wholesale by each pass.
func (s *Session) LastResults() *Collection { return s.lastRun }

// NeedsRegeneration reports whether a pass with cfg would differ from the
// last completed pass's settings. It never inspects boundary edits; callers
// re-slice after drags on their own accord.
func (s *Session) NeedsRegeneration(cfg grid.SliceConfig) bool {
	if s.last == nil {
		return true
	}
	return grid.NeedsRegeneration(grid.Settings{Grid: s.gridCfg, Slice: cfg}, *s.last)
}
