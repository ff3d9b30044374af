package slicer

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/slicegrid/slicegrid-mcp/internal/grid"
)

// Result is one encoded tile with its scan position.
type Result struct {
	// Payload is the encoded tile as base64.
	Payload string `json:"payload_base64"`

	// Index is the row-major scan position among attempted cells. Indices
	// are not contiguous when cells were skipped as zero-area.
	Index int `json:"index"`

	Row int `json:"row"`
	Col int `json:"col"`

	// Width and Height are the encoded tile's pixel dimensions after the
	// resolution cap.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PayloadBytes returns the decoded payload size in bytes without allocating
// the decoded payload.
func (r Result) PayloadBytes() int {
	return base64.StdEncoding.DecodedLen(len(r.Payload)) - paddingBytes(r.Payload)
}

func paddingBytes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '='; i-- {
		n++
	}
	return n
}

// Collection aggregates the tiles of one slicing pass in scan order. It is
// replaced wholesale by the next pass; there are no partial updates.
type Collection struct {
	results []Result
	format  grid.Format
}

// Results returns the tiles in row-major scan order.
func (c *Collection) Results() []Result { return c.results }

// Len returns the number of successfully encoded tiles.
func (c *Collection) Len() int { return len(c.results) }

// Format returns the output format negotiated for this pass.
func (c *Collection) Format() grid.Format { return c.format }

// TotalBytes returns the aggregate decoded payload size.
func (c *Collection) TotalBytes() int {
	total := 0
	for _, r := range c.results {
		total += r.PayloadBytes()
	}
	return total
}

// EntryName returns the archive entry name for a tile: its 1-based scan index
// plus the extension of the pass's output format.
func (c *Collection) EntryName(r Result) string {
	return fmt.Sprintf("tile-%d.%s", r.Index+1, c.format.Extension())
}

// WriteArchive packages every tile into a zip container written to w, one
// entry per tile named by EntryName. The archive is rebuilt from scratch on
// each call and no state is retained on failure, so a failed export can
// simply be retried.
func (c *Collection) WriteArchive(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, r := range c.results {
		payload, err := base64.StdEncoding.DecodeString(r.Payload)
		if err != nil {
			return fmt.Errorf("decode tile %d payload: %w", r.Index, err)
		}
		f, err := zw.Create(c.EntryName(r))
		if err != nil {
			return fmt.Errorf("create archive entry for tile %d: %w", r.Index, err)
		}
		if _, err := f.Write(payload); err != nil {
			return fmt.Errorf("write archive entry for tile %d: %w", r.Index, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

// ExportArchive returns the zip container as a byte slice.
func (c *Collection) ExportArchive() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := c.WriteArchive(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
