package server

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/slicegrid/slicegrid-mcp/internal/drag"
	"github.com/slicegrid/slicegrid-mcp/internal/grid"
	"github.com/slicegrid/slicegrid-mcp/internal/preview"
	"github.com/slicegrid/slicegrid-mcp/internal/slicer"
	"github.com/slicegrid/slicegrid-mcp/internal/source"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "grid_slice").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session and grid
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "grid_create":
		return s.handleGridCreate(args)
	case "grid_lines":
		return s.handleGridLines()
	case "session_state":
		return s.handleSessionState(args)

	// Boundary editing
	case "drag_begin":
		return s.handleDragBegin(args)
	case "drag_move":
		return s.handleDragMove(args)
	case "drag_end":
		return s.handleDragEnd()

	// Output
	case "grid_preview":
		return s.handleGridPreview(args)
	case "grid_slice":
		return s.handleGridSlice(args)
	case "slice_export_archive":
		return s.handleSliceExportArchive(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Session and Grid Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

type imageLoadResult struct {
	*source.Info
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	State slicer.State `json:"state"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	a := imageLoadArgs{Rows: 3, Cols: 3}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, info, err := source.LoadInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}

	cfg := grid.Config{Rows: a.Rows, Cols: a.Cols}.Clamped()
	if err := s.session.LoadImage(img, cfg); err != nil {
		return nil, err
	}

	return &imageLoadResult{
		Info:  info,
		Rows:  cfg.Rows,
		Cols:  cfg.Cols,
		State: s.session.State(),
	}, nil
}

type imageDimensionsArgs struct {
	Path string `json:"path"`
}

type imageDimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &imageDimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
}

type gridCreateArgs struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (s *Server) handleGridCreate(args json.RawMessage) (interface{}, error) {
	var a gridCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.SetGrid(grid.Config{Rows: a.Rows, Cols: a.Cols}); err != nil {
		return nil, err
	}
	return s.handleGridLines()
}

type gridLinesResult struct {
	Lines grid.Lines   `json:"lines"`
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	State slicer.State `json:"state"`
}

func (s *Server) handleGridLines() (interface{}, error) {
	lines := s.session.Lines()
	return &gridLinesResult{
		Lines: lines,
		Rows:  lines.Rows(),
		Cols:  lines.Cols(),
		State: s.session.State(),
	}, nil
}

type sliceConfigArgs struct {
	Quality            float64 `json:"quality"`
	OptimizeResolution bool    `json:"optimize_resolution"`
	OutputFormat       string  `json:"output_format"`
}

// sliceConfig applies defaults and parses the format.
func (a sliceConfigArgs) sliceConfig() (grid.SliceConfig, error) {
	if a.Quality == 0 {
		a.Quality = 0.8
	}
	if a.OutputFormat == "" {
		a.OutputFormat = string(grid.FormatJPEG)
	}
	format, err := grid.ParseFormat(a.OutputFormat)
	if err != nil {
		return grid.SliceConfig{}, err
	}
	return grid.SliceConfig{
		Quality:            a.Quality,
		OptimizeResolution: a.OptimizeResolution,
		Format:             format,
	}, nil
}

type sessionStateResult struct {
	State             slicer.State `json:"state"`
	NeedsRegeneration bool         `json:"needs_regeneration"`
}

func (s *Server) handleSessionState(args json.RawMessage) (interface{}, error) {
	var a sliceConfigArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	cfg, err := a.sliceConfig()
	if err != nil {
		return nil, err
	}
	return &sessionStateResult{
		State:             s.session.State(),
		NeedsRegeneration: s.session.NeedsRegeneration(cfg),
	}, nil
}

// === Boundary Editing Handlers ===

type dragBeginArgs struct {
	Axis  string `json:"axis"`
	Index int    `json:"index"`
	Side  string `json:"side"`
}

type dragStateResult struct {
	Dragging bool       `json:"dragging"`
	Lines    grid.Lines `json:"lines"`
}

func (s *Server) handleDragBegin(args json.RawMessage) (interface{}, error) {
	var a dragBeginArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.session.State() == slicer.StateNoImage {
		return nil, slicer.ErrNoImage
	}

	axis, err := drag.ParseAxis(a.Axis)
	if err != nil {
		return nil, err
	}
	side, err := drag.ParseSide(a.Side)
	if err != nil {
		return nil, err
	}
	if err := s.session.Drag().Press(axis, a.Index, side); err != nil {
		return nil, err
	}
	return &dragStateResult{Dragging: true, Lines: s.session.Lines()}, nil
}

type dragMoveArgs struct {
	Percent      *float64 `json:"percent"`
	Pointer      float64  `json:"pointer"`
	SurfaceStart float64  `json:"surface_start"`
	SurfaceSize  float64  `json:"surface_size"`
}

func (s *Server) handleDragMove(args json.RawMessage) (interface{}, error) {
	var a dragMoveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if !s.session.Drag().Dragging() {
		return nil, drag.ErrNotDragging
	}

	var pct float64
	switch {
	case a.Percent != nil:
		pct = *a.Percent
	case a.SurfaceSize > 0:
		pct = drag.SurfacePercent(a.Pointer, a.SurfaceStart, a.SurfaceSize)
	default:
		return nil, fmt.Errorf("drag_move requires percent, or pointer with surface_size")
	}

	s.session.Drag().Move(pct)
	return &dragStateResult{Dragging: true, Lines: s.session.Lines()}, nil
}

func (s *Server) handleDragEnd() (interface{}, error) {
	s.session.Drag().Release()
	return &dragStateResult{Dragging: false, Lines: s.session.Lines()}, nil
}

// === Output Handlers ===

type gridPreviewArgs struct {
	LineColor  string `json:"line_color"`
	ShowLabels bool   `json:"show_labels"`
	MaxDim     int    `json:"max_dim"`
}

func (s *Server) handleGridPreview(args json.RawMessage) (interface{}, error) {
	var a gridPreviewArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if s.session.State() == slicer.StateNoImage {
		return nil, slicer.ErrNoImage
	}

	return preview.Render(s.session.Image(), s.session.Lines(), preview.Options{
		LineColor:  a.LineColor,
		ShowLabels: a.ShowLabels,
		MaxDim:     a.MaxDim,
	})
}

type gridSliceResult struct {
	Tiles      []slicer.Result `json:"tiles"`
	TileCount  int             `json:"tile_count"`
	CellCount  int             `json:"cell_count"`
	TotalBytes int             `json:"total_bytes"`
	MimeType   string          `json:"mime_type"`
}

func (s *Server) handleGridSlice(args json.RawMessage) (interface{}, error) {
	var a sliceConfigArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	cfg, err := a.sliceConfig()
	if err != nil {
		return nil, err
	}

	col, err := s.session.Slice(cfg)
	if err != nil {
		return nil, err
	}

	lines := s.session.Lines()
	return &gridSliceResult{
		Tiles:      col.Results(),
		TileCount:  col.Len(),
		CellCount:  lines.Rows() * lines.Cols(),
		TotalBytes: col.TotalBytes(),
		MimeType:   col.Format().MimeType(),
	}, nil
}

type sliceExportArgs struct {
	Path string `json:"path"`
}

type sliceExportResult struct {
	Path         string `json:"path"`
	EntryCount   int    `json:"entry_count"`
	ArchiveBytes int    `json:"archive_bytes"`
}

func (s *Server) handleSliceExportArchive(args json.RawMessage) (interface{}, error) {
	var a sliceExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	col := s.session.LastResults()
	if col == nil {
		return nil, fmt.Errorf("no slicing pass has run; call grid_slice first")
	}

	data, err := col.ExportArchive()
	if err != nil {
		return nil, fmt.Errorf("build archive: %w", err)
	}
	if err := os.WriteFile(a.Path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write archive: %w", err)
	}

	return &sliceExportResult{
		Path:         a.Path,
		EntryCount:   col.Len(),
		ArchiveBytes: len(data),
	}, nil
}
