package server

import (
	"archive/zip"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "slicegrid-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// callTool executes a tools/call request and unmarshals the JSON text content
// into out. It fails the test on a JSON-RPC error unless wantErr is true, in
// which case it returns the error message.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}, out interface{}, wantErr bool) string {
	t.Helper()

	params, _ := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	if resp == nil {
		t.Fatalf("%s: handleRequest returned nil", name)
	}

	if wantErr {
		if resp.Error == nil {
			t.Fatalf("%s: expected error, got result", name)
		}
		return resp.Error.Message
	}
	if resp.Error != nil {
		t.Fatalf("%s: unexpected error: %s (%v)", name, resp.Error.Message, resp.Error.Data)
	}

	if out == nil {
		return ""
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	text := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		t.Fatalf("%s: failed to unmarshal result text: %v", name, err)
	}
	return ""
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	tools := resp.Result.(map[string]interface{})["tools"].([]Tool)
	if len(tools) != 11 {
		t.Errorf("got %d tools, want 11", len(tools))
	}
	for _, tool := range tools {
		if tool.Name == "" || tool.Description == "" || tool.InputSchema == nil {
			t.Errorf("tool %q has incomplete definition", tool.Name)
		}
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "bogus/method"})
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("expected -32601, got %+v", resp.Error)
	}
}

func TestImageLoad(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 120, 90, color.RGBA{255, 0, 0, 255})
	defer os.Remove(path)

	var result struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Rows   int    `json:"rows"`
		Cols   int    `json:"cols"`
		State  string `json:"state"`
	}
	callTool(t, s, "image_load", map[string]interface{}{"path": path, "rows": 2, "cols": 4}, &result, false)

	if result.Width != 120 || result.Height != 90 {
		t.Errorf("dimensions: got %dx%d, want 120x90", result.Width, result.Height)
	}
	if result.Rows != 2 || result.Cols != 4 {
		t.Errorf("grid: got %dx%d, want 2x4", result.Rows, result.Cols)
	}
	if result.State != "editing" {
		t.Errorf("state: got %q, want editing", result.State)
	}
}

func TestImageLoad_BadPath(t *testing.T) {
	s := New()
	callTool(t, s, "image_load", map[string]interface{}{"path": "/nonexistent.png"}, nil, true)
}

func TestGridTools_RequireImage(t *testing.T) {
	s := New()

	callTool(t, s, "grid_create", map[string]interface{}{"rows": 2, "cols": 2}, nil, true)
	callTool(t, s, "grid_slice", map[string]interface{}{}, nil, true)
	callTool(t, s, "grid_preview", map[string]interface{}{}, nil, true)
	callTool(t, s, "drag_begin", map[string]interface{}{"axis": "horizontal", "index": 0, "side": "start"}, nil, true)
}

func TestDragFlow(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 200, 200, color.RGBA{0, 255, 0, 255})
	defer os.Remove(path)
	callTool(t, s, "image_load", map[string]interface{}{"path": path}, nil, false)

	callTool(t, s, "drag_begin", map[string]interface{}{
		"axis": "horizontal", "index": 1, "side": "start",
	}, nil, false)

	var moved struct {
		Dragging bool `json:"dragging"`
		Lines    struct {
			Horizontal []struct {
				Start float64 `json:"start"`
				End   float64 `json:"end"`
			} `json:"horizontal"`
		} `json:"lines"`
	}
	callTool(t, s, "drag_move", map[string]interface{}{"percent": 42.5}, &moved, false)
	if !moved.Dragging {
		t.Error("dragging should be true after move")
	}
	if moved.Lines.Horizontal[1].Start != 42.5 {
		t.Errorf("boundary start: got %v, want 42.5", moved.Lines.Horizontal[1].Start)
	}

	// Surface-relative move: pointer at 3/4 of a 400px surface.
	callTool(t, s, "drag_move", map[string]interface{}{
		"pointer": 300.0, "surface_start": 0.0, "surface_size": 400.0,
	}, &moved, false)
	if moved.Lines.Horizontal[1].Start != 75 {
		t.Errorf("boundary start: got %v, want 75", moved.Lines.Horizontal[1].Start)
	}

	var ended struct {
		Dragging bool `json:"dragging"`
	}
	callTool(t, s, "drag_end", map[string]interface{}{}, &ended, false)
	if ended.Dragging {
		t.Error("dragging should be false after drag_end")
	}

	// Moves after release are rejected.
	callTool(t, s, "drag_move", map[string]interface{}{"percent": 10}, nil, true)
}

func TestGridSliceAndExport(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 300, 300, color.RGBA{0, 0, 255, 255})
	defer os.Remove(path)
	callTool(t, s, "image_load", map[string]interface{}{"path": path, "rows": 3, "cols": 3}, nil, false)

	var sliced struct {
		TileCount int    `json:"tile_count"`
		CellCount int    `json:"cell_count"`
		MimeType  string `json:"mime_type"`
		Tiles     []struct {
			Payload string `json:"payload_base64"`
			Index   int    `json:"index"`
		} `json:"tiles"`
	}
	callTool(t, s, "grid_slice", map[string]interface{}{"quality": 0.8, "output_format": "jpeg"}, &sliced, false)

	if sliced.TileCount != 9 || sliced.CellCount != 9 {
		t.Fatalf("counts: got %d/%d, want 9/9", sliced.TileCount, sliced.CellCount)
	}
	if sliced.MimeType != "image/jpeg" {
		t.Errorf("mime type: got %q, want image/jpeg", sliced.MimeType)
	}
	for i, tile := range sliced.Tiles {
		if tile.Index != i {
			t.Errorf("tile %d: index %d, want contiguous for full grid", i, tile.Index)
		}
		if tile.Payload == "" {
			t.Errorf("tile %d: empty payload", i)
		}
	}

	// Export the pass to a zip and verify the entries.
	zipPath := filepath.Join(t.TempDir(), "tiles.zip")
	var exported struct {
		EntryCount   int `json:"entry_count"`
		ArchiveBytes int `json:"archive_bytes"`
	}
	callTool(t, s, "slice_export_archive", map[string]interface{}{"path": zipPath}, &exported, false)

	if exported.EntryCount != 9 {
		t.Errorf("entry count: got %d, want 9", exported.EntryCount)
	}
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open exported archive: %v", err)
	}
	defer zr.Close()
	if len(zr.File) != 9 {
		t.Fatalf("archive has %d entries, want 9", len(zr.File))
	}
	if zr.File[0].Name != "tile-1.jpg" {
		t.Errorf("first entry: got %q, want tile-1.jpg", zr.File[0].Name)
	}
}

func TestSliceExport_WithoutPass(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 100, 100, color.White)
	defer os.Remove(path)
	callTool(t, s, "image_load", map[string]interface{}{"path": path}, nil, false)

	callTool(t, s, "slice_export_archive", map[string]interface{}{"path": "/tmp/never.zip"}, nil, true)
}

func TestSessionState(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 100, 100, color.White)
	defer os.Remove(path)
	callTool(t, s, "image_load", map[string]interface{}{"path": path}, nil, false)

	var state struct {
		State             string `json:"state"`
		NeedsRegeneration bool   `json:"needs_regeneration"`
	}
	callTool(t, s, "session_state", map[string]interface{}{}, &state, false)
	if state.State != "editing" || !state.NeedsRegeneration {
		t.Errorf("before pass: got %+v, want editing/needs-regeneration", state)
	}

	callTool(t, s, "grid_slice", map[string]interface{}{}, nil, false)
	callTool(t, s, "session_state", map[string]interface{}{}, &state, false)
	if state.NeedsRegeneration {
		t.Error("unchanged settings should not need regeneration after a pass")
	}

	callTool(t, s, "session_state", map[string]interface{}{"output_format": "png"}, &state, false)
	if !state.NeedsRegeneration {
		t.Error("format change should need regeneration")
	}
}

func TestGridPreview(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 200, 100, color.RGBA{128, 128, 128, 255})
	defer os.Remove(path)
	callTool(t, s, "image_load", map[string]interface{}{"path": path, "rows": 2, "cols": 2}, nil, false)

	var ov struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
	}
	callTool(t, s, "grid_preview", map[string]interface{}{"max_dim": 100, "show_labels": true}, &ov, false)

	if ov.Width != 100 || ov.Height != 50 {
		t.Errorf("preview size: got %dx%d, want 100x50", ov.Width, ov.Height)
	}
	if ov.MimeType != "image/png" || ov.ImageBase64 == "" {
		t.Errorf("preview payload incomplete: %+v", ov)
	}
}

func TestGridSlice_BadFormat(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 100, 100, color.White)
	defer os.Remove(path)
	callTool(t, s, "image_load", map[string]interface{}{"path": path}, nil, false)

	callTool(t, s, "grid_slice", map[string]interface{}{"output_format": "bmp"}, nil, true)
}

func TestUnknownTool(t *testing.T) {
	s := New()
	callTool(t, s, "image_levitate", map[string]interface{}{}, nil, true)
}
