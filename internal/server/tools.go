package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session and grid
		{
			Name:        "image_load",
			Description: "Load a source image and start an editing session with a fresh default grid. Any prior boundary edits are discarded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, GIF, or WebP)",
					},
					"rows": map[string]interface{}{
						"type":        "integer",
						"description": "Grid rows. Default 3",
						"default":     3,
					},
					"cols": map[string]interface{}{
						"type":        "integer",
						"description": "Grid columns. Default 3",
						"default":     3,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_create",
			Description: "Regenerate default boundaries for a new grid shape. This is a full reset: prior boundary edits are discarded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rows": map[string]interface{}{
						"type":        "integer",
						"description": "Grid rows (minimum 1)",
					},
					"cols": map[string]interface{}{
						"type":        "integer",
						"description": "Grid columns (minimum 1)",
					},
				},
				"required": []string{"rows", "cols"},
			},
		},
		{
			Name:        "grid_lines",
			Description: "Get the current boundary set. Each boundary is a start/end percentage pair marking a gutter; index 0 is the top/left image edge.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "session_state",
			Description: "Get the session lifecycle state and whether a slicing pass with the given settings would differ from the last one.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"quality": map[string]interface{}{
						"type":        "number",
						"description": "Candidate lossy quality in [0.05, 0.9]. Default 0.8",
						"default":     0.8,
					},
					"optimize_resolution": map[string]interface{}{
						"type":        "boolean",
						"description": "Candidate resolution cap policy. Default false",
						"default":     false,
					},
					"output_format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"jpeg", "webp", "png"},
						"description": "Candidate output format. Default jpeg",
						"default":     "jpeg",
					},
				},
			},
		},

		// Boundary editing
		{
			Name:        "drag_begin",
			Description: "Capture one boundary edge scalar for dragging. Only that scalar will change until drag_end.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"axis": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Which boundary sequence to edit",
					},
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Boundary index within the sequence (0-based)",
					},
					"side": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"start", "end"},
						"description": "Which scalar of the boundary to capture",
					},
				},
				"required": []string{"axis", "index", "side"},
			},
		},
		{
			Name:        "drag_move",
			Description: "Overwrite the captured scalar with a pointer position. Provide either percent directly, or pointer plus the editing surface's origin and size on the drag's axis.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"percent": map[string]interface{}{
						"type":        "number",
						"description": "Position as a percentage of the image axis; clamped to [0,100]",
					},
					"pointer": map[string]interface{}{
						"type":        "number",
						"description": "Pointer coordinate in surface units (used with surface_start and surface_size)",
					},
					"surface_start": map[string]interface{}{
						"type":        "number",
						"description": "Editing surface origin on the drag's axis",
					},
					"surface_size": map[string]interface{}{
						"type":        "number",
						"description": "Editing surface extent on the drag's axis",
					},
				},
			},
		},
		{
			Name:        "drag_end",
			Description: "Release the captured boundary edge. Always succeeds, regardless of pointer position.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Output
		{
			Name:        "grid_preview",
			Description: "Render the editing surface: source image with gutter strips dimmed, boundary edges drawn, and optional cell labels. Returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Boundary edge color as #RRGGBB. Default #FF3B30",
					},
					"show_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw row,col labels in each cell. Default false",
					},
					"max_dim": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale the preview so neither dimension exceeds this. 0 renders at source size",
					},
				},
			},
		},
		{
			Name:        "grid_slice",
			Description: "Run a slicing pass: crop every cell band, resample under the resolution cap, and encode. Zero-area cells are skipped but still consume an index, so tile indices may have gaps.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"quality": map[string]interface{}{
						"type":        "number",
						"description": "Lossy quality in [0.05, 0.9]; ignored for png. Default 0.8",
						"default":     0.8,
					},
					"optimize_resolution": map[string]interface{}{
						"type":        "boolean",
						"description": "Cap tiles at 1080px instead of 4096px. Default false",
						"default":     false,
					},
					"output_format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"jpeg", "webp", "png"},
						"description": "Tile encoding. Default jpeg",
						"default":     "jpeg",
					},
				},
			},
		},
		{
			Name:        "slice_export_archive",
			Description: "Write the last slicing pass's tiles to a zip file, one entry per tile named tile-<n>.<ext> by 1-based scan index.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path for the zip file to create",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
