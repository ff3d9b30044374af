package grid

import "fmt"

// Config is the requested grid shape.
type Config struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Clamped returns cfg with Rows and Cols raised to at least 1.
func (c Config) Clamped() Config {
	if c.Rows < 1 {
		c.Rows = 1
	}
	if c.Cols < 1 {
		c.Cols = 1
	}
	return c
}

// Format selects the output encoding for sliced tiles.
type Format string

const (
	// FormatJPEG encodes lossy JPEG at the configured quality.
	FormatJPEG Format = "jpeg"

	// FormatWebP encodes lossy WebP at the configured quality.
	FormatWebP Format = "webp"

	// FormatPNG encodes lossless PNG; the quality setting is ignored.
	FormatPNG Format = "png"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJPEG, FormatWebP, FormatPNG:
		return Format(s), nil
	case "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// Lossy reports whether the format honors the quality setting.
func (f Format) Lossy() bool { return f != FormatPNG }

// Extension returns the file extension used when naming archive entries.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// MimeType returns the MIME type for encoded payloads.
func (f Format) MimeType() string { return "image/" + string(f) }

// Quality bounds for lossy encoding. Values outside the range are clamped,
// never rejected.
const (
	MinQuality = 0.05
	MaxQuality = 0.9
)

// SliceConfig carries the per-pass encoding settings.
type SliceConfig struct {
	// Quality is the lossy encoder quality in [MinQuality, MaxQuality].
	Quality float64 `json:"quality"`

	// OptimizeResolution caps tile output at web-delivery size (1080px)
	// instead of the full 4096px ceiling.
	OptimizeResolution bool `json:"optimize_resolution"`

	// Format is the output encoding for every tile in the pass.
	Format Format `json:"output_format"`
}

// ClampedQuality returns Quality forced into [MinQuality, MaxQuality].
func (c SliceConfig) ClampedQuality() float64 {
	switch {
	case c.Quality < MinQuality:
		return MinQuality
	case c.Quality > MaxQuality:
		return MaxQuality
	default:
		return c.Quality
	}
}

// Settings pairs the grid shape with the encoding settings that produced the
// last slicing pass.
type Settings struct {
	Grid  Config
	Slice SliceConfig
}

// NeedsRegeneration reports whether a slice output produced under lastApplied
// is stale for current. It is a pure comparison; the caller decides when to
// invoke it instead of the engine tracking a dirty flag.
func NeedsRegeneration(current, lastApplied Settings) bool {
	return current != lastApplied
}
