// Package slicer turns a source image and a gutter boundary set into encoded
// tiles.
//
// A slicing pass has three stages. Geometry converts the percentage bands
// between adjacent boundaries into float-precision crop rectangles, assigning
// row-major indices across every attempted cell, including degenerate cells
// that produce no rectangle, so tile indices may have gaps. The encoder then
// crops, resamples under a resolution cap, and encodes each rectangle
// strictly in sequence, silently dropping tiles the encoder cannot produce.
// The surviving tiles are collected in scan order and can be packaged into a
// zip archive named by 1-based tile index.
//
// Failures inside a pass are absorbed: a pass always completes with a
// best-effort subset of tiles, and only archive export surfaces an error.
package slicer
