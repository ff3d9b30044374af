// Package source loads and caches the bitmaps the slicing engine consumes.
//
// Decoding failures stay at this boundary: the engine only ever receives an
// already-decoded image with known pixel dimensions. PNG, JPEG, GIF, and WebP
// inputs are supported.
package source
