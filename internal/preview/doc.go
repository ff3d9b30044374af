// Package preview renders the editing-surface view of a grid: the source
// image with gutter strips dimmed, boundary edges drawn as draggable lines,
// and cells labeled by position. The render is advisory output for hosts;
// slicing never reads it.
package preview
