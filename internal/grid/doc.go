// Package grid models the adjustable slicing grid as gutter boundaries.
//
// A grid with R rows and C columns is described by R+1 horizontal and C+1
// vertical boundaries. Each boundary is a pair of percentage offsets marking
// the near and far edge of an excluded gutter strip along one axis. The
// visible band that becomes a tile is the gap between one boundary's End and
// the next boundary's Start.
//
// All offsets are percentages of the corresponding image axis in [0,100],
// so a boundary set is independent of the source image's pixel dimensions.
package grid
