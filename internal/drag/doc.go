// Package drag translates pointer gestures into grid boundary edits.
//
// The controller is a two-state machine: idle, or dragging exactly one scalar
// (the Start or End of one Boundary on one axis). A press captures the
// scalar, every move overwrites it with the clamped pointer position, and a
// release returns to idle unconditionally. All other boundaries, and the
// untouched side of the captured boundary, are never modified.
//
// Hosts with their own event loop can attach via PointerSource so move and
// release handlers exist only for the lifetime of a drag.
package drag
