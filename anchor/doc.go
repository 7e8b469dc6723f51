// Package anchor places a floating box (a feedback card) next to a reference
// box (the highlighted text) inside a bounded viewport. Coordinates are
// terminal cells.
//
// Placement is computed by a middleware pipeline applied in order, usually
// Offset, Flip, Shift. Updater recomputes only when its inputs change and
// stops for good once the card goes away.
package anchor
