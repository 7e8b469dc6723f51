// Package document implements the block/run document model for redline.
//
// A document is an ordered list of blocks; each block is an ordered list of
// text runs. Positions are (run, rune offset) pairs and stay meaningful across
// edits: every edit is expressed as primitive ops, and each op transforms the
// cursor and every live RangeRef before it mutates the tree.
//
// The flattened plain-text view joins runs within a block with '\n' and blocks
// with '\n'. Flat offsets are rune indices into that view.
package document
