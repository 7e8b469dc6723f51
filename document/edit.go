package document

import (
	"strings"
	"unicode/utf8"
)

// InsertText inserts text at p. Each '\n' in text splits the block. It returns
// the position just past the inserted text.
func (d *Document) InsertText(at Pos, text string) (Pos, bool) {
	text = normalizeNewlines(text)
	if d.readOnly || text == "" || !d.Valid(at) {
		return at, false
	}
	cb := d.beginChange()
	end := d.insertText(&cb, at, text)
	d.commitChange(cb)
	return end, true
}

// SplitBlock breaks the block at p. The returned position is the start of the
// new block.
func (d *Document) SplitBlock(at Pos) (Pos, bool) {
	if d.readOnly || !d.Valid(at) {
		return at, false
	}
	cb := d.beginChange()
	next := d.splitBlock(&cb, at)
	d.commitChange(cb)
	return next, true
}

// MergeBlock joins the block at index bi into its predecessor. Adjacent runs
// with equal tags become one run.
func (d *Document) MergeBlock(bi int) bool {
	if d.readOnly || bi <= 0 || bi >= len(d.blocks) {
		return false
	}
	cb := d.beginChange()
	d.mergeBlock(&cb, bi)
	d.commitChange(cb)
	return true
}

// DeleteRange removes the text covered by r. Points inside the removed text
// collapse onto its start.
func (d *Document) DeleteRange(r Range) bool {
	if d.readOnly || !d.Valid(r.Anchor) || !d.Valid(r.Focus) {
		return false
	}
	r = d.Normalize(r)
	if r.IsCollapsed() {
		return false
	}
	cb := d.beginChange()
	d.deleteRange(&cb, r.Anchor, r.Focus)
	d.commitChange(cb)
	return true
}

func (d *Document) insertText(cb *changeBuilder, at Pos, text string) Pos {
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			at = d.splitBlock(cb, at)
		}
		if part == "" {
			continue
		}
		d.applyOp(cb, InsertTextOp{Run: at.Run, Offset: at.Offset, Text: part})
		at.Offset += utf8.RuneCountInString(part)
	}
	return at
}

func (d *Document) splitBlock(cb *changeBuilder, at Pos) Pos {
	op := SplitBlockOp{
		Run:      at.Run,
		Offset:   at.Offset,
		NewRun:   d.newRunID(),
		NewBlock: d.newBlockID(),
	}
	d.applyOp(cb, op)
	return Pos{Run: op.NewRun}
}

func (d *Document) mergeBlock(cb *changeBuilder, bi int) {
	prev, cur := d.blocks[bi-1], d.blocks[bi]
	last := prev.runs[len(prev.runs)-1]
	var first *run
	if len(cur.runs) > 0 {
		first = cur.runs[0]
	}

	d.applyOp(cb, MergeBlockOp{Block: cur.id, Into: prev.id})
	if first != nil && sameTags(last.tags, first.tags) {
		d.applyOp(cb, MergeRunOp{Run: first.id, Into: last.id, Shift: len(last.text)})
	}
}

func (d *Document) deleteRange(cb *changeBuilder, start, end Pos) {
	if start.Run == end.Run {
		r, _ := d.run(start.Run)
		d.applyOp(cb, RemoveTextOp{
			Run:    start.Run,
			Offset: start.Offset,
			Text:   string(r.text[start.Offset:end.Offset]),
		})
		return
	}

	startLoc, endLoc := d.index[start.Run], d.index[end.Run]
	startBlock := d.blocks[startLoc.block].id
	endBlock := d.blocks[endLoc.block].id

	var middle []RunID
	for bi := startLoc.block; bi <= endLoc.block; bi++ {
		for _, r := range d.blocks[bi].runs {
			if seq := d.index[r.id].seq; seq > startLoc.seq && seq < endLoc.seq {
				middle = append(middle, r.id)
			}
		}
	}
	var emptied []BlockID
	for bi := startLoc.block + 1; bi < endLoc.block; bi++ {
		emptied = append(emptied, d.blocks[bi].id)
	}

	if sr, _ := d.run(start.Run); start.Offset < len(sr.text) {
		d.applyOp(cb, RemoveTextOp{Run: start.Run, Offset: start.Offset, Text: string(sr.text[start.Offset:])})
	}
	for _, id := range middle {
		d.applyOp(cb, RemoveRunOp{Run: id, Fallback: start})
	}
	if er, _ := d.run(end.Run); end.Offset > 0 {
		d.applyOp(cb, RemoveTextOp{Run: end.Run, Text: string(er.text[:end.Offset])})
	}
	for _, id := range emptied {
		d.applyOp(cb, MergeBlockOp{Block: id, Into: startBlock})
	}
	if endBlock != startBlock {
		d.applyOp(cb, MergeBlockOp{Block: endBlock, Into: startBlock})
	}

	sr, _ := d.run(start.Run)
	er, _ := d.run(end.Run)
	if sameTags(sr.tags, er.tags) {
		d.applyOp(cb, MergeRunOp{Run: end.Run, Into: start.Run, Shift: len(sr.text)})
	}
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
