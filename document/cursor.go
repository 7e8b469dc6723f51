package document

import (
	"strings"

	"github.com/iw2rmb/redline/internal/grapheme"
)

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveBlock
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // block start (or doc start for MoveDoc)
	DirEnd  // block end (or doc end for MoveDoc)
)

type Move struct {
	Unit MoveUnit
	Dir  MoveDir
}

// SetCursor moves the cursor to p, clamped into the document.
func (d *Document) SetCursor(p Pos) {
	next := d.clampPos(p)
	if next == d.cursor {
		return
	}
	d.cursor = next
	d.version++
}

func (d *Document) Move(m Move) {
	next := d.moveCursor(d.cursor, m)
	d.SetCursor(next)
}

// BlockText returns the runs of block bi concatenated as they are displayed:
// inline, without the separator newlines Flatten inserts between runs.
func (d *Document) BlockText(bi int) string {
	if bi < 0 || bi >= len(d.blocks) {
		return ""
	}
	var sb strings.Builder
	for _, r := range d.blocks[bi].runs {
		sb.WriteString(string(r.text))
	}
	return sb.String()
}

// BlockCol returns the block index of p and its rune column within the
// displayed block text.
func (d *Document) BlockCol(p Pos) (bi, col int) {
	loc, ok := d.index[p.Run]
	if !ok {
		return 0, 0
	}
	for _, r := range d.blocks[loc.block].runs[:loc.index] {
		col += len(r.text)
	}
	r := d.blocks[loc.block].runs[loc.index]
	return loc.block, col + clampInt(p.Offset, 0, len(r.text))
}

// PosAtBlockCol maps a displayed column of block bi to a position. A column on
// a run boundary resolves to the end of the earlier run.
func (d *Document) PosAtBlockCol(bi, col int) Pos {
	bi = clampInt(bi, 0, len(d.blocks)-1)
	b := d.blocks[bi]
	if col < 0 {
		col = 0
	}
	var last *run
	for _, r := range b.runs {
		if col <= len(r.text) {
			return Pos{Run: r.id, Offset: col}
		}
		col -= len(r.text)
		last = r
	}
	return Pos{Run: last.id, Offset: len(last.text)}
}

// posAfterBlockCol is PosAtBlockCol with the opposite tie-break: a column on
// a run boundary resolves to the start of the later non-empty run.
func (d *Document) posAfterBlockCol(bi, col int) Pos {
	b := d.blocks[bi]
	var last *run
	for _, r := range b.runs {
		if col < len(r.text) {
			return Pos{Run: r.id, Offset: col}
		}
		col -= len(r.text)
		last = r
	}
	return Pos{Run: last.id, Offset: len(last.text)}
}

// InsertAtCursor inserts text at the cursor and moves the cursor past it.
func (d *Document) InsertAtCursor(text string) bool {
	text = normalizeNewlines(text)
	if d.readOnly || text == "" {
		return false
	}
	cb := d.beginChange()
	d.cursor = d.insertText(&cb, d.cursor, text)
	d.commitChange(cb)
	return true
}

// InsertNewline splits the block at the cursor.
func (d *Document) InsertNewline() bool {
	return d.InsertAtCursor("\n")
}

// DeleteBackward applies backspace semantics.
func (d *Document) DeleteBackward() bool {
	if d.readOnly {
		return false
	}
	bi, col := d.BlockCol(d.cursor)
	if col == 0 {
		if bi == 0 {
			return false
		}
		prevLen := len([]rune(d.BlockText(bi - 1)))
		cb := d.beginChange()
		d.mergeBlock(&cb, bi)
		d.cursor = d.PosAtBlockCol(bi-1, prevLen)
		d.commitChange(cb)
		return true
	}

	text := d.BlockText(bi)
	from := grapheme.Prev(text, col)
	cb := d.beginChange()
	d.deleteRange(&cb, d.posAfterBlockCol(bi, from), d.PosAtBlockCol(bi, col))
	d.cursor = d.PosAtBlockCol(bi, from)
	d.commitChange(cb)
	return true
}

// DeleteForward applies delete-key semantics.
func (d *Document) DeleteForward() bool {
	if d.readOnly {
		return false
	}
	bi, col := d.BlockCol(d.cursor)
	text := d.BlockText(bi)
	n := len([]rune(text))
	if col >= n {
		if bi >= len(d.blocks)-1 {
			return false
		}
		cb := d.beginChange()
		d.mergeBlock(&cb, bi+1)
		d.cursor = d.PosAtBlockCol(bi, col)
		d.commitChange(cb)
		return true
	}

	to := grapheme.Next(text, col)
	cb := d.beginChange()
	d.deleteRange(&cb, d.posAfterBlockCol(bi, col), d.PosAtBlockCol(bi, to))
	d.cursor = d.PosAtBlockCol(bi, col)
	d.commitChange(cb)
	return true
}

func (d *Document) moveCursor(p Pos, m Move) Pos {
	bi, col := d.BlockCol(p)
	text := d.BlockText(bi)
	n := len([]rune(text))

	switch m.Unit {
	case MoveGrapheme:
		switch m.Dir {
		case DirLeft:
			if col > 0 {
				return d.PosAtBlockCol(bi, grapheme.Prev(text, col))
			}
			if bi > 0 {
				return d.PosAtBlockCol(bi-1, len([]rune(d.BlockText(bi-1))))
			}
		case DirRight:
			if col < n {
				return d.PosAtBlockCol(bi, grapheme.Next(text, col))
			}
			if bi < len(d.blocks)-1 {
				return d.PosAtBlockCol(bi+1, 0)
			}
		case DirUp, DirDown:
			return d.moveCursor(p, Move{Unit: MoveBlock, Dir: m.Dir})
		case DirHome, DirEnd:
			return d.moveCursor(p, Move{Unit: MoveBlock, Dir: m.Dir})
		}
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			if col == 0 {
				return d.moveCursor(p, Move{Unit: MoveGrapheme, Dir: DirLeft})
			}
			return d.PosAtBlockCol(bi, wordLeft(text, col))
		case DirRight:
			if col >= n {
				return d.moveCursor(p, Move{Unit: MoveGrapheme, Dir: DirRight})
			}
			return d.PosAtBlockCol(bi, wordRight(text, col))
		}
	case MoveBlock:
		switch m.Dir {
		case DirUp:
			if bi > 0 {
				return d.PosAtBlockCol(bi-1, min(col, len([]rune(d.BlockText(bi-1)))))
			}
			return d.PosAtBlockCol(0, 0)
		case DirDown:
			if bi < len(d.blocks)-1 {
				return d.PosAtBlockCol(bi+1, min(col, len([]rune(d.BlockText(bi+1)))))
			}
			return d.PosAtBlockCol(bi, n)
		case DirHome:
			return d.PosAtBlockCol(bi, 0)
		case DirEnd:
			return d.PosAtBlockCol(bi, n)
		}
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirUp, DirLeft:
			return d.FirstPos()
		case DirEnd, DirDown, DirRight:
			return d.LastPos()
		}
	}
	return p
}

// wordLeft skips whitespace then one word (or punctuation run) backwards.
func wordLeft(text string, col int) int {
	clusters := grapheme.Split(text)
	bounds := grapheme.Boundaries(text)
	i := clusterIndex(bounds, col)
	for i > 0 && grapheme.IsSpace(clusters[i-1]) {
		i--
	}
	if i > 0 {
		punct := grapheme.IsPunct(clusters[i-1])
		for i > 0 && !grapheme.IsSpace(clusters[i-1]) && grapheme.IsPunct(clusters[i-1]) == punct {
			i--
		}
	}
	return bounds[i]
}

// wordRight skips one word (or punctuation run) then whitespace forwards.
func wordRight(text string, col int) int {
	clusters := grapheme.Split(text)
	bounds := grapheme.Boundaries(text)
	i := clusterIndex(bounds, col)
	if i < len(clusters) && !grapheme.IsSpace(clusters[i]) {
		punct := grapheme.IsPunct(clusters[i])
		for i < len(clusters) && !grapheme.IsSpace(clusters[i]) && grapheme.IsPunct(clusters[i]) == punct {
			i++
		}
	}
	for i < len(clusters) && grapheme.IsSpace(clusters[i]) {
		i++
	}
	return bounds[i]
}

func clusterIndex(bounds []int, col int) int {
	for i, b := range bounds {
		if b >= col {
			return i
		}
	}
	return len(bounds) - 1
}
