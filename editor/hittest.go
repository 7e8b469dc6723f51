package editor

import (
	"github.com/iw2rmb/redline/anchor"
	"github.com/iw2rmb/redline/document"
	"github.com/iw2rmb/redline/feedback"
)

// screenToBlockCol maps viewport-local coordinates to a block and a rune
// column. x and y are clamped into the document.
func (m *Model) screenToBlockCol(x, y int) (bi, col int) {
	layout := m.ensureLayout()
	bi, line, seg, ok := layout.lineAndSegmentAt(m.viewport.YOffset + y)
	if !ok {
		return 0, 0
	}
	if x <= 0 {
		return bi, seg.StartCol
	}
	if x >= seg.Cells {
		if seg.endCell >= line.visual.VisualLen() {
			return bi, line.visual.RuneLen
		}
		return bi, seg.EndCol
	}
	col = line.visual.ColForCell(seg.startCell + x)
	return bi, clampInt(col, seg.StartCol, seg.EndCol)
}

// ScreenToDoc maps viewport-local screen coordinates to a document position.
func (m Model) ScreenToDoc(x, y int) document.Pos {
	bi, col := (&m).screenToBlockCol(x, y)
	return m.doc.PosAtBlockCol(bi, col)
}

// blockColToScreen maps a caret position to viewport-local coordinates. ok is
// false when it is outside the visible rows.
func (m *Model) blockColToScreen(bi, col int) (x, y int, ok bool) {
	layout := m.ensureLayout()
	row, x, ok := layout.visualPosition(bi, col)
	if !ok {
		return 0, 0, false
	}
	y = row - m.viewport.YOffset
	if y < 0 || y >= m.visibleRowCount() {
		return x, y, false
	}
	return x, y, true
}

// DocToScreen maps a document position to viewport-local screen coordinates.
//
// ok is false when the position is outside the visible viewport content.
func (m Model) DocToScreen(pos document.Pos) (x, y int, ok bool) {
	bi, col := m.doc.BlockCol(pos)
	return (&m).blockColToScreen(bi, col)
}

// decorationAt returns the feedback id painted at viewport-local (x, y). The
// last decoration painted on a cell captures the press.
func (m *Model) decorationAt(x, y int) (string, bool) {
	if x < 0 || y < 0 || y >= m.visibleRowCount() {
		return "", false
	}
	layout := m.ensureLayout()
	visualRow := m.viewport.YOffset + y
	if visualRow >= len(layout.rows) {
		return "", false
	}
	bi, line, seg, ok := layout.lineAndSegmentAt(visualRow)
	if !ok {
		return "", false
	}

	list := m.session.List()
	decs := blockDecorations(m.doc, list.Handles(), list.ActiveID())[bi]
	if len(decs) == 0 {
		return "", false
	}

	if x < seg.Cells {
		i, ok := line.visual.tokenAtCell(seg.startCell + x)
		if !ok {
			return "", false
		}
		tok := line.visual.Tokens[i]
		if dec, ok := decorationFor(decs, tok.StartCol, tok.EndCol); ok {
			return dec.ID, true
		}
		return "", false
	}

	lastSeg := seg.endCell >= line.visual.VisualLen()
	if x == seg.Cells && lastSeg {
		if dec, ok := eolDecoration(decs, line.visual.RuneLen); ok {
			return dec.ID, true
		}
	}
	return "", false
}

// referenceRect returns the on-screen box of h's current range. A range
// spanning several rows yields the bounding box of its first and last cells.
func (m *Model) referenceRect(h *feedback.Handle) (anchor.Rect, bool) {
	r, ok := h.Range()
	if !ok {
		return anchor.Rect{}, false
	}
	sb, sc := m.doc.BlockCol(r.Anchor)
	sx, sy, sok := m.blockColToScreen(sb, sc)
	if r.IsCollapsed() {
		return anchor.Rect{X: sx, Y: sy, W: 1, H: 1}, sok
	}

	eb, ec := m.doc.BlockCol(r.Focus)
	// the last covered cluster, not the caret after it
	if ec > 0 {
		ec--
	} else if eb > sb {
		eb--
		ec = len([]rune(m.doc.BlockText(eb)))
	}
	ex, ey, eok := m.blockColToScreen(eb, ec)

	first := anchor.Rect{X: sx, Y: sy, W: 1, H: 1}
	last := anchor.Rect{X: ex, Y: ey, W: 1, H: 1}
	switch {
	case sok && eok:
		return first.Union(last), true
	case sok:
		return first, true
	case eok:
		return last, true
	}
	return anchor.Rect{}, false
}
