package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) renderContent() string {
	layout := m.ensureLayout()
	list := m.session.List()
	decs := blockDecorations(m.doc, list.Handles(), list.ActiveID())

	cursorBlock, cursorCol := m.doc.BlockCol(m.doc.Cursor())
	hasCursor := m.focused

	out := make([]string, 0, len(layout.rows))
	for _, ref := range layout.rows {
		line := layout.lines[ref.block]
		seg := line.segments[ref.segment]
		last := ref.segment == len(line.segments)-1

		col := -1
		if hasCursor && ref.block == cursorBlock {
			col = cursorCol
		}
		out = append(out, m.renderSegment(line.visual, seg, last, col, decs[ref.block]))
	}
	return strings.Join(out, "\n")
}

// renderSegment renders one wrapped row. cursorCol is -1 when the cursor is
// not on this block.
func (m *Model) renderSegment(vl VisualLine, seg wrappedSegment, last bool, cursorCol int, decs []blockDecoration) string {
	st := m.cfg.Style
	width := m.viewport.Width

	// The end-of-line cell holds the cursor or an insertion point at the end
	// of the block. When the row is full it is drawn on the last cluster.
	eolCursor := last && cursorCol == vl.RuneLen
	eolPoint, hasEOLPoint := eolDecoration(decs, vl.RuneLen)
	hasEOLPoint = hasEOLPoint && last
	eolFits := width <= 0 || seg.Cells < width

	lastTok := -1
	for i, tok := range vl.Tokens {
		if tok.StartCell >= seg.startCell && tok.StartCell < seg.endCell {
			lastTok = i
		}
	}

	var sb strings.Builder
	for i, tok := range vl.Tokens {
		spanL := max(tok.StartCell, seg.startCell)
		spanR := min(tok.StartCell+tok.CellWidth, seg.endCell)
		if spanL >= spanR {
			continue
		}

		style := st.Text
		if dec, ok := decorationFor(decs, tok.StartCol, tok.EndCol); ok {
			style = m.decorationStyle(dec).Inherit(st.Text)
		}
		if i == lastTok && !eolFits {
			if hasEOLPoint {
				style = m.decorationStyle(eolPoint).Inherit(st.Text)
			}
			if eolCursor {
				style = st.Cursor
			}
		}
		if cursorCol >= tok.StartCol && cursorCol < tok.EndCol {
			style = st.Cursor
		}

		text := tok.Text
		if spanR-spanL != tok.CellWidth {
			// part of an expanded tab
			text = strings.Repeat(" ", spanR-spanL)
		}
		sb.WriteString(style.Render(text))
	}

	if eolFits {
		switch {
		case eolCursor:
			sb.WriteString(st.Cursor.Render(" "))
		case hasEOLPoint:
			sb.WriteString(m.decorationStyle(eolPoint).Render(" "))
		}
	}
	return sb.String()
}

func (m *Model) decorationStyle(dec blockDecoration) lipgloss.Style {
	st := m.cfg.Style
	switch {
	case dec.Point:
		return st.Insertion
	case dec.Active:
		return st.HighlightActive
	default:
		return st.Highlight
	}
}
