package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/redline/document"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.doc.InsertAtCursor(string(msg.Runes))
		return m, nil
	}

	km := m.cfg.KeyMap
	list := m.session.List()

	switch {
	case key.Matches(msg, km.Submit):
		m.hideCard()
		return m, m.session.Submit(m.doc)
	case key.Matches(msg, km.Dismiss):
		if id := list.ActiveID(); id != "" {
			list.Dismiss(id)
		}
	case key.Matches(msg, km.NextFeedback):
		m.cycleFeedback(false)
	case key.Matches(msg, km.PrevFeedback):
		m.cycleFeedback(true)
	case key.Matches(msg, km.HideCard):
		m.hideCard()
	case key.Matches(msg, km.ToggleSystem):
		m.session.ToggleSystem()

	case key.Matches(msg, km.Left):
		m.doc.Move(document.Move{Unit: document.MoveGrapheme, Dir: document.DirLeft})
	case key.Matches(msg, km.Right):
		m.doc.Move(document.Move{Unit: document.MoveGrapheme, Dir: document.DirRight})
	case key.Matches(msg, km.Up):
		m.moveVisualRow(-1)
	case key.Matches(msg, km.Down):
		m.moveVisualRow(1)
	case key.Matches(msg, km.WordLeft):
		m.doc.Move(document.Move{Unit: document.MoveWord, Dir: document.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.doc.Move(document.Move{Unit: document.MoveWord, Dir: document.DirRight})
	case key.Matches(msg, km.Home):
		m.doc.Move(document.Move{Unit: document.MoveBlock, Dir: document.DirHome})
	case key.Matches(msg, km.End):
		m.doc.Move(document.Move{Unit: document.MoveBlock, Dir: document.DirEnd})
	case key.Matches(msg, km.DocStart):
		m.doc.Move(document.Move{Unit: document.MoveDoc, Dir: document.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.doc.Move(document.Move{Unit: document.MoveDoc, Dir: document.DirEnd})

	case key.Matches(msg, km.Backspace):
		m.doc.DeleteBackward()
	case key.Matches(msg, km.Delete):
		m.doc.DeleteForward()
	case key.Matches(msg, km.Enter):
		m.doc.InsertNewline()

	default:
		if msg.Type == tea.KeyTab {
			m.doc.InsertAtCursor("\t")
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.doc.InsertAtCursor(string(msg.Runes))
		}
	}
	return m, nil
}

// cycleFeedback opens the card of the next (or previous) feedback item and
// moves the cursor to its start.
func (m *Model) cycleFeedback(back bool) {
	list := m.session.List()
	h, ok := list.Next(list.ActiveID(), back)
	if !ok {
		return
	}
	list.SetActive(h.ID)
	if r, ok := h.Range(); ok {
		m.doc.SetCursor(r.Anchor)
	}
}

// moveVisualRow moves the cursor dy wrapped rows, keeping its cell column.
func (m *Model) moveVisualRow(dy int) {
	layout := m.ensureLayout()
	bi, col := m.doc.BlockCol(m.doc.Cursor())
	row, x, ok := layout.visualPosition(bi, col)
	if !ok {
		return
	}
	target := row + dy
	switch {
	case target < 0:
		m.doc.Move(document.Move{Unit: document.MoveDoc, Dir: document.DirHome})
		return
	case target >= len(layout.rows):
		m.doc.Move(document.Move{Unit: document.MoveDoc, Dir: document.DirEnd})
		return
	}

	tbi, line, seg, _ := layout.lineAndSegmentAt(target)
	var tcol int
	switch {
	case x < seg.Cells:
		tcol = line.visual.ColForCell(seg.startCell + x)
	case seg.endCell >= line.visual.VisualLen():
		tcol = line.visual.RuneLen
	default:
		// stay on the target row rather than its successor
		tcol = line.visual.ColForCell(seg.endCell - 1)
	}
	m.doc.SetCursor(m.doc.PosAtBlockCol(tbi, tcol))
}
