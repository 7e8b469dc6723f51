package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/redline/anchor"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	if !m.focused {
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, cmd
	}

	p := anchor.Point{X: msg.X, Y: msg.Y}
	list := m.session.List()

	// The card sees presses anywhere on screen, chrome rows included.
	if m.card.visible {
		if m.card.button.Contains(p) {
			list.Dismiss(m.card.id)
			return m, cmd
		}
		if m.card.rect.Contains(p) {
			return m, cmd
		}
		if anchor.Outside(p, m.card.rect, m.card.ref) {
			m.hideCard()
		}
	}

	if !m.mouseInBounds(msg.X, msg.Y) {
		return m, cmd
	}

	id, onHighlight := m.decorationAt(msg.X, msg.Y)
	m.doc.SetCursor(m.ScreenToDoc(msg.X, msg.Y))
	if onHighlight {
		list.ToggleActive(id)
	}
	return m, cmd
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}
