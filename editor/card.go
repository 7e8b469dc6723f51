package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/redline/anchor"
	"github.com/iw2rmb/redline/feedback"
)

const dismissLabel = "[ Dismiss ]"

// cardState tracks the card of the active feedback item. Rects are in
// viewport coordinates.
type cardState struct {
	id      string
	updater *anchor.Updater

	visible bool
	view    string
	rect    anchor.Rect
	ref     anchor.Rect
	button  anchor.Rect
}

// syncCard follows the active id of the feedback list: it starts an updater
// when a card opens, stops it when the card closes, and recomputes the
// placement otherwise.
func (m *Model) syncCard() {
	list := m.session.List()
	activeID := list.ActiveID()

	if activeID != m.card.id {
		m.card.updater.Stop()
		m.card = cardState{id: activeID}
		if activeID != "" {
			m.card.updater = anchor.NewUpdater(anchor.Options{
				Placement: m.cfg.Card.Placement,
				Strategy:  anchor.StrategyFixed,
				Middleware: []anchor.Middleware{
					anchor.Offset(m.cfg.Card.Offset),
					anchor.Flip(),
					anchor.Shift(m.cfg.Card.Padding),
				},
			})
		}
	}
	if activeID == "" {
		return
	}

	h, ok := list.Active()
	if !ok {
		m.hideCard()
		return
	}
	if _, ok := h.Range(); !ok {
		m.hideCard()
		return
	}

	ref, ok := m.referenceRect(h)
	if !ok {
		// scrolled out of view; the card reappears with its highlight
		m.card.visible = false
		return
	}

	view := m.renderCard(h)
	floating := anchor.Rect{W: lipgloss.Width(view), H: lipgloss.Height(view)}
	pos, ok := m.card.updater.Update(anchor.Inputs{
		Reference: ref,
		Floating:  floating,
		Boundary:  anchor.Rect{W: m.viewport.Width, H: m.visibleRowCount()},
		Scroll:    anchor.Point{Y: m.viewport.YOffset},
		Version:   m.doc.Version(),
	})
	if !ok {
		m.card.visible = false
		return
	}

	m.card.visible = true
	m.card.view = view
	m.card.ref = ref
	m.card.rect = anchor.Rect{X: pos.X, Y: pos.Y, W: floating.W, H: floating.H}
	st := m.cfg.Style.Card
	m.card.button = anchor.Rect{
		X: pos.X + st.GetBorderLeftSize() + st.GetPaddingLeft(),
		Y: pos.Y + floating.H - 1 - st.GetBorderBottomSize() - st.GetPaddingBottom(),
		W: lipgloss.Width(dismissLabel),
		H: 1,
	}
}

// hideCard closes the card without releasing the feedback behind it.
func (m *Model) hideCard() {
	m.session.List().ClearActive()
	m.card.updater.Stop()
	m.card = cardState{}
}

func (m *Model) renderCard(h *feedback.Handle) string {
	st := m.cfg.Style
	c := h.Comment
	inner := max(m.cfg.Card.Width-st.Card.GetHorizontalFrameSize(), 1)

	title := c.ErrorTag
	if title == "" {
		title = "Feedback"
	}
	lines := []string{st.CardTitle.Render(title)}
	if c.HighlightText != "" {
		change := `"` + c.HighlightText + `"`
		if c.Corrected != "" && c.Corrected != c.HighlightText {
			change += ` → "` + c.Corrected + `"`
		}
		lines = append(lines, st.CardMuted.Render(change))
	}
	if c.FeedbackExplanation != "" {
		lines = append(lines, "", c.FeedbackExplanation)
	}
	if c.FeedbackSuggestion != "" {
		lines = append(lines, "", c.FeedbackSuggestion)
	}
	// the button must stay on the last line; see syncCard
	lines = append(lines, "", st.CardButton.Render(dismissLabel))

	body := lipgloss.NewStyle().Width(inner).Render(strings.Join(lines, "\n"))
	return st.Card.Render(body)
}

// cardView composites the visible card over base, the rendered viewport.
func (m Model) cardView(base string) (string, bool) {
	if !m.card.visible || m.card.view == "" {
		return "", false
	}
	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()

	return overlay.Composite(
		m.card.view,
		base,
		overlay.Left,
		overlay.Top,
		leftFrame+m.card.rect.X,
		topFrame+m.card.rect.Y,
	), true
}
