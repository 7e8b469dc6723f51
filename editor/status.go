package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) statusView() string {
	s := m.session
	parts := []string{
		fmt.Sprintf("Draft %d / %d", min(s.Draft(), s.MaxDrafts()), s.MaxDrafts()),
		string(s.SystemChoice()),
	}
	if n := s.List().Len(); n == 1 {
		parts = append(parts, "1 comment")
	} else {
		parts = append(parts, fmt.Sprintf("%d comments", n))
	}
	if s.Loading() {
		parts = append(parts, "Submitting…")
	}

	line := " " + strings.Join(parts, " · ")
	st := m.cfg.Style.Status
	if m.width > 0 {
		st = st.Width(m.width).MaxWidth(m.width)
	}
	return st.Render(line)
}

func (m Model) footerView() string {
	if banner := m.session.Banner(); banner != "" {
		st := m.cfg.Style.StatusError
		if m.width > 0 {
			st = st.MaxWidth(m.width)
		}
		return st.Render(banner)
	}
	view := m.help.View(m.cfg.KeyMap)
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view
}
