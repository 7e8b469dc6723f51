package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Text   lipgloss.Style
	Cursor lipgloss.Style

	// Highlight paints feedback spans; HighlightActive the one whose card is
	// open. Insertion paints the cell at a zero-length feedback span.
	Highlight       lipgloss.Style
	HighlightActive lipgloss.Style
	Insertion       lipgloss.Style

	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	CardMuted  lipgloss.Style
	CardButton lipgloss.Style

	Status      lipgloss.Style
	StatusError lipgloss.Style
}

func DefaultStyle() Style {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return Style{
		Text:            lipgloss.NewStyle(),
		Cursor:          lipgloss.NewStyle().Reverse(true),
		Highlight:       lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("203")),
		HighlightActive: lipgloss.NewStyle().Background(lipgloss.Color("52")).Foreground(lipgloss.Color("217")).Underline(true),
		Insertion:       lipgloss.NewStyle().Background(lipgloss.Color("203")),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		CardTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		CardMuted:  muted,
		CardButton: lipgloss.NewStyle().Reverse(true),

		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}
