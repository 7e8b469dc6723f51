package editor

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/document"
)

// markStyle renders every styled cluster between visible markers so the
// output can be compared without ANSI sequences.
func markStyle() Style {
	wrap := func(l, r string) lipgloss.Style {
		return lipgloss.NewStyle().Transform(func(s string) string { return l + s + r })
	}
	return Style{
		Text:            lipgloss.NewStyle(),
		Cursor:          wrap("{", "}"),
		Highlight:       wrap("[", "]"),
		HighlightActive: wrap("(", ")"),
		Insertion:       wrap("^", ""),
	}
}

func newMarkedModel(text string, comments ...api.Comment) Model {
	m := New(Config{Text: text, Style: markStyle(), IDFunc: seqIDs()})
	if len(comments) > 0 {
		handles, _ := m.session.materializer.Materialize(m.doc, m.doc.Text(), comments)
		m.session.list.Replace(handles)
	}
	return m
}

func TestRender_Highlights(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		comments []api.Comment
		active   string
		want     string
	}{
		{
			name: "no feedback",
			text: "I has a apple.",
			want: "I has a apple.",
		},
		{
			name:     "span",
			text:     "I has a apple.",
			comments: []api.Comment{span(2, 5, "")},
			want:     "I [h][a][s] a apple.",
		},
		{
			name:     "active span",
			text:     "I has a apple.",
			comments: []api.Comment{span(2, 5, "")},
			active:   "h1",
			want:     "I (h)(a)(s) a apple.",
		},
		{
			name:     "overlap paints the later item on top",
			text:     "I has a apple.",
			comments: []api.Comment{span(0, 5, ""), span(2, 3, "")},
			active:   "h1",
			want:     "(I)( )[h](a)(s) a apple.",
		},
		{
			name:     "insertion point mid-line",
			text:     "I has a apple.",
			comments: []api.Comment{span(6, 6, "")},
			want:     "I has ^a apple.",
		},
		{
			name:     "insertion point at end of text",
			text:     "I has a apple",
			comments: []api.Comment{span(13, 13, "")},
			want:     "I has a apple^ ",
		},
		{
			name:     "span across paragraphs",
			text:     "ab\ncd",
			comments: []api.Comment{span(1, 4, "")},
			want:     "a[b]\n[c]d",
		},
		{
			name:     "span covering only the paragraph break",
			text:     "ab\ncd",
			comments: []api.Comment{span(2, 3, "")},
			want:     "ab\ncd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMarkedModel(tt.text, tt.comments...)
			if tt.active != "" {
				m.session.list.SetActive(tt.active)
			}
			m = m.Blur()

			if got := m.renderContent(); got != tt.want {
				t.Fatalf("render:\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestRender_CursorOnlyWhenFocused(t *testing.T) {
	m := newMarkedModel("ab")
	if got, want := m.renderContent(), "{a}b"; got != want {
		t.Fatalf("focused: got %q, want %q", got, want)
	}
	m = m.Blur()
	if got, want := m.renderContent(), "ab"; got != want {
		t.Fatalf("blurred: got %q, want %q", got, want)
	}
}

func TestRender_CursorWinsOverHighlight(t *testing.T) {
	m := newMarkedModel("I has a apple.", span(2, 5, ""))
	m.doc.SetCursor(m.doc.PosAtBlockCol(0, 2))

	if got, want := m.renderContent(), "I {h}[a][s] a apple."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_CursorAtEndOfLine(t *testing.T) {
	m := newMarkedModel("ab")
	m.doc.Move(document.Move{Unit: document.MoveDoc, Dir: document.DirEnd})

	if got, want := m.renderContent(), "ab{ }"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// A full row has no spare cell; the last cluster carries the cursor.
	m = m.SetSize(2, 10)
	if got, want := m.renderContent(), "a{b}"; got != want {
		t.Fatalf("full row: got %q, want %q", got, want)
	}
}

func TestRender_WrappedHighlight(t *testing.T) {
	m := newMarkedModel("I has a apple.", span(6, 13, ""))
	m = m.Blur()
	m = m.SetSize(8, 10)

	want := "I has " + "[a]" + "[ ]" + "\n" + "[a][p][p][l][e]."
	if got := m.renderContent(); got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_HighlightProducesANSI(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)

	st := markStyle()
	st.Highlight = r.NewStyle().Underline(true).Foreground(lipgloss.Color("#ff5f5f"))
	m := New(Config{Text: "I has", Style: st, IDFunc: seqIDs()})
	handles, _ := m.session.materializer.Materialize(m.doc, m.doc.Text(), []api.Comment{span(2, 5, "")})
	m.session.list.Replace(handles)
	m = m.Blur()

	got := m.renderContent()
	want := "I " + st.Highlight.Render("h") + st.Highlight.Render("a") + st.Highlight.Render("s")
	if got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
	if got == ansi.Strip(got) {
		t.Fatalf("expected ANSI sequences in %q", got)
	}
}

func TestRender_DefaultStyleKeepsText(t *testing.T) {
	m := New(Config{Text: "I has a apple.\nIt are red.", Style: DefaultStyle(), IDFunc: seqIDs()})
	handles, _ := m.session.materializer.Materialize(m.doc, m.doc.Text(), []api.Comment{span(2, 5, ""), span(18, 21, ""), span(26, 26, "")})
	m.session.list.Replace(handles)
	m.session.list.SetActive(handles[1].ID)
	m = m.Blur()

	got := ansi.Strip(m.renderContent())
	want := "I has a apple.\nIt are red. "
	if got != want {
		t.Fatalf("stripped render:\n got: %q\nwant: %q", got, want)
	}
}

func TestView_StatusAndFooter(t *testing.T) {
	m := New(Config{Text: "abc", MaxDrafts: 3})
	m = m.SetSize(80, 5)

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 5 {
		t.Fatalf("view lines: got %d, want 5", len(lines))
	}
	status := lines[3]
	if !strings.Contains(status, "Draft 1 / 3 · rule-based · 0 comments") {
		t.Fatalf("status: got %q", status)
	}
	if !strings.Contains(lines[4], "submit") {
		t.Fatalf("footer does not show help: %q", lines[4])
	}

	m.session.banner = "Something failed"
	lines = strings.Split(ansi.Strip(m.View()), "\n")
	if got := lines[len(lines)-1]; got != "Something failed" {
		t.Fatalf("footer with banner: got %q", got)
	}
}
