package editor

import (
	"testing"

	"github.com/iw2rmb/redline/anchor"
	"github.com/iw2rmb/redline/document"
)

func blockCol(m Model, pos document.Pos) [2]int {
	bi, col := m.doc.BlockCol(pos)
	return [2]int{bi, col}
}

func TestHitTest_ClampsAndYOffset(t *testing.T) {
	m := New(Config{Text: "abc\ndef\nghi"})
	m = m.SetSize(10, 5)

	if got, want := blockCol(m, m.ScreenToDoc(2, 0)), [2]int{0, 2}; got != want {
		t.Fatalf("(2,0): got %v, want %v", got, want)
	}
	if got, want := blockCol(m, m.ScreenToDoc(999, 1)), [2]int{1, 3}; got != want {
		t.Fatalf("(999,1): got %v, want %v", got, want)
	}
	if got, want := blockCol(m, m.ScreenToDoc(1, 99)), [2]int{2, 1}; got != want {
		t.Fatalf("(1,99): got %v, want %v", got, want)
	}

	m.viewport.YOffset = 1
	if got, want := blockCol(m, m.ScreenToDoc(2, 0)), [2]int{1, 2}; got != want {
		t.Fatalf("(2,0) with yoffset=1: got %v, want %v", got, want)
	}
}

func TestHitTest_WrappedRows(t *testing.T) {
	m := New(Config{Text: "abcdef"})
	m = m.SetSize(3, 5)

	if got, want := blockCol(m, m.ScreenToDoc(1, 1)), [2]int{0, 4}; got != want {
		t.Fatalf("(1,1): got %v, want %v", got, want)
	}
	// Past the end of a row that continues stays on that row.
	if got, want := blockCol(m, m.ScreenToDoc(5, 0)), [2]int{0, 3}; got != want {
		t.Fatalf("(5,0): got %v, want %v", got, want)
	}

	x, y, ok := m.DocToScreen(m.doc.PosAtBlockCol(0, 4))
	if !ok || x != 1 || y != 1 {
		t.Fatalf("DocToScreen col 4: got (%d,%d,%v), want (1,1,true)", x, y, ok)
	}
}

func TestHitTest_DocToScreenOutsideViewport(t *testing.T) {
	m := New(Config{Text: "a\nb\nc\nd"})
	m = m.SetSize(10, 4)

	if _, _, ok := m.DocToScreen(m.doc.PosAtBlockCol(3, 0)); ok {
		t.Fatalf("row 3 is below a two-row viewport")
	}
	if _, _, ok := m.DocToScreen(m.doc.PosAtBlockCol(1, 0)); !ok {
		t.Fatalf("row 1 should be visible")
	}
}

func TestHitTest_DecorationAt(t *testing.T) {
	m := newMarkedModel("I has a apple", span(2, 5, ""), span(13, 13, ""))
	m = m.SetSize(40, 5)

	tests := []struct {
		x, y int
		want string
	}{
		{x: 0, y: 0, want: ""},
		{x: 2, y: 0, want: "h1"},
		{x: 4, y: 0, want: "h1"},
		{x: 5, y: 0, want: ""},
		{x: 13, y: 0, want: "h2"},
		{x: 14, y: 0, want: ""},
		{x: 2, y: 1, want: ""},
		{x: -1, y: 0, want: ""},
	}
	for _, tt := range tests {
		got, ok := m.decorationAt(tt.x, tt.y)
		if ok != (tt.want != "") || got != tt.want {
			t.Fatalf("decorationAt(%d,%d): got (%q,%v), want %q", tt.x, tt.y, got, ok, tt.want)
		}
	}
}

func TestHitTest_ReferenceRect(t *testing.T) {
	m := newMarkedModel("I has a apple.\nIt are red.", span(2, 5, ""), span(9, 17, ""), span(7, 7, ""))
	m = m.SetSize(40, 6)
	handles := m.session.list.Handles()

	tests := []struct {
		idx  int
		want anchor.Rect
	}{
		{idx: 0, want: anchor.Rect{X: 2, Y: 0, W: 3, H: 1}},
		// the insertion point sorts before the span starting at 9
		{idx: 1, want: anchor.Rect{X: 7, Y: 0, W: 1, H: 1}},
		{idx: 2, want: anchor.Rect{X: 1, Y: 0, W: 9, H: 2}},
	}
	for _, tt := range tests {
		got, ok := m.referenceRect(handles[tt.idx])
		if !ok || got != tt.want {
			t.Fatalf("handle %d: got (%+v,%v), want %+v", tt.idx, got, ok, tt.want)
		}
	}

	handles[0].Release()
	if _, ok := m.referenceRect(handles[0]); ok {
		t.Fatalf("released handle has a reference rect")
	}
}
