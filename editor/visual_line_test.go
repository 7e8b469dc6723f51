package editor

import (
	"fmt"
	"testing"
)

func TestVisualLine_WideGraphemeMapsAllCellsToOneCol(t *testing.T) {
	vl := BuildVisualLine("界a", 4)
	if got, want := vl.VisualLen(), 3; got != want {
		t.Fatalf("visual len: got %d, want %d", got, want)
	}
	if got, want := fmt.Sprintf("%v", vl.cellToCol), "[0 0 1]"; got != want {
		t.Fatalf("cell->col: got %s, want %s", got, want)
	}
	if got, want := vl.CellForCol(1), 2; got != want {
		t.Fatalf("col 1 cell: got %d, want %d", got, want)
	}
}

func TestVisualLine_TabExpansionDeterministic(t *testing.T) {
	vl := BuildVisualLine("a\tb", 4)
	if got, want := fmt.Sprintf("%v", vl.cellToCol), "[0 1 1 1 2]"; got != want {
		t.Fatalf("cell->col: got %s, want %s", got, want)
	}
	if got, want := vl.Tokens[1].Text, "   "; got != want {
		t.Fatalf("tab token text: got %q, want %q", got, want)
	}
}

func TestVisualLine_CombiningClusterIsOneToken(t *testing.T) {
	vl := BuildVisualLine("e\u0301x", 4)
	if got, want := len(vl.Tokens), 2; got != want {
		t.Fatalf("token count: got %d, want %d", got, want)
	}
	tok := vl.Tokens[0]
	if tok.StartCol != 0 || tok.EndCol != 2 || tok.CellWidth != 1 {
		t.Fatalf("cluster token: got %+v", tok)
	}
	if got, want := vl.RuneLen, 3; got != want {
		t.Fatalf("rune len: got %d, want %d", got, want)
	}
	// a column inside the cluster maps to the cluster's cell
	if got, want := vl.CellForCol(1), 0; got != want {
		t.Fatalf("col 1 cell: got %d, want %d", got, want)
	}
	if got, want := vl.ColForCell(99), 3; got != want {
		t.Fatalf("cell past end: got %d, want %d", got, want)
	}
}

func TestVisualLine_Empty(t *testing.T) {
	vl := BuildVisualLine("", 4)
	if vl.RuneLen != 0 || vl.VisualLen() != 0 || len(vl.Tokens) != 0 {
		t.Fatalf("empty line: got %+v", vl)
	}
	if got := vl.CellForCol(0); got != 0 {
		t.Fatalf("col 0 cell: got %d, want 0", got)
	}
}
