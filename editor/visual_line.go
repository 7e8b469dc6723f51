package editor

import (
	"strings"

	"github.com/iw2rmb/redline/internal/grapheme"
)

// VisualToken is one grapheme cluster of a block as laid out in cells.
type VisualToken struct {
	// Text is the rendered text. Tabs are expanded to spaces.
	Text string

	StartCell int
	CellWidth int

	// StartCol/EndCol are the rune columns of the cluster in the block text.
	StartCol int
	EndCol   int
}

// VisualLine is the cell layout of one block before wrapping.
type VisualLine struct {
	RuneLen int
	Tokens  []VisualToken

	// cellToCol maps each cell to the starting rune column of its cluster.
	cellToCol []int
	// colToCell maps rune columns (0..RuneLen) to cells. Columns inside a
	// cluster map to the cluster's first cell.
	colToCell []int
}

func BuildVisualLine(text string, tabWidth int) VisualLine {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	bounds := grapheme.Boundaries(text)
	clusters := grapheme.Split(text)
	runeLen := bounds[len(bounds)-1]

	vl := VisualLine{
		RuneLen:   runeLen,
		Tokens:    make([]VisualToken, 0, len(clusters)),
		colToCell: make([]int, runeLen+1),
	}
	cell := 0
	for i, c := range clusters {
		w := grapheme.Width(c, cell, tabWidth)
		if w < 1 {
			w = 1
		}
		shown := c
		if c == "\t" {
			shown = strings.Repeat(" ", w)
		}
		start, end := bounds[i], bounds[i+1]
		vl.Tokens = append(vl.Tokens, VisualToken{
			Text:      shown,
			StartCell: cell,
			CellWidth: w,
			StartCol:  start,
			EndCol:    end,
		})
		for k := 0; k < w; k++ {
			vl.cellToCol = append(vl.cellToCol, start)
		}
		for col := start; col < end; col++ {
			vl.colToCell[col] = cell
		}
		cell += w
	}
	vl.colToCell[runeLen] = cell
	return vl
}

func (vl VisualLine) VisualLen() int { return len(vl.cellToCol) }

// ColForCell returns the rune column rendered at cell x. Cells past the end
// map to RuneLen.
func (vl VisualLine) ColForCell(x int) int {
	if x < 0 {
		x = 0
	}
	if x >= len(vl.cellToCol) {
		return vl.RuneLen
	}
	return vl.cellToCol[x]
}

func (vl VisualLine) CellForCol(col int) int {
	col = clampInt(col, 0, vl.RuneLen)
	if len(vl.colToCell) == 0 {
		return 0
	}
	return vl.colToCell[col]
}

// tokenAtCell returns the index of the token covering cell.
func (vl VisualLine) tokenAtCell(cell int) (int, bool) {
	for i, tok := range vl.Tokens {
		if cell >= tok.StartCell && cell < tok.StartCell+tok.CellWidth {
			return i, true
		}
	}
	return 0, false
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
