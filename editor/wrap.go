package editor

import "github.com/iw2rmb/redline/internal/grapheme"

// wrappedSegment is one screen row of a block.
type wrappedSegment struct {
	StartCol int
	EndCol   int
	Cells    int

	startCell int
	endCell   int
}

type wrapUnit struct {
	startCell int
	endCell   int
	width     int

	isWhitespace bool
}

// wrapSegments breaks vl into rows of at most width cells, preferring to
// break after whitespace. A word longer than width is broken at a cluster
// boundary. width <= 0 disables wrapping.
func wrapSegments(vl VisualLine, width int) []wrappedSegment {
	visualLen := vl.VisualLen()
	units := wrapUnitsFromVisualLine(vl)
	if width <= 0 || len(units) == 0 {
		return []wrappedSegment{{
			StartCol:  0,
			EndCol:    vl.RuneLen,
			Cells:     visualLen,
			startCell: 0,
			endCell:   visualLen,
		}}
	}

	segments := make([]wrappedSegment, 0, 1+visualLen/width)
	for start := 0; start < len(units); {
		used := 0
		overflow := start
		for overflow < len(units) {
			w := max(units[overflow].width, 1)
			if used > 0 && used+w > width {
				break
			}
			used += w
			overflow++
		}

		end := overflow
		if overflow < len(units) {
			if br, ok := findWordWrapBreak(units, start, overflow); ok {
				end = br
			}
		}
		if end <= start {
			end = min(start+1, len(units))
		}

		segments = append(segments, segmentFromUnitRange(vl, units, start, end))
		start = end
	}
	return segments
}

// wrapUnitsFromVisualLine splits expanded tabs into single cells so a tab can
// straddle a row break.
func wrapUnitsFromVisualLine(vl VisualLine) []wrapUnit {
	units := make([]wrapUnit, 0, len(vl.Tokens))
	for _, tok := range vl.Tokens {
		space := grapheme.IsSpace(tok.Text)
		if space && tok.CellWidth > 1 {
			for c := 0; c < tok.CellWidth; c++ {
				cell := tok.StartCell + c
				units = append(units, wrapUnit{startCell: cell, endCell: cell + 1, width: 1, isWhitespace: true})
			}
			continue
		}
		units = append(units, wrapUnit{
			startCell:    tok.StartCell,
			endCell:      tok.StartCell + tok.CellWidth,
			width:        tok.CellWidth,
			isWhitespace: space,
		})
	}
	return units
}

func segmentFromUnitRange(vl VisualLine, units []wrapUnit, start, end int) wrappedSegment {
	startCell := units[start].startCell
	endCell := max(units[end-1].endCell, startCell)

	startCol := vl.ColForCell(startCell)
	endCol := vl.RuneLen
	if endCell < vl.VisualLen() {
		endCol = vl.ColForCell(endCell)
	}
	return wrappedSegment{
		StartCol:  startCol,
		EndCol:    max(endCol, startCol),
		Cells:     endCell - startCell,
		startCell: startCell,
		endCell:   endCell,
	}
}

// findWordWrapBreak returns the unit index just after the last whitespace run
// inside [start, overflow).
func findWordWrapBreak(units []wrapUnit, start, overflow int) (int, bool) {
	lastBreak := -1
	i := start
	for i < overflow {
		if !units[i].isWhitespace {
			i++
			continue
		}
		j := i + 1
		for j < overflow && units[j].isWhitespace {
			j++
		}
		lastBreak = j
		i = j
	}
	if lastBreak <= start {
		return 0, false
	}
	return lastBreak, true
}
