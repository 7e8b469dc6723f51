package editor

import (
	"github.com/iw2rmb/redline/document"
	"github.com/iw2rmb/redline/feedback"
)

// blockDecoration is a feedback decoration in block columns.
type blockDecoration struct {
	ID     string
	Start  int
	End    int
	Active bool
	// Point marks an insertion point: the cell at Start is marked.
	Point bool
}

// blockDecorations lifts the per-run decorations of the current feedback list
// into block columns, one slice per block in handle order within each run.
func blockDecorations(d *document.Document, handles []*feedback.Handle, activeID string) [][]blockDecoration {
	out := make([][]blockDecoration, d.BlockCount())
	if len(handles) == 0 {
		return out
	}
	byRun := feedback.DecorateDocument(d, handles, activeID)
	for bi, b := range d.Blocks() {
		base := 0
		for _, r := range b.Runs {
			for _, dec := range byRun[r.ID] {
				out[bi] = append(out[bi], blockDecoration{
					ID:     dec.RangeID,
					Start:  base + dec.LocalStart,
					End:    base + dec.LocalEnd,
					Active: dec.IsActive,
					Point:  dec.Collapsed(),
				})
			}
			base += r.Len()
		}
	}
	return out
}

// decorationFor returns the decoration painted on a cluster spanning
// [start, end). Later decorations win. An insertion point paints the cluster
// that starts at it.
func decorationFor(decs []blockDecoration, start, end int) (blockDecoration, bool) {
	for i := len(decs) - 1; i >= 0; i-- {
		dec := decs[i]
		if dec.Point {
			if dec.Start == start {
				return dec, true
			}
			continue
		}
		if dec.Start < end && dec.End > start {
			return dec, true
		}
	}
	return blockDecoration{}, false
}

// eolDecoration returns the insertion point sitting at the end of a block of
// length runeLen, if any.
func eolDecoration(decs []blockDecoration, runeLen int) (blockDecoration, bool) {
	for i := len(decs) - 1; i >= 0; i-- {
		if decs[i].Point && decs[i].Start == runeLen {
			return decs[i], true
		}
	}
	return blockDecoration{}, false
}
