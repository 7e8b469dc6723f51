package feedback

import "github.com/iw2rmb/redline/document"

// Decoration marks the part of one run covered by one handle. LocalStart and
// LocalEnd are rune offsets within the run; they are equal for an insertion
// point.
type Decoration struct {
	RangeID    string
	RunID      document.RunID
	LocalStart int
	LocalEnd   int
	IsActive   bool
}

func (dec Decoration) Collapsed() bool { return dec.LocalStart == dec.LocalEnd }

// Decorate returns one decoration per handle whose current range intersects
// run, in handle order. Overlapping handles are not merged.
//
// A range that has shrunk to nothing through edits contributes nothing. Only
// handles materialized from a zero-length span produce zero-width
// decorations.
func Decorate(d *document.Document, run document.RunID, handles []*Handle, activeID string) []Decoration {
	if _, ok := d.Run(run); !ok {
		return nil
	}
	runRange := d.RangeOfRun(run)

	var out []Decoration
	for _, h := range handles {
		r, ok := h.Range()
		if !ok {
			continue
		}
		if r.IsCollapsed() && !h.ZeroLength() {
			continue
		}
		inter, ok := d.Intersect(r, runRange)
		if !ok {
			continue
		}
		if inter.IsCollapsed() && !r.IsCollapsed() {
			// touches the run only at an edge
			continue
		}
		out = append(out, Decoration{
			RangeID:    h.ID,
			RunID:      run,
			LocalStart: inter.Anchor.Offset,
			LocalEnd:   inter.Focus.Offset,
			IsActive:   activeID != "" && h.ID == activeID,
		})
	}
	return out
}

// DecorateDocument runs Decorate over every run. Runs without decorations are
// absent from the map.
func DecorateDocument(d *document.Document, handles []*Handle, activeID string) map[document.RunID][]Decoration {
	out := make(map[document.RunID][]Decoration)
	if len(handles) == 0 {
		return out
	}
	for _, b := range d.Blocks() {
		for _, r := range b.Runs {
			if decs := Decorate(d, r.ID, handles, activeID); len(decs) > 0 {
				out[r.ID] = decs
			}
		}
	}
	return out
}
