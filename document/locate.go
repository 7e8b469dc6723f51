package document

type OffsetClampMode uint8

const (
	// OffsetError rejects offsets outside [0, FlatLen].
	OffsetError OffsetClampMode = iota
	// OffsetClamp clamps offsets into [0, FlatLen].
	OffsetClamp
)

type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// Locate maps a flat offset to a position in the tree.
//
// An offset equal to a run's end resolves to that run, never to the start of
// the following run or paragraph; the separator newline sits between them.
// An offset at a run's start (offset 0, or just past a separator) resolves to
// that run's start, which also covers empty runs. So a zero-length span at a
// paragraph start marks that paragraph, not the end of the one before it.
func (d *Document) Locate(off int, p ConvertPolicy) (Pos, bool) {
	off, ok := clampOffset(off, FlatLen(d), p.ClampMode)
	if !ok {
		return Pos{}, false
	}
	return d.offsetToPos(off)
}

// OffsetOf maps a position back to its flat offset.
func (d *Document) OffsetOf(pos Pos) (int, bool) {
	consumed := 0
	for bi, b := range d.blocks {
		if bi > 0 {
			consumed++
		}
		for ri, r := range b.runs {
			if ri > 0 {
				consumed++
			}
			if r.id == pos.Run {
				if pos.Offset < 0 || pos.Offset > len(r.text) {
					return 0, false
				}
				return consumed + pos.Offset, true
			}
			consumed += len(r.text)
		}
	}
	return 0, false
}

func clampOffset(off, max int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > max {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		return clampInt(off, 0, max), true
	default:
		return 0, false
	}
}

func (d *Document) offsetToPos(off int) (Pos, bool) {
	consumed := 0
	var last *run

	for bi, b := range d.blocks {
		if bi > 0 {
			consumed++
		}
		for ri, r := range b.runs {
			if ri > 0 {
				consumed++
			}
			n := len(r.text)
			if off == consumed {
				return Pos{Run: r.id}, true
			}
			if off > consumed && off <= consumed+n {
				return Pos{Run: r.id, Offset: off - consumed}, true
			}
			consumed += n
			last = r
		}
	}

	if last == nil {
		return Pos{}, false
	}
	return Pos{Run: last.id, Offset: len(last.text)}, true
}
