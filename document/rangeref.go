package document

// RangeRef is a live range registered with its document. Every edit
// transforms it; once a transform fails (its point was removed with no
// fallback) the ref stays registered but reports no current range.
type RangeRef struct {
	doc      *Document
	current  Range
	valid    bool
	affinity Affinity
	released bool
}

// RangeRef registers r for tracking. The caller owns the returned ref and must
// call Unref when it is no longer needed.
func (d *Document) RangeRef(r Range, aff Affinity) *RangeRef {
	ref := &RangeRef{
		doc:      d,
		current:  r,
		valid:    d.Valid(r.Anchor) && d.Valid(r.Focus),
		affinity: aff,
	}
	d.refs[ref] = struct{}{}
	return ref
}

// TrackedRanges returns the number of registered refs.
func (d *Document) TrackedRanges() int { return len(d.refs) }

// Current returns the range as of the latest edit.
func (ref *RangeRef) Current() (Range, bool) {
	if ref == nil || ref.released || !ref.valid {
		return Range{}, false
	}
	return ref.current, true
}

// Unref stops tracking and returns the last known range.
func (ref *RangeRef) Unref() (Range, bool) {
	if ref == nil {
		return Range{}, false
	}
	cur, ok := ref.Current()
	if !ref.released {
		delete(ref.doc.refs, ref)
		ref.released = true
	}
	return cur, ok
}

func (ref *RangeRef) Released() bool { return ref == nil || ref.released }

func (ref *RangeRef) transform(op Op) {
	if !ref.valid {
		return
	}
	anchorAff, focusAff := pointAffinities(ref.current, ref.affinity, ref.doc.IsBackward(ref.current))
	anchor, ok := op.TransformPos(ref.current.Anchor, anchorAff)
	if !ok {
		ref.valid = false
		return
	}
	focus, ok := op.TransformPos(ref.current.Focus, focusAff)
	if !ok {
		ref.valid = false
		return
	}
	ref.current = Range{Anchor: anchor, Focus: focus}
}

// pointAffinities resolves a range affinity into per-endpoint affinities.
func pointAffinities(r Range, aff Affinity, backward bool) (anchor, focus Affinity) {
	switch aff {
	case AffinityInward:
		if r.IsCollapsed() {
			return AffinityForward, AffinityForward
		}
		if backward {
			return AffinityBackward, AffinityForward
		}
		return AffinityForward, AffinityBackward
	case AffinityOutward:
		if r.IsCollapsed() {
			return AffinityBackward, AffinityBackward
		}
		if backward {
			return AffinityForward, AffinityBackward
		}
		return AffinityBackward, AffinityForward
	default:
		return aff, aff
	}
}
