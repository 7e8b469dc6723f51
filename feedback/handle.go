package feedback

import (
	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/document"
)

// Handle is a materialized comment: an id, the comment payload, the flat
// offsets it was materialized from, and a live range on the document.
type Handle struct {
	ID      string
	Comment api.Comment

	// Start and End are the original flat offsets. Diagnostics only.
	Start int
	End   int

	ref *document.RangeRef
}

// Range returns the current document range. ok is false once the handle is
// released or its range no longer exists.
func (h *Handle) Range() (document.Range, bool) {
	if h == nil {
		return document.Range{}, false
	}
	return h.ref.Current()
}

// Release stops tracking the range. It is safe to call more than once.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.ref.Unref()
}

func (h *Handle) Released() bool {
	return h == nil || h.ref.Released()
}

// ZeroLength reports whether the comment marks an insertion point.
func (h *Handle) ZeroLength() bool { return h.Start == h.End }
