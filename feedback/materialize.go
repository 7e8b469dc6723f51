package feedback

import (
	"slices"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/document"
)

// Drop records one comment rejected during materialization.
type Drop struct {
	Index int
	Start api.Offset
	End   api.Offset
	Err   error
}

// Report summarizes one Materialize call.
type Report struct {
	Received int
	Dropped  []Drop
}

func (r Report) Accepted() int { return r.Received - len(r.Dropped) }

// Materializer converts service comments into live handles.
type Materializer struct {
	log   zerolog.Logger
	newID func() string
}

type MaterializerOption func(*Materializer)

// WithIDFunc replaces the uuid generator.
func WithIDFunc(fn func() string) MaterializerOption {
	return func(m *Materializer) {
		if fn != nil {
			m.newID = fn
		}
	}
}

func NewMaterializer(log zerolog.Logger, opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		log:   log.With().Str("component", "materializer").Logger(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize validates each comment against flattened, which must be the
// text the comments were computed on, and registers a live range for every
// comment that survives. Invalid comments are dropped individually. The
// returned handles are ordered by original start offset, ties in input order.
func (m *Materializer) Materialize(d *document.Document, flattened string, comments []api.Comment) ([]*Handle, Report) {
	report := Report{Received: len(comments)}
	textLen := utf8.RuneCountInString(flattened)
	handles := make([]*Handle, 0, len(comments))

	for idx, c := range comments {
		h, err := m.materializeOne(d, textLen, c)
		if err != nil {
			report.Dropped = append(report.Dropped, Drop{
				Index: idx,
				Start: c.GlobalHighlightStart,
				End:   c.GlobalHighlightEnd,
				Err:   err,
			})
			ev := m.log.Warn()
			if isInconsistency(err) {
				ev = m.log.Error()
			}
			ev.Err(err).
				Int("item", idx).
				Stringer("start", c.GlobalHighlightStart).
				Stringer("end", c.GlobalHighlightEnd).
				Int("text_len", textLen).
				Msg("dropping feedback item")
			continue
		}
		if h.ZeroLength() {
			m.log.Debug().Int("item", idx).Int("offset", h.Start).Msg("zero-length highlight, treating as insertion point")
		}
		handles = append(handles, h)
	}

	slices.SortStableFunc(handles, func(a, b *Handle) int { return a.Start - b.Start })

	m.log.Info().
		Int("accepted", len(handles)).
		Int("received", len(comments)).
		Msg("materialized feedback batch")
	return handles, report
}

func (m *Materializer) materializeOne(d *document.Document, textLen int, c api.Comment) (*Handle, error) {
	start, okStart := c.GlobalHighlightStart.Int()
	end, okEnd := c.GlobalHighlightEnd.Int()
	switch {
	case !okStart || !okEnd:
		return nil, ErrInvalidOffset
	case start < 0 || end < 0:
		return nil, ErrNegativeOffset
	case start > end:
		return nil, ErrInvertedSpan
	case start > textLen || end > textLen:
		return nil, ErrOutOfBounds
	}

	policy := document.ConvertPolicy{ClampMode: document.OffsetError}
	anchor, ok := d.Locate(start, policy)
	if !ok {
		return nil, ErrUnresolved
	}
	focus, ok := d.Locate(end, policy)
	if !ok {
		return nil, ErrUnresolved
	}

	r := document.Range{Anchor: anchor, Focus: focus}
	if d.IsBackward(r) {
		return nil, ErrBackwardRange
	}
	if r.IsCollapsed() != (start == end) {
		return nil, ErrCollapseMismatch
	}

	return &Handle{
		ID:      m.newID(),
		Comment: c,
		Start:   start,
		End:     end,
		ref:     d.RangeRef(r, document.AffinityInward),
	}, nil
}
