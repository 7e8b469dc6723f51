package feedback

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/document"
)

func comment(start, end int) api.Comment {
	return api.Comment{
		GlobalHighlightStart: api.At(start),
		GlobalHighlightEnd:   api.At(end),
		ErrorTag:             "TAG",
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("h%d", n)
	}
}

func newMaterializer() *Materializer {
	return NewMaterializer(zerolog.Nop(), WithIDFunc(seqIDs()))
}

func spanOf(t *testing.T, d *document.Document, h *Handle) string {
	t.Helper()
	r, ok := h.Range()
	require.True(t, ok, "handle %s has no range", h.ID)
	start, ok := d.OffsetOf(r.Anchor)
	require.True(t, ok)
	end, ok := d.OffsetOf(r.Focus)
	require.True(t, ok)
	return string([]rune(d.Text())[start:end])
}

func TestMaterialize_ScenarioA_RangeFollowsEdits(t *testing.T) {
	d := document.FromText("I has a apple.")
	text := document.Flatten(d)

	handles, report := newMaterializer().Materialize(d, text, []api.Comment{comment(2, 5)})
	require.Len(t, handles, 1)
	assert.Empty(t, report.Dropped)
	assert.Equal(t, "has", spanOf(t, d, handles[0]))

	run := d.FirstPos().Run
	_, ok := d.InsertText(document.Pos{Run: run, Offset: 1}, "!")
	require.True(t, ok)

	r, ok := handles[0].Range()
	require.True(t, ok)
	start, _ := d.OffsetOf(r.Anchor)
	assert.Equal(t, 3, start)
	assert.Equal(t, "has", spanOf(t, d, handles[0]))
	assert.Equal(t, 2, handles[0].Start, "original offsets are not recomputed")
}

func TestMaterialize_EdgeInsertionsStayOutside(t *testing.T) {
	t.Run("typing at the end", func(t *testing.T) {
		d := document.FromText("I has a apple.")
		handles, _ := newMaterializer().Materialize(d, d.Text(), []api.Comment{comment(2, 5)})
		require.Len(t, handles, 1)

		_, ok := d.InsertText(document.Pos{Run: d.FirstPos().Run, Offset: 5}, "X")
		require.True(t, ok)
		assert.Equal(t, "has", spanOf(t, d, handles[0]))
	})

	t.Run("typing at the start", func(t *testing.T) {
		d := document.FromText("I has a apple.")
		handles, _ := newMaterializer().Materialize(d, d.Text(), []api.Comment{comment(2, 5)})
		require.Len(t, handles, 1)

		_, ok := d.InsertText(document.Pos{Run: d.FirstPos().Run, Offset: 2}, "X")
		require.True(t, ok)
		assert.Equal(t, "has", spanOf(t, d, handles[0]))
		assert.Equal(t, "I Xhas a apple.", d.Text())
	})

	t.Run("new paragraph at the end", func(t *testing.T) {
		d := document.FromText("I has")
		handles, _ := newMaterializer().Materialize(d, d.Text(), []api.Comment{comment(2, 5)})
		require.Len(t, handles, 1)

		d.SetCursor(document.Pos{Run: d.FirstPos().Run, Offset: 5})
		require.True(t, d.InsertNewline())
		require.True(t, d.InsertAtCursor("foo"))
		assert.Equal(t, "has", spanOf(t, d, handles[0]))

		blocks := d.Blocks()
		require.Len(t, blocks, 2)
		assert.Empty(t, Decorate(d, blocks[1].Runs[0].ID, handles, ""))
	})

	t.Run("insertion point moves with the text after it", func(t *testing.T) {
		d := document.FromText("ab")
		handles, _ := newMaterializer().Materialize(d, d.Text(), []api.Comment{comment(1, 1)})
		require.Len(t, handles, 1)

		_, ok := d.InsertText(document.Pos{Run: d.FirstPos().Run, Offset: 1}, "X")
		require.True(t, ok)
		r, ok := handles[0].Range()
		require.True(t, ok)
		off, _ := d.OffsetOf(r.Anchor)
		assert.Equal(t, 2, off)
	})
}

func TestMaterialize_ScenarioB_InvertedDropped(t *testing.T) {
	d := document.FromText("I has a apple.")

	handles, report := newMaterializer().Materialize(d, d.Text(), []api.Comment{comment(5, 2)})
	assert.Empty(t, handles)
	require.Len(t, report.Dropped, 1)
	assert.ErrorIs(t, report.Dropped[0].Err, ErrInvertedSpan)
	assert.Equal(t, 0, d.TrackedRanges())
	assert.Equal(t, 0, report.Accepted())
}

func TestMaterialize_ScenarioC_DuplicatesStayIndependent(t *testing.T) {
	d := document.FromText("I has a apple.")

	handles, _ := newMaterializer().Materialize(d, d.Text(), []api.Comment{comment(0, 3), comment(0, 3)})
	require.Len(t, handles, 2)
	assert.NotEqual(t, handles[0].ID, handles[1].ID)
	assert.Equal(t, 2, d.TrackedRanges())

	decs := Decorate(d, d.FirstPos().Run, handles, "")
	require.Len(t, decs, 2)
	for i, dec := range decs {
		assert.Equal(t, handles[i].ID, dec.RangeID)
		assert.Equal(t, 0, dec.LocalStart)
		assert.Equal(t, 3, dec.LocalEnd)
	}
}

func TestMaterialize_Validation(t *testing.T) {
	d := document.FromText("Hello\nWorld")
	text := d.Text() // 11 runes

	tests := []struct {
		name    string
		comment api.Comment
		wantErr error
	}{
		{name: "missing start", comment: api.Comment{GlobalHighlightEnd: api.At(3)}, wantErr: ErrInvalidOffset},
		{name: "missing end", comment: api.Comment{GlobalHighlightStart: api.At(3)}, wantErr: ErrInvalidOffset},
		{name: "negative start", comment: comment(-1, 3), wantErr: ErrNegativeOffset},
		{name: "negative both", comment: comment(-4, -1), wantErr: ErrNegativeOffset},
		{name: "inverted", comment: comment(4, 3), wantErr: ErrInvertedSpan},
		{name: "end past text", comment: comment(3, 12), wantErr: ErrOutOfBounds},
		{name: "both past text", comment: comment(12, 12), wantErr: ErrOutOfBounds},
		{name: "valid", comment: comment(0, 5)},
		{name: "across paragraphs", comment: comment(3, 8)},
		{name: "whole text", comment: comment(0, 11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handles, report := newMaterializer().Materialize(d, text, []api.Comment{tt.comment})
			if tt.wantErr == nil {
				assert.Len(t, handles, 1)
				assert.Empty(t, report.Dropped)
				for _, h := range handles {
					h.Release()
				}
				return
			}
			assert.Empty(t, handles)
			require.Len(t, report.Dropped, 1)
			assert.ErrorIs(t, report.Dropped[0].Err, tt.wantErr)
			assert.Equal(t, 0, report.Dropped[0].Index)
		})
	}
}

func TestMaterialize_ValidationCompleteness(t *testing.T) {
	d := document.FromParagraphs([]string{"The cat", "sat"}, []string{"on the mat."})
	text := d.Text()
	n := len([]rune(text))
	rng := rand.New(rand.NewSource(7))

	var comments []api.Comment
	valid := 0
	for range 500 {
		start := rng.Intn(n+10) - 5
		end := rng.Intn(n+10) - 5
		if start >= 0 && end >= 0 && start <= end && end <= n {
			valid++
		}
		comments = append(comments, comment(start, end))
	}

	handles, report := newMaterializer().Materialize(d, text, comments)
	assert.Equal(t, valid, len(handles))
	assert.Equal(t, valid, report.Accepted())
	assert.Equal(t, len(comments)-valid, len(report.Dropped))
	assert.Equal(t, valid, d.TrackedRanges())
}

func TestMaterialize_ZeroLength(t *testing.T) {
	d := document.FromParagraphs([]string{"ab", "cd"}, []string{"ef"})
	text := d.Text()
	n := len([]rune(text))

	for k := 0; k <= n; k++ {
		handles, report := newMaterializer().Materialize(d, text, []api.Comment{comment(k, k)})
		require.Len(t, handles, 1, "offset %d", k)
		assert.Empty(t, report.Dropped)

		r, ok := handles[0].Range()
		require.True(t, ok)
		assert.True(t, r.IsCollapsed())
		off, ok := d.OffsetOf(r.Anchor)
		require.True(t, ok)
		assert.Equal(t, k, off)
		assert.True(t, handles[0].ZeroLength())
		handles[0].Release()
	}
}

func TestMaterialize_SortedByStart(t *testing.T) {
	d := document.FromText("I has a apple. It are red.")
	in := []api.Comment{comment(15, 21), comment(2, 5), comment(6, 7), comment(2, 3), comment(0, 1)}
	in[1].ErrorTag = "first-at-2"
	in[3].ErrorTag = "second-at-2"

	handles, _ := newMaterializer().Materialize(d, d.Text(), in)
	require.Len(t, handles, 5)

	var starts []int
	for _, h := range handles {
		starts = append(starts, h.Start)
	}
	assert.Equal(t, []int{0, 2, 2, 6, 15}, starts)
	assert.Equal(t, "first-at-2", handles[1].Comment.ErrorTag)
	assert.Equal(t, "second-at-2", handles[2].Comment.ErrorTag)
}

func TestMaterialize_StaleFlattenedText(t *testing.T) {
	d := document.FromText("short")

	// Offsets computed on a longer text that the document no longer has.
	handles, report := newMaterializer().Materialize(d, "a much longer text", []api.Comment{comment(7, 13), comment(0, 5)})
	require.Len(t, handles, 1)
	require.Len(t, report.Dropped, 1)
	assert.ErrorIs(t, report.Dropped[0].Err, ErrUnresolved)
	assert.Equal(t, 0, report.Dropped[0].Index)
}

func TestMaterialize_DefaultIDsAreUnique(t *testing.T) {
	d := document.FromText("abc")
	handles, _ := NewMaterializer(zerolog.Nop()).Materialize(d, d.Text(), []api.Comment{comment(0, 1), comment(0, 1)})
	require.Len(t, handles, 2)
	assert.NotEmpty(t, handles[0].ID)
	assert.NotEqual(t, handles[0].ID, handles[1].ID)
}
