package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/feedback"
	"github.com/iw2rmb/redline/internal/mockservice"
)

type stubClient struct {
	resp api.Response
	err  error
	got  api.Request
}

func (c *stubClient) GrammarFeedback(_ context.Context, req api.Request) (api.Response, error) {
	c.got = req
	return c.resp, c.err
}

func baseRequest() api.Request {
	return api.Request{UserID: "u-1", SystemChoice: api.SystemRuleBased, DraftNumber: 1}
}

func TestCheck_AgainstMockService(t *testing.T) {
	srv := httptest.NewServer(mockservice.New(zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, 5*time.Second)

	var out bytes.Buffer
	report, err := check(context.Background(), client, baseRequest(), "Fine.\r\nI has a apple", &out, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Accepted())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2:3\tSVA\t\"has\" → \"have\": The verb does not agree with the subject \"I\".", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2:7\tART\t\"a\" → \"an\": "), lines[1])
	assert.Equal(t, "2:14\tPUNCT\tinsert \".\": The text does not end with punctuation.", lines[2])
	assert.Equal(t, "3 comments, 0 dropped", lines[3])
}

func TestCheck_SubmitsFlattenedText(t *testing.T) {
	client := &stubClient{}
	var out bytes.Buffer
	_, err := check(context.Background(), client, baseRequest(), "one\r\ntwo\n", &out, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", client.got.Text)
	assert.Equal(t, "0 comments, 0 dropped\n", out.String())
}

func TestCheck_ReportsDroppedComments(t *testing.T) {
	client := &stubClient{resp: api.Response{FeedbackList: []api.Comment{
		{ErrorTag: "A", GlobalHighlightStart: api.At(0), GlobalHighlightEnd: api.At(3)},
		{ErrorTag: "B", GlobalHighlightStart: api.At(5), GlobalHighlightEnd: api.At(2)},
		{ErrorTag: "C", GlobalHighlightStart: api.At(0), GlobalHighlightEnd: api.At(99)},
	}}}

	var out bytes.Buffer
	report, err := check(context.Background(), client, baseRequest(), "abc def", &out, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, report.Dropped, 2)
	assert.ErrorIs(t, report.Dropped[0].Err, feedback.ErrInvertedSpan)
	assert.ErrorIs(t, report.Dropped[1].Err, feedback.ErrOutOfBounds)
	assert.Equal(t, "1:1\tA\t\"abc\"\n1 comments, 2 dropped\n", out.String())
}

func TestCheck_Errors(t *testing.T) {
	_, err := check(context.Background(), &stubClient{}, baseRequest(), " \n ", &bytes.Buffer{}, zerolog.Nop())
	assert.ErrorIs(t, err, errEmptyInput)

	apiErr := &api.Error{Status: 422, Detail: "text is required"}
	_, err = check(context.Background(), &stubClient{err: apiErr}, baseRequest(), "x", &bytes.Buffer{}, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "text is required", api.Message(err))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		comment api.Comment
		span    string
		want    string
	}{
		{name: "replacement", comment: api.Comment{Corrected: "an", FeedbackExplanation: "why"}, span: "a", want: `"a" → "an": why`},
		{name: "same text", comment: api.Comment{Corrected: "a"}, span: "a", want: `"a"`},
		{name: "insertion", comment: api.Comment{Corrected: "."}, want: `insert "."`},
		{name: "explanation only", comment: api.Comment{FeedbackExplanation: "why"}, want: "why"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.comment, tt.span))
		})
	}
}

func TestReadEssay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.txt")
	require.NoError(t, os.WriteFile(path, []byte("From a file."), 0o644))

	got, err := readEssay(path, os.Stdin)
	require.NoError(t, err)
	assert.Equal(t, "From a file.", got)

	_, err = readEssay(filepath.Join(t.TempDir(), "missing.txt"), os.Stdin)
	assert.ErrorIs(t, err, os.ErrNotExist)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("From a pipe.")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { _ = r.Close() })

	got, err = readEssay("", r)
	require.NoError(t, err)
	assert.Equal(t, "From a pipe.", got)
}
