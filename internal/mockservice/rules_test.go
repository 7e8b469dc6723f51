package mockservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/redline/api"
)

type span struct {
	tag        string
	start, end int
}

func spans(comments []api.Comment) []span {
	var out []span
	for _, c := range comments {
		s, _ := c.GlobalHighlightStart.Int()
		e, _ := c.GlobalHighlightEnd.Int()
		out = append(out, span{tag: c.ErrorTag, start: s, end: e})
	}
	return out
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []span
	}{
		{name: "clean", text: "I have an apple."},
		{name: "blank", text: "  \n "},
		{name: "agreement and article", text: "I has a apple.", want: []span{{TagAgreement, 2, 5}, {TagArticle, 6, 7}}},
		{name: "lowercase pronoun", text: "i think so.", want: []span{{TagCapital, 0, 1}}},
		{name: "doubled word", text: "the the cat.", want: []span{{TagDuplicate, 3, 7}}},
		{name: "doubled word ignores case", text: "The the cat.", want: []span{{TagDuplicate, 3, 7}}},
		{name: "silent h", text: "An hour and a hour.", want: []span{{TagArticle, 12, 13}}},
		{name: "consonant sound", text: "a university", want: []span{{TagPunctuation, 12, 12}}},
		{name: "code points", text: "Café a apple.", want: []span{{TagArticle, 5, 6}}},
		{name: "newline breaks pairs", text: "the\nthe", want: []span{{TagPunctuation, 7, 7}}},
		{name: "trailing space", text: "done  ", want: []span{{TagPunctuation, 4, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spans(Check(tt.text)))
		})
	}
}

func TestCheck_CommentFields(t *testing.T) {
	comments := Check("Fine.\nShe saw a owl")
	require.Len(t, comments, 2)

	art := comments[0]
	assert.Equal(t, 0, art.Index)
	assert.Equal(t, TagArticle, art.ErrorTag)
	assert.Equal(t, "an", art.Corrected)
	assert.Equal(t, "a", art.HighlightText)
	assert.Equal(t, "She saw a owl", art.Source)
	start, _ := art.HighlightStart.Int()
	end, _ := art.HighlightEnd.Int()
	assert.Equal(t, 8, start)
	assert.Equal(t, 9, end)
	gstart, _ := art.GlobalHighlightStart.Int()
	assert.Equal(t, 14, gstart)
	assert.NotEmpty(t, art.FeedbackExplanation)
	assert.NotEmpty(t, art.FeedbackSuggestion)

	punct := comments[1]
	assert.Equal(t, 1, punct.Index)
	assert.Equal(t, "", punct.HighlightText)
}

func TestCheck_ArticleKeepsCase(t *testing.T) {
	comments := Check("A egg.")
	require.Len(t, comments, 1)
	assert.Equal(t, "An", comments[0].Corrected)
}
