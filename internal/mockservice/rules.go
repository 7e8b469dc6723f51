package mockservice

import (
	"slices"
	"strings"
	"unicode"

	"github.com/iw2rmb/redline/api"
)

// Error tags produced by Check.
const (
	TagArticle     = "ART"
	TagAgreement   = "SVA"
	TagDuplicate   = "DUP"
	TagCapital     = "CAP"
	TagPunctuation = "PUNCT"
)

type word struct {
	start, end int
	text       string
}

// Check runs the rule set over text and returns the comments ordered by
// global start offset. Offsets count code points.
func Check(text string) []api.Comment {
	runes := []rune(text)
	ws := words(runes)

	var out []api.Comment
	add := func(start, end int, tag, corrected, explanation, suggestion string) {
		out = append(out, comment(runes, start, end, tag, corrected, explanation, suggestion))
	}

	for i, w := range ws {
		lower := strings.ToLower(w.text)
		var prev, next *word
		if i > 0 && sameLine(runes, ws[i-1], w) {
			prev = &ws[i-1]
		}
		if i+1 < len(ws) && sameLine(runes, w, ws[i+1]) {
			next = &ws[i+1]
		}

		if lower == "a" && next != nil && vowelSound(next.text) {
			add(w.start, w.end, TagArticle, matchCase(w.text, "an"),
				`Use "an" before a word that starts with a vowel sound.`,
				`Change "`+w.text+`" to "`+matchCase(w.text, "an")+`".`)
		}
		if w.text == "i" {
			add(w.start, w.end, TagCapital, "I",
				`The pronoun "I" is always capitalized.`,
				`Write "I".`)
		}
		if lower == "has" && prev != nil && prev.text == "I" {
			add(w.start, w.end, TagAgreement, "have",
				`The verb does not agree with the subject "I".`,
				`Use "have" after "I".`)
		}
		if prev != nil && lower == strings.ToLower(prev.text) {
			add(prev.end, w.end, TagDuplicate, "",
				`The word "`+w.text+`" is repeated.`,
				`Remove the second "`+w.text+`".`)
		}
	}

	if end, ok := missingTerminal(runes); ok {
		add(end, end, TagPunctuation, ".",
			"The text does not end with punctuation.",
			"Add a period at the end.")
	}

	slices.SortStableFunc(out, func(a, b api.Comment) int {
		as, _ := a.GlobalHighlightStart.Int()
		bs, _ := b.GlobalHighlightStart.Int()
		return as - bs
	})
	for i := range out {
		out[i].Index = i
	}
	return out
}

func words(runes []rune) []word {
	var out []word
	start := -1
	for i, r := range runes {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, word{start: start, end: i, text: string(runes[start:i])})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, word{start: start, end: len(runes), text: string(runes[start:])})
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

// sameLine reports whether only blanks separate a and b.
func sameLine(runes []rune, a, b word) bool {
	for _, r := range runes[a.end:b.start] {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

var (
	silentH        = []string{"hour", "honest", "honor", "honour", "heir"}
	consonantVowel = []string{"uni", "use", "usu", "one", "once", "eu", "ur"}
)

func vowelSound(w string) bool {
	lower := strings.ToLower(w)
	for _, p := range silentH {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, p := range consonantVowel {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	return lower != "" && strings.ContainsRune("aeiou", rune(lower[0]))
}

func matchCase(orig, repl string) string {
	if orig != "" && unicode.IsUpper([]rune(orig)[0]) {
		r := []rune(repl)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return repl
}

// missingTerminal returns the offset just after the last non-space rune when
// that rune is a letter or digit.
func missingTerminal(runes []rune) (int, bool) {
	end := len(runes)
	for end > 0 && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if end == 0 {
		return 0, false
	}
	last := runes[end-1]
	return end, unicode.IsLetter(last) || unicode.IsDigit(last)
}

// comment fills in the line-local fields from the line holding start.
func comment(runes []rune, start, end int, tag, corrected, explanation, suggestion string) api.Comment {
	lineStart := start
	for lineStart > 0 && runes[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := start
	for lineEnd < len(runes) && runes[lineEnd] != '\n' {
		lineEnd++
	}
	localEnd := min(end, lineEnd) - lineStart

	return api.Comment{
		Source:               string(runes[lineStart:lineEnd]),
		Corrected:            corrected,
		HighlightStart:       api.At(start - lineStart),
		HighlightEnd:         api.At(localEnd),
		HighlightText:        string(runes[start:end]),
		ErrorTag:             tag,
		FeedbackExplanation:  explanation,
		FeedbackSuggestion:   suggestion,
		GlobalHighlightStart: api.At(start),
		GlobalHighlightEnd:   api.At(end),
	}
}
