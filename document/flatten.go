package document

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Flatten returns the plain-text view of d that the feedback service measures
// offsets against. Runs within a block are joined by '\n', and so are blocks.
// The per-run newline is part of the service contract and must not change.
func Flatten(d *Document) string {
	var sb strings.Builder
	for bi, b := range d.blocks {
		if bi > 0 {
			sb.WriteByte('\n')
		}
		for ri, r := range b.runs {
			if ri > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(string(r.text))
		}
	}
	return sb.String()
}

// FlatLen returns the rune length of Flatten(d) without building the string.
func FlatLen(d *Document) int {
	total := 0
	for bi, b := range d.blocks {
		if bi > 0 {
			total++
		}
		for ri, r := range b.runs {
			if ri > 0 {
				total++
			}
			total += len(r.text)
		}
	}
	return total
}

// Fingerprint returns a short stable digest of flattened text. It pins the
// text a feedback batch was computed against.
func Fingerprint(text string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return strconv.FormatUint(h.Sum64(), 16)
}
