package feedback

import "errors"

// Reasons a comment is dropped during materialization. The first four mean
// the comment itself is malformed. ErrUnresolved is a locator miss. The last
// two mean the offset mapping disagreed with the flattened text.
var (
	ErrInvalidOffset    = errors.New("offset is not an integer")
	ErrNegativeOffset   = errors.New("offset is negative")
	ErrInvertedSpan     = errors.New("start is after end")
	ErrOutOfBounds      = errors.New("offset is past the end of the text")
	ErrUnresolved       = errors.New("offset does not resolve to a document position")
	ErrBackwardRange    = errors.New("mapped range is backward")
	ErrCollapseMismatch = errors.New("mapped range collapse does not match span length")
)

// isInconsistency reports whether err signals a flattener/locator
// disagreement rather than bad input.
func isInconsistency(err error) bool {
	return errors.Is(err, ErrBackwardRange) || errors.Is(err, ErrCollapseMismatch)
}
