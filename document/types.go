package document

import "slices"

// RunID identifies a text run. IDs are assigned at construction and never reused.
type RunID uint64

// BlockID identifies a block.
type BlockID uint64

// Pos points into a run by rune offset. The zero Pos is invalid.
type Pos struct {
	Run    RunID
	Offset int
}

// IsZero reports whether p does not reference any run.
func (p Pos) IsZero() bool { return p.Run == 0 }

// Range spans Anchor..Focus. Ranges built by this package are forward
// (Anchor at or before Focus); callers may hold backward ranges.
type Range struct {
	Anchor Pos
	Focus  Pos
}

func (r Range) IsCollapsed() bool {
	return r.Anchor == r.Focus
}

// Affinity decides which side of an insertion a point sticks to when the
// insertion happens exactly at the point.
type Affinity uint8

const (
	// AffinityForward moves the point past text inserted at it.
	AffinityForward Affinity = iota
	// AffinityBackward keeps the point before text inserted at it.
	AffinityBackward
	// AffinityInward keeps inserted text at either edge out of the range.
	AffinityInward
	// AffinityOutward pulls inserted text at either edge into the range.
	AffinityOutward
)

// RunSpec describes a run for New.
type RunSpec struct {
	Text string
	Tags []string
}

// BlockSpec describes a block for New.
type BlockSpec struct {
	Runs []RunSpec
}

// Run is a read-only view of a text run.
type Run struct {
	ID   RunID
	Text string
	Tags []string
}

// Len returns the run length in runes.
func (r Run) Len() int { return len([]rune(r.Text)) }

// Block is a read-only view of a block.
type Block struct {
	ID   BlockID
	Runs []Run
}

func sameTags(a, b []string) bool {
	return slices.Equal(a, b)
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
