package document

import "strings"

type run struct {
	id   RunID
	text []rune
	tags []string
}

type block struct {
	id   BlockID
	runs []*run
}

// leafLoc locates a run in the tree. seq is the run's rank in document order.
type leafLoc struct {
	block int
	index int
	seq   int
}

// Document is the editable block/run tree plus its cursor and live ranges.
type Document struct {
	blocks []*block
	index  map[RunID]leafLoc

	nextRun   RunID
	nextBlock BlockID

	version  uint64
	cursor   Pos
	readOnly bool

	refs map[*RangeRef]struct{}

	lastChange    Change
	hasLastChange bool
}

// New builds a document from block specs. A document always has at least one
// block, and every block at least one (possibly empty) run.
func New(blocks ...BlockSpec) *Document {
	d := &Document{
		index: make(map[RunID]leafLoc),
		refs:  make(map[*RangeRef]struct{}),
	}
	for _, spec := range blocks {
		b := &block{id: d.newBlockID()}
		for _, rs := range spec.Runs {
			b.runs = append(b.runs, &run{
				id:   d.newRunID(),
				text: []rune(rs.Text),
				tags: append([]string(nil), rs.Tags...),
			})
		}
		if len(b.runs) == 0 {
			b.runs = append(b.runs, &run{id: d.newRunID()})
		}
		d.blocks = append(d.blocks, b)
	}
	if len(d.blocks) == 0 {
		d.blocks = append(d.blocks, &block{
			id:   d.newBlockID(),
			runs: []*run{{id: d.newRunID()}},
		})
	}
	d.reindex()
	d.cursor = d.FirstPos()
	return d
}

// FromText builds a document with one single-run block per line of text.
// CRLF and lone CR line endings count as newlines.
func FromText(text string) *Document {
	lines := strings.Split(normalizeNewlines(text), "\n")
	specs := make([]BlockSpec, 0, len(lines))
	for _, line := range lines {
		specs = append(specs, BlockSpec{Runs: []RunSpec{{Text: line}}})
	}
	return New(specs...)
}

// FromParagraphs builds a document with one block per paragraph and one run
// per string in it.
func FromParagraphs(paras ...[]string) *Document {
	specs := make([]BlockSpec, 0, len(paras))
	for _, runs := range paras {
		var spec BlockSpec
		for _, text := range runs {
			spec.Runs = append(spec.Runs, RunSpec{Text: text})
		}
		specs = append(specs, spec)
	}
	return New(specs...)
}

func (d *Document) newRunID() RunID {
	d.nextRun++
	return d.nextRun
}

func (d *Document) newBlockID() BlockID {
	d.nextBlock++
	return d.nextBlock
}

// reindex rebuilds the ordered leaf index. Only structural ops call it.
func (d *Document) reindex() {
	d.index = make(map[RunID]leafLoc, len(d.index))
	seq := 0
	for bi, b := range d.blocks {
		for ri, r := range b.runs {
			d.index[r.id] = leafLoc{block: bi, index: ri, seq: seq}
			seq++
		}
	}
}

func (d *Document) run(id RunID) (*run, bool) {
	loc, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return d.blocks[loc.block].runs[loc.index], true
}

func (d *Document) blockIndex(id BlockID) int {
	for i, b := range d.blocks {
		if b.id == id {
			return i
		}
	}
	return -1
}

func (d *Document) Version() uint64 { return d.version }

func (d *Document) Cursor() Pos { return d.cursor }

// ReadOnly reports whether edits are currently ignored.
func (d *Document) ReadOnly() bool { return d.readOnly }

// SetReadOnly toggles edit suppression. Cursor movement is still allowed.
func (d *Document) SetReadOnly(v bool) { d.readOnly = v }

// Blocks returns a snapshot of the tree.
func (d *Document) Blocks() []Block {
	out := make([]Block, 0, len(d.blocks))
	for _, b := range d.blocks {
		vb := Block{ID: b.id, Runs: make([]Run, 0, len(b.runs))}
		for _, r := range b.runs {
			vb.Runs = append(vb.Runs, r.view())
		}
		out = append(out, vb)
	}
	return out
}

// BlockCount returns the number of blocks.
func (d *Document) BlockCount() int { return len(d.blocks) }

// Run returns a view of the run with the given id.
func (d *Document) Run(id RunID) (Run, bool) {
	r, ok := d.run(id)
	if !ok {
		return Run{}, false
	}
	return r.view(), true
}

// RunText returns the text of run id, or "" when it does not exist.
func (d *Document) RunText(id RunID) string {
	r, ok := d.run(id)
	if !ok {
		return ""
	}
	return string(r.text)
}

// BlockOf returns the index of the block containing run id.
func (d *Document) BlockOf(id RunID) (int, bool) {
	loc, ok := d.index[id]
	if !ok {
		return 0, false
	}
	return loc.block, true
}

func (r *run) view() Run {
	return Run{
		ID:   r.id,
		Text: string(r.text),
		Tags: append([]string(nil), r.tags...),
	}
}

// Valid reports whether p references an existing run within its bounds.
func (d *Document) Valid(p Pos) bool {
	r, ok := d.run(p.Run)
	if !ok {
		return false
	}
	return p.Offset >= 0 && p.Offset <= len(r.text)
}

// FirstPos returns the start of the first run.
func (d *Document) FirstPos() Pos {
	return Pos{Run: d.blocks[0].runs[0].id}
}

// LastPos returns the end of the last run.
func (d *Document) LastPos() Pos {
	b := d.blocks[len(d.blocks)-1]
	r := b.runs[len(b.runs)-1]
	return Pos{Run: r.id, Offset: len(r.text)}
}

// StartOf returns the start of run id.
func (d *Document) StartOf(id RunID) Pos { return Pos{Run: id} }

// EndOf returns the end of run id.
func (d *Document) EndOf(id RunID) Pos {
	r, ok := d.run(id)
	if !ok {
		return Pos{Run: id}
	}
	return Pos{Run: id, Offset: len(r.text)}
}

// RangeOfRun spans the whole of run id.
func (d *Document) RangeOfRun(id RunID) Range {
	return Range{Anchor: d.StartOf(id), Focus: d.EndOf(id)}
}

// ComparePos orders positions by block order, run order, then offset.
// Positions in unknown runs sort before every known position.
func (d *Document) ComparePos(a, b Pos) int {
	sa, sb := -1, -1
	if loc, ok := d.index[a.Run]; ok {
		sa = loc.seq
	}
	if loc, ok := d.index[b.Run]; ok {
		sb = loc.seq
	}
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

// IsBackward reports whether r's focus precedes its anchor.
func (d *Document) IsBackward(r Range) bool {
	return d.ComparePos(r.Focus, r.Anchor) < 0
}

// Normalize returns r as a forward range.
func (d *Document) Normalize(r Range) Range {
	if d.IsBackward(r) {
		return Range{Anchor: r.Focus, Focus: r.Anchor}
	}
	return r
}

// Intersect returns the overlap of a and b. A collapsed result is returned
// when the ranges touch at one point; ok is false when they are disjoint.
func (d *Document) Intersect(a, b Range) (Range, bool) {
	a, b = d.Normalize(a), d.Normalize(b)
	start := a.Anchor
	if d.ComparePos(b.Anchor, start) > 0 {
		start = b.Anchor
	}
	end := a.Focus
	if d.ComparePos(b.Focus, end) < 0 {
		end = b.Focus
	}
	if d.ComparePos(start, end) > 0 {
		return Range{}, false
	}
	return Range{Anchor: start, Focus: end}, true
}

// Text returns the flattened plain-text view. See Flatten.
func (d *Document) Text() string { return Flatten(d) }
