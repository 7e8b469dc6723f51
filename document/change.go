package document

import (
	"slices"
	"unicode/utf8"
)

// Op is a primitive edit. TransformPos maps a position from the document as it
// was before the op to the document after it; ok is false when the position no
// longer exists.
type Op interface {
	TransformPos(p Pos, aff Affinity) (Pos, bool)
	apply(d *Document)
}

// InsertTextOp inserts Text (no newlines) into Run at Offset.
type InsertTextOp struct {
	Run    RunID
	Offset int
	Text   string
}

// RemoveTextOp removes Text from Run starting at Offset.
type RemoveTextOp struct {
	Run    RunID
	Offset int
	Text   string
}

// SplitBlockOp splits Run at Offset. The tail of Run becomes NewRun, which
// together with every later run of the block moves into NewBlock.
type SplitBlockOp struct {
	Run      RunID
	Offset   int
	NewRun   RunID
	NewBlock BlockID
}

// MergeBlockOp moves every run of Block to the end of Into and drops Block.
type MergeBlockOp struct {
	Block BlockID
	Into  BlockID
}

// MergeRunOp appends Run's text to Into, its predecessor in the same block,
// and drops Run. Shift is the length of Into before the merge.
type MergeRunOp struct {
	Run   RunID
	Into  RunID
	Shift int
}

// RemoveRunOp drops Run. Points inside it move to Fallback.
type RemoveRunOp struct {
	Run      RunID
	Fallback Pos
}

func (op InsertTextOp) TransformPos(p Pos, aff Affinity) (Pos, bool) {
	if p.Run != op.Run {
		return p, true
	}
	if op.Offset < p.Offset || (op.Offset == p.Offset && aff == AffinityForward) {
		p.Offset += utf8.RuneCountInString(op.Text)
	}
	return p, true
}

func (op RemoveTextOp) TransformPos(p Pos, _ Affinity) (Pos, bool) {
	if p.Run != op.Run || op.Offset > p.Offset {
		return p, true
	}
	p.Offset -= min(p.Offset-op.Offset, utf8.RuneCountInString(op.Text))
	return p, true
}

func (op SplitBlockOp) TransformPos(p Pos, aff Affinity) (Pos, bool) {
	if p.Run != op.Run {
		return p, true
	}
	if op.Offset < p.Offset || (op.Offset == p.Offset && aff == AffinityForward) {
		return Pos{Run: op.NewRun, Offset: p.Offset - op.Offset}, true
	}
	return p, true
}

func (op MergeBlockOp) TransformPos(p Pos, _ Affinity) (Pos, bool) {
	return p, true
}

func (op MergeRunOp) TransformPos(p Pos, _ Affinity) (Pos, bool) {
	if p.Run != op.Run {
		return p, true
	}
	return Pos{Run: op.Into, Offset: p.Offset + op.Shift}, true
}

func (op RemoveRunOp) TransformPos(p Pos, _ Affinity) (Pos, bool) {
	if p.Run != op.Run {
		return p, true
	}
	if op.Fallback.IsZero() {
		return Pos{}, false
	}
	return op.Fallback, true
}

func (op InsertTextOp) apply(d *Document) {
	r, ok := d.run(op.Run)
	if !ok {
		return
	}
	at := clampInt(op.Offset, 0, len(r.text))
	r.text = slices.Insert(r.text, at, []rune(op.Text)...)
}

func (op RemoveTextOp) apply(d *Document) {
	r, ok := d.run(op.Run)
	if !ok {
		return
	}
	start := clampInt(op.Offset, 0, len(r.text))
	end := clampInt(start+utf8.RuneCountInString(op.Text), start, len(r.text))
	r.text = slices.Delete(r.text, start, end)
}

func (op SplitBlockOp) apply(d *Document) {
	loc, ok := d.index[op.Run]
	if !ok {
		return
	}
	b := d.blocks[loc.block]
	r := b.runs[loc.index]
	at := clampInt(op.Offset, 0, len(r.text))

	tail := &run{
		id:   op.NewRun,
		text: append([]rune(nil), r.text[at:]...),
		tags: append([]string(nil), r.tags...),
	}
	r.text = r.text[:at:at]

	moved := append([]*run{tail}, b.runs[loc.index+1:]...)
	b.runs = b.runs[:loc.index+1]

	nb := &block{id: op.NewBlock, runs: moved}
	d.blocks = slices.Insert(d.blocks, loc.block+1, nb)
	d.reindex()
}

func (op MergeBlockOp) apply(d *Document) {
	from := d.blockIndex(op.Block)
	into := d.blockIndex(op.Into)
	if from < 0 || into < 0 || from == into {
		return
	}
	d.blocks[into].runs = append(d.blocks[into].runs, d.blocks[from].runs...)
	d.blocks = slices.Delete(d.blocks, from, from+1)
	d.reindex()
}

func (op MergeRunOp) apply(d *Document) {
	src, ok := d.index[op.Run]
	if !ok {
		return
	}
	dst, ok := d.index[op.Into]
	if !ok || dst.block != src.block {
		return
	}
	b := d.blocks[src.block]
	into := b.runs[dst.index]
	into.text = append(into.text, b.runs[src.index].text...)
	b.runs = slices.Delete(b.runs, src.index, src.index+1)
	d.reindex()
}

func (op RemoveRunOp) apply(d *Document) {
	loc, ok := d.index[op.Run]
	if !ok {
		return
	}
	b := d.blocks[loc.block]
	b.runs = slices.Delete(b.runs, loc.index, loc.index+1)
	d.reindex()
}

// Change describes one committed edit.
type Change struct {
	VersionBefore uint64
	VersionAfter  uint64
	CursorBefore  Pos
	CursorAfter   Pos
	Ops           []Op
}

type changeBuilder struct {
	versionBefore uint64
	cursorBefore  Pos
	ops           []Op
}

// LastChange returns the most recent committed change.
func (d *Document) LastChange() (Change, bool) {
	if !d.hasLastChange {
		return Change{}, false
	}
	out := d.lastChange
	out.Ops = append([]Op(nil), d.lastChange.Ops...)
	return out, true
}

func (d *Document) beginChange() changeBuilder {
	return changeBuilder{
		versionBefore: d.version,
		cursorBefore:  d.cursor,
	}
}

// applyOp transforms the cursor and every live range through op, then
// mutates the tree.
func (d *Document) applyOp(cb *changeBuilder, op Op) {
	if next, ok := op.TransformPos(d.cursor, AffinityForward); ok {
		d.cursor = next
	}
	for ref := range d.refs {
		ref.transform(op)
	}
	op.apply(d)
	cb.ops = append(cb.ops, op)
}

func (d *Document) commitChange(cb changeBuilder) {
	if len(cb.ops) == 0 {
		return
	}
	d.cursor = d.clampPos(d.cursor)
	d.version++
	d.lastChange = Change{
		VersionBefore: cb.versionBefore,
		VersionAfter:  d.version,
		CursorBefore:  cb.cursorBefore,
		CursorAfter:   d.cursor,
		Ops:           append([]Op(nil), cb.ops...),
	}
	d.hasLastChange = true
}

// clampPos keeps p inside an existing run, falling back to the first position.
func (d *Document) clampPos(p Pos) Pos {
	r, ok := d.run(p.Run)
	if !ok {
		return d.FirstPos()
	}
	return Pos{Run: p.Run, Offset: clampInt(p.Offset, 0, len(r.text))}
}
