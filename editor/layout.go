package editor

type layoutKey struct {
	docVersion   uint64
	blocks       int
	tabWidth     int
	contentWidth int
}

type layoutRow struct {
	block   int
	segment int
}

type layoutLine struct {
	text   string
	visual VisualLine

	segments       []wrappedSegment
	firstVisualRow int
}

type layoutCache struct {
	valid bool
	key   layoutKey

	lines []layoutLine
	rows  []layoutRow
}

func (m *Model) layoutKey() layoutKey {
	return layoutKey{
		docVersion:   m.doc.Version(),
		blocks:       m.doc.BlockCount(),
		tabWidth:     m.cfg.TabWidth,
		contentWidth: m.viewport.Width,
	}
}

// ensureLayout rebuilds the block layout when the document or the width
// changed since the last call.
func (m *Model) ensureLayout() layoutCache {
	key := m.layoutKey()
	if m.layout.valid && m.layout.key == key {
		return m.layout
	}

	n := m.doc.BlockCount()
	cache := layoutCache{
		valid: true,
		key:   key,
		lines: make([]layoutLine, 0, n),
		rows:  make([]layoutRow, 0, n),
	}
	for bi := 0; bi < n; bi++ {
		text := m.doc.BlockText(bi)
		visual := BuildVisualLine(text, m.cfg.TabWidth)
		segments := wrapSegments(visual, key.contentWidth)

		cache.lines = append(cache.lines, layoutLine{
			text:           text,
			visual:         visual,
			segments:       segments,
			firstVisualRow: len(cache.rows),
		})
		for si := range segments {
			cache.rows = append(cache.rows, layoutRow{block: bi, segment: si})
		}
	}

	m.layout = cache
	return cache
}

func (c layoutCache) clampVisualRow(row int) int {
	if len(c.rows) == 0 {
		return 0
	}
	return clampInt(row, 0, len(c.rows)-1)
}

func (c layoutCache) lineAndSegmentAt(visualRow int) (bi int, line layoutLine, seg wrappedSegment, ok bool) {
	if len(c.rows) == 0 {
		return 0, layoutLine{}, wrappedSegment{}, false
	}
	ref := c.rows[c.clampVisualRow(visualRow)]
	line = c.lines[ref.block]
	return ref.block, line, line.segments[ref.segment], true
}

// visualPosition returns the visual row and the cell within that row where a
// caret at (bi, col) is drawn.
func (c layoutCache) visualPosition(bi, col int) (visualRow, x int, ok bool) {
	if len(c.lines) == 0 {
		return 0, 0, false
	}
	line := c.lines[clampInt(bi, 0, len(c.lines)-1)]
	cell := line.visual.CellForCol(col)

	segIdx := len(line.segments) - 1
	for i, seg := range line.segments {
		if cell < seg.endCell {
			segIdx = i
			break
		}
	}
	seg := line.segments[segIdx]
	return line.firstVisualRow + segIdx, max(cell-seg.startCell, 0), true
}
