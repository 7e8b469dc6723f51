package anchor

type Point struct {
	X, Y int
}

// Rect is a box of W x H cells with its top-left corner at X, Y.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the cell at p lies inside r.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Union returns the bounding box of r and o. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Outside reports whether a pointer press at p hits neither the card nor its
// reference. Such a press hides the card; it never releases the feedback
// behind it.
func Outside(p Point, card, reference Rect) bool {
	return !card.Contains(p) && !reference.Contains(p)
}
