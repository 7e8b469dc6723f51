package anchor

// Offset moves the card n cells away from the reference.
func Offset(n int) Middleware {
	return func(s State) State {
		s.X, s.Y = shiftMain(s.Placement, s.X, s.Y, n)
		s.mainOffset += n
		return s
	}
}

// Flip moves the card to the opposite side when it overflows the boundary on
// its side and the opposite side overflows less. It flips at most once.
func Flip() Middleware {
	return func(s State) State {
		if s.flipped || s.Boundary.Empty() {
			return s
		}
		cur := mainOverflow(s.Placement, s.X, s.Y, s.Floating, s.Boundary)
		if cur == 0 {
			return s
		}
		opp := s.Placement.Opposite()
		ox, oy := basePosition(s.Reference, s.Floating, opp)
		ox, oy = shiftMain(opp, ox, oy, s.mainOffset)
		if mainOverflow(opp, ox, oy, s.Floating, s.Boundary) < cur {
			s.reset = opp
		}
		return s
	}
}

// Shift slides the card along the reference's edge so it stays padding cells
// inside the boundary. When the card is wider than the padded boundary it is
// pinned to the start edge.
func Shift(padding int) Middleware {
	return func(s State) State {
		if s.Boundary.Empty() {
			return s
		}
		side, _ := s.Placement.parts()
		b := s.Boundary
		if side.vertical() {
			s.X = clampCell(s.X, b.X+padding, b.X+b.W-padding-s.Floating.W)
		} else {
			s.Y = clampCell(s.Y, b.Y+padding, b.Y+b.H-padding-s.Floating.H)
		}
		return s
	}
}

func clampCell(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
