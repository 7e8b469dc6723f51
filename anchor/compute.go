package anchor

// Position is a computed card origin.
type Position struct {
	X, Y      int
	Placement Placement
	Strategy  Strategy
}

// State is what middleware sees and returns. X and Y are the card's top-left
// corner in viewport coordinates.
type State struct {
	X, Y      int
	Placement Placement
	Reference Rect
	Floating  Rect
	Boundary  Rect

	mainOffset int
	flipped    bool
	reset      Placement
}

// Middleware adjusts a placement. See Offset, Flip and Shift.
type Middleware func(State) State

type Options struct {
	// Placement defaults to BottomStart.
	Placement Placement
	// Strategy defaults to StrategyFixed.
	Strategy Strategy
	// Boundary is the viewport the card must stay inside. An empty boundary
	// disables Flip and Shift.
	Boundary Rect
	// Scroll is added to the result under StrategyAbsolute.
	Scroll     Point
	Middleware []Middleware
}

// Compute places floating (only its size is used) next to reference.
func Compute(reference, floating Rect, opts Options) Position {
	placement := opts.Placement
	if placement == "" {
		placement = BottomStart
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyFixed
	}

	var s State
	flipped := false
	for {
		s = State{
			Placement: placement,
			Reference: reference,
			Floating:  floating,
			Boundary:  opts.Boundary,
			flipped:   flipped,
		}
		s.X, s.Y = basePosition(reference, floating, placement)
		for _, mw := range opts.Middleware {
			s = mw(s)
			if s.reset != "" {
				break
			}
		}
		if s.reset == "" || flipped {
			break
		}
		placement = s.reset
		flipped = true
	}

	pos := Position{X: s.X, Y: s.Y, Placement: s.Placement, Strategy: strategy}
	if strategy == StrategyAbsolute {
		pos.X += opts.Scroll.X
		pos.Y += opts.Scroll.Y
	}
	return pos
}

func basePosition(ref, fl Rect, p Placement) (x, y int) {
	s, a := p.parts()
	switch s {
	case sideBottom:
		y = ref.Y + ref.H
	case sideTop:
		y = ref.Y - fl.H
	case sideLeft:
		x = ref.X - fl.W
	case sideRight:
		x = ref.X + ref.W
	}

	if s.vertical() {
		switch a {
		case alignStart:
			x = ref.X
		case alignEnd:
			x = ref.X + ref.W - fl.W
		default:
			x = ref.X + (ref.W-fl.W)/2
		}
		return x, y
	}
	switch a {
	case alignStart:
		y = ref.Y
	case alignEnd:
		y = ref.Y + ref.H - fl.H
	default:
		y = ref.Y + (ref.H-fl.H)/2
	}
	return x, y
}

// mainOverflow is how many cells the card sticks out of the boundary on the
// side it is placed on.
func mainOverflow(p Placement, x, y int, fl, b Rect) int {
	s, _ := p.parts()
	switch s {
	case sideBottom:
		return max(0, y+fl.H-(b.Y+b.H))
	case sideTop:
		return max(0, b.Y-y)
	case sideLeft:
		return max(0, b.X-x)
	default:
		return max(0, x+fl.W-(b.X+b.W))
	}
}

func shiftMain(p Placement, x, y, n int) (int, int) {
	s, _ := p.parts()
	switch s {
	case sideBottom:
		y += n
	case sideTop:
		y -= n
	case sideLeft:
		x -= n
	case sideRight:
		x += n
	}
	return x, y
}
