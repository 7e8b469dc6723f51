package anchor

import "strings"

// Placement names the side of the reference the card goes on and how it is
// aligned along that side.
type Placement string

const (
	Top         Placement = "top"
	TopStart    Placement = "top-start"
	TopEnd      Placement = "top-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	BottomEnd   Placement = "bottom-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
	LeftEnd     Placement = "left-end"
	Right       Placement = "right"
	RightStart  Placement = "right-start"
	RightEnd    Placement = "right-end"
)

// Strategy decides the coordinate space of the result. Fixed positions are
// relative to the viewport; absolute positions are relative to the scrolled
// content and move with it.
type Strategy string

const (
	StrategyAbsolute Strategy = "absolute"
	StrategyFixed    Strategy = "fixed"
)

type side uint8

const (
	sideBottom side = iota
	sideTop
	sideLeft
	sideRight
)

type alignment uint8

const (
	alignCenter alignment = iota
	alignStart
	alignEnd
)

// ParsePlacement accepts the names above. ok is false for anything else.
func ParsePlacement(s string) (Placement, bool) {
	p := Placement(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case Top, TopStart, TopEnd, Bottom, BottomStart, BottomEnd,
		Left, LeftStart, LeftEnd, Right, RightStart, RightEnd:
		return p, true
	}
	return "", false
}

func (p Placement) parts() (side, alignment) {
	name, align, _ := strings.Cut(string(p), "-")
	var s side
	switch name {
	case "top":
		s = sideTop
	case "left":
		s = sideLeft
	case "right":
		s = sideRight
	default:
		s = sideBottom
	}
	a := alignCenter
	switch align {
	case "start":
		a = alignStart
	case "end":
		a = alignEnd
	}
	return s, a
}

// Opposite mirrors the side and keeps the alignment.
func (p Placement) Opposite() Placement {
	s, _ := p.parts()
	_, align, hasAlign := strings.Cut(string(p), "-")
	var name string
	switch s {
	case sideTop:
		name = "bottom"
	case sideBottom:
		name = "top"
	case sideLeft:
		name = "right"
	case sideRight:
		name = "left"
	}
	if hasAlign {
		return Placement(name + "-" + align)
	}
	return Placement(name)
}

func (s side) vertical() bool { return s == sideTop || s == sideBottom }
