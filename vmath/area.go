package vmath

// Rect is an axis-aligned rectangle in absolute screen coordinates
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the center point of the rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if point is within the closed rect [x, x+w] x [y, y+h]
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Empty reports a degenerate rect (no area)
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect covering both; an empty operand is ignored
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.Width, o.X+o.Width)
	y1 := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// CenteredAt returns a rect of the given size centered on p
func CenteredAt(p Point, width, height float64) Rect {
	return Rect{X: p.X - width/2, Y: p.Y - height/2, Width: width, Height: height}
}
