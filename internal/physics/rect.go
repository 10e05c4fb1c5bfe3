package physics

// Rect is an axis-aligned box described by its center and half extents.
type Rect struct {
	X, Y   float64
	HW, HH float64
}

// RectAround builds a Rect centered on (x, y).
func RectAround(x, y, hw, hh float64) Rect {
	return Rect{X: x, Y: y, HW: hw, HH: hh}
}

// Overlaps reports whether two rects share interior area.
// Rects that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	dx := r.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := r.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < r.HW+o.HW && dy < r.HH+o.HH
}
