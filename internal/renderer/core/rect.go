package core

// Point is a grid position (0-indexed column and row).
type Point struct {
	X, Y int
}

// Rect is an integer bounding box in grid coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a rectangle from position and size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if (x, y) is within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() &&
		y >= r.Y && y < r.Bottom()
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !r.IsEmpty() && !other.IsEmpty() &&
		r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// Intersection returns the overlapping region of two rectangles.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  min(r.Right(), other.Right()) - x,
		Height: min(r.Bottom(), other.Bottom()) - y,
	}
}

// Clamp returns the part of r that lies inside [0,width)×[0,height).
func (r Rect) Clamp(width, height int) Rect {
	return r.Intersection(Rect{Width: width, Height: height})
}

// Inset returns a rectangle shrunk by the given amounts. Width and height
// never go negative.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	out := Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}
