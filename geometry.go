package atlas

import "fmt"

// Point is a position in device pixels.
type Point struct {
	X int32
	Y int32
}

// Size is a width and height in device pixels.
type Size struct {
	Width  int32
	Height int32
}

// Area returns Width * Height.
func (s Size) Area() int {
	return int(s.Width) * int(s.Height)
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// String returns a string representation of the size.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Bounds is an axis-aligned rectangle in device pixels.
type Bounds struct {
	Origin Point
	Size   Size
}

// Max returns the exclusive bottom-right corner.
func (b Bounds) Max() Point {
	return Point{X: b.Origin.X + b.Size.Width, Y: b.Origin.Y + b.Size.Height}
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Point) bool {
	m := b.Max()
	return p.X >= b.Origin.X && p.X < m.X && p.Y >= b.Origin.Y && p.Y < m.Y
}

// ContainsBounds reports whether o lies entirely inside b.
func (b Bounds) ContainsBounds(o Bounds) bool {
	bm, om := b.Max(), o.Max()
	return o.Origin.X >= b.Origin.X && o.Origin.Y >= b.Origin.Y &&
		om.X <= bm.X && om.Y <= bm.Y
}

// Intersects reports whether b and o share at least one pixel.
func (b Bounds) Intersects(o Bounds) bool {
	bm, om := b.Max(), o.Max()
	return b.Origin.X < om.X && o.Origin.X < bm.X &&
		b.Origin.Y < om.Y && o.Origin.Y < bm.Y
}

// String returns a string representation of the bounds.
func (b Bounds) String() string {
	return fmt.Sprintf("(%d,%d %v)", b.Origin.X, b.Origin.Y, b.Size)
}
