package core

import "math"

// Index identifies a cell of the unbounded logical grid.
type Index struct {
	Row    int
	Column int
}

// Offset returns the component-wise sum of i and by.
func (i Index) Offset(by Index) Index {
	return Index{Row: i.Row + by.Row, Column: i.Column + by.Column}
}

// Neg returns the index mirrored through the origin.
func (i Index) Neg() Index { return Index{Row: -i.Row, Column: -i.Column} }

// Size describes the extent of a cell or a viewport in content units.
type Size struct {
	W float64
	H float64
}

// Valid reports whether both dimensions are strictly positive and finite.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0 && !math.IsInf(s.W, 0) && !math.IsInf(s.H, 0)
}

// Point is a position in content coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in content coordinates. Min is inclusive,
// Max is exclusive.
type Rect struct {
	Min Point
	Max Point
}

// RectAt builds a rectangle from an origin and a size.
func RectAt(x, y float64, size Size) Rect {
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + size.W, Y: y + size.H}}
}

// Dx returns the rectangle's width.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the rectangle's height.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{W: r.Dx(), H: r.Dy()} }

// Empty reports whether the rectangle contains no area.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Canon returns the rectangle with Min and Max swapped where needed so that
// Min <= Max on both axes.
func (r Rect) Canon() Rect {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Intersects reports whether r and s share a non-empty area. Rectangles that
// only touch along an edge do not intersect.
func (r Rect) Intersects(s Rect) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// Inset shrinks the rectangle by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	r.Min.X += d
	r.Min.Y += d
	r.Max.X -= d
	r.Max.Y -= d
	return r
}

// Translate moves the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.Min.X += dx
	r.Max.X += dx
	r.Min.Y += dy
	r.Max.Y += dy
	return r
}
