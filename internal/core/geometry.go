package core

import "math"

// Geometry returns the rectangle covered by index i for the given cell size.
// Columns advance along X, rows along Y.
func Geometry(i Index, cell Size) Rect {
	return RectAt(float64(i.Column)*cell.W, float64(i.Row)*cell.H, cell)
}

// IndexAt returns the index of the cell containing the content point p.
func IndexAt(p Point, cell Size) Index {
	return Index{Row: FloorDiv(p.Y, cell.H), Column: FloorDiv(p.X, cell.W)}
}

// Span is an inclusive range of rows and columns.
type Span struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// SpanFor returns the rows and columns a layout pass must cover for rect. The
// max bounds carry one extra cell so a viewport edge landing exactly on a cell
// boundary is still covered.
func SpanFor(rect Rect, cell Size) Span {
	rect = rect.Canon()
	return Span{
		MinRow: FloorDiv(rect.Min.Y, cell.H),
		MaxRow: FloorDiv(rect.Max.Y, cell.H) + 1,
		MinCol: FloorDiv(rect.Min.X, cell.W),
		MaxCol: FloorDiv(rect.Max.X, cell.W) + 1,
	}
}

// Contains reports whether i lies inside the span.
func (s Span) Contains(i Index) bool {
	return i.Row >= s.MinRow && i.Row <= s.MaxRow &&
		i.Column >= s.MinCol && i.Column <= s.MaxCol
}

// Rows returns the number of rows in the span.
func (s Span) Rows() int { return s.MaxRow - s.MinRow + 1 }

// Cols returns the number of columns in the span.
func (s Span) Cols() int { return s.MaxCol - s.MinCol + 1 }

// Len returns the number of indices in the span.
func (s Span) Len() int {
	if s.Rows() <= 0 || s.Cols() <= 0 {
		return 0
	}
	return s.Rows() * s.Cols()
}

// FloorDiv divides v by d and rounds towards negative infinity.
func FloorDiv(v, d float64) int {
	return int(math.Floor(v / d))
}

// Mod returns a modulo n in the range [0, n) for positive n, so that the
// result stays continuous across zero.
func Mod(a, n int) int {
	return (a%n + n) % n
}
