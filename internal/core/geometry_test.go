package core

import (
	"testing"
	"time"
)

func TestGeometryOffsetTranslatesOrigin(t *testing.T) {
	size := Size{W: 40, H: 25}
	for _, i := range []Index{{0, 0}, {3, -7}, {-12, 9}, {-1, -1}} {
		for _, by := range []Index{{0, 1}, {2, -3}, {-5, -5}, {100, 0}} {
			got := Geometry(i.Offset(by), size).Min
			base := Geometry(i, size).Min
			want := Point{X: base.X + float64(by.Column)*size.W, Y: base.Y + float64(by.Row)*size.H}
			if got != want {
				t.Fatalf("Geometry(%v+%v) origin = %v, want %v", i, by, got, want)
			}
		}
	}
}

func TestGeometryUsesCellHeightForRows(t *testing.T) {
	r := Geometry(Index{Row: 2, Column: 3}, Size{W: 10, H: 4})
	if r.Min != (Point{X: 30, Y: 8}) || r.Max != (Point{X: 40, Y: 12}) {
		t.Fatalf("unexpected rect %+v", r)
	}
}

func TestModIsFloorBased(t *testing.T) {
	cases := []struct{ a, n, want int }{
		{5, 2, 1}, {4, 2, 0}, {-1, 2, 1}, {-2, 2, 0}, {-3, 2, 1}, {-7, 5, 3},
	}
	for _, c := range cases {
		if got := Mod(c.a, c.n); got != c.want {
			t.Fatalf("Mod(%d, %d) = %d, want %d", c.a, c.n, got, c.want)
		}
	}
}

func TestSpanForPadsMaxEdges(t *testing.T) {
	cell := Size{W: 10, H: 10}
	s := SpanFor(RectAt(0, 0, Size{W: 30, H: 20}), cell)
	if s != (Span{MinRow: 0, MaxRow: 3, MinCol: 0, MaxCol: 4}) {
		t.Fatalf("unexpected span %+v", s)
	}
	if s.Len() != 4*5 {
		t.Fatalf("span len = %d, want 20", s.Len())
	}

	neg := SpanFor(RectAt(-15, -5, Size{W: 10, H: 10}), cell)
	if neg.MinCol != -2 || neg.MaxCol != 0 || neg.MinRow != -1 || neg.MaxRow != 1 {
		t.Fatalf("negative rect span %+v", neg)
	}
}

func TestRectIntersectsExcludesTouchingEdges(t *testing.T) {
	a := RectAt(0, 0, Size{W: 10, H: 10})
	if a.Intersects(RectAt(10, 0, Size{W: 5, H: 5})) {
		t.Fatal("edge-adjacent rects must not intersect")
	}
	if !a.Intersects(RectAt(9.5, 9.5, Size{W: 5, H: 5})) {
		t.Fatal("overlapping rects must intersect")
	}
	inv := Rect{Min: Point{X: 5, Y: 5}, Max: Point{X: 0, Y: 0}}.Canon()
	if inv.Min != (Point{}) || inv.Max != (Point{X: 5, Y: 5}) {
		t.Fatalf("Canon did not normalise: %+v", inv)
	}
}

func TestIndexAt(t *testing.T) {
	cell := Size{W: 40, H: 40}
	if got := IndexAt(Point{X: -0.5, Y: 79.9}, cell); got != (Index{Row: 1, Column: -1}) {
		t.Fatalf("IndexAt = %v", got)
	}
}

func TestForIndexIsDeterministic(t *testing.T) {
	a := ForIndex(7, Index{Row: -3, Column: 4}).Range(0, 1)
	b := ForIndex(7, Index{Row: -3, Column: 4}).Range(0, 1)
	c := ForIndex(7, Index{Row: 4, Column: -3}).Range(0, 1)
	if a != b {
		t.Fatalf("same seed and index produced %v and %v", a, b)
	}
	if a == c {
		t.Fatal("transposed index should produce a different stream")
	}
}

func TestFixedStepAdvance(t *testing.T) {
	fs := NewFixedStep(10)
	if fs.Interval() != 100*time.Millisecond {
		t.Fatalf("interval = %v", fs.Interval())
	}
	if n := fs.Advance(0); n != 1 {
		t.Fatalf("first advance should release the primed tick, got %d", n)
	}
	if n := fs.Advance(250 * time.Millisecond); n != 2 {
		t.Fatalf("advance(250ms) = %d, want 2", n)
	}
	if n := fs.Advance(50 * time.Millisecond); n != 1 {
		t.Fatalf("leftover 50ms + 50ms should tick once, got %d", n)
	}
}
