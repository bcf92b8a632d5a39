package anim

import (
	"image/color"
	"testing"
	"time"

	"infigrid/internal/core"
	"infigrid/internal/grid"
	"infigrid/internal/kernel"
)

var floodColor = color.RGBA{R: 250, G: 200, B: 40, A: 255}

func interiorCount(c kernel.CircleParams) int {
	n := 0
	r := c.Radius
	for row := -r; row <= r; row++ {
		for col := -r; col <= r; col++ {
			inner := float64(c.Radius - c.Border)
			if float64(row*row+col*col) < inner*inner {
				n++
			}
		}
	}
	return n
}

func TestFloodGrowsOneRingPerStep(t *testing.T) {
	f := NewFlood(kernel.DefaultBuiltins(), floodColor)
	want := []int{1, 4, 8, 12}
	for step, n := range want {
		got := f.Step()
		if len(got) != n {
			t.Fatalf("step %d: expected %d new cells, got %d", step, n, len(got))
		}
		for _, i := range got {
			d, ok := f.Depth(i)
			if !ok || d != step {
				t.Fatalf("cell %v: expected depth %d, got %d (%v)", i, step, d, ok)
			}
		}
	}
}

func TestFloodStopsAtRing(t *testing.T) {
	b := kernel.DefaultBuiltins()
	f := NewFlood(b, floodColor)
	for i := 0; i < 100 && !f.Done(); i++ {
		f.Step()
	}
	if !f.Done() {
		t.Fatalf("flood did not finish")
	}
	if got, want := f.Filled(), interiorCount(b.Circle); got != want {
		t.Fatalf("expected %d filled cells, got %d", want, got)
	}
	if got := f.Step(); got != nil {
		t.Fatalf("expected no progress after completion, got %v", got)
	}

	var a kernel.Attributes
	f.Kernel(core.Index{Row: 0, Column: 9}, &a)
	if a.Fill != b.Circle.Ring {
		t.Fatalf("ring cell should keep ring colour, got %v", a.Fill)
	}
	f.Kernel(core.Index{Row: 3, Column: 3}, &a)
	if a.Fill != floodColor {
		t.Fatalf("interior cell should be flooded, got %v", a.Fill)
	}
}

func TestFloodReset(t *testing.T) {
	f := NewFlood(kernel.DefaultBuiltins(), floodColor)
	f.Step()
	f.Step()
	cleared := f.Reset(nil)
	if len(cleared) != 5 {
		t.Fatalf("expected 5 cleared cells, got %d", len(cleared))
	}
	if f.Filled() != 0 || f.Done() {
		t.Fatalf("reset flood should be idle")
	}
	var a kernel.Attributes
	f.Kernel(core.Index{}, &a)
	if a.Fill != kernel.DefaultBuiltins().Circle.Fill {
		t.Fatalf("origin should render as circle fill after reset, got %v", a.Fill)
	}
}

func TestFloodWithoutInterior(t *testing.T) {
	b := kernel.DefaultBuiltins()
	b.Circle.Border = b.Circle.Radius
	f := NewFlood(b, floodColor)
	if got := f.Step(); got != nil {
		t.Fatalf("expected no cells, got %v", got)
	}
	if f.Done() {
		t.Fatalf("flood with no interior never starts")
	}
}

func newFloodEngine() *grid.Engine {
	e := grid.New(grid.Config{
		CellSize: core.Size{W: 10, H: 10},
		Origin:   core.Index{Row: -10, Column: -10},
	})
	e.Layout(core.RectAt(0, 0, core.Size{W: 200, H: 200}))
	return e
}

func TestDriverReprocessesChangedCells(t *testing.T) {
	e := newFloodEngine()
	d := NewDriver(e, 10, floodColor, nil)
	d.Start()
	if e.Kernel() != kernel.Custom {
		t.Fatalf("expected custom kernel to be selected, got %v", e.Kernel())
	}

	if n := d.Advance(0); n != 1 {
		t.Fatalf("expected the primed tick to flood the origin, got %d cells", n)
	}
	centre, ok := e.Cell(e.GridIndex(core.Index{}))
	if !ok || centre.Attrs.Fill != floodColor {
		t.Fatalf("origin cell not flooded: %+v", centre)
	}
	next, _ := e.Cell(e.GridIndex(core.Index{Row: 1}))
	if next.Attrs.Fill == floodColor {
		t.Fatalf("neighbour flooded too early")
	}

	if n := d.Advance(50 * time.Millisecond); n != 0 {
		t.Fatalf("expected no tick before the interval, got %d", n)
	}
	if n := d.Advance(50 * time.Millisecond); n != 4 {
		t.Fatalf("expected second ring of 4 cells, got %d", n)
	}
}

func TestDriverRunsToCompletion(t *testing.T) {
	e := newFloodEngine()
	d := NewDriver(e, 10, floodColor, nil)
	d.Start()
	d.Advance(time.Hour)
	if d.Running() {
		t.Fatalf("driver should stop once the flood is done")
	}

	b := e.Builtins()
	inner := float64(b.Circle.Radius - b.Circle.Border)
	for _, c := range e.AppendCells(nil) {
		k := e.KernelIndex(c.Index)
		flooded := float64(k.Row*k.Row+k.Column*k.Column) < inner*inner
		if flooded != (c.Attrs.Fill == floodColor) {
			t.Fatalf("kernel cell %v: flooded=%v fill=%v", k, flooded, c.Attrs.Fill)
		}
	}
}

func TestDriverToggle(t *testing.T) {
	e := newFloodEngine()
	d := NewDriver(e, 10, floodColor, nil)
	d.Toggle()
	if !d.Running() {
		t.Fatalf("toggle should start the driver")
	}
	d.Toggle()
	if d.Running() {
		t.Fatalf("toggle should stop the driver")
	}
	if n := d.Advance(time.Second); n != 0 {
		t.Fatalf("stopped driver advanced %d cells", n)
	}
}
