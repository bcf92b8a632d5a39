package grid

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"infigrid/internal/core"
	"infigrid/internal/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	painted []core.Index
	evicted []core.Index
}

func (r *recorder) Paint(i core.Index, _ core.Rect, _ kernel.Attributes) {
	r.painted = append(r.painted, i)
}

func (r *recorder) Evict(i core.Index, _ core.Rect) {
	r.evicted = append(r.evicted, i)
}

func (r *recorder) reset() {
	r.painted = nil
	r.evicted = nil
}

var cell10 = core.Size{W: 10, H: 10}

func newTestEngine(opts ...Option) *Engine {
	return New(Config{CellSize: cell10}, opts...)
}

func snapshot(e *Engine) map[core.Index]kernel.Attributes {
	out := map[core.Index]kernel.Attributes{}
	for _, c := range e.AppendCells(nil) {
		out[c.Index] = c.Attrs
	}
	return out
}

func counting(n *atomic.Int64) kernel.Func {
	return func(i core.Index, out *kernel.Attributes) {
		n.Add(1)
		out.Fill = kernel.Sky
	}
}

func TestLayoutMaterializesInclusiveSpan(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(WithPainter(rec))

	st := e.Layout(core.RectAt(0, 0, core.Size{W: 30, H: 20}))

	assert.Equal(t, core.Span{MinRow: 0, MaxRow: 3, MinCol: 0, MaxCol: 4}, st.Span)
	assert.Equal(t, 20, st.Materialized)
	assert.Equal(t, 20, st.Allocated)
	assert.Zero(t, st.Evicted)
	assert.Len(t, rec.painted, 20)

	c, ok := e.Cell(core.Index{Row: 3, Column: 4})
	require.True(t, ok)
	assert.Equal(t, core.RectAt(40, 30, cell10), c.Frame)
	assert.Equal(t, kernel.White, c.Attrs.Fill, "blank kernel should have run")
}

func TestScrollByOneColumnSwapsOneColumn(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(WithPainter(rec))
	view := core.Size{W: 50, H: 30}

	e.Layout(core.RectAt(0, 0, view))
	before := e.Stats().Active
	rec.reset()

	st := e.Layout(core.RectAt(10, 0, view))

	rows := st.Span.Rows()
	assert.Equal(t, rows, st.Evicted)
	assert.Equal(t, rows, st.Materialized)
	assert.Zero(t, st.Allocated, "evicted cells must be reused")
	assert.Equal(t, before, e.Stats().Active)
	for _, i := range rec.evicted {
		assert.Equal(t, 0, i.Column, "evicted %v is not on the trailing edge", i)
	}
	for _, i := range rec.painted {
		assert.Equal(t, st.Span.MaxCol, i.Column, "materialized %v is not on the leading edge", i)
	}
}

func TestPoolReuseBound(t *testing.T) {
	e := newTestEngine()
	view := core.Size{W: 95, H: 73}
	x, y := -40.0, 12.5
	maxActive := 0
	for step := 0; step < 300; step++ {
		e.Layout(core.RectAt(x, y, view))
		x += 3.7
		y -= 2.3

		maxActive = max(maxActive, len(e.active))
		seen := map[Handle]bool{}
		for i, h := range e.active {
			require.False(t, e.pool.IsFree(h), "handle %d of %v is also in the pool", h, i)
			require.False(t, seen[h], "handle %d backs two indices", h)
			seen[h] = true
		}
		require.Equal(t, e.pool.Allocated(), len(e.active)+e.pool.Free())
	}
	assert.LessOrEqual(t, e.pool.Allocated(), maxActive+1)
}

func TestKeptCellsDoNotRerunKernel(t *testing.T) {
	var calls atomic.Int64
	e := newTestEngine(WithKernel(kernel.Custom), WithCustomKernel(counting(&calls)))
	view := core.Size{W: 40, H: 40}

	e.Layout(core.RectAt(0, 0, view))
	first := calls.Load()
	require.EqualValues(t, e.Stats().Active, first)

	// Moving inside the same cell keeps the span.
	st := e.Layout(core.RectAt(2.5, 4, view))
	assert.Zero(t, st.Materialized)
	assert.Equal(t, first, calls.Load())
}

func TestRefreshIsIdempotent(t *testing.T) {
	for _, tag := range kernel.Tags() {
		e := newTestEngine(WithCustomKernel(kernel.Random(3)))
		e.Layout(core.RectAt(-55, -35, core.Size{W: 120, H: 80}))
		e.SelectKernel(tag)

		e.Refresh()
		first := snapshot(e)
		e.Refresh()
		assert.Equal(t, first, snapshot(e), "kernel %s", tag)
	}
}

func TestRefreshKeepsMembership(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(WithPainter(rec))
	e.Layout(core.RectAt(0, 0, core.Size{W: 30, H: 30}))
	before := snapshot(e)
	rec.reset()

	e.NextKernel()

	after := snapshot(e)
	assert.Len(t, after, len(before))
	for i := range before {
		assert.Contains(t, after, i)
	}
	assert.Len(t, rec.painted, len(before))
	assert.Empty(t, rec.evicted)
	assert.Equal(t, kernel.Checkerboard, e.Kernel())
}

func TestProcessItemOutsideActiveMapIsNoop(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(WithPainter(rec))
	e.Layout(core.RectAt(0, 0, core.Size{W: 30, H: 30}))
	before := snapshot(e)
	rec.reset()

	assert.False(t, e.ProcessItem(core.Index{Row: 100, Column: -3}))
	assert.Equal(t, before, snapshot(e))
	assert.Empty(t, rec.painted)
}

func TestProcessItemReprocessesOneCell(t *testing.T) {
	var calls atomic.Int64
	rec := &recorder{}
	e := newTestEngine(WithPainter(rec), WithKernel(kernel.Custom), WithCustomKernel(counting(&calls)))
	e.Layout(core.RectAt(0, 0, core.Size{W: 30, H: 30}))
	calls.Store(0)
	rec.reset()

	target := core.Index{Row: 1, Column: 2}
	assert.True(t, e.ProcessItem(target))
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, []core.Index{target}, rec.painted)
}

func TestSetCustomKernelRefreshesOnlyWhenSelected(t *testing.T) {
	var calls atomic.Int64
	e := newTestEngine()
	e.Layout(core.RectAt(0, 0, core.Size{W: 30, H: 30}))
	active := int64(e.Stats().Active)

	e.SetCustomKernel(counting(&calls))
	assert.Zero(t, calls.Load(), "blank is selected, custom must not run")

	e.SelectKernel(kernel.Custom)
	assert.Equal(t, active, calls.Load())

	e.SetCustomKernel(kernel.Solid(kernel.Ember))
	for _, a := range snapshot(e) {
		assert.Equal(t, kernel.Ember, a.Fill)
	}
}

func TestUseCustomKernelRefreshesOnce(t *testing.T) {
	var calls atomic.Int64
	e := newTestEngine()
	e.Layout(core.RectAt(0, 0, core.Size{W: 30, H: 30}))
	active := int64(e.Stats().Active)

	e.UseCustomKernel(counting(&calls))
	assert.Equal(t, kernel.Custom, e.Kernel())
	assert.Equal(t, active, calls.Load())

	calls.Store(0)
	e.UseCustomKernel(counting(&calls))
	assert.Equal(t, active, calls.Load(), "already selected, still one pass")
}

func TestKernelSeesTranslatedIndex(t *testing.T) {
	var seen core.Index
	spy := func(i core.Index, out *kernel.Attributes) { seen = i }
	origin := OriginFor(1000, cell10)
	e := New(Config{CellSize: cell10, Origin: origin}, WithKernel(kernel.Custom), WithCustomKernel(spy))
	require.Equal(t, core.Index{Row: -50, Column: -50}, origin)

	centre := e.GridIndex(core.Index{})
	assert.Equal(t, core.Index{Row: 50, Column: 50}, centre)
	assert.Equal(t, core.Point{X: 500, Y: 500}, e.Config().ContentOrigin())

	e.Layout(core.Geometry(centre, cell10).Inset(1))
	require.True(t, e.ProcessItem(centre))
	assert.Equal(t, core.Index{}, seen)
}

func TestOriginForDefaultContent(t *testing.T) {
	got := OriginFor(1e9, core.Size{W: 40, H: 40})
	assert.Equal(t, core.Index{Row: -12_500_000, Column: -12_500_000}, got)
}

func TestBorderIsClearedBetweenKernels(t *testing.T) {
	e := newTestEngine(
		WithKernel(kernel.Custom),
		WithCustomKernel(kernel.Bordered(kernel.DefaultBuiltins(), kernel.Border{Color: kernel.Gray, Width: 1})),
	)
	e.Layout(core.RectAt(0, 0, core.Size{W: 20, H: 20}))
	for _, a := range snapshot(e) {
		require.NotNil(t, a.Border)
	}
	e.SelectKernel(kernel.Circle)
	for _, a := range snapshot(e) {
		assert.Nil(t, a.Border)
	}
}

func TestParallelEvaluationMatchesSerial(t *testing.T) {
	serial := New(Config{CellSize: cell10}, WithKernel(kernel.Custom), WithCustomKernel(kernel.Random(9)))
	parallel := New(Config{CellSize: cell10, Workers: 4, ParallelThreshold: 1}, WithKernel(kernel.Custom), WithCustomKernel(kernel.Random(9)))
	rect := core.RectAt(-300, -200, core.Size{W: 640, H: 480})

	serial.Layout(rect)
	parallel.Layout(rect)
	assert.Equal(t, snapshot(serial), snapshot(parallel))

	serial.SelectKernel(kernel.Circle)
	parallel.SelectKernel(kernel.Circle)
	assert.Equal(t, snapshot(serial), snapshot(parallel))
}

func TestPoolReleaseMisuse(t *testing.T) {
	p := NewPool(kernel.Attributes{})
	h := p.Acquire()
	p.Release(h)
	assert.Panics(t, func() { p.Release(h) })
	assert.Panics(t, func() { p.Release(Handle(42)) })
	assert.Equal(t, h, p.Acquire(), "free slot should be reused")
	assert.Equal(t, 1, p.Allocated())
}

func TestReleasedCellsForgetVisualState(t *testing.T) {
	p := NewPool(kernel.Attributes{Fill: kernel.CellGray})
	h := p.Acquire()
	p.Cell(h).attach(core.RectAt(5, 5, cell10))
	p.Cell(h).apply(kernel.Attributes{Fill: kernel.Ember, Border: &kernel.Border{Width: 2}})
	p.Release(h)

	c := p.Cell(h)
	assert.False(t, c.Attached())
	assert.Equal(t, core.Rect{}, c.Frame())
	assert.Equal(t, kernel.Attributes{Fill: kernel.CellGray}, c.Attributes())
}

func TestNewRejectsInvalidCellSize(t *testing.T) {
	assert.Panics(t, func() { New(Config{}) })
}

func TestNonFiniteViewportIsIgnored(t *testing.T) {
	e := newTestEngine()
	e.Layout(core.RectAt(0, 0, core.Size{W: 20, H: 20}))
	before := e.Stats()
	st := e.Layout(core.Rect{Max: core.Point{X: math.Inf(1), Y: 10}})
	assert.Equal(t, PassStats{}, st)
	assert.Equal(t, before, e.Stats())
}

func TestCloseEvictsEverything(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(WithPainter(rec))
	e.Layout(core.RectAt(0, 0, core.Size{W: 20, H: 20}))
	active := e.Stats().Active

	e.Close()

	assert.Len(t, rec.evicted, active)
	assert.Equal(t, Stats{Passes: 1}, e.Stats())
}

func TestRunConsumesEvents(t *testing.T) {
	e := newTestEngine()
	events := make(chan Event, 4)
	events <- ScrollEvent{Rect: core.RectAt(0, 0, core.Size{W: 20, H: 20})}
	events <- CycleEvent{}
	events <- SelectEvent{Kernel: kernel.Circle}
	events <- ZoomEvent{Rect: core.RectAt(0, 0, core.Size{W: 40, H: 40})}
	close(events)

	require.NoError(t, e.Run(context.Background(), events))
	st := e.Stats()
	assert.Equal(t, 2, st.Passes)
	assert.Equal(t, kernel.Circle, st.Kernel)
	assert.Equal(t, 36, st.Active)
}

func TestRunStopsOnCancel(t *testing.T) {
	e := newTestEngine()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, make(chan Event)) }()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
