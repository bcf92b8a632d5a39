package grid

import (
	"math"

	"infigrid/internal/core"
)

// PassStats reports what a layout pass changed.
type PassStats struct {
	Span         core.Span
	Evicted      int
	Materialized int
	Kept         int
	// Allocated counts cells constructed during the pass (pool misses).
	Allocated int
}

// Layout runs one layout pass for the viewport rectangle rect, given in
// content coordinates.
//
// The pass covers rows floor(minY/h) through floor(maxY/h)+1 and the matching
// columns, both ends inclusive. Active cells outside that span are evicted
// and returned to the pool before any new cell is acquired, so a pass that
// scrolls by less than its own size reuses the cells it just released. Cells
// that stay inside the span keep their attributes; the kernel only runs for
// newly materialized cells.
func (e *Engine) Layout(rect core.Rect) PassStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	rect = rect.Canon()
	if !finite(rect) {
		e.log.Warn("layout pass skipped: viewport is not finite", "rect", rect)
		return PassStats{}
	}
	span := core.SpanFor(rect, e.cfg.CellSize)
	allocated := e.pool.Allocated()
	st := PassStats{Span: span}

	for i, h := range e.active {
		if span.Contains(i) {
			continue
		}
		e.painter.Evict(i, e.pool.Cell(h).Frame())
		e.pool.Release(h)
		delete(e.active, i)
		st.Evicted++
	}
	st.Kept = len(e.active)

	e.batch.reset()
	for row := span.MinRow; row <= span.MaxRow; row++ {
		for col := span.MinCol; col <= span.MaxCol; col++ {
			i := core.Index{Row: row, Column: col}
			if _, ok := e.active[i]; ok {
				continue
			}
			h := e.pool.Acquire()
			e.pool.Cell(h).attach(core.Geometry(i, e.cfg.CellSize))
			e.active[i] = h
			e.batch.add(i, h)
		}
	}
	st.Materialized = len(e.batch.index)
	e.runBatch()

	st.Allocated = e.pool.Allocated() - allocated
	e.viewport = rect
	e.passes++
	e.log.Debug("layout pass",
		"pass", e.passes,
		"evicted", st.Evicted,
		"materialized", st.Materialized,
		"kept", st.Kept,
		"allocated", st.Allocated,
		"active", len(e.active),
		"free", e.pool.Free())
	return st
}

func finite(r core.Rect) bool {
	for _, v := range [...]float64{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
