package grid

import (
	"infigrid/internal/core"
	"infigrid/internal/kernel"
)

// Painter receives cell updates from the engine. Calls happen while the
// engine lock is held, so a Painter must not call back into the Engine.
type Painter interface {
	// Paint is called after a cell was materialized or reprocessed.
	Paint(i core.Index, frame core.Rect, attrs kernel.Attributes)
	// Evict is called before a cell leaves the active map.
	Evict(i core.Index, frame core.Rect)
}

// PainterFunc adapts a paint callback to Painter. Evictions are ignored.
type PainterFunc func(i core.Index, frame core.Rect, attrs kernel.Attributes)

// Paint calls f.
func (f PainterFunc) Paint(i core.Index, frame core.Rect, attrs kernel.Attributes) {
	f(i, frame, attrs)
}

// Evict does nothing.
func (f PainterFunc) Evict(core.Index, core.Rect) {}

type nopPainter struct{}

func (nopPainter) Paint(core.Index, core.Rect, kernel.Attributes) {}
func (nopPainter) Evict(core.Index, core.Rect)                    {}

// CellView is a read-only snapshot of one active cell.
type CellView struct {
	Index core.Index
	Frame core.Rect
	Attrs kernel.Attributes
}
