package grid

import (
	"context"

	"infigrid/internal/core"
	"infigrid/internal/kernel"
)

// Event is an input from the host window or from the application.
type Event interface {
	event()
}

// ScrollEvent reports that the viewport moved to Rect.
type ScrollEvent struct{ Rect core.Rect }

// ZoomEvent reports that the viewport was rescaled to Rect.
type ZoomEvent struct{ Rect core.Rect }

// CycleEvent is a tap: advance to the next kernel.
type CycleEvent struct{}

// RefreshEvent reruns the kernel on every active cell.
type RefreshEvent struct{}

// ProcessEvent reruns the kernel on a single cell.
type ProcessEvent struct{ Index core.Index }

// SelectEvent switches to a specific kernel.
type SelectEvent struct{ Kernel kernel.Tag }

func (ScrollEvent) event()  {}
func (ZoomEvent) event()    {}
func (CycleEvent) event()   {}
func (RefreshEvent) event() {}
func (ProcessEvent) event() {}
func (SelectEvent) event()  {}

// Handle applies a single event.
func (e *Engine) Handle(ev Event) {
	switch ev := ev.(type) {
	case ScrollEvent:
		e.Layout(ev.Rect)
	case ZoomEvent:
		e.Layout(ev.Rect)
	case CycleEvent:
		e.NextKernel()
	case RefreshEvent:
		e.Refresh()
	case ProcessEvent:
		e.ProcessItem(ev.Index)
	case SelectEvent:
		e.SelectKernel(ev.Kernel)
	}
}

// Run applies events in arrival order until the channel is closed or ctx is
// done. It returns ctx.Err() on cancellation and nil once events is drained.
func (e *Engine) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.Handle(ev)
		}
	}
}
