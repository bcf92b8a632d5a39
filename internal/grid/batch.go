package grid

import (
	"slices"

	"infigrid/internal/core"
	"infigrid/internal/kernel"

	"golang.org/x/sync/errgroup"
)

// batch collects the cells whose kernels run together. Slices are reused
// between passes.
type batch struct {
	index  []core.Index
	handle []Handle
	attrs  []kernel.Attributes
}

func (b *batch) reset() {
	b.index = b.index[:0]
	b.handle = b.handle[:0]
}

func (b *batch) add(i core.Index, h Handle) {
	b.index = append(b.index, i)
	b.handle = append(b.handle, h)
}

// runBatch evaluates the active kernel for every queued cell, then applies the
// results and notifies the painter. Only the kernel calls may run in
// parallel; everything touching the pool or the painter stays on the calling
// goroutine. Must be called with e.mu held.
func (e *Engine) runBatch() {
	b := &e.batch
	n := len(b.index)
	if n == 0 {
		return
	}
	b.attrs = slices.Grow(b.attrs[:0], n)[:n]
	for k, h := range b.handle {
		b.attrs[k] = kernel.Attributes{Fill: e.pool.Cell(h).Attributes().Fill}
	}

	eval := func(lo, hi int) {
		for k := lo; k < hi; k++ {
			e.selector.Apply(e.KernelIndex(b.index[k]), &b.attrs[k])
		}
	}
	if w := e.workers; w > 1 && n >= e.cfg.ParallelThreshold {
		var g errgroup.Group
		g.SetLimit(w)
		chunk := (n + w - 1) / w
		for lo := 0; lo < n; lo += chunk {
			hi := min(lo+chunk, n)
			g.Go(func() error {
				eval(lo, hi)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		eval(0, n)
	}

	for k, h := range b.handle {
		c := e.pool.Cell(h)
		c.apply(b.attrs[k])
		e.painter.Paint(b.index[k], c.Frame(), c.Attributes())
	}
}
