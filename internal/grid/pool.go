package grid

import (
	"fmt"

	"infigrid/internal/core"
	"infigrid/internal/kernel"
)

// Handle addresses a cell slot in a Pool.
type Handle int32

// Cell is the reusable resource backing one materialized grid cell.
type Cell struct {
	frame    core.Rect
	attrs    kernel.Attributes
	attached bool
}

// Frame returns the cell's rectangle in content coordinates.
func (c *Cell) Frame() core.Rect { return c.frame }

// Attributes returns the attributes last applied to the cell.
func (c *Cell) Attributes() kernel.Attributes { return c.attrs }

// Attached reports whether the cell currently backs a grid index.
func (c *Cell) Attached() bool { return c.attached }

func (c *Cell) attach(frame core.Rect) {
	c.frame = frame
	c.attached = true
}

func (c *Cell) apply(a kernel.Attributes) {
	c.attrs.Fill = a.Fill
	if a.Border == nil {
		c.attrs.Border = nil
		return
	}
	b := *a.Border
	c.attrs.Border = &b
}

// Pool is an arena of cells addressed by Handle. Slots are only ever created
// on a miss and are recycled through a free stack afterwards.
type Pool struct {
	slots  []Cell
	free   []Handle
	isFree []bool
	blank  kernel.Attributes
}

// NewPool returns an empty pool whose recycled cells rest at blank.
func NewPool(blank kernel.Attributes) *Pool {
	return &Pool{blank: blank}
}

// Acquire returns a free cell, allocating a new slot only when none is free.
func (p *Pool) Acquire() Handle {
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		p.isFree[h] = false
		return h
	}
	h := Handle(len(p.slots))
	p.slots = append(p.slots, Cell{attrs: p.blank})
	p.isFree = append(p.isFree, false)
	return h
}

// Release detaches h and returns it to the free stack. Releasing a handle the
// pool never issued, or one that is already free, is a programmer error.
func (p *Pool) Release(h Handle) {
	if h < 0 || int(h) >= len(p.slots) {
		panic(fmt.Sprintf("grid: release of foreign handle %d", h))
	}
	if p.isFree[h] {
		panic(fmt.Sprintf("grid: double release of handle %d", h))
	}
	p.slots[h] = Cell{attrs: p.blank}
	p.isFree[h] = true
	p.free = append(p.free, h)
}

// Cell returns the slot behind h.
func (p *Pool) Cell(h Handle) *Cell {
	return &p.slots[h]
}

// IsFree reports whether h currently sits in the free stack.
func (p *Pool) IsFree(h Handle) bool {
	return h >= 0 && int(h) < len(p.isFree) && p.isFree[h]
}

// Allocated returns how many cells were ever constructed.
func (p *Pool) Allocated() int { return len(p.slots) }

// Free returns how many cells are waiting for reuse.
func (p *Pool) Free() int { return len(p.free) }

// Reset destroys every cell. Only used on teardown.
func (p *Pool) Reset() {
	p.slots = nil
	p.free = nil
	p.isFree = nil
}
