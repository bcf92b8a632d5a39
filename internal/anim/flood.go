// Package anim animates cell attributes over time by reprocessing individual
// cells of a grid engine.
package anim

import (
	"image/color"
	"math"
	"sync"

	"infigrid/internal/core"
	"infigrid/internal/kernel"
)

// Flood is a breadth-first fill of the circle kernel's interior, starting at
// the kernel origin and growing by one 4-connected ring per step. It acts as
// a custom kernel: visited cells take the flood colour, everything else
// renders as the plain circle.
type Flood struct {
	mu       sync.RWMutex
	builtins kernel.Builtins
	color    color.RGBA
	depth    map[core.Index]int
	frontier []core.Index
	steps    int
}

// NewFlood returns an idle flood over the circle described by b.
func NewFlood(b kernel.Builtins, c color.RGBA) *Flood {
	return &Flood{builtins: b, color: c, depth: map[core.Index]int{}}
}

// Kernel evaluates a kernel index. It is safe for concurrent use with Step.
func (f *Flood) Kernel(i core.Index, out *kernel.Attributes) {
	f.mu.RLock()
	_, seen := f.depth[i]
	b := f.builtins
	f.mu.RUnlock()
	b.CircleKernel(i, out)
	if seen {
		out.Fill = f.color
	}
}

// Step advances the fill by one ring and returns the kernel indices that
// changed colour. It returns nil once the interior is full.
func (f *Flood) Step() []core.Index {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.steps == 0 {
		origin := core.Index{}
		if !f.interior(origin) {
			return nil
		}
		f.steps = 1
		f.depth[origin] = 0
		f.frontier = []core.Index{origin}
		return []core.Index{origin}
	}

	var next []core.Index
	for _, i := range f.frontier {
		for _, d := range neighbours {
			n := i.Offset(d)
			if _, ok := f.depth[n]; ok || !f.interior(n) {
				continue
			}
			f.depth[n] = f.steps
			next = append(next, n)
		}
	}
	f.frontier = next
	if len(next) > 0 {
		f.steps++
	}
	return next
}

// Done reports whether the fill has covered the whole interior.
func (f *Flood) Done() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.steps > 0 && len(f.frontier) == 0
}

// Filled returns the number of visited cells.
func (f *Flood) Filled() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.depth)
}

// Depth returns the step at which i was filled.
func (f *Flood) Depth(i core.Index) (int, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	d, ok := f.depth[i]
	return d, ok
}

// Reset clears the fill and returns the indices that were visited, so the
// caller can restore them. A non-nil builtins replaces the circle parameters.
func (f *Flood) Reset(b *kernel.Builtins) []core.Index {
	f.mu.Lock()
	defer f.mu.Unlock()
	cleared := make([]core.Index, 0, len(f.depth))
	for i := range f.depth {
		cleared = append(cleared, i)
	}
	clear(f.depth)
	f.frontier = nil
	f.steps = 0
	if b != nil {
		f.builtins = *b
	}
	return cleared
}

func (f *Flood) interior(i core.Index) bool {
	c := f.builtins.Circle
	d := math.Sqrt(float64(i.Row*i.Row + i.Column*i.Column))
	return d < float64(c.Radius) && d < float64(c.Radius-c.Border)
}

var neighbours = [...]core.Index{
	{Row: -1}, {Column: 1}, {Row: 1}, {Column: -1},
}
