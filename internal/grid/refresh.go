package grid

import (
	"infigrid/internal/core"
	"infigrid/internal/kernel"
)

// Refresh reruns the active kernel on every active cell without changing
// which cells are active.
func (e *Engine) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshLocked()
}

func (e *Engine) refreshLocked() {
	e.batch.reset()
	for i, h := range e.active {
		e.batch.add(i, h)
	}
	e.runBatch()
	e.log.Debug("refresh", "cells", len(e.batch.index), "kernel", e.selector.Tag())
}

// ProcessItem reruns the active kernel on the cell at i. It reports false and
// does nothing when i is not active.
func (e *Engine) ProcessItem(i core.Index) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.active[i]
	if !ok {
		return false
	}
	e.batch.reset()
	e.batch.add(i, h)
	e.runBatch()
	return true
}

// Kernel returns the active kernel tag.
func (e *Engine) Kernel() kernel.Tag {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selector.Tag()
}

// SelectKernel switches to t and refreshes every active cell.
func (e *Engine) SelectKernel(t kernel.Tag) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selector.Select(t)
	e.log.Info("kernel selected", "kernel", e.selector.Tag())
	e.refreshLocked()
}

// NextKernel advances the kernel cycle, refreshes every active cell and
// returns the new tag.
func (e *Engine) NextKernel() kernel.Tag {
	e.mu.Lock()
	defer e.mu.Unlock()
	t := e.selector.Next()
	e.log.Info("kernel cycled", "kernel", t)
	e.refreshLocked()
	return t
}

// SetCustomKernel replaces the custom kernel. Active cells are refreshed only
// when the custom kernel is the one currently selected. A nil f restores the
// default custom kernel.
func (e *Engine) SetCustomKernel(f kernel.Func) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selector.SetCustom(f)
	if e.selector.Tag() == kernel.Custom {
		e.refreshLocked()
	}
}

// UseCustomKernel installs f as the custom kernel and selects it, refreshing
// the active cells once.
func (e *Engine) UseCustomKernel(f kernel.Func) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selector.SetCustom(f)
	e.selector.Select(kernel.Custom)
	e.log.Info("kernel selected", "kernel", e.selector.Tag())
	e.refreshLocked()
}

// Builtins returns the parameters of the built-in kernels.
func (e *Engine) Builtins() kernel.Builtins {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selector.Builtins()
}

// SetBuiltins replaces the parameters of the built-in kernels and refreshes
// the active cells when a built-in kernel is selected.
func (e *Engine) SetBuiltins(b kernel.Builtins) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selector.SetBuiltins(b)
	e.pool.blank = kernel.Attributes{Fill: b.Palette.Cell}
	if e.selector.Tag() != kernel.Custom {
		e.refreshLocked()
	}
}
