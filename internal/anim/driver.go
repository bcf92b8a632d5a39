package anim

import (
	"image/color"
	"log/slog"
	"time"

	"infigrid/internal/core"
	"infigrid/internal/kernel"
)

// Target is the part of a grid engine a Driver needs.
type Target interface {
	ProcessItem(i core.Index) bool
	GridIndex(k core.Index) core.Index
	UseCustomKernel(f kernel.Func)
	Kernel() kernel.Tag
	Refresh()
	Builtins() kernel.Builtins
}

// Driver advances a Flood at a fixed tick rate and pushes each changed cell
// to the target with ProcessItem. Cells outside the target's active set are
// skipped; they pick up the flood state when they are next materialized.
type Driver struct {
	flood   *Flood
	tps     int
	timer   *core.FixedStep
	target  Target
	log     *slog.Logger
	running bool
	// installed is set once Start has handed the flood kernel to the target.
	installed bool
}

// NewDriver builds a driver stepping the flood tps times per second.
func NewDriver(target Target, tps int, fill color.RGBA, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		flood:  NewFlood(target.Builtins(), fill),
		tps:    tps,
		timer:  core.NewFixedStep(tps),
		target: target,
		log:    log,
	}
}

// Flood returns the animated fill.
func (d *Driver) Flood() *Flood { return d.flood }

// Interval returns the time between flood steps.
func (d *Driver) Interval() time.Duration { return d.timer.Interval() }

// Running reports whether the animation is active.
func (d *Driver) Running() bool { return d.running }

// Start installs the flood as the custom kernel, selects it and restarts the
// fill from the origin.
func (d *Driver) Start() {
	b := d.target.Builtins()
	d.flood.Reset(&b)
	d.target.UseCustomKernel(d.flood.Kernel)
	d.timer = core.NewFixedStep(d.tps)
	d.running = true
	d.installed = true
	d.log.Info("flood started", "radius", b.Circle.Radius, "border", b.Circle.Border)
}

// Retarget picks up the target's current circle. A running flood restarts
// from the origin. A stopped or finished flood that is still on screen is
// cleared so the new circle is drawn without stale fill.
func (d *Driver) Retarget() {
	if d.running {
		d.Start()
		return
	}
	if !d.installed || d.target.Kernel() != kernel.Custom {
		return
	}
	b := d.target.Builtins()
	d.flood.Reset(&b)
	d.target.Refresh()
}

// Stop pauses the animation, leaving the current fill on screen.
func (d *Driver) Stop() { d.running = false }

// Toggle starts a stopped driver or stops a running one.
func (d *Driver) Toggle() {
	if d.running {
		d.Stop()
		return
	}
	d.Start()
}

// Update runs the ticks that are due according to the wall clock and
// returns how many cells were reprocessed.
func (d *Driver) Update() int {
	if !d.running || !d.timer.ShouldStep() {
		return 0
	}
	return d.tick()
}

// Advance runs the ticks due after delta elapsed and returns how many cells
// were reprocessed.
func (d *Driver) Advance(delta time.Duration) int {
	if !d.running {
		return 0
	}
	n := 0
	for range d.timer.Advance(delta) {
		n += d.tick()
		if !d.running {
			break
		}
	}
	return n
}

// Step runs a single flood step now, bypassing the timer, for hosts that
// schedule ticks themselves.
func (d *Driver) Step() int {
	if !d.running {
		return 0
	}
	return d.tick()
}

func (d *Driver) tick() int {
	changed := d.flood.Step()
	n := 0
	for _, k := range changed {
		if d.target.ProcessItem(d.target.GridIndex(k)) {
			n++
		}
	}
	if d.flood.Done() {
		d.running = false
		d.log.Info("flood finished", "cells", d.flood.Filled())
	}
	return n
}
