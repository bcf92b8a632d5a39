// Package viewport models a scrollable, zoomable window onto the square
// content area of the grid and converts between screen and content space.
package viewport

import (
	"math"

	"infigrid/internal/core"
)

// Zoom limits.
const (
	MinZoom = 0.5
	MaxZoom = 10.0
)

// Viewport tracks the scroll offset and zoom scale of a window of a given
// screen size over a square content area.
//
// The offset is measured in screen pixels on the scaled content, like a
// scroll view's content offset; Rect converts it back to content units.
type Viewport struct {
	content float64
	screen  core.Size
	offset  core.Point
	zoom    float64
}

// New returns a viewport of the given screen size centred on the content
// area, at zoom 1.
func New(content float64, screen core.Size) *Viewport {
	v := &Viewport{content: content, screen: screen, zoom: 1}
	v.CenterOn(core.Point{X: content / 2, Y: content / 2})
	return v
}

// Rect returns the visible area in content coordinates.
func (v *Viewport) Rect() core.Rect {
	return core.RectAt(v.offset.X/v.zoom, v.offset.Y/v.zoom, core.Size{
		W: v.screen.W / v.zoom,
		H: v.screen.H / v.zoom,
	})
}

// Zoom returns the current scale.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Screen returns the screen size.
func (v *Viewport) Screen() core.Size { return v.screen }

// Offset returns the scroll offset in screen pixels.
func (v *Viewport) Offset() core.Point { return v.offset }

// Resize changes the screen size, keeping the top-left corner in place.
func (v *Viewport) Resize(screen core.Size) core.Rect {
	v.screen = screen
	v.clamp()
	return v.Rect()
}

// ScrollBy moves the viewport by (dx, dy) screen pixels.
func (v *Viewport) ScrollBy(dx, dy float64) core.Rect {
	v.offset.X += dx
	v.offset.Y += dy
	v.clamp()
	return v.Rect()
}

// CenterOn scrolls so that the content point p sits in the middle of the
// screen.
func (v *Viewport) CenterOn(p core.Point) core.Rect {
	v.offset.X = p.X*v.zoom - v.screen.W/2
	v.offset.Y = p.Y*v.zoom - v.screen.H/2
	v.clamp()
	return v.Rect()
}

// ZoomAt sets the zoom scale, clamped to [MinZoom, MaxZoom], keeping the
// content under the screen point focus fixed.
func (v *Viewport) ZoomAt(scale float64, focus core.Point) core.Rect {
	scale = math.Min(math.Max(scale, MinZoom), MaxZoom)
	anchor := v.ToContent(focus)
	v.zoom = scale
	v.offset.X = anchor.X*scale - focus.X
	v.offset.Y = anchor.Y*scale - focus.Y
	v.clamp()
	return v.Rect()
}

// ZoomBy multiplies the current zoom by factor around focus.
func (v *Viewport) ZoomBy(factor float64, focus core.Point) core.Rect {
	return v.ZoomAt(v.zoom*factor, focus)
}

// ToScreen converts a content point to screen pixels.
func (v *Viewport) ToScreen(p core.Point) core.Point {
	return core.Point{X: p.X*v.zoom - v.offset.X, Y: p.Y*v.zoom - v.offset.Y}
}

// ToContent converts a screen point to content coordinates.
func (v *Viewport) ToContent(p core.Point) core.Point {
	return core.Point{X: (p.X + v.offset.X) / v.zoom, Y: (p.Y + v.offset.Y) / v.zoom}
}

// RectToScreen converts a content rectangle to screen pixels.
func (v *Viewport) RectToScreen(r core.Rect) core.Rect {
	return core.Rect{Min: v.ToScreen(r.Min), Max: v.ToScreen(r.Max)}
}

func (v *Viewport) clamp() {
	maxX := v.content*v.zoom - v.screen.W
	maxY := v.content*v.zoom - v.screen.H
	v.offset.X = math.Max(0, math.Min(v.offset.X, maxX))
	v.offset.Y = math.Max(0, math.Min(v.offset.Y, maxY))
}
