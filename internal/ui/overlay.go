//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"infigrid/internal/core"
	"infigrid/internal/grid"
	"infigrid/internal/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// minLabelCell is the smallest on-screen cell, in pixels, that gets a label.
const minLabelCell = 40

// Overlay draws debugging visuals on top of the grid: kernel coordinates on
// every cell and an outline around the kernel origin.
type Overlay struct {
	showLabels bool
	showOrigin bool
}

// NewOverlay constructs a new overlay instance with everything hidden.
func NewOverlay() *Overlay { return &Overlay{} }

// Update toggles layers: 1 for coordinate labels, 2 for the origin outline.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showLabels = !o.showLabels
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showOrigin = !o.showOrigin
	}
}

// Draw renders the enabled layers. toKernel maps a grid index to the index
// the kernel sees.
func (o *Overlay) Draw(screen *ebiten.Image, cells []grid.CellView, vp *viewport.Viewport, toKernel func(core.Index) core.Index) {
	if !o.showLabels && !o.showOrigin {
		return
	}
	face := basicfont.Face7x13
	for _, c := range cells {
		r := vp.RectToScreen(c.Frame)
		k := toKernel(c.Index)
		if o.showOrigin && k == (core.Index{}) {
			vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, color.RGBA{R: 255, G: 0, B: 200, A: 255}, false)
		}
		if !o.showLabels || r.Dx() < minLabelCell || r.Dy() < minLabelCell {
			continue
		}
		label := fmt.Sprintf("%d,%d", k.Row, k.Column)
		b := text.BoundString(face, label)
		x := int(r.Min.X+r.Dx()/2) - b.Dx()/2
		y := int(r.Min.Y+r.Dy()/2) + b.Dy()/2
		text.Draw(screen, label, face, x, y, contrast(c.Attrs.Fill))
	}
}

// contrast picks black or white text for a background colour.
func contrast(bg color.RGBA) color.Color {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 140 {
		return color.Black
	}
	return color.White
}
