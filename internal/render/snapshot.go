package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"infigrid/internal/grid"
	"infigrid/internal/viewport"
)

// Snapshot draws the cells visible through vp into a new vector canvas the
// size of the viewport's screen. Borders are stroked inside the cell frame,
// scaled by the viewport zoom.
func Snapshot(cells []grid.CellView, vp *viewport.Viewport, background color.Color) (*gg.Context, error) {
	screen := vp.Screen()
	w, h := int(math.Ceil(screen.W)), int(math.Ceil(screen.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: empty screen %vx%v", screen.W, screen.H)
	}
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.FromColor(background))

	zoom := vp.Zoom()
	bounds := image.Rect(0, 0, w, h)
	for _, c := range cells {
		r := vp.RectToScreen(c.Frame)
		if !pixelRect(r).Overlaps(bounds) {
			continue
		}
		dc.DrawRectangle(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		dc.SetColor(c.Attrs.Fill)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("render: fill cell %v: %w", c.Index, err)
		}
		b := c.Attrs.Border
		if b == nil || b.Width <= 0 {
			continue
		}
		lw := b.Width * zoom
		inner := r.Inset(lw / 2)
		if inner.Empty() {
			continue
		}
		dc.DrawRectangle(inner.Min.X, inner.Min.Y, inner.Dx(), inner.Dy())
		dc.SetColor(b.Color)
		dc.SetLineWidth(lw)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("render: stroke cell %v: %w", c.Index, err)
		}
	}
	return dc, nil
}

// SavePNG renders a snapshot and writes it to path.
func SavePNG(path string, cells []grid.CellView, vp *viewport.Viewport, background color.Color) error {
	dc, err := Snapshot(cells, vp, background)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
