//go:build ebiten

package render

import (
	"image/color"

	"infigrid/internal/grid"
	"infigrid/internal/viewport"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter rasterizes cell snapshots on the CPU and uploads them to an
// ebiten image once per frame.
type GridPainter struct {
	fb  *Framebuffer
	img *ebiten.Image
}

// NewGridPainter allocates a painter for a w×h screen.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{fb: NewFramebuffer(w, h)}
	gp.img = ebiten.NewImage(max(w, 1), max(h, 1))
	return gp
}

// Blit draws cells as seen through vp onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []grid.CellView, vp *viewport.Viewport, background color.Color) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	if gp.img == nil || gp.img.Bounds().Dx() != w || gp.img.Bounds().Dy() != h {
		if gp.img != nil {
			gp.img.Deallocate()
		}
		gp.img = ebiten.NewImage(w, h)
		gp.fb.Resize(w, h)
	}
	Rasterize(gp.fb, cells, vp, background)
	gp.img.WritePixels(gp.fb.Pixels())
	dst.DrawImage(gp.img, nil)
}
