package render

import (
	"image"
	"image/color"
	"math"

	"infigrid/internal/core"
	"infigrid/internal/grid"
	"infigrid/internal/viewport"
)

// Framebuffer is a CPU-side RGBA surface. Pixels are stored row-major,
// four bytes per pixel, in the layout ebiten's WritePixels expects.
type Framebuffer struct {
	w, h int
	buf  []byte
}

// NewFramebuffer allocates a w×h surface cleared to transparent black.
func NewFramebuffer(w, h int) *Framebuffer {
	f := &Framebuffer{}
	f.Resize(w, h)
	return f
}

// Resize changes the surface size, reallocating only when it grows.
func (f *Framebuffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f.w, f.h = w, h
	n := 4 * w * h
	if cap(f.buf) < n {
		f.buf = make([]byte, n)
		return
	}
	f.buf = f.buf[:n]
}

// Bounds returns the surface rectangle.
func (f *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }

// Pixels exposes the backing buffer.
func (f *Framebuffer) Pixels() []byte { return f.buf }

// At returns the colour of the pixel at (x, y), or transparent black when
// the point is outside the surface.
func (f *Framebuffer) At(x, y int) color.RGBA {
	if !image.Pt(x, y).In(f.Bounds()) {
		return color.RGBA{}
	}
	base := 4 * (y*f.w + x)
	return color.RGBA{R: f.buf[base+0], G: f.buf[base+1], B: f.buf[base+2], A: f.buf[base+3]}
}

// Clear fills the whole surface with c.
func (f *Framebuffer) Clear(c color.Color) {
	col := rgba(c)
	for base := 0; base < len(f.buf); base += 4 {
		f.buf[base+0] = col.R
		f.buf[base+1] = col.G
		f.buf[base+2] = col.B
		f.buf[base+3] = col.A
	}
}

// FillRect fills r, clipped to the surface.
func (f *Framebuffer) FillRect(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(f.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := 4 * y * f.w
		for x := r.Min.X; x < r.Max.X; x++ {
			base := row + 4*x
			f.buf[base+0] = c.R
			f.buf[base+1] = c.G
			f.buf[base+2] = c.B
			f.buf[base+3] = c.A
		}
	}
}

// StrokeRect draws an inner border of the given width along the edges of r.
func (f *Framebuffer) StrokeRect(r image.Rectangle, width int, c color.RGBA) {
	if width <= 0 || r.Empty() {
		return
	}
	if 2*width >= r.Dx() || 2*width >= r.Dy() {
		f.FillRect(r, c)
		return
	}
	f.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	f.FillRect(image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	f.FillRect(image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width), c)
	f.FillRect(image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width), c)
}

// Rasterize clears fb to background and draws every cell through vp.
// Cell frames are snapped to whole pixels so that neighbours tile without
// gaps at any zoom.
func Rasterize(fb *Framebuffer, cells []grid.CellView, vp *viewport.Viewport, background color.Color) {
	fb.Clear(background)
	zoom := vp.Zoom()
	for _, c := range cells {
		r := pixelRect(vp.RectToScreen(c.Frame))
		if !r.Overlaps(fb.Bounds()) {
			continue
		}
		fb.FillRect(r, c.Attrs.Fill)
		if b := c.Attrs.Border; b != nil {
			fb.StrokeRect(r, strokeWidth(b.Width, zoom), b.Color)
		}
	}
}

func pixelRect(r core.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Floor(r.Max.X)), int(math.Floor(r.Max.Y)),
	)
}

func strokeWidth(w, zoom float64) int {
	if w <= 0 {
		return 0
	}
	px := int(math.Round(w * zoom))
	if px < 1 {
		px = 1
	}
	return px
}

func rgba(c color.Color) color.RGBA {
	if col, ok := c.(color.RGBA); ok {
		return col
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
