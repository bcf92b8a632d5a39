package kernel

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"infigrid/internal/core"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

func init() {
	Register(DefaultCustomName, func(cfg map[string]string) (Func, error) {
		c, err := colorOr(cfg, "color", Sky)
		if err != nil {
			return nil, err
		}
		return Solid(c), nil
	})
	Register("random", func(cfg map[string]string) (Func, error) {
		seed, err := intOr(cfg, "seed", 1)
		if err != nil {
			return nil, err
		}
		return Random(int64(seed)), nil
	})
	Register("bordered", func(cfg map[string]string) (Func, error) {
		b := DefaultBuiltins()
		edge := Border{Color: Gray, Width: 1}
		var err error
		if b.Palette.Even, err = colorOr(cfg, "even", b.Palette.Even); err != nil {
			return nil, err
		}
		if b.Palette.Odd, err = colorOr(cfg, "odd", b.Palette.Odd); err != nil {
			return nil, err
		}
		if edge.Color, err = colorOr(cfg, "border", edge.Color); err != nil {
			return nil, err
		}
		if edge.Width, err = floatOr(cfg, "width", edge.Width); err != nil {
			return nil, err
		}
		if edge.Width < 0 {
			return nil, fmt.Errorf("width: must not be negative, got %v", edge.Width)
		}
		return Bordered(b, edge), nil
	})
	Register("polygon", func(cfg map[string]string) (Func, error) {
		p := DefaultPolygon()
		var err error
		if p.Sides, err = intOr(cfg, "sides", p.Sides); err != nil {
			return nil, err
		}
		if p.Radius, err = intOr(cfg, "radius", p.Radius); err != nil {
			return nil, err
		}
		if p.Border, err = intOr(cfg, "border", p.Border); err != nil {
			return nil, err
		}
		if p.Fill, err = colorOr(cfg, "fill", p.Fill); err != nil {
			return nil, err
		}
		if p.Edge, err = colorOr(cfg, "edge", p.Edge); err != nil {
			return nil, err
		}
		if p.Sides < 3 {
			return nil, fmt.Errorf("polygon needs at least 3 sides, got %d", p.Sides)
		}
		return p.Kernel, nil
	})
}

// Solid paints every cell with c.
func Solid(c color.RGBA) Func {
	return func(_ core.Index, out *Attributes) { out.Fill = c }
}

// Random paints each cell a muted colour drawn from a stream seeded by the
// cell index, so revisiting a cell yields the same colour.
func Random(seed int64) Func {
	return func(i core.Index, out *Attributes) {
		r := core.ForIndex(seed, i)
		h := r.Range(0, 360)
		s := r.Range(0, 0.4)
		v := r.Range(0.25, 0.7)
		cr, cg, cb := colorful.Hsv(h, s, v).Clamped().RGB255()
		out.Fill = color.RGBA{R: cr, G: cg, B: cb, A: 255}
	}
}

// Bordered is the checkerboard outlined with border on every cell.
func Bordered(b Builtins, border Border) Func {
	return func(i core.Index, out *Attributes) {
		b.CheckerboardKernel(i, out)
		edge := border
		out.Border = &edge
	}
}

// Polygon draws a regular N-sided polygon centred on the origin.
type Polygon struct {
	Sides      int
	Radius     int
	Border     int
	Background color.RGBA
	Edge       color.RGBA
	Fill       color.RGBA
}

// DefaultPolygon returns a hexagon of radius 8 with a one cell edge.
func DefaultPolygon() Polygon {
	return Polygon{Sides: 6, Radius: 8, Border: 1, Background: Black, Edge: Ember, Fill: White}
}

// Kernel classifies the cell centre against the polygon. The distance used is
// the projection onto the normal of the nearest edge, so the border has a
// uniform thickness along each side.
func (p Polygon) Kernel(i core.Index, out *Attributes) {
	x, y := float64(i.Column), float64(i.Row)
	sector := 2 * math.Pi / float64(p.Sides)
	apothem := float64(p.Radius) * math.Cos(math.Pi/float64(p.Sides))
	theta := math.Atan2(y, x)
	a := math.Mod(theta+2*math.Pi, sector) - sector/2
	d := math.Hypot(x, y) * math.Cos(a)
	switch {
	case d > apothem:
		out.Fill = p.Background
	case d > apothem-float64(p.Border):
		out.Fill = p.Edge
	default:
		out.Fill = p.Fill
	}
}

func intOr(cfg map[string]string, key string, def int) (int, error) {
	v, ok := cfg[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatOr(cfg map[string]string, key string, def float64) (float64, error) {
	v, ok := cfg[key]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func colorOr(cfg map[string]string, key string, def color.RGBA) (color.RGBA, error) {
	v, ok := cfg[key]
	if !ok {
		return def, nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}

// ParseColor accepts "#rrggbb" hex strings and x/image/colornames names.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}
