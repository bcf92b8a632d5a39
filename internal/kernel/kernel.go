// Package kernel defines the per-cell compute contract of the grid and the
// built-in kernels that implement it.
//
// A kernel is the CPU stand-in for a fragment shader: it receives the index of
// a single cell and fills in that cell's Attributes. Kernels must behave as
// pure functions of their inputs; the grid may evaluate them in any order and
// from several goroutines at once.
package kernel

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"infigrid/internal/core"
)

// Border describes an optional outline drawn around a cell.
type Border struct {
	Color color.RGBA
	Width float64
}

// Attributes is the output of a kernel invocation.
type Attributes struct {
	Fill   color.RGBA
	Border *Border
}

// Func is the per-cell kernel signature. Implementations may only write to out.
type Func func(i core.Index, out *Attributes)

// Tag identifies the active kernel strategy.
type Tag uint8

const (
	Blank Tag = iota
	Checkerboard
	Circle
	Custom
)

var tagNames = [...]string{
	Blank:        "blank",
	Checkerboard: "checkerboard",
	Circle:       "circle",
	Custom:       "custom",
}

// Tags lists every tag in cycle order.
func Tags() []Tag { return []Tag{Blank, Checkerboard, Circle, Custom} }

// Next returns the tag following t in the cycle
// blank → checkerboard → circle → custom → blank.
func (t Tag) Next() Tag {
	switch t {
	case Blank:
		return Checkerboard
	case Checkerboard:
		return Circle
	case Circle:
		return Custom
	default:
		return Blank
	}
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// ParseTag resolves a tag from its name, case-insensitively.
func ParseTag(s string) (Tag, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tagNames {
		if n == name {
			return Tag(i), nil
		}
	}
	return Blank, fmt.Errorf("kernel: unknown kernel %q", s)
}

// Palette holds the colours shared by the blank and checkerboard kernels and
// the resting colour of an unprocessed cell.
type Palette struct {
	Cell  color.RGBA
	Blank color.RGBA
	Even  color.RGBA
	Odd   color.RGBA
}

// CircleParams configures the circle kernel.
type CircleParams struct {
	Radius     int
	Border     int
	Background color.RGBA
	Ring       color.RGBA
	Fill       color.RGBA
}

// Builtins carries the parameters of the built-in kernels.
type Builtins struct {
	Palette Palette
	Circle  CircleParams
}

// Default colours.
var (
	White    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black    = color.RGBA{A: 255}
	Gray     = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	CellGray = color.RGBA{R: 38, G: 38, B: 38, A: 255}
	Ember    = color.RGBA{R: 236, G: 60, B: 26, A: 255}
	Sky      = color.RGBA{R: 61, G: 172, B: 247, A: 255}
)

// DefaultBuiltins returns the stock parameters: a white blank kernel, a
// black/white checkerboard and a radius 10 circle with a 2 cell ember ring.
func DefaultBuiltins() Builtins {
	return Builtins{
		Palette: Palette{Cell: CellGray, Blank: White, Even: Black, Odd: White},
		Circle: CircleParams{
			Radius:     10,
			Border:     2,
			Background: Black,
			Ring:       Ember,
			Fill:       White,
		},
	}
}

// BlankKernel paints every cell with the blank colour.
func (b Builtins) BlankKernel(_ core.Index, out *Attributes) {
	out.Fill = b.Palette.Blank
}

// CheckerboardKernel alternates two colours by the parity of row+column. Parity uses
// floor modulo so the pattern stays continuous across negative indices.
func (b Builtins) CheckerboardKernel(i core.Index, out *Attributes) {
	if (core.Mod(i.Row, 2)+core.Mod(i.Column, 2))%2 == 0 {
		out.Fill = b.Palette.Even
		return
	}
	out.Fill = b.Palette.Odd
}

// CircleKernel splits the plane into three concentric regions around the origin:
// background outside the radius, ring within Border cells of the edge, fill
// inside. Distances stay squared until the ring test.
func (b Builtins) CircleKernel(i core.Index, out *Attributes) {
	c := b.Circle
	d2 := i.Row*i.Row + i.Column*i.Column
	switch {
	case d2 >= c.Radius*c.Radius:
		out.Fill = c.Background
	case math.Sqrt(float64(d2)) >= float64(c.Radius-c.Border):
		out.Fill = c.Ring
	default:
		out.Fill = c.Fill
	}
}
