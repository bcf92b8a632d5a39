package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
	"golang.org/x/image/colornames"
)

// hclFile is the top-level structure of a grid configuration file:
//
//	cell_size = 40
//	kernel    = "circle"
//
//	custom "polygon" {
//	  params = { sides = 5 }
//	}
//
//	circle {
//	  radius = 12
//	  ring   = colors.orangered
//	  fill   = rgb(250, 250, 240)
//	}
type hclFile struct {
	CellSize         *float64    `hcl:"cell_size,optional"`
	ContentDimension *float64    `hcl:"content_dimension,optional"`
	Workers          *int        `hcl:"workers,optional"`
	Kernel           *string     `hcl:"kernel,optional"`
	Custom           *hclCustom  `hcl:"custom,block"`
	Palette          *hclPalette `hcl:"palette,block"`
	Circle           *hclCircle  `hcl:"circle,block"`
}

type hclCustom struct {
	Name   string            `hcl:"name,label"`
	Params map[string]string `hcl:"params,optional"`
}

type hclPalette struct {
	Cell  *string `hcl:"cell,optional"`
	Blank *string `hcl:"blank,optional"`
	Even  *string `hcl:"even,optional"`
	Odd   *string `hcl:"odd,optional"`
}

type hclCircle struct {
	Radius     *int    `hcl:"radius,optional"`
	Border     *int    `hcl:"border,optional"`
	Background *string `hcl:"background,optional"`
	Ring       *string `hcl:"ring,optional"`
	Fill       *string `hcl:"fill,optional"`
}

// Load reads the HCL file at path on top of DefaultConfig.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Decode(src, path)
}

// Decode parses HCL source on top of DefaultConfig. filename is only used in
// diagnostics.
func Decode(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: parse %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: decode %s: %w", filename, diags)
	}

	c := DefaultConfig()
	if err := parsed.apply(&c); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", filename, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (f *hclFile) apply(c *Config) error {
	if f.CellSize != nil {
		c.CellSize = *f.CellSize
	}
	if f.ContentDimension != nil {
		c.ContentDimension = *f.ContentDimension
	}
	if f.Workers != nil {
		c.Workers = *f.Workers
	}
	if f.Kernel != nil {
		c.Kernel = *f.Kernel
	}
	if f.Custom != nil {
		c.Custom = f.Custom.Name
		for k, v := range f.Custom.Params {
			c.CustomParams[k] = v
		}
	}
	if p := f.Palette; p != nil {
		pal := &c.Builtins.Palette
		for _, field := range []struct {
			src *string
			dst *color.RGBA
		}{{p.Cell, &pal.Cell}, {p.Blank, &pal.Blank}, {p.Even, &pal.Even}, {p.Odd, &pal.Odd}} {
			if err := setColor(field.src, field.dst); err != nil {
				return err
			}
		}
	}
	if ci := f.Circle; ci != nil {
		circ := &c.Builtins.Circle
		if ci.Radius != nil {
			circ.Radius = *ci.Radius
		}
		if ci.Border != nil {
			circ.Border = *ci.Border
		}
		for _, field := range []struct {
			src *string
			dst *color.RGBA
		}{{ci.Background, &circ.Background}, {ci.Ring, &circ.Ring}, {ci.Fill, &circ.Fill}} {
			if err := setColor(field.src, field.dst); err != nil {
				return err
			}
		}
	}
	return nil
}

func setColor(src *string, dst *color.RGBA) error {
	if src == nil {
		return nil
	}
	c, err := ParseColor(*src)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

// evalContext exposes every x/image colour name as colors.<name> and an
// rgb(r, g, b) function, both producing "#rrggbb" strings.
func evalContext() *hcl.EvalContext {
	named := make(map[string]cty.Value, len(colornames.Map))
	for name, c := range colornames.Map {
		named[name] = cty.StringVal(hexString(c))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"colors": cty.ObjectVal(named)},
		Functions: map[string]function.Function{"rgb": rgbFunc},
	}
}

var rgbFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "r", Type: cty.Number},
		{Name: "g", Type: cty.Number},
		{Name: "b", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var ch [3]uint8
		for i, arg := range args {
			var v int
			if err := gocty.FromCtyValue(arg, &v); err != nil {
				return cty.NilVal, function.NewArgError(i, err)
			}
			if v < 0 || v > 255 {
				return cty.NilVal, function.NewArgErrorf(i, "channel %d out of range 0..255", v)
			}
			ch[i] = uint8(v)
		}
		return cty.StringVal(hexString(color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 255})), nil
	},
})

func hexString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
