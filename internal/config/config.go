// Package config loads the grid configuration from defaults, an optional HCL
// file and key/value overrides.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"maps"
	"strconv"
	"strings"

	"infigrid/internal/core"
	"infigrid/internal/grid"
	"infigrid/internal/kernel"
)

// ErrUnknownKernel reports a kernel name that is neither a built-in tag nor a
// registered custom kernel.
var ErrUnknownKernel = errors.New("config: unknown kernel")

// Config controls the grid geometry, the initial kernel and the parameters of
// the built-in kernels.
type Config struct {
	CellSize         float64
	ContentDimension float64
	Workers          int

	Kernel       string
	Custom       string
	CustomParams map[string]string

	Builtins kernel.Builtins
}

// DefaultConfig returns the standard configuration: 40 unit cells on a 1e9
// square content area with the blank kernel selected.
func DefaultConfig() Config {
	return Config{
		CellSize:         40,
		ContentDimension: 1_000_000_000,
		Workers:          0,
		Kernel:           kernel.Blank.String(),
		Custom:           kernel.DefaultCustomName,
		CustomParams:     map[string]string{},
		Builtins:         kernel.DefaultBuiltins(),
	}
}

// FromMap returns the default configuration with overrides applied.
func FromMap(cfg map[string]string) (Config, error) {
	return DefaultConfig().With(cfg)
}

// With applies flag-style key/value overrides. Keys prefixed with "param."
// are passed to the custom kernel factory.
func (c Config) With(overrides map[string]string) (Config, error) {
	c.CustomParams = maps.Clone(c.CustomParams)
	if c.CustomParams == nil {
		c.CustomParams = map[string]string{}
	}
	for key, v := range overrides {
		var err error
		switch key {
		case "cell":
			c.CellSize, err = strconv.ParseFloat(v, 64)
		case "content":
			c.ContentDimension, err = strconv.ParseFloat(v, 64)
		case "workers":
			c.Workers, err = strconv.Atoi(v)
		case "kernel":
			c.Kernel = v
		case "custom":
			c.Custom = v
		case "radius":
			c.Builtins.Circle.Radius, err = strconv.Atoi(v)
		case "border":
			c.Builtins.Circle.Border, err = strconv.Atoi(v)
		default:
			name, ok := strings.CutPrefix(key, "param.")
			if !ok {
				return c, fmt.Errorf("config: unknown key %q", key)
			}
			c.CustomParams[name] = v
		}
		if err != nil {
			return c, fmt.Errorf("config: %s: %w", key, err)
		}
	}
	return c, c.Validate()
}

// Validate checks that the configuration can build an engine.
func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("config: cell size must be positive, got %v", c.CellSize)
	}
	if c.ContentDimension < c.CellSize {
		return fmt.Errorf("config: content dimension %v is smaller than a cell", c.ContentDimension)
	}
	if c.Builtins.Circle.Radius < 0 || c.Builtins.Circle.Border < 0 {
		return errors.New("config: circle radius and border must not be negative")
	}
	if _, err := kernel.ParseTag(c.Kernel); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownKernel, c.Kernel)
	}
	if _, err := kernel.Lookup(c.Custom, c.customParams()); err != nil {
		if errors.Is(err, kernel.ErrUnknownCustom) {
			return fmt.Errorf("%w: custom %q", ErrUnknownKernel, c.Custom)
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// CellSizeValue returns the cell size as a square core.Size.
func (c Config) CellSizeValue() core.Size {
	return core.Size{W: c.CellSize, H: c.CellSize}
}

// GridConfig returns the engine configuration, with the origin placed at the
// centre of the content area.
func (c Config) GridConfig() grid.Config {
	cell := c.CellSizeValue()
	return grid.Config{
		CellSize: cell,
		Origin:   grid.OriginFor(c.ContentDimension, cell),
		Workers:  c.Workers,
	}
}

// Tag returns the initial kernel tag.
func (c Config) Tag() kernel.Tag {
	t, _ := kernel.ParseTag(c.Kernel)
	return t
}

// CustomKernel builds the configured custom kernel. The checkerboard palette
// is passed as the "even" and "odd" params unless they are set explicitly.
func (c Config) CustomKernel() (kernel.Func, error) {
	return kernel.Lookup(c.Custom, c.customParams())
}

func (c Config) customParams() map[string]string {
	params := maps.Clone(c.CustomParams)
	if params == nil {
		params = map[string]string{}
	}
	if _, ok := params["even"]; !ok {
		params["even"] = hexString(c.Builtins.Palette.Even)
	}
	if _, ok := params["odd"]; !ok {
		params["odd"] = hexString(c.Builtins.Palette.Odd)
	}
	return params
}

// EngineOptions returns the engine options derived from the configuration.
func (c Config) EngineOptions() ([]grid.Option, error) {
	custom, err := c.CustomKernel()
	if err != nil {
		return nil, err
	}
	return []grid.Option{
		grid.WithBuiltins(c.Builtins),
		grid.WithKernel(c.Tag()),
		grid.WithCustomKernel(custom),
	}, nil
}

// ParseColor accepts "#rrggbb" hex strings and x/image/colornames names.
func ParseColor(s string) (color.RGBA, error) {
	c, err := kernel.ParseColor(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
