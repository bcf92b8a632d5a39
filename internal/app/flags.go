package app

import (
	"flag"
	"fmt"
	"strings"

	"infigrid/internal/config"
)

// Flags holds the command-line options shared by the infigrid binaries.
// Grid settings are recorded only when given explicitly, so that they
// override values loaded from -config.
type Flags struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Width      int
	Height     int
	TPS        int

	overrides map[string]string
}

// NewFlags returns flags with their defaults.
func NewFlags() *Flags {
	return &Flags{
		LogLevel:  "info",
		LogFormat: "text",
		Width:     960,
		Height:    640,
		TPS:       12,
		overrides: map[string]string{},
	}
}

// Bind registers the flags on fs.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "HCL configuration file")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&f.LogFormat, "log-format", f.LogFormat, "log format: text or json")
	fs.IntVar(&f.Width, "width", f.Width, "window width in pixels")
	fs.IntVar(&f.Height, "height", f.Height, "window height in pixels")
	fs.IntVar(&f.TPS, "tps", f.TPS, "flood animation steps per second")

	f.override(fs, "cell", "cell edge length in content units")
	f.override(fs, "content", "content area dimension")
	f.override(fs, "workers", "kernel evaluation workers (0 serial, -1 GOMAXPROCS)")
	f.override(fs, "kernel", "initial kernel: blank, checkerboard, circle or custom")
	f.override(fs, "custom", "registered custom kernel name")
	f.override(fs, "radius", "circle kernel radius in cells")
	f.override(fs, "border", "circle kernel ring width in cells")
	fs.Func("param", "custom kernel parameter key=value (repeatable)", func(s string) error {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		f.overrides["param."+key] = value
		return nil
	})
}

func (f *Flags) override(fs *flag.FlagSet, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		f.overrides[name] = s
		return nil
	})
}

// Validate checks the logging and window flags.
func (f *Flags) Validate() error {
	switch strings.ToLower(f.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn' or 'error'", f.LogLevel)
	}
	switch strings.ToLower(f.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", f.LogFormat)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", f.Width, f.Height)
	}
	if f.TPS <= 0 {
		return fmt.Errorf("invalid tps %d", f.TPS)
	}
	return nil
}

// Config resolves the grid configuration: defaults, then the -config file,
// then explicit flags.
func (f *Flags) Config() (config.Config, error) {
	cfg := config.DefaultConfig()
	if f.ConfigPath != "" {
		var err error
		cfg, err = config.Load(f.ConfigPath)
		if err != nil {
			return cfg, err
		}
	}
	return cfg.With(f.overrides)
}
