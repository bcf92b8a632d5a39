// Command gridsnap lays out the grid headlessly, optionally scrolls and
// floods it, and writes the visible cells to a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"infigrid/internal/anim"
	"infigrid/internal/app"
	"infigrid/internal/core"
	"infigrid/internal/grid"
	"infigrid/internal/kernel"
	"infigrid/internal/render"
	"infigrid/internal/viewport"
)

type script struct {
	out    string
	steps  int
	dx, dy float64
	zoom   float64
	flood  int
}

var background = color.RGBA{R: 16, G: 16, B: 20, A: 255}

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	var s script
	flag.StringVar(&s.out, "out", "grid.png", "output PNG path")
	flag.IntVar(&s.steps, "steps", 0, "number of scroll steps before the snapshot")
	flag.Float64Var(&s.dx, "dx", 0, "horizontal scroll per step in pixels")
	flag.Float64Var(&s.dy, "dy", 0, "vertical scroll per step in pixels")
	flag.Float64Var(&s.zoom, "zoom", 1, "viewport zoom")
	flag.IntVar(&s.flood, "flood", 0, "flood animation steps to run before the snapshot")
	flag.Parse()

	if err := flags.Validate(); err != nil {
		log.Fatal(err)
	}
	logger := app.NewLogger(flags.LogLevel, flags.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, flags, s, logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, flags *app.Flags, s script, logger *slog.Logger) error {
	cfg, err := flags.Config()
	if err != nil {
		return err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	engine := grid.New(cfg.GridConfig(), append(opts, grid.WithLogger(logger))...)
	defer engine.Close()

	screen := core.Size{W: float64(flags.Width), H: float64(flags.Height)}
	vp := viewport.New(cfg.ContentDimension, screen)
	if s.zoom != 1 {
		vp.ZoomAt(s.zoom, core.Point{X: screen.W / 2, Y: screen.H / 2})
	}

	events := make(chan grid.Event)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return engine.Run(gctx, events) })
	g.Go(func() error {
		defer close(events)
		next := []grid.Event{grid.ZoomEvent{Rect: vp.Rect()}}
		for range s.steps {
			next = append(next, grid.ScrollEvent{Rect: vp.ScrollBy(s.dx, s.dy)})
		}
		for _, ev := range next {
			select {
			case events <- ev:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("gridsnap: layout: %w", err)
	}

	if s.flood > 0 {
		d := anim.NewDriver(engine, flags.TPS, kernel.Ember, logger)
		d.Start()
		for range s.flood {
			d.Step()
		}
	}

	cells := engine.AppendCells(nil)
	if err := render.SavePNG(s.out, cells, vp, background); err != nil {
		return err
	}
	st := engine.Stats()
	logger.Info("snapshot written",
		"path", s.out,
		"kernel", st.Kernel.String(),
		"cells", len(cells),
		"allocated", st.Allocated,
		"passes", st.Passes,
	)
	return nil
}
