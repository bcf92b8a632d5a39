// Command gridterm browses the infinite grid in a terminal.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"infigrid/internal/anim"
	"infigrid/internal/app"
	"infigrid/internal/grid"
	"infigrid/internal/kernel"
	"infigrid/internal/term"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	logFile := flag.String("log-file", "", "write logs to this file; the terminal is in use")
	flag.Parse()
	if err := flags.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.DiscardHandler)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger = app.NewLogger(flags.LogLevel, flags.LogFormat, f)
	}

	cfg, err := flags.Config()
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		log.Fatal(err)
	}
	engine := grid.New(cfg.GridConfig(), append(opts, grid.WithLogger(logger))...)
	defer engine.Close()

	flood := anim.NewDriver(engine, flags.TPS, kernel.Ember, logger)
	model := term.New(engine, cfg.ContentDimension, flood)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
	logger.Info("bye", "passes", engine.Stats().Passes)
}
