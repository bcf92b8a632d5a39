//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"infigrid/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()
	if err := flags.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := app.NewLogger(flags.LogLevel, flags.LogFormat, os.Stderr)
	cfg, err := flags.Config()
	if err != nil {
		log.Fatal(err)
	}

	game, err := app.New(cfg, flags.Width, flags.Height, flags.TPS, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowTitle("infigrid")
	ebiten.SetWindowSize(flags.Width, flags.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
