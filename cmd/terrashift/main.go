//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"terrashift/internal/app"
	"terrashift/internal/console"
	"terrashift/internal/mapfile"
	"terrashift/internal/world"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	out, closeLog, err := app.OpenLog(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	log := app.NewLogger(out, cfg.LogLevel)

	stop, err := app.StartServices(cfg, log)
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer stop()
	defer sentry.Recover()

	w, err := world.New(cfg.World, world.WithLogger(log))
	if err != nil {
		log.Error("map generation failed", "err", err)
		os.Exit(1)
	}
	con := console.New(w, mapfile.Store{Dir: cfg.MapDir}, log)
	game := app.New(w, con, cfg.Scale, cfg.World.Seed)

	width, height := game.Layout(0, 0)
	ebiten.SetWindowTitle("terrashift")
	ebiten.SetTPS(cfg.World.TPS)
	ebiten.SetWindowSize(width, height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("game stopped", "err", err)
	}
}
