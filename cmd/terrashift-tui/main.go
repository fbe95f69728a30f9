package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/getsentry/sentry-go"

	"terrashift/internal/app"
	"terrashift/internal/console"
	"terrashift/internal/grid"
	"terrashift/internal/mapfile"
	"terrashift/internal/tui"
	"terrashift/internal/world"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	// The terminal belongs to tcell, so logs are dropped unless -log-file is set.
	out, closeLog, err := app.OpenLog(cfg, io.Discard)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	log := app.NewLogger(out, cfg.LogLevel)

	stop, err := app.StartServices(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer stop()

	var splash *Splash
	if cfg.Sound {
		splash, err = NewSplash()
		if err != nil {
			log.Warn("sound disabled", "err", err)
		}
		defer splash.Close()
	}

	w, err := world.New(cfg.World,
		world.WithLogger(log),
		world.WithSpawnHook(func(grid.Coord) { splash.Request() }),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	con := console.New(w, mapfile.Store{Dir: cfg.MapDir}, log)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	defer sentry.Recover()

	var sound tui.Sound
	if splash != nil {
		sound = splash
	}
	tui.New(screen, w, con.Exec, sound, log).Run()
}
