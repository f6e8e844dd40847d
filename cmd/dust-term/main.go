package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"pixeldust/internal/app"
	"pixeldust/internal/core"
	_ "pixeldust/internal/sims/sand"
	"pixeldust/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	nudge := flag.Int("nudge", 800, "tilt change per arrow key press")
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.Names())
	}
	sim, err := factory(cfg.SimConfig())
	if err != nil {
		log.Fatalf("building %s: %v", cfg.Sim, err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("opening terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = term.Run(ctx, screen, sim, term.Options{TPS: cfg.TPS, Nudge: *nudge, Seed: cfg.Seed})
	stop()
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
