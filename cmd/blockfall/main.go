package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/host/ebitenhost"
	"github.com/plus3/blockfall/host/termhost"
	"github.com/plus3/blockfall/internal/profiling"
)

func main() {
	log.SetPrefix("blockfall: ")
	log.SetFlags(0)

	cfg, opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}

	stop, err := profiling.Start(opts.profile, ".")
	if err != nil {
		log.Fatal(err)
	}
	defer stop()

	if cfg.DropInterval > 0 {
		log.Printf("drop interval %s is recorded but pieces fall one row per frame", cfg.DropInterval)
	}

	var attract *game.AttractInput
	if opts.attract {
		attract = game.NewAttractInput(cfg.Seed, 0.1)
	}

	switch opts.ui {
	case "ebiten":
		err = runEbiten(cfg, opts, attract)
	case "term":
		err = runTerminal(cfg, attract)
	}
	if err != nil {
		log.Print(err)
		stop()
		os.Exit(1)
	}
}

type options struct {
	ui      string
	debug   bool
	attract bool
	profile string
}

func parseFlags(args []string, output io.Writer) (game.Config, options, error) {
	cfg := game.DefaultConfig()
	var opts options
	var overshoot bool

	fs := flag.NewFlagSet("blockfall", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Columns, "columns", cfg.Columns, "Grid width in cells.")
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "Grid height in cells.")
	fs.IntVar(&cfg.BlockSize, "block", cfg.BlockSize, "Block size in pixels.")
	fs.DurationVar(&cfg.DropInterval, "drop-interval", cfg.DropInterval, "Nominal drop interval. Accepted but not used for timing.")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Seed for the piece picker. 0 picks one at random.")
	fs.BoolVar(&overshoot, "lock-overshoot", false, "Lock pieces one row past their resting place.")
	fs.StringVar(&opts.ui, "ui", "ebiten", "Frontend to run: ebiten or term.")
	fs.BoolVar(&opts.debug, "debug", false, "Show the Dear ImGui debug panels (ebiten only).")
	fs.BoolVar(&opts.attract, "attract", false, "Let the computer press keys.")
	fs.StringVar(&opts.profile, "profile", "", fmt.Sprintf("Write a profile to the working directory, one of %v.", profiling.Modes()))

	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}

	if overshoot {
		cfg.LockMode = game.LockAtOvershoot
	}
	if opts.ui != "ebiten" && opts.ui != "term" {
		return cfg, opts, fmt.Errorf("unknown -ui %q, want ebiten or term", opts.ui)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, opts, err
	}
	return cfg, opts, nil
}

func runEbiten(cfg game.Config, opts options, attract *game.AttractInput) error {
	host, err := ebitenhost.New(cfg, ebitenhost.Options{
		Title:   "Blockfall",
		Debug:   opts.debug,
		Attract: attract,
	})
	if err != nil {
		return err
	}
	return host.Run()
}

func runTerminal(cfg game.Config, attract *game.AttractInput) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	host, err := termhost.New(screen, cfg, termhost.Options{Attract: attract})
	if err != nil {
		screen.Fini()
		return err
	}

	// The log would scribble over the screen while tcell owns the terminal.
	log.SetOutput(io.Discard)
	err = host.Run()
	screen.Fini()
	log.SetOutput(os.Stderr)

	log.Print(host.Loop())
	return err
}
