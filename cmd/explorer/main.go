// explorer is a headless driver for the fractal explorer.
// It runs a script of user actions (render, zoom, select, star, chain) against a local
// or remote engine and saves the final view as a PNG file.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/artifact"
	"github.com/marben/mandel_explorer/internal/config"
	"github.com/marben/mandel_explorer/internal/engine"
	"github.com/marben/mandel_explorer/internal/explorer"
	"github.com/marben/mandel_explorer/internal/journal"
	"github.com/marben/mandel_explorer/internal/loop"
	"github.com/marben/mandel_explorer/internal/orchestrator"
)

// main is the entry point for the explorer.
// It runs the script and logs any fatal errors.
func main() {
	log.Printf("Starting explorer...")
	if err := run(); err != nil {
		log.Fatal(exitMessage(err))
	}
}

// exitMessage tells bad input apart from failures of the explorer itself.
func exitMessage(err error) string {
	if explorer.IsInputError(err) {
		return fmt.Sprintf("%v (run with -h for usage)", err)
	}
	return fmt.Sprintf("FATAL: %v", err)
}

func run() error {
	cfg, err := config.Load("explorer", os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	actions, err := parseActions(cfg.Actions)
	if err != nil {
		return err
	}
	region, err := cfg.Region()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	// Step 1: Pick the compute engine
	eng, closeEngine, err := dialEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeEngine()

	// Step 2: Open the journal, if any
	var (
		store    *journal.Store
		recorder orchestrator.Recorder
	)
	if cfg.Journal != "" {
		if store, err = journal.Open(cfg.Journal); err != nil {
			return err
		}
		defer store.Close()
		recorder = store
	}

	// Step 3: Wire the explorer onto the loop
	l := loop.New()
	sink := newConsoleSink(cfg.Size)
	s := &script{actions: actions, stop: cancel}
	var ex *explorer.Explorer
	ex, err = explorer.New(eng, sink, explorer.Config{
		Size:            cfg.Size,
		Region:          region,
		PrecisionDigits: cfg.PrecisionDigits,
		DisplayDigits:   cfg.DisplayDigits,
		Form: explorer.FormOf(explorer.Settings{
			IterationLimit:     cfg.IterationLimit,
			PrecisionDigits:    cfg.PrecisionDigits,
			ArbitraryPrecision: cfg.ArbitraryPrecision,
			SampleSize:         cfg.SampleSize,
			Variant:            mandel.ParseVariant(cfg.Variant),
			Colouring:          mandel.ParseColouringMethod(cfg.Colouring),
			AutoIterations:     cfg.AutoIterations,
		}),
		FullResSize: cfg.FullResSize,
		Chain: explorer.ChainSettings{
			Size:           cfg.ChainSize,
			IterationLimit: cfg.ChainLimit,
			SampleSize:     cfg.ChainSamples,
			Step:           cfg.ChainStep,
			Start:          cfg.ChainStart,
			Last:           cfg.ChainLastFrame,
		},
		Paths:    cfg.Resolver(),
		Recorder: recorder,
		Progress: sink,
		OnIdle:   func() { s.next(ex) },
		Loop:     l,
	})
	if err != nil {
		return err
	}

	// Step 4: Run the script until it ends
	l.Post(func() { s.next(ex) })
	if err := l.Run(ctx); !errors.Is(err, errScriptDone) {
		return err
	}

	// Step 5: Save the final view
	filename := filepath.Join(cfg.OutDir, "view.png")
	log.Printf("Saving view to %q...", filename)
	if err := (artifact.PNGWriter{}).WriteImage(filename, sink.Surface()); err != nil {
		return fmt.Errorf("save view: %w", err)
	}
	d := ex.DisplayRegion()
	log.Printf("view x[%s, %s] y[%s, %s] saved to %q", d[0], d[1], d[2], d[3], filename)

	if store != nil {
		total, failed, err := store.Count(context.Background())
		if err != nil {
			return err
		}
		log.Printf("journal %s: %d jobs, %d failed", cfg.Journal, total, failed)
		if err := printHistory(context.Background(), os.Stdout, store, cfg.History); err != nil {
			return err
		}
	}
	return nil
}

// dialEngine returns the engine named by cfg.Engine and a function releasing it.
func dialEngine(ctx context.Context, cfg config.Config) (mandel.RenderEngine, func() error, error) {
	switch {
	case cfg.Engine == "" || cfg.Engine == "local":
		log.Printf("Rendering locally on %d workers", cfg.Workers)
		l := engine.NewLocal(engine.WithWorkers(cfg.Workers), engine.WithTileSize(cfg.TileSize))
		return l, func() error { return nil }, nil
	case strings.HasPrefix(cfg.Engine, "tcp://"):
		addr := strings.TrimPrefix(cfg.Engine, "tcp://")
		log.Printf("Connecting to engine host on %s...", addr)
		r, err := engine.DialTCP(ctx, addr)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	case strings.HasPrefix(cfg.Engine, "ws://"), strings.HasPrefix(cfg.Engine, "wss://"):
		log.Printf("Connecting to engine host on %s...", cfg.Engine)
		r, err := engine.DialWebsocket(ctx, cfg.Engine)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		return nil, nil, &mandel.InvalidInputError{Field: "engine", Value: cfg.Engine, Reason: "want local, tcp://host:port or ws://host:port/ws"}
	}
}
