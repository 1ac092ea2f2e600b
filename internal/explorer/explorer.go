// Package explorer wires the viewport, the iteration limit adaptor and the
// job orchestrator into the operations a user performs: render, zoom,
// select, full-resolution render and chain render.
//
// Like the orchestrator it drives, an Explorer is not safe for concurrent
// use. Hosts with several goroutines post every call onto a loop.Loop and
// pass that loop in Config so engine callbacks arrive there too.
package explorer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/artifact"
	"github.com/marben/mandel_explorer/internal/iterlimit"
	"github.com/marben/mandel_explorer/internal/loop"
	"github.com/marben/mandel_explorer/internal/orchestrator"
	"github.com/marben/mandel_explorer/internal/precision"
	"github.com/marben/mandel_explorer/internal/viewport"
)

// ChainSettings describes a chain render. Frames use the Buddhabrot variant.
type ChainSettings struct {
	Size           mandel.OutputSize
	IterationLimit int
	SampleSize     int
	Step           int
	Start          int
	Last           int
}

type Config struct {
	Size            mandel.OutputSize
	Region          mandel.Region // zero value means the default region
	PrecisionDigits int
	DisplayDigits   int
	Form            SettingsForm
	FullResSize     mandel.OutputSize
	Chain           ChainSettings

	Paths    mandel.PathResolver
	Writer   orchestrator.ImageWriter
	Recorder orchestrator.Recorder
	Progress mandel.ProgressListener
	OnIdle   func()
	// Loop, when set, receives every engine callback.
	Loop *loop.Loop
}

// DefaultConfig returns the settings of the interactive explorer panel.
func DefaultConfig() Config {
	return Config{
		Size:            mandel.OutputSize{Width: 800, Height: 600},
		PrecisionDigits: precision.DefaultDigits,
		DisplayDigits:   precision.DefaultDisplayDigits,
		Form: FormOf(Settings{
			IterationLimit:  50,
			PrecisionDigits: precision.DefaultDigits,
			SampleSize:      100000,
		}),
		FullResSize: mandel.OutputSize{Width: 2000, Height: 2000},
		Chain: ChainSettings{
			Size:           mandel.OutputSize{Width: 1024, Height: 1024},
			IterationLimit: 4000,
			SampleSize:     513300,
			Step:           100,
			Start:          7224,
			Last:           100000,
		},
	}
}

type Explorer struct {
	coords *viewport.CoordinateSystem
	view   *viewport.Controller
	orch   *orchestrator.Orchestrator
	adapt  iterlimit.Adaptor
	sink   mandel.NotificationSink

	form    SettingsForm
	fullRes mandel.OutputSize
	chain   ChainSettings
	log     *slog.Logger
}

// New creates an Explorer and initializes engine with its callbacks.
func New(engine mandel.RenderEngine, sink mandel.NotificationSink, cfg Config) (*Explorer, error) {
	full, err := precision.NewFull(cfg.PrecisionDigits)
	if err != nil {
		return nil, fmt.Errorf("computation precision: %w", err)
	}
	display, err := precision.NewDisplay(cfg.DisplayDigits)
	if err != nil {
		return nil, fmt.Errorf("display precision: %w", err)
	}
	coords, err := viewport.NewCoordinateSystem(full, display, cfg.Size)
	if err != nil {
		return nil, err
	}
	if cfg.Region.MinX != nil {
		if err := coords.Commit(cfg.Region); err != nil {
			return nil, err
		}
	}

	e := &Explorer{
		coords:  coords,
		sink:    sink,
		form:    cfg.Form,
		fullRes: cfg.FullResSize,
		chain:   cfg.Chain,
		log:     mandel.Logger().With("component", "explorer"),
	}

	opts := []orchestrator.Option{
		orchestrator.WithStatsObserver(&e.adapt),
		orchestrator.WithScale(coords.ScaleText),
	}
	if cfg.Paths != nil {
		w := cfg.Writer
		if w == nil {
			w = artifact.PNGWriter{}
		}
		opts = append(opts, orchestrator.WithArtifacts(cfg.Paths, w))
	}
	if cfg.Recorder != nil {
		opts = append(opts, orchestrator.WithRecorder(cfg.Recorder))
	}
	if cfg.Progress != nil {
		opts = append(opts, orchestrator.WithProgressListener(cfg.Progress))
	}
	if cfg.OnIdle != nil {
		opts = append(opts, orchestrator.WithIdleHook(cfg.OnIdle))
	}
	e.orch = orchestrator.New(engine, sink, opts...)
	e.view = viewport.NewController(coords, e.orch, e.Render)

	var cb mandel.EngineCallbacks = e.orch
	if cfg.Loop != nil {
		cb = cfg.Loop.Callbacks(e.orch)
	}
	if err := engine.Initialize(cb, full.Digits()); err != nil {
		return nil, &mandel.EngineError{Op: "initialize", Err: err}
	}
	return e, nil
}

// Render commits the selection and renders it with the form settings,
// adapting the iteration limit first when enabled.
func (e *Explorer) Render() error {
	if e.orch.Busy() {
		return orchestrator.ErrJobInProgress
	}
	s, err := e.form.Parse()
	if err != nil {
		return err
	}
	e.adapt.SetEnabled(s.AutoIterations)
	if next := e.adapt.Next(s.IterationLimit); next != s.IterationLimit {
		e.log.Info("iteration limit adapted", "from", s.IterationLimit, "to", next)
		s.IterationLimit = next
		e.form.MaxIterations = strconv.Itoa(next)
	}

	e.sink.ClearSelection()
	region, err := e.view.Commit()
	if err != nil {
		return err
	}
	return e.orch.Submit(params(region, e.coords.Size(), s), orchestrator.JobNone)
}

// RenderFullResolution commits the selection and renders it at the full
// resolution size into the single-frame artifact.
func (e *Explorer) RenderFullResolution() error {
	if e.orch.Busy() {
		return orchestrator.ErrJobInProgress
	}
	s, err := e.form.Parse()
	if err != nil {
		return err
	}
	region, err := e.view.Commit()
	if err != nil {
		return err
	}
	return e.orch.Submit(params(region, e.fullRes, s), orchestrator.JobSingleFrame)
}

// StartChain renders the current region as a chain of Buddhabrot frames.
// Form settings are read once, at start.
func (e *Explorer) StartChain() error {
	s, err := e.form.Parse()
	if err != nil {
		return err
	}
	region := e.coords.Region()
	ch := e.chain
	frame := func(samples int) mandel.RenderParameters {
		p := params(region, ch.Size, s)
		p.IterationLimit = ch.IterationLimit
		p.SampleSize = samples
		p.Variant = mandel.VariantBuddhabrot
		return p
	}
	return e.orch.StartChain(orchestrator.ChainState{
		SampleSize: ch.SampleSize,
		Step:       ch.Step,
		Position:   ch.Start,
		Limit:      ch.Last,
	}, frame)
}

// CancelChain stops a chain render after its current frame.
func (e *Explorer) CancelChain() { e.orch.CancelChain() }

// Zoom zooms by factor around pixel pt and renders. It reports false when
// ignored because a job is in flight.
func (e *Explorer) Zoom(pt image.Point, factor float64) (bool, error) {
	return e.view.Zoom(pt, factor)
}

// Select makes the dragged rectangle, aspect-locked, the next region.
func (e *Explorer) Select(rect image.Rectangle) (mandel.Region, error) {
	r, err := e.view.Select(rect)
	if err != nil {
		return mandel.Region{}, err
	}
	d := e.DisplaySelection()
	e.sink.SetStatus(fmt.Sprintf("Selection X: %s .. %s Y: %s .. %s", d[0], d[1], d[2], d[3]))
	return r, nil
}

// Reset selects the default region. It is shown at the next render.
func (e *Explorer) Reset() { e.view.Reset() }

// SetOutputSize changes the size of interactive renders.
func (e *Explorer) SetOutputSize(size mandel.OutputSize) error {
	return e.coords.SetOutputSize(size)
}

func (e *Explorer) Form() SettingsForm { return e.form }

// SetForm replaces the settings form. It is validated at the next render.
func (e *Explorer) SetForm(f SettingsForm) { e.form = f }

func (e *Explorer) Region() mandel.Region    { return e.coords.Region() }
func (e *Explorer) Selection() mandel.Region { return e.view.Selection() }
func (e *Explorer) Size() mandel.OutputSize  { return e.coords.Size() }

// DisplayRegion returns the current region rounded for display.
func (e *Explorer) DisplayRegion() [4]string { return e.coords.DisplayRegion() }

// DisplaySelection returns the selection rounded for display.
func (e *Explorer) DisplaySelection() [4]string {
	return viewport.DisplayRegion(e.coords.Display(), e.view.Selection())
}

func (e *Explorer) Busy() bool        { return e.orch.Busy() }
func (e *Explorer) ChainActive() bool { return e.orch.ChainActive() }

func (e *Explorer) Chain() (orchestrator.ChainState, bool) { return e.orch.Chain() }

func (e *Explorer) LastStatistics() mandel.Statistics { return e.orch.LastStatistics() }
func (e *Explorer) LastError() error                  { return e.orch.LastError() }

// IsInputError reports whether err was caused by invalid user input.
func IsInputError(err error) bool {
	var in *mandel.InvalidInputError
	return errors.As(err, &in)
}

func params(region mandel.Region, size mandel.OutputSize, s Settings) mandel.RenderParameters {
	return mandel.RenderParameters{
		Region:             region,
		Size:               size,
		IterationLimit:     s.IterationLimit,
		PrecisionDigits:    s.PrecisionDigits,
		ArbitraryPrecision: s.ArbitraryPrecision,
		SampleSize:         s.SampleSize,
		Variant:            s.Variant,
		Colouring:          s.Colouring,
	}
}
