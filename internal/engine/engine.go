// Package engine provides compute engines for the explorer: Local renders
// in-process on a pool of goroutines, Remote forwards jobs to a Host over
// the network.
package engine

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"time"

	mandel "github.com/marben/mandel_explorer"
)

var (
	// ErrBusy is returned while a job is running.
	ErrBusy = errors.New("engine busy")

	errNotInitialized = errors.New("engine not initialized")
	errNoParameters   = errors.New("no parameters set")
	errNoImage        = errors.New("no image rendered")
)

// Option configures a Local engine.
type Option func(*Local)

// WithWorkers sets the number of rendering goroutines.
func WithWorkers(n int) Option {
	return func(l *Local) { l.workers = max(n, 1) }
}

// WithTileSize sets the edge of the square tiles handed to workers.
func WithTileSize(n int) Option {
	return func(l *Local) { l.tileSize = max(n, 1) }
}

// WithSeed fixes the random source of the sampling variant.
func WithSeed(seed uint64) Option {
	return func(l *Local) { l.seed = seed }
}

// Local is an in-process RenderEngine.
type Local struct {
	workers  int
	tileSize int
	seed     uint64
	log      *slog.Logger

	mu        sync.Mutex
	cb        mandel.EngineCallbacks
	digits    int
	params    mandel.RenderParameters
	hasParams bool
	running   bool
	img       *image.RGBA
	stats     mandel.Statistics
}

func NewLocal(opts ...Option) *Local {
	l := &Local{
		workers:  runtime.NumCPU(),
		tileSize: 64,
		seed:     uint64(time.Now().UnixNano()),
		log:      mandel.Logger().With("component", "engine"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) Initialize(cb mandel.EngineCallbacks, precisionDigits int) error {
	if cb == nil {
		return errors.New("nil callbacks")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cb = cb
	l.digits = precisionDigits
	return nil
}

func (l *Local) SetParameters(p mandel.RenderParameters) error {
	if err := validate(p); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return ErrBusy
	}
	l.params = p
	l.hasParams = true
	return nil
}

func validate(p mandel.RenderParameters) error {
	if err := p.Region.Validate(); err != nil {
		return err
	}
	switch {
	case p.Size.Width < 1 || p.Size.Height < 1:
		return fmt.Errorf("output size %s: must be at least 1x1", p.Size)
	case p.IterationLimit < 1:
		return fmt.Errorf("iteration limit %d: must be positive", p.IterationLimit)
	case p.SampleSize < 1:
		return fmt.Errorf("sample size %d: must be positive", p.SampleSize)
	}
	return nil
}

// StartRendering runs the job on its own goroutines and returns at once.
func (l *Local) StartRendering() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.cb == nil:
		return errNotInitialized
	case !l.hasParams:
		return errNoParameters
	case l.running:
		return ErrBusy
	}
	l.running = true
	p := l.params
	if p.PrecisionDigits < 1 {
		p.PrecisionDigits = l.digits
	}
	go l.run(p, l.cb)
	return nil
}

func (l *Local) Image() (*image.RGBA, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil, ErrBusy
	}
	if l.img == nil {
		return nil, errNoImage
	}
	return l.img, nil
}

func (l *Local) Statistics() mandel.Statistics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

func (l *Local) run(p mandel.RenderParameters, cb mandel.EngineCallbacks) {
	start := time.Now()
	cb.RenderingBegun()

	img, acc, err := l.render(p, cb)
	stats := acc.statistics(time.Since(start))

	l.mu.Lock()
	l.running = false
	if err == nil {
		l.img, l.stats = img, stats
	}
	l.mu.Unlock()

	if err != nil {
		l.log.Error("render failed", "err", err)
		cb.ErrorOccurred(err)
		return
	}
	l.log.Debug("render done", "params", p, "ms", stats.Millis())
	cb.StatsGenerated()
	cb.RenderingEnded()
}

func (l *Local) render(p mandel.RenderParameters, cb mandel.EngineCallbacks) (img *image.RGBA, acc accumulator, err error) {
	if perr := recovered(func() {
		if p.Variant == mandel.VariantBuddhabrot {
			img, acc, err = l.renderBuddhabrot(p, cb)
			return
		}
		img, acc, err = l.renderEscape(p, cb)
	}); perr != nil {
		return nil, accumulator{}, perr
	}
	return img, acc, err
}

// recovered runs f and turns a panic into an error. Every goroutine of a
// job runs its work through it.
func recovered(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panicked: %v", r)
		}
	}()
	f()
	return nil
}

// accumulator gathers iteration statistics.
type accumulator struct {
	n          int
	min, max   int
	sum        float64
	convergent int
}

func (a *accumulator) add(iterations int, escaped bool) {
	if a.n == 0 || iterations < a.min {
		a.min = iterations
	}
	if iterations > a.max {
		a.max = iterations
	}
	a.n++
	a.sum += float64(iterations)
	if !escaped {
		a.convergent++
	}
}

func (a *accumulator) merge(b accumulator) {
	if b.n == 0 {
		return
	}
	if a.n == 0 || b.min < a.min {
		a.min = b.min
	}
	a.max = max(a.max, b.max)
	a.n += b.n
	a.sum += b.sum
	a.convergent += b.convergent
}

func (a accumulator) statistics(d time.Duration) mandel.Statistics {
	s := mandel.Statistics{
		MinIterations:    a.min,
		MaxIterations:    a.max,
		ConvergentPoints: a.convergent,
		RenderTime:       d,
	}
	if a.n > 0 {
		s.MeanIterations = a.sum / float64(a.n)
	}
	return s
}
