// Package orchestrator submits render jobs to a compute engine, one at a
// time, and reacts to the engine callbacks. It also sequences chain renders.
//
// An Orchestrator is not safe for concurrent use. Engine callbacks and user
// actions must reach it from a single coordinating goroutine (see
// internal/loop).
package orchestrator

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/artifact"
)

// ErrJobInProgress is returned by Submit while a job is in flight.
var ErrJobInProgress = errors.New("render job already in progress")

// JobStatus tells whether a job is in flight.
type JobStatus int

const (
	Idle JobStatus = iota
	InProgress
)

func (s JobStatus) String() string {
	if s == InProgress {
		return "in progress"
	}
	return "idle"
}

// JobKind tells what a finished job is for.
type JobKind int

const (
	// JobNone is an interactive render shown on the display.
	JobNone JobKind = iota
	// JobSingleFrame is a full-resolution render persisted to a fixed name.
	JobSingleFrame
	// JobChainFrame is one frame of a chain render.
	JobChainFrame
)

func (k JobKind) String() string {
	switch k {
	case JobSingleFrame:
		return "single"
	case JobChainFrame:
		return "chain"
	default:
		return "interactive"
	}
}

// ImageWriter persists an artifact.
type ImageWriter interface {
	WriteImage(path string, img image.Image) error
}

// Recorder keeps a journal of finished jobs.
type Recorder interface {
	Record(ctx context.Context, rec mandel.JobRecord) error
}

// StatsObserver receives the statistics of every completed job.
type StatsObserver interface {
	Observe(stats mandel.Statistics)
}

type job struct {
	id        string
	kind      JobKind
	params    mandel.RenderParameters
	submitted time.Time
}

// Orchestrator enforces the single job in flight and relays engine callbacks.
type Orchestrator struct {
	engine mandel.RenderEngine
	sink   mandel.NotificationSink

	paths    mandel.PathResolver
	writer   ImageWriter
	recorder Recorder
	observer StatsObserver
	progress mandel.ProgressListener
	scale    func(mandel.Region) string
	onIdle   func()
	now      func() time.Time
	log      *slog.Logger

	status  JobStatus
	current job
	stats   mandel.Statistics
	lastErr error

	chain chain
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithArtifacts sets where and how frames are persisted.
func WithArtifacts(paths mandel.PathResolver, w ImageWriter) Option {
	return func(o *Orchestrator) {
		o.paths = paths
		o.writer = w
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

func WithStatsObserver(s StatsObserver) Option {
	return func(o *Orchestrator) { o.observer = s }
}

func WithProgressListener(p mandel.ProgressListener) Option {
	return func(o *Orchestrator) { o.progress = p }
}

// WithScale sets the formatter of the zoom scale shown in the status line.
func WithScale(f func(mandel.Region) string) Option {
	return func(o *Orchestrator) { o.scale = f }
}

// WithIdleHook sets a function called whenever the orchestrator becomes
// idle with no chain frame pending.
func WithIdleHook(f func()) Option {
	return func(o *Orchestrator) { o.onIdle = f }
}

func withClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an Orchestrator driving engine.
func New(engine mandel.RenderEngine, sink mandel.NotificationSink, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		engine: engine,
		sink:   sink,
		paths:  artifact.DirResolver{Dir: ".", FramePattern: "%d.png", SingleName: "fractal.png"},
		writer: artifact.PNGWriter{},
		now:    time.Now,
		log:    mandel.Logger().With("component", "orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.chain.o = o
	return o
}

func (o *Orchestrator) Status() JobStatus { return o.status }

// Busy reports whether a job is in flight.
func (o *Orchestrator) Busy() bool { return o.status == InProgress }

// LastStatistics returns the statistics of the last completed job.
func (o *Orchestrator) LastStatistics() mandel.Statistics { return o.stats }

// LastError returns the error of the last failed job, or nil when the last
// job succeeded.
func (o *Orchestrator) LastError() error { return o.lastErr }

// Submit hands p to the engine. It fails with ErrJobInProgress while
// another job is in flight; concurrent submissions are rejected, never
// queued.
func (o *Orchestrator) Submit(p mandel.RenderParameters, kind JobKind) error {
	if o.status == InProgress {
		o.log.Warn("submission rejected", "kind", kind)
		o.sink.SetStatus("Render already in progress")
		return ErrJobInProgress
	}
	j := job{id: uuid.NewString(), kind: kind, params: p, submitted: o.now()}
	if err := o.engine.SetParameters(p); err != nil {
		return o.engineFailed(j, &mandel.EngineError{Op: "set parameters", Err: err})
	}

	o.status = InProgress
	o.current = j
	o.log.Debug("job submitted", "id", o.current.id, "kind", kind, "params", p)

	if err := o.engine.StartRendering(); err != nil {
		j := o.current
		o.status, o.current = Idle, job{}
		return o.engineFailed(j, &mandel.EngineError{Op: "start rendering", Err: err})
	}
	return nil
}

// RenderingBegun implements mandel.EngineCallbacks.
func (o *Orchestrator) RenderingBegun() {
	o.sink.SetProgress(true)
	o.sink.SetStatus("Rendering…")
	if o.progress != nil {
		o.progress.JobBegun()
	}
}

// RegionRendered implements mandel.EngineCallbacks.
func (o *Orchestrator) RegionRendered(rect image.Rectangle) {
	if o.progress != nil {
		o.progress.RegionRendered(rect)
	}
}

// StatsGenerated implements mandel.EngineCallbacks.
func (o *Orchestrator) StatsGenerated() {
	stats := o.engine.Statistics()
	o.sink.SetStatus(o.statusText(stats, o.current.params))
}

// RenderingEnded implements mandel.EngineCallbacks.
func (o *Orchestrator) RenderingEnded() {
	if o.status != InProgress {
		o.log.Warn("rendering ended without a job in flight")
		return
	}
	img, err := o.engine.Image()
	if err != nil {
		o.ErrorOccurred(&mandel.EngineError{Op: "get image", Err: err})
		return
	}
	o.complete(o.engine.Statistics(), img)
}

// ErrorOccurred implements mandel.EngineCallbacks. The job is abandoned,
// the orchestrator returns to Idle and a chain in flight is stopped.
func (o *Orchestrator) ErrorOccurred(err error) {
	var engErr *mandel.EngineError
	if !errors.As(err, &engErr) {
		err = &mandel.EngineError{Op: "render", Err: err}
	}
	j := o.current
	o.status, o.current = Idle, job{}
	o.engineFailed(j, err)
	o.idle()
}

func (o *Orchestrator) engineFailed(j job, err error) error {
	o.lastErr = err
	o.log.Error("render failed", "id", j.id, "kind", j.kind, "err", err)
	o.sink.SetProgress(false)
	o.sink.SetStatus("Render failed: " + err.Error())
	o.record(j, mandel.Statistics{}, err)
	if j.kind == JobChainFrame {
		o.chain.stop()
	}
	return err
}

func (o *Orchestrator) complete(stats mandel.Statistics, img *image.RGBA) {
	j := o.current
	o.status, o.current = Idle, job{}
	o.stats, o.lastErr = stats, nil
	o.sink.SetProgress(false)
	o.log.Info("job completed", "id", j.id, "kind", j.kind, "ms", stats.Millis())

	if o.observer != nil {
		o.observer.Observe(stats)
	}
	o.record(j, stats, nil)

	switch j.kind {
	case JobChainFrame:
		o.chain.frameComplete(img)
	case JobSingleFrame:
		o.persist(o.paths.SingleFramePath(), img)
		o.redraw(img)
	default:
		o.redraw(img)
	}
	o.idle()
}

func (o *Orchestrator) idle() {
	if o.onIdle != nil && o.status == Idle && !o.chain.active {
		o.onIdle()
	}
}

// persist writes img to path. Failures are reported but never fatal.
func (o *Orchestrator) persist(path string, img image.Image) {
	if err := o.writer.WriteImage(path, img); err != nil {
		ioErr := &mandel.IOError{Path: path, Err: err}
		o.log.Warn("artifact not written", "err", ioErr)
		o.sink.SetStatus("Could not save image: " + ioErr.Error())
		return
	}
	o.log.Debug("artifact written", "path", path)
}

func (o *Orchestrator) redraw(img image.Image) {
	if dst := o.sink.Surface(); dst != nil {
		artifact.Fit(dst, img)
	}
}

func (o *Orchestrator) record(j job, stats mandel.Statistics, failure error) {
	if o.recorder == nil || j.id == "" {
		return
	}
	rec := mandel.JobRecord{
		ID:          j.id,
		Kind:        j.kind.String(),
		Params:      j.params,
		Stats:       stats,
		SubmittedAt: j.submitted,
		FinishedAt:  o.now(),
	}
	if failure != nil {
		rec.Err = failure.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.recorder.Record(ctx, rec); err != nil {
		o.log.Warn("journal record failed", "id", j.id, "err", err)
	}
}
