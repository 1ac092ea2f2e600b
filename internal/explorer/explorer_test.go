package explorer

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/artifact"
	"github.com/marben/mandel_explorer/internal/engine"
	"github.com/marben/mandel_explorer/internal/loop"
	"github.com/marben/mandel_explorer/internal/orchestrator"
)

// fakeEngine records submissions; finish completes the job in flight.
type fakeEngine struct {
	cb        mandel.EngineCallbacks
	digits    int
	submitted []mandel.RenderParameters
	stats     mandel.Statistics
}

func (e *fakeEngine) Initialize(cb mandel.EngineCallbacks, digits int) error {
	e.cb, e.digits = cb, digits
	return nil
}

func (e *fakeEngine) SetParameters(p mandel.RenderParameters) error {
	e.submitted = append(e.submitted, p)
	return nil
}

func (e *fakeEngine) StartRendering() error { return nil }

func (e *fakeEngine) Image() (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (e *fakeEngine) Statistics() mandel.Statistics { return e.stats }

func (e *fakeEngine) finish(stats mandel.Statistics) {
	e.stats = stats
	e.cb.RenderingBegun()
	e.cb.StatsGenerated()
	e.cb.RenderingEnded()
}

func (e *fakeEngine) last() mandel.RenderParameters { return e.submitted[len(e.submitted)-1] }

type fakeSink struct {
	surface draw.Image
	status  []string
	cleared int
}

func (s *fakeSink) Surface() draw.Image   { return s.surface }
func (s *fakeSink) SetProgress(bool)      {}
func (s *fakeSink) SetStatus(text string) { s.status = append(s.status, text) }
func (s *fakeSink) ClearSelection()       { s.cleared++ }

type fakeWriter struct{ paths []string }

func (w *fakeWriter) WriteImage(path string, _ image.Image) error {
	w.paths = append(w.paths, path)
	return nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = mandel.OutputSize{Width: 400, Height: 300}
	cfg.PrecisionDigits = 50
	cfg.Form = FormOf(Settings{IterationLimit: 200, PrecisionDigits: 50, SampleSize: 4})
	cfg.Chain = ChainSettings{
		Size:           mandel.OutputSize{Width: 64, Height: 64},
		IterationLimit: 4000,
		SampleSize:     100,
		Step:           10,
		Start:          0,
		Last:           2,
	}
	cfg.Paths = artifact.DirResolver{Dir: "out", FramePattern: "%d.png", SingleName: "fractal.png"}
	return cfg
}

func newTestExplorer(t *testing.T, cfg Config) (*Explorer, *fakeEngine, *fakeSink, *fakeWriter) {
	t.Helper()
	eng, sink, w := &fakeEngine{}, &fakeSink{}, &fakeWriter{}
	cfg.Writer = w
	ex, err := New(eng, sink, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return ex, eng, sink, w
}

func extent(a, b *apd.Decimal) float64 {
	var d apd.Decimal
	apd.BaseContext.WithPrecision(50).Sub(&d, b, a)
	f, _ := d.Float64()
	return f
}

func TestNewInitializesEngine(t *testing.T) {
	ex, eng, _, _ := newTestExplorer(t, testConfig())
	if eng.cb == nil || eng.digits != 50 {
		t.Fatalf("engine initialized with %v, %d", eng.cb, eng.digits)
	}
	if got := ex.DisplayRegion(); got != [4]string{"-2", "1", "-1.5", "1.5"} {
		t.Fatalf("region = %v", got)
	}
}

func TestRenderSubmitsFormSettings(t *testing.T) {
	ex, eng, sink, _ := newTestExplorer(t, testConfig())
	if err := ex.Render(); err != nil {
		t.Fatal(err)
	}
	p := eng.last()
	if p.IterationLimit != 200 || p.SampleSize != 4 || p.PrecisionDigits != 50 {
		t.Fatalf("params = %+v", p)
	}
	if p.Size != (mandel.OutputSize{Width: 400, Height: 300}) || p.Variant != mandel.VariantRegular {
		t.Fatalf("params = %s", p)
	}
	if sink.cleared != 1 {
		t.Fatalf("selection cleared %d times", sink.cleared)
	}
	if !ex.Busy() {
		t.Fatal("explorer idle after render")
	}
	if err := ex.Render(); !errors.Is(err, orchestrator.ErrJobInProgress) {
		t.Fatalf("second render = %v", err)
	}
	eng.finish(mandel.Statistics{MinIterations: 1, MeanIterations: 10, MaxIterations: 200, RenderTime: time.Millisecond})
	if ex.Busy() {
		t.Fatal("explorer busy after job ended")
	}
	if last := sink.status[len(sink.status)-1]; !strings.Contains(last, "scale: 1x") {
		t.Fatalf("status = %q", last)
	}
}

func TestRenderAdaptsIterationLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Form.AutoIterations = true
	ex, eng, _, _ := newTestExplorer(t, cfg)

	// nothing observed yet
	if err := ex.Render(); err != nil {
		t.Fatal(err)
	}
	if got := eng.last().IterationLimit; got != 200 {
		t.Fatalf("first limit = %d", got)
	}
	eng.finish(mandel.Statistics{MinIterations: 3, MeanIterations: 10, MaxIterations: 200})

	if err := ex.Render(); err != nil {
		t.Fatal(err)
	}
	if got := eng.last().IterationLimit; got != 80 {
		t.Fatalf("adapted limit = %d, want 80", got)
	}
	if ex.Form().MaxIterations != "80" {
		t.Fatalf("form not updated: %q", ex.Form().MaxIterations)
	}
}

func TestRenderRejectsBadForm(t *testing.T) {
	ex, eng, _, _ := newTestExplorer(t, testConfig())
	f := ex.Form()
	f.SampleSize = "many"
	ex.SetForm(f)

	err := ex.Render()
	var in *mandel.InvalidInputError
	if !errors.As(err, &in) || in.Field != "sample size" {
		t.Fatalf("got %v", err)
	}
	if !IsInputError(err) {
		t.Fatal("IsInputError = false")
	}
	if len(eng.submitted) != 0 {
		t.Fatal("parameters built from an invalid form")
	}
}

func TestZoomRendersHalfExtent(t *testing.T) {
	ex, eng, _, _ := newTestExplorer(t, testConfig())
	ok, err := ex.Zoom(image.Pt(200, 150), 2)
	if err != nil || !ok {
		t.Fatalf("zoom = %v, %v", ok, err)
	}
	// the square default region is widened to the 4:3 output
	r := eng.last().Region
	if w := extent(r.MinX, r.MaxX); w < 1.999 || w > 2.001 {
		t.Fatalf("width = %v, want 2", w)
	}
	if h := extent(r.MinY, r.MaxY); h < 1.499 || h > 1.501 {
		t.Fatalf("height = %v, want 1.5", h)
	}
	if ex.Region().MinX.Cmp(r.MinX) != 0 {
		t.Fatal("zoomed region not committed")
	}

	// ignored while the job runs
	if ok, err := ex.Zoom(image.Pt(10, 10), 2); ok || err != nil {
		t.Fatalf("zoom while busy = %v, %v", ok, err)
	}
	if len(eng.submitted) != 1 {
		t.Fatalf("%d submissions", len(eng.submitted))
	}
}

func TestSelectThenRender(t *testing.T) {
	ex, eng, sink, _ := newTestExplorer(t, testConfig())
	sel, err := ex.Select(image.Rect(100, 75, 300, 225))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sink.status[len(sink.status)-1], "Selection X:") {
		t.Fatalf("status = %v", sink.status)
	}
	if ex.Region().MinX.Cmp(sel.MinX) == 0 {
		t.Fatal("selection committed before render")
	}
	if err := ex.Render(); err != nil {
		t.Fatal(err)
	}
	if eng.last().Region.MinX.Cmp(sel.MinX) != 0 || ex.Region().MaxY.Cmp(sel.MaxY) != 0 {
		t.Fatal("render did not commit the selection")
	}

	eng.finish(mandel.Statistics{})
	ex.Reset()
	if err := ex.Render(); err != nil {
		t.Fatal(err)
	}
	if got := ex.DisplayRegion(); got != [4]string{"-2", "1", "-1.5", "1.5"} {
		t.Fatalf("region after reset = %v", got)
	}
}

func TestRenderFullResolution(t *testing.T) {
	ex, eng, _, w := newTestExplorer(t, testConfig())
	if err := ex.RenderFullResolution(); err != nil {
		t.Fatal(err)
	}
	if got := eng.last().Size; got != (mandel.OutputSize{Width: 2000, Height: 2000}) {
		t.Fatalf("size = %s", got)
	}
	eng.finish(mandel.Statistics{})
	if len(w.paths) != 1 || w.paths[0] != filepath.Join("out", "fractal.png") {
		t.Fatalf("artifacts = %v", w.paths)
	}
}

func TestChainRender(t *testing.T) {
	ex, eng, _, w := newTestExplorer(t, testConfig())
	if err := ex.StartChain(); err != nil {
		t.Fatal(err)
	}
	for i := 0; ex.ChainActive() && i < 10; i++ {
		eng.finish(mandel.Statistics{})
	}
	if ex.ChainActive() || ex.Busy() {
		t.Fatal("chain still running")
	}
	if len(eng.submitted) != 3 {
		t.Fatalf("%d submissions, want 3", len(eng.submitted))
	}
	for i, p := range eng.submitted {
		if p.Variant != mandel.VariantBuddhabrot || p.IterationLimit != 4000 || p.SampleSize != 100+10*i {
			t.Errorf("frame %d: %s", i, p)
		}
		if p.Size != (mandel.OutputSize{Width: 64, Height: 64}) {
			t.Errorf("frame %d size %s", i, p.Size)
		}
	}
	want := []string{filepath.Join("out", "0.png"), filepath.Join("out", "1.png"), filepath.Join("out", "2.png")}
	if strings.Join(w.paths, ",") != strings.Join(want, ",") {
		t.Fatalf("artifacts = %v, want %v", w.paths, want)
	}
}

func TestCancelChain(t *testing.T) {
	ex, eng, _, w := newTestExplorer(t, testConfig())
	if err := ex.StartChain(); err != nil {
		t.Fatal(err)
	}
	ex.CancelChain()
	eng.finish(mandel.Statistics{})
	if ex.ChainActive() || len(eng.submitted) != 1 || len(w.paths) != 1 {
		t.Fatalf("active = %v, submissions = %d, artifacts = %v", ex.ChainActive(), len(eng.submitted), w.paths)
	}
}

// recordingSink is safe to read once the loop has signalled.
type recordingSink struct {
	surface *image.RGBA
	status  []string
}

func (s *recordingSink) Surface() draw.Image   { return s.surface }
func (s *recordingSink) SetProgress(bool)      {}
func (s *recordingSink) SetStatus(text string) { s.status = append(s.status, text) }
func (s *recordingSink) ClearSelection()       {}

func TestLocalEngineOnLoop(t *testing.T) {
	dir := t.TempDir()
	l := loop.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	done := make(chan struct{})
	var once sync.Once
	cfg := testConfig()
	cfg.Size = mandel.OutputSize{Width: 40, Height: 30}
	cfg.FullResSize = mandel.OutputSize{Width: 20, Height: 20}
	cfg.Paths = artifact.DirResolver{Dir: dir, FramePattern: "%d.png", SingleName: "star.png"}
	cfg.Loop = l
	cfg.OnIdle = func() { once.Do(func() { close(done) }) }

	sink := &recordingSink{surface: image.NewRGBA(image.Rect(0, 0, 40, 30))}
	ex, err := New(engine.NewLocal(engine.WithWorkers(2), engine.WithTileSize(16)), sink, cfg)
	if err != nil {
		t.Fatal(err)
	}

	errc := make(chan error, 1)
	l.Post(func() { errc <- ex.RenderFullResolution() })
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("render did not finish")
	}

	if _, err := os.Stat(filepath.Join(dir, "star.png")); err != nil {
		t.Fatalf("artifact: %v", err)
	}
	// the 20x20 image is scaled onto the 40x30 surface
	lit := false
	for _, b := range sink.surface.Pix {
		if b != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatal("surface not drawn")
	}

	status := make(chan string, 1)
	l.Post(func() { status <- strings.Join(sink.status, "\n") })
	if s := <-status; !strings.Contains(s, "Rendered in") {
		t.Fatalf("status = %q", s)
	}
}
