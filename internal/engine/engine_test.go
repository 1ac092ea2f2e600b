package engine

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/precision"
)

// events records callbacks and signals the end of a job.
type events struct {
	mu      sync.Mutex
	begun   int
	stats   int
	regions []image.Rectangle
	done    chan error
}

func newEvents() *events { return &events{done: make(chan error, 4)} }

func (e *events) RenderingBegun() {
	e.mu.Lock()
	e.begun++
	e.mu.Unlock()
}

func (e *events) RegionRendered(r image.Rectangle) {
	e.mu.Lock()
	e.regions = append(e.regions, r)
	e.mu.Unlock()
}

func (e *events) StatsGenerated() {
	e.mu.Lock()
	e.stats++
	e.mu.Unlock()
}

func (e *events) RenderingEnded()         { e.done <- nil }
func (e *events) ErrorOccurred(err error) { e.done <- err }

func (e *events) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-e.done:
		return err
	case <-time.After(30 * time.Second):
		t.Fatal("job did not finish")
		return nil
	}
}

func params(w, h, limit int) mandel.RenderParameters {
	return mandel.RenderParameters{
		Region:          mandel.DefaultRegion(),
		Size:            mandel.OutputSize{Width: w, Height: h},
		IterationLimit:  limit,
		PrecisionDigits: 30,
		SampleSize:      1,
	}
}

func render(t *testing.T, l *Local, p mandel.RenderParameters) (*events, *image.RGBA, mandel.Statistics) {
	t.Helper()
	ev := newEvents()
	if err := l.Initialize(ev, precision.DefaultDigits); err != nil {
		t.Fatal(err)
	}
	if err := l.SetParameters(p); err != nil {
		t.Fatal(err)
	}
	if err := l.StartRendering(); err != nil {
		t.Fatal(err)
	}
	if err := ev.wait(t); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	img, err := l.Image()
	if err != nil {
		t.Fatal(err)
	}
	return ev, img, l.Statistics()
}

func TestSplitRectNoClip(t *testing.T) {
	r := image.Rect(10, 20, 140, 90)
	tiles := splitRectNoClip(r, 64, 64)
	if len(tiles) != 6 {
		t.Fatalf("got %d tiles, want 6", len(tiles))
	}
	area := 0
	for _, tile := range tiles {
		if !tile.In(r) {
			t.Fatalf("tile %s outside %s", tile, r)
		}
		area += tile.Dx() * tile.Dy()
	}
	if area != r.Dx()*r.Dy() {
		t.Fatalf("tiles cover %d pixels, want %d", area, r.Dx()*r.Dy())
	}
	if last := tiles[len(tiles)-1]; last != image.Rect(138, 84, 140, 90) {
		t.Fatalf("last tile = %s", last)
	}
}

func TestTileSchedulerProgress(t *testing.T) {
	ts := newTileScheduler(image.Rect(0, 0, 4, 2), 2)
	var done float32
	for {
		tile, ok := ts.popTile()
		if !ok {
			break
		}
		done = ts.tileFinished(tile)
	}
	if done != 1 {
		t.Fatalf("finished = %v, want 1", done)
	}
	// unknown tiles do not count twice
	if got := ts.tileFinished(image.Rect(0, 0, 2, 2)); got != 1 {
		t.Fatalf("finished = %v after duplicate", got)
	}
}

func TestTileSchedulerWorkerPanic(t *testing.T) {
	ts := newTileScheduler(image.Rect(0, 0, 16, 16), 2)
	var rendered atomic.Int32
	err := ts.run(3, func(tile image.Rectangle) {
		if tile.Min == image.Pt(4, 0) {
			panic("bad tile")
		}
		rendered.Add(1)
	})
	if err == nil || !strings.Contains(err.Error(), "bad tile") {
		t.Fatalf("run = %v, want the panic as an error", err)
	}
	if n := rendered.Load(); n >= 63 {
		t.Fatalf("%d tiles rendered after a panic", n)
	}
	if _, ok := ts.popTile(); ok {
		t.Fatal("tiles left after a panic")
	}
}

func TestTileSchedulerNoPanic(t *testing.T) {
	ts := newTileScheduler(image.Rect(0, 0, 6, 6), 2)
	var rendered atomic.Int32
	if err := ts.run(4, func(image.Rectangle) { rendered.Add(1) }); err != nil {
		t.Fatal(err)
	}
	if n := rendered.Load(); n != 9 {
		t.Fatalf("rendered %d tiles, want 9", n)
	}
}

// crashingEvents panics in RegionRendered, which tile workers call.
type crashingEvents struct{ *events }

func (crashingEvents) RegionRendered(image.Rectangle) { panic("display gone") }

func TestLocalReportsWorkerPanic(t *testing.T) {
	l := NewLocal(WithWorkers(3), WithTileSize(4))
	ev := newEvents()
	if err := l.Initialize(crashingEvents{ev}, precision.DefaultDigits); err != nil {
		t.Fatal(err)
	}
	if err := l.SetParameters(params(12, 8, 20)); err != nil {
		t.Fatal(err)
	}
	if err := l.StartRendering(); err != nil {
		t.Fatal(err)
	}
	err := ev.wait(t)
	if err == nil || !strings.Contains(err.Error(), "display gone") {
		t.Fatalf("got %v, want the worker panic", err)
	}
	if _, err := l.Image(); errors.Is(err, ErrBusy) {
		t.Fatal("engine still busy after a worker panic")
	}
	if err := l.StartRendering(); err != nil {
		t.Fatalf("engine unusable after a worker panic: %v", err)
	}
	if err := ev.wait(t); err == nil {
		t.Fatal("second job did not fail")
	}
}

func TestRecovered(t *testing.T) {
	if err := recovered(func() {}); err != nil {
		t.Fatalf("recovered = %v", err)
	}
	err := recovered(func() {
		var s []int
		_ = s[3]
	})
	if err == nil || !strings.Contains(err.Error(), "render panicked") {
		t.Fatalf("recovered = %v", err)
	}
}

func TestLocalRender(t *testing.T) {
	l := NewLocal(WithWorkers(3), WithTileSize(4))
	ev, img, stats := render(t, l, params(12, 9, 60))

	if img.Bounds() != image.Rect(0, 0, 12, 9) {
		t.Fatalf("bounds = %s", img.Bounds())
	}
	if ev.begun != 1 || ev.stats != 1 {
		t.Fatalf("begun = %d stats = %d", ev.begun, ev.stats)
	}
	if len(ev.regions) != 9 {
		t.Fatalf("got %d regions, want 9", len(ev.regions))
	}
	if stats.ConvergentPoints == 0 || stats.ConvergentPoints == 12*9 {
		t.Fatalf("convergent = %d", stats.ConvergentPoints)
	}
	if stats.MaxIterations != 60 || stats.MinIterations < 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.MeanIterations <= float64(stats.MinIterations) || stats.MeanIterations >= 60 {
		t.Fatalf("mean = %v", stats.MeanIterations)
	}
}

func TestLocalArbitraryPrecisionAgrees(t *testing.T) {
	p := params(16, 12, 80)
	_, _, fast := render(t, NewLocal(WithWorkers(2)), p)

	p.ArbitraryPrecision = true
	_, _, exact := render(t, NewLocal(WithWorkers(2)), p)

	diff := fast.ConvergentPoints - exact.ConvergentPoints
	if diff < -5 || diff > 5 {
		t.Fatalf("convergent points: float %d, decimal %d", fast.ConvergentPoints, exact.ConvergentPoints)
	}
	if exact.MaxIterations != 80 {
		t.Fatalf("decimal stats = %+v", exact)
	}
}

func TestLocalSupersampling(t *testing.T) {
	p := params(8, 6, 40)
	_, plain, s1 := render(t, NewLocal(), p)

	p.SampleSize = 9
	_, smooth, s9 := render(t, NewLocal(), p)

	// statistics are per pixel regardless of the sample count
	if s1.ConvergentPoints != s9.ConvergentPoints {
		t.Fatalf("convergent %d vs %d", s1.ConvergentPoints, s9.ConvergentPoints)
	}
	if bytes.Equal(plain.Pix, smooth.Pix) {
		t.Fatal("supersampled image identical to single-sample image")
	}
}

func TestLocalBuddhabrot(t *testing.T) {
	p := params(20, 20, 50)
	p.Variant = mandel.VariantBuddhabrot
	p.SampleSize = 3000

	ev, a, stats := render(t, NewLocal(WithWorkers(3), WithSeed(7)), p)
	if len(ev.regions) != 1 || ev.regions[0] != a.Bounds() {
		t.Fatalf("regions = %v", ev.regions)
	}
	if stats.ConvergentPoints == 0 || stats.ConvergentPoints >= 3000 {
		t.Fatalf("convergent = %d", stats.ConvergentPoints)
	}

	_, b, _ := render(t, NewLocal(WithWorkers(3), WithSeed(7)), p)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("same seed produced different images")
	}

	lit := false
	for i := 0; i < len(a.Pix); i += 4 {
		if a.Pix[i] != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatal("no trajectory reached the image")
	}
}

func TestLocalRejects(t *testing.T) {
	l := NewLocal()
	if err := l.StartRendering(); !errors.Is(err, errNotInitialized) {
		t.Fatalf("StartRendering before Initialize = %v", err)
	}
	if err := l.Initialize(newEvents(), 20); err != nil {
		t.Fatal(err)
	}
	if err := l.StartRendering(); !errors.Is(err, errNoParameters) {
		t.Fatalf("StartRendering without parameters = %v", err)
	}
	if _, err := l.Image(); !errors.Is(err, errNoImage) {
		t.Fatalf("Image before render = %v", err)
	}
	if err := l.Initialize(nil, 20); err == nil {
		t.Fatal("nil callbacks accepted")
	}

	bad := []mandel.RenderParameters{
		params(0, 10, 10),
		params(10, 10, 0),
		{Region: mandel.Region{}, Size: mandel.OutputSize{Width: 1, Height: 1}, IterationLimit: 1, SampleSize: 1},
	}
	noSamples := params(4, 4, 4)
	noSamples.SampleSize = 0
	bad = append(bad, noSamples)
	for _, p := range bad {
		if err := l.SetParameters(p); err == nil {
			t.Errorf("SetParameters(%+v) accepted", p.Size)
		}
	}
}

func TestEscapePathsAgree(t *testing.T) {
	full, err := precision.NewFull(40)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		re, im  float64
		escaped bool
		iter    int
	}{
		{1, 0, true, 3},
		{-1, 0, false, 100},
		{-2.1, 0, true, 1},
		{0, 0, false, 100},
		{0.5, 0, true, 5},
	} {
		_, _, iter, escaped := orbit(complex(c.re, c.im), 100)
		if iter != c.iter || escaped != c.escaped {
			t.Errorf("orbit(%v, %v) = %d, %v; want %d, %v", c.re, c.im, iter, escaped, c.iter, c.escaped)
		}

		calc := full.Calc()
		_, iter, escaped = escapeDecimal(calc, calc.Float(c.re), calc.Float(c.im), 100)
		if iter != c.iter || escaped != c.escaped {
			t.Errorf("escapeDecimal(%v, %v) = %d, %v; want %d, %v", c.re, c.im, iter, escaped, c.iter, c.escaped)
		}
	}
}

func TestShade(t *testing.T) {
	if got := shade(mandel.ColouringRed, 10, 0, 10, false); got.R != 0 || got.A != 255 {
		t.Fatalf("convergent point = %v, want black", got)
	}
	if got := shade(mandel.ColouringRed, 10, 0, 10, true); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Fatalf("red = %v", got)
	}
	if got := shade(mandel.ColouringBlue, 2.5, 0, 10, true); got.B != 127 || got.R != 0 {
		t.Fatalf("blue = %v", got)
	}
	if got := hsv(0, 1, 1); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Fatalf("hsv(0) = %v", got)
	}
}
