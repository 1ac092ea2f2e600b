package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	mandel "github.com/marben/mandel_explorer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id string, finished time.Time) mandel.JobRecord {
	return mandel.JobRecord{
		ID:   id,
		Kind: "chain",
		Params: mandel.RenderParameters{
			Region:             mandel.SeahorseValley,
			Size:               mandel.OutputSize{Width: 1024, Height: 1024},
			IterationLimit:     4000,
			PrecisionDigits:    200,
			ArbitraryPrecision: true,
			SampleSize:         100,
			Variant:            mandel.VariantBuddhabrot,
			Colouring:          mandel.ColouringGreen,
		},
		Stats: mandel.Statistics{
			MinIterations:    1,
			MeanIterations:   12.5,
			MaxIterations:    4000,
			ConvergentPoints: 17,
			RenderTime:       1500 * time.Millisecond,
		},
		SubmittedAt: finished.Add(-2 * time.Second),
		FinishedAt:  finished,
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := s.Record(ctx, record(id, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	recs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "c" || recs[1].ID != "b" {
		t.Fatalf("order: %s, %s", recs[0].ID, recs[1].ID)
	}

	got, want := recs[0], record("c", base.Add(2*time.Second))
	if got.Params.String() != want.Params.String() {
		t.Errorf("params = %s, want %s", got.Params, want.Params)
	}
	if got.Params.Region.MinX.Cmp(want.Params.Region.MinX) != 0 {
		t.Errorf("minX = %s", got.Params.Region.MinX)
	}
	if !got.Params.ArbitraryPrecision || got.Params.PrecisionDigits != 200 {
		t.Errorf("precision lost: %+v", got.Params)
	}
	if got.Stats != want.Stats {
		t.Errorf("stats = %+v, want %+v", got.Stats, want.Stats)
	}
	if !got.FinishedAt.Equal(want.FinishedAt) || !got.SubmittedAt.Equal(want.SubmittedAt) {
		t.Errorf("times = %s, %s", got.SubmittedAt, got.FinishedAt)
	}
}

func TestSubSecondOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)

	// 12:00:05 and 12:00:05.5 must not sort by text length
	if err := s.Record(ctx, record("whole", base)); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(ctx, record("half", base.Add(500*time.Millisecond))); err != nil {
		t.Fatal(err)
	}
	recs, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ID != "half" {
		t.Fatalf("latest = %+v", recs)
	}
}

func TestCountFailures(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	ok := record("ok", now)
	failed := record("failed", now)
	failed.Err = "engine start rendering: boom"
	for _, r := range []mandel.JobRecord{ok, failed} {
		if err := s.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	// replaying a record keeps one row
	if err := s.Record(ctx, failed); err != nil {
		t.Fatal(err)
	}

	total, nFailed, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || nFailed != 1 {
		t.Fatalf("total = %d failed = %d", total, nFailed)
	}
}

func TestRecordRejectsMissingRegion(t *testing.T) {
	s := openTestStore(t)
	r := record("x", time.Now())
	r.Params.Region = mandel.Region{}
	if err := s.Record(context.Background(), r); err == nil {
		t.Fatal("record without region accepted")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(context.Background(), record("persisted", time.Now())); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	total, _, err := s.Count(context.Background())
	if err != nil || total != 1 {
		t.Fatalf("reopened journal: total = %d, err = %v", total, err)
	}
}
