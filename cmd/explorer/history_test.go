package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/journal"
)

func TestPrintHistory(t *testing.T) {
	store, err := journal.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, kind := range []string{"interactive", "single", "chain"} {
		rec := mandel.JobRecord{
			ID:   fmt.Sprint("job-", i),
			Kind: kind,
			Params: mandel.RenderParameters{
				Region:         mandel.DefaultRegion(),
				Size:           mandel.OutputSize{Width: 80, Height: 60},
				IterationLimit: 50 * (i + 1),
				SampleSize:     1,
			},
			Stats:       mandel.Statistics{RenderTime: 1500 * time.Microsecond},
			SubmittedAt: base.Add(time.Duration(i) * time.Second),
			FinishedAt:  base.Add(time.Duration(i)*time.Second + time.Millisecond),
		}
		if kind == "chain" {
			rec.Err = "engine: connection lost"
		}
		if err := store.Record(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	if err := printHistory(ctx, &out, store, 2); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("printed %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "chain") || !strings.HasSuffix(lines[0], "failed: engine: connection lost") {
		t.Errorf("newest line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "single") || !strings.Contains(lines[1], "80x60") || !strings.HasSuffix(lines[1], "limit 100 1.5ms") {
		t.Errorf("second line = %q", lines[1])
	}
}

type failingJobs struct{}

func (failingJobs) Recent(context.Context, int) ([]mandel.JobRecord, error) {
	return nil, errors.New("database is locked")
}

func TestPrintHistoryDisabled(t *testing.T) {
	var out bytes.Buffer
	if err := printHistory(context.Background(), &out, failingJobs{}, 0); err != nil || out.Len() != 0 {
		t.Fatalf("printHistory with n = 0: %v %q", err, out.String())
	}
	if err := printHistory(context.Background(), &out, failingJobs{}, 3); err == nil {
		t.Fatal("store failure not returned")
	}
}

func TestExitMessage(t *testing.T) {
	_, err := parseActions("paint")
	if msg := exitMessage(fmt.Errorf("config: %w", err)); !strings.Contains(msg, "-h for usage") || strings.HasPrefix(msg, "FATAL") {
		t.Errorf("input error message = %q", msg)
	}
	if msg := exitMessage(&mandel.EngineError{Op: "dial", Err: errors.New("refused")}); !strings.HasPrefix(msg, "FATAL: ") {
		t.Errorf("engine error message = %q", msg)
	}
}
