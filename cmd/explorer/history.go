package main

import (
	"context"
	"fmt"
	"io"

	mandel "github.com/marben/mandel_explorer"
)

type recentJobs interface {
	Recent(ctx context.Context, n int) ([]mandel.JobRecord, error)
}

// printHistory lists the last n journaled jobs, newest first.
func printHistory(ctx context.Context, w io.Writer, store recentJobs, n int) error {
	if n == 0 {
		return nil
	}
	recs, err := store.Recent(ctx, n)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if _, err := fmt.Fprintln(w, formatRecord(rec)); err != nil {
			return err
		}
	}
	return nil
}

func formatRecord(rec mandel.JobRecord) string {
	line := fmt.Sprintf("%s %-12s %s %s limit %d",
		rec.FinishedAt.Format("2006-01-02 15:04:05"), rec.Kind, rec.Params.Size, rec.Params.Region, rec.Params.IterationLimit)
	if rec.Err != "" {
		return line + " failed: " + rec.Err
	}
	return fmt.Sprintf("%s %.1fms", line, rec.Stats.Millis())
}
