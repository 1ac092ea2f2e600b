// Package journal keeps a sqlite log of finished and failed render jobs.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mandel "github.com/marben/mandel_explorer"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    id                  TEXT PRIMARY KEY,
    kind                TEXT NOT NULL,
    min_x               TEXT NOT NULL,
    max_x               TEXT NOT NULL,
    min_y               TEXT NOT NULL,
    max_y               TEXT NOT NULL,
    width               INTEGER NOT NULL,
    height              INTEGER NOT NULL,
    iteration_limit     INTEGER NOT NULL,
    precision_digits    INTEGER NOT NULL,
    arbitrary_precision INTEGER NOT NULL,
    sample_size         INTEGER NOT NULL,
    variant             TEXT NOT NULL,
    colouring           TEXT NOT NULL,
    min_iterations      INTEGER NOT NULL,
    mean_iterations     REAL NOT NULL,
    max_iterations      INTEGER NOT NULL,
    convergent_points   INTEGER NOT NULL,
    render_ns           INTEGER NOT NULL,
    submitted_at        TEXT NOT NULL,
    finished_at         TEXT NOT NULL,
    error               TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_jobs_finished ON jobs(finished_at);
`

// timeLayout has a fixed width so that timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the jobs table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	// one connection, so that ":memory:" is a single database
	db.SetMaxOpenConns(1)
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New creates the schema on db and returns a Store.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one job. Recording the same job twice keeps the latest row.
func (s *Store) Record(ctx context.Context, rec mandel.JobRecord) error {
	p := rec.Params
	if err := p.Region.Validate(); err != nil {
		return fmt.Errorf("record %s: %w", rec.ID, err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO jobs (
		   id, kind, min_x, max_x, min_y, max_y, width, height,
		   iteration_limit, precision_digits, arbitrary_precision, sample_size, variant, colouring,
		   min_iterations, mean_iterations, max_iterations, convergent_points, render_ns,
		   submitted_at, finished_at, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Kind,
		p.Region.MinX.String(), p.Region.MaxX.String(), p.Region.MinY.String(), p.Region.MaxY.String(),
		p.Size.Width, p.Size.Height,
		p.IterationLimit, p.PrecisionDigits, p.ArbitraryPrecision, p.SampleSize,
		p.Variant.String(), p.Colouring.String(),
		rec.Stats.MinIterations, rec.Stats.MeanIterations, rec.Stats.MaxIterations,
		rec.Stats.ConvergentPoints, int64(rec.Stats.RenderTime),
		rec.SubmittedAt.UTC().Format(timeLayout), rec.FinishedAt.UTC().Format(timeLayout),
		rec.Err,
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns up to n jobs, most recently finished first.
func (s *Store) Recent(ctx context.Context, n int) ([]mandel.JobRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, min_x, max_x, min_y, max_y, width, height,
		        iteration_limit, precision_digits, arbitrary_precision, sample_size, variant, colouring,
		        min_iterations, mean_iterations, max_iterations, convergent_points, render_ns,
		        submitted_at, finished_at, error
		 FROM jobs
		 ORDER BY finished_at DESC, rowid DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent jobs: %w", err)
	}
	defer rows.Close()

	var recs []mandel.JobRecord
	for rows.Next() {
		var (
			rec                     mandel.JobRecord
			minX, maxX, minY, maxY  string
			variant, colouring      string
			renderNs                int64
			submittedAt, finishedAt string
		)
		p := &rec.Params
		if err := rows.Scan(&rec.ID, &rec.Kind, &minX, &maxX, &minY, &maxY, &p.Size.Width, &p.Size.Height,
			&p.IterationLimit, &p.PrecisionDigits, &p.ArbitraryPrecision, &p.SampleSize, &variant, &colouring,
			&rec.Stats.MinIterations, &rec.Stats.MeanIterations, &rec.Stats.MaxIterations,
			&rec.Stats.ConvergentPoints, &renderNs, &submittedAt, &finishedAt, &rec.Err); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		if p.Region, err = mandel.ParseRegion(minX, maxX, minY, maxY); err != nil {
			return nil, fmt.Errorf("job %s: %w", rec.ID, err)
		}
		p.Variant = mandel.ParseVariant(variant)
		p.Colouring = mandel.ParseColouringMethod(colouring)
		rec.Stats.RenderTime = time.Duration(renderNs)
		rec.SubmittedAt, _ = time.Parse(timeLayout, submittedAt)
		rec.FinishedAt, _ = time.Parse(timeLayout, finishedAt)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of recorded jobs and how many of them failed.
func (s *Store) Count(ctx context.Context) (total, failed int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0) FROM jobs`,
	).Scan(&total, &failed)
	if err != nil {
		return 0, 0, fmt.Errorf("count jobs: %w", err)
	}
	return total, failed, nil
}
