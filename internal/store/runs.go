package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docpad/docpad-plugintester/internal/harness"
)

// Run is one journal row: a completed harness run.
type Run struct {
	ID         string
	Plugin     string
	Edition    string
	Pass       bool
	Skipped    bool
	Missing    int
	Extra      int
	Mismatches int
	Started    time.Time
	Finished   time.Time
}

// ErrNoRuns is returned by LastRun when the journal has no entry for the
// plugin.
var ErrNoRuns = errors.New("no recorded runs")

// RecordRun journals a harness result and returns the assigned run id.
func (s *Store) RecordRun(ctx context.Context, result *harness.Result) (string, error) {
	id := uuid.NewString()

	var skipped bool
	var missing, extra, mismatches int
	if result.Comparison != nil {
		skipped = result.Comparison.Skipped
		missing = len(result.Comparison.Missing)
		extra = len(result.Comparison.Extra)
		mismatches = len(result.Comparison.Mismatches)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, plugin, edition, pass, skipped, missing, extra, mismatches, started, finished)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		result.Plugin,
		result.Edition,
		result.Pass,
		skipped,
		missing,
		extra,
		mismatches,
		result.Started.UTC().Format(time.RFC3339Nano),
		result.Finished.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// ListRuns returns the journal for one plugin, oldest first.
// An empty plugin name returns every run.
func (s *Store) ListRuns(ctx context.Context, plugin string) ([]Run, error) {
	query := `
		SELECT id, plugin, edition, pass, skipped, missing, extra, mismatches, started, finished
		FROM runs`
	args := []any{}
	if plugin != "" {
		query += ` WHERE plugin = ?`
		args = append(args, plugin)
	}
	query += ` ORDER BY started, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// LastRun returns the most recent run for a plugin, or ErrNoRuns.
func (s *Store) LastRun(ctx context.Context, plugin string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plugin, edition, pass, skipped, missing, extra, mismatches, started, finished
		FROM runs WHERE plugin = ?
		ORDER BY started DESC, id DESC LIMIT 1`, plugin)
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("last run: %w", err)
		}
		return nil, ErrNoRuns
	}
	run, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var started, finished string
	if err := rows.Scan(
		&run.ID, &run.Plugin, &run.Edition, &run.Pass, &run.Skipped,
		&run.Missing, &run.Extra, &run.Mismatches, &started, &finished,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	var err error
	if run.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parse started: %w", err)
	}
	if run.Finished, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished: %w", err)
	}
	return run, nil
}
