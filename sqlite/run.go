package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/wordhunt"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wordhunt.RunService = (*RunService)(nil)

// RunService implements wordhunt.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores the run and its visit trace in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *wordhunt.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	now := time.Now().UTC()
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = now
	}
	run.StartedAt = run.StartedAt.UTC().Truncate(time.Second)
	run.FinishedAt = run.FinishedAt.UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, word, max_pages, found, found_url, visits, reason, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SeedURL, run.Word, run.MaxPages, run.Found, run.FoundURL, run.Visits,
		string(run.Reason), run.StartedAt.Format(time.RFC3339), run.FinishedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, v := range run.Trace {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO visits (run_id, seq, url, status, status_code, links, content_hash, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, v.Seq, v.URL, v.Status.String(), v.StatusCode, v.Links, v.ContentHash, v.Error)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its visit trace.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*wordhunt.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, word, max_pages, found, found_url, visits, reason, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wordhunt.Errorf(wordhunt.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.Trace, err = s.findVisits(ctx, id)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter wordhunt.RunFilter) ([]*wordhunt.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, word, max_pages, found, found_url, visits, reason, started_at, finished_at FROM runs WHERE 1=1")

	if filter.Word != nil {
		query.WriteString(" AND word = ?")
		args = append(args, *filter.Word)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}
	if filter.Found != nil {
		query.WriteString(" AND found = ?")
		args = append(args, *filter.Found)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*wordhunt.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun removes a run. Its visits go with it through the foreign key.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return wordhunt.Errorf(wordhunt.ENOTFOUND, "run not found")
	}

	return nil
}

func (s *RunService) findVisits(ctx context.Context, runID string) ([]wordhunt.RunVisit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, url, status, status_code, links, content_hash, error
		FROM visits
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []wordhunt.RunVisit
	for rows.Next() {
		var v wordhunt.RunVisit
		var status string
		if err := rows.Scan(&v.Seq, &v.URL, &status, &v.StatusCode, &v.Links, &v.ContentHash, &v.Error); err != nil {
			return nil, err
		}
		if v.Status, err = wordhunt.ParseFetchStatus(status); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}

	return visits, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*wordhunt.Run, error) {
	var run wordhunt.Run
	var reason, startedAt, finishedAt string

	if err := row.Scan(&run.ID, &run.SeedURL, &run.Word, &run.MaxPages, &run.Found, &run.FoundURL,
		&run.Visits, &reason, &startedAt, &finishedAt); err != nil {
		return nil, err
	}
	run.Reason = wordhunt.StopReason(reason)

	var err error
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}
