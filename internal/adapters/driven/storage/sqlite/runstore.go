package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

// Ensure runStore implements the interface.
var _ driven.RunStore = (*runStore)(nil)

type runStore struct {
	store *Store
}

const runColumns = `id, channel_id, source, status, videos_fetched, videos_indexed,
	chapters_indexed, failures, error, started_at, ended_at`

// Save creates or updates a run based on ID.
func (s *runStore) Save(ctx context.Context, run *domain.IngestRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			videos_fetched = excluded.videos_fetched,
			videos_indexed = excluded.videos_indexed,
			chapters_indexed = excluded.chapters_indexed,
			failures = excluded.failures,
			error = excluded.error,
			ended_at = excluded.ended_at
	`, run.ID, run.ChannelID, string(run.Source), string(run.Status),
		run.VideosFetched, run.VideosIndexed, run.ChaptersIndexed, run.Failures,
		nullString(run.Error), formatTime(run.StartedAt), formatTime(run.EndedAt))
	if err != nil {
		return fmt.Errorf("saving ingest run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.IngestRun, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM ingest_runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting ingest run: %w", err)
	}
	return run, nil
}

// List returns runs newest first.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	query := "SELECT " + runColumns + " FROM ingest_runs ORDER BY started_at DESC, id ASC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.IngestRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ingest run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingest runs: %w", err)
	}
	return runs, nil
}

// Prune deletes all but the newest keep runs.
func (s *runStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return nil
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM ingest_runs WHERE id NOT IN (
			SELECT id FROM ingest_runs ORDER BY started_at DESC, id ASC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning ingest runs: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.IngestRun, error) {
	var (
		run             domain.IngestRun
		source, status  string
		runErr, endedAt sql.NullString
		startedAt       sql.NullString
	)
	err := row.Scan(&run.ID, &run.ChannelID, &source, &status,
		&run.VideosFetched, &run.VideosIndexed, &run.ChaptersIndexed, &run.Failures,
		&runErr, &startedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	run.Source = domain.RunSource(source)
	run.Status = domain.RunStatus(status)
	if runErr.Valid {
		run.Error = runErr.String
	}
	run.StartedAt = parseTime(startedAt)
	run.EndedAt = parseTime(endedAt)
	return &run, nil
}
