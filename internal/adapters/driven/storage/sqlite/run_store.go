package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
)

// ingestRunStore implements driven.IngestRunStore.
type ingestRunStore struct {
	store *Store
}

var _ driven.IngestRunStore = (*ingestRunStore)(nil)

// RecordRun stores or updates a run, keyed by run ID.
func (s *ingestRunStore) RecordRun(ctx context.Context, run *domain.IngestRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, started_at, finished_at, documents_processed, documents_failed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			documents_processed = excluded.documents_processed,
			documents_failed = excluded.documents_failed
	`, run.ID,
		run.StartedAt.Format(time.RFC3339),
		formatNullableTime(run.FinishedAt),
		run.DocumentsProcessed,
		run.DocumentsFailed)

	if err != nil {
		return fmt.Errorf("recording ingest run: %w", err)
	}
	return nil
}

// ListRuns returns recent runs, most recent first.
func (s *ingestRunStore) ListRuns(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, documents_processed, documents_failed
		FROM ingest_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.IngestRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanIngestRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingest runs: %w", err)
	}

	return runs, nil
}

// PruneRuns removes old runs, keeping the most recent 'keep'.
func (s *ingestRunStore) PruneRuns(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM ingest_runs
		WHERE id NOT IN (
			SELECT id FROM ingest_runs ORDER BY started_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning ingest runs: %w", err)
	}
	return nil
}

// scanIngestRun scans an ingest run from *sql.Rows.
func scanIngestRun(rows *sql.Rows) (*domain.IngestRun, error) {
	var run domain.IngestRun
	var startedAt string
	var finishedAt sql.NullString

	if err := rows.Scan(&run.ID, &startedAt, &finishedAt,
		&run.DocumentsProcessed, &run.DocumentsFailed); err != nil {
		return nil, fmt.Errorf("scanning ingest run: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		run.StartedAt = t
	}
	run.FinishedAt = parseNullableTime(finishedAt)

	return &run, nil
}

// formatNullableTime formats a time to RFC3339 string, or returns nil for zero time.
func formatNullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
