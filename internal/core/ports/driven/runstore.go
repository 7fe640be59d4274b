package driven

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// IngestRunStore persists ingestion run history.
type IngestRunStore interface {
	// RecordRun stores or updates a run, keyed by run ID.
	RecordRun(ctx context.Context, run *domain.IngestRun) error

	// ListRuns returns recent runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.IngestRun, error)

	// PruneRuns removes old runs, keeping the most recent 'keep'.
	PruneRuns(ctx context.Context, keep int) error
}
