package driving

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// IngestService runs corpus ingestion. Runs are mutually exclusive;
// a second concurrent call fails with domain.ErrIngestInProgress.
type IngestService interface {
	// IngestCorpus walks the corpus, normalises and chunks every
	// document, and upserts each one atomically. Per-document
	// failures are recorded in the report, not raised. Cancelling
	// ctx stops the run between per-document upserts; documents
	// already committed stay committed.
	IngestCorpus(ctx context.Context, rootPath string) (*domain.IngestReport, error)

	// Status reports whether an ingestion run is currently active
	// and how many documents it has processed so far.
	Status(ctx context.Context) (*IngestStatus, error)

	// Purge removes the whole corpus from the store.
	Purge(ctx context.Context) error
}

// IngestStatus represents the current state of an ingestion run.
type IngestStatus struct {
	// Running indicates if ingestion is currently in progress.
	Running bool

	// DocumentsProcessed is the count of documents upserted so far.
	DocumentsProcessed int

	// ErrorCount is the number of per-document failures so far.
	ErrorCount int
}
