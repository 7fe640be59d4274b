package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
	"github.com/docdex/docdex-cli/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.IngestService = (*IngestOrchestrator)(nil)

// IngestOrchestrator coordinates corpus ingestion: it drives the
// loader, normaliser and chunker, and upserts each document
// atomically into the store. Runs are mutually exclusive.
type IngestOrchestrator struct {
	loaderFactory driven.CorpusLoaderFactory
	normaliser    driven.Normaliser
	chunker       driven.SectionChunker
	docStore      driven.DocumentStore
	runStore      driven.IngestRunStore // optional; nil disables run history

	// runMu serialises ingestion runs. TryLock gives the second
	// caller an immediate ErrIngestInProgress instead of queueing.
	runMu sync.Mutex

	// Status tracking
	statusMu sync.RWMutex
	status   driving.IngestStatus
}

// NewIngestOrchestrator creates a new ingest orchestrator.
// runStore is optional; if nil, run history is not recorded.
func NewIngestOrchestrator(
	loaderFactory driven.CorpusLoaderFactory,
	normaliser driven.Normaliser,
	chunker driven.SectionChunker,
	docStore driven.DocumentStore,
	runStore driven.IngestRunStore,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		loaderFactory: loaderFactory,
		normaliser:    normaliser,
		chunker:       chunker,
		docStore:      docStore,
		runStore:      runStore,
	}
}

// IngestCorpus walks the corpus rooted at rootPath and upserts every
// document. Per-document failures are isolated: they are recorded in
// the report and never abort the run. Cancelling ctx stops the run
// between documents; documents already committed stay committed.
func (o *IngestOrchestrator) IngestCorpus(ctx context.Context, rootPath string) (*domain.IngestReport, error) {
	if !o.runMu.TryLock() {
		return nil, domain.ErrIngestInProgress
	}
	defer o.runMu.Unlock()

	loader, err := o.loaderFactory.Create(rootPath)
	if err != nil {
		return nil, fmt.Errorf("create loader: %w", err)
	}
	if err := loader.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate corpus: %w", err)
	}

	report := &domain.IngestReport{RunID: uuid.NewString()}
	started := time.Now()

	o.setStatus(driving.IngestStatus{Running: true})
	defer o.setStatus(driving.IngestStatus{Running: false})

	o.recordRun(ctx, report, started, time.Time{})

	logger.Info("Starting ingestion of %s (run %s)", rootPath, report.RunID)

	docsCh, errsCh := loader.Load(ctx)

	if err := o.processDocuments(ctx, docsCh, errsCh, report); err != nil {
		o.recordRun(ctx, report, started, time.Now())
		return nil, err
	}

	// Files the loader skipped count as failures in the report.
	for _, skipped := range loader.Skipped() {
		report.DocumentsFailed++
		report.Failures = append(report.Failures, domain.IngestFailure{
			SourcePath: skipped.SourcePath,
			Reason:     skipped.Reason,
		})
	}

	report.Duration = time.Since(started)
	o.recordRun(ctx, report, started, time.Now())

	logger.Info("Ingestion complete: %d documents, %d failures in %s",
		report.DocumentsProcessed, report.DocumentsFailed, report.Duration.Round(time.Millisecond))
	return report, nil
}

// Status reports whether an ingestion run is active.
func (o *IngestOrchestrator) Status(_ context.Context) (*driving.IngestStatus, error) {
	o.statusMu.RLock()
	defer o.statusMu.RUnlock()

	status := o.status
	return &status, nil
}

// Purge removes the whole corpus from the store. Refused while an
// ingestion run is active.
func (o *IngestOrchestrator) Purge(ctx context.Context) error {
	if !o.runMu.TryLock() {
		return domain.ErrIngestInProgress
	}
	defer o.runMu.Unlock()

	if err := o.docStore.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge store: %w", err)
	}
	logger.Info("Purged all ingested documents")
	return nil
}

// processDocuments drains the loader channels, processing one
// document at a time.
func (o *IngestOrchestrator) processDocuments(
	ctx context.Context,
	docsCh <-chan domain.RawDocument,
	errsCh <-chan error,
	report *domain.IngestReport,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil {
				return fmt.Errorf("loader error: %w", err)
			}

		case rawDoc, ok := <-docsCh:
			if !ok {
				return nil // Done - channel closed
			}

			logger.Debug("Processing: %s", rawDoc.SourcePath)
			if err := o.processOneDocument(ctx, &rawDoc); err != nil {
				report.DocumentsFailed++
				report.Failures = append(report.Failures, domain.IngestFailure{
					SourcePath: rawDoc.SourcePath,
					Reason:     err.Error(),
				})
				o.bumpStatus(0, 1)
				logger.Debug("Failed to process %s: %v", rawDoc.SourcePath, err)
				continue
			}
			report.DocumentsProcessed++
			o.bumpStatus(1, 0)
		}
	}
}

// processOneDocument runs the normalise, chunk and upsert steps for
// a single raw document.
func (o *IngestOrchestrator) processOneDocument(ctx context.Context, raw *domain.RawDocument) error {
	// 1. NORMALISE (produces Document with ordered Sections)
	result, err := o.normaliser.Normalise(ctx, raw)
	if err != nil {
		return fmt.Errorf("normalise: %w", err)
	}

	// 2. CHUNK each section
	var chunks []domain.Chunk
	for i := range result.Sections {
		sectionChunks, err := o.chunker.Chunk(ctx, &result.Sections[i])
		if err != nil {
			return fmt.Errorf("chunk section %s: %w", result.Sections[i].ID, err)
		}
		chunks = append(chunks, sectionChunks...)
	}

	// 3. UPSERT atomically
	result.Document.IngestedAt = time.Now().UTC()
	if err := o.docStore.UpsertDocument(ctx, &result.Document, result.Sections, chunks); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	return nil
}

// recordRun persists run history when a run store is configured.
func (o *IngestOrchestrator) recordRun(
	ctx context.Context, report *domain.IngestReport, started, finished time.Time,
) {
	if o.runStore == nil {
		return
	}

	run := &domain.IngestRun{
		ID:                 report.RunID,
		StartedAt:          started.UTC(),
		DocumentsProcessed: report.DocumentsProcessed,
		DocumentsFailed:    report.DocumentsFailed,
	}
	if !finished.IsZero() {
		run.FinishedAt = finished.UTC()
	}

	if err := o.runStore.RecordRun(ctx, run); err != nil {
		logger.Debug("Failed to record run %s: %v", run.ID, err)
	}
}

// setStatus replaces the tracked status.
func (o *IngestOrchestrator) setStatus(status driving.IngestStatus) {
	o.statusMu.Lock()
	defer o.statusMu.Unlock()
	o.status = status
}

// bumpStatus increments the processed and error counters.
func (o *IngestOrchestrator) bumpStatus(processed, errored int) {
	o.statusMu.Lock()
	defer o.statusMu.Unlock()
	o.status.DocumentsProcessed += processed
	o.status.ErrorCount += errored
}
