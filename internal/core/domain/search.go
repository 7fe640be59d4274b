package domain

import "time"

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Must be positive.
	Limit int

	// Offset is the number of ranked results to skip.
	Offset int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// DocumentID is the owning document.
	DocumentID string

	// SectionID is the owning section.
	SectionID string

	// Title is the owning document's title.
	Title string

	// HeadingPath is the owning section's breadcrumb.
	HeadingPath []string

	// Snippet is a matched-token-centred excerpt of the chunk text.
	Snippet string

	// Score is the relevance score. Higher is better.
	Score float64
}

// IngestReport summarises an ingestion run. Per-document failures
// are isolated and aggregated here; they never abort the run.
type IngestReport struct {
	// RunID uniquely identifies the ingestion run.
	RunID string

	// DocumentsProcessed is the number of documents upserted.
	DocumentsProcessed int

	// DocumentsFailed is the number of documents skipped due to
	// load, parse or store errors.
	DocumentsFailed int

	// Failures records what went wrong, per source path.
	Failures []IngestFailure

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// IngestRun records one ingestion run for history listing.
type IngestRun struct {
	// ID uniquely identifies the run.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed. Zero while running.
	FinishedAt time.Time

	// DocumentsProcessed is the number of documents upserted.
	DocumentsProcessed int

	// DocumentsFailed is the number of documents skipped.
	DocumentsFailed int
}

// IngestFailure records a single skipped document.
type IngestFailure struct {
	// SourcePath is the file that failed, relative to the corpus root.
	SourcePath string

	// Reason is the error message.
	Reason string
}
