package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidQuery indicates a malformed search request (empty
	// query text or a non-positive limit). Surfaced to the caller;
	// retrying without changing the request is pointless.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrCorpusUnreadable indicates the corpus root does not exist
	// or cannot be read. Fatal to an ingestion run.
	ErrCorpusUnreadable = errors.New("corpus unreadable")

	// ErrMalformedDocument indicates a single document could not be
	// parsed. The document is skipped and recorded; the run continues.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrIntegrity indicates a write with dangling references
	// (a chunk pointing at a section the write does not contain).
	// The store rejects such writes rather than dropping children.
	ErrIntegrity = errors.New("referential integrity violation")

	// ErrIngestInProgress indicates an ingestion run is already
	// running. Runs are mutually exclusive.
	ErrIngestInProgress = errors.New("ingestion already in progress")
)
