package mcp

import (
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides ranked retrieval over the corpus.
	Search driving.SearchService

	// Document provides document and section read access.
	Document driving.DocumentService

	// Ingest triggers corpus re-ingestion. Optional: when nil, the
	// ingest tool is not exposed.
	Ingest driving.IngestService

	// DefaultLimit caps search results when the caller does not pass
	// a limit. Optional: when <= 0, DefaultSearchLimit applies.
	DefaultLimit int
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
