package driving

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// DocumentService provides read access to ingested documents.
type DocumentService interface {
	// Get retrieves a document by ID with its ordered sections.
	Get(ctx context.Context, documentID string) (*DocumentWithSections, error)

	// GetSection retrieves a single section by ID.
	GetSection(ctx context.Context, sectionID string) (*domain.Section, error)

	// List returns documents sorted by title, optionally filtered
	// by category.
	List(ctx context.Context, category string) ([]domain.Document, error)

	// Categories returns the distinct document categories, sorted.
	Categories(ctx context.Context) ([]string, error)
}

// DocumentWithSections is a document together with its sections in
// reading order.
type DocumentWithSections struct {
	Document domain.Document
	Sections []domain.Section
}
