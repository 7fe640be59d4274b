package services

import (
	"context"
	"fmt"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService provides read access to ingested documents.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// Get retrieves a document by ID with its ordered sections.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*driving.DocumentWithSections, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document ID is required", domain.ErrInvalidInput)
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	sections, err := s.docStore.GetSections(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get sections: %w", err)
	}

	return &driving.DocumentWithSections{
		Document: *doc,
		Sections: sections,
	}, nil
}

// GetSection retrieves a single section by ID.
func (s *DocumentService) GetSection(ctx context.Context, sectionID string) (*domain.Section, error) {
	if sectionID == "" {
		return nil, fmt.Errorf("%w: section ID is required", domain.ErrInvalidInput)
	}

	section, err := s.docStore.GetSection(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("get section: %w", err)
	}
	return section, nil
}

// List returns documents sorted by title, optionally filtered by
// category.
func (s *DocumentService) List(ctx context.Context, category string) ([]domain.Document, error) {
	docs, err := s.docStore.ListDocuments(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Categories returns the distinct document categories, sorted.
func (s *DocumentService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.docStore.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
