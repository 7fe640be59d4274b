package mcp

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	lastOpt domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpt = opts
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents  []domain.Document
	document   *driving.DocumentWithSections
	section    *domain.Section
	categories []string
	err        error
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*driving.DocumentWithSections, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetSection(_ context.Context, _ string) (*domain.Section, error) {
	return m.section, m.err
}

func (m *mockDocumentService) List(_ context.Context, _ string) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Categories(_ context.Context) ([]string, error) {
	return m.categories, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report *domain.IngestReport
	status *driving.IngestStatus
	err    error
}

func (m *mockIngestService) IngestCorpus(_ context.Context, _ string) (*domain.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestService) Status(_ context.Context) (*driving.IngestStatus, error) {
	return m.status, m.err
}

func (m *mockIngestService) Purge(_ context.Context) error {
	return m.err
}
