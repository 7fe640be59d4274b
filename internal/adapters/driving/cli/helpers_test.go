package cli

import (
	"context"
	"time"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
)

// mockSearchService implements driving.SearchService for command tests.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	lastOpt domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context, _ string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpt = opts
	return m.results, m.err
}

// mockDocumentService implements driving.DocumentService for command tests.
type mockDocumentService struct {
	document   *driving.DocumentWithSections
	section    *domain.Section
	documents  []domain.Document
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

// mockIngestService implements driving.IngestService for command tests.
type mockIngestService struct {
	report      *domain.IngestReport
	status      *driving.IngestStatus
	err         error
	ingestedAt  []string
	purgeCalled bool
}

func (m *mockIngestService) IngestCorpus(_ context.Context, rootPath string) (*domain.IngestReport, error) {
	m.ingestedAt = append(m.ingestedAt, rootPath)
	return m.report, m.err
}

func (m *mockIngestService) Status(_ context.Context) (*driving.IngestStatus, error) {
	return m.status, m.err
}

func (m *mockIngestService) Purge(_ context.Context) error {
	m.purgeCalled = true
	return m.err
}

// mockConfigStore implements driven.ConfigStore backed by a map.
type mockConfigStore struct {
	data map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.data[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.data[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.data[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	if v, ok := m.data[key].([]string); ok {
		return v
	}
	return nil
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

// setupTestServices installs mock services and returns a cleanup
// that restores the previous ones.
func setupTestServices() func() {
	oldSearch := searchService
	oldDocument := documentService
	oldIngest := ingestService
	oldConfig := configStore

	searchService = &mockSearchService{
		results: []domain.SearchResult{
			{
				ChunkID:     "components/button#1-props@0",
				DocumentID:  "components/button",
				SectionID:   "components/button#1-props",
				Title:       "Button",
				HeadingPath: []string{"Button", "Props"},
				Snippet:     "The variant prop controls the visual style.",
				Score:       3.2,
			},
		},
	}
	documentService = &mockDocumentService{
		document: &driving.DocumentWithSections{
			Document: domain.Document{
				ID:         "components/button",
				SourcePath: "components/button.md",
				Title:      "Button",
				Category:   "Components",
				RawContent: "# Button\n\nA clickable control.",
				IngestedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			},
			Sections: []domain.Section{
				{ID: "components/button#0-button", DocumentID: "components/button", HeadingPath: []string{"Button"}, Order: 0},
			},
		},
		documents: []domain.Document{
			{ID: "components/button", Title: "Button", Category: "Components"},
		},
		categories: []string{"Components", "Guides"},
	}
	ingestService = &mockIngestService{
		report: &domain.IngestReport{
			RunID:              "run-1",
			DocumentsProcessed: 3,
			Duration:           250 * time.Millisecond,
		},
		status: &driving.IngestStatus{Running: false, DocumentsProcessed: 3},
	}
	configStore = newMockConfigStore()

	return func() {
		searchService = oldSearch
		documentService = oldDocument
		ingestService = oldIngest
		configStore = oldConfig
	}
}
