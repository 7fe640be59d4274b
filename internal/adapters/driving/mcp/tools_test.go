package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{
				{
					ChunkID:     "components/button#0-button@0",
					DocumentID:  "components/button",
					SectionID:   "components/button#0-button",
					Title:       "Button",
					HeadingPath: []string{"Button"},
					Snippet:     "A clickable button component.",
					Score:       2.4,
				},
			},
		}

		server := newTestServer(t, &Ports{Search: mockSearch, Document: &mockDocumentService{}})

		input := SearchInput{Query: "button", Limit: 10}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "components/button", output.Results[0].DocumentID)
		assert.Equal(t, "Button", output.Results[0].Title)
		assert.Equal(t, []string{"Button"}, output.Results[0].HeadingPath)
		assert.Equal(t, "A clickable button component.", output.Results[0].Snippet)
		assert.Equal(t, 2.4, output.Results[0].Score)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, &Ports{Search: mockSearch, Document: &mockDocumentService{}})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "button"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, DefaultSearchLimit, mockSearch.lastOpt.Limit)
	})

	t.Run("configured default limit wins over built-in", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, &Ports{
			Search:       mockSearch,
			Document:     &mockDocumentService{},
			DefaultLimit: 25,
		})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "button"})

		require.NoError(t, err)
		assert.Equal(t, 25, mockSearch.lastOpt.Limit)
	})

	t.Run("explicit limit wins over configured default", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, &Ports{
			Search:       mockSearch,
			Document:     &mockDocumentService{},
			DefaultLimit: 25,
		})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "button", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 5, mockSearch.lastOpt.Limit)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("search failed")}
		server := newTestServer(t, &Ports{Search: mockSearch, Document: &mockDocumentService{}})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "button"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("returns document with sections", func(t *testing.T) {
		mockDoc := &mockDocumentService{
			document: &driving.DocumentWithSections{
				Document: domain.Document{
					ID:          "components/button",
					Title:       "Button",
					Category:    "Components",
					Description: "A clickable button.",
				},
				Sections: []domain.Section{
					{ID: "components/button#0-button", HeadingPath: []string{"Button"}, Content: "Body."},
				},
			},
		}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "components/button"})

		require.NoError(t, err)
		assert.Equal(t, "Button", output.Title)
		assert.Equal(t, "Components", output.Category)
		require.Len(t, output.Sections, 1)
		assert.Equal(t, []string{"Button"}, output.Sections[0].HeadingPath)
	})

	t.Run("propagates not found", func(t *testing.T) {
		mockDoc := &mockDocumentService{err: domain.ErrNotFound}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

		_, _, err := server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "missing"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleGetSection(t *testing.T) {
	ctx := context.Background()

	t.Run("returns section", func(t *testing.T) {
		mockDoc := &mockDocumentService{
			section: &domain.Section{
				ID:          "components/button#1-props",
				DocumentID:  "components/button",
				HeadingPath: []string{"Button", "Props"},
				Content:     "The variant prop controls the visual style.",
			},
		}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

		_, output, err := server.handleGetSection(ctx, nil, GetSectionInput{SectionID: "components/button#1-props"})

		require.NoError(t, err)
		assert.Equal(t, "components/button#1-props", output.ID)
		assert.Equal(t, "components/button", output.DocumentID)
		assert.Equal(t, []string{"Button", "Props"}, output.HeadingPath)
		assert.Contains(t, output.Content, "variant prop")
	})

	t.Run("propagates not found", func(t *testing.T) {
		mockDoc := &mockDocumentService{err: domain.ErrNotFound}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

		_, _, err := server.handleGetSection(ctx, nil, GetSectionInput{SectionID: "missing#0-root"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleListDocuments(t *testing.T) {
	ctx := context.Background()

	mockDoc := &mockDocumentService{
		documents: []domain.Document{
			{ID: "components/alert", Title: "Alert", Category: "Components"},
			{ID: "components/button", Title: "Button", Category: "Components"},
		},
	}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

	_, output, err := server.handleListDocuments(ctx, nil, ListDocumentsInput{Category: "components"})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "components/alert", output.Documents[0].ID)
}

func TestServer_handleListCategories(t *testing.T) {
	ctx := context.Background()

	mockDoc := &mockDocumentService{categories: []string{"Components", "Guides"}}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

	_, output, err := server.handleListCategories(ctx, nil, ListCategoriesInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Components", "Guides"}, output.Categories)
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report", func(t *testing.T) {
		mockIngest := &mockIngestService{
			report: &domain.IngestReport{RunID: "run-1", DocumentsProcessed: 4, DocumentsFailed: 1},
		}
		server := newTestServer(t, &Ports{
			Search:   &mockSearchService{},
			Document: &mockDocumentService{},
			Ingest:   mockIngest,
		})

		_, output, err := server.handleIngest(ctx, nil, IngestInput{Path: "/srv/docs"})

		require.NoError(t, err)
		assert.Equal(t, "run-1", output.RunID)
		assert.Equal(t, 4, output.DocumentsProcessed)
		assert.Equal(t, 1, output.DocumentsFailed)
	})

	t.Run("propagates in-progress error", func(t *testing.T) {
		mockIngest := &mockIngestService{err: domain.ErrIngestInProgress}
		server := newTestServer(t, &Ports{
			Search:   &mockSearchService{},
			Document: &mockDocumentService{},
			Ingest:   mockIngest,
		})

		_, _, err := server.handleIngest(ctx, nil, IngestInput{Path: "/srv/docs"})

		assert.ErrorIs(t, err, domain.ErrIngestInProgress)
	})
}
