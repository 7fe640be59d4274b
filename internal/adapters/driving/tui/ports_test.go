package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(
		ctx context.Context, query string, opts domain.SearchOptions,
	) ([]domain.SearchResult, error)
}

func (m *MockSearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return nil, nil
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	GetFunc        func(ctx context.Context, documentID string) (*driving.DocumentWithSections, error)
	GetSectionFunc func(ctx context.Context, sectionID string) (*domain.Section, error)
	ListFunc       func(ctx context.Context, category string) ([]domain.Document, error)
	CategoriesFunc func(ctx context.Context) ([]string, error)
}

func (m *MockDocumentService) Get(ctx context.Context, documentID string) (*driving.DocumentWithSections, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, documentID)
	}
	return nil, nil
}

func (m *MockDocumentService) GetSection(ctx context.Context, sectionID string) (*domain.Section, error) {
	if m.GetSectionFunc != nil {
		return m.GetSectionFunc(ctx, sectionID)
	}
	return nil, nil
}

func (m *MockDocumentService) List(ctx context.Context, category string) ([]domain.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, category)
	}
	return nil, nil
}

func (m *MockDocumentService) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

var (
	_ driving.SearchService   = (*MockSearchService)(nil)
	_ driving.DocumentService = (*MockDocumentService)(nil)
)

func TestNewPorts(t *testing.T) {
	search := &MockSearchService{}
	document := &MockDocumentService{}

	ports := NewPorts(search, document)

	require.NotNil(t, ports)
	assert.Equal(t, search, ports.Search)
	assert.Equal(t, document, ports.Document)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:    "valid ports",
			ports:   NewPorts(&MockSearchService{}, &MockDocumentService{}),
			wantErr: nil,
		},
		{
			name:    "missing search",
			ports:   &Ports{Document: &MockDocumentService{}},
			wantErr: ErrMissingSearchService,
		},
		{
			name:    "missing document",
			ports:   &Ports{Search: &MockSearchService{}},
			wantErr: ErrMissingDocumentService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
