package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "docdex://documents/components/button",
			expected: "components/button",
		},
		{
			name:     "single segment ID",
			uri:      "docdex://documents/readme",
			expected: "readme",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/components/button",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractDocumentID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns document list as JSON", func(t *testing.T) {
		mockDoc := &mockDocumentService{
			documents: []domain.Document{
				{ID: "components/button", Title: "Button", Category: "Components"},
			},
		}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("docdex://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "components/button")
	})

	t.Run("propagates list failure", func(t *testing.T) {
		mockDoc := &mockDocumentService{err: errors.New("store gone")}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

		_, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("docdex://documents"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "store gone")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns raw markdown", func(t *testing.T) {
		mockDoc := &mockDocumentService{
			document: &driving.DocumentWithSections{
				Document: domain.Document{
					ID:         "components/button",
					Title:      "Button",
					RawContent: "# Button\n\nA clickable button component.\n",
				},
			},
		}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

		result, err := server.handleDocumentContentResource(
			ctx, makeReadResourceRequest("docdex://documents/components/button"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "# Button")
	})

	t.Run("unknown scheme is not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: &mockDocumentService{}})

		_, err := server.handleDocumentContentResource(
			ctx, makeReadResourceRequest("file://documents/whatever"))

		require.Error(t, err)
	})

	t.Run("propagates not found", func(t *testing.T) {
		mockDoc := &mockDocumentService{err: domain.ErrNotFound}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Document: mockDoc})

		_, err := server.handleDocumentContentResource(
			ctx, makeReadResourceRequest("docdex://documents/missing"))

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
