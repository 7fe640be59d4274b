package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{Document: &mockDocumentService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("nil document service returns error", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDocumentService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Search:   &mockSearchService{},
			Document: &mockDocumentService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("ingest port is optional", func(t *testing.T) {
		ports := &Ports{
			Search:   &mockSearchService{},
			Document: &mockDocumentService{},
			Ingest:   &mockIngestService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("empty ports fail", func(t *testing.T) {
		err := (&Ports{}).Validate()
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("search and document are sufficient", func(t *testing.T) {
		ports := &Ports{
			Search:   &mockSearchService{},
			Document: &mockDocumentService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
