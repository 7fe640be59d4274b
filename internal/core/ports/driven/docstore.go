package driven

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// DocumentStore persists documents, sections and chunks, and
// maintains the token inverted index over chunks.
//
// Upserts replace a document's whole subtree atomically relative to
// readers: a concurrent search observes either all-old or all-new
// chunks for that document, never a mix.
type DocumentStore interface {
	// UpsertDocument atomically replaces the document and all its
	// sections and chunks, keyed by doc.ID. It validates referential
	// integrity (every chunk's SectionID must be present in sections,
	// every section's DocumentID must be doc.ID) and rejects
	// malformed writes with domain.ErrIntegrity.
	UpsertDocument(ctx context.Context, doc *domain.Document, sections []domain.Section, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetSections retrieves a document's sections in reading order.
	GetSections(ctx context.Context, documentID string) ([]domain.Section, error)

	// GetSection retrieves a section by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetSection(ctx context.Context, id string) (*domain.Section, error)

	// GetChunk retrieves a chunk by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ChunkIDsByToken returns the IDs of all chunks whose text
	// contains the token. This is the inverted index read path.
	ChunkIDsByToken(ctx context.Context, token string) ([]string, error)

	// TokenDocFrequency returns, for each given token, the number of
	// chunks containing it. Tokens absent from the corpus map to 0.
	TokenDocFrequency(ctx context.Context, tokens []string) (map[string]int, error)

	// ChunkCount returns the total number of chunks in the store.
	ChunkCount(ctx context.Context) (int, error)

	// ListDocuments returns all documents, name-sorted, optionally
	// filtered by category (case-insensitive substring match).
	ListDocuments(ctx context.Context, category string) ([]domain.Document, error)

	// ListCategories returns the distinct document categories, sorted.
	ListCategories(ctx context.Context) ([]string, error)

	// DeleteDocument removes a document and its subtree.
	DeleteDocument(ctx context.Context, id string) error

	// PurgeAll removes every document, section, chunk and index entry.
	PurgeAll(ctx context.Context) error
}
