package driving

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// SearchService provides ranked retrieval over the ingested corpus.
type SearchService interface {
	// Search tokenizes the query, scores candidate chunks against
	// the store's inverted index and returns a ranked, paginated
	// result set. Empty query text or a non-positive limit fail with
	// domain.ErrInvalidQuery; a query matching nothing returns an
	// empty, non-error result set.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
