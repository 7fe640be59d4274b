package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
	"github.com/docdex/docdex-cli/internal/logger"
)

// Default ranking parameters. Tunable through the config store.
const (
	// DefaultHeadingBoost scales the idf of each query token found
	// in the owning section's heading path. Kept below 1 so a
	// heading hit never outweighs an additional matched body token.
	DefaultHeadingBoost = 0.5

	// DefaultPositionWeight scales the early-section boost
	// 1/(1+order), so content near the top of a document ranks
	// slightly higher on otherwise equal scores.
	DefaultPositionWeight = 0.1

	// DefaultSnippetLength is the target snippet size in bytes.
	DefaultSnippetLength = 200
)

// Ensure SearchEngine implements the interface.
var _ driving.SearchService = (*SearchEngine)(nil)

// SearchEngine ranks chunks against a query using TF-IDF over the
// store's inverted index. Query tokens combine with OR semantics: a
// chunk matching any token is a candidate, and matching more tokens
// scores higher.
type SearchEngine struct {
	docStore       driven.DocumentStore
	headingBoost   float64
	positionWeight float64
	snippetLength  int
}

// SearchOption configures the search engine.
type SearchOption func(*SearchEngine)

// WithHeadingBoost sets the per-token heading match boost.
func WithHeadingBoost(boost float64) SearchOption {
	return func(e *SearchEngine) {
		if boost >= 0 {
			e.headingBoost = boost
		}
	}
}

// WithPositionWeight sets the early-section boost weight.
func WithPositionWeight(weight float64) SearchOption {
	return func(e *SearchEngine) {
		if weight >= 0 {
			e.positionWeight = weight
		}
	}
}

// WithSnippetLength sets the target snippet size in bytes.
func WithSnippetLength(length int) SearchOption {
	return func(e *SearchEngine) {
		if length > 0 {
			e.snippetLength = length
		}
	}
}

// NewSearchEngine creates a new search engine over the given store.
func NewSearchEngine(docStore driven.DocumentStore, opts ...SearchOption) *SearchEngine {
	e := &SearchEngine{
		docStore:       docStore,
		headingBoost:   DefaultHeadingBoost,
		positionWeight: DefaultPositionWeight,
		snippetLength:  DefaultSnippetLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search tokenizes the query, scores candidate chunks and returns a
// ranked, paginated result set. A query matching nothing returns an
// empty, non-error result set.
func (e *SearchEngine) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	tokens := domain.Tokenize(query)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: query has no searchable tokens", domain.ErrInvalidQuery)
	}
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidQuery)
	}
	if opts.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidQuery)
	}

	queryTokens := uniqueTokens(tokens)

	totalChunks, err := e.docStore.ChunkCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	if totalChunks == 0 {
		return []domain.SearchResult{}, nil
	}

	docFreq, err := e.docStore.TokenDocFrequency(ctx, queryTokens)
	if err != nil {
		return nil, fmt.Errorf("token frequencies: %w", err)
	}

	// OR semantics: the candidate set is the union of each token's
	// posting list.
	candidates := make(map[string]struct{})
	for _, token := range queryTokens {
		ids, err := e.docStore.ChunkIDsByToken(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("chunks for token %q: %w", token, err)
		}
		for _, id := range ids {
			candidates[id] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		return []domain.SearchResult{}, nil
	}

	logger.Debug("Query %q: %d candidate chunks", query, len(candidates))

	scored, err := e.scoreCandidates(ctx, queryTokens, docFreq, totalChunks, candidates)
	if err != nil {
		return nil, err
	}

	// Rank by score descending; ties resolve by document, section
	// order, then chunk index, so results are stable across runs.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].result.Score != scored[j].result.Score {
			return scored[i].result.Score > scored[j].result.Score
		}
		if scored[i].result.DocumentID != scored[j].result.DocumentID {
			return scored[i].result.DocumentID < scored[j].result.DocumentID
		}
		if scored[i].order != scored[j].order {
			return scored[i].order < scored[j].order
		}
		return scored[i].index < scored[j].index
	})

	if opts.Offset >= len(scored) {
		return []domain.SearchResult{}, nil
	}
	end := opts.Offset + opts.Limit
	if end > len(scored) {
		end = len(scored)
	}

	results := make([]domain.SearchResult, 0, end-opts.Offset)
	for _, s := range scored[opts.Offset:end] {
		results = append(results, s.result)
	}
	return results, nil
}

// scoredChunk carries tie-break keys alongside the result.
type scoredChunk struct {
	result domain.SearchResult
	order  int
	index  int
}

// scoreCandidates computes TF-IDF scores plus heading and position
// boosts for every candidate chunk.
func (e *SearchEngine) scoreCandidates(
	ctx context.Context,
	queryTokens []string,
	docFreq map[string]int,
	totalChunks int,
	candidates map[string]struct{},
) ([]scoredChunk, error) {
	// Per-query caches: sections and documents are shared by many
	// chunks, fetch each at most once.
	sectionCache := make(map[string]*domain.Section)
	titleCache := make(map[string]string)

	scored := make([]scoredChunk, 0, len(candidates))
	for chunkID := range candidates {
		chunk, err := e.docStore.GetChunk(ctx, chunkID)
		if err != nil {
			return nil, fmt.Errorf("get chunk %s: %w", chunkID, err)
		}

		section, ok := sectionCache[chunk.SectionID]
		if !ok {
			section, err = e.docStore.GetSection(ctx, chunk.SectionID)
			if err != nil {
				return nil, fmt.Errorf("get section %s: %w", chunk.SectionID, err)
			}
			sectionCache[chunk.SectionID] = section
		}

		title, ok := titleCache[chunk.DocumentID]
		if !ok {
			doc, err := e.docStore.GetDocument(ctx, chunk.DocumentID)
			if err != nil {
				return nil, fmt.Errorf("get document %s: %w", chunk.DocumentID, err)
			}
			title = doc.Title
			titleCache[chunk.DocumentID] = title
		}

		score, firstMatch := e.scoreChunk(queryTokens, docFreq, totalChunks, chunk, section)

		scored = append(scored, scoredChunk{
			result: domain.SearchResult{
				ChunkID:     chunk.ID,
				DocumentID:  chunk.DocumentID,
				SectionID:   chunk.SectionID,
				Title:       title,
				HeadingPath: section.HeadingPath,
				Snippet:     e.snippet(chunk.Text, firstMatch),
				Score:       score,
			},
			order: chunk.Order,
			index: chunk.Index,
		})
	}

	return scored, nil
}

// scoreChunk computes the score for one chunk and the byte offset of
// the first query token occurrence (for snippet centring).
func (e *SearchEngine) scoreChunk(
	queryTokens []string,
	docFreq map[string]int,
	totalChunks int,
	chunk *domain.Chunk,
	section *domain.Section,
) (float64, int) {
	counts := chunk.Tokens()
	headingTokens := domain.TokenSet(strings.Join(section.HeadingPath, " "))

	lowerText := strings.ToLower(chunk.Text)
	firstMatch := -1

	var score float64
	for _, token := range queryTokens {
		// Smoothed IDF keeps rare-token weight finite on tiny
		// corpora and never goes negative.
		idf := math.Log(float64(1+totalChunks)/float64(1+docFreq[token])) + 1

		if tf, ok := counts[token]; ok && tf > 0 {
			score += idf * (1 + math.Log(float64(tf)))

			if pos := strings.Index(lowerText, token); pos >= 0 {
				if firstMatch < 0 || pos < firstMatch {
					firstMatch = pos
				}
			}
		}
		if _, ok := headingTokens[token]; ok {
			// The boost scales with the token's idf so a heading hit
			// on a common token cannot outrank an extra matched body
			// token.
			score += e.headingBoost * idf
		}
	}

	score += e.positionWeight / float64(1+section.Order)

	if firstMatch < 0 {
		firstMatch = 0
	}
	return score, firstMatch
}

// snippet extracts an excerpt of roughly snippetLength bytes centred
// on the first match, trimmed to word boundaries, with ellipses
// marking truncation.
func (e *SearchEngine) snippet(text string, matchPos int) string {
	if len(text) <= e.snippetLength {
		return text
	}

	start := matchPos - e.snippetLength/2
	if start < 0 {
		start = 0
	}
	end := start + e.snippetLength
	if end > len(text) {
		end = len(text)
		start = end - e.snippetLength
	}

	// Expand to word boundaries.
	if start > 0 {
		if idx := strings.LastIndexByte(text[:start], ' '); idx >= 0 {
			start = idx + 1
		}
	}
	if end < len(text) {
		if idx := strings.IndexByte(text[end:], ' '); idx >= 0 {
			end += idx
		} else {
			end = len(text)
		}
	}

	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(text) {
		out += "…"
	}
	return out
}

// uniqueTokens de-duplicates tokens preserving first-seen order.
func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
