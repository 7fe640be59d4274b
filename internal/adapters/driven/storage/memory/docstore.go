// Package memory provides in-memory storage adapters, used for
// tests and for corpora that do not need to survive a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
//
// A single RWMutex guards all maps, so an upsert swaps a document's
// whole subtree and its index entries in one critical section:
// concurrent readers observe either all-old or all-new chunks for a
// document, never a mix.
type DocumentStore struct {
	mu          sync.RWMutex
	documents   map[string]domain.Document
	sections    map[string][]domain.Section // by document ID, reading order
	sectionByID map[string]domain.Section
	chunks      map[string]domain.Chunk
	chunksByDoc map[string][]string
	index       map[string]map[string]struct{} // token -> chunk ID set
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents:   make(map[string]domain.Document),
		sections:    make(map[string][]domain.Section),
		sectionByID: make(map[string]domain.Section),
		chunks:      make(map[string]domain.Chunk),
		chunksByDoc: make(map[string][]string),
		index:       make(map[string]map[string]struct{}),
	}
}

// UpsertDocument atomically replaces the document and its subtree.
func (s *DocumentStore) UpsertDocument(
	_ context.Context, doc *domain.Document, sections []domain.Section, chunks []domain.Chunk,
) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	if err := validateSubtree(doc, sections, chunks); err != nil {
		return err
	}

	// Tokenise outside the critical section.
	postings := make(map[string][]string)
	for i := range chunks {
		for token := range chunks[i].Tokens() {
			postings[token] = append(postings[token], chunks[i].ID)
		}
	}

	ordered := make([]domain.Section, len(sections))
	copy(ordered, sections)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	stored := *doc
	if stored.IngestedAt.IsZero() {
		stored.IngestedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeSubtreeLocked(doc.ID)

	s.documents[doc.ID] = stored
	s.sections[doc.ID] = ordered
	for _, sec := range ordered {
		s.sectionByID[sec.ID] = sec
	}

	ids := make([]string, 0, len(chunks))
	for i := range chunks {
		s.chunks[chunks[i].ID] = chunks[i]
		ids = append(ids, chunks[i].ID)
	}
	s.chunksByDoc[doc.ID] = ids

	for token, chunkIDs := range postings {
		set, ok := s.index[token]
		if !ok {
			set = make(map[string]struct{})
			s.index[token] = set
		}
		for _, id := range chunkIDs {
			set[id] = struct{}{}
		}
	}

	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetSections retrieves a document's sections in reading order.
func (s *DocumentStore) GetSections(_ context.Context, documentID string) ([]domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sections, ok := s.sections[documentID]
	if !ok {
		return nil, nil
	}
	out := make([]domain.Section, len(sections))
	copy(out, sections)
	return out, nil
}

// GetSection retrieves a section by ID.
func (s *DocumentStore) GetSection(_ context.Context, id string) (*domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sec, ok := s.sectionByID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sec, nil
}

// GetChunk retrieves a chunk by ID.
func (s *DocumentStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunk, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

// ChunkIDsByToken returns the IDs of chunks containing the token,
// sorted for determinism.
func (s *DocumentStore) ChunkIDsByToken(_ context.Context, token string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.index[token]
	if !ok {
		return nil, nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// TokenDocFrequency returns how many chunks contain each token.
func (s *DocumentStore) TokenDocFrequency(_ context.Context, tokens []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	freq := make(map[string]int, len(tokens))
	for _, token := range tokens {
		freq[token] = len(s.index[token])
	}
	return freq, nil
}

// ChunkCount returns the total number of chunks in the store.
func (s *DocumentStore) ChunkCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// ListDocuments returns documents sorted by title, optionally
// filtered by category (case-insensitive substring match).
func (s *DocumentStore) ListDocuments(_ context.Context, category string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(category)
	var out []domain.Document
	for id := range s.documents {
		doc := s.documents[id]
		if needle != "" && !strings.Contains(strings.ToLower(doc.Category), needle) {
			continue
		}
		out = append(out, doc)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListCategories returns the distinct document categories, sorted.
func (s *DocumentStore) ListCategories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, doc := range s.documents {
		if doc.Category != "" {
			seen[doc.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// DeleteDocument removes a document and its subtree.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeSubtreeLocked(id)
	return nil
}

// PurgeAll removes everything.
func (s *DocumentStore) PurgeAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = make(map[string]domain.Document)
	s.sections = make(map[string][]domain.Section)
	s.sectionByID = make(map[string]domain.Section)
	s.chunks = make(map[string]domain.Chunk)
	s.chunksByDoc = make(map[string][]string)
	s.index = make(map[string]map[string]struct{})
	return nil
}

// removeSubtreeLocked removes a document, its sections, chunks and
// index entries. Caller must hold the write lock.
func (s *DocumentStore) removeSubtreeLocked(docID string) {
	for _, sec := range s.sections[docID] {
		delete(s.sectionByID, sec.ID)
	}
	delete(s.sections, docID)

	for _, chunkID := range s.chunksByDoc[docID] {
		chunk, ok := s.chunks[chunkID]
		if ok {
			for token := range chunk.Tokens() {
				if set, ok := s.index[token]; ok {
					delete(set, chunkID)
					if len(set) == 0 {
						delete(s.index, token)
					}
				}
			}
		}
		delete(s.chunks, chunkID)
	}
	delete(s.chunksByDoc, docID)
	delete(s.documents, docID)
}

// validateSubtree checks referential integrity of an upsert.
// Malformed writes are rejected rather than silently repaired.
func validateSubtree(doc *domain.Document, sections []domain.Section, chunks []domain.Chunk) error {
	sectionIDs := make(map[string]struct{}, len(sections))
	for i := range sections {
		if sections[i].DocumentID != doc.ID {
			return fmt.Errorf("%w: section %s belongs to %s, not %s",
				domain.ErrIntegrity, sections[i].ID, sections[i].DocumentID, doc.ID)
		}
		sectionIDs[sections[i].ID] = struct{}{}
	}

	for i := range chunks {
		if chunks[i].DocumentID != doc.ID {
			return fmt.Errorf("%w: chunk %s belongs to %s, not %s",
				domain.ErrIntegrity, chunks[i].ID, chunks[i].DocumentID, doc.ID)
		}
		if _, ok := sectionIDs[chunks[i].SectionID]; !ok {
			return fmt.Errorf("%w: chunk %s references missing section %s",
				domain.ErrIntegrity, chunks[i].ID, chunks[i].SectionID)
		}
		if chunks[i].Text == "" {
			return fmt.Errorf("%w: chunk %s is empty", domain.ErrIntegrity, chunks[i].ID)
		}
	}

	return nil
}
