package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docdex/docdex-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed storage that provides access to the
// document and run-history store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docdex/data/docdex.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docdex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docdex.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// IngestRunStore returns an IngestRunStore interface backed by this store.
func (s *Store) IngestRunStore() driven.IngestRunStore {
	return &ingestRunStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// UpsertDocument atomically replaces a document and its subtree in a
// single transaction. Section and chunk rows of a previous version are
// removed by foreign-key cascade when the document row is deleted.
func (s *documentStore) UpsertDocument(
	ctx context.Context, doc *domain.Document, sections []domain.Section, chunks []domain.Chunk,
) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	if err := validateSubtree(doc, sections, chunks); err != nil {
		return err
	}

	ingestedAt := doc.IngestedAt
	if ingestedAt.IsZero() {
		ingestedAt = time.Now().UTC()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", doc.ID); err != nil {
		return fmt.Errorf("removing previous document: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, source_path, title, category, description, raw_content, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourcePath, doc.Title, doc.Category, doc.Description,
		doc.RawContent, ingestedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	sectionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (id, document_id, heading_path, level, content, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing section statement: %w", err)
	}
	defer sectionStmt.Close()

	for i := range sections {
		headingJSON, err := json.Marshal(sections[i].HeadingPath)
		if err != nil {
			return fmt.Errorf("marshalling heading path: %w", err)
		}
		if _, err := sectionStmt.ExecContext(ctx, sections[i].ID, sections[i].DocumentID,
			string(headingJSON), sections[i].Level, sections[i].Content, sections[i].Order); err != nil {
			return fmt.Errorf("saving section: %w", err)
		}
	}

	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, section_id, document_id, content, chunk_index, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk statement: %w", err)
	}
	defer chunkStmt.Close()

	postingStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO postings (token, chunk_id, tf) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing posting statement: %w", err)
	}
	defer postingStmt.Close()

	for i := range chunks {
		if _, err := chunkStmt.ExecContext(ctx, chunks[i].ID, chunks[i].SectionID,
			chunks[i].DocumentID, chunks[i].Text, chunks[i].Index, chunks[i].Order); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
		for token, tf := range chunks[i].Tokens() {
			if _, err := postingStmt.ExecContext(ctx, token, chunks[i].ID, tf); err != nil {
				return fmt.Errorf("saving posting: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_path, title, category, description, raw_content, ingested_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocumentRow(row)
}

// GetSections retrieves a document's sections in reading order.
func (s *documentStore) GetSections(ctx context.Context, documentID string) ([]domain.Section, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, heading_path, level, content, position
		FROM sections WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section //nolint:prealloc // size unknown from query
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *sec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}

	return sections, nil
}

// GetSection retrieves a section by ID.
func (s *documentStore) GetSection(ctx context.Context, id string) (*domain.Section, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, heading_path, level, content, position
		FROM sections WHERE id = ?
	`, id)

	var sec domain.Section
	var headingJSON string
	if err := row.Scan(&sec.ID, &sec.DocumentID, &headingJSON,
		&sec.Level, &sec.Content, &sec.Order); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning section: %w", err)
	}

	if err := json.Unmarshal([]byte(headingJSON), &sec.HeadingPath); err != nil {
		return nil, fmt.Errorf("unmarshalling heading path: %w", err)
	}

	return &sec, nil
}

// GetChunk retrieves a chunk by ID.
func (s *documentStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, section_id, document_id, content, chunk_index, position
		FROM chunks WHERE id = ?
	`, id)

	var chunk domain.Chunk
	if err := row.Scan(&chunk.ID, &chunk.SectionID, &chunk.DocumentID,
		&chunk.Text, &chunk.Index, &chunk.Order); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	return &chunk, nil
}

// ChunkIDsByToken returns the IDs of chunks containing the token,
// sorted for determinism.
func (s *documentStore) ChunkIDsByToken(ctx context.Context, token string) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT chunk_id FROM postings WHERE token = ? ORDER BY chunk_id
	`, token)
	if err != nil {
		return nil, fmt.Errorf("querying postings: %w", err)
	}
	defer rows.Close()

	var ids []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating postings: %w", err)
	}

	return ids, nil
}

// TokenDocFrequency returns how many chunks contain each token.
func (s *documentStore) TokenDocFrequency(ctx context.Context, tokens []string) (map[string]int, error) {
	freq := make(map[string]int, len(tokens))
	for _, token := range tokens {
		var count int
		err := s.store.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM postings WHERE token = ?", token).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("counting postings: %w", err)
		}
		freq[token] = count
	}
	return freq, nil
}

// ChunkCount returns the total number of chunks in the store.
func (s *documentStore) ChunkCount(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ListDocuments returns documents sorted by title, optionally
// filtered by category (case-insensitive substring match).
func (s *documentStore) ListDocuments(ctx context.Context, category string) ([]domain.Document, error) {
	query := `
		SELECT id, source_path, title, category, description, raw_content, ingested_at
		FROM documents
	`
	args := []interface{}{}
	if category != "" {
		query += " WHERE instr(lower(category), lower(?)) > 0"
		args = append(args, category)
	}
	query += " ORDER BY title, id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// ListCategories returns the distinct document categories, sorted.
func (s *documentStore) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM documents WHERE category != '' ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

// DeleteDocument removes a document and its subtree.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// PurgeAll removes everything.
func (s *documentStore) PurgeAll(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents")
	if err != nil {
		return fmt.Errorf("purging documents: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

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

// scanDocumentRow scans a single document row.
func scanDocumentRow(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var ingestedAt string

	if err := row.Scan(&doc.ID, &doc.SourcePath, &doc.Title, &doc.Category,
		&doc.Description, &doc.RawContent, &ingestedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, ingestedAt); err == nil {
		doc.IngestedAt = t
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var ingestedAt string

	if err := rows.Scan(&doc.ID, &doc.SourcePath, &doc.Title, &doc.Category,
		&doc.Description, &doc.RawContent, &ingestedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, ingestedAt); err == nil {
		doc.IngestedAt = t
	}

	return &doc, nil
}

// scanSection scans a section from *sql.Rows.
func scanSection(rows *sql.Rows) (*domain.Section, error) {
	var sec domain.Section
	var headingJSON string

	if err := rows.Scan(&sec.ID, &sec.DocumentID, &headingJSON,
		&sec.Level, &sec.Content, &sec.Order); err != nil {
		return nil, fmt.Errorf("scanning section: %w", err)
	}

	if err := json.Unmarshal([]byte(headingJSON), &sec.HeadingPath); err != nil {
		return nil, fmt.Errorf("unmarshalling heading path: %w", err)
	}

	return &sec, nil
}
