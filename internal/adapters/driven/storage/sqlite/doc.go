// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - DocumentStore: document, section, chunk and inverted-index persistence
//   - IngestRunStore: ingestion run history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Document deletion cascades to sections, chunks and
// index postings through foreign keys.
//
// # Data Location
//
// By default, the database is stored at ~/.docdex/data/docdex.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. An upsert replaces a document's whole subtree in one
// transaction, so readers never observe a half-replaced document.
package sqlite
