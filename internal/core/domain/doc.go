// Package domain defines the core business entities for Docdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested documentation page
//   - Section: A heading-delimited block within a document
//   - Chunk: A searchable unit within a section
//   - RawDocument: Opaque bytes from the corpus loader
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
