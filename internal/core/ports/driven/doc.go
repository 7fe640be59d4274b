// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CorpusLoader: Enumerates and reads corpus files
//   - Normaliser: Parses raw documents into sections
//   - SectionChunker: Splits section content into bounded chunks
//   - DocumentStore: Document/section/chunk persistence plus the
//     token inverted index
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, loader, or normaliser package
package driven
