package driven

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// Normaliser parses a raw document into a document record and its
// ordered sections.
type Normaliser interface {
	// Normalise parses raw content. Returns an error wrapping
	// domain.ErrMalformedDocument when the content cannot be parsed
	// (only possible in strict mode; the default mode tolerates
	// unterminated code fences).
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Chunking is a separate step handled by the SectionChunker.
type NormaliseResult struct {
	// Document is the normalised document. RawContent, Title,
	// Category and Description are populated; IngestedAt is not.
	Document domain.Document

	// Sections are the document's sections in reading order.
	Sections []domain.Section
}
