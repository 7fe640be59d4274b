package driven

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// SectionChunker splits section content into length-bounded chunks.
//
// Guarantees: every chunk's text is within the configured maximum,
// consecutive chunks within a section overlap by at most the
// configured overlap, no chunk is empty, and concatenating the
// non-overlapping spans in order reproduces the section content
// exactly.
type SectionChunker interface {
	// Chunk produces one or more chunks for the section. A section
	// shorter than the maximum produces exactly one chunk equal to
	// the full content.
	Chunk(ctx context.Context, section *domain.Section) ([]domain.Chunk, error)
}
