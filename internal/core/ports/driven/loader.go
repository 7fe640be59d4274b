package driven

import (
	"context"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

// CorpusLoaderFactory creates loaders bound to a corpus root.
type CorpusLoaderFactory interface {
	// Create returns a loader for the given corpus root. The root is
	// not validated here; call CorpusLoader.Validate before loading.
	Create(rootPath string) (CorpusLoader, error)
}

// CorpusLoader enumerates and reads files from a documentation corpus.
type CorpusLoader interface {
	// Validate checks that the corpus root exists and is readable.
	// Returns an error wrapping domain.ErrCorpusUnreadable otherwise.
	Validate(ctx context.Context) error

	// Load streams raw documents in stable (sorted) path order, so
	// ingestion is reproducible. Files that cannot be decoded as
	// text are skipped, not failed; they are reported by Skipped
	// after the documents channel is drained.
	//
	// Both channels are closed when loading finishes or ctx is
	// cancelled.
	Load(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Skipped reports files skipped during the last Load.
	Skipped() []domain.SkippedFile
}
