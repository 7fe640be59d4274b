package filesystem

import (
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.CorpusLoaderFactory = (*Factory)(nil)

// Factory creates filesystem loaders bound to a corpus root.
type Factory struct {
	opts []Option
}

// NewFactory creates a loader factory. The given options are applied
// to every loader it creates.
func NewFactory(opts ...Option) *Factory {
	return &Factory{opts: opts}
}

// Create returns a loader rooted at the given directory.
func (f *Factory) Create(rootPath string) (driven.CorpusLoader, error) {
	return New(rootPath, f.opts...), nil
}
