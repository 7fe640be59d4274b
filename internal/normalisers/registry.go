// Package normalisers provides implementations of the Normaliser
// interface for the corpus file formats docdex ingests, plus a
// registry that routes a raw document to the right one by file
// extension.
package normalisers

import (
	"context"
	"path"
	"strings"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.Normaliser = (*Registry)(nil)

// Registry dispatches normalisation by source file extension. It is
// itself a Normaliser, so the ingest pipeline needs no routing logic.
type Registry struct {
	fallback    driven.Normaliser
	byExtension map[string]driven.Normaliser
}

// NewRegistry creates a registry. The fallback normaliser handles
// any extension without an explicit registration.
func NewRegistry(fallback driven.Normaliser) *Registry {
	return &Registry{
		fallback:    fallback,
		byExtension: make(map[string]driven.Normaliser),
	}
}

// Register routes the given extension (including the dot, e.g.
// ".txt") to a normaliser. Extensions are matched case-insensitively.
func (r *Registry) Register(ext string, n driven.Normaliser) {
	r.byExtension[strings.ToLower(ext)] = n
}

// Has returns true if an explicit normaliser is registered for ext.
func (r *Registry) Has(ext string) bool {
	_, ok := r.byExtension[strings.ToLower(ext)]
	return ok
}

// Extensions returns the explicitly registered extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	return exts
}

// Lookup returns the normaliser for a source path.
func (r *Registry) Lookup(sourcePath string) driven.Normaliser {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(sourcePath, "\\", "/")))
	if n, ok := r.byExtension[ext]; ok {
		return n
	}
	return r.fallback
}

// Normalise routes the raw document to the normaliser registered for
// its extension, falling back to the default.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	return r.Lookup(raw.SourcePath).Normalise(ctx, raw)
}
