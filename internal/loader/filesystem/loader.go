// Package filesystem implements the corpus loader over a local
// directory tree of documentation files.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
	"github.com/docdex/docdex-cli/internal/logger"
)

// DefaultExtensions are the file extensions loaded from the corpus.
var DefaultExtensions = []string{".md", ".markdown"}

// Ensure Loader implements the interface.
var _ driven.CorpusLoader = (*Loader)(nil)

// Loader walks a directory tree and streams raw documents in sorted
// path order, so ingestion is reproducible.
type Loader struct {
	root       string
	extensions []string

	mu      sync.Mutex
	skipped []domain.SkippedFile
}

// Option configures the loader.
type Option func(*Loader)

// WithExtensions sets the file extensions to load (with leading dot).
func WithExtensions(exts []string) Option {
	return func(l *Loader) {
		if len(exts) > 0 {
			l.extensions = exts
		}
	}
}

// New creates a loader rooted at the given corpus directory.
func New(root string, opts ...Option) *Loader {
	l := &Loader{
		root:       root,
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Validate checks that the corpus root exists and is a readable
// directory.
func (l *Loader) Validate(_ context.Context) error {
	info, err := os.Stat(l.root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCorpusUnreadable, l.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrCorpusUnreadable, l.root)
	}
	if _, err := os.ReadDir(l.root); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCorpusUnreadable, l.root, err)
	}
	return nil
}

// Load streams raw documents for every matching file under the root.
// Files that cannot be decoded as text are skipped and recorded;
// they never fail the run. Both channels are closed when the walk
// finishes or ctx is cancelled.
func (l *Loader) Load(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)

	l.mu.Lock()
	l.skipped = nil
	l.mu.Unlock()

	go func() {
		defer close(docs)
		defer close(errs)

		paths, err := l.enumerate()
		if err != nil {
			errs <- err
			return
		}

		logger.Debug("Corpus walk: %d candidate files under %s", len(paths), l.root)

		for _, rel := range paths {
			select {
			case <-ctx.Done():
				return
			default:
			}

			content, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(rel)))
			if err != nil {
				l.recordSkip(rel, fmt.Sprintf("read: %v", err))
				continue
			}
			if !utf8.Valid(content) {
				l.recordSkip(rel, "not valid UTF-8 text")
				continue
			}

			select {
			case docs <- domain.RawDocument{SourcePath: rel, Content: content}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return docs, errs
}

// Skipped reports files skipped during the last Load.
func (l *Loader) Skipped() []domain.SkippedFile {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.SkippedFile, len(l.skipped))
	copy(out, l.skipped)
	return out
}

// enumerate walks the tree and returns matching paths relative to
// the root, sorted.
func (l *Loader) enumerate() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories (.git, .obsidian, ...) are not
			// part of the corpus.
			if path != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !l.matchesExtension(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", domain.ErrCorpusUnreadable, l.root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) matchesExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range l.extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func (l *Loader) recordSkip(rel, reason string) {
	logger.Warn("Skipping %s: %s", rel, reason)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.skipped = append(l.skipped, domain.SkippedFile{SourcePath: rel, Reason: reason})
}
