// Package plaintext normalises plain text corpus files. A text file
// has no heading structure, so the whole body becomes the implicit
// root section.
package plaintext

import (
	"context"
	"strings"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts a raw text file into a document with a single
// root section. The title comes from the file name and the
// description from the first paragraph.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)
	docID := domain.DocumentID(raw.SourcePath)
	title := domain.TitleFromPath(raw.SourcePath)

	doc := domain.Document{
		ID:          docID,
		SourcePath:  raw.SourcePath,
		Title:       title,
		Category:    domain.CategoryFromPath(raw.SourcePath),
		Description: firstParagraph(content),
		RawContent:  content,
	}

	body := strings.TrimSpace(content)
	if body == "" {
		return &driven.NormaliseResult{Document: doc}, nil
	}

	section := domain.Section{
		ID:          domain.SectionID(docID, 0, title),
		DocumentID:  docID,
		HeadingPath: []string{title},
		Level:       0,
		Content:     body,
		Order:       0,
	}

	return &driven.NormaliseResult{
		Document: doc,
		Sections: []domain.Section{section},
	}, nil
}

// firstParagraph returns the first non-empty paragraph, joined onto
// one line.
func firstParagraph(content string) string {
	for _, block := range strings.Split(content, "\n\n") {
		para := strings.TrimSpace(block)
		if para == "" {
			continue
		}
		return strings.Join(strings.Fields(para), " ")
	}
	return ""
}
