// Package chunker splits section content into length-bounded,
// overlapping chunks.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
)

// DefaultMaxLength is the default maximum chunk length in bytes.
const DefaultMaxLength = 1000

// DefaultOverlap is the default overlap with the preceding chunk.
const DefaultOverlap = 200

// Ensure Chunker implements the interface.
var _ driven.SectionChunker = (*Chunker)(nil)

// Chunker splits section content into chunks of at most maxLength
// bytes, overlapping neighbours by up to overlap bytes. Split points
// prefer sentence and paragraph boundaries within a tolerance window
// before falling back to a hard cut.
//
// Concatenating the non-overlapping spans in order reproduces the
// section content exactly.
type Chunker struct {
	maxLength int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxLength sets the maximum chunk length in bytes.
func WithMaxLength(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in bytes.
func WithOverlap(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.overlap = n
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxLength: DefaultMaxLength,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for the chunk to advance.
	if c.overlap >= c.maxLength {
		c.overlap = c.maxLength / 4
	}

	return c
}

// Chunk produces the chunks for a section. A section shorter than
// the maximum produces exactly one chunk equal to the full content;
// empty content produces no chunks.
func (c *Chunker) Chunk(_ context.Context, section *domain.Section) ([]domain.Chunk, error) {
	if section == nil {
		return nil, domain.ErrInvalidInput
	}

	content := section.Content
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	if len(content) <= c.maxLength {
		return []domain.Chunk{c.newChunk(section, 0, content)}, nil
	}

	var chunks []domain.Chunk
	pos := 0 // start of the not-yet-covered remainder
	index := 0

	for pos < len(content) {
		start := pos - c.overlap
		if start < 0 || index == 0 {
			start = 0
		}
		if index > 0 {
			// Advance, not retreat: the overlap must never exceed
			// the configured size.
			for start < len(content) && !utf8.RuneStart(content[start]) {
				start++
			}
		}

		end := start + c.maxLength
		if end >= len(content) {
			chunks = append(chunks, c.newChunk(section, index, content[start:]))
			break
		}

		cut := c.splitPoint(content, pos, end)
		chunks = append(chunks, c.newChunk(section, index, content[start:cut]))
		pos = cut
		index++
	}

	return chunks, nil
}

// splitPoint finds where to end the current non-overlapping span.
// It scans backwards from the hard limit looking for a paragraph or
// sentence boundary within the tolerance window, and must make
// progress past pos.
func (c *Chunker) splitPoint(content string, pos, end int) int {
	end = runeStart(content, end)

	window := c.maxLength / 5
	lo := end - window
	if lo <= pos {
		lo = pos + 1
	}

	// Paragraph break first, then sentence end, then newline.
	for _, boundary := range []func(byte, byte) bool{
		func(b, next byte) bool { return b == '\n' && next == '\n' },
		func(b, next byte) bool {
			return (b == '.' || b == '!' || b == '?') && (next == ' ' || next == '\n')
		},
		func(b, _ byte) bool { return b == '\n' },
	} {
		for i := end - 1; i > lo; i-- {
			if i+1 < len(content) && boundary(content[i-1], content[i]) {
				return i
			}
		}
	}

	return end
}

// runeStart moves i back to the nearest UTF-8 rune start so a cut
// never splits a multi-byte rune.
func runeStart(content string, i int) int {
	for i > 0 && i < len(content) && !utf8.RuneStart(content[i]) {
		i--
	}
	return i
}

func (c *Chunker) newChunk(section *domain.Section, index int, text string) domain.Chunk {
	return domain.Chunk{
		ID:         domain.ChunkID(section.ID, index),
		SectionID:  section.ID,
		DocumentID: section.DocumentID,
		Text:       text,
		Index:      index,
		Order:      section.Order,
	}
}
