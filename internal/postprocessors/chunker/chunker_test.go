package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/docdex/docdex-cli/internal/core/domain"
)

func testSection(content string) *domain.Section {
	return &domain.Section{
		ID:          "doc#1-heading",
		DocumentID:  "doc",
		HeadingPath: []string{"Heading"},
		Level:       1,
		Content:     content,
		Order:       1,
	}
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.maxLength != DefaultMaxLength {
			t.Errorf("expected maxLength %d, got %d", DefaultMaxLength, c.maxLength)
		}
		if c.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, c.overlap)
		}
	})

	t.Run("overlap exceeds max length", func(t *testing.T) {
		c := New(WithMaxLength(100), WithOverlap(150))
		if c.overlap >= c.maxLength {
			t.Error("overlap should be reduced when it exceeds max length")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithMaxLength(0), WithOverlap(-1))
		if c.maxLength != DefaultMaxLength || c.overlap != DefaultOverlap {
			t.Errorf("expected defaults, got %d/%d", c.maxLength, c.overlap)
		}
	})
}

func TestChunk_NilSection(t *testing.T) {
	_, err := New().Chunk(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for nil section")
	}
}

func TestChunk_EmptyContent(t *testing.T) {
	chunks, err := New().Chunk(context.Background(), testSection("  \n "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for blank content, got %d", len(chunks))
	}
}

func TestChunk_ShortContent(t *testing.T) {
	section := testSection("A short section.")
	chunks, err := New(WithMaxLength(100), WithOverlap(20)).Chunk(context.Background(), section)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected exactly 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != section.Content {
		t.Error("single chunk must equal the full content")
	}
	if chunks[0].ID != "doc#1-heading@0" {
		t.Errorf("unexpected chunk ID %q", chunks[0].ID)
	}
	if chunks[0].Order != section.Order {
		t.Errorf("chunk must carry section order, got %d", chunks[0].Order)
	}
}

func TestChunk_OneAndAHalfTimesMax(t *testing.T) {
	// Content 1.5x the maximum must produce exactly 2 chunks.
	c := New(WithMaxLength(100), WithOverlap(20))
	section := testSection(strings.Repeat("x", 150))

	chunks, err := c.Chunk(context.Background(), section)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected exactly 2 chunks, got %d", len(chunks))
	}

	for i, ch := range chunks {
		if len(ch.Text) > 100 {
			t.Errorf("chunk %d exceeds max length: %d", i, len(ch.Text))
		}
		if ch.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunk_RoundTrip(t *testing.T) {
	contents := []string{
		strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40),
		strings.Repeat("word ", 500) + "\n\n" + strings.Repeat("more ", 300),
		strings.Repeat("nobreaks", 200),
	}

	c := New(WithMaxLength(200), WithOverlap(40))

	for _, content := range contents {
		section := testSection(content)
		chunks, err := c.Chunk(context.Background(), section)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Every chunk after the first duplicates exactly the
		// configured overlap; dropping it and concatenating must
		// reproduce the content exactly.
		var sb strings.Builder
		for i, ch := range chunks {
			if ch.Text == "" {
				t.Fatalf("chunk %d is empty", i)
			}
			if len(ch.Text) > 200 {
				t.Errorf("chunk %d exceeds max length: %d", i, len(ch.Text))
			}
			if i == 0 {
				sb.WriteString(ch.Text)
				continue
			}
			sb.WriteString(ch.Text[40:])
		}

		if sb.String() != content {
			t.Error("round-trip failed: concatenated spans differ from content")
		}
	}
}

func TestChunk_SentenceBoundaryPreferred(t *testing.T) {
	// A sentence boundary near the limit should win over a hard cut.
	sentence := strings.Repeat("a", 80) + ". "
	content := sentence + strings.Repeat("b", 100)

	c := New(WithMaxLength(100), WithOverlap(0))
	chunks, err := c.Chunk(context.Background(), testSection(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, ".") {
		t.Errorf("first chunk should end at the sentence boundary, got %q", chunks[0].Text[len(chunks[0].Text)-10:])
	}
}

func TestChunk_Deterministic(t *testing.T) {
	c := New(WithMaxLength(120), WithOverlap(30))
	section := testSection(strings.Repeat("Deterministic output matters. ", 30))

	first, err := c.Chunk(context.Background(), section)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Chunk(context.Background(), section)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Text != second[i].Text {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
