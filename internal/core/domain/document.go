package domain

import (
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Document represents an ingested documentation page.
// It is the canonical representation after normalisation.
type Document struct {
	// ID is derived from the source path, not the content, so
	// re-ingesting the same file updates rather than duplicates.
	ID string

	// SourcePath is the file path relative to the corpus root.
	SourcePath string

	// Title is the first top-level heading, or a filename fallback.
	Title string

	// Category is the humanised first path element of SourcePath
	// (e.g. "library/forms/button.md" -> "Library").
	Category string

	// Description is the first paragraph after the document's
	// first heading. Empty when no such paragraph exists.
	Description string

	// RawContent is the full original text, retained for
	// re-parsing and provenance.
	RawContent string

	// IngestedAt is the time of the last successful ingestion.
	IngestedAt time.Time
}

// Section is a heading-delimited block within a document.
// A section belongs to exactly one document.
type Section struct {
	// ID is DocumentID + "#" + order + "-" + heading slug.
	ID string

	// DocumentID is the owning document.
	DocumentID string

	// HeadingPath is the ordered sequence of ancestor heading
	// titles, ending with this section's own heading.
	HeadingPath []string

	// Level is the heading depth, 1..6. The implicit root section
	// that holds content before any heading has level 0.
	Level int

	// Content is the text belonging to this heading, excluding
	// nested sub-sections' own text.
	Content string

	// Order is the position within the document and defines
	// reading order.
	Order int
}

// Heading returns the section's own heading title, or the empty
// string for the implicit root section.
func (s *Section) Heading() string {
	if len(s.HeadingPath) == 0 {
		return ""
	}
	return s.HeadingPath[len(s.HeadingPath)-1]
}

// Chunk is a searchable unit within a section. Chunks are
// length-bounded slices of section content with a configured
// overlap between neighbours.
type Chunk struct {
	// ID is SectionID + "@" + index.
	ID string

	// SectionID is the owning section.
	SectionID string

	// DocumentID is the owning document, denormalised for
	// efficient hydration.
	DocumentID string

	// Text is a contiguous slice of the section's content.
	Text string

	// Index is the chunk's position within its section.
	Index int

	// Order is the owning section's position within the document,
	// carried for ranking tie-breaks.
	Order int
}

// Tokens returns the normalised token set for the chunk's text.
// It is always derived from Text, never stored independently.
func (c *Chunk) Tokens() map[string]int {
	return TokenCounts(c.Text)
}

// DocumentID derives a stable document ID from a source path
// relative to the corpus root. Separators are normalised to "/"
// and the file extension is dropped:
//
//	components/button.md -> components/button
func DocumentID(sourcePath string) string {
	p := strings.ReplaceAll(sourcePath, "\\", "/")
	p = strings.TrimPrefix(path.Clean(p), "/")
	if ext := path.Ext(p); ext != "" {
		p = strings.TrimSuffix(p, ext)
	}
	return p
}

// SectionID derives a section ID from its owning document, order
// and heading. The heading is slugified; the root section uses the
// slug "root".
func SectionID(docID string, order int, heading string) string {
	slug := Slugify(heading)
	if slug == "" {
		slug = "root"
	}
	return docID + "#" + strconv.Itoa(order) + "-" + slug
}

// ChunkID derives a chunk ID from its owning section and index.
func ChunkID(sectionID string, index int) string {
	return sectionID + "@" + strconv.Itoa(index)
}

// CategoryFromPath derives a display category from the first path
// element of a source path. Files at the corpus root fall back to
// "General".
func CategoryFromPath(sourcePath string) string {
	p := strings.ReplaceAll(sourcePath, "\\", "/")
	p = strings.TrimPrefix(path.Clean(p), "/")
	idx := strings.Index(p, "/")
	if idx <= 0 {
		return "General"
	}
	return humanise(p[:idx])
}

// Slugify creates a URL-safe slug from a heading title. Letters and
// digits are kept lowercase; runs of spaces and hyphens collapse to
// a single hyphen.
func Slugify(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			prevHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// TitleFromPath creates a display title from a file name when the
// document has no heading to take the title from.
func TitleFromPath(sourcePath string) string {
	base := path.Base(strings.ReplaceAll(sourcePath, "\\", "/"))
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return humanise(base)
}

// humanise turns a path element into display form: separators
// become spaces and each word is capitalised.
func humanise(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
