// Package markdown parses markdown documentation pages into
// heading-delimited sections.
package markdown

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/docdex/docdex-cli/internal/core/domain"
	"github.com/docdex/docdex-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// headingRe matches an ATX heading line: # through ######.
var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)

// Normaliser parses markdown documents. The heading structure is a
// small explicit state machine: a stack of open section builders,
// popped whenever a heading of level <= the open level is seen.
type Normaliser struct {
	strict bool
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithStrictMode makes unterminated code fences a parse error.
// The default mode treats end-of-document as an implicit fence close.
func WithStrictMode(strict bool) Option {
	return func(n *Normaliser) {
		n.strict = strict
	}
}

// New creates a new markdown normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// sectionBuilder accumulates one open section during the scan.
type sectionBuilder struct {
	level       int
	headingPath []string
	order       int
	content     strings.Builder
}

// Normalise parses a raw markdown document into a document record
// and its ordered sections.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)
	fmTitle, body := parseFrontmatter(content)

	title := fmTitle
	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = domain.TitleFromPath(raw.SourcePath)
	}

	docID := domain.DocumentID(raw.SourcePath)

	// The implicit root section holds content before any heading.
	root := &sectionBuilder{level: 0, headingPath: []string{title}, order: 0}
	stack := []*sectionBuilder{root}
	var closed []*sectionBuilder

	nextOrder := 1
	inFence := false
	fenceMarker := ""

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		// Track fence state. Heading-like lines inside a fenced
		// block must not open a new section.
		if marker := fenceOf(trimmed); marker != "" {
			if !inFence {
				inFence = true
				fenceMarker = marker
			} else if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = false
				fenceMarker = ""
			}
			top(stack).content.WriteString(line + "\n")
			continue
		}

		m := headingRe.FindStringSubmatch(line)
		if m == nil || inFence {
			top(stack).content.WriteString(line + "\n")
			continue
		}

		level := len(m[1])
		heading := m[2]

		// A heading at level n closes all open sections at level >= n.
		for len(stack) > 1 && top(stack).level >= level {
			closed = append(closed, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}

		parent := top(stack)
		// The parent keeps the heading marker for context, without
		// the sub-section's own text. A root with no body before its
		// first heading stays blank so it is dropped, not indexed as
		// a section of marker lines.
		if parent.level > 0 || strings.TrimSpace(parent.content.String()) != "" {
			parent.content.WriteString(line + "\n")
		}

		var path []string
		if parent.level > 0 {
			path = append(path, parent.headingPath...)
		}
		path = append(path, heading)

		stack = append(stack, &sectionBuilder{
			level:       level,
			headingPath: path,
			order:       nextOrder,
		})
		nextOrder++
	}

	if inFence && n.strict {
		return nil, fmt.Errorf("%w: unterminated code fence in %s",
			domain.ErrMalformedDocument, raw.SourcePath)
	}

	for len(stack) > 0 {
		closed = append(closed, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}

	sections := buildSections(docID, closed)

	doc := domain.Document{
		ID:          docID,
		SourcePath:  raw.SourcePath,
		Title:       title,
		Category:    domain.CategoryFromPath(raw.SourcePath),
		Description: firstParagraphAfterHeading(sections),
		RawContent:  content,
	}

	return &driven.NormaliseResult{
		Document: doc,
		Sections: sections,
	}, nil
}

// buildSections converts builders to ordered Section records. The
// root section is dropped when it holds no content; every heading
// section is kept so the document structure survives even when a
// heading has an empty body.
func buildSections(docID string, builders []*sectionBuilder) []domain.Section {
	sections := make([]domain.Section, 0, len(builders))

	for _, b := range builders {
		content := strings.TrimRight(b.content.String(), "\n")
		if b.level == 0 && strings.TrimSpace(content) == "" {
			continue
		}

		heading := ""
		if b.level > 0 && len(b.headingPath) > 0 {
			heading = b.headingPath[len(b.headingPath)-1]
		}

		sections = append(sections, domain.Section{
			ID:          domain.SectionID(docID, b.order, heading),
			DocumentID:  docID,
			HeadingPath: b.headingPath,
			Level:       b.level,
			Content:     content,
			Order:       b.order,
		})
	}

	// Builders are collected in close order; restore reading order.
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})

	return sections
}

// top returns the innermost open section builder.
func top(stack []*sectionBuilder) *sectionBuilder {
	return stack[len(stack)-1]
}

// fenceOf reports the fence marker opening or closing a fenced code
// block on this line, or "" when the line is not a fence delimiter.
func fenceOf(trimmed string) string {
	if strings.HasPrefix(trimmed, "```") {
		return "```"
	}
	if strings.HasPrefix(trimmed, "~~~") {
		return "~~~"
	}
	return ""
}

// firstHeading returns the first ATX heading title in the body,
// ignoring headings inside fenced blocks.
func firstHeading(body string) string {
	inFence := false
	fenceMarker := ""

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if marker := fenceOf(trimmed); marker != "" {
			if !inFence {
				inFence = true
				fenceMarker = marker
			} else if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = false
			}
			continue
		}
		if inFence {
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil {
			return m[2]
		}
	}
	return ""
}

// parseFrontmatter strips a leading YAML frontmatter block and
// extracts a title override when present. Recognised keys follow
// the upstream doc site's conventions: a "components:" list (its
// first entry names the documented component) and a plain "title:".
func parseFrontmatter(content string) (title, body string) {
	if !strings.HasPrefix(content, "---") {
		return "", content
	}

	rest := content[3:]
	end := strings.Index(rest, "\n---")
	if end == -1 {
		return "", content
	}

	block := rest[:end]
	body = rest[end+4:]
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = ""
	}

	if m := regexp.MustCompile(`(?m)^components:\s*\n\s*-\s*(.+)$`).FindStringSubmatch(block); m != nil {
		return strings.Trim(strings.TrimSpace(m[1]), `"'`), body
	}
	if m := regexp.MustCompile(`(?m)^title:\s*(.+)$`).FindStringSubmatch(block); m != nil {
		return strings.Trim(strings.TrimSpace(m[1]), `"'`), body
	}

	return "", body
}

// firstParagraphAfterHeading extracts the document description: the
// first non-empty paragraph of the first heading section's content.
func firstParagraphAfterHeading(sections []domain.Section) string {
	for _, s := range sections {
		if s.Level == 0 {
			continue
		}

		var para []string
		for _, line := range strings.Split(s.Content, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				if len(para) > 0 {
					break
				}
				continue
			}
			if strings.HasPrefix(trimmed, "#") || fenceOf(trimmed) != "" {
				break
			}
			para = append(para, trimmed)
		}

		if len(para) > 0 {
			return strings.Join(para, " ")
		}
		return ""
	}
	return ""
}
