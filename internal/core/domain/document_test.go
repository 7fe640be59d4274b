package domain

import (
	"reflect"
	"testing"
)

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"markdown file", "components/button.md", "components/button"},
		{"nested path", "docs/guide/getting-started.md", "docs/guide/getting-started"},
		{"windows separators", "docs\\guide\\intro.md", "docs/guide/intro"},
		{"leading slash", "/library/forms.md", "library/forms"},
		{"no extension", "README", "README"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocumentID(tt.path); got != tt.want {
				t.Errorf("DocumentID(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDocumentID_Stable(t *testing.T) {
	a := DocumentID("components/button.md")
	b := DocumentID("components/button.md")
	if a != b {
		t.Errorf("expected stable IDs, got %q and %q", a, b)
	}
}

func TestSectionID(t *testing.T) {
	id := SectionID("components/button", 2, "Props")
	if id != "components/button#2-props" {
		t.Errorf("unexpected section ID %q", id)
	}

	root := SectionID("components/button", 0, "")
	if root != "components/button#0-root" {
		t.Errorf("unexpected root section ID %q", root)
	}
}

func TestChunkID(t *testing.T) {
	id := ChunkID("components/button#2-props", 1)
	if id != "components/button#2-props@1" {
		t.Errorf("unexpected chunk ID %q", id)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Getting Started", "getting-started"},
		{"API Reference (v2)", "api-reference-v2"},
		{"  spaced   out  ", "spaced-out"},
		{"snake_case_title", "snake-case-title"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestCategoryFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"library/forms/button.md", "Library"},
		{"getting_started/intro.md", "Getting Started"},
		{"index.md", "General"},
	}

	for _, tt := range tests {
		if got := CategoryFromPath(tt.path); got != tt.want {
			t.Errorf("CategoryFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTitleFromPath(t *testing.T) {
	if got := TitleFromPath("docs/getting-started.md"); got != "Getting Started" {
		t.Errorf("TitleFromPath = %q, want %q", got, "Getting Started")
	}
}

func TestSectionHeading(t *testing.T) {
	s := &Section{HeadingPath: []string{"Components", "Button", "Props"}}
	if got := s.Heading(); got != "Props" {
		t.Errorf("Heading() = %q, want %q", got, "Props")
	}

	root := &Section{}
	if got := root.Heading(); got != "" {
		t.Errorf("root Heading() = %q, want empty", got)
	}
}

func TestChunkTokens(t *testing.T) {
	c := &Chunk{Text: "A clickable Button component. The button reacts."}
	tokens := c.Tokens()

	if tokens["button"] != 2 {
		t.Errorf("expected token count 2 for 'button', got %d", tokens["button"])
	}
	if _, ok := tokens["A"]; ok {
		t.Error("tokens must be case-folded")
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Doesn't the v2 API rock?")
	want := []string{"doesn't", "the", "v2", "api", "rock"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize("  ...  "); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
}
