package domain

import (
	"strings"
	"unicode"
)

// Tokenize splits text into normalised tokens: case-folded runs of
// letters and digits, with apostrophes allowed inside a word. The
// same function is used to index chunks and to parse queries, so
// the two sides always agree.
//
// Stop-words are retained. Documentation queries are short and a
// term like "for" or "props" may be exactly what the caller wants.
func Tokenize(text string) []string {
	var tokens []string
	var sb strings.Builder

	flush := func() {
		if sb.Len() > 0 {
			tokens = append(tokens, sb.String())
			sb.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case (r == '\'' || r == '’') && sb.Len() > 0:
			// keep word-internal apostrophes ("doesn't")
			sb.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	// Trim apostrophes left dangling at word ends.
	for i, t := range tokens {
		tokens[i] = strings.TrimRight(t, "'’")
	}

	return tokens
}

// TokenCounts returns token -> occurrence count for the text.
func TokenCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, t := range Tokenize(text) {
		if t != "" {
			counts[t]++
		}
	}
	return counts
}

// TokenSet returns the distinct tokens of the text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokenize(text) {
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
