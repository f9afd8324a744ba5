// Package tokenizer splits document text into normalized index terms.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize splits text into terms: maximal runs of letters and digits,
// upper-cased. Everything else is a separator. Empty terms are never
// produced, so the returned sequence is safe to feed to the engine directly.
func Tokenize(text string) []string {
	var terms []string
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if b.Len() > 0 {
			terms = append(terms, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		terms = append(terms, b.String())
	}
	return terms
}

// Normalize applies the same per-term normalization Tokenize applies to
// document text: upper-case, non-alphanumeric runes stripped. Used to
// sanitize raw query terms so they compare against indexed terms.
func Normalize(term string) string {
	var b strings.Builder
	for _, r := range term {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
