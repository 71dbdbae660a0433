// Package normalize provides accent-insensitive text normalization for Spanish queries.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks, and recomposes,
// so "artículo" becomes "articulo" and "ñ" becomes "n".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases text and removes accents/diacritics, preserving
// spacing and punctuation. Comparisons across the assistant run on this form.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// StripPunctuation removes everything except letters, digits, underscores,
// and whitespace. It is the stricter variant applied before index search.
func StripPunctuation(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsWord reports whether word occurs in text delimited by word
// boundaries on both sides (start/end of text or a non-word rune).
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(text, i) && boundaryAfter(text, i+len(word)) {
			return true
		}
		start = i + 1
	}
}

// HasWordPrefix reports whether any word in text starts with prefix
// (boundary required only before the match, as in "articulo" matching
// "articulos").
func HasWordPrefix(text, prefix string) bool {
	if prefix == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], prefix)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(text, i) {
			return true
		}
		start = i + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(text[i-1])
	return !isWordByte(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	return !isWordByte(rune(text[i]))
}

// isWordByte mirrors the word-character class used by the reference
// extractor: ASCII letters, digits, and underscore. Normalized text is
// ASCII for the tokens we match against.
func isWordByte(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
