// Package refs extracts article-number and regulation-id references from
// normalized Spanish text. Patterns are implemented as explicit scanners so
// boundary behavior is exact: a number is always the full digit run ("40"
// never matches inside "400"), and leading zeros are insignificant.
package refs

import (
	"strings"
)

// ArticleKeyword is the literal that introduces an article reference.
const ArticleKeyword = "articulo"

// RegulationKeyword is the literal that introduces a regulation reference.
const RegulationKeyword = "rac"

// ArticleNumber returns the first article number referenced in text
// ("articulo 40" -> "40"), or "" when none is present. Text must already be
// normalized (lower-case, accent-free).
func ArticleNumber(text string) string {
	nums := scanArticles(text, true)
	if len(nums) == 0 {
		return ""
	}
	return nums[0]
}

// AllArticleNumbers returns every article number referenced in text, in
// order of first appearance, without duplicates.
func AllArticleNumbers(text string) []string {
	return scanArticles(text, false)
}

// RegulationID returns the first regulation id referenced in text
// ("rac-01" -> "1"), or "" when none is present.
func RegulationID(text string) string {
	ids := scanRegulations(text, true)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// AllRegulationIDs returns every regulation id referenced in text, in order
// of first appearance, without duplicates.
func AllRegulationIDs(text string) []string {
	return scanRegulations(text, false)
}

// scanArticles finds "articulo" followed by optional whitespace and a digit
// run. The keyword needs a word boundary before it only, so "articulos 4"
// still fails (the digits must directly follow the optional whitespace).
func scanArticles(text string, firstOnly bool) []string {
	var out []string
	seen := make(map[string]struct{})
	for start := 0; ; {
		i := strings.Index(text[start:], ArticleKeyword)
		if i < 0 {
			return out
		}
		i += start
		start = i + 1
		if !boundaryBefore(text, i) {
			continue
		}
		j := skipSpaces(text, i+len(ArticleKeyword))
		num, ok := readNumber(text, j)
		if !ok {
			continue
		}
		if _, dup := seen[num]; !dup {
			seen[num] = struct{}{}
			out = append(out, num)
			if firstOnly {
				return out
			}
		}
	}
}

// scanRegulations finds "rac" followed by at most one separator (space,
// dash, or colon) and a digit run. A single separator keeps "rac- 1" from
// matching while "rac 1", "rac-1", and "rac:1" all do.
func scanRegulations(text string, firstOnly bool) []string {
	var out []string
	seen := make(map[string]struct{})
	for start := 0; ; {
		i := strings.Index(text[start:], RegulationKeyword)
		if i < 0 {
			return out
		}
		i += start
		start = i + 1
		if !boundaryBefore(text, i) {
			continue
		}
		j := i + len(RegulationKeyword)
		if j < len(text) && (text[j] == ' ' || text[j] == '-' || text[j] == ':') {
			j++
		}
		id, ok := readNumber(text, j)
		if !ok {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
			if firstOnly {
				return out
			}
		}
	}
}

// readNumber reads the digit run starting at i and returns it with leading
// zeros stripped, so "007" and "7" compare equal as identifiers. An
// all-zero run collapses to "0".
func readNumber(text string, i int) (string, bool) {
	j := i
	for j < len(text) && text[j] >= '0' && text[j] <= '9' {
		j++
	}
	if j == i {
		return "", false
	}
	return CanonicalNumber(text[i:j]), true
}

// CanonicalNumber strips leading zeros from a digit string, preserving a
// lone "0". Comparison stays string equality, not numeric parsing, so
// formats like "01" keep working as identifiers.
func CanonicalNumber(num string) string {
	trimmed := strings.TrimLeft(num, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func skipSpaces(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	c := text[i-1]
	if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return false
	}
	return true
}
