// Package nameparse splits layer names into ordered token sequences.
//
// A parsed name feeds one grid row: each token becomes a column value, so
// the split strategies aim for segments a user would want to edit as a
// unit. Strategies are tried in priority order and the first one producing
// more than one token wins; a name no strategy can split stays whole.
package nameparse

import (
	"strings"
	"unicode"
)

// ParsedName is the ordered token split of a single layer name. Parts are
// substrings of the original name except for dictionary splits, which
// preserve original casing per matched word. A ParsedName always has at
// least one part.
type ParsedName struct {
	Parts []string
}

// delimiters are the separator characters recognized by the separator
// strategy. Each occurrence becomes its own token so the original
// punctuation survives round-trips through the grid.
const delimiters = "_-/. "

// maxWordLen caps dictionary lookahead. No dictionary entry is longer.
const maxWordLen = 12

// strategies in priority order. First split returning more than one part
// wins; a nil return means the strategy does not apply.
var strategies = []func(string) []string{
	splitSeparators,
	splitCaseBoundaries,
	splitDigitBoundaries,
	splitDictionary,
}

// Parse splits name into tokens. It is deterministic and total: the empty
// string parses to a single empty part, and any name that resists every
// strategy parses to itself as a single part.
func Parse(name string) ParsedName {
	if name == "" {
		return ParsedName{Parts: []string{""}}
	}
	for _, split := range strategies {
		if parts := split(name); len(parts) > 1 {
			return ParsedName{Parts: parts}
		}
	}
	return ParsedName{Parts: []string{name}}
}

// MaxColumns returns the widest part count across names, at least 1.
func MaxColumns(names []ParsedName) int {
	max := 1
	for _, n := range names {
		if len(n.Parts) > max {
			max = len(n.Parts)
		}
	}
	return max
}

// Pad returns parts extended with trailing empty strings to exactly width
// entries. It never truncates: when parts is already wider it is returned
// as-is. The result is a fresh slice when padding occurs.
func Pad(parts []string, width int) []string {
	if len(parts) >= width {
		return parts
	}
	padded := make([]string, width)
	copy(padded, parts)
	return padded
}

// --- Strategy 1: separator split ---

// splitSeparators tokenizes around delimiter characters. Every delimiter
// becomes its own single-character token and every maximal run of
// non-delimiter characters becomes one token, so "icon_bg" yields
// ["icon", "_", "bg"].
func splitSeparators(s string) []string {
	if !strings.ContainsAny(s, delimiters) {
		return nil
	}
	var parts []string
	start := -1
	for i, r := range s {
		if strings.ContainsRune(delimiters, r) {
			if start >= 0 {
				parts = append(parts, s[start:i])
				start = -1
			}
			parts = append(parts, string(r))
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		parts = append(parts, s[start:])
	}
	return parts
}

// --- Strategy 2: case-boundary split ---

// splitCaseBoundaries breaks camelCase: a boundary is inserted before each
// uppercase letter that directly follows a lowercase letter. Runs of
// uppercase ("BGColor") are left alone for later strategies.
func splitCaseBoundaries(s string) []string {
	runes := []rune(s)
	var parts []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return append(parts, string(runes[start:]))
}

// --- Strategy 3: digit-boundary split ---

// splitDigitBoundaries breaks at every letter↔digit transition in either
// direction, so "button01" yields ["button", "01"] and "01button" the
// reverse.
func splitDigitBoundaries(s string) []string {
	runes := []rune(s)
	var parts []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if letterDigitBoundary(runes[i-1], runes[i]) {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return append(parts, string(runes[start:]))
}

func letterDigitBoundary(prev, cur rune) bool {
	return (unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(cur))
}

// --- Strategy 4: dictionary-greedy split ---

// splitDictionary scans left to right, repeatedly taking the longest
// dictionary word (case-insensitive, up to maxWordLen runes) as a token.
// A rune no word starts at accretes onto the previous token while that
// token is shorter than 3 runes, otherwise it opens a new token. A final
// pass folds any remaining single-rune tokens into the previous token
// (a leading stray starts the following token instead), so the result
// never contains lone characters.
func splitDictionary(s string) []string {
	orig := []rune(s)
	lower := make([]rune, len(orig))
	for i, r := range orig {
		lower[i] = unicode.ToLower(r)
	}

	var parts []string
	for i := 0; i < len(lower); {
		if n := longestWord(lower[i:]); n > 0 {
			parts = append(parts, string(orig[i:i+n]))
			i += n
			continue
		}
		if k := len(parts); k > 0 && len([]rune(parts[k-1])) < 3 {
			parts[k-1] += string(orig[i])
		} else {
			parts = append(parts, string(orig[i]))
		}
		i++
	}

	parts = foldStrays(parts)
	if len(parts) < 2 {
		return nil
	}
	return parts
}

// longestWord returns the rune length of the longest dictionary word
// prefixing rs, or 0.
func longestWord(rs []rune) int {
	n := maxWordLen
	if len(rs) < n {
		n = len(rs)
	}
	for ; n >= 2; n-- {
		if _, ok := dictionary[string(rs[:n])]; ok {
			return n
		}
	}
	return 0
}

// foldStrays merges single-rune tokens into a neighbor: the previous token
// when one exists, else the following token.
func foldStrays(parts []string) []string {
	var out []string
	lead := ""
	for _, p := range parts {
		if len([]rune(p)) == 1 {
			if len(out) > 0 {
				out[len(out)-1] += p
			} else {
				lead += p
			}
			continue
		}
		if lead != "" {
			p = lead + p
			lead = ""
		}
		out = append(out, p)
	}
	if lead != "" {
		out = append(out, lead)
	}
	return out
}
