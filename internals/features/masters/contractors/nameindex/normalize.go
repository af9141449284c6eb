package nameindex

import (
	"strings"
	"unicode"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/constants"
)

// StripLegalSuffixWith removes legal-entity tokens from both ends of name,
// one pass over the token list, removals accumulating. Falls back to the
// input when everything was stripped away.
func StripLegalSuffixWith(name string, tokens []string) string {
	trimmed := strings.TrimSpace(name)
	for _, token := range tokens {
		if strings.HasPrefix(trimmed, token) {
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, token))
		}
		if strings.HasSuffix(trimmed, token) {
			trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, token))
		}
	}
	if trimmed == "" {
		return name
	}
	return trimmed
}

// StripLegalSuffix is the display-name form: suffix removal only, no case
// or whitespace folding.
func StripLegalSuffix(name string) string {
	return StripLegalSuffixWith(name, constants.CorporateTokens)
}

// NormalizeKey builds the comparison key: every whitespace rune dropped
// (IsSpace covers U+3000) and the rest lower-cased. Idempotent.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NormalizeLabel prepares a contractor label for mapping-table lookups:
// legal suffixes stripped, then one trailing run of digits (half or full
// width) with any separating spaces removed, so "Acme 2" and "Acme" share
// a key.
func NormalizeLabel(s string) string {
	cleaned := strings.TrimSpace(StripLegalSuffix(s))
	runes := []rune(cleaned)
	end := len(runes)
	i := end
	for i > 0 && unicode.IsDigit(runes[i-1]) {
		i--
	}
	if i == end {
		return cleaned
	}
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	return string(runes[:i])
}

// MappingKey is the canonical key for override-map lookups.
func MappingKey(s string) string {
	return NormalizeKey(NormalizeLabel(s))
}
