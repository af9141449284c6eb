package service

import (
	"strings"
	"unicode"
)

// MemoTerms is a parsed memo keyword query: whitespace-separated tokens
// (half or full width), "-" prefix marking an exclusion term.
type MemoTerms struct {
	Include []string
	Exclude []string
}

func ParseMemoTerms(query string) MemoTerms {
	terms := MemoTerms{}
	for _, token := range strings.FieldsFunc(query, unicode.IsSpace) {
		if strings.HasPrefix(token, "-") && len(token) > 1 {
			terms.Exclude = append(terms.Exclude, token[1:])
		} else {
			terms.Include = append(terms.Include, token)
		}
	}
	return terms
}

func (t MemoTerms) Empty() bool {
	return len(t.Include) == 0 && len(t.Exclude) == 0
}

// Matches applies the terms to one memo. Partial mode is substring
// containment; exact mode tokenizes the memo the same way as the query
// and requires whole-token (non-)membership.
func (t MemoTerms) Matches(memoText string, exact bool) bool {
	if t.Empty() {
		return true
	}
	if memoText == "" {
		return len(t.Include) == 0
	}

	if exact {
		tokens := strings.FieldsFunc(memoText, unicode.IsSpace)
		set := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			set[token] = struct{}{}
		}
		for _, term := range t.Include {
			if _, ok := set[term]; !ok {
				return false
			}
		}
		for _, term := range t.Exclude {
			if _, ok := set[term]; ok {
				return false
			}
		}
		return true
	}

	for _, term := range t.Include {
		if !strings.Contains(memoText, term) {
			return false
		}
	}
	for _, term := range t.Exclude {
		if strings.Contains(memoText, term) {
			return false
		}
	}
	return true
}
