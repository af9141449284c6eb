package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMemoTerms(t *testing.T) {
	terms := ParseMemoTerms("仕上げ -手直し")
	assert.Equal(t, []string{"仕上げ"}, terms.Include)
	assert.Equal(t, []string{"手直し"}, terms.Exclude)

	// full-width space splits too
	terms = ParseMemoTerms("仕上げ　塗装")
	assert.Equal(t, []string{"仕上げ", "塗装"}, terms.Include)

	// a lone hyphen is a literal term
	terms = ParseMemoTerms("-")
	assert.Equal(t, []string{"-"}, terms.Include)
	assert.Empty(t, terms.Exclude)

	assert.True(t, ParseMemoTerms("").Empty())
}

func TestMemoTermsMatchesPartial(t *testing.T) {
	terms := ParseMemoTerms("仕上げ -手直し")

	assert.True(t, terms.Matches("本日仕上げ作業", false))
	assert.False(t, terms.Matches("仕上げ 手直しあり", false))
	assert.False(t, terms.Matches("塗装", false))

	// empty query matches everything
	assert.True(t, ParseMemoTerms("").Matches("anything", false))

	// empty memo only matches exclusion-only queries
	assert.False(t, terms.Matches("", false))
	assert.True(t, ParseMemoTerms("-手直し").Matches("", false))
}

func TestMemoTermsMatchesExact(t *testing.T) {
	terms := ParseMemoTerms("仕上げ")

	// exact mode needs a whole token
	assert.True(t, terms.Matches("仕上げ 塗装", true))
	assert.False(t, terms.Matches("本日仕上げ作業", true))

	excl := ParseMemoTerms("-仕上げ")
	assert.False(t, excl.Matches("仕上げ 塗装", true))
	assert.True(t, excl.Matches("本日仕上げ作業", true))
}
