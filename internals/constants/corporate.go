package constants

// CorporateTokens are the legal-entity markers stripped from contractor
// names when building display names and comparison keys. Ordered: full
// company forms first, then the parenthesized abbreviations (full-width,
// half-width, single-glyph). Business data, not logic — callers receive
// this as a default and may inject their own list.
var CorporateTokens = []string{
	"株式会社",
	"有限会社",
	"合同会社",
	"合名会社",
	"合資会社",
	"（株）",
	"(株)",
	"㈱",
	"（有）",
	"(有)",
	"㈲",
	"（同）",
	"(同)",
}
