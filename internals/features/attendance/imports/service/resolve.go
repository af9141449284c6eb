package service

import (
	"strings"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/memo"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
)

type ResolutionKind int

const (
	ResolvedContractor ResolutionKind = iota
	ResolvedSkip
	ResolvedExternal
	Unresolved
)

// Resolution is the outcome of mapping a free-text contractor label.
// Unresolved carries fuzzy suggestions for the human fixing the mapping;
// they are never auto-applied.
type Resolution struct {
	Kind         ResolutionKind
	ContractorID string
	Suggestions  []string
}

const skipSentinel = "skip"

// nexus sentinel spellings accepted in mapping values
func isNexusMapping(value string) bool {
	lowered := strings.ToLower(strings.TrimSpace(value))
	return lowered == "__nexus__" || lowered == "nexus" || lowered == memo.Marker
}

// NormalizeOverrides rewrites a user-supplied mapping table onto
// canonical mapping keys.
func NormalizeOverrides(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		out[nameindex.MappingKey(key)] = value
	}
	return out
}

// ResolveContractor maps one label through the override table and the
// contractor index. overrides must already be keyed by MappingKey.
func ResolveContractor(label string, overrides map[string]string, idx *nameindex.Index) Resolution {
	effective := label
	if mapped, ok := overrides[nameindex.MappingKey(label)]; ok {
		if strings.EqualFold(strings.TrimSpace(mapped), skipSentinel) {
			return Resolution{Kind: ResolvedSkip}
		}
		if isNexusMapping(mapped) {
			return Resolution{Kind: ResolvedExternal}
		}
		effective = mapped
	}

	if id, ok := idx.Resolve(effective); ok {
		return Resolution{Kind: ResolvedContractor, ContractorID: id}
	}

	return Resolution{
		Kind:        Unresolved,
		Suggestions: nameindex.Suggest(nameindex.NormalizeLabel(effective), idx.Displays()),
	}
}
