package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
)

func testIndex() *nameindex.Index {
	return nameindex.New([]nameindex.ContractorRef{
		{ID: "c1", Name: "株式会社田中建設"},
		{ID: "c2", Name: "佐藤組"},
		{ID: "c3", Name: "山本工業"},
	})
}

func TestResolveContractorDirect(t *testing.T) {
	idx := testIndex()

	// legal suffix and spacing variants hit the same contractor
	for _, label := range []string{"田中建設", "株式会社田中建設", "田中建設（株）", "田中 建設"} {
		res := ResolveContractor(label, nil, idx)
		assert.Equal(t, ResolvedContractor, res.Kind, label)
		assert.Equal(t, "c1", res.ContractorID, label)
	}
}

func TestResolveContractorSentinels(t *testing.T) {
	idx := testIndex()
	overrides := NormalizeOverrides(map[string]string{
		"応援A":  "skip",
		"応援B":  "SKIP",
		"外部1":  "__nexus__",
		"外部2":  "nexus",
		"外部3":  "ネクサス",
		"旧田中":  "田中建設",
	})

	assert.Equal(t, ResolvedSkip, ResolveContractor("応援A", overrides, idx).Kind)
	assert.Equal(t, ResolvedSkip, ResolveContractor("応援B", overrides, idx).Kind)
	assert.Equal(t, ResolvedExternal, ResolveContractor("外部1", overrides, idx).Kind)
	assert.Equal(t, ResolvedExternal, ResolveContractor("外部2", overrides, idx).Kind)
	assert.Equal(t, ResolvedExternal, ResolveContractor("外部3", overrides, idx).Kind)

	// override redirecting to a canonical name
	res := ResolveContractor("旧田中", overrides, idx)
	assert.Equal(t, ResolvedContractor, res.Kind)
	assert.Equal(t, "c1", res.ContractorID)
}

func TestResolveContractorUnresolved(t *testing.T) {
	idx := testIndex()

	res := ResolveContractor("田中建築", nil, idx)
	assert.Equal(t, Unresolved, res.Kind)
	assert.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "田中建設", res.Suggestions[0])
}

func TestNormalizeOverridesKeying(t *testing.T) {
	overrides := NormalizeOverrides(map[string]string{"株式会社 田中建設 2": "skip"})

	// lookup happens through the same normalized key
	res := ResolveContractor("田中建設", overrides, testIndex())
	assert.Equal(t, ResolvedSkip, res.Kind)
}
