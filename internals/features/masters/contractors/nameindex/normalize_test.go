package nameindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripLegalSuffix(t *testing.T) {
	assert.Equal(t, "田中建設", StripLegalSuffix("株式会社田中建設"))
	assert.Equal(t, "田中建設", StripLegalSuffix("田中建設株式会社"))
	assert.Equal(t, "佐藤組", StripLegalSuffix("㈱佐藤組"))
	assert.Equal(t, "佐藤組", StripLegalSuffix("佐藤組（株）"))
	assert.Equal(t, "山本工業", StripLegalSuffix("(有)山本工業"))
	assert.Equal(t, "鈴木電気", StripLegalSuffix(" 鈴木電気 "))

	// both ends in one pass
	assert.Equal(t, "中村", StripLegalSuffix("株式会社中村(株)"))

	// everything stripped falls back to the input
	assert.Equal(t, "株式会社", StripLegalSuffix("株式会社"))

	// unknown suffixes stay
	assert.Equal(t, "田中建設LLC", StripLegalSuffix("田中建設LLC"))
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "田中建設", NormalizeKey("田中 建設"))
	assert.Equal(t, "田中建設", NormalizeKey("田中　建設")) // U+3000
	assert.Equal(t, "abcdef", NormalizeKey("ABC DEF"))
	assert.Equal(t, "", NormalizeKey("   "))

	// idempotent
	key := NormalizeKey("Ｔanaka 建設")
	assert.Equal(t, key, NormalizeKey(key))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "田中建設", NormalizeLabel("株式会社田中建設 2"))
	assert.Equal(t, "田中建設", NormalizeLabel("田中建設２"))     // full-width digit
	assert.Equal(t, "田中建設", NormalizeLabel("田中建設　３"))    // ideographic space
	assert.Equal(t, "第3工区", NormalizeLabel("第3工区"))       // inner digits stay
	assert.Equal(t, "田中建設", NormalizeLabel("田中建設"))
}

func TestMappingKey(t *testing.T) {
	// the same company written three ways maps to one key
	a := MappingKey("株式会社 田中建設")
	b := MappingKey("田中建設（株）")
	c := MappingKey("田中 建設 2")
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestIndexResolve(t *testing.T) {
	idx := New([]ContractorRef{
		{ID: "c1", Name: "株式会社田中建設"},
		{ID: "c2", Name: "佐藤組"},
	})

	id, ok := idx.Resolve("田中建設")
	assert.True(t, ok)
	assert.Equal(t, "c1", id)

	id, ok = idx.Resolve("田中建設（株）")
	assert.True(t, ok)
	assert.Equal(t, "c1", id)

	_, ok = idx.Resolve("鈴木電気")
	assert.False(t, ok)

	assert.Equal(t, "田中建設", idx.DisplayOf("c1"))
	assert.Equal(t, []string{"田中建設", "佐藤組"}, idx.Displays())
}

func TestWorkerIndexResolve(t *testing.T) {
	idx := NewWorkerIndex([]WorkerRef{
		{ID: "w1", Name: "山田 太郎", ContractorID: "c1"},
		{ID: "w2", Name: "山田太郎", ContractorID: "c2"},
	})

	id, ok := idx.Resolve("c1", "山田太郎")
	assert.True(t, ok)
	assert.Equal(t, "w1", id)

	// same name under another contractor is a different worker
	id, ok = idx.Resolve("c2", "山田　太郎")
	assert.True(t, ok)
	assert.Equal(t, "w2", id)

	_, ok = idx.Resolve("c3", "山田太郎")
	assert.False(t, ok)
}
