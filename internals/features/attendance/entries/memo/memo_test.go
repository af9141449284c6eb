package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	text := Encode("山田太郎", "午前のみ")
	assert.Equal(t, "ネクサス / 山田太郎 / 午前のみ", text)

	name, freeMemo, ok := Decode(text)
	assert.True(t, ok)
	assert.Equal(t, "山田太郎", name)
	assert.Equal(t, "午前のみ", freeMemo)

	// no memo
	name, freeMemo, ok = Decode(Encode("山田太郎", ""))
	assert.True(t, ok)
	assert.Equal(t, "山田太郎", name)
	assert.Equal(t, "", freeMemo)
}

func TestDecodeHandTyped(t *testing.T) {
	// full-width slash and ideographic space still decode
	name, freeMemo, ok := Decode("ネクサス　／　山田太郎")
	assert.True(t, ok)
	assert.Equal(t, "山田太郎", name)
	assert.Equal(t, "", freeMemo)

	name, _, ok = Decode("ネクサス/山田太郎")
	assert.True(t, ok)
	assert.Equal(t, "山田太郎", name)
}

func TestDecodeRejectsOrdinaryMemo(t *testing.T) {
	_, _, ok := Decode("午前のみ")
	assert.False(t, ok)

	// marker alone carries no name
	_, _, ok = Decode("ネクサス")
	assert.False(t, ok)
	_, _, ok = Decode("ネクサス / ")
	assert.False(t, ok)

	// marker in the middle is just a word
	_, _, ok = Decode("本日ネクサス対応")
	assert.False(t, ok)
}

func TestDecodeMemoWithSeparator(t *testing.T) {
	// a memo containing " / " stays attached to the memo part
	name, freeMemo, ok := Decode("ネクサス / 山田太郎 / 午前 / 午後")
	assert.True(t, ok)
	assert.Equal(t, "山田太郎", name)
	assert.Equal(t, "午前 / 午後", freeMemo)
}

func TestParseNameAndIsExternal(t *testing.T) {
	assert.Equal(t, "山田太郎", ParseName("ネクサス / 山田太郎"))
	assert.Equal(t, "", ParseName("午前のみ"))

	assert.True(t, IsExternal("ネクサス / 山田太郎"))
	assert.False(t, IsExternal("午前のみ"))
}
