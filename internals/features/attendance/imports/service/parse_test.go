package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	assert.Equal(t, "2025-01-05", ParseDate("2025/1/5"))
	assert.Equal(t, "2025-01-05", ParseDate("2025-01-05"))
	assert.Equal(t, "2025-12-31", ParseDate("2025/12/31"))
	assert.Equal(t, "2025-01-05", ParseDate(" 2025/1/5 (日) "))
	assert.Equal(t, "", ParseDate("合計"))
	assert.Equal(t, "", ParseDate(""))
}

func TestParseWorkerLine(t *testing.T) {
	line := ParseWorkerLine("山田太郎（田中建設）")
	require.NotNil(t, line)
	assert.Equal(t, "山田太郎", line.Name)
	assert.Equal(t, "田中建設", line.Contractor)

	// half-width parens
	line = ParseWorkerLine("山田太郎(田中建設)")
	require.NotNil(t, line)
	assert.Equal(t, "田中建設", line.Contractor)

	// trailing hand-written marks stripped
	line = ParseWorkerLine("山田太郎（田中建設）※")
	require.NotNil(t, line)
	assert.Equal(t, "山田太郎", line.Name)
	assert.Equal(t, "田中建設", line.Contractor)

	// no parens: name only
	line = ParseWorkerLine("山田太郎")
	require.NotNil(t, line)
	assert.Equal(t, "山田太郎", line.Name)
	assert.Equal(t, "", line.Contractor)

	assert.Nil(t, ParseWorkerLine("  "))
	assert.Nil(t, ParseWorkerLine("※※"))
}

func TestSplitCellLines(t *testing.T) {
	lines := SplitCellLines("山田太郎（田中建設）\r\n\n 佐藤次郎（佐藤組） \n")
	assert.Equal(t, []string{"山田太郎（田中建設）", "佐藤次郎（佐藤組）"}, lines)

	assert.Empty(t, SplitCellLines("  \n "))
}
