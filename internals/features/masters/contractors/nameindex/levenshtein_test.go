package nameindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance("田中建設", "田中建設"))
	assert.Equal(t, 1, Distance("田中建設", "田中建築"))
	assert.Equal(t, 4, Distance("", "田中建設"))
	assert.Equal(t, 3, Distance("abc", ""))
	assert.Equal(t, 3, Distance("kitten", "sitting"))
}

func TestSuggest(t *testing.T) {
	candidates := []string{"田中建設", "佐藤組", "田中建築", "山本工業", "田中組"}

	got := Suggest("田中建設", candidates)
	assert.Len(t, got, 3)
	assert.Equal(t, "田中建設", got[0])
	assert.Equal(t, "田中建築", got[1])

	// comparison runs over normalized forms
	got = Suggest("田中　建設", candidates)
	assert.Equal(t, "田中建設", got[0])

	// fewer candidates than the cap
	got = Suggest("田中", []string{"佐藤組"})
	assert.Equal(t, []string{"佐藤組"}, got)

	assert.Empty(t, Suggest("田中", nil))
}

func TestSuggestTieOrder(t *testing.T) {
	// equal scores keep candidate order
	got := Suggest("ab", []string{"ax", "ay", "az", "aw"})
	assert.Equal(t, []string{"ax", "ay", "az"}, got)
}
