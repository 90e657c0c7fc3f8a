package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"future", Future, true},
		{" Thing ", Thing, true},
		{"THEME", Theme, true},
		{"planet", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestFromLists(t *testing.T) {
	c := FromLists(map[string][]string{
		"future": {" solar", "", "Wind"},
		"Thing":  {"kite"},
		"other":  {"ignored"},
	})

	assert.Equal(t, []string{"SOLAR", "WIND"}, c.Words(Future))
	assert.Equal(t, []string{"KITE"}, c.Words(Thing))
	assert.Empty(t, c.Words(Theme))
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, map[Category]int{Future: 2, Thing: 1, Theme: 0}, c.Counts())
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Catalog{Future: {"A"}, Thing: {"B"}, Theme: {"C"}}
	cp := orig.Clone()
	cp[Future][0] = "Z"

	assert.Equal(t, "A", orig[Future][0])
	assert.True(t, orig.Contains(Thing, "B"))
	assert.False(t, orig.Contains(Thing, "Z"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Energy Future", Future.Label())
	assert.Equal(t, "Solution", Thing.Label())
	assert.Equal(t, "Focus Area", Theme.Label())
	assert.Equal(t, "planet", Category("planet").Label())
}
