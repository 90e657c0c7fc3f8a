package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"things_future/words"
)

func TestWordSize(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"SOLAR", "text-[30px]"},
		{strings.Repeat("A", 10), "text-[30px]"},
		{strings.Repeat("A", 11), "text-[26px]"},
		{strings.Repeat("A", 16), "text-[22px]"},
		{strings.Repeat("A", 21), "text-[18px]"},
	}
	for _, tt := range tests {
		assert.True(t, strings.HasPrefix(WordSize(tt.word), tt.want), "%q -> %s", tt.word, WordSize(tt.word))
	}
}

func TestGetCardStyle(t *testing.T) {
	assert.Equal(t, "In a", GetCardStyle(words.Future).Lead)
	assert.Equal(t, "there is a", GetCardStyle(words.Thing).Lead)
	assert.Equal(t, "related to", GetCardStyle(words.Theme).Lead)
	assert.Equal(t, "text-gray-500", GetCardStyle(words.Category("x")).Accent)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 4, 17, 5, 0, 0, time.UTC)
	assert.Equal(t, "Mar 4, 2026 at 17:05", FormatTimestamp(ts))
}
