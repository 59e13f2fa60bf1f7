package keymap

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		r   rune
		key int
	}{
		{'1', 0x1}, {'4', 0xC}, {'q', 0x4}, {'R', 0xD},
		{'a', 0x7}, {'F', 0xE}, {'z', 0xA}, {'x', 0x0}, {'V', 0xF},
	}

	for _, tt := range tests {
		key, ok := Key(tt.r)
		assert.True(t, ok, "rune not mapped")
		assert.Equal(t, tt.key, key)
	}

	_, ok := Key('p')
	assert.False(t, ok)
}

func TestLayoutIsComplete(t *testing.T) {
	seen := map[rune]bool{}
	for key := range Layout {
		r := Rune(key)
		assert.False(t, seen[r], "rune used twice")
		seen[r] = true

		back, ok := Key(r)
		assert.True(t, ok)
		assert.Equal(t, key, back)
	}
	assert.Equal(t, rune(0), Rune(16))
	assert.Equal(t, rune(0), Rune(-1))
}
