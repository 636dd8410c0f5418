package common

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCompactJSON(t *testing.T) {
	s := CompactJSON(map[string]any{"other": 1}, 2000)
	assert.Contains(t, s, `"other": 1`)

	long := CompactJSON(map[string]any{"k": strings.Repeat("x", 5000)}, 100)
	assert.Len(t, long, 100+len(" …"))
	assert.True(t, strings.HasSuffix(long, " …"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab …", Truncate("abc", 2))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestTruncate_NeverSplitsRunes(t *testing.T) {
	// A multibyte rune straddling the cap must survive or go entirely.
	s := strings.Repeat("a", 1999) + "é"
	assert.Equal(t, s, Truncate(s, 2000))

	cut := Truncate(strings.Repeat("é", 2001), 2000)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, strings.Repeat("é", 2000)+" …", cut)
}
