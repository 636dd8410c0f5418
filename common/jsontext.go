package common

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// CompactJSON renders v as indented JSON capped at limit characters.
// Values that cannot be marshalled fall back to their fmt rendering.
func CompactJSON(v any, limit int) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Truncate(fmt.Sprintf("%v", v), limit)
	}
	return Truncate(string(data), limit)
}

// Truncate caps s at limit characters, marking the cut with an ellipsis.
// The limit counts runes, not bytes, so a multibyte character is never cut
// in half. A non-positive limit disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + " …"
}
