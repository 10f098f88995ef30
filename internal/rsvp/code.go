package rsvp

import (
	"strings"
	"unicode"
)

// NormalizeCode uppercases the code and drops every whitespace rune,
// including whitespace between characters.
func NormalizeCode(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, raw)
}
