package intellisense

import "unicode/utf8"

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// prefixRunes returns the first n runes of s.
func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
