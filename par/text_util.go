package par

import "unicode"

// trimTrailingWhitespace trims Unicode whitespace from the end of s,
// matching spec.md invariant 4's "Unicode trailing-space trimming".
func trimTrailingWhitespace(s string) string {
	runes := []rune(s)
	end := len(runes)
	for end > 0 && unicode.IsSpace(runes[end-1]) {
		end--
	}
	return string(runes[:end])
}

// trimToAlphabetic trims everything after the last alphabetic code point,
// matching spec.md §4.3's "right-trimmed to the last alphabetic code
// point" rule for locating a hyphenable word. Non-Latin scripts whose
// "alphabetic" semantics differ from Go's unicode.IsLetter may trim to an
// empty word — spec.md §9 documents this as an accepted, not a bug.
func trimToAlphabetic(s string) string {
	runes := []rune(s)
	end := len(runes)
	for end > 0 && !unicode.IsLetter(runes[end-1]) {
		end--
	}
	return string(runes[:end])
}
