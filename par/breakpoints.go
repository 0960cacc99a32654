package par

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/kestrelpub/parlayout/styles"
)

// Breakpoint is one line-break candidate: a byte offset in the flattened
// text at which a line may end, whether that offset is mandatory (forced
// by a hard line break or end of text), and whether committing there
// requires inserting a hyphen (spec.md §4.3).
type Breakpoint struct {
	Offset    int
	Mandatory bool
	Hyphen    bool
}

// hyphenableLangs lists the ISO-639 codes the built-in hyphenator
// recognizes. spec.md §4.3 only requires "a language tag matching a
// supported ISO-639 code"; no ecosystem hyphenation dictionary appears
// anywhere in the retrieved pack (see DESIGN.md), so this set is small and
// the hyphenation heuristic itself (hyphenateWord below) is grounded on
// the teacher's own simplified vowel-consonant heuristic in
// layout/inline/linebreak.go's hyphenateSegment/shouldHyphenate.
var hyphenableLangs = map[styles.Lang]bool{
	"en": true, "de": true, "fr": true, "es": true, "pt": true, "it": true, "nl": true,
}

// hyphenationSupported reports whether lang names a language the built-in
// hyphenator can segment.
func hyphenationSupported(lang styles.Lang) bool {
	return hyphenableLangs[styles.Lang(strings.ToLower(string(lang)))]
}

// Breakpoints produces the lazy sequence of break candidates over text
// described by spec.md §4.3: the base stream is Unicode line-break
// opportunities (UAX #14, via uniseg); when hyphenate is true and lang
// names a supported language, each break word (trimmed to its last
// alphabetic code point) additionally yields internal hyphen candidates.
// A hyphenated candidate never carries the mandatory flag, even if the
// underlying break was mandatory (spec.md §9's documented-but-unverified
// "mandatory && !hyphen" behavior, preserved here by construction: the
// base boundary is always re-emitted separately as non-hyphen).
func Breakpoints(text string, hyphenate bool, lang styles.Lang) []Breakpoint {
	if len(text) == 0 {
		return []Breakpoint{{Offset: 0, Mandatory: true}}
	}

	supported := hyphenate && hyphenationSupported(lang)

	var out []Breakpoint
	state := -1
	pos := 0
	remaining := text
	for len(remaining) > 0 {
		segment, rest, mustBreak, newState := uniseg.FirstLineSegmentInString(remaining, state)
		state = newState
		segStart := pos
		pos += len(segment)

		if supported {
			word := trimToAlphabetic(segment)
			if len(word) > 0 {
				for _, off := range hyphenateWord(word) {
					out = append(out, Breakpoint{Offset: segStart + off, Hyphen: true})
				}
			}
		}

		out = append(out, Breakpoint{Offset: pos, Mandatory: mustBreak})
		remaining = rest
	}
	return out
}

// minHyphenWord is the shortest word the heuristic will hyphenate,
// matching the teacher's own threshold.
const minHyphenWord = 4

// hyphenEdgeChars is how many characters must remain on each side of a
// hyphenation point, matching the teacher's shouldHyphenate bounds.
const hyphenEdgeChars = 2

// hyphenateWord returns the byte offsets (relative to word's start) of
// internal syllable boundaries using a vowel-to-consonant heuristic,
// grounded on the teacher's layout/inline/linebreak.go hyphenateSegment
// and shouldHyphenate: a real hyphenation dictionary is out of scope for
// this package's built-in fallback (spec.md treats hyphenation as
// parameterized by "a supported ISO-639 code", not a specific algorithm).
func hyphenateWord(word string) []int {
	runes := []rune(word)
	n := len(runes)
	if n < minHyphenWord {
		return nil
	}

	var offsets []int
	byteOffset := make([]int, n+1)
	for i, r := range runes {
		byteOffset[i+1] = byteOffset[i] + len(string(r))
	}

	for i := hyphenEdgeChars; i < n-hyphenEdgeChars; i++ {
		if isVowel(runes[i-1]) && !isVowel(runes[i]) {
			offsets = append(offsets, byteOffset[i])
		}
	}
	return offsets
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u',
		'á', 'é', 'í', 'ó', 'ú',
		'ä', 'ö', 'ü':
		return true
	default:
		return false
	}
}
