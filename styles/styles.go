// Package styles resolves the style keys the paragraph layout core consumes
// (spec.md §6): language, direction, alignment, justification, hyphenation,
// leading, inter-paragraph spacing, and first-line indent. It stands in for
// the host document engine's full styling cascade — this package only
// implements the handful of keys the par package actually reads, resolved
// once per paragraph into a plain value the core can carry around without
// touching the cascade again.
package styles

import (
	"fmt"
	"strings"

	"github.com/kestrelpub/parlayout/layout"
)

// Lang is a lowercase ISO-639 language tag (e.g. "en", "he", "zh").
type Lang string

// Hyphenate selects the HYPHENATE style: auto (= follow Justify), or an
// explicit on/off override.
type Hyphenate int

const (
	HyphenateAuto Hyphenate = iota
	HyphenateOn
	HyphenateOff
)

// rtl lists the ISO-639 codes spec.md §6 calls out as RTL by default.
var rtl = map[Lang]bool{
	"ar": true, "dv": true, "fa": true, "he": true, "ks": true,
	"pa": true, "ps": true, "sd": true, "ug": true, "ur": true, "yi": true,
}

// IsRTL reports whether a language tag is one of spec.md's recognized RTL
// codes. Matching is case-insensitive.
func IsRTL(l Lang) bool {
	return rtl[Lang(strings.ToLower(string(l)))]
}

// Styles holds one paragraph's worth of resolved style values.
type Styles struct {
	Lang      Lang // "" means unset
	HasDir    bool
	Dir       layout.Dir
	HasAlign  bool
	Align     layout.HAlign
	Justify   bool
	Hyphenate Hyphenate
	Leading   layout.Em
	Spacing   layout.Em // inter-paragraph spacing; consumed by the surrounding collaborator
	Indent    layout.Abs
	FontSize  layout.Abs

	// WordSpacing is a multiplier on space-glyph advance widths (1.0 =
	// 100%), the supplemented "word-spacing ratio" knob from
	// original_source/src/library/text/par.rs honored by the shaping
	// adapter, not by par itself.
	WordSpacing float64

	// Fallback enables font fallback in the shaping adapter.
	Fallback bool
}

// Default returns a Styles value with spec.md's documented defaults:
// ALIGN = dir.start, JUSTIFY = false, HYPHENATE = auto.
func Default(fontSize layout.Abs) *Styles {
	return &Styles{
		FontSize:    fontSize,
		Leading:     0.65,
		WordSpacing: 1.0,
		Fallback:    true,
	}
}

// ResolvedDir returns the paragraph's dominant direction: an explicit DIR
// overrides a LANG-derived one, which in turn overrides the LTR default.
func (s *Styles) ResolvedDir() layout.Dir {
	if s.HasDir {
		return s.Dir
	}
	if s.Lang != "" && IsRTL(s.Lang) {
		return layout.RTL
	}
	return layout.LTR
}

// ResolvedAlign returns the alignment, defaulting to the resolved
// direction's start edge.
func (s *Styles) ResolvedAlign() layout.HAlign {
	if s.HasAlign {
		return s.Align
	}
	if s.ResolvedDir() == layout.RTL {
		return layout.AlignEnd
	}
	return layout.AlignStart
}

// ResolvedHyphenate returns whether hyphenation is active: auto follows
// Justify, matching spec.md §6's "HYPHENATE: auto = JUSTIFY".
func (s *Styles) ResolvedHyphenate() bool {
	switch s.Hyphenate {
	case HyphenateOn:
		return true
	case HyphenateOff:
		return false
	default:
		return s.Justify
	}
}

// ResolvedLeading resolves LEADING against the font size.
func (s *Styles) ResolvedLeading() layout.Abs {
	return s.Leading.At(s.FontSize)
}

// Same reports whether two style overlays are equivalent for the purpose
// of ParNode's text-child merge rule (spec.md §4.1): adjacent Text children
// coalesce only if their style overlays match exactly.
func (s *Styles) Same(other *Styles) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return *s == *other
}

// Validate checks the "must be horizontal" constraints spec.md §6 assigns
// to the surrounding style-parsing collaborator rather than the core
// itself; par never calls this, but a caller assembling Styles can.
func (s *Styles) Validate() error {
	if s.HasAlign && s.Align != layout.AlignStart && s.Align != layout.AlignCenter && s.Align != layout.AlignEnd {
		return fmt.Errorf("styles: ALIGN must be horizontal")
	}
	if s.HasDir && s.Dir != layout.LTR && s.Dir != layout.RTL {
		return fmt.Errorf("styles: DIR must be horizontal")
	}
	return nil
}
