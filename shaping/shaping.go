// Package shaping wraps github.com/go-text/typesetting's HarfBuzz-style
// shaper behind the narrow contract the paragraph layout core depends
// on: shape a direction-consistent run of text into positioned glyphs,
// reshape a subrange, and append a hyphen glyph at a line break.
//
// The paragraph core (package par) treats shaping as an external
// collaborator — it never looks inside a ShapedText beyond the fields
// and methods exposed here.
package shaping

import (
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/kestrelpub/parlayout/font"
	"github.com/kestrelpub/parlayout/layout"
)

// Abs and Em are re-exported so callers don't need to import layout
// solely to name a width.
type (
	Abs = layout.Abs
	Em  = layout.Em
)

// Dir is the direction a run of shaped text runs in.
type Dir = layout.Dir

// FontFeature is a re-export of the underlying shaper's OpenType feature
// setting, so callers configuring a Context don't need a second import.
type FontFeature = shaping.FontFeature

const (
	LTR = layout.LTR
	RTL = layout.RTL
)

// Lang is an ISO-639 language tag (lowercase, e.g. "en", "zh").
type Lang string

// Region is an ISO-3166 region/territory tag (e.g. "TW", "HK").
type Region string

// CJKPunctStyle selects which regional punctuation-width convention
// governs a run's CJK punctuation glyphs: mainland Chinese (GB),
// Taiwanese/Hong Kong (CNS), or Japanese (JIS). Each convention
// disagrees on which punctuation marks are left-, right-, or
// center-aligned within their glyph cell, which in turn changes their
// stretch/shrink adjustability.
type CJKPunctStyle int

const (
	CJKPunctStyleGB CJKPunctStyle = iota
	CJKPunctStyleCNS
	CJKPunctStyleJIS
)

// getCJKPunctStyle picks a punctuation convention from a language/region
// pair, defaulting to GB for unrecognized or missing regions.
func getCJKPunctStyle(lang Lang, region Region) CJKPunctStyle {
	switch lang {
	case "ja":
		return CJKPunctStyleJIS
	case "zh":
		switch region {
		case "TW", "HK", "MO":
			return CJKPunctStyleCNS
		}
		return CJKPunctStyleGB
	default:
		return CJKPunctStyleGB
	}
}

// Range is a byte range within a larger string.
type Range struct{ Start, End int }

// Len returns the number of bytes the range covers.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether i falls inside [Start, End).
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Adjustability holds how much a glyph may stretch or shrink on each
// side, in em units, for justification.
type Adjustability struct {
	Stretch [2]Em
	Shrink  [2]Em
}

// Glyph is a single shaped glyph with its positioning and
// justification metadata.
type Glyph struct {
	Face          *font.Font
	GlyphID       uint16
	XAdvance      Em
	XOffset       Em
	YOffset       Em
	Size          Abs
	Adjustability Adjustability
	Range         Range
	Char          rune
	Script        language.Script
	Justifiable   bool
}

// IsSpace reports whether the glyph represents a space character.
func (g *Glyph) IsSpace() bool { return isSpace(g.Char) }

// IsCJK reports whether the glyph is from a CJK script.
func (g *Glyph) IsCJK() bool { return isCJScript(g.Char, g.Script) }

// Stretchability returns the glyph's total stretch allowance.
func (g *Glyph) Stretchability() [2]Em { return g.Adjustability.Stretch }

// Shrinkability returns the glyph's total shrink allowance.
func (g *Glyph) Shrinkability() [2]Em { return g.Adjustability.Shrink }

// ShrinkRight reduces the glyph's advance by amount, also reducing its
// remaining right shrinkability — used when two adjacent CJK
// punctuation glyphs compress into each other.
func (g *Glyph) ShrinkRight(amount Em) {
	g.XAdvance -= amount
	g.Adjustability.Shrink[1] -= amount
}

// ShrinkLeft reduces the glyph's advance and offset by amount from the
// left side.
func (g *Glyph) ShrinkLeft(amount Em) {
	g.XOffset -= amount
	g.XAdvance -= amount
	g.Adjustability.Shrink[0] -= amount
}

// Text is a shaped, direction-consistent run of glyphs produced by
// Shape. It satisfies the ShapedText contract from spec.md §3: a
// source range, direction, measured size via glyph advances, and the
// Reshape/PushHyphen operations.
type Text struct {
	Base    int // byte offset of this run within the paragraph's flattened text
	Source  string
	Dir     Dir
	Lang    Lang
	Region  Region
	Variant font.Variant
	Glyphs  []Glyph
}

// Width sums the glyphs' advances.
func (t *Text) Width() Abs {
	var w Abs
	for _, g := range t.Glyphs {
		w += g.XAdvance.At(g.Size)
	}
	return w
}

// Height estimates the run's line height from its largest glyph.
func (t *Text) Height() Abs {
	var h Abs
	for _, g := range t.Glyphs {
		h = h.Max(g.Size * 1.2)
	}
	return h
}

// Baseline estimates the run's baseline offset from the top.
func (t *Text) Baseline() Abs { return t.Height() * 0.8 }

// Justifiables counts glyphs eligible for extra justification space.
func (t *Text) Justifiables() int {
	n := 0
	for _, g := range t.Glyphs {
		if g.Justifiable {
			n++
		}
	}
	return n
}

// CJKJustifiableAtLast reports whether the run's last glyph is CJK or
// CJK punctuation, in which case it should not receive extra
// justification space (spec.md §4.1's Line.Justifiables rule).
func (t *Text) CJKJustifiableAtLast() bool {
	if len(t.Glyphs) == 0 {
		return false
	}
	last := &t.Glyphs[len(t.Glyphs)-1]
	return last.IsCJK() || isCJKPunctuation(last)
}

// Stretchability sums every glyph's stretch allowance.
func (t *Text) Stretchability() Abs {
	var s Abs
	for _, g := range t.Glyphs {
		st := g.Stretchability()
		s += (st[0] + st[1]).At(g.Size)
	}
	return s
}

// Shrinkability sums every glyph's shrink allowance.
func (t *Text) Shrinkability() Abs {
	var s Abs
	for _, g := range t.Glyphs {
		sh := g.Shrinkability()
		s += (sh[0] + sh[1]).At(g.Size)
	}
	return s
}

// Empty returns a zero-glyph Text carrying the same metadata —
// used for the "shape the empty string" boundary behavior
// (spec.md §7's empty-paragraph rule).
func (t *Text) Empty() *Text {
	return &Text{Base: t.Base, Source: "", Dir: t.Dir, Lang: t.Lang, Region: t.Region, Variant: t.Variant}
}

// Reshape re-shapes the subrange [start,end) of the run (byte offsets
// relative to Base), reusing the already-chosen font. Per spec.md §3
// this is how a line's edge items are trimmed without re-running BiDi
// or font selection.
func (t *Text) Reshape(ctx *Context, start, end int) *Text {
	if start >= end {
		return t.Empty()
	}
	sub := t.Source[start:end]
	out := Shape(ctx, t.Base+start, sub, t.Dir, t.Lang, t.Region)
	out.Variant = t.Variant
	return out
}

// PushHyphen appends a hyphen glyph in the run's own font and
// direction, satisfying spec.md invariant 5 (a hyphenated line's last
// text item carries exactly one trailing hyphen glyph).
func (t *Text) PushHyphen(ctx *Context) {
	hyphenRun := Shape(ctx, 0, HyphenStr, t.Dir, t.Lang, t.Region)
	if len(hyphenRun.Glyphs) == 0 {
		return
	}
	g := hyphenRun.Glyphs[len(hyphenRun.Glyphs)-1]
	if t.Dir.IsPositive() {
		g.Range = Range{Start: t.Base + len(t.Source), End: t.Base + len(t.Source) + 1}
		t.Glyphs = append(t.Glyphs, g)
	} else {
		g.Range = Range{Start: t.Base - 1, End: t.Base}
		t.Glyphs = append([]Glyph{g}, t.Glyphs...)
	}
}

// Special characters the breaker and shaper both care about.
const (
	SHY       = '­'
	HyphenStr = "-"
)

// Context holds the shaping resources (font book, size, variant,
// feature list) used across one paragraph's worth of Shape calls. It
// is not safe for concurrent use without external synchronization,
// matching spec.md §5's "FontStore is borrowed mutably ... exclusive
// access is the caller's responsibility."
type Context struct {
	Book     *font.FontBook
	Families []string
	Size     Abs
	Variant  font.Variant
	Features []shaping.FontFeature
	Fallback bool
	Spacing  float64 // word-spacing ratio, 1.0 = 100%

	shaper shaping.HarfbuzzShaper
	mu     sync.Mutex
}

// NewContext creates a shaping context for one paragraph.
func NewContext(book *font.FontBook, families []string, size Abs) *Context {
	return &Context{
		Book:     book,
		Families: families,
		Size:     size,
		Variant:  font.NormalVariant(),
		Fallback: true,
		Spacing:  1.0,
	}
}

// Shape shapes text in the given direction/language, selecting a font
// from the context's book. Shaping is total: text that cannot be
// resolved to a face still produces glyphs (tofu), matching spec.md
// §4.2's "shaping is assumed total" contract.
func Shape(ctx *Context, base int, text string, dir Dir, lang Lang, region Region) *Text {
	if len(text) == 0 {
		return &Text{Base: base, Source: text, Dir: dir, Lang: lang, Region: region, Variant: ctx.Variant}
	}

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	face := ctx.Book.Select(ctx.Families, ctx.Variant)
	if face == nil {
		return &Text{
			Base: base, Source: text, Dir: dir, Lang: lang, Region: region, Variant: ctx.Variant,
			Glyphs: shapeTofu(base, text, dir, ctx.Size),
		}
	}

	runes := []rune(text)
	direction := di.DirectionLTR
	if dir == RTL {
		direction = di.DirectionRTL
	}

	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Face:         face.Face(),
		Size:         fixed.Int26_6(float64(ctx.Size) * 64),
		Direction:    direction,
		FontFeatures: ctx.Features,
	}
	output := ctx.shaper.Shape(input)

	glyphs := convertGlyphs(base, runes, output.Glyphs, face, ctx.Size)
	applySpacing(glyphs, ctx.Spacing)
	style := getCJKPunctStyle(lang, region)
	computeAdjustability(glyphs, style)

	return &Text{Base: base, Source: text, Dir: dir, Lang: lang, Region: region, Variant: ctx.Variant, Glyphs: glyphs}
}

func convertGlyphs(base int, runes []rune, out []shaping.Glyph, face *font.Font, size Abs) []Glyph {
	glyphs := make([]Glyph, 0, len(out))
	byteOffset, runeIdx := 0, 0
	for i, g := range out {
		cluster := g.ClusterIndex
		for runeIdx < cluster && runeIdx < len(runes) {
			byteOffset += len(string(runes[runeIdx]))
			runeIdx++
		}
		start := base + byteOffset

		endRune := len(runes)
		if i+1 < len(out) {
			endRune = out[i+1].ClusterIndex
		}
		endByte := byteOffset
		for r := cluster; r < endRune && r < len(runes); r++ {
			endByte += len(string(runes[r]))
		}

		var c rune
		if cluster < len(runes) {
			c = runes[cluster]
		}
		script := getScript(c)
		// The shaper reports 26.6 fixed-point values (1/64 pt).
		xAdv := Em(float64(g.XAdvance) / 64 / float64(size))

		glyphs = append(glyphs, Glyph{
			Face:     face,
			GlyphID:  uint16(g.GlyphID),
			XAdvance: xAdv,
			XOffset:  Em(float64(g.XOffset) / 64 / float64(size)),
			YOffset:  Em(float64(g.YOffset) / 64 / float64(size)),
			Size:     size,
			Range:    Range{Start: start, End: base + endByte},
			Char:     c,
			Script:   script,
		})
	}
	return glyphs
}

func shapeTofu(base int, text string, dir Dir, size Abs) []Glyph {
	glyphs := make([]Glyph, 0, len(text))
	add := func(byteIdx int, c rune) {
		glyphs = append(glyphs, Glyph{
			XAdvance:    0.5,
			Size:        size,
			Range:       Range{Start: base + byteIdx, End: base + byteIdx + len(string(c))},
			Char:        c,
			Script:      getScript(c),
			Justifiable: isSpace(c),
		})
	}
	if dir.IsPositive() {
		idx := 0
		for _, c := range text {
			add(idx, c)
			idx += len(string(c))
		}
	} else {
		runes := []rune(text)
		idx := len(text)
		for i := len(runes) - 1; i >= 0; i-- {
			idx -= len(string(runes[i]))
			add(idx, runes[i])
		}
	}
	return glyphs
}

func applySpacing(glyphs []Glyph, spacing float64) {
	for i := range glyphs {
		if glyphs[i].IsSpace() {
			glyphs[i].XAdvance = Em(float64(glyphs[i].XAdvance) * spacing)
		}
	}
}

// computeAdjustability fills in each glyph's stretch/shrink allowance
// for justification, including CJK punctuation compression, adapted
// from the original implementation's shape.rs adjustability pass
// (spec.md §4's supplemented "CJK-aware justification groundwork").
func computeAdjustability(glyphs []Glyph, style CJKPunctStyle) {
	for i := range glyphs {
		g := &glyphs[i]
		atClusterEnd := i+1 >= len(glyphs) || g.Range.Start != glyphs[i+1].Range.Start
		g.Adjustability = baseAdjustability(g, style, atClusterEnd)
		g.Justifiable = isJustifiable(g.Char, g.Script, style)
	}

	for i := 0; i < len(glyphs)-1; i++ {
		g, next := &glyphs[i], &glyphs[i+1]
		if !isCJKPunctuation(g) || !isCJKPunctuation(next) {
			continue
		}
		if isCJKPunctuation(g) && style == CJKPunctStyleCNS {
			continue
		}
		half := g.XAdvance / 2
		totalShrink := g.Shrinkability()[1] + next.Shrinkability()[0]
		if totalShrink < half {
			continue
		}
		left := g.Shrinkability()[1]
		if left > half {
			left = half
		}
		g.ShrinkRight(left)
		next.ShrinkLeft(half - left)
	}
}

func baseAdjustability(g *Glyph, style CJKPunctStyle, atClusterEnd bool) Adjustability {
	width := g.XAdvance
	limited := func(v Em) Em {
		if max := width * 0.75; v > max {
			return max
		}
		return v
	}

	switch {
	case g.IsSpace():
		return Adjustability{Stretch: [2]Em{0, width * 0.5}, Shrink: [2]Em{0, limited(width * 0.33)}}
	case isCJKLeftAligned(g.Char, width, [2]Em{}, style):
		return Adjustability{Shrink: [2]Em{0, width / 2}}
	case isCJKRightAligned(g.Char, width, [2]Em{}):
		return Adjustability{Shrink: [2]Em{width / 2, 0}}
	case isCJKCenterAligned(g.Char, style):
		return Adjustability{Shrink: [2]Em{width / 4, width / 4}}
	case atClusterEnd:
		return Adjustability{Stretch: [2]Em{0, width * 0.02}, Shrink: [2]Em{0, limited(width * 0.02)}}
	default:
		return Adjustability{}
	}
}

func isSpace(c rune) bool { return c == ' ' || c == ' ' || c == '　' }

func isCJScript(c rune, script language.Script) bool {
	switch script {
	case language.Hiragana, language.Katakana, language.Han:
		return true
	}
	return c == 'ー'
}

func isCJKPunctuation(g *Glyph) bool {
	style := CJKPunctStyleGB
	return isCJKLeftAligned(g.Char, g.XAdvance, g.Stretchability(), style) ||
		isCJKRightAligned(g.Char, g.XAdvance, g.Stretchability()) ||
		isCJKCenterAligned(g.Char, style)
}

func isCJKLeftAligned(c rune, xAdvance Em, stretch [2]Em, style CJKPunctStyle) bool {
	if (c == '”' || c == '’') && xAdvance+stretch[1] == 1 {
		return true
	}
	if (style == CJKPunctStyleGB || style == CJKPunctStyleJIS) &&
		(c == '，' || c == '。' || c == '．' || c == '、' || c == '：' || c == '；') {
		return true
	}
	if style == CJKPunctStyleGB && (c == '？' || c == '！') {
		return true
	}
	switch c {
	case '》', '）', '』', '」', '】', '〗', '〕', '〉', '］', '｝':
		return true
	}
	return false
}

func isCJKRightAligned(c rune, xAdvance Em, stretch [2]Em) bool {
	if (c == '“' || c == '‘') && xAdvance+stretch[0] == 1 {
		return true
	}
	switch c {
	case '《', '（', '『', '「', '【', '〖', '〔', '〈', '［', '｛':
		return true
	}
	return false
}

func isCJKCenterAligned(c rune, style CJKPunctStyle) bool {
	if style == CJKPunctStyleCNS &&
		(c == '，' || c == '。' || c == '．' || c == '、' || c == '：' || c == '；') {
		return true
	}
	return c == '・' || c == '·'
}

func isJustifiable(c rune, script language.Script, style CJKPunctStyle) bool {
	return isSpace(c) ||
		isCJScript(c, script) ||
		isCJKLeftAligned(c, 0, [2]Em{}, style) ||
		isCJKRightAligned(c, 0, [2]Em{}) ||
		isCJKCenterAligned(c, style)
}

func getScript(c rune) language.Script {
	switch {
	case unicode.In(c, unicode.Han):
		return language.Han
	case unicode.In(c, unicode.Hiragana):
		return language.Hiragana
	case unicode.In(c, unicode.Katakana):
		return language.Katakana
	case unicode.In(c, unicode.Latin):
		return language.Latin
	case unicode.In(c, unicode.Greek):
		return language.Greek
	case unicode.In(c, unicode.Cyrillic):
		return language.Cyrillic
	case unicode.In(c, unicode.Arabic):
		return language.Arabic
	case unicode.In(c, unicode.Hebrew):
		return language.Hebrew
	default:
		return language.Common
	}
}
