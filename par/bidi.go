package par

import (
	"sort"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"

	"github.com/kestrelpub/parlayout/layout"
)

// BaseDirection is the paragraph-level base direction a host supplies to
// bidi analysis: an explicit LTR/RTL, or auto-detection from the first
// strong directional character (spec.md §3's "BiDi info").
type BaseDirection int

const (
	DirAuto BaseDirection = iota
	DirLTR
	DirRTL
)

// bidiRun is a maximal contiguous range of bytes sharing one direction —
// spec.md's "BiDi run". x/text/unicode/bidi surfaces these via
// Paragraph.Order(), which yields them in *visual* order; we keep that
// order for the visual-reordering step (spec.md §4.5) and re-derive
// logical order by sorting on Range.Start where the shaping pre-pass
// (spec.md §4.2) needs it.
type bidiRun struct {
	Range Range
	Dir   layout.Dir
}

// BidiParagraph is one paragraph of the BidiInfo's decomposition: a byte
// range plus its runs in visual order.
type BidiParagraph struct {
	Range Range
	runs  []bidiRun // visual order, as returned by bidi.Paragraph.Order()
}

// LogicalRunsIn returns the paragraph's runs clipped to rng, in logical
// (increasing byte offset) order — used by ParLayout's pre-pass to walk
// "contiguous groups of equal BiDi level" inside a text child's range
// (spec.md §4.2).
func (bp *BidiParagraph) LogicalRunsIn(rng Range) []bidiRun {
	out := clipRuns(bp.runs, rng)
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
	return out
}

// VisualRuns returns the paragraph's runs clipped to rng, in visual
// (display) order — spec.md §4.5's "visual runs restricted to the line
// range".
func (bp *BidiParagraph) VisualRuns(rng Range) []bidiRun {
	return clipRuns(bp.runs, rng)
}

func clipRuns(runs []bidiRun, rng Range) []bidiRun {
	var out []bidiRun
	for _, r := range runs {
		s, e := r.Range.Start, r.Range.End
		if s < rng.Start {
			s = rng.Start
		}
		if e > rng.End {
			e = rng.End
		}
		if s < e {
			out = append(out, bidiRun{Range: Range{Start: s, End: e}, Dir: r.Dir})
		}
	}
	return out
}

// BidiInfo is the result of the Unicode Bidirectional Algorithm on the
// flattened text with a base direction: a list of paragraphs, each with a
// byte range and, on demand, a visual-run decomposition for any subrange
// (spec.md §3).
type BidiInfo struct {
	Text       string
	Paragraphs []BidiParagraph
}

// AnalyzeBidi runs the Unicode Bidirectional Algorithm over text, splitting
// it into paragraphs at Unicode paragraph-separator characters (BiDi class
// B) and analyzing each independently.
func AnalyzeBidi(text string, base BaseDirection) *BidiInfo {
	info := &BidiInfo{Text: text}
	start := 0
	for {
		end := nextParagraphBreak(text, start)
		info.Paragraphs = append(info.Paragraphs, analyzeParagraph(text, start, end, base))
		if end >= len(text) {
			break
		}
		start = end
	}
	return info
}

// ParagraphContaining returns the paragraph whose range contains offset,
// or the last paragraph if offset is exactly at the end of the text.
func (b *BidiInfo) ParagraphContaining(offset int) *BidiParagraph {
	for i := range b.Paragraphs {
		if b.Paragraphs[i].Range.Contains(offset) {
			return &b.Paragraphs[i]
		}
	}
	if len(b.Paragraphs) > 0 && offset == len(b.Text) {
		return &b.Paragraphs[len(b.Paragraphs)-1]
	}
	if len(b.Paragraphs) > 0 {
		return &b.Paragraphs[0]
	}
	return nil
}

func nextParagraphBreak(text string, start int) int {
	for i := start; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if props, _ := bidi.LookupRune(r); props.Class() == bidi.B {
			return i
		}
	}
	return len(text)
}

func analyzeParagraph(text string, start, end int, base BaseDirection) BidiParagraph {
	sub := text[start:end]
	fallback := BidiParagraph{Range: Range{Start: start, End: end}, runs: []bidiRun{{Range: Range{Start: start, End: end}, Dir: layout.LTR}}}
	if len(sub) == 0 {
		return fallback
	}

	var p bidi.Paragraph
	var opts []bidi.Option
	switch base {
	case DirLTR:
		opts = append(opts, bidi.DefaultDirection(bidi.LeftToRight))
	case DirRTL:
		opts = append(opts, bidi.DefaultDirection(bidi.RightToLeft))
	}
	if err := p.SetString(sub, opts...); err != nil {
		return fallback
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return fallback
	}

	runs := make([]bidiRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		s, e := run.Pos()
		dir := layout.LTR
		if run.Direction() == bidi.RightToLeft {
			dir = layout.RTL
		}
		runs = append(runs, bidiRun{Range: Range{Start: start + s, End: start + e}, Dir: dir})
	}
	return BidiParagraph{Range: Range{Start: start, End: end}, runs: runs}
}
