// Package layout provides the geometric primitives shared by every
// layout stage: absolute and fractional lengths, points, sizes,
// alignment, and the frame/region types that layout stages produce and
// consume.
//
// This is a trimmed, paragraph-focused descendant of typst-layout's
// core types: the parts that deal with page-level shapes, strokes and
// images live with their own consumers and are not reproduced here.
package layout

import "math"

// Abs is an absolute length in typographic points (1/72 inch).
type Abs float64

// Common length constants.
const (
	Pt Abs = 1.0
	Mm Abs = 2.8346456692913
	Cm Abs = 28.346456692913
	In Abs = 72.0
)

// Inf returns a length representing unbounded available space.
func Inf() Abs { return Abs(math.Inf(1)) }

// IsFinite reports whether the length is neither infinite nor NaN.
func (a Abs) IsFinite() bool { return !math.IsInf(float64(a), 0) && !math.IsNaN(float64(a)) }

// IsZero reports whether the length is exactly zero.
func (a Abs) IsZero() bool { return a == 0 }

// Max returns the larger of two lengths.
func (a Abs) Max(b Abs) Abs {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two lengths.
func (a Abs) Min(b Abs) Abs {
	if a < b {
		return a
	}
	return b
}

// AbsVal returns the absolute value of the length.
func (a Abs) AbsVal() Abs {
	if a < 0 {
		return -a
	}
	return a
}

// ApproxEq reports whether a and b are equal within floating-point
// tolerance, used when comparing computed widths to avoid spurious
// overflow from rounding.
func (a Abs) ApproxEq(b Abs) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

// Fits reports whether a content width of size v fits inside the
// available length, within the same floating-point tolerance as
// ApproxEq. Negative or zero available width never "fits" anything
// but zero, matching spec's "zero or negative available width"
// boundary behavior.
func (a Abs) Fits(v Abs) bool {
	return v <= a || a.ApproxEq(v)
}

// Em is a length relative to a font size (1em == the font's size).
type Em float64

// At resolves the em value to an absolute length at the given font size.
func (e Em) At(size Abs) Abs { return Abs(float64(e) * float64(size)) }

// EmFromAbs expresses an absolute length as a multiple of a font size.
func EmFromAbs(abs Abs, size Abs) Em {
	if size == 0 {
		return 0
	}
	return Em(float64(abs) / float64(size))
}

// Fr is a fractional unit: "1fr" claims one fraction of whatever
// horizontal or vertical space remains after fixed-size content is
// placed.
type Fr float64

// Ratio is a 0..1-ish proportion of some whole (e.g. 50% == 0.5).
type Ratio float64

// Resolve scales a whole by the ratio.
func (r Ratio) Resolve(whole Abs) Abs { return Abs(float64(r) * float64(whole)) }

// Point is a 2D coordinate in layout space.
type Point struct {
	X, Y Abs
}

// Size is a pair of width/height dimensions.
type Size struct {
	Width, Height Abs
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Dir is a dominant text or stacking direction.
type Dir int

const (
	LTR Dir = iota
	RTL
)

// IsPositive reports whether the direction runs in increasing
// coordinate order (LTR).
func (d Dir) IsPositive() bool { return d == LTR }

// HAlign is horizontal alignment within a measured width.
type HAlign int

const (
	AlignStart HAlign = iota
	AlignCenter
	AlignEnd
)

// Frame is the fundamental output of every layout stage: a sized,
// positioned collection of items.
type Frame struct {
	Size     Size
	Baseline Abs
	Items    []PositionedItem
}

// NewFrame creates an empty frame of the given size.
func NewFrame(size Size) *Frame {
	return &Frame{Size: size}
}

// Push places an item at a position within the frame.
func (f *Frame) Push(pos Point, item FrameItem) {
	f.Items = append(f.Items, PositionedItem{Pos: pos, Item: item})
}

// PushFrame inlines a child frame's items at an offset, flattening the
// nesting (matching the teacher's Frame.PushFrame).
func (f *Frame) PushFrame(pos Point, child *Frame) {
	for _, it := range child.Items {
		f.Items = append(f.Items, PositionedItem{
			Pos:  Point{X: pos.X + it.Pos.X, Y: pos.Y + it.Pos.Y},
			Item: it.Item,
		})
	}
}

// PositionedItem pairs a frame item with its position.
type PositionedItem struct {
	Pos  Point
	Item FrameItem
}

// FrameItem is anything that can be placed inside a Frame.
type FrameItem interface {
	isFrameItem()
}

// TextItem is a FrameItem wrapping a shaped run of glyphs. The shaped run
// itself is stored opaquely (as the shaper's own type) so that this package
// never needs to import the shaping package — shaping is an external
// collaborator per the paragraph core's contract, and layout is the shared
// geometry package every layout stage (including the shaper's consumer)
// depends on, so the dependency can only run one way.
type TextItem struct {
	// Shaped is the shaper's run value (e.g. *shaping.Text); callers that
	// need to inspect glyphs type-assert it back to the concrete type they
	// shaped it with.
	Shaped any
	// Stretch is the extra advance (in points) added to each of the run's
	// justifiable glyphs when the line containing it was justified.
	Stretch Abs
}

func (*TextItem) isFrameItem() {}

// Region describes the available space for a single layout pass and
// whether content should expand to fill it.
type Region struct {
	Size   Size
	Expand [2]bool // [x, y]
}

// Regions is a sequence of regions a layout may flow into: the current
// one, a known backlog, and an optional infinitely repeatable last
// region (mirroring typst-layout's pagination model).
type Regions struct {
	Size    Size
	Full    Abs
	Backlog []Abs
	Last    *Abs
	Expand  [2]bool
}

// NewRegions creates a single-region sequence (no backlog, no repeat).
func NewRegions(size Size) *Regions {
	return &Regions{Size: size, Full: size.Height}
}

// CanBreak reports whether there is another region to advance into.
func (r *Regions) CanBreak() bool {
	return len(r.Backlog) > 0 || r.Last != nil
}

// Next advances to the next region, returning false if none remain.
func (r *Regions) Next() bool {
	if len(r.Backlog) > 0 {
		r.Size.Height = r.Backlog[0]
		r.Full = r.Backlog[0]
		r.Backlog = r.Backlog[1:]
		return true
	}
	if r.Last != nil {
		r.Size.Height = *r.Last
		r.Full = *r.Last
		return true
	}
	return false
}

// ExpandX reports whether the current region expands its width.
func (r *Regions) ExpandX() bool { return r.Expand[0] }
