package par

import (
	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/shaping"
	"github.com/kestrelpub/parlayout/styles"
)

// ItemKind tags the variant of a ParItem (spec.md §3's tagged variant over
// Absolute, Fractional, Text, Frame).
type ItemKind int

const (
	ItemAbsolute ItemKind = iota
	ItemFractional
	ItemText
	ItemFrame
)

// ParItem is one item produced by the BiDi+shaping pre-pass. Each item has
// an associated flattened-text range in ParLayout.Ranges, aligned by index
// (invariant 2).
type ParItem struct {
	Kind       ItemKind
	Absolute   layout.Abs
	Fractional layout.Fr
	Text       *shaping.Text
	Frame      *layout.Frame
}

// Width returns the item's natural (unshrunk, unstretched) width.
func (it *ParItem) Width() layout.Abs {
	switch it.Kind {
	case ItemAbsolute:
		return it.Absolute
	case ItemFractional:
		return 0
	case ItemText:
		if it.Text == nil {
			return 0
		}
		return it.Text.Width()
	case ItemFrame:
		if it.Frame == nil {
			return 0
		}
		return it.Frame.Size.Width
	default:
		return 0
	}
}

// ParLayout is the BiDi+shaping pre-pass result: a vector of ParItems
// aligned with a vector of ranges, plus the resources later stages need
// (spec.md §4.2).
type ParLayout struct {
	Text     string
	Bidi     *BidiInfo
	Items    []ParItem
	Ranges   []Range
	Config   *styles.Styles
	ShapeCtx *shaping.Context
}

// Find returns the item index whose range contains offset, or -1 if none
// does. It uses a binary search on Ranges (spec.md §4.2's "total ordering
// that returns Less/Equal/Greater"), since Ranges partition the text in
// increasing order.
func (pl *ParLayout) Find(offset int) int {
	lo, hi := 0, len(pl.Ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := pl.Ranges[mid]
		switch {
		case offset < r.Start:
			hi = mid - 1
		case offset >= r.End:
			lo = mid + 1
		default:
			return mid
		}
	}
	if len(pl.Ranges) > 0 && offset == len(pl.Text) {
		return len(pl.Ranges) - 1
	}
	return -1
}

// NewParLayout runs the pre-pass described in spec.md §4.2: for each
// coalesced child, text children are split into one shaped item per
// maximal BiDi run, spacing resolves to an Absolute or Fractional item,
// and Node children are laid into a single-region, non-expanding box and
// contribute their first frame. Child-layout failures propagate unchanged
// as a *ChildLayoutError.
func NewParLayout(lctx *Context, node *ParNode, bidiInfo *BidiInfo, region *layout.Region, sty *styles.Styles, shapeCtx *shaping.Context) (*ParLayout, error) {
	children := node.Coalesced()
	ranges := node.Ranges()
	text := node.Text()

	pl := &ParLayout{Text: text, Bidi: bidiInfo, Config: sty, ShapeCtx: shapeCtx}

	for i, child := range children {
		rng := ranges[i]
		switch child.Kind {
		case ChildText:
			if err := appendTextItems(pl, child, rng, shapeCtx); err != nil {
				return nil, err
			}
		case ChildSpacing:
			appendSpacingItem(pl, child, region, rng)
		case ChildNode:
			if err := appendNodeItem(lctx, pl, child, region, rng); err != nil {
				return nil, err
			}
		}
	}

	return pl, nil
}

func appendTextItems(pl *ParLayout, child ParChild, rng Range, shapeCtx *shaping.Context) error {
	if rng.Len() == 0 {
		return nil
	}
	if pl.Bidi.ParagraphContaining(rng.Start) == nil {
		shaperContractViolation("no BiDi paragraph covers a text child's range")
		return nil
	}
	var lang shaping.Lang
	var region shaping.Region
	if child.Style != nil {
		lang = shaping.Lang(child.Style.Lang)
	}
	// A text child may span several BiDi paragraphs (it can contain a
	// paragraph separator); paragraphs are in text order, so walking each
	// one's runs clipped to rng yields every run in logical order.
	for i := range pl.Bidi.Paragraphs {
		for _, run := range pl.Bidi.Paragraphs[i].LogicalRunsIn(rng) {
			sub := pl.Text[run.Range.Start:run.Range.End]
			shaped := shaping.Shape(shapeCtx, run.Range.Start, sub, run.Dir, lang, region)
			if shaped == nil {
				shaperContractViolation("Shape returned nil for a non-empty run")
				return nil
			}
			pl.Items = append(pl.Items, ParItem{Kind: ItemText, Text: shaped})
			pl.Ranges = append(pl.Ranges, run.Range)
		}
	}
	return nil
}

func appendSpacingItem(pl *ParLayout, child ParChild, region *layout.Region, rng Range) {
	switch child.Spacing.Kind {
	case SpacingLinear:
		pl.Items = append(pl.Items, ParItem{Kind: ItemAbsolute, Absolute: child.Spacing.Amount})
	case SpacingFractional:
		pl.Items = append(pl.Items, ParItem{Kind: ItemFractional, Fractional: child.Spacing.Weight})
	}
	pl.Ranges = append(pl.Ranges, rng)
}

func appendNodeItem(lctx *Context, pl *ParLayout, child ParChild, region *layout.Region, rng Range) error {
	podSize := layout.Size{Width: region.Size.Width, Height: region.Size.Height}
	pod := layout.NewRegions(podSize)
	// Non-expanding: the child is sized to its own content, not stretched
	// to fill the pod (spec.md §4.2's "non-expanding constraints").
	frames, err := child.Node.Layout(lctx, pod, child.Style)
	if err != nil {
		return &ChildLayoutError{Err: err}
	}
	var frame *layout.Frame
	if len(frames) > 0 {
		frame = frames[0]
	} else {
		frame = layout.NewFrame(layout.Size{})
	}
	pl.Items = append(pl.Items, ParItem{Kind: ItemFrame, Frame: frame})
	pl.Ranges = append(pl.Ranges, rng)
	return nil
}
