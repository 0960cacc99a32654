package par

import (
	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/styles"
)

// ChildKind tags the variant of a ParChild (spec.md §3's tagged variant:
// Text, Spacing, Node).
type ChildKind int

const (
	ChildText ChildKind = iota
	ChildSpacing
	ChildNode
)

// SpacingKind distinguishes linear (absolute) from fractional spacing.
type SpacingKind int

const (
	SpacingLinear SpacingKind = iota
	SpacingFractional
)

// Spacing is the payload of a ChildSpacing child.
type Spacing struct {
	Kind   SpacingKind
	Amount layout.Abs // for SpacingLinear; used as given, nothing is resolved against the region's width
	Weight layout.Fr  // for SpacingFractional
}

// InlineChild is an already-layouted inline node: a child that knows how
// to lay itself into a frame given regions (spec.md §1's "inline node
// layout" external collaborator).
type InlineChild interface {
	Layout(ctx *Context, regions *layout.Regions, sty *styles.Styles) ([]*layout.Frame, error)
}

// ParChild is one element of a ParNode's ordered children, paired with a
// style overlay.
type ParChild struct {
	Kind    ChildKind
	Text    string
	Spacing Spacing
	Node    InlineChild
	Style   *styles.Styles
}

// TextChild constructs a Text child.
func TextChild(text string, sty *styles.Styles) ParChild {
	return ParChild{Kind: ChildText, Text: text, Style: sty}
}

// LinearSpacingChild constructs an absolute Spacing child.
func LinearSpacingChild(amount layout.Abs, sty *styles.Styles) ParChild {
	return ParChild{Kind: ChildSpacing, Spacing: Spacing{Kind: SpacingLinear, Amount: amount}, Style: sty}
}

// FractionalSpacingChild constructs a fractional Spacing child.
func FractionalSpacingChild(weight layout.Fr, sty *styles.Styles) ParChild {
	return ParChild{Kind: ChildSpacing, Spacing: Spacing{Kind: SpacingFractional, Weight: weight}, Style: sty}
}

// NodeChild constructs a Node child wrapping a pre-layouted inline box.
func NodeChild(n InlineChild, sty *styles.Styles) ParChild {
	return ParChild{Kind: ChildNode, Node: n, Style: sty}
}

// ParNode holds the ordered, styled inline children of one paragraph.
// Children are immutable for the lifetime of a layout.
type ParNode struct {
	Children []ParChild
}

// NewParNode creates a ParNode from an ordered list of children.
func NewParNode(children ...ParChild) *ParNode {
	return &ParNode{Children: children}
}

// contribution returns the flattened-text bytes a child contributes: text
// children contribute their own bytes, spacing contributes a single space
// (0x20), and inline-node children contribute U+FFFC (OBJECT REPLACEMENT
// CHARACTER) — spec.md §3's "Flattened text" rule.
func contribution(c ParChild) string {
	switch c.Kind {
	case ChildText:
		return c.Text
	case ChildSpacing:
		return " "
	case ChildNode:
		return "￼"
	default:
		return ""
	}
}

// Coalesced returns the children after merging adjacent Text children with
// identical style overlays (spec.md §4.1's merge rule: "two text children
// merge iff both are Text" with the same style).
func (p *ParNode) Coalesced() []ParChild {
	if len(p.Children) == 0 {
		return nil
	}
	out := make([]ParChild, 0, len(p.Children))
	out = append(out, p.Children[0])
	for _, c := range p.Children[1:] {
		last := &out[len(out)-1]
		if c.Kind == ChildText && last.Kind == ChildText && last.Style.Same(c.Style) {
			last.Text += c.Text
			continue
		}
		out = append(out, c)
	}
	return out
}

// Text returns the flattened text: the concatenation of every coalesced
// child's string contribution.
func (p *ParNode) Text() string {
	children := p.Coalesced()
	var b []byte
	for _, c := range children {
		b = append(b, contribution(c)...)
	}
	return string(b)
}

// Ranges returns the byte range each coalesced child contributes,
// partitioning the flattened text exactly (invariant 1: ranges[i].end ==
// ranges[i+1].start).
func (p *ParNode) Ranges() []Range {
	children := p.Coalesced()
	ranges := make([]Range, 0, len(children))
	offset := 0
	for _, c := range children {
		n := len(contribution(c))
		ranges = append(ranges, Range{Start: offset, End: offset + n})
		offset += n
	}
	return ranges
}
