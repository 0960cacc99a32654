package par

import (
	"github.com/kestrelpub/parlayout/font"
	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/shaping"
	"github.com/kestrelpub/parlayout/styles"
)

// Context bundles the resources a paragraph layout needs beyond the
// per-paragraph Styles: the font book and family list the shaping
// adapter selects faces from, OpenType feature settings, and the base
// direction a host supplies for bidi analysis (spec.md §5). It is also
// threaded through to InlineChild.Layout so inline children can lay
// themselves out with the same font resources.
type Context struct {
	Book     *font.FontBook
	Families []string
	Features []shaping.FontFeature
	BaseDir  BaseDirection
}

// Layout runs the paragraph core end to end (spec.md §4): bidi analysis
// over the flattened text, the bidi+shaping pre-pass, greedy line
// breaking, and region stacking. The returned frames are one per region
// the paragraph flowed into.
func Layout(p *ParNode, ctx *Context, regions *layout.Regions, sty *styles.Styles) ([]*layout.Frame, error) {
	text := p.Text()
	bidiInfo := AnalyzeBidi(text, ctx.BaseDir)

	shapeCtx := shaping.NewContext(ctx.Book, ctx.Families, sty.FontSize)
	shapeCtx.Fallback = sty.Fallback
	if sty.WordSpacing != 0 {
		shapeCtx.Spacing = sty.WordSpacing
	}
	shapeCtx.Features = ctx.Features

	region := &layout.Region{Size: regions.Size, Expand: regions.Expand}
	pl, err := NewParLayout(ctx, p, bidiInfo, region, sty, shapeCtx)
	if err != nil {
		return nil, err
	}

	lines := BreakLines(pl, regions.Size.Width)
	return Stack(lines, regions, sty), nil
}
