package par

import (
	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/styles"
)

// Stack packs measured lines into a sequence of region frames, applying
// leading, region overflow, and width expansion (spec.md §4.6).
func Stack(lines []*LineLayout, regions *layout.Regions, sty *styles.Styles) []*layout.Frame {
	leading := sty.ResolvedLeading()
	align := sty.ResolvedAlign()
	justify := sty.Justify

	width := stackWidth(lines, regions)

	var frames []*layout.Frame
	frame := layout.NewFrame(layout.Size{Width: width, Height: 0})
	cursor := layout.Abs(0)
	remainder := regions.Size.Height
	first := true

	commit := func() {
		frame.Size.Height = cursor
		frames = append(frames, frame)
	}

	for _, line := range lines {
		for !remainder.Fits(line.Size.Height) && regions.CanBreak() {
			commit()
			regions.Next()
			width = stackWidth(lines, regions)
			frame = layout.NewFrame(layout.Size{Width: width, Height: 0})
			cursor = 0
			remainder = regions.Size.Height
			first = true
		}

		if !first {
			cursor += leading
			remainder -= leading
		}
		first = false

		built := line.Build(width, align, justify)
		frame.PushFrame(layout.Point{X: 0, Y: cursor}, built)
		cursor += built.Size.Height
		remainder -= line.Size.Height
	}

	commit()
	return frames
}

// stackWidth implements spec.md §4.6's width decision: the region width if
// it expands horizontally or any line carries fractional spacing,
// otherwise shrink-to-fit (the widest line, zero if there are none).
func stackWidth(lines []*LineLayout, regions *layout.Regions) layout.Abs {
	if regions.ExpandX() {
		return regions.Size.Width
	}
	for _, l := range lines {
		if l.Fr > 0 {
			return regions.Size.Width
		}
	}
	var max layout.Abs
	for _, l := range lines {
		if l.Size.Width > max {
			max = l.Size.Width
		}
	}
	return max
}
