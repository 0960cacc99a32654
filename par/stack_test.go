package par

import (
	"testing"

	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/styles"
)

func TestStackSingleRegion(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "one two three four five", sty)
	lines := BreakLines(pl, 1000)
	regions := layout.NewRegions(layout.Size{Width: 1000, Height: 1000})
	frames := Stack(lines, regions, sty)
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1 (everything fits in one region)", len(frames))
	}
}

func TestStackOverflowsIntoBacklog(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "one two three four five six seven eight nine ten", sty)
	lines := BreakLines(pl, 40)
	regions := &layout.Regions{
		Size:    layout.Size{Width: 40, Height: 15},
		Backlog: []layout.Abs{15, 15, 15, 15, 15},
	}
	frames := Stack(lines, regions, sty)
	if len(frames) < 2 {
		t.Fatalf("len(frames) = %d, want more than 1 given a short first region", len(frames))
	}
	var wantWidth layout.Abs
	for _, l := range lines {
		if l.Size.Width > wantWidth {
			wantWidth = l.Size.Width
		}
	}
	for _, f := range frames {
		if f.Size.Width != wantWidth {
			t.Errorf("frame width = %v, want %v (shrink-to-fit over all lines)", f.Size.Width, wantWidth)
		}
	}
}

func TestStackWidthShrinksToFitWhenNotExpanding(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "hi", sty)
	lines := BreakLines(pl, 1000)
	regions := layout.NewRegions(layout.Size{Width: 1000, Height: 1000})
	frames := Stack(lines, regions, sty)
	if frames[0].Size.Width != lines[0].Size.Width {
		t.Errorf("shrink-to-fit width = %v, want %v", frames[0].Size.Width, lines[0].Size.Width)
	}
}

func TestStackWidthExpandsWhenRegionExpands(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "hi", sty)
	lines := BreakLines(pl, 1000)
	regions := &layout.Regions{Size: layout.Size{Width: 1000, Height: 1000}, Expand: [2]bool{true, false}}
	frames := Stack(lines, regions, sty)
	if frames[0].Size.Width != 1000 {
		t.Errorf("expanding width = %v, want 1000", frames[0].Size.Width)
	}
}
