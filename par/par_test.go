package par

import (
	"testing"

	"github.com/kestrelpub/parlayout/font"
	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/styles"
)

func TestLayoutEndToEnd(t *testing.T) {
	sty := styles.Default(10)
	node := NewParNode(
		TextChild("one two three four five six seven", sty),
	)
	lctx := &Context{Book: font.NewFontBook(), Families: []string{"Test"}}
	regions := layout.NewRegions(layout.Size{Width: 40, Height: 1000})

	frames, err := Layout(node, lctx, regions, sty)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1 (ample height, one region)", len(frames))
	}
	if frames[0].Size.Height <= 0 {
		t.Error("expected nonzero stacked height")
	}
}

func TestLayoutEmptyParagraph(t *testing.T) {
	sty := styles.Default(10)
	node := NewParNode()
	lctx := &Context{Book: font.NewFontBook(), Families: []string{"Test"}}
	regions := layout.NewRegions(layout.Size{Width: 200, Height: 200})

	frames, err := Layout(node, lctx, regions, sty)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	if frames[0].Size.Height <= 0 {
		t.Error("an empty paragraph should still occupy its font-derived line height")
	}
}

func TestLayoutPropagatesChildError(t *testing.T) {
	sty := styles.Default(10)
	boom := &fakeInlineChild{err: errTestBoom}
	node := NewParNode(NodeChild(boom, sty))
	lctx := &Context{Book: font.NewFontBook(), Families: []string{"Test"}}
	regions := layout.NewRegions(layout.Size{Width: 200, Height: 200})

	if _, err := Layout(node, lctx, regions, sty); err == nil {
		t.Fatal("expected an error to propagate from a failing inline child")
	}
}

var errTestBoom = errBoomForTests{}

type errBoomForTests struct{}

func (errBoomForTests) Error() string { return "boom" }
