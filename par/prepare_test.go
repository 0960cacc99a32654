package par

import (
	"errors"
	"testing"

	"github.com/kestrelpub/parlayout/font"
	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/shaping"
	"github.com/kestrelpub/parlayout/styles"
)

// testShapeCtx returns a shaping context over an empty font book, so every
// run takes the tofu fallback path with a predictable 0.5em advance per
// glyph (shaping's own contract: shaping is total).
func testShapeCtx(size layout.Abs) *shaping.Context {
	return shaping.NewContext(font.NewFontBook(), []string{"Test"}, size)
}

func TestNewParLayoutTextAndSpacing(t *testing.T) {
	sty := styles.Default(10)
	node := NewParNode(
		TextChild("hi", sty),
		LinearSpacingChild(5, sty),
		TextChild("there", sty),
	)
	bidiInfo := AnalyzeBidi(node.Text(), DirAuto)
	region := &layout.Region{Size: layout.Size{Width: 1000, Height: 1000}}
	pl, err := NewParLayout(nil, node, bidiInfo, region, sty, testShapeCtx(10))
	if err != nil {
		t.Fatalf("NewParLayout: %v", err)
	}
	if len(pl.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(pl.Items))
	}
	if pl.Items[0].Kind != ItemText || pl.Items[1].Kind != ItemAbsolute || pl.Items[2].Kind != ItemText {
		t.Fatalf("unexpected item kinds: %+v", pl.Items)
	}
	if pl.Items[1].Absolute != 5 {
		t.Errorf("spacing item width = %v, want 5", pl.Items[1].Absolute)
	}
	if len(pl.Ranges) != len(pl.Items) {
		t.Fatalf("Ranges/Items length mismatch: %d vs %d", len(pl.Ranges), len(pl.Items))
	}
}

func TestParLayoutFind(t *testing.T) {
	sty := styles.Default(10)
	node := NewParNode(TextChild("abc", sty), LinearSpacingChild(1, sty), TextChild("de", sty))
	bidiInfo := AnalyzeBidi(node.Text(), DirAuto)
	region := &layout.Region{Size: layout.Size{Width: 1000, Height: 1000}}
	pl, err := NewParLayout(nil, node, bidiInfo, region, sty, testShapeCtx(10))
	if err != nil {
		t.Fatalf("NewParLayout: %v", err)
	}

	cases := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{4, 2},
		{6, 2}, // end of text resolves to the last item
	}
	for _, c := range cases {
		if got := pl.Find(c.offset); got != c.want {
			t.Errorf("Find(%d) = %d, want %d", c.offset, got, c.want)
		}
	}
}

type fakeInlineChild struct {
	size layout.Size
	err  error
}

func (f *fakeInlineChild) Layout(ctx *Context, regions *layout.Regions, sty *styles.Styles) ([]*layout.Frame, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*layout.Frame{layout.NewFrame(f.size)}, nil
}

func TestNewParLayoutNodeChild(t *testing.T) {
	sty := styles.Default(10)
	child := &fakeInlineChild{size: layout.Size{Width: 20, Height: 12}}
	node := NewParNode(NodeChild(child, sty))
	bidiInfo := AnalyzeBidi(node.Text(), DirAuto)
	region := &layout.Region{Size: layout.Size{Width: 1000, Height: 1000}}
	pl, err := NewParLayout(nil, node, bidiInfo, region, sty, testShapeCtx(10))
	if err != nil {
		t.Fatalf("NewParLayout: %v", err)
	}
	if len(pl.Items) != 1 || pl.Items[0].Kind != ItemFrame {
		t.Fatalf("expected a single frame item, got %+v", pl.Items)
	}
	if pl.Items[0].Frame.Size.Width != 20 {
		t.Errorf("frame width = %v, want 20", pl.Items[0].Frame.Size.Width)
	}
}

func TestNewParLayoutNodeChildErrorPropagates(t *testing.T) {
	sty := styles.Default(10)
	boom := &fakeInlineChild{err: errors.New("boom")}
	node := NewParNode(NodeChild(boom, sty))
	bidiInfo := AnalyzeBidi(node.Text(), DirAuto)
	region := &layout.Region{Size: layout.Size{Width: 1000, Height: 1000}}
	_, err := NewParLayout(nil, node, bidiInfo, region, sty, testShapeCtx(10))
	if err == nil {
		t.Fatal("expected an error from a failing inline child")
	}
	var childErr *ChildLayoutError
	if !errors.As(err, &childErr) {
		t.Fatalf("expected *ChildLayoutError, got %T: %v", err, err)
	}
}
