package par

import (
	"testing"

	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/shaping"
	"github.com/kestrelpub/parlayout/styles"
)

func TestNewLineEmptyParagraph(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "", sty)
	line := NewLine(pl, 0, 0, true, false)
	if line.Size.Height <= 0 {
		t.Errorf("an empty line should still carry font-derived height, got %v", line.Size.Height)
	}
	if line.Size.Width != 0 {
		t.Errorf("an empty line should have zero width, got %v", line.Size.Width)
	}
}

func TestNewLineTrimsTrailingWhitespace(t *testing.T) {
	sty := styles.Default(10)
	text := "hello   "
	pl := buildParLayout(t, text, sty)
	line := NewLine(pl, 0, len(text), true, false)
	if line.Range.End != len("hello") {
		t.Errorf("line range end = %d, want %d (trailing space trimmed)", line.Range.End, len("hello"))
	}
}

func TestLineLayoutBuildProducesFrame(t *testing.T) {
	sty := styles.Default(10)
	text := "hello world"
	pl := buildParLayout(t, text, sty)
	line := NewLine(pl, 0, len(text), true, false)
	frame := line.Build(1000, layout.AlignStart, false)
	if frame.Size.Width != 1000 {
		t.Errorf("frame width = %v, want 1000", frame.Size.Width)
	}
	if len(frame.Items) == 0 {
		t.Error("expected at least one positioned item in the built frame")
	}
}

func TestLineLayoutBuildJustifyDistributesStretch(t *testing.T) {
	sty := styles.Default(10)
	sty.Justify = true
	text := "one two three"
	pl := buildParLayout(t, text, sty)
	// Not the paragraph's last line (Range.End != len(text)), so
	// justification applies.
	line := NewLine(pl, 0, len("one two"), false, false)
	natural := line.Size.Width
	frame := line.Build(natural+50, layout.AlignStart, true)
	if frame.Size.Width != natural+50 {
		t.Errorf("justified frame width = %v, want %v", frame.Size.Width, natural+50)
	}
	// "one two" has a single space, so it takes all 50pt of slack.
	if len(frame.Items) != 1 {
		t.Fatalf("expected one positioned text item, got %d", len(frame.Items))
	}
	if ti, ok := frame.Items[0].Item.(*layout.TextItem); !ok || ti.Stretch != 50 {
		t.Errorf("per-space stretch item = %+v, want Stretch 50", frame.Items[0].Item)
	}
}

func TestLineLayoutSpacesCountsJustifiables(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "a b c", sty)
	line := NewLine(pl, 0, len("a b c"), true, false)
	if line.Spaces() != 2 {
		t.Errorf("Spaces() = %d, want 2 (the two spaces of \"a b c\")", line.Spaces())
	}
}

// Spec §8 example 2: "hello world" broken after "hello" (the space at
// offset 5 trimmed) must render its second line as just "world", not the
// whole run. This line starts mid-item (firstIdx == lastIdx == the single
// run's item) and runs to the item's end, so only the trailing-trim gate
// can catch it — there is no separate first-item slice in this case.
func TestNewLineMidItemToEndReshapesToTail(t *testing.T) {
	sty := styles.Default(10)
	text := "hello world"
	pl := buildParLayout(t, text, sty)

	full := NewLine(pl, 0, len(text), true, false)
	tail := NewLine(pl, 6, len(text), true, false)

	if tail.Range.Start != 6 || tail.Range.End != len(text) {
		t.Fatalf("tail.Range = %+v, want [6,%d)", tail.Range, len(text))
	}
	if tail.Size.Width >= full.Size.Width {
		t.Errorf("tail line width %v should be narrower than the full line %v (\"world\" vs \"hello world\")", tail.Size.Width, full.Size.Width)
	}

	if len(tail.slots) != 1 || tail.slots[0].Kind != ItemText || tail.slots[0].Text == nil {
		t.Fatalf("expected a single reshaped text slot, got %+v", tail.slots)
	}
	if got := tail.slots[0].Text.Source; got != "world" {
		t.Errorf("reshaped tail slot source = %q, want %q", got, "world")
	}

	frame := tail.Build(1000, layout.AlignStart, false)
	if len(frame.Items) != 1 {
		t.Fatalf("expected exactly one positioned item in the built tail frame, got %d", len(frame.Items))
	}
	ti, ok := frame.Items[0].Item.(*layout.TextItem)
	if !ok {
		t.Fatalf("expected a *layout.TextItem, got %T", frame.Items[0].Item)
	}
	shapedText, ok := ti.Shaped.(*shaping.Text)
	if !ok {
		t.Fatalf("expected *shaping.Text, got %T", ti.Shaped)
	}
	if shapedText.Source != "world" {
		t.Errorf("built frame emits source %q, want %q", shapedText.Source, "world")
	}
}

func TestLineLayoutHyphenAddsGlyph(t *testing.T) {
	sty := styles.Default(10)
	text := "understanding"
	pl := buildParLayout(t, text, sty)
	// Break mid-word so the last item is reshaped (shorter than its full
	// range), which is the only case PushHyphen is invoked for.
	mid := 7
	plain := NewLine(pl, 0, mid, false, false)
	hyphenated := NewLine(pl, 0, mid, false, true)
	if hyphenated.Size.Width <= plain.Size.Width {
		t.Errorf("a hyphenated line should be wider than the plain one: %v vs %v", hyphenated.Size.Width, plain.Size.Width)
	}
}
