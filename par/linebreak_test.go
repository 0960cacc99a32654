package par

import (
	"testing"

	"github.com/kestrelpub/parlayout/font"
	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/shaping"
	"github.com/kestrelpub/parlayout/styles"
)

// buildParLayout is a small helper that runs a plain text paragraph through
// bidi analysis and the pre-pass, using the tofu-fallback shaper so widths
// are a predictable 0.5em per glyph.
func buildParLayout(t *testing.T, text string, sty *styles.Styles) *ParLayout {
	t.Helper()
	node := NewParNode(TextChild(text, sty))
	bidiInfo := AnalyzeBidi(text, DirAuto)
	region := &layout.Region{Size: layout.Size{Width: 10000, Height: 10000}}
	pl, err := NewParLayout(nil, node, bidiInfo, region, sty, shaping.NewContext(font.NewFontBook(), []string{"Test"}, sty.FontSize))
	if err != nil {
		t.Fatalf("NewParLayout: %v", err)
	}
	return pl
}

func TestBreakLinesFitsOnOneLine(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "short text", sty)
	lines := BreakLines(pl, 1000)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1 for ample width", len(lines))
	}
}

func TestBreakLinesWrapsNarrowWidth(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "one two three four five six seven eight", sty)
	// Each glyph is 0.5em * 10pt = 5pt wide; a width of 40pt fits roughly
	// one short word per line, forcing multiple lines.
	lines := BreakLines(pl, 40)
	if len(lines) < 2 {
		t.Fatalf("len(lines) = %d, want more than 1 for a narrow width", len(lines))
	}
	for _, l := range lines {
		if !layout.Abs(40).Fits(l.Size.Width) {
			t.Errorf("line %q overflows: width %v > 40", pl.Text[l.Range.Start:l.Range.End], l.Size.Width)
		}
	}
}

func TestBreakLinesEmptyParagraph(t *testing.T) {
	sty := styles.Default(10)
	pl := buildParLayout(t, "", sty)
	lines := BreakLines(pl, 100)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1 for an empty paragraph", len(lines))
	}
	if lines[0].Range.Start != 0 || lines[0].Range.End != 0 {
		t.Errorf("empty paragraph's line should span an empty range, got %+v", lines[0].Range)
	}
}

func TestBreakLinesCoversWholeText(t *testing.T) {
	sty := styles.Default(10)
	text := "one two three four five"
	pl := buildParLayout(t, text, sty)
	lines := BreakLines(pl, 30)
	if len(lines) == 0 {
		t.Fatal("expected at least one line")
	}
	if lines[0].Range.Start != 0 {
		t.Errorf("first line should start at 0, got %d", lines[0].Range.Start)
	}
	if got := lines[len(lines)-1].Range.End; got != len(text) {
		t.Errorf("last line should end at len(text) (%d), got %d", len(text), got)
	}
	for i := 0; i < len(lines)-1; i++ {
		if lines[i].Range.End > lines[i+1].Range.Start {
			t.Errorf("line %d overlaps line %d: %+v / %+v", i, i+1, lines[i].Range, lines[i+1].Range)
		}
	}
}
