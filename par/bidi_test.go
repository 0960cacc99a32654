package par

import (
	"testing"

	"github.com/kestrelpub/parlayout/layout"
)

func TestAnalyzeBidiAllLTR(t *testing.T) {
	info := AnalyzeBidi("hello world", DirAuto)
	if len(info.Paragraphs) != 1 {
		t.Fatalf("len(Paragraphs) = %d, want 1", len(info.Paragraphs))
	}
	p := info.Paragraphs[0]
	runs := p.LogicalRunsIn(p.Range)
	if len(runs) != 1 || runs[0].Dir != layout.LTR {
		t.Fatalf("expected one LTR run, got %+v", runs)
	}
}

func TestAnalyzeBidiSplitsOnParagraphSeparator(t *testing.T) {
	text := "first second"
	info := AnalyzeBidi(text, DirAuto)
	if len(info.Paragraphs) != 2 {
		t.Fatalf("len(Paragraphs) = %d, want 2", len(info.Paragraphs))
	}
	if info.Paragraphs[0].Range.End != info.Paragraphs[1].Range.Start {
		t.Errorf("paragraph ranges should be contiguous: %+v", info.Paragraphs)
	}
}

func TestBidiParagraphContaining(t *testing.T) {
	info := AnalyzeBidi("abc def", DirAuto)
	if bp := info.ParagraphContaining(1); bp == nil || bp.Range.Start != 0 {
		t.Errorf("offset 1 should fall in the first paragraph, got %+v", bp)
	}
	if bp := info.ParagraphContaining(len(info.Text)); bp == nil {
		t.Error("offset at end of text should resolve to the last paragraph")
	}
}

func TestVisualRunsClipsToRange(t *testing.T) {
	info := AnalyzeBidi("hello world", DirAuto)
	bp := info.ParagraphContaining(0)
	runs := bp.VisualRuns(Range{Start: 2, End: 5})
	for _, r := range runs {
		if r.Range.Start < 2 || r.Range.End > 5 {
			t.Errorf("run %+v not clipped to [2,5)", r)
		}
	}
}

func TestAnalyzeBidiRTLBase(t *testing.T) {
	info := AnalyzeBidi("abc", DirRTL)
	bp := info.ParagraphContaining(0)
	if bp == nil {
		t.Fatal("expected a paragraph for non-empty text")
	}
}

func TestAnalyzeBidiEmptyText(t *testing.T) {
	info := AnalyzeBidi("", DirAuto)
	if len(info.Paragraphs) != 1 {
		t.Fatalf("len(Paragraphs) = %d, want 1 for empty text", len(info.Paragraphs))
	}
}
