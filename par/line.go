package par

import (
	"github.com/kestrelpub/parlayout/layout"
	"github.com/kestrelpub/parlayout/shaping"
)

// lineSlot is one item in a LineLayout's logical ordering: either a
// reference to an untouched ParLayout item, or a reshaped edge text item.
type lineSlot struct {
	Range Range
	Kind  ItemKind
	Text  *shaping.Text // set for ItemText slots
	Item  *ParItem      // set for non-reshaped slots (Absolute/Fractional/Frame, and untouched middle Text)
}

func (s *lineSlot) width() layout.Abs {
	if s.Kind == ItemText {
		if s.Text == nil {
			return 0
		}
		return s.Text.Width()
	}
	if s.Item == nil {
		return 0
	}
	return s.Item.Width()
}

// LineLayout is a measured, unbuilt line keyed by a flattened-text range,
// with optional reshaped edge items and the untouched middle items between
// them (spec.md §3).
type LineLayout struct {
	pl    *ParLayout
	Range Range

	slots []lineSlot

	Size      layout.Size
	Baseline  layout.Abs
	Fr        layout.Fr
	Mandatory bool
	HasHyphen bool
}

// NewLine constructs and measures the line spanning [s, e) (spec.md
// §4.5's "Construction"). mandatory and hyphen come from the breakpoint
// that produced this candidate.
func NewLine(pl *ParLayout, s, e int, mandatory, hyphen bool) *LineLayout {
	l := &LineLayout{pl: pl, Range: Range{Start: s, End: e}, Mandatory: mandatory, HasHyphen: hyphen}

	if len(pl.Items) == 0 {
		// Invariant 6: the sole line of an empty paragraph gets its
		// measurements from shaping the empty string, preserving font
		// metrics for height.
		empty := shaping.Shape(pl.ShapeCtx, 0, "", pl.Config.ResolvedDir(), shaping.Lang(pl.Config.Lang), "")
		l.slots = []lineSlot{{Range: Range{0, 0}, Kind: ItemText, Text: empty}}
		l.measure()
		if l.Size.Height == 0 {
			// The empty run has no glyphs to measure, so apply the same
			// size-based estimate Text.Height/Baseline use for a glyph at
			// the context's font size.
			l.Size.Height = pl.ShapeCtx.Size * 1.2
			l.Baseline = l.Size.Height * 0.8
		}
		return l
	}

	firstIdx := pl.Find(s)
	if firstIdx < 0 {
		firstIdx = 0
	}
	lastSearch := e - 1
	if lastSearch < s {
		lastSearch = s
	}
	lastIdx := pl.Find(lastSearch)
	if lastIdx < 0 {
		lastIdx = len(pl.Items) - 1
	}

	l.build(firstIdx, lastIdx)
	l.measure()
	return l
}

// build implements spec.md §4.5 steps 2-3: trailing trim (+ hyphen) on the
// last item, then leading slice on the first item when it differs from the
// last, leaving an untouched middle slice in between.
func (l *LineLayout) build(firstIdx, lastIdx int) {
	pl := l.pl
	s, e := l.Range.Start, l.Range.End

	// Step 2: trailing trim & hyphen on the last item.
	lastRange := pl.Ranges[lastIdx]
	trimStart := s
	if trimStart < lastRange.Start {
		trimStart = lastRange.Start
	}
	trimmed := trimTrailingWhitespace(pl.Text[trimStart:e])
	end := trimStart + len(trimmed)

	lastItem := &pl.Items[lastIdx]
	shorterThanFull := lastItem.Kind == ItemText && end-trimStart < lastRange.Len()

	var lastSlot *lineSlot
	dropLast := false
	if shorterThanFull {
		if end > trimStart || lastIdx == firstIdx {
			reshaped := lastItem.Text.Reshape(pl.ShapeCtx, trimStart-lastRange.Start, end-lastRange.Start)
			if l.HasHyphen {
				reshaped.PushHyphen(pl.ShapeCtx)
			}
			lastSlot = &lineSlot{Range: Range{trimStart, end}, Kind: ItemText, Text: reshaped}
		} else {
			dropLast = true
		}
	}
	l.Range.End = end

	middleLo, middleHi := firstIdx, lastIdx
	if lastSlot != nil || dropLast {
		middleHi = lastIdx - 1
	}

	// Step 3: leading slice on the first item, only when it isn't also
	// the last (the open-question precedence: first is suppressed when
	// first and last would coincide).
	var firstSlot *lineSlot
	if firstIdx != lastIdx {
		firstRange := pl.Ranges[firstIdx]
		firstItem := &pl.Items[firstIdx]
		leadEnd := e
		if firstRange.End < leadEnd {
			leadEnd = firstRange.End
		}
		if firstItem.Kind == ItemText && (leadEnd-s) < len(firstItem.Text.Source) && leadEnd > s {
			reshaped := firstItem.Text.Reshape(pl.ShapeCtx, s-firstRange.Start, leadEnd-firstRange.Start)
			firstSlot = &lineSlot{Range: Range{s, leadEnd}, Kind: ItemText, Text: reshaped}
			middleLo = firstIdx + 1
		}
	}

	slots := make([]lineSlot, 0, middleHi-middleLo+3)
	if firstSlot != nil {
		slots = append(slots, *firstSlot)
	}
	for idx := middleLo; idx <= middleHi && idx >= 0 && idx < len(pl.Items); idx++ {
		slots = append(slots, lineSlot{Range: pl.Ranges[idx], Kind: pl.Items[idx].Kind, Text: pl.Items[idx].Text, Item: &pl.Items[idx]})
	}
	if lastSlot != nil {
		slots = append(slots, *lastSlot)
	}
	l.slots = slots
}

// measure computes the line's width, height, baseline, and fractional
// weight (spec.md §4.5 step 4).
func (l *LineLayout) measure() {
	var width, top, bottom layout.Abs
	var fr layout.Fr
	for _, s := range l.slots {
		width += s.width()
		switch s.Kind {
		case ItemText:
			if s.Text == nil {
				continue
			}
			if b := s.Text.Baseline(); b > top {
				top = b
			}
			if h := s.Text.Height() - s.Text.Baseline(); h > bottom {
				bottom = h
			}
		case ItemFrame:
			if s.Item == nil || s.Item.Frame == nil {
				continue
			}
			if b := s.Item.Frame.Baseline; b > top {
				top = b
			}
			if h := s.Item.Frame.Size.Height - s.Item.Frame.Baseline; h > bottom {
				bottom = h
			}
		case ItemFractional:
			if s.Item != nil {
				fr += s.Item.Fractional
			}
		}
	}
	l.Size = layout.Size{Width: width, Height: top + bottom}
	l.Baseline = top
	l.Fr = fr
}

// Spaces returns the count of justifiable positions in the line, used as
// the denominator for inter-space justification stretch (spec.md §4.5's
// "per-space stretch = remaining / line.spaces()"). This generalizes to
// any justifiable glyph per the shaping package's CJK-aware adjustability,
// not only ASCII spaces.
func (l *LineLayout) Spaces() int {
	n := 0
	for _, s := range l.slots {
		if s.Kind == ItemText && s.Text != nil {
			n += s.Text.Justifiables()
		}
	}
	return n
}

// findSlot returns the index into l.slots whose range contains offset.
func (l *LineLayout) findSlot(offset int) int {
	lo, hi := 0, len(l.slots)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := l.slots[mid].Range
		switch {
		case offset < r.Start:
			hi = mid - 1
		case offset >= r.End:
			lo = mid + 1
		default:
			return mid
		}
	}
	if len(l.slots) > 0 && offset == l.Range.End {
		return len(l.slots) - 1
	}
	return -1
}

// visualOrder returns the line's slots reordered per UAX #9 L1 visual
// reordering, restricted to this line's range (spec.md §4.5's "Visual
// reordering"). Empty ranges yield no runs, so the logical order is
// returned unchanged (there is nothing to reorder).
func (l *LineLayout) visualOrder() []lineSlot {
	if len(l.slots) == 0 || l.Range.Start == l.Range.End {
		return l.slots
	}
	bp := l.pl.Bidi.ParagraphContaining(l.Range.Start)
	if bp == nil {
		return l.slots
	}
	runs := bp.VisualRuns(l.Range)
	if len(runs) == 0 {
		return l.slots
	}
	ordered := make([]lineSlot, 0, len(l.slots))
	for _, run := range runs {
		firstIdx := l.findSlot(run.Range.Start)
		lastIdx := l.findSlot(run.Range.End - 1)
		if firstIdx < 0 || lastIdx < 0 {
			continue
		}
		if run.Dir.IsPositive() {
			for i := firstIdx; i <= lastIdx; i++ {
				ordered = append(ordered, l.slots[i])
			}
		} else {
			for i := lastIdx; i >= firstIdx; i-- {
				ordered = append(ordered, l.slots[i])
			}
		}
	}
	return ordered
}

func textWidthWithStretch(t *shaping.Text, perSpace layout.Abs) layout.Abs {
	if perSpace == 0 || t == nil {
		return t.Width()
	}
	return t.Width() + perSpace*layout.Abs(t.Justifiables())
}

func alignOffset(align layout.HAlign, remaining layout.Abs) layout.Abs {
	switch align {
	case layout.AlignCenter:
		return remaining / 2
	case layout.AlignEnd:
		return remaining
	default:
		return 0
	}
}

// Build produces the final frame for a line (spec.md §4.5's "Build"):
// justification decision, visual-order placement, and alignment.
func (l *LineLayout) Build(width layout.Abs, align layout.HAlign, justify bool) *layout.Frame {
	remaining := width - l.Size.Width

	doJustify := justify && !l.Mandatory && l.Range.End != len(l.pl.Text) && l.Fr == 0
	var perSpaceStretch layout.Abs
	if doJustify {
		if n := l.Spaces(); n > 0 {
			perSpaceStretch = remaining / layout.Abs(n)
		}
		remaining = 0
	}

	remainingForAlign := remaining
	if l.Fr != 0 {
		remainingForAlign = 0
	}
	align0 := alignOffset(align, remainingForAlign)

	frame := layout.NewFrame(layout.Size{Width: width, Height: l.Size.Height})
	frame.Baseline = l.Baseline

	offset := layout.Abs(0)
	for _, slot := range l.visualOrder() {
		switch slot.Kind {
		case ItemAbsolute:
			if slot.Item != nil {
				offset += slot.Item.Absolute
			}
		case ItemFractional:
			if slot.Item != nil && l.Fr != 0 {
				offset += layout.Abs(float64(slot.Item.Fractional)/float64(l.Fr)) * remaining
			}
		case ItemText:
			if slot.Text == nil {
				continue
			}
			w := textWidthWithStretch(slot.Text, perSpaceStretch)
			x := offset + align0
			y := l.Baseline - slot.Text.Baseline()
			frame.Push(layout.Point{X: x, Y: y}, &layout.TextItem{Shaped: slot.Text, Stretch: perSpaceStretch})
			offset += w
		case ItemFrame:
			if slot.Item == nil || slot.Item.Frame == nil {
				continue
			}
			x := offset + align0
			y := l.Baseline - slot.Item.Frame.Baseline
			frame.PushFrame(layout.Point{X: x, Y: y}, slot.Item.Frame)
			offset += slot.Item.Frame.Size.Width
		}
	}

	return frame
}
