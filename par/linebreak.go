package par

import "github.com/kestrelpub/parlayout/layout"

// pendingLine is the greedy breaker's "last fitting" candidate: the best
// line built so far that still fits within the target width.
type pendingLine struct {
	line *LineLayout
	end  int
}

// BreakLines runs the greedy "last-fitting" line breaker described in
// spec.md §4.4: for every breakpoint, build a tentative line; if it
// overflows and a previous fitting candidate exists, commit that
// candidate and rebuild from its end; commit immediately on a mandatory
// break or an overflow with no saved candidate, otherwise remember the
// candidate and keep scanning.
func BreakLines(pl *ParLayout, width layout.Abs) []*LineLayout {
	bps := Breakpoints(pl.Text, pl.Config.ResolvedHyphenate(), pl.Config.Lang)

	lines := make([]*LineLayout, 0, 8)
	start := 0
	var last *pendingLine

	for _, bp := range bps {
		line := NewLine(pl, start, bp.Offset, bp.Mandatory, bp.Hyphen)

		if !width.Fits(line.Size.Width) && last != nil {
			lines = append(lines, last.line)
			start = last.end
			// The rebuilt line is committed whether or not it now fits —
			// by construction no intermediate break exists between
			// prev_end and end that would fit.
			line = NewLine(pl, start, bp.Offset, bp.Mandatory, bp.Hyphen)
			last = nil
		}

		if bp.Mandatory || !width.Fits(line.Size.Width) {
			lines = append(lines, line)
			start = bp.Offset
			last = nil
		} else {
			last = &pendingLine{line: line, end: bp.Offset}
		}
	}

	if last != nil {
		lines = append(lines, last.line)
	}
	if len(lines) == 0 {
		lines = append(lines, NewLine(pl, 0, 0, true, false))
	}
	return lines
}
