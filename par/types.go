// Package par implements the paragraph layout core: it takes a styled
// sequence of inline items (text, spacing, pre-layouted inline frames),
// runs bidirectional analysis and shaping over the flattened text, breaks
// it into lines with a greedy last-fitting algorithm, and stacks the
// resulting line frames into a sequence of regions.
//
// The five concerns this package composes — BiDi analysis, script-aware
// shaping, greedy line breaking with lookahead, edge-of-line reshaping, and
// visual reordering/justification/region stacking — are described in
// SPEC_FULL.md §4. Text shaping, font selection, inline-child layout, and
// style resolution are external collaborators (package shaping, package
// font, the InlineChild interface, and package styles respectively).
package par

import "fmt"

// Range is a byte range within the flattened paragraph text, used
// throughout in place of native slice-range syntax (mirrors the teacher's
// inline.Range).
type Range struct {
	Start, End int
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether a byte offset falls inside [Start, End).
func (r Range) Contains(offset int) bool { return offset >= r.Start && offset < r.End }

// ChildLayoutError wraps an inline child's layout failure for propagation
// unchanged up through the paragraph core (spec.md §7.1).
type ChildLayoutError struct {
	Err error
}

func (e *ChildLayoutError) Error() string { return fmt.Sprintf("inline child layout failed: %v", e.Err) }
func (e *ChildLayoutError) Unwrap() error { return e.Err }

// shaperContractViolation panics to signal a broken external contract
// (spec.md §7.2): shaping is required to be total, so a shaper that
// returns nil or otherwise misbehaves is a programmer error, not a
// recoverable input condition.
func shaperContractViolation(msg string) {
	panic("par: shaper contract violation: " + msg)
}
