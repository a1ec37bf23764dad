// Package issue implements the checker's diagnostic accumulator: the
// severity-tagged, ordered Issue list returned alongside (or instead of)
// a checked AST (spec §6-§7).
//
// Shaped after the teacher's internal/diagnostic package (Errorf/Warningf
// accumulating into an ordered slice, HasErrors/query-by-severity) but
// narrowed to the two severities the spec names and given byte-offset to
// line/column conversion instead of the teacher's file/line/column that
// came straight from a token.
package issue

import (
	"fmt"
	"sort"
)

// Severity distinguishes issues that latch the error channel (no checked
// AST is returned) from issues that don't (spec §6-§7).
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Location is a 1-based line/column, computed from a byte offset via
// LocationForOffset.
type Location struct {
	Line   int
	Column int
}

// Issue is a single per-expression diagnostic (spec §7's Issues channel).
type Issue struct {
	Severity Severity
	Location Location
	Message  string
}

func (i *Issue) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", i.Location.Line, i.Location.Column, i.Severity, i.Message)
}

// List accumulates issues in the order they're reported: spec §5 requires
// post-order AST traversal order, which callers get for free simply by
// reporting issues as they visit each node.
type List struct {
	issues  []*Issue
	limit   int // 0 means unlimited
	errored bool
}

// NewList returns an accumulator that stops recording new issues once it
// holds limit of them (0 means unlimited), per CheckOptions.MaxIssues.
func NewList(limit int) *List {
	return &List{limit: limit}
}

// Errorf records an error-severity issue.
func (l *List) Errorf(loc Location, format string, args ...any) {
	l.add(&Issue{Severity: Error, Location: loc, Message: fmt.Sprintf(format, args...)})
}

// Warningf records a warning-severity issue.
func (l *List) Warningf(loc Location, format string, args ...any) {
	l.add(&Issue{Severity: Warning, Location: loc, Message: fmt.Sprintf(format, args...)})
}

func (l *List) add(i *Issue) {
	if i.Severity == Error {
		l.errored = true
	}
	if l.limit > 0 && len(l.issues) >= l.limit {
		return
	}
	l.issues = append(l.issues, i)
}

// HasErrors reports whether any error-severity issue was reported,
// including one dropped because the list was already at its limit. A
// true result latches the error channel: checker.Check returns no AST.
func (l *List) HasErrors() bool {
	return l.errored
}

// All returns every accumulated issue, in report order.
func (l *List) All() []*Issue { return l.issues }

// Errors returns only the error-severity issues, in report order.
func (l *List) Errors() []*Issue { return l.bySeverity(Error) }

// Warnings returns only the warning-severity issues, in report order.
func (l *List) Warnings() []*Issue { return l.bySeverity(Warning) }

func (l *List) bySeverity(s Severity) []*Issue {
	var out []*Issue
	for _, i := range l.issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// LocationForOffset converts an absolute byte offset into a 1-based
// line/column using the exact formula in spec §6: line is the index of
// the greatest line offset <= the position, plus one; column is
// position - that line offset + one.
//
// lineOffsets must be sorted ascending (the byte offset of each line's
// first byte); lineOffsets[0] is conventionally 0.
func LocationForOffset(lineOffsets []int32, position int32) Location {
	if len(lineOffsets) == 0 {
		return Location{Line: 1, Column: int(position) + 1}
	}
	// lineIdx = index of the greatest offset <= position.
	lineIdx := sort.Search(len(lineOffsets), func(i int) bool { return lineOffsets[i] > position }) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	return Location{
		Line:   lineIdx + 1,
		Column: int(position-lineOffsets[lineIdx]) + 1,
	}
}
