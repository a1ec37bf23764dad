package issue_test

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/exprlang/typecheck/internal/issue"
)

func TestLocationForOffset(t *testing.T) {
	// Three lines: "abc\n" (bytes 0-3), "de\n" (bytes 4-6), "f" (byte 7).
	lineOffsets := []int32{0, 4, 7}

	loc := issue.LocationForOffset(lineOffsets, 0)
	be.Equal(t, loc.Line, 1)
	be.Equal(t, loc.Column, 1)

	loc = issue.LocationForOffset(lineOffsets, 2)
	be.Equal(t, loc.Line, 1)
	be.Equal(t, loc.Column, 3)

	loc = issue.LocationForOffset(lineOffsets, 4)
	be.Equal(t, loc.Line, 2)
	be.Equal(t, loc.Column, 1)

	loc = issue.LocationForOffset(lineOffsets, 7)
	be.Equal(t, loc.Line, 3)
	be.Equal(t, loc.Column, 1)
}

func TestHasErrorsAndSeverityFilters(t *testing.T) {
	l := issue.NewList(0)
	l.Warningf(issue.Location{Line: 1, Column: 1}, "warn")
	be.True(t, !l.HasErrors())

	l.Errorf(issue.Location{Line: 2, Column: 1}, "err")
	be.True(t, l.HasErrors())
	be.Equal(t, len(l.All()), 2)
	be.Equal(t, len(l.Errors()), 1)
	be.Equal(t, len(l.Warnings()), 1)
}

func TestMaxIssuesLimit(t *testing.T) {
	l := issue.NewList(2)
	for i := 0; i < 5; i++ {
		l.Warningf(issue.Location{Line: 1, Column: 1}, "warn %d", i)
	}
	be.Equal(t, len(l.All()), 2)
}
