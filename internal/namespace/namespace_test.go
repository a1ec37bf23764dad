package namespace_test

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/exprlang/typecheck/internal/namespace"
)

func TestGenerateNameCandidatesOrder(t *testing.T) {
	var got []string
	namespace.GenerateNameCandidates("a.b", "c", func(candidate string) bool {
		got = append(got, candidate)
		return true
	})
	be.Equal(t, len(got), 3)
	be.Equal(t, got[0], "a.b.c")
	be.Equal(t, got[1], "a.c")
	be.Equal(t, got[2], "c")
}

func TestGenerateNameCandidatesEmptyContainer(t *testing.T) {
	var got []string
	namespace.GenerateNameCandidates("", "c", func(candidate string) bool {
		got = append(got, candidate)
		return true
	})
	be.Equal(t, len(got), 1)
	be.Equal(t, got[0], "c")
}

func TestGenerateNameCandidatesStopsEarly(t *testing.T) {
	var got []string
	namespace.GenerateNameCandidates("a.b.c", "n", func(candidate string) bool {
		got = append(got, candidate)
		return len(got) < 2
	})
	be.Equal(t, len(got), 2)
	be.Equal(t, got[0], "a.b.c.n")
	be.Equal(t, got[1], "a.b.n")
}

func TestGenerateCandidatesQualifierAxis(t *testing.T) {
	var got [][2]any
	namespace.GenerateCandidates("a", "q1.q2", func(candidate string, qualifierLen int) bool {
		got = append(got, [2]any{candidate, qualifierLen})
		return true
	})
	// Full qualifier (q1.q2) at every container prefix first, then the
	// shorter qualifier (q1) at every container prefix.
	be.Equal(t, len(got), 4)
	be.Equal(t, got[0][0], "a.q1.q2")
	be.Equal(t, got[0][1], 2)
	be.Equal(t, got[1][0], "q1.q2")
	be.Equal(t, got[1][1], 2)
	be.Equal(t, got[2][0], "a.q1")
	be.Equal(t, got[2][1], 1)
	be.Equal(t, got[3][0], "q1")
	be.Equal(t, got[3][1], 1)
}

func TestGenerateCandidatesNeverRepeats(t *testing.T) {
	seen := map[string]int{}
	namespace.GenerateCandidates("a", "a", func(candidate string, _ int) bool {
		seen[candidate]++
		return true
	})
	for candidate, count := range seen {
		be.Equal(t, count, 1, candidate)
	}
}
