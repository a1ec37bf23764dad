// Package namespace implements NamespaceGenerator: the container-aware
// candidate enumeration used everywhere a name (a type, a function, a
// qualified identifier) must be resolved against an environment that was
// built for a particular container (spec §4.1; grounded against
// original_source/checker/internal/type_checker_impl.cc's own namespace
// resolution loop, which this package's ordering matches exactly).
package namespace

import "strings"

// GenerateCandidates enumerates candidate qualified names for name within
// container, outer-to-inner, longest-prefix-first on both axes.
//
// Given container "c1.c2...cn" and a dotted name "q1.q2...qk", it first
// tries the full name q1...qk at every container prefix, longest first
// (c1...cn.q1...qk, ..., c1.q1...qk, q1...qk), then drops the last
// qualifier segment and repeats the container-prefix sweep for
// q1...qk-1, and so on down to the single segment q1. visit is called
// once per distinct candidate with the candidate string and the number
// of qualifier segments (1..k) it consumed; returning false stops the
// enumeration early. No candidate is ever repeated.
//
// A plain (undotted) name degenerates to the single-qualifier case: just
// the container-prefix sweep over that one name.
func GenerateCandidates(container, name string, visit func(candidate string, qualifierLen int) bool) {
	cseg := segments(container)
	qseg := segments(name)
	if len(qseg) == 0 {
		return
	}
	seen := make(map[string]bool, (len(cseg)+1)*len(qseg))
	for j := len(qseg); j >= 1; j-- {
		qualifier := strings.Join(qseg[:j], ".")
		for i := len(cseg); i >= 0; i-- {
			var candidate string
			if i > 0 {
				candidate = strings.Join(cseg[:i], ".") + "." + qualifier
			} else {
				candidate = qualifier
			}
			if seen[candidate] {
				continue
			}
			seen[candidate] = true
			if !visit(candidate, j) {
				return
			}
		}
	}
}

// GenerateNameCandidates is the single-axis specialisation used for type,
// struct, and function name lookups: name is treated as one opaque unit
// (even if it contains dots, e.g. a qualified struct name) and only the
// container-prefix axis varies. This is the right tool whenever the split
// between "qualifiers" and "the name itself" is already fixed by the
// caller, as opposed to identifier-chain resolution (§4.5 step 3), which
// needs the full two-axis search that GenerateCandidates provides.
func GenerateNameCandidates(container, name string, visit func(candidate string) bool) {
	full := len(segments(name))
	GenerateCandidates(container, name, func(candidate string, qualifierLen int) bool {
		if qualifierLen != full {
			return true
		}
		return visit(candidate)
	})
}

func segments(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}
