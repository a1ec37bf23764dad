// Package varscope implements VariableScope: the immutable scope chain
// used only for comprehension accu/iter variable binding (spec §3, §4.7).
// A Scope never mutates once created — pushing a nested scope allocates a
// fresh child that points at its parent, so a scope handed to one
// sub-expression can never be affected by what a sibling does with a
// different child.
//
// Grounded on internal/checker/scope.go's parent-pointer Scope shape, made
// genuinely immutable (the teacher's Define mutates a shared map in place;
// here every Push allocates instead) and bottomed out in env.TypeCheckEnv
// rather than nothing, per spec §3 ("the bottom of the chain is the
// environment").
package varscope

import "github.com/exprlang/typecheck/internal/env"

// Scope is one link in the immutable chain.
type Scope struct {
	parent *Scope
	locals map[string]*env.VariableDecl
	root   *env.TypeCheckEnv
}

// NewRoot returns the scope chain's bottom, backed directly by e.
func NewRoot(e *env.TypeCheckEnv) *Scope {
	return &Scope{root: e}
}

// Push returns a new child scope with the given local bindings visible in
// front of s. It never modifies s.
func (s *Scope) Push(locals map[string]*env.VariableDecl) *Scope {
	return &Scope{parent: s, locals: locals}
}

// Lookup walks the chain outward, then falls through to the environment
// at the bottom.
func (s *Scope) Lookup(name string) (*env.VariableDecl, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.locals != nil {
			if d, ok := cur.locals[name]; ok {
				return d, true
			}
		}
		if cur.root != nil {
			return cur.root.LookupVariable(name)
		}
	}
	return nil, false
}

// Depth reports how many Push calls separate s from the root. Used by the
// checker's comprehension handling as a cheap internal consistency check
// (spec §7's "comprehension scope stack desynchronisation" fatal case):
// the iter scope pushed for a comprehension body must always be exactly
// two deeper than the scope the comprehension itself was checked in.
func (s *Scope) Depth() int {
	d := 0
	for cur := s; cur != nil && cur.parent != nil; cur = cur.parent {
		d++
	}
	return d
}
