// Package inference implements TypeInferenceContext: the per-check pool
// of type variables, instantiation of declared type parameters, unifying
// assignability, overload resolution with snapshot/rollback, and final
// substitution of any still-free variable to dyn (spec §4.3).
//
// Grounded on
// _examples/cpunion-vox-lang/compiler/stage0/internal/typecheck/generics.go's
// unifyType/substType and its snapshot-then-roll-back-on-failure pattern
// for trying one overload candidate at a time; generalised here from
// vox-lang's single call site to the spec's per-candidate-overload
// procedure with a result type that degrades to dyn when surviving
// overloads disagree.
package inference

import (
	"fmt"

	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/types"
)

type binding struct {
	bound bool
	value types.Type
}

type logEntry struct {
	name string
	prev binding
	had  bool
}

// Context is the type-variable pool and binding table for one check call.
// Its lifetime is exactly one Check invocation (spec §5); it must not be
// shared across checks.
type Context struct {
	env     *env.TypeCheckEnv
	vars    map[string]*binding
	counter int
	log     []logEntry
}

// New returns a fresh, empty inference context over e.
func New(e *env.TypeCheckEnv) *Context {
	return &Context{env: e, vars: map[string]*binding{}}
}

// fresh allocates a new unbound type variable, synthesising a name derived
// from base so debug output stays legible (e.g. "T" -> "T$3").
func (c *Context) fresh(base string) types.Type {
	c.counter++
	name := fmt.Sprintf("%s$%d", base, c.counter)
	c.vars[name] = &binding{}
	return types.NewTypeParam(name)
}

// InstantiateTypeParams replaces every distinct type_param(name) appearing
// in t with a fresh unbound variable, consistently — repeated occurrences
// of the same name within t get the same fresh variable.
func (c *Context) InstantiateTypeParams(t types.Type) types.Type {
	return c.instantiate(t, map[string]types.Type{})
}

func (c *Context) instantiate(t types.Type, subst map[string]types.Type) types.Type {
	switch t.Kind() {
	case types.KindTypeParam:
		if fresh, ok := subst[t.Name()]; ok {
			return fresh
		}
		fresh := c.fresh(t.Name())
		subst[t.Name()] = fresh
		return fresh
	case types.KindList:
		return types.NewList(c.instantiate(t.Parameters()[0], subst))
	case types.KindMap:
		p := t.Parameters()
		return types.NewMap(c.instantiate(p[0], subst), c.instantiate(p[1], subst))
	case types.KindOpaque:
		p := t.Parameters()
		np := make([]types.Type, len(p))
		for i, pp := range p {
			np[i] = c.instantiate(pp, subst)
		}
		return types.NewOpaque(t.Name(), np...)
	case types.KindType:
		p := t.Parameters()
		if len(p) == 0 {
			return t
		}
		return types.NewTypeType(c.instantiate(p[0], subst))
	default:
		return t
	}
}

// FreeList returns a fresh list(alpha) for an empty list literal.
func (c *Context) FreeList() types.Type {
	return c.InstantiateTypeParams(types.NewList(types.NewTypeParam("element_type")))
}

// FreeMap returns a fresh map(alpha, beta) for an empty map literal.
func (c *Context) FreeMap() types.Type {
	return c.InstantiateTypeParams(types.NewMap(types.NewTypeParam("key_type"), types.NewTypeParam("value_type")))
}

// resolveDeep follows a chain of bound type_params to the value they
// ultimately denote, stopping at the first still-free variable.
func (c *Context) resolveDeep(t types.Type) types.Type {
	for t.Kind() == types.KindTypeParam {
		b, ok := c.vars[t.Name()]
		if !ok || !b.bound {
			return t
		}
		t = b.value
	}
	return t
}

func (c *Context) bind(name string, t types.Type) {
	b, ok := c.vars[name]
	prev := binding{}
	if ok {
		prev = *b
	} else {
		b = &binding{}
		c.vars[name] = b
	}
	c.log = append(c.log, logEntry{name: name, prev: prev, had: ok})
	b.bound = true
	b.value = t
}

// Snapshot returns a mark that Rollback can later restore to.
func (c *Context) Snapshot() int { return len(c.log) }

// Rollback undoes every binding made since mark. A mark outside the
// binding log's current range (negative, or past its end) is the
// "overload-narrowing re-insertion failure" fatal case of spec §7: it
// indicates the caller's snapshot/restore bookkeeping around
// ResolveOverload's per-candidate trial has desynchronised, not a
// checkable-by-the-user condition, so it panics rather than returning an
// Issue. An in-range mark is always accepted.
func (c *Context) Rollback(mark int) {
	if mark < 0 || mark > len(c.log) {
		panic(fmt.Sprintf("inference: rollback mark %d out of range for log of length %d", mark, len(c.log)))
	}
	for i := len(c.log) - 1; i >= mark; i-- {
		e := c.log[i]
		if e.had {
			c.vars[e.name] = &binding{bound: e.prev.bound, value: e.prev.value}
		} else {
			delete(c.vars, e.name)
		}
	}
	c.log = c.log[:mark]
}

// IsAssignable is the unifying half of spec §3's assignability relation:
// identical to types.IsAssignable except that a free type_param on either
// side binds (the declared side "adopts" the actual side's binding when
// both are free) instead of only matching an identical name.
func (c *Context) IsAssignable(actual, declared types.Type) bool {
	actual = c.resolveDeep(actual)
	declared = c.resolveDeep(declared)

	if actual.Kind() == types.KindDyn || declared.Kind() == types.KindDyn {
		return true
	}
	if actual.Kind() == types.KindTypeParam || declared.Kind() == types.KindTypeParam {
		return c.unify(actual, declared)
	}
	if actual.Kind() == types.KindError || declared.Kind() == types.KindError {
		return false
	}
	if actual.Kind() == types.KindNull {
		return declared.IsWrapper() || declared.Kind() == types.KindAny || declared.Kind() == types.KindNull
	}
	if declared.IsWrapper() {
		if prim, ok := declared.WrapperPrimitive(); ok && actual.Equal(prim) {
			return true
		}
	}
	if actual.Kind() != declared.Kind() {
		return false
	}
	switch actual.Kind() {
	case types.KindStruct:
		return actual.Name() == declared.Name()
	case types.KindOpaque:
		if actual.Name() != declared.Name() || len(actual.Parameters()) != len(declared.Parameters()) {
			return false
		}
		for i := range actual.Parameters() {
			if !c.IsAssignable(actual.Parameters()[i], declared.Parameters()[i]) {
				return false
			}
		}
		return true
	case types.KindList:
		return c.IsAssignable(actual.Parameters()[0], declared.Parameters()[0])
	case types.KindMap:
		return c.IsAssignable(actual.Parameters()[0], declared.Parameters()[0]) &&
			c.IsAssignable(actual.Parameters()[1], declared.Parameters()[1])
	case types.KindType:
		ap, dp := actual.Parameters(), declared.Parameters()
		if len(ap) == 0 || len(dp) == 0 {
			return len(ap) == len(dp)
		}
		return c.IsAssignable(ap[0], dp[0])
	default:
		return actual.Equal(declared)
	}
}

func (c *Context) unify(actual, declared types.Type) bool {
	aFree := actual.Kind() == types.KindTypeParam
	dFree := declared.Kind() == types.KindTypeParam
	switch {
	case aFree && dFree:
		if actual.Name() == declared.Name() {
			return true
		}
		c.bind(declared.Name(), actual) // rightmost (declared) adopts leftmost (actual)
		return true
	case aFree:
		c.bind(actual.Name(), declared)
		return true
	case dFree:
		c.bind(declared.Name(), actual)
		return true
	default:
		return false
	}
}

// FinalizeType substitutes every bound variable reachable from t with the
// type it's bound to, recursively, and collapses any variable still free
// to dyn (spec §4.3, "no dangling type variables in output" §8).
func (c *Context) FinalizeType(t types.Type) types.Type {
	switch t.Kind() {
	case types.KindTypeParam:
		r := c.resolveDeep(t)
		if r.Kind() == types.KindTypeParam {
			return types.Dyn
		}
		return c.FinalizeType(r)
	case types.KindList:
		return types.NewList(c.FinalizeType(t.Parameters()[0]))
	case types.KindMap:
		p := t.Parameters()
		return types.NewMap(c.FinalizeType(p[0]), c.FinalizeType(p[1]))
	case types.KindOpaque:
		p := t.Parameters()
		np := make([]types.Type, len(p))
		for i, pp := range p {
			np[i] = c.FinalizeType(pp)
		}
		return types.NewOpaque(t.Name(), np...)
	case types.KindType:
		p := t.Parameters()
		if len(p) == 0 {
			return t
		}
		return types.NewTypeType(c.FinalizeType(p[0]))
	default:
		return t
	}
}

// Resolution is the outcome of a successful ResolveOverload call.
type Resolution struct {
	ResultType types.Type
	Overloads  []*env.Overload
}

// instantiated is one overload's parameters and result after a single,
// shared fresh-variable substitution (so repeated type parameter names
// within the one overload resolve consistently with each other).
type instantiated struct {
	params []types.Type
	result types.Type
}

func (c *Context) instantiateOverload(ov *env.Overload) instantiated {
	subst := map[string]types.Type{}
	params := make([]types.Type, len(ov.Parameters))
	for i, p := range ov.Parameters {
		params[i] = c.instantiate(p, subst)
	}
	return instantiated{params: params, result: c.instantiate(ov.Result, subst)}
}

// ResolveOverload filters decl's overloads by member-ness and arity, then
// tries each survivor's instantiation against argTypes, rolling back any
// bindings a failed (or already-evaluated) candidate made so sibling
// candidates and subsequent calls see a clean context. It reports the
// result type that every surviving overload agrees on, or dyn if they
// disagree, plus every surviving overload (the rewriter stamps all of
// their IDs onto the call, spec §4.8). false means no overload survived.
func (c *Context) ResolveOverload(decl *env.FunctionDecl, argTypes []types.Type, isReceiver bool) (*Resolution, bool) {
	var survivors []*env.Overload
	var resultTypes []types.Type

	for _, ov := range decl.Overloads {
		if ov.Member != isReceiver || len(ov.Parameters) != len(argTypes) {
			continue
		}
		mark := c.Snapshot()
		inst := c.instantiateOverload(ov)
		ok := true
		for i := range argTypes {
			if !c.IsAssignable(argTypes[i], inst.params[i]) {
				ok = false
				break
			}
		}
		var result types.Type
		if ok {
			result = c.FinalizeType(inst.result)
		}
		c.Rollback(mark)
		if ok {
			survivors = append(survivors, ov)
			resultTypes = append(resultTypes, result)
		}
	}

	if len(survivors) == 0 {
		return nil, false
	}
	resultType := resultTypes[0]
	for _, rt := range resultTypes[1:] {
		if !rt.Equal(resultType) {
			resultType = types.Dyn
			break
		}
	}
	return &Resolution{ResultType: resultType, Overloads: survivors}, true
}
