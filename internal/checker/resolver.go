// Package checker implements the two-pass type checker: the Resolver
// (this file, plus resolver_calls.go, resolver_literals.go and
// resolver_comprehension.go)
// walks the input AST once, typing every node and recording every name
// resolution into side tables; the Rewriter (rewriter.go) then folds
// those side tables into the output AST. checker.go wires the two passes
// together behind the Check entry point (spec §2, §4, §5).
//
// The traversal style — a single post-order switch over AST node kinds,
// threading a *varscope.Scope and writing into per-expression side
// tables — is grounded on the teacher's internal/checker/checker.go
// checkExpression method; generalised here to populate four side tables
// instead of one (types only), and to stop short of mutating the AST
// in-place (that's the Rewriter's job, spec §4.8) so that an error-latched
// check can still report every issue without touching the tree at all.
package checker

import (
	"fmt"
	"strings"

	"github.com/exprlang/typecheck/internal/ast"
	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/inference"
	"github.com/exprlang/typecheck/internal/issue"
	"github.com/exprlang/typecheck/internal/namespace"
	"github.com/exprlang/typecheck/internal/types"
	"github.com/exprlang/typecheck/internal/varscope"
)

// attrBinding records what an identifier or a resolved qualifier-chain
// prefix turned out to name (spec §2's "attributes" side table).
type attrBinding struct {
	Decl         *env.VariableDecl
	ResolvedName string
}

// funcBinding records what a call resolved to (spec §2's "functions" side
// table): the matched declaration, every overload that survived
// resolution, the name the call should carry after rewriting, and
// whether the call's receiver target should be dropped because it turned
// out to be a namespace prefix rather than a real receiver value.
type funcBinding struct {
	Decl             *env.FunctionDecl
	Resolution       *inference.Resolution
	ResolvedName     string
	NamespaceRewrite bool
}

// Resolver performs the single post-order pass over the input AST.
type Resolver struct {
	env    *env.TypeCheckEnv
	src    *ast.SourceInfo
	infer  *inference.Context
	issues *issue.List
	opts   CheckOptions

	types       map[int64]types.Type
	attributes  map[int64]*attrBinding
	functions   map[int64]*funcBinding
	structTypes map[int64]string
}

func newResolver(e *env.TypeCheckEnv, src *ast.SourceInfo, opts CheckOptions) *Resolver {
	return &Resolver{
		env:         e,
		src:         src,
		infer:       inference.New(e),
		issues:      issue.NewList(opts.MaxIssues),
		opts:        opts,
		types:       map[int64]types.Type{},
		attributes:  map[int64]*attrBinding{},
		functions:   map[int64]*funcBinding{},
		structTypes: map[int64]string{},
	}
}

// run type-checks root in the root scope and returns its type.
func (r *Resolver) run(root ast.Expr) types.Type {
	return r.checkExpr(root, varscope.NewRoot(r.env))
}

func (r *Resolver) locate(e ast.Expr) issue.Location {
	if r.src == nil || e == nil {
		return issue.Location{Line: 1, Column: 1}
	}
	off, ok := r.src.Positions[e.ID()]
	if !ok {
		return issue.Location{Line: 1, Column: 1}
	}
	return issue.LocationForOffset(r.src.LineOffsets, off)
}

// checkExpr dispatches on node kind and is the only entry point used for
// a "standalone" sub-expression — one that is not itself an intermediate
// link of a select/call qualifier chain being walked by
// resolveQualifierChain. Chain-internal nodes are typed directly by the
// chain walker instead of recursing back through here (spec §4.5 step 1
// vs steps 2-3).
func (r *Resolver) checkExpr(e ast.Expr, scope *varscope.Scope) types.Type {
	var t types.Type
	switch v := e.(type) {
	case *ast.LiteralExpr:
		t = r.checkLiteral(v)
	case *ast.IdentExpr:
		t = r.checkIdent(v, scope)
	case *ast.SelectExpr:
		t = r.checkSelect(v, scope)
	case *ast.CallExpr:
		t = r.checkCall(v, scope)
	case *ast.CreateListExpr:
		t = r.checkCreateList(v, scope)
	case *ast.CreateMapExpr:
		t = r.checkCreateMap(v, scope)
	case *ast.CreateStructExpr:
		t = r.checkCreateStruct(v, scope)
	case *ast.ComprehensionExpr:
		t = r.checkComprehension(v, scope)
	default:
		panic(fmt.Sprintf("checker: unhandled expression node type %T", e))
	}
	r.types[e.ID()] = t
	return t
}

// checkIdent is spec §4.5 step 1: a sole identifier on its path resolves
// as a simple variable via NamespaceGenerator, trying scope lookup at
// every container-prefix candidate.
func (r *Resolver) checkIdent(v *ast.IdentExpr, scope *varscope.Scope) types.Type {
	decl, resolvedName, found := r.resolveSimpleVariable(v.Name, scope)
	if !found {
		r.issueUndeclared(v, v.Name)
		return types.Dyn
	}
	r.attributes[v.ID()] = &attrBinding{Decl: decl, ResolvedName: resolvedName}
	return decl.Type
}

func (r *Resolver) resolveSimpleVariable(name string, scope *varscope.Scope) (*env.VariableDecl, string, bool) {
	var found *env.VariableDecl
	var foundName string
	namespace.GenerateNameCandidates(r.env.Container, name, func(candidate string) bool {
		if d, ok := scope.Lookup(candidate); ok {
			found, foundName = d, candidate
			return false
		}
		return true
	})
	return found, foundName, found != nil
}

func (r *Resolver) issueUndeclared(e ast.Expr, name string) {
	r.issues.Errorf(r.locate(e), "undeclared reference to '%s' (in container '%s')", name, r.env.Container)
}

// checkSelect handles a select reached outside of the call-target
// detection in checkCall (spec §4.5 steps 2-3, §4.6). If the whole select
// chain bottoms out at a bare identifier, it's resolved as a
// variable-plus-trailing-selects qualifier chain exactly like a call's
// receiver target would be; otherwise it's a single select applied to
// whatever type its operand checks to.
func (r *Resolver) checkSelect(v *ast.SelectExpr, scope *varscope.Scope) types.Type {
	if qualifiers, nodes, ok := flattenIdentSelectChain(v); ok {
		return r.resolveQualifierChain(qualifiers, nodes, scope)
	}
	operandType := r.checkExpr(v.Operand, scope)
	return r.applySelect(operandType, v.Field, v.TestOnly, v)
}

// applySelect implements spec §4.6.
func (r *Resolver) applySelect(operand types.Type, field string, testOnly bool, at ast.Expr) types.Type {
	if opt, ok := operand.OptionalParam(); ok {
		inner := r.applySelect(opt, field, testOnly, at)
		if testOnly {
			return types.Bool
		}
		return inner
	}
	if testOnly {
		// A presence test always yields bool, but still needs the field to
		// resolve against a struct to be meaningful; unresolvable operands
		// (dyn/any) are accepted unconditionally per the dyn/any case below.
		switch operand.Kind() {
		case types.KindDyn, types.KindAny:
			return types.Bool
		case types.KindStruct:
			if _, ok := r.env.LookupField(operand.Name(), field); !ok {
				r.issues.Errorf(r.locate(at), "undefined field '%s' for struct '%s'", field, operand.Name())
			}
			return types.Bool
		default:
			return types.Bool
		}
	}
	switch operand.Kind() {
	case types.KindDyn, types.KindAny:
		return types.Dyn
	case types.KindStruct:
		f, ok := r.env.LookupField(operand.Name(), field)
		if !ok {
			r.issues.Errorf(r.locate(at), "undefined field '%s' for struct '%s'", field, operand.Name())
			return types.Dyn
		}
		return f.Type
	case types.KindMap:
		key := operand.Parameters()[0]
		if types.IsAssignable(types.String, key) {
			return operand.Parameters()[1]
		}
		r.issues.Errorf(r.locate(at), "expression of type '%s' cannot be the operand of a select operation", operand.DebugString())
		return types.Dyn
	default:
		r.issues.Errorf(r.locate(at), "expression of type '%s' cannot be the operand of a select operation", operand.DebugString())
		return types.Dyn
	}
}

// flattenIdentSelectChain walks e (and, for a SelectExpr, its operand
// chain) down to a base identifier, returning the dotted name segments in
// source order (base identifier first) along with the chain of nodes
// each segment boundary corresponds to. ok is false if the chain bottoms
// out at anything other than a plain identifier, or passes through a
// test-only select (which can't be a namespace/variable qualifier).
func flattenIdentSelectChain(e ast.Expr) (qualifiers []string, nodes []ast.Expr, ok bool) {
	switch v := e.(type) {
	case *ast.IdentExpr:
		return []string{v.Name}, []ast.Expr{v}, true
	case *ast.SelectExpr:
		if v.TestOnly {
			return nil, nil, false
		}
		baseQ, baseN, baseOK := flattenIdentSelectChain(v.Operand)
		if !baseOK {
			return nil, nil, false
		}
		return append(baseQ, v.Field), append(baseN, v), true
	default:
		return nil, nil, false
	}
}

// resolveQualifierChain implements spec §4.5 step 3: find the longest
// leading run of qualifiers that names a variable (trying, at each
// length, every container-prefix candidate via NamespaceGenerator so
// that the two tie-break rules in §4.1 fall out of the enumeration order
// for free), then apply the remaining qualifiers as plain selects over
// that variable's type.
func (r *Resolver) resolveQualifierChain(qualifiers []string, nodes []ast.Expr, scope *varscope.Scope) types.Type {
	full := strings.Join(qualifiers, ".")
	var found *env.VariableDecl
	var foundName string
	var matchedLen int
	namespace.GenerateCandidates(r.env.Container, full, func(candidate string, qualifierLen int) bool {
		if d, ok := scope.Lookup(candidate); ok {
			found, foundName, matchedLen = d, candidate, qualifierLen
			return false
		}
		return true
	})
	if found == nil {
		r.issueUndeclared(nodes[0], qualifiers[0])
		return types.Dyn
	}
	// The node at index matchedLen-1 is where the matched variable name
	// itself terminates (a compound dotted variable name absorbs every
	// node up to and including that index without them having independent
	// select semantics of their own).
	r.attributes[nodes[matchedLen-1].ID()] = &attrBinding{Decl: found, ResolvedName: foundName}
	t := found.Type
	r.types[nodes[matchedLen-1].ID()] = t
	for i := matchedLen; i < len(qualifiers); i++ {
		t = r.applySelect(t, qualifiers[i], false, nodes[i])
		r.types[nodes[i].ID()] = t
	}
	return t
}
