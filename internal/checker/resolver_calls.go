package checker

import (
	"strings"

	"github.com/exprlang/typecheck/internal/ast"
	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/namespace"
	"github.com/exprlang/typecheck/internal/types"
	"github.com/exprlang/typecheck/internal/varscope"
)

// checkCall implements spec §4.5's joint call/receiver resolution. Args
// are checked first regardless of outcome, since they're typed the same
// way whichever interpretation of the target wins.
func (r *Resolver) checkCall(v *ast.CallExpr, scope *varscope.Scope) types.Type {
	argTypes := make([]types.Type, len(v.Args))
	for i, a := range v.Args {
		argTypes[i] = r.checkExpr(a, scope)
	}

	if v.Target != nil {
		if qualifiers, targetNodes, ok := flattenIdentSelectChain(v.Target); ok {
			qualifiedName := strings.Join(qualifiers, ".") + "." + v.Function
			if t, ok := r.resolveFunctionCall(v, qualifiedName, argTypes, false, true); ok {
				return t
			}
			receiverType := r.resolveQualifierChain(qualifiers, targetNodes, scope)
			full := append([]types.Type{receiverType}, argTypes...)
			if t, ok := r.resolveFunctionCall(v, v.Function, full, true, false); ok {
				return t
			}
			return types.Dyn
		}
		receiverType := r.checkExpr(v.Target, scope)
		full := append([]types.Type{receiverType}, argTypes...)
		if t, ok := r.resolveFunctionCall(v, v.Function, full, true, false); ok {
			return t
		}
		return types.Dyn
	}

	if t, ok := r.resolveFunctionCall(v, v.Function, argTypes, false, false); ok {
		return t
	}
	return types.Dyn
}

// resolveFunctionCall looks up name (a plain function name, or a
// constructed namespaced qualified name) via NamespaceGenerator, then
// runs overload resolution against argTypes. When isNamespaceAttempt is
// true, a miss at either stage is silent — the caller falls through to
// treat the call as ordinary receiver-style syntax instead (spec §4.5's
// "maybe-namespaced" call).
func (r *Resolver) resolveFunctionCall(call *ast.CallExpr, name string, argTypes []types.Type, isReceiver, isNamespaceAttempt bool) (types.Type, bool) {
	decl, resolvedName, found := r.lookupFunctionByName(name)
	if !found {
		if !isNamespaceAttempt {
			r.issueUndeclared(call, call.Function)
		}
		return types.Dyn, false
	}
	res, ok := r.infer.ResolveOverload(decl, argTypes, isReceiver)
	if !ok {
		if isNamespaceAttempt {
			return types.Dyn, false
		}
		r.issues.Errorf(r.locate(call), "found no matching overload for '%s' applied to (%s)", call.Function, debugJoin(argTypes))
		return types.Dyn, false
	}
	r.functions[call.ID()] = &funcBinding{
		Decl:             decl,
		Resolution:       res,
		ResolvedName:     resolvedName,
		NamespaceRewrite: isNamespaceAttempt,
	}
	return res.ResultType, true
}

func (r *Resolver) lookupFunctionByName(name string) (*env.FunctionDecl, string, bool) {
	var found *env.FunctionDecl
	var foundName string
	namespace.GenerateNameCandidates(r.env.Container, name, func(candidate string) bool {
		if d, ok := r.env.LookupFunction(candidate); ok {
			found, foundName = d, candidate
			return false
		}
		return true
	})
	return found, foundName, found != nil
}

func debugJoin(ts []types.Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.DebugString()
	}
	return strings.Join(parts, ", ")
}
