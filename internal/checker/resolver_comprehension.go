package checker

import (
	"github.com/exprlang/typecheck/internal/ast"
	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/types"
	"github.com/exprlang/typecheck/internal/varscope"
)

// checkComprehension implements spec §4.7: iter_range and accu_init are
// checked in the comprehension's own (parent) scope, so that neither
// iter_var nor accu_var is visible while checking either of them (the
// "scope hygiene" property of spec §8); loop_condition and result are
// checked in a scope with only accu_var visible; loop_step is checked in
// a scope with both accu_var and, nested inside it, iter_var visible.
func (r *Resolver) checkComprehension(v *ast.ComprehensionExpr, scope *varscope.Scope) types.Type {
	rangeType := r.checkExpr(v.IterRange, scope)
	accuInitType := r.checkExpr(v.AccuInit, scope)

	iterVarType := r.iterVarType(rangeType, v.IterRange)

	accuScope := scope.Push(map[string]*env.VariableDecl{
		v.AccuVar: {Name: v.AccuVar, Type: accuInitType},
	})
	iterScope := accuScope.Push(map[string]*env.VariableDecl{
		v.IterVar: {Name: v.IterVar, Type: iterVarType},
	})
	if iterScope.Depth() != scope.Depth()+2 {
		// Scope stack desynchronisation (spec §7's named fatal case): the
		// two pushes above must always land exactly two levels deeper than
		// the scope this comprehension was itself checked in.
		panic("checker: comprehension scope stack desynchronised")
	}

	r.checkExpr(v.LoopCondition, accuScope)
	r.checkExpr(v.LoopStep, iterScope)
	return r.checkExpr(v.Result, accuScope)
}

func (r *Resolver) iterVarType(rangeType types.Type, at ast.Expr) types.Type {
	switch rangeType.Kind() {
	case types.KindList:
		return rangeType.Parameters()[0]
	case types.KindMap:
		return rangeType.Parameters()[0]
	case types.KindDyn:
		return types.Dyn
	default:
		r.issues.Errorf(r.locate(at), "expression of type '%s' cannot be range of a comprehension (must be list, map, or dynamic)", rangeType.DebugString())
		return types.Dyn
	}
}
