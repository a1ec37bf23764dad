package checker

import (
	"github.com/exprlang/typecheck/internal/ast"
	"github.com/exprlang/typecheck/internal/types"
)

// Reference records what a node in the output AST resolved to (spec §6's
// reference map).
type Reference struct {
	Name        string
	OverloadIDs []string
}

// rewriter implements spec §4.8: a second pass over the same tree the
// Resolver just walked, stamping resolved names, overload IDs, and
// flattened types onto every node the side tables have an entry for, and
// clearing a namespaced call's receiver target. It only ever runs when
// the Resolver reported no error-severity issue (spec §2, §7's "error
// latching").
type rewriter struct {
	r    *Resolver
	refs map[int64]*Reference
	flat map[int64]*types.FlattenedType
}

func newRewriter(r *Resolver) *rewriter {
	return &rewriter{
		r:    r,
		refs: map[int64]*Reference{},
		flat: map[int64]*types.FlattenedType{},
	}
}

// Rewrite mutates root in place (clearing namespaced-call receivers,
// renaming every resolved call and struct creation to its resolved
// qualified name) and
// returns the reference and flattened-type maps keyed by node identity.
func (rw *rewriter) Rewrite(root ast.Expr) (map[int64]*Reference, map[int64]*types.FlattenedType) {
	rw.walk(root)
	for id, t := range rw.r.types {
		finalized := rw.r.infer.FinalizeType(t)
		flat := types.Flatten(finalized)
		rw.flat[id] = &flat
	}
	return rw.refs, rw.flat
}

func (rw *rewriter) walk(e ast.Expr) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case *ast.IdentExpr:
		if a, ok := rw.r.attributes[v.ID()]; ok {
			rw.refs[v.ID()] = &Reference{Name: a.ResolvedName}
		}
	case *ast.SelectExpr:
		if a, ok := rw.r.attributes[v.ID()]; ok {
			rw.refs[v.ID()] = &Reference{Name: a.ResolvedName}
		}
		rw.walk(v.Operand)
	case *ast.CallExpr:
		if fb, ok := rw.r.functions[v.ID()]; ok {
			rw.refs[v.ID()] = &Reference{Name: fb.ResolvedName, OverloadIDs: overloadIDs(fb)}
			v.Function = fb.ResolvedName
			if fb.NamespaceRewrite {
				v.Target = nil
			}
		}
		rw.walk(v.Target)
		for _, a := range v.Args {
			rw.walk(a)
		}
	case *ast.CreateListExpr:
		for _, el := range v.Elements {
			rw.walk(el.Value)
		}
	case *ast.CreateMapExpr:
		for _, en := range v.Entries {
			rw.walk(en.Key)
			rw.walk(en.Value)
		}
	case *ast.CreateStructExpr:
		if name, ok := rw.r.structTypes[v.ID()]; ok {
			rw.refs[v.ID()] = &Reference{Name: name}
			v.Name = name
		}
		for _, f := range v.Fields {
			rw.walk(f.Value)
		}
	case *ast.ComprehensionExpr:
		rw.walk(v.IterRange)
		rw.walk(v.AccuInit)
		rw.walk(v.LoopCondition)
		rw.walk(v.LoopStep)
		rw.walk(v.Result)
	case *ast.LiteralExpr:
		// no reference to stamp
	default:
		panic("checker: unhandled expression node type in rewriter")
	}
}

func overloadIDs(fb *funcBinding) []string {
	if fb.Resolution == nil {
		return nil
	}
	ids := make([]string, len(fb.Resolution.Overloads))
	for i, ov := range fb.Resolution.Overloads {
		ids[i] = ov.ID
	}
	return ids
}
