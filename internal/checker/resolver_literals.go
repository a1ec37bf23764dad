package checker

import (
	"github.com/exprlang/typecheck/internal/ast"
	"github.com/exprlang/typecheck/internal/namespace"
	"github.com/exprlang/typecheck/internal/types"
	"github.com/exprlang/typecheck/internal/varscope"
)

// checkLiteral types a constant (spec §4.4's "literals get their obvious
// type" clause).
func (r *Resolver) checkLiteral(v *ast.LiteralExpr) types.Type {
	switch v.Value.Kind {
	case ast.ConstNull:
		return types.Null
	case ast.ConstBool:
		return types.Bool
	case ast.ConstInt:
		return types.Int
	case ast.ConstUint:
		return types.Uint
	case ast.ConstDouble:
		return types.Double
	case ast.ConstString:
		return types.String
	case ast.ConstBytes:
		return types.Bytes
	default:
		r.issues.Errorf(r.locate(v), "unsupported constant kind %d", v.Value.Kind)
		return types.Dyn
	}
}

// checkCreateList implements spec §4.4's list-literal widening: the
// running element type collapses to dyn at the first mismatching
// element; an optional element contributes its peeled parameter type; an
// empty list gets a fresh list(alpha).
func (r *Resolver) checkCreateList(v *ast.CreateListExpr, scope *varscope.Scope) types.Type {
	if len(v.Elements) == 0 {
		return r.infer.FreeList()
	}
	var running types.Type
	set := false
	for _, el := range v.Elements {
		et := r.checkExpr(el.Value, scope)
		if el.Optional {
			if peeled, ok := et.OptionalParam(); ok {
				et = peeled
			}
		}
		if !set {
			running, set = et, true
		} else if !running.Equal(et) {
			running = types.Dyn
		}
	}
	return types.NewList(running)
}

// checkCreateMap implements spec §4.4's map-literal widening: keys and
// values widen independently of each other, an optional value
// contributes its peeled type, an empty map gets a fresh map(alpha,
// beta), and a key whose kind isn't bool/int/uint/string/dyn is a
// warning (or, with CheckOptions.StrictMapKeys, an error).
func (r *Resolver) checkCreateMap(v *ast.CreateMapExpr, scope *varscope.Scope) types.Type {
	if len(v.Entries) == 0 {
		return r.infer.FreeMap()
	}
	var runningKey, runningValue types.Type
	set := false
	for _, entry := range v.Entries {
		kt := r.checkExpr(entry.Key, scope)
		vt := r.checkExpr(entry.Value, scope)
		if entry.Optional {
			if peeled, ok := vt.OptionalParam(); ok {
				vt = peeled
			}
		}
		r.checkMapKeyKind(kt, entry.Key)
		if !set {
			runningKey, runningValue, set = kt, vt, true
			continue
		}
		if !runningKey.Equal(kt) {
			runningKey = types.Dyn
		}
		if !runningValue.Equal(vt) {
			runningValue = types.Dyn
		}
	}
	return types.NewMap(runningKey, runningValue)
}

func (r *Resolver) checkMapKeyKind(kt types.Type, at ast.Expr) {
	switch kt.Kind() {
	case types.KindBool, types.KindInt, types.KindUint, types.KindString, types.KindDyn:
		return
	}
	msg := "unsupported map key type '%s'"
	if r.opts.StrictMapKeys {
		r.issues.Errorf(r.locate(at), msg, kt.DebugString())
	} else {
		r.issues.Warningf(r.locate(at), msg, kt.DebugString())
	}
}

// checkCreateStruct implements spec §4.4's struct/message-creation
// typing: resolve the struct name against the environment's type names
// via NamespaceGenerator, reject anything that isn't a struct (or a
// recognised well-known wrapper type), then check each field
// independently — a field-type mismatch doesn't stop the remaining
// fields from being checked too, matching the "short-circuits only the
// node it occurs on" rule in spec §5.
func (r *Resolver) checkCreateStruct(v *ast.CreateStructExpr, scope *varscope.Scope) types.Type {
	structType, resolvedName, found := r.resolveTypeName(v.Name)
	if !found {
		r.issues.Errorf(r.locate(v), "undeclared reference to type '%s' (in container '%s')", v.Name, r.env.Container)
		for _, f := range v.Fields {
			r.checkExpr(f.Value, scope)
		}
		return types.Dyn
	}
	if !supportsMessageCreation(structType) {
		r.issues.Errorf(r.locate(v), "'%s' does not support message creation", resolvedName)
		for _, f := range v.Fields {
			r.checkExpr(f.Value, scope)
		}
		return structType
	}
	r.structTypes[v.ID()] = resolvedName
	for _, f := range v.Fields {
		valueType := r.checkExpr(f.Value, scope)
		field, ok := r.env.LookupField(resolvedName, f.Name)
		if !ok {
			r.issues.Errorf(r.locate(f), "undefined field '%s' for struct '%s'", f.Name, resolvedName)
			continue
		}
		fieldType := field.Type
		if f.Optional {
			fieldType = types.NewOptional(fieldType)
		}
		if !r.infer.IsAssignable(valueType, fieldType) {
			r.issues.Errorf(r.locate(f), "expected type of field '%s' is '%s' but provided type is '%s'",
				f.Name, fieldType.DebugString(), valueType.DebugString())
		}
	}
	return structType
}

func (r *Resolver) resolveTypeName(name string) (types.Type, string, bool) {
	var found types.Type
	var foundName string
	ok := false
	namespace.GenerateNameCandidates(r.env.Container, name, func(candidate string) bool {
		if t, exists := r.env.LookupType(candidate); exists {
			found, foundName, ok = t, candidate, true
			return false
		}
		return true
	})
	return found, foundName, ok
}

func supportsMessageCreation(t types.Type) bool {
	switch t.Kind() {
	case types.KindStruct, types.KindAny, types.KindDuration, types.KindTimestamp:
		return true
	default:
		return t.IsWrapper()
	}
}
