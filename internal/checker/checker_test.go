package checker_test

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/exprlang/typecheck/internal/ast"
	"github.com/exprlang/typecheck/internal/checker"
	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/types"
)

// --- fixture environment and AST builders, mirroring cmd/typecheck's demo
// harness but kept local to this test file so each test gets its own fresh
// node-identity counter. ---

func fixtureEnv() *env.TypeCheckEnv {
	e := env.New("")
	_ = e.AddFunction(&env.FunctionDecl{
		Name: "_+_",
		Overloads: []*env.Overload{
			{ID: "add_int64", Parameters: []types.Type{types.Int, types.Int}, Result: types.Int},
			{ID: "add_uint64", Parameters: []types.Type{types.Uint, types.Uint}, Result: types.Uint},
			{ID: "add_double", Parameters: []types.Type{types.Double, types.Double}, Result: types.Double},
			{ID: "add_string", Parameters: []types.Type{types.String, types.String}, Result: types.String},
			{ID: "add_list", Parameters: []types.Type{
				types.NewList(types.NewTypeParam("T")),
				types.NewList(types.NewTypeParam("T")),
			}, Result: types.NewList(types.NewTypeParam("T"))},
		},
	})
	_ = e.AddFunction(&env.FunctionDecl{
		Name: "size",
		Overloads: []*env.Overload{
			{ID: "list_size", Member: true, Parameters: []types.Type{types.NewList(types.NewTypeParam("T"))}, Result: types.Int},
		},
	})
	e.AddType("pkg.M", types.NewStruct("pkg.M"))
	e.AddStructField("pkg.M", env.StructTypeField{Name: "f", Type: types.Int})
	_ = e.AddFunction(&env.FunctionDecl{
		Name: "a.b.c",
		Overloads: []*env.Overload{
			{ID: "a_b_c_int", Parameters: []types.Type{types.Int}, Result: types.Bool},
		},
	})
	return e
}

type builder struct{ id int64 }

func (b *builder) next() int64 { b.id++; return b.id }

func (b *builder) litInt(v int64) ast.Expr {
	return &ast.LiteralExpr{NodeID: b.next(), Value: ast.Constant{Kind: ast.ConstInt, IntValue: v}}
}
func (b *builder) litStr(s string) ast.Expr {
	return &ast.LiteralExpr{NodeID: b.next(), Value: ast.Constant{Kind: ast.ConstString, StringValue: s}}
}
func (b *builder) litBool(v bool) ast.Expr {
	return &ast.LiteralExpr{NodeID: b.next(), Value: ast.Constant{Kind: ast.ConstBool, BoolValue: v}}
}
func (b *builder) ident(name string) ast.Expr { return &ast.IdentExpr{NodeID: b.next(), Name: name} }
func (b *builder) call(target ast.Expr, function string, args ...ast.Expr) ast.Expr {
	return &ast.CallExpr{NodeID: b.next(), Target: target, Function: function, Args: args}
}
func (b *builder) selectChain(base string, fields ...string) ast.Expr {
	var e ast.Expr = &ast.IdentExpr{NodeID: b.next(), Name: base}
	for _, f := range fields {
		e = &ast.SelectExpr{NodeID: b.next(), Operand: e, Field: f}
	}
	return e
}
func (b *builder) field(name string, v ast.Expr) ast.StructField {
	return ast.StructField{NodeID: b.next(), Name: name, Value: v}
}
func (b *builder) structLit(name string, fields ...ast.StructField) ast.Expr {
	return &ast.CreateStructExpr{NodeID: b.next(), Name: name, Fields: fields}
}
func (b *builder) listLit(elems ...ast.Expr) ast.Expr {
	els := make([]ast.ListElement, len(elems))
	for i, e := range elems {
		els[i] = ast.ListElement{Value: e}
	}
	return &ast.CreateListExpr{NodeID: b.next(), Elements: els}
}
func (b *builder) comprehension(iterRange ast.Expr, iterVar string, accuInit ast.Expr, accuVar string, loopCond, loopStep, result ast.Expr) ast.Expr {
	return &ast.ComprehensionExpr{
		NodeID:        b.next(),
		IterRange:     iterRange,
		IterVar:       iterVar,
		AccuInit:      accuInit,
		AccuVar:       accuVar,
		LoopCondition: loopCond,
		LoopStep:      loopStep,
		Result:        result,
	}
}

func TestAddLiteralsChecks(t *testing.T) {
	b := &builder{}
	root := b.call(nil, "_+_", b.litInt(1), b.litInt(2))
	result, err := checker.Check(root, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, result.IsChecked)
	be.Equal(t, len(result.Issues), 0)
	be.Equal(t, result.Types[root.ID()].Kind, types.FlatPrimitive)
	be.Equal(t, result.Types[root.ID()].Primitive, types.PrimitiveInt64)
}

func TestAddNoMatchingOverloadIsError(t *testing.T) {
	b := &builder{}
	root := b.call(nil, "_+_", b.litStr("a"), b.litInt(2))
	result, err := checker.Check(root, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, !result.IsChecked)
	be.True(t, len(result.Issues) > 0)
	be.Equal(t, result.AST, nil)
}

func TestStructCreationChecks(t *testing.T) {
	b := &builder{}
	root := b.structLit("pkg.M", b.field("f", b.litInt(1)))
	result, err := checker.Check(root, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, result.IsChecked)
	be.Equal(t, result.References[root.ID()].Name, "pkg.M")
}

func TestStructFieldTypeMismatchIsError(t *testing.T) {
	b := &builder{}
	root := b.structLit("pkg.M", b.field("f", b.litStr("x")))
	result, err := checker.Check(root, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, !result.IsChecked)
	be.True(t, len(result.Issues) > 0)
}

func TestHeterogeneousListWidensToDynWithoutError(t *testing.T) {
	b := &builder{}
	root := b.listLit(b.litInt(1), b.litStr("x"), b.litInt(2))
	result, err := checker.Check(root, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, result.IsChecked)
	be.Equal(t, len(result.Issues), 0)
	be.Equal(t, result.Types[root.ID()].Kind, types.FlatList)
	be.Equal(t, result.Types[root.ID()].Elem.Kind, types.FlatDyn)
}

func TestComprehensionThenReceiverCallChecks(t *testing.T) {
	// Models [x for x in [1,2,3]].size() the way CEL builds it: acc starts
	// as an empty list, each step appends the current element, and the
	// comprehension's result is the accumulator — so result, checked in the
	// accu scope (spec §4.7), never references iter_var.
	b := &builder{}
	comp := b.comprehension(
		b.listLit(b.litInt(1), b.litInt(2), b.litInt(3)), "x",
		b.listLit(), "acc",
		b.litBool(true),
		b.call(nil, "_+_", b.ident("acc"), b.listLit(b.ident("x"))),
		b.ident("acc"),
	)
	root := b.call(comp, "size")
	result, err := checker.Check(root, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, result.IsChecked)
	be.Equal(t, len(result.Issues), 0)
	be.Equal(t, result.Types[root.ID()].Kind, types.FlatPrimitive)
	be.Equal(t, result.Types[root.ID()].Primitive, types.PrimitiveInt64)
}

func TestNamespacedCallDropsReceiverTarget(t *testing.T) {
	b := &builder{}
	root := b.call(b.selectChain("a", "b"), "c", b.litInt(1))
	result, err := checker.Check(root, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, result.IsChecked)
	be.Equal(t, len(result.Issues), 0)

	call := root.(*ast.CallExpr)
	be.Equal(t, call.Target, nil)
	be.Equal(t, call.Function, "a.b.c")
	be.Equal(t, result.Types[root.ID()].Kind, types.FlatPrimitive)
	be.Equal(t, result.Types[root.ID()].Primitive, types.PrimitiveBool)
}

// --- testable properties (spec §8) ---

func TestDeterminismAcrossRepeatedChecks(t *testing.T) {
	build := func() ast.Expr {
		b := &builder{}
		return b.call(nil, "_+_", b.litInt(1), b.litInt(2))
	}
	r1, err1 := checker.Check(build(), &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	r2, err2 := checker.Check(build(), &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err1, nil)
	be.Err(t, err2, nil)
	be.Equal(t, r1.IsChecked, r2.IsChecked)
	be.Equal(t, len(r1.Issues), len(r2.Issues))
}

func TestComprehensionScopeHygiene(t *testing.T) {
	// iter_var must not be visible while checking iter_range or accu_init.
	b := &builder{}
	comp := b.comprehension(
		b.ident("x"), "x", // iter_range references "x" before it's bound: undeclared.
		b.litInt(0), "acc",
		b.litBool(true), b.ident("x"), b.ident("acc"),
	)
	result, err := checker.Check(comp, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, !result.IsChecked)
	be.True(t, len(result.Issues) > 0)
}

func TestNoDanglingTypeVariablesInOutput(t *testing.T) {
	b := &builder{}
	root := b.listLit() // empty list literal: fresh, never-bound type variable.
	result, err := checker.Check(root, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, result.IsChecked)
	flat := result.Types[root.ID()]
	be.Equal(t, flat.Kind, types.FlatList)
	be.Equal(t, flat.Elem.Kind, types.FlatDyn)
}

func TestUnsupportedMapKeyIsWarningUnlessStrict(t *testing.T) {
	b := &builder{}
	m := &ast.CreateMapExpr{NodeID: 100, Entries: []ast.MapEntry{
		{Key: b.listLit(b.litInt(1)), Value: b.litInt(1)},
	}}

	lenient, err := checker.Check(m, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{})
	be.Err(t, err, nil)
	be.True(t, lenient.IsChecked)
	be.Equal(t, len(lenient.Issues), 1)
	be.Equal(t, lenient.Issues[0].Severity.String(), "warning")

	strict, err := checker.Check(m, &ast.SourceInfo{}, fixtureEnv(), checker.CheckOptions{StrictMapKeys: true})
	be.Err(t, err, nil)
	be.True(t, !strict.IsChecked)
	be.True(t, len(strict.Issues) > 0)
}
