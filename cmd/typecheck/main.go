// Command typecheck is a small harness for exercising checker.Check
// without a parser in scope (spec §1 excludes the parser as a
// collaborator): it builds a handful of fixed ASTs directly in Go and
// runs each one through the checker, printing the resulting issues or
// checked-AST summary.
//
// Grounded on the teacher's cmd/intentc, which likewise parses flags with
// the standard library (no CLI framework appears anywhere in the
// retrieved example pack) and prints results with fmt; the -debug flag
// and its go-spew dump are new, added because this checker's Debug option
// has no other outlet without a parser to drive it interactively.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/exprlang/typecheck/internal/ast"
	"github.com/exprlang/typecheck/internal/checker"
	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/types"
)

func main() {
	scenario := flag.String("scenario", "add", "which built-in scenario to check (add, bad-add, struct, bad-struct, list, comprehension, namespaced-call)")
	debug := flag.Bool("debug", false, "dump resolver side tables with go-spew before rewriting")
	strictMapKeys := flag.Bool("strict-map-keys", false, "treat unsupported map key types as errors instead of warnings")
	flag.Parse()

	build, ok := scenarios[*scenario]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q\n", *scenario)
		os.Exit(2)
	}

	e := fixtureEnv()
	root := build()

	result, err := checker.Check(root, &ast.SourceInfo{}, e, checker.CheckOptions{
		Debug:         *debug,
		StrictMapKeys: *strictMapKeys,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	for _, iss := range result.Issues {
		fmt.Printf("%s\n", iss)
	}
	if !result.IsChecked {
		fmt.Println("checked: false")
		return
	}
	fmt.Println("checked: true")
	if rootType, ok := result.Types[root.ID()]; ok {
		fmt.Printf("root type: %s\n", spew.Sdump(rootType))
	}
}

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

// scenarios builds each demo AST fresh (not memoized) so that node IDs,
// assigned sequentially by the builder helpers below, never collide
// within the one tree actually checked by a given run.
var scenarios = map[string]func() ast.Expr{
	"add": func() ast.Expr {
		return call(nil, "_+_", litInt(1), litInt(2))
	},
	"bad-add": func() ast.Expr {
		return call(nil, "_+_", litStr("a"), litInt(2))
	},
	"struct": func() ast.Expr {
		return structLit("pkg.M", field("f", litInt(1)))
	},
	"bad-struct": func() ast.Expr {
		return structLit("pkg.M", field("f", litStr("x")))
	},
	"list": func() ast.Expr {
		return listLit(litInt(1), litStr("x"), litInt(2))
	},
	"comprehension": func() ast.Expr {
		body := comprehension(listLit(litInt(1), litInt(2), litInt(3)), "x", listLit(), "acc", litBool(true), call(nil, "_+_", ident("acc"), listLit(ident("x"))), ident("acc"))
		return call(body, "size")
	},
	"namespaced-call": func() ast.Expr {
		return call(selectChain("a", "b"), "c", litInt(1))
	},
}

var idCounter int64

func nextID() int64 { idCounter++; return idCounter }

func litInt(v int64) ast.Expr {
	return &ast.LiteralExpr{NodeID: nextID(), Value: ast.Constant{Kind: ast.ConstInt, IntValue: v}}
}
func litStr(s string) ast.Expr {
	return &ast.LiteralExpr{NodeID: nextID(), Value: ast.Constant{Kind: ast.ConstString, StringValue: s}}
}
func litBool(b bool) ast.Expr {
	return &ast.LiteralExpr{NodeID: nextID(), Value: ast.Constant{Kind: ast.ConstBool, BoolValue: b}}
}
func ident(name string) ast.Expr { return &ast.IdentExpr{NodeID: nextID(), Name: name} }

// call builds target.function(args...) when target is non-nil, or
// function(args...) when it's nil.
func call(target ast.Expr, function string, args ...ast.Expr) ast.Expr {
	return &ast.CallExpr{NodeID: nextID(), Target: target, Function: function, Args: args}
}

func selectChain(base string, fields ...string) ast.Expr {
	var e ast.Expr = &ast.IdentExpr{NodeID: nextID(), Name: base}
	for _, f := range fields {
		e = &ast.SelectExpr{NodeID: nextID(), Operand: e, Field: f}
	}
	return e
}

func field(name string, v ast.Expr) ast.StructField {
	return ast.StructField{NodeID: nextID(), Name: name, Value: v}
}

func structLit(name string, fields ...ast.StructField) ast.Expr {
	return &ast.CreateStructExpr{NodeID: nextID(), Name: name, Fields: fields}
}

func listLit(elems ...ast.Expr) ast.Expr {
	els := make([]ast.ListElement, len(elems))
	for i, e := range elems {
		els[i] = ast.ListElement{Value: e}
	}
	return &ast.CreateListExpr{NodeID: nextID(), Elements: els}
}

func comprehension(iterRange ast.Expr, iterVar string, accuInit ast.Expr, accuVar string, loopCond, loopStep, result ast.Expr) ast.Expr {
	return &ast.ComprehensionExpr{
		NodeID:        nextID(),
		IterRange:     iterRange,
		IterVar:       iterVar,
		AccuInit:      accuInit,
		AccuVar:       accuVar,
		LoopCondition: loopCond,
		LoopStep:      loopStep,
		Result:        result,
	}
}
