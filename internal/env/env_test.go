package env_test

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/types"
)

func TestLookups(t *testing.T) {
	e := env.New("pkg")
	e.AddVariable("x", types.Int)
	e.AddType("pkg.M", types.NewStruct("pkg.M"))
	e.AddStructField("pkg.M", env.StructTypeField{Name: "f", Type: types.Int})

	decl, ok := e.LookupVariable("x")
	be.True(t, ok)
	be.True(t, decl.Type.Equal(types.Int))

	_, ok = e.LookupVariable("missing")
	be.True(t, !ok)

	ty, ok := e.LookupType("pkg.M")
	be.True(t, ok)
	be.True(t, ty.Equal(types.NewStruct("pkg.M")))

	field, ok := e.LookupField("pkg.M", "f")
	be.True(t, ok)
	be.True(t, field.Type.Equal(types.Int))

	_, ok = e.LookupField("pkg.M", "missing")
	be.True(t, !ok)
}

func TestAddFunctionRejectsDuplicateOverloadSignature(t *testing.T) {
	e := env.New("")
	err := e.AddFunction(&env.FunctionDecl{
		Name: "f",
		Overloads: []*env.Overload{
			{ID: "f_int", Parameters: []types.Type{types.Int}, Result: types.Bool},
			{ID: "f_int_again", Parameters: []types.Type{types.Int}, Result: types.String},
		},
	})
	be.Equal(t, err != nil, true)
}

func TestAddFunctionAllowsDistinctArity(t *testing.T) {
	e := env.New("")
	err := e.AddFunction(&env.FunctionDecl{
		Name: "f",
		Overloads: []*env.Overload{
			{ID: "f_int", Parameters: []types.Type{types.Int}, Result: types.Bool},
			{ID: "f_int_int", Parameters: []types.Type{types.Int, types.Int}, Result: types.Bool},
		},
	})
	be.Err(t, err, nil)
}

func TestAddFunctionNormalizesTypeParamNames(t *testing.T) {
	e := env.New("")
	err := e.AddFunction(&env.FunctionDecl{
		Name: "f",
		Overloads: []*env.Overload{
			{ID: "f_t", Parameters: []types.Type{types.NewTypeParam("T"), types.NewTypeParam("T")}, Result: types.Bool},
			{ID: "f_u", Parameters: []types.Type{types.NewTypeParam("U"), types.NewTypeParam("U")}, Result: types.Bool},
		},
	})
	be.Equal(t, err != nil, true)
}
