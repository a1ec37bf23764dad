package varscope_test

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/exprlang/typecheck/internal/env"
	"github.com/exprlang/typecheck/internal/types"
	"github.com/exprlang/typecheck/internal/varscope"
)

func TestLookupFallsThroughToEnv(t *testing.T) {
	e := env.New("")
	e.AddVariable("x", types.Int)
	root := varscope.NewRoot(e)

	decl, ok := root.Lookup("x")
	be.True(t, ok)
	be.True(t, decl.Type.Equal(types.Int))

	_, ok = root.Lookup("y")
	be.True(t, !ok)
}

func TestPushShadowsWithoutMutatingParent(t *testing.T) {
	e := env.New("")
	e.AddVariable("x", types.Int)
	root := varscope.NewRoot(e)

	child := root.Push(map[string]*env.VariableDecl{"x": {Name: "x", Type: types.String}})
	decl, ok := child.Lookup("x")
	be.True(t, ok)
	be.True(t, decl.Type.Equal(types.String))

	decl, ok = root.Lookup("x")
	be.True(t, ok)
	be.True(t, decl.Type.Equal(types.Int))
}

func TestDepth(t *testing.T) {
	e := env.New("")
	root := varscope.NewRoot(e)
	be.Equal(t, root.Depth(), 0)

	child := root.Push(nil)
	be.Equal(t, child.Depth(), 1)

	grandchild := child.Push(nil)
	be.Equal(t, grandchild.Depth(), 2)
}
