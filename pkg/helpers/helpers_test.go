package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MadAppGang/eslower/pkg/ast"
)

func TestRegistryRecordsUse(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Used())
	assert.False(t, r.WasUsed(ToArray))

	id := r.Ident(ToArray)
	assert.Equal(t, "toArray", id.Name)
	assert.True(t, r.WasUsed(ToArray))

	r.Ident(Throw)
	r.Ident(ToArray)
	assert.Equal(t, []string{"throw", "toArray"}, r.Used())
}

func TestRegistryCall(t *testing.T) {
	r := NewRegistry()
	call := r.Call(SlicedToArray, ast.NewIdent("x", 0), ast.Num(2))

	callee, ok := call.Callee.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "slicedToArray", callee.Name)
	require.Len(t, call.Args, 2)
	assert.True(t, r.WasUsed(SlicedToArray))
}
