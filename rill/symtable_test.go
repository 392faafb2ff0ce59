package rill

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymTableDeclareAndGet(t *testing.T) {
	sym := NewSymTable()
	sym.PushScope()
	sym.Declare("x", NewInt(1))
	v, ok := sym.Get("x")
	require.True(t, ok)
	require.Equal(t, int64(1), v.Int())
}

func TestSymTableGetMissingIsNotOK(t *testing.T) {
	sym := NewSymTable()
	sym.PushScope()
	_, ok := sym.Get("missing")
	require.False(t, ok)
}

func TestSymTablePutRebindsEnclosingScope(t *testing.T) {
	sym := NewSymTable()
	sym.PushScope()
	sym.Declare("x", NewInt(1))
	sym.PushScope()
	// Put should walk outward and rebind the outer x, not shadow it.
	sym.Put("x", NewInt(2))
	v, ok := sym.Get("x")
	require.True(t, ok)
	require.Equal(t, int64(2), v.Int())
	sym.PopScope()
	v, ok = sym.Get("x")
	require.True(t, ok)
	require.Equal(t, int64(2), v.Int())
}

func TestSymTablePutDefinesFreshInTopScopeWhenUndeclared(t *testing.T) {
	sym := NewSymTable()
	sym.PushScope()
	sym.Put("y", NewInt(9))
	v, ok := sym.Get("y")
	require.True(t, ok)
	require.Equal(t, int64(9), v.Int())
}

func TestSymTableDeclaredInTopScope(t *testing.T) {
	sym := NewSymTable()
	sym.PushScope()
	require.False(t, sym.DeclaredInTopScope("x"))
	sym.Declare("x", NewInt(1))
	require.True(t, sym.DeclaredInTopScope("x"))
	sym.PushScope()
	// top scope is now the new, empty one — "x" lives one level down.
	require.False(t, sym.DeclaredInTopScope("x"))
}

func TestSymTablePopScopeDiscardsInnerBindings(t *testing.T) {
	sym := NewSymTable()
	sym.PushScope()
	sym.Declare("x", NewInt(1))
	sym.PushScope()
	sym.Declare("y", NewInt(2))
	sym.PopScope()
	_, ok := sym.Get("y")
	require.False(t, ok)
	v, ok := sym.Get("x")
	require.True(t, ok)
	require.Equal(t, int64(1), v.Int())
}
