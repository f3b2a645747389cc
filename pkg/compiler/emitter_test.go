package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compy/pkg/contract"
)

// assertViolation fails unless fn panics with a contract violation.
func assertViolation(t *testing.T, fn func(), contains string) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		v, ok := r.(*contract.Violation)
		if !ok {
			t.Fatalf("expected a contract violation, got %#v", r)
		}
		assert.Contains(t, v.Error(), contains)
	}()
	fn()
}

func TestEmitter_StatementsGoToTopScope(t *testing.T) {
	em := NewEmitter()
	main := em.OpenScope(EntryPoint)
	em.EmitStatement("a = 1")

	inner := em.OpenScope("f")
	em.EmitStatement("return 2")
	inner.Close()

	em.EmitStatement("f()")
	main.Close()

	assert.Equal(t, 0, em.Depth())
	unit := em.Finish()
	require.Len(t, unit.Functions, 2)

	// compy_main received its first line before f.
	assert.Equal(t, EntryPoint, unit.Functions[0].Name)
	assert.Equal(t, "  a = 1;\n  f();\n", unit.Functions[0].Body)
	assert.Equal(t, "f", unit.Functions[1].Name)
	assert.Equal(t, "  return 2;\n", unit.Functions[1].Body)
}

func TestEmitter_EmptyStatementIsNoop(t *testing.T) {
	em := NewEmitter()
	h := em.OpenScope(EntryPoint)
	em.EmitStatement("")
	h.Close()

	unit := em.Finish()
	require.Len(t, unit.Functions, 1)
	assert.Equal(t, "", unit.Functions[0].Body)
}

func TestEmitter_Blocks(t *testing.T) {
	em := NewEmitter()
	h := em.OpenScope("loop")
	em.EmitStatement("int i = 0")
	em.OpenBlock("while ((i) < (3))")
	em.OpenBlock("for (auto x : xs)")
	em.EmitStatement("i += x")
	em.CloseBlock()
	em.CloseBlock()
	em.EmitStatement("return i")
	h.Close()

	f, ok := em.Finish().Lookup("loop")
	require.True(t, ok)
	assert.Equal(t, ""+
		"  int i = 0;\n"+
		"  while ((i) < (3)) {\n"+
		"    for (auto x : xs) {\n"+
		"      i += x;\n"+
		"    }\n"+
		"  }\n"+
		"  return i;\n", f.Body)
}

func TestEmitter_Render(t *testing.T) {
	em := NewEmitter()
	em.DeclareReturnType("factorial", "int")
	em.DeclareParameters("factorial", []string{"n"})
	em.DeclareParameters("add", []string{"a", "b"})

	main := em.OpenScope(EntryPoint)
	f := em.OpenScope("factorial")
	em.EmitStatement("return 1")
	f.Close()
	a := em.OpenScope("add")
	em.EmitStatement("return (a) + (b)")
	a.Close()
	em.EmitStatement("print(factorial(5))")
	main.Close()

	want := "#include <std.hh>\n" +
		"\nint factorial(auto n)\n{\n  return 1;\n}\n" +
		"\nauto add(auto a, auto b)\n{\n  return (a) + (b);\n}\n" +
		"\nvoid compy_main()\n{\n  print(factorial(5));\n}\n"
	assert.Equal(t, want, em.Finish().String())
}

func TestEmitter_DeclarationsLastWriteWins(t *testing.T) {
	em := NewEmitter()
	em.DeclareReturnType("f", "int")
	em.DeclareReturnType("f", "bool")
	em.DeclareParameters("f", []string{"a"})
	em.DeclareParameters("f", []string{"x", "y"})
	em.OpenScope("f").Close()

	f, ok := em.Finish().Lookup("f")
	require.True(t, ok)
	assert.Equal(t, "bool f(auto x, auto y)", f.Signature())
}

func TestEmitter_ScopeWithoutLinesIsPlacedWhenClosed(t *testing.T) {
	em := NewEmitter()
	main := em.OpenScope(EntryPoint)
	em.OpenScope("empty").Close()
	em.EmitStatement("x = 1")
	main.Close()

	unit := em.Finish()
	require.Len(t, unit.Functions, 2)
	assert.Equal(t, "empty", unit.Functions[0].Name)
	assert.Equal(t, "auto empty()", unit.Functions[0].Signature())
	assert.Equal(t, "void compy_main()", unit.Functions[1].Signature())
}

func TestEmitter_HandleCloseIsIdempotent(t *testing.T) {
	em := NewEmitter()
	h := em.OpenScope("f")
	h.Close()
	assert.NotPanics(t, h.Close)
	assert.Equal(t, 0, em.Depth())
}

func TestEmitter_InvariantViolations(t *testing.T) {
	t.Run("close on empty stack", func(t *testing.T) {
		assertViolation(t, func() { NewEmitter().CloseScope("f") }, "no open scope")
	})

	t.Run("close of the wrong scope", func(t *testing.T) {
		em := NewEmitter()
		em.OpenScope("outer")
		em.OpenScope("inner")
		assertViolation(t, func() { em.CloseScope("outer") }, `"inner" is on top`)
	})

	t.Run("statement outside any scope", func(t *testing.T) {
		assertViolation(t, func() { NewEmitter().EmitStatement("x = 1") }, "no open scope")
	})

	t.Run("reopen after close", func(t *testing.T) {
		em := NewEmitter()
		em.OpenScope("f").Close()
		assertViolation(t, func() { em.OpenScope("f") }, "reopened")
	})

	t.Run("block close without open", func(t *testing.T) {
		em := NewEmitter()
		em.OpenScope("f")
		assertViolation(t, em.CloseBlock, "none open")
	})

	t.Run("scope closed with open block", func(t *testing.T) {
		em := NewEmitter()
		h := em.OpenScope("f")
		em.OpenBlock("while (true)")
		assertViolation(t, h.Close, "open blocks")
	})

	t.Run("finish with open scope", func(t *testing.T) {
		em := NewEmitter()
		em.OpenScope(EntryPoint)
		assertViolation(t, func() { em.Finish() }, "still open")
	})
}
