package ptscheme

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentShadowing(t *testing.T) {
	x := Intern("x")
	global := NewEnvironment()
	global.DefineVariable(x, Integer(1))

	inner, err := ExtendEnvironment(List(x), []Value{Integer(2)}, global)
	require.NoError(t, err)
	assert.Equal(t, Integer(2), inner.LookupVariable(x))
	assert.Same(t, global, inner.Parent())
	assert.Equal(t, Integer(1), global.LookupVariable(x))
}

func TestLookupUnboundIsSoft(t *testing.T) {
	env := NewEnvironment()
	v := env.LookupVariable(Intern("missing"))
	require.True(t, IsError(v))
	assert.Equal(t, UnboundVariable, v.(*Error).Code)
	assert.Equal(t, "unbound variable: missing", v.(*Error).Message)
}

func TestSetVariable(t *testing.T) {
	x, y := Intern("x"), Intern("y")
	global := NewEnvironment()
	global.DefineVariable(x, Integer(1))
	inner, err := ExtendEnvironment(EmptyList, nil, global)
	require.NoError(t, err)

	require.NoError(t, inner.SetVariable(x, Integer(5)))
	assert.Equal(t, Integer(5), global.LookupVariable(x))
	assert.Empty(t, inner.Names())

	err = inner.SetVariable(y, Integer(1))
	assert.ErrorIs(t, err, &Error{Code: UnboundVariable})
	assert.False(t, global.IsBound(y))
}

func TestDefineVariableUsesInnermostFrame(t *testing.T) {
	x := Intern("x")
	global := NewEnvironment()
	global.DefineVariable(x, Integer(1))
	inner, err := ExtendEnvironment(EmptyList, nil, global)
	require.NoError(t, err)

	inner.DefineVariable(x, Integer(2))
	assert.Equal(t, Integer(2), inner.LookupVariable(x))
	assert.Equal(t, Integer(1), global.LookupVariable(x))

	global.DefineVariable(x, Integer(3))
	assert.Equal(t, []*Symbol{x}, global.Names())
	assert.Equal(t, Integer(3), global.LookupVariable(x))
}

func TestExtendEnvironmentParams(t *testing.T) {
	a, b, rest := Intern("a"), Intern("b"), Intern("rest")
	args := []Value{Integer(1), Integer(2), Integer(3)}

	env, err := ExtendEnvironment(Cons(a, rest), args, nil)
	require.NoError(t, err)
	assert.Equal(t, Integer(1), env.LookupVariable(a))
	assert.Equal(t, "(2 3)", Repr(env.LookupVariable(rest)))

	env, err = ExtendEnvironment(rest, args, nil)
	require.NoError(t, err)
	assert.Equal(t, "(1 2 3)", Repr(env.LookupVariable(rest)))

	_, err = ExtendEnvironment(List(a, b), args, nil)
	assert.ErrorIs(t, err, &Error{Code: ArityMismatch})
	assert.Contains(t, err.Error(), "expected 2 argument(s), got 3")

	_, err = ExtendEnvironment(List(a, b, a, rest), args, nil)
	assert.Error(t, err)

	_, err = ExtendEnvironment(Cons(a, Cons(b, rest)), args[:1], nil)
	assert.ErrorIs(t, err, &Error{Code: ArityMismatch})
	assert.Contains(t, err.Error(), "at least 2")

	_, err = ExtendEnvironment(List(a, a), args[:2], nil)
	assert.ErrorIs(t, err, &Error{Code: MalformedSpecialForm})
}

func TestLargeFrameIndex(t *testing.T) {
	env := NewEnvironment()
	for i := 0; i < 100; i++ {
		env.DefineVariable(Intern(fmt.Sprintf("v%d", i)), Integer(i))
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, Integer(i), env.LookupVariable(Intern(fmt.Sprintf("v%d", i))))
	}
	env.DefineVariable(Intern("v42"), String("changed"))
	assert.Equal(t, String("changed"), env.LookupVariable(Intern("v42")))
	assert.Len(t, env.Names(), 100)
}

func TestInternReturnsSameSymbol(t *testing.T) {
	assert.Same(t, Intern("abc"), Intern("abc"))
	assert.NotSame(t, Intern("abc"), Intern("abd"))

	done := make(chan *Symbol, 8)
	for i := 0; i < cap(done); i++ {
		go func() { done <- Intern("concurrent") }()
	}
	first := <-done
	for i := 1; i < cap(done); i++ {
		assert.Same(t, first, <-done)
	}
}
