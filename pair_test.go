package ptscheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsCarCdrIdentity(t *testing.T) {
	values := []Value{
		Integer(1),
		String("s"),
		Intern("x"),
		EmptyList,
		List(Integer(1)),
		&Compound{},
	}
	for _, x := range values {
		for _, y := range values {
			p := Cons(x, y)
			car, err := Car(p)
			require.NoError(t, err)
			cdr, err := Cdr(p)
			require.NoError(t, err)
			assert.True(t, car == x)
			assert.True(t, cdr == y)
		}
	}
}

func TestCarOfNonPair(t *testing.T) {
	_, err := Car(Integer(1))
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, NotAPair, code)

	_, err = Cadr(List(Integer(1)))
	assert.ErrorIs(t, err, &Error{Code: NotAPair})

	assert.ErrorIs(t, SetCar(EmptyList, Integer(1)), &Error{Code: NotAPair})
}

func TestComposedAccessors(t *testing.T) {
	forms, err := ReadString("((1 2) (3 4) 5 6)")
	require.NoError(t, err)
	l := forms[0]
	tests := []struct {
		fn   func(Value) (Value, error)
		want string
	}{
		{Caar, "1"},
		{Cadr, "(3 4)"},
		{Cdar, "(2)"},
		{Cddr, "(5 6)"},
		{Caadr, "3"},
		{Caddr, "5"},
		{Cdadr, "(4)"},
		{Cdddr, "(6)"},
		{Cadddr, "6"},
	}
	for _, tt := range tests {
		v, err := tt.fn(l)
		require.NoError(t, err)
		assert.Equal(t, tt.want, Repr(v))
	}
}

func TestSetCarSetCdrShareStructure(t *testing.T) {
	shared := Cons(Integer(1), EmptyList)
	a := List(shared)
	b := List(shared)
	require.NoError(t, SetCar(shared, Integer(9)))
	assert.Equal(t, "((9))", Repr(a))
	assert.Equal(t, "((9))", Repr(b))
	require.NoError(t, SetCdr(shared, Integer(2)))
	assert.Equal(t, "((9 . 2))", Repr(a))
}

func TestListConversions(t *testing.T) {
	l := List(Integer(1), Integer(2), Integer(3))
	vs, err := ListToSlice(l)
	require.NoError(t, err)
	assert.Equal(t, []Value{Integer(1), Integer(2), Integer(3)}, vs)

	vs, err = ListToSlice(EmptyList)
	require.NoError(t, err)
	assert.Empty(t, vs)

	_, err = ListToSlice(Cons(Integer(1), Integer(2)))
	assert.ErrorIs(t, err, &Error{Code: WrongType})

	assert.Equal(t, "(1 2 . 3)", Repr(ListFromSlice([]Value{Integer(1), Integer(2)}, Integer(3))))
}

func TestIsListAndLength(t *testing.T) {
	assert.True(t, IsList(EmptyList))
	assert.True(t, IsList(List(Integer(1), Integer(2))))
	assert.False(t, IsList(Cons(Integer(1), Integer(2))))
	assert.False(t, IsList(Integer(1)))
	assert.Equal(t, 3, Length(List(EmptyList, EmptyList, EmptyList)))
	assert.Equal(t, 0, Length(EmptyList))

	for n := 1; n <= 4; n++ {
		vs := make([]Value, n)
		for i := range vs {
			vs[i] = Integer(i)
		}
		l := List(vs...).(*Pair)
		last := l
		for next, ok := last.Cdr.(*Pair); ok; next, ok = last.Cdr.(*Pair) {
			last = next
		}
		last.Cdr = l
		assert.False(t, IsList(l), "cycle of length %d", n)
		assert.Equal(t, -1, Length(l))
		_, err := ListToSlice(l)
		assert.Error(t, err)
	}
}

func TestEqualAndEqv(t *testing.T) {
	a := List(Integer(1), List(String("x")), Float(1.5))
	b := List(Integer(1), List(String("x")), Float(1.5))
	assert.True(t, Equal(a, b))
	assert.False(t, Eqv(a, b))
	assert.True(t, Eqv(a, a))
	assert.False(t, Equal(a, List(Integer(1))))
	assert.True(t, Eqv(Intern("s"), Intern("s")))
	assert.True(t, Eqv(Integer(3), Integer(3)))
	assert.False(t, Eqv(Integer(3), Float(3)))
	assert.True(t, Eqv(EmptyList, EmptyList))
}

func TestEqualOnCyclicLists(t *testing.T) {
	cycle := func(vs ...Value) *Pair {
		head := List(vs...).(*Pair)
		last := head
		for next, ok := last.Cdr.(*Pair); ok; next, ok = last.Cdr.(*Pair) {
			last = next
		}
		last.Cdr = head
		return head
	}
	assert.True(t, Equal(cycle(Integer(1)), cycle(Integer(1))))
	assert.True(t, Equal(cycle(Integer(1), Integer(2)), cycle(Integer(1), Integer(2))))
	assert.False(t, Equal(cycle(Integer(1)), cycle(Integer(1), Integer(2))))
	assert.False(t, Equal(cycle(Integer(1)), List(Integer(1), Integer(1))))

	a := List(Integer(1)).(*Pair)
	a.Car = a
	b := List(Integer(1)).(*Pair)
	b.Car = b
	assert.True(t, Equal(a, b))
}
