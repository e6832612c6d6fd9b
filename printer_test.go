package ptscheme

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepr(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{True, "#t"},
		{False, "#f"},
		{Integer(-3), "-3"},
		{Float(2), "2.0"},
		{Float(0.125), "0.125"},
		{Float(-1.5), "-1.5"},
		{Float(math.Inf(1)), "+Inf"},
		{Character('a'), "#'a'"},
		{Character('\n'), `#'\n'`},
		{Character(0), "#'NULL'"},
		{String("a\tb"), `"a\tb"`},
		{String("q?"), `"q\?"`},
		{Intern("sym"), "sym"},
		{EmptyList, "()"},
		{List(Integer(1), Intern("a"), String("s")), `(1 a "s")`},
		{Cons(Integer(1), Integer(2)), "(1 . 2)"},
		{List(List(), List(Integer(1))), "(() (1))"},
		{Errorf(WrongType, "bad"), "Error 61: bad"},
		{&Compound{}, "#<compound-procedure>"},
		{&Primitive{Name: "car"}, "#<primitive-procedure>"},
		{NewInputPort(bytes.NewReader(nil)), "#<input-port>"},
		{NewOutputPort(&bytes.Buffer{}), "#<output-port>"},
		{EOF, "#<eof>"},
		{NewEnvironment(), "#<environment>"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Repr(tt.v))
		})
	}
}

func TestReprCycles(t *testing.T) {
	l := List(Integer(1), Integer(2)).(*Pair)
	require.NoError(t, SetCdr(l.Cdr, l))
	assert.Equal(t, "(1 2 ...)", Repr(l))

	inner := List(Integer(1)).(*Pair)
	outer := List(inner).(*Pair)
	inner.Car = outer
	assert.Equal(t, "((...))", Repr(outer))

	// shared but acyclic structure prints in full
	shared := List(Intern("x"))
	assert.Equal(t, "((x) (x))", Repr(List(shared, shared)))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "hi there", Display(String("hi there")))
	assert.Equal(t, "c", Display(Character('c')))
	assert.Equal(t, `("s")`, Display(List(String("s"))))
}

func TestWriteValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteValue(&buf, List(Integer(1), True)))
	assert.Equal(t, "(1 #t)", buf.String())
}

func TestBooleanSingletons(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.True(t, MakeBoolean(true) == True)
		assert.True(t, MakeBoolean(false) == False)
	}
	assert.True(t, IsTrue(MakeBoolean(true)))
	assert.True(t, IsTrue(EmptyList))
	assert.True(t, IsTrue(Integer(0)))
	assert.False(t, IsTrue(False))
	assert.True(t, IsFalse(False))
}

func TestKinds(t *testing.T) {
	assert.Equal(t, PairKind, KindOf(Cons(EmptyList, EmptyList)))
	assert.Equal(t, "pair", PairKind.String())
	assert.Equal(t, IntegerKind, KindOf(Integer(1)))
	assert.Equal(t, EnvironmentKind, KindOf(NewEnvironment()))
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestErrorValues(t *testing.T) {
	e := Errorf(UnboundVariable, "unbound variable: %s", "x")
	var err error = e
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, UnboundVariable, code)
	assert.ErrorIs(t, err, &Error{Code: UnboundVariable})
	assert.NotErrorIs(t, err, &Error{Code: WrongType})
	assert.Equal(t, "UnboundVariable", UnboundVariable.String())
	assert.Equal(t, "ErrorCode(7777)", ErrorCode(7777).String())
	assert.True(t, IsError(e))
	assert.False(t, IsIncomplete(e))
}
