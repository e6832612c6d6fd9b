package ptscheme

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	vm := newTestVM(t)
	tests := []struct {
		src  string
		want string
	}{
		{"(+)", "0"},
		{"(*)", "1"},
		{"(- 5)", "-5"},
		{"(- 10 1 2)", "7"},
		{"(- 1.5)", "-1.5"},
		{"(* 2 2.5)", "5.0"},
		{"(/ 2)", "0.5"},
		{"(/ 12 2 3)", "2"},
		{"(quotient 17 5)", "3"},
		{"(quotient -17 5)", "-3"},
		{"(remainder -17 5)", "-2"},
		{"(modulo -17 5)", "3"},
		{"(modulo 17 -5)", "-3"},
		{"(abs -4)", "4"},
		{"(abs -4.5)", "4.5"},
		{"(= 1 1 1)", "#t"},
		{"(= 1 1.0)", "#t"},
		{"(< 1 2 3)", "#t"},
		{"(< 1 3 2)", "#f"},
		{"(> 3 2 1)", "#t"},
		{"(<= 1 1 2)", "#t"},
		{"(>= 2 2 3)", "#f"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			wantRepr(t, vm, tt.src, tt.want)
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	vm := newTestVM(t)
	e := wantSoftError(t, vm, `(+ 1 'a)`, WrongType)
	assert.Contains(t, e.Message, "argument 2")
	wantSoftError(t, vm, "(/ 1 0)", DivisionByZero)
	wantSoftError(t, vm, "(/ 1.0 0)", DivisionByZero)
	wantSoftError(t, vm, "(remainder 1 0)", DivisionByZero)
	wantSoftError(t, vm, "(modulo 1.5 1)", WrongType)
	wantSoftError(t, vm, `(< 1 "2")`, WrongType)
	wantHardError(t, vm, "(-)", ArityMismatch)
	wantHardError(t, vm, "(quotient 1)", ArityMismatch)
}

func TestListPrimitives(t *testing.T) {
	vm := newTestVM(t)
	wantRepr(t, vm, "(cons 1 2)", "(1 . 2)")
	wantRepr(t, vm, "(car '(1 2))", "1")
	wantRepr(t, vm, "(cdr '(1 2))", "(2)")
	wantRepr(t, vm, "(list)", "()")
	wantRepr(t, vm, "(list 1 (list 2) 3)", "(1 (2) 3)")
	wantRepr(t, vm, "(length '(1 2 3))", "3")
	wantRepr(t, vm, "(cadr '(1 2 3))", "2")
	wantRepr(t, vm, "(caddr '(1 2 3))", "3")
	wantRepr(t, vm, "(cddr '(1 2 3))", "(3)")
	wantRepr(t, vm, "(caar '((1) 2))", "1")
	wantRepr(t, vm, "(cdar '((1 5) 2))", "(5)")
	wantRepr(t, vm, "(define p (list 1 2)) (set-car! p 'a) (set-cdr! p '(b)) p", "(a b)")
	wantSoftError(t, vm, "(length '(1 . 2))", WrongType)
	wantHardError(t, vm, "(car '())", NotAPair)
	wantHardError(t, vm, "(cdr 5)", NotAPair)
	wantHardError(t, vm, "(set-car! 5 1)", NotAPair)
	wantHardError(t, vm, "(cadr '(1))", NotAPair)
}

func TestPredicates(t *testing.T) {
	vm := newTestVM(t)
	tests := []struct {
		src  string
		want Value
	}{
		{"(null? '())", True},
		{"(null? '(1))", False},
		{"(boolean? #f)", True},
		{"(boolean? 0)", False},
		{"(symbol? 'a)", True},
		{`(symbol? "a")`, False},
		{"(pair? '(1))", True},
		{"(pair? '())", False},
		{"(number? 1.5)", True},
		{"(integer? 1.5)", False},
		{"(float? 1.5)", True},
		{"(char? #'a')", True},
		{`(string? "s")`, True},
		{"(procedure? car)", True},
		{"(procedure? (lambda () 1))", True},
		{"(procedure? 'car)", False},
		{"(list? '(1 2))", True},
		{"(list? '(1 . 2))", False},
		{"(environment? (interaction-environment))", True},
		{"(eof-object? 1)", False},
		{"(not #f)", True},
		{"(not '())", False},
		{"(eq? 'a 'a)", True},
		{"(eq? '(1) '(1))", False},
		{"(eq? '() '())", True},
		{"(eq? 2 2)", True},
		{"(equal? '(1 (2 \"x\")) '(1 (2 \"x\")))", True},
		{"(equal? '(1 2) '(1 3))", False},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, evalSrc(t, vm, tt.src))
		})
	}
}

func TestStringPrimitives(t *testing.T) {
	vm := newTestVM(t)
	wantRepr(t, vm, "(symbol->string 'abc)", `"abc"`)
	wantRepr(t, vm, `(string->symbol "xyz")`, "xyz")
	wantRepr(t, vm, "(number->string 42)", `"42"`)
	wantRepr(t, vm, "(number->string 2.5)", `"2.5"`)
	wantRepr(t, vm, `(string-length "héllo")`, "5")
	wantRepr(t, vm, `(string-append "a" "b" "c")`, `"abc"`)
	wantRepr(t, vm, "(string-append)", `""`)
	wantRepr(t, vm, "(char->integer #'A')", "65")
	wantRepr(t, vm, "(integer->char 97)", "#'a'")
	assert.Same(t, Intern("xyz"), evalSrc(t, vm, `(string->symbol "xyz")`))
	wantSoftError(t, vm, "(integer->char -1)", WrongType)
	wantSoftError(t, vm, "(string-length 'a)", WrongType)
}

func TestErrorPrimitive(t *testing.T) {
	vm := newTestVM(t)
	e := wantSoftError(t, vm, `(error "something failed:" 'x 42 "s")`, UserError)
	assert.Equal(t, `something failed: x 42 "s"`, e.Message)
	wantSoftError(t, vm, `(begin (error "stop") 1)`, UserError)
	// an Error operand stops the call before the procedure sees it
	wantSoftError(t, vm, `(pair? (error "x"))`, UserError)
}

func TestEnvironmentPrimitives(t *testing.T) {
	vm := newTestVM(t)
	evalSrc(t, vm, "(define x 1)")
	wantRepr(t, vm, "(environment-bound? (interaction-environment) 'x)", "#t")
	wantRepr(t, vm, "(environment-bound? (make-environment) 'x)", "#f")
	wantRepr(t, vm, "(environment-bound? (make-environment) 'car)", "#t")
	wantRepr(t, vm, "(environment-bound? (make-environment) 'map)", "#f")
	wantSoftError(t, vm, "(environment-bound? 1 'x)", WrongType)
	wantRepr(t, vm, "(define e (make-environment)) (eval '(define y 2) e) (eval 'y e)", "2")
	wantSoftError(t, vm, "y", UnboundVariable)
}

func TestOutputPrimitives(t *testing.T) {
	var out bytes.Buffer
	vm := newTestVM(t, WithOutput(&out))
	evalSrc(t, vm, `(display "hi") (newline) (write "hi") (display '(1 "a")) (write #'c')`)
	assert.Equal(t, "hi\n\"hi\"(1 \"a\")#'c'", out.String())
}

func TestDefinePrimitives(t *testing.T) {
	env := NewEnvironment()
	DefinePrimitives(env)
	for _, name := range []string{"+", "-", "*", "quotient", "remainder", "=", "<", ">",
		"cons", "car", "cdr", "set-car!", "set-cdr!", "list", "null?", "boolean?",
		"symbol?", "pair?", "eq?"} {
		v := env.LookupVariable(Intern(name))
		p, ok := v.(*Primitive)
		require.True(t, ok, "%s should be a primitive, got %s", name, Repr(v))
		assert.Equal(t, name, p.Name)
	}
	assert.NotNil(t, LookupPrimitive("car"))
	assert.Nil(t, LookupPrimitive("no-such-primitive"))
	assert.True(t, LookupPrimitive("+").Variadic())
	assert.False(t, LookupPrimitive("car").Variadic())
}

func TestEqualOnCyclicStructure(t *testing.T) {
	vm := newTestVM(t)
	wantRepr(t, vm, `
		(define a (list 1)) (set-cdr! a a)
		(define b (list 1)) (set-cdr! b b)
		(equal? a b)`, "#t")
	wantRepr(t, vm, "(define c (list 1 2)) (set-cdr! (cdr c) c) (equal? a c)", "#f")
}
