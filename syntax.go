package ptscheme

// Syntax accessors and the rewrites used by the evaluator for derived forms.
// Malformed special forms are hard errors.

func malformed(form Value, format string, args ...any) *Error {
	e := Errorf(MalformedSpecialForm, format, args...)
	e.Message += ": " + Repr(form)
	return e
}

// exactly checks that list has n elements and returns them.
func exactly(form *Pair, n int) ([]Value, error) {
	items := make([]Value, 0, n)
	v := form.Cdr
	for {
		p, ok := v.(*Pair)
		if !ok {
			break
		}
		items = append(items, p.Car)
		v = p.Cdr
	}
	if !IsEmpty(v) || len(items) != n {
		return nil, malformed(form, "%s expects %d operand(s)", form.Car, n)
	}
	return items, nil
}

func ifAlternative(form Value) (Value, error) {
	rest, err := Cdddr(form)
	if err != nil {
		return nil, err
	}
	if IsEmpty(rest) {
		return False, nil
	}
	return Car(rest)
}

// checkParams validates a lambda parameter list: a proper or dotted list of
// distinct symbols, or a single symbol.
func checkParams(params Value) error {
	seen := make(map[*Symbol]bool)
	v := params
	for {
		switch p := v.(type) {
		case Empty:
			return nil
		case *Symbol:
			if seen[p] {
				return malformed(params, "duplicate parameter %s", p.Name)
			}
			return nil
		case *Pair:
			sym, ok := p.Car.(*Symbol)
			if !ok {
				return malformed(params, "parameter %s is not a symbol", Repr(p.Car))
			}
			if seen[sym] {
				return malformed(params, "duplicate parameter %s", sym.Name)
			}
			seen[sym] = true
			v = p.Cdr
		default:
			return malformed(params, "malformed parameter list")
		}
	}
}

func makeProcedure(params, body Value, env *Environment) (*Compound, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	if !IsList(body) || IsEmpty(body) {
		return nil, malformed(body, "procedure body must be a non-empty list")
	}
	return &Compound{
		Params: params,
		Body:   body,
		Env:    env,
	}, nil
}

// makeLambda builds the closure for (lambda params body...).
func makeLambda(form *Pair, env *Environment) (Value, error) {
	rest, ok := form.Cdr.(*Pair)
	if !ok {
		return nil, malformed(form, "lambda without parameter list")
	}
	return makeProcedure(rest.Car, rest.Cdr, env)
}

// sequenceToExp turns a body into a single expression.
func sequenceToExp(seq Value) (Value, error) {
	p, ok := seq.(*Pair)
	if !ok {
		return nil, malformed(seq, "empty sequence")
	}
	if IsEmpty(p.Cdr) {
		return p.Car, nil
	}
	return Cons(symBegin, seq), nil
}

// condToIf rewrites (cond clause...) into nested ifs. A clause without body
// becomes (or test rest) so the value of its test is the result.
func condToIf(form *Pair) (Value, error) {
	return expandClauses(form, form.Cdr)
}

func expandClauses(form *Pair, clauses Value) (Value, error) {
	if IsEmpty(clauses) {
		return False, nil
	}
	p, ok := clauses.(*Pair)
	if !ok {
		return nil, malformed(form, "improper clause list")
	}
	clause, ok := p.Car.(*Pair)
	if !ok {
		return nil, malformed(form, "cond clause %s is not a list", Repr(p.Car))
	}
	if clause.Car == Value(symElse) {
		if !IsEmpty(p.Cdr) {
			return nil, malformed(form, "else clause isn't last")
		}
		return sequenceToExp(clause.Cdr)
	}
	rest, err := expandClauses(form, p.Cdr)
	if err != nil {
		return nil, err
	}
	if IsEmpty(clause.Cdr) {
		return List(symOr, clause.Car, rest), nil
	}
	body, err := sequenceToExp(clause.Cdr)
	if err != nil {
		return nil, err
	}
	return List(symIf, clause.Car, body, rest), nil
}

// letBindings splits ((name expr)...) into names and expressions.
func letBindings(form *Pair, bindings Value) ([]Value, []Value, error) {
	var names, exprs []Value
	for {
		p, ok := bindings.(*Pair)
		if !ok {
			break
		}
		b, ok := p.Car.(*Pair)
		if !ok {
			return nil, nil, malformed(form, "binding %s is not a list", Repr(p.Car))
		}
		if _, ok := b.Car.(*Symbol); !ok {
			return nil, nil, malformed(form, "binding name %s is not a symbol", Repr(b.Car))
		}
		init, ok := b.Cdr.(*Pair)
		if !ok || !IsEmpty(init.Cdr) {
			return nil, nil, malformed(form, "binding %s needs exactly one expression", Repr(b))
		}
		names = append(names, b.Car)
		exprs = append(exprs, init.Car)
		bindings = p.Cdr
	}
	if !IsEmpty(bindings) {
		return nil, nil, malformed(form, "improper binding list")
	}
	return names, exprs, nil
}

// letToCombination rewrites (let ((n v)...) body...) into
// ((lambda (n...) body...) v...). The named form (let name ((n v)...) body...)
// becomes (((lambda () (define name (lambda (n...) body...)) name)) v...).
func letToCombination(form *Pair) (Value, error) {
	rest, ok := form.Cdr.(*Pair)
	if !ok {
		return nil, malformed(form, "let without bindings")
	}
	if name, ok := rest.Car.(*Symbol); ok {
		return namedLetToCombination(form, name, rest.Cdr)
	}
	names, exprs, err := letBindings(form, rest.Car)
	if err != nil {
		return nil, err
	}
	if !IsList(rest.Cdr) || IsEmpty(rest.Cdr) {
		return nil, malformed(form, "let without body")
	}
	lambda := Cons(symLambda, Cons(ListFromSlice(names, EmptyList), rest.Cdr))
	return Cons(lambda, ListFromSlice(exprs, EmptyList)), nil
}

func namedLetToCombination(form *Pair, name *Symbol, rest Value) (Value, error) {
	p, ok := rest.(*Pair)
	if !ok {
		return nil, malformed(form, "named let without bindings")
	}
	names, exprs, err := letBindings(form, p.Car)
	if err != nil {
		return nil, err
	}
	if !IsList(p.Cdr) || IsEmpty(p.Cdr) {
		return nil, malformed(form, "let without body")
	}
	loop := Cons(symLambda, Cons(ListFromSlice(names, EmptyList), p.Cdr))
	// the loop procedure lives in its own frame, outside the one holding its
	// variables, and the inits are evaluated in the enclosing scope
	binder := List(symLambda, EmptyList, List(symDefine, name, loop), name)
	return Cons(List(binder), ListFromSlice(exprs, EmptyList)), nil
}

// letStarToLet rewrites (let* (b1 b2...) body...) into (let (b1) (let* (b2...) body...)).
func letStarToLet(form *Pair) (Value, error) {
	rest, ok := form.Cdr.(*Pair)
	if !ok {
		return nil, malformed(form, "let* without bindings")
	}
	bindings, ok := rest.Car.(*Pair)
	if !ok {
		if !IsEmpty(rest.Car) {
			return nil, malformed(form, "improper binding list")
		}
		return Cons(symLet, rest), nil
	}
	if IsEmpty(bindings.Cdr) {
		return Cons(symLet, rest), nil
	}
	inner := Cons(symLetStar, Cons(bindings.Cdr, rest.Cdr))
	return List(symLet, List(bindings.Car), inner), nil
}
