package ptscheme

// Eval evaluates expr in env.
//
// Forms in tail position (the branches of if, the last expression of a body
// or begin, the expansion of cond and let, the last operand of and/or, the
// body of a compound procedure) do not recurse: the loop rebinds expr and env
// and starts over, so tail calls run in constant Go stack.
//
// A soft error produced by a subexpression whose value is needed stops the
// enclosing form and becomes its value. Hard errors are returned through the
// error result.
func (vm *VM) Eval(expr Value, env *Environment) (Value, error) {
	if vm.depth >= vm.maxDepth {
		return nil, Errorf(StackExhausted, "maximum recursion depth (%d) exceeded", vm.maxDepth)
	}
	vm.depth++
	defer func() { vm.depth-- }()

	var err error
	for {
		x, ok := expr.(*Pair)
		if !ok {
			if sym, ok := expr.(*Symbol); ok {
				return env.LookupVariable(sym), nil
			}
			return expr, nil
		}

		var proc Value
		var args []Value
		switch x.Car {
		case symQuote:
			operands, err := exactly(x, 1)
			if err != nil {
				return nil, err
			}
			return operands[0], nil
		case symSet:
			return vm.evalAssignment(x, env)
		case symDefine:
			return vm.evalDefinition(x, env)
		case symIf:
			pred, err := Cadr(x)
			if err != nil {
				return nil, err
			}
			test, err := vm.Eval(pred, env)
			if err != nil {
				return nil, err
			}
			if IsError(test) {
				return test, nil
			}
			if IsTrue(test) {
				expr, err = Caddr(x)
			} else {
				expr, err = ifAlternative(x)
			}
			if err != nil {
				return nil, err
			}
			continue
		case symLambda:
			return makeLambda(x, env)
		case symBegin:
			if expr, err = vm.evalSequence(x.Cdr, env); err != nil {
				return nil, err
			}
			continue
		case symCond:
			if expr, err = condToIf(x); err != nil {
				return nil, err
			}
			continue
		case symLet:
			if expr, err = letToCombination(x); err != nil {
				return nil, err
			}
			continue
		case symLetStar:
			if expr, err = letStarToLet(x); err != nil {
				return nil, err
			}
			continue
		case symAnd:
			if expr, err = vm.evalAnd(x.Cdr, env); err != nil {
				return nil, err
			}
			continue
		case symOr:
			if expr, err = vm.evalOr(x.Cdr, env); err != nil {
				return nil, err
			}
			continue
		case symEval:
			operands, err := vm.evalOperands(x.Cdr, env)
			if err != nil {
				return nil, err
			}
			if e := firstError(operands); e != nil {
				return e, nil
			}
			if len(operands) < 1 || len(operands) > 2 {
				return nil, Errorf(ArityMismatch, "eval expects 1 to 2 argument(s), got %d", len(operands))
			}
			expr, env = operands[0], vm.global
			if len(operands) == 2 {
				e, ok := operands[1].(*Environment)
				if !ok {
					return nil, Errorf(WrongType, "eval: %s is not an environment", Repr(operands[1]))
				}
				env = e
			}
			continue
		case symApply:
			if proc, args, err = vm.evalApplyForm(x, env); err != nil {
				return nil, err
			}
		default:
			if proc, args, err = vm.evalCombination(x, env); err != nil {
				return nil, err
			}
		}

		switch p := proc.(type) {
		case *Error:
			return p, nil
		case *Primitive:
			if err := p.checkArity(len(args)); err != nil {
				return nil, err
			}
			return p.Fn(args)
		case *Compound:
			if env, err = ExtendEnvironment(p.Params, args, p.Env); err != nil {
				if e, ok := err.(*Error); ok && e.Code == ArityMismatch {
					return nil, Errorf(ArityMismatch, "%s: %s", p.name(), e.Message)
				}
				return nil, err
			}
			if expr, err = vm.evalSequence(p.Body, env); err != nil {
				return nil, err
			}
		default:
			return nil, Errorf(UnknownProcedureType, "unknown procedure type: %s is not applicable", Repr(proc))
		}
	}
}

// evalSequence evaluates all but the last expression of body and returns the
// last one for the caller to evaluate in tail position. When an earlier
// expression yields an Error, that Error is returned instead; it evaluates to
// itself.
func (vm *VM) evalSequence(body Value, env *Environment) (Value, error) {
	p, ok := body.(*Pair)
	if !ok {
		return nil, malformed(body, "empty sequence")
	}
	for {
		next, ok := p.Cdr.(*Pair)
		if !ok {
			if !IsEmpty(p.Cdr) {
				return nil, notAPair("begin", p.Cdr)
			}
			return p.Car, nil
		}
		v, err := vm.Eval(p.Car, env)
		if err != nil {
			return nil, err
		}
		if IsError(v) {
			return v, nil
		}
		p = next
	}
}

// evalAnd and evalOr return the expression left to evaluate in tail
// position. A value that ends the form early is returned in a form that
// evaluates to itself.
func (vm *VM) evalAnd(operands Value, env *Environment) (Value, error) {
	if IsEmpty(operands) {
		return True, nil
	}
	p, ok := operands.(*Pair)
	for ok {
		if IsEmpty(p.Cdr) {
			return p.Car, nil
		}
		v, err := vm.Eval(p.Car, env)
		if err != nil {
			return nil, err
		}
		if IsError(v) || IsFalse(v) {
			return v, nil
		}
		p, ok = p.Cdr.(*Pair)
	}
	return nil, malformed(operands, "improper operand list")
}

func (vm *VM) evalOr(operands Value, env *Environment) (Value, error) {
	if IsEmpty(operands) {
		return False, nil
	}
	p, ok := operands.(*Pair)
	for ok {
		if IsEmpty(p.Cdr) {
			return p.Car, nil
		}
		v, err := vm.Eval(p.Car, env)
		if err != nil {
			return nil, err
		}
		if IsTrue(v) {
			return quoteIfNeeded(v), nil
		}
		p, ok = p.Cdr.(*Pair)
	}
	return nil, malformed(operands, "improper operand list")
}

// quoteIfNeeded wraps values that would not evaluate to themselves.
func quoteIfNeeded(v Value) Value {
	switch v.(type) {
	case *Pair, *Symbol:
		return List(symQuote, v)
	}
	return v
}

func (vm *VM) evalAssignment(form *Pair, env *Environment) (Value, error) {
	operands, err := exactly(form, 2)
	if err != nil {
		return nil, err
	}
	sym, ok := operands[0].(*Symbol)
	if !ok {
		return nil, malformed(form, "set! target is not a symbol")
	}
	v, err := vm.Eval(operands[1], env)
	if err != nil {
		return nil, err
	}
	if IsError(v) {
		return v, nil
	}
	if err := env.SetVariable(sym, v); err != nil {
		return nil, err
	}
	return OK, nil
}

// evalDefinition handles (define var expr) and (define (name . params) body...).
func (vm *VM) evalDefinition(form *Pair, env *Environment) (Value, error) {
	target, err := Cadr(form)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *Symbol:
		operands, err := exactly(form, 2)
		if err != nil {
			return nil, err
		}
		v, err := vm.Eval(operands[1], env)
		if err != nil {
			return nil, err
		}
		if IsError(v) {
			return v, nil
		}
		if c, ok := v.(*Compound); ok && c.Name == nil {
			c.Name = t
		}
		env.DefineVariable(t, v)
		return OK, nil
	case *Pair:
		name, ok := t.Car.(*Symbol)
		if !ok {
			return nil, malformed(form, "procedure name is not a symbol")
		}
		body, err := Cddr(form)
		if err != nil {
			return nil, err
		}
		proc, err := makeProcedure(t.Cdr, body, env)
		if err != nil {
			return nil, err
		}
		proc.Name = name
		env.DefineVariable(name, proc)
		return OK, nil
	}
	return nil, malformed(form, "cannot define %s", Repr(target))
}

// evalOperands evaluates a list of expressions left to right. Evaluation
// stops at the first Error value, which is then the last element.
func (vm *VM) evalOperands(operands Value, env *Environment) ([]Value, error) {
	var result []Value
	for {
		p, ok := operands.(*Pair)
		if !ok {
			break
		}
		v, err := vm.Eval(p.Car, env)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
		if IsError(v) {
			return result, nil
		}
		operands = p.Cdr
	}
	if !IsEmpty(operands) {
		return nil, notAPair("operands", operands)
	}
	return result, nil
}

func firstError(vs []Value) *Error {
	if len(vs) > 0 {
		if e, ok := vs[len(vs)-1].(*Error); ok {
			return e
		}
	}
	return nil
}

// evalCombination evaluates operator and operands. A soft error in either is
// returned as the procedure, which the caller hands back as the result.
func (vm *VM) evalCombination(form *Pair, env *Environment) (Value, []Value, error) {
	proc, err := vm.Eval(form.Car, env)
	if err != nil {
		return nil, nil, err
	}
	if IsError(proc) {
		return proc, nil, nil
	}
	args, err := vm.evalOperands(form.Cdr, env)
	if err != nil {
		return nil, nil, err
	}
	if e := firstError(args); e != nil {
		return e, nil, nil
	}
	return proc, args, nil
}

// evalApplyForm handles (apply proc arg... list): the final operand must be a
// proper list whose elements are appended to the other arguments.
func (vm *VM) evalApplyForm(form *Pair, env *Environment) (Value, []Value, error) {
	operands, err := vm.evalOperands(form.Cdr, env)
	if err != nil {
		return nil, nil, err
	}
	if e := firstError(operands); e != nil {
		return e, nil, nil
	}
	if len(operands) < 2 {
		return nil, nil, Errorf(ArityMismatch, "apply expects at least 2 argument(s), got %d", len(operands))
	}
	last := len(operands) - 1
	spread, err := ListToSlice(operands[last])
	if err != nil {
		return nil, nil, err
	}
	args := append(operands[1:last:last], spread...)
	return operands[0], args, nil
}
