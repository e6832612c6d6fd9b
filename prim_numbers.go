package ptscheme

func addNumbers(args []Value) (Value, error) {
	var acc Number = Integer(0)
	for i := range args {
		n, e := numberArg("+", args, i)
		if e != nil {
			return e, nil
		}
		acc = acc.Add(n)
	}
	return acc, nil
}

func mulNumbers(args []Value) (Value, error) {
	var acc Number = Integer(1)
	for i := range args {
		n, e := numberArg("*", args, i)
		if e != nil {
			return e, nil
		}
		acc = acc.Mul(n)
	}
	return acc, nil
}

// (- x) negates, (- x y ...) subtracts from left to right.
func subNumbers(args []Value) (Value, error) {
	first, e := numberArg("-", args, 0)
	if e != nil {
		return e, nil
	}
	if len(args) == 1 {
		return Integer(0).Sub(first), nil
	}
	acc := first
	for i := 1; i < len(args); i++ {
		n, e := numberArg("-", args, i)
		if e != nil {
			return e, nil
		}
		acc = acc.Sub(n)
	}
	return acc, nil
}

// (/ x) is the reciprocal, (/ x y ...) divides from left to right.
func divNumbers(args []Value) (Value, error) {
	first, e := numberArg("/", args, 0)
	if e != nil {
		return e, nil
	}
	if len(args) == 1 {
		return Integer(1).Div(first), nil
	}
	acc := first
	for i := 1; i < len(args); i++ {
		n, e := numberArg("/", args, i)
		if e != nil {
			return e, nil
		}
		q := acc.Div(n)
		if IsError(q) {
			return q, nil
		}
		acc = q.(Number)
	}
	return acc, nil
}

func integerOp(name string, op func(Integer, Integer) Value) PrimitiveFn {
	return func(args []Value) (Value, error) {
		a, e := integerArg(name, args, 0)
		if e != nil {
			return e, nil
		}
		b, e := integerArg(name, args, 1)
		if e != nil {
			return e, nil
		}
		return op(a, b), nil
	}
}

// compareChain builds a comparison that holds when test is true for every
// adjacent pair of arguments.
func compareChain(name string, test func(c int) bool) PrimitiveFn {
	return func(args []Value) (Value, error) {
		prev, e := numberArg(name, args, 0)
		if e != nil {
			return e, nil
		}
		result := true
		for i := 1; i < len(args); i++ {
			n, e := numberArg(name, args, i)
			if e != nil {
				return e, nil
			}
			if !test(prev.Cmp(n)) {
				result = false
			}
			prev = n
		}
		return MakeBoolean(result), nil
	}
}

func absNumber(args []Value) (Value, error) {
	n, e := numberArg("abs", args, 0)
	if e != nil {
		return e, nil
	}
	if n.Cmp(Integer(0)) < 0 {
		return Integer(0).Sub(n), nil
	}
	return n, nil
}

func init() {
	definePrimitive("+", 0, -1, addNumbers)
	definePrimitive("*", 0, -1, mulNumbers)
	definePrimitive("-", 1, -1, subNumbers)
	definePrimitive("/", 1, -1, divNumbers)
	definePrimitive("quotient", 2, 2, integerOp("quotient", Integer.Quotient))
	definePrimitive("remainder", 2, 2, integerOp("remainder", Integer.Remainder))
	definePrimitive("modulo", 2, 2, integerOp("modulo", Integer.Modulo))
	definePrimitive("=", 1, -1, compareChain("=", func(c int) bool { return c == 0 }))
	definePrimitive("<", 1, -1, compareChain("<", func(c int) bool { return c < 0 }))
	definePrimitive(">", 1, -1, compareChain(">", func(c int) bool { return c > 0 }))
	definePrimitive("<=", 1, -1, compareChain("<=", func(c int) bool { return c <= 0 }))
	definePrimitive(">=", 1, -1, compareChain(">=", func(c int) bool { return c >= 0 }))
	definePrimitive("abs", 1, 1, absNumber)
}
