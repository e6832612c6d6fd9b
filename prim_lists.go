package ptscheme

func accessor(fn func(Value) (Value, error)) PrimitiveFn {
	return func(args []Value) (Value, error) {
		return fn(args[0])
	}
}

func consPrimitive(args []Value) (Value, error) {
	return Cons(args[0], args[1]), nil
}

func setCarPrimitive(args []Value) (Value, error) {
	if err := SetCar(args[0], args[1]); err != nil {
		return nil, err
	}
	return OK, nil
}

func setCdrPrimitive(args []Value) (Value, error) {
	if err := SetCdr(args[0], args[1]); err != nil {
		return nil, err
	}
	return OK, nil
}

func listPrimitive(args []Value) (Value, error) {
	return ListFromSlice(args, EmptyList), nil
}

func lengthPrimitive(args []Value) (Value, error) {
	n := Length(args[0])
	if n < 0 {
		return wrongType("length", 0, "a proper list", args[0]), nil
	}
	return Integer(n), nil
}

func init() {
	definePrimitive("cons", 2, 2, consPrimitive)
	definePrimitive("car", 1, 1, accessor(Car))
	definePrimitive("cdr", 1, 1, accessor(Cdr))
	definePrimitive("set-car!", 2, 2, setCarPrimitive)
	definePrimitive("set-cdr!", 2, 2, setCdrPrimitive)
	definePrimitive("list", 0, -1, listPrimitive)
	definePrimitive("length", 1, 1, lengthPrimitive)
	definePrimitive("caar", 1, 1, accessor(Caar))
	definePrimitive("cadr", 1, 1, accessor(Cadr))
	definePrimitive("cdar", 1, 1, accessor(Cdar))
	definePrimitive("cddr", 1, 1, accessor(Cddr))
	definePrimitive("caddr", 1, 1, accessor(Caddr))
}
