package ptscheme

func isKind(kinds ...Kind) func(Value) bool {
	return func(v Value) bool {
		k := KindOf(v)
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
}

func eqPrimitive(args []Value) (Value, error) {
	return MakeBoolean(Eqv(args[0], args[1])), nil
}

func equalPrimitive(args []Value) (Value, error) {
	return MakeBoolean(Equal(args[0], args[1])), nil
}

func init() {
	definePrimitive("null?", 1, 1, predicate(IsEmpty))
	definePrimitive("boolean?", 1, 1, predicate(isKind(BooleanKind)))
	definePrimitive("symbol?", 1, 1, predicate(isKind(SymbolKind)))
	definePrimitive("pair?", 1, 1, predicate(isKind(PairKind)))
	definePrimitive("number?", 1, 1, predicate(isKind(IntegerKind, FloatKind)))
	definePrimitive("integer?", 1, 1, predicate(isKind(IntegerKind)))
	definePrimitive("float?", 1, 1, predicate(isKind(FloatKind)))
	definePrimitive("char?", 1, 1, predicate(isKind(CharacterKind)))
	definePrimitive("string?", 1, 1, predicate(isKind(StringKind)))
	definePrimitive("procedure?", 1, 1, predicate(IsProcedure))
	definePrimitive("list?", 1, 1, predicate(IsList))
	definePrimitive("environment?", 1, 1, predicate(isKind(EnvironmentKind)))
	definePrimitive("eof-object?", 1, 1, predicate(isKind(EOFKind)))
	definePrimitive("not", 1, 1, predicate(IsFalse))
	definePrimitive("eq?", 2, 2, eqPrimitive)
	definePrimitive("eqv?", 2, 2, eqPrimitive)
	definePrimitive("equal?", 2, 2, equalPrimitive)
}
