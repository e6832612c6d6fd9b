package ptscheme

// The static primitive table. Files named prim_*.go add to it from init.
var primitives []*Primitive

func definePrimitive(name string, minArgs, maxArgs int, fn PrimitiveFn) {
	primitives = append(primitives, &Primitive{
		Name:    name,
		MinArgs: minArgs,
		MaxArgs: maxArgs,
		Fn:      fn,
	})
}

// DefinePrimitives binds every primitive of the static table in env.
// Primitives that need a VM are installed by their modules instead.
func DefinePrimitives(env *Environment) {
	for _, p := range primitives {
		env.DefineVariable(Intern(p.Name), p)
	}
}

// LookupPrimitive returns the static primitive called name, or nil.
func LookupPrimitive(name string) *Primitive {
	for _, p := range primitives {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func wrongType(name string, i int, want string, got Value) *Error {
	return Errorf(WrongType, "%s: argument %d must be %s, got %s", name, i+1, want, Repr(got))
}

func numberArg(name string, args []Value, i int) (Number, *Error) {
	if n, ok := args[i].(Number); ok {
		return n, nil
	}
	return nil, wrongType(name, i, "a number", args[i])
}

func integerArg(name string, args []Value, i int) (Integer, *Error) {
	if n, ok := args[i].(Integer); ok {
		return n, nil
	}
	return 0, wrongType(name, i, "an integer", args[i])
}

func stringArg(name string, args []Value, i int) (String, *Error) {
	if s, ok := args[i].(String); ok {
		return s, nil
	}
	return "", wrongType(name, i, "a string", args[i])
}

func symbolArg(name string, args []Value, i int) (*Symbol, *Error) {
	if s, ok := args[i].(*Symbol); ok {
		return s, nil
	}
	return nil, wrongType(name, i, "a symbol", args[i])
}

// predicate wraps a one-argument test as a primitive.
func predicate(test func(Value) bool) PrimitiveFn {
	return func(args []Value) (Value, error) {
		return MakeBoolean(test(args[0])), nil
	}
}
