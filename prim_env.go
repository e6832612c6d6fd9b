package ptscheme

func init() {
	RegisterModule("environments", func(vm *VM) error {
		vm.DefinePrimitive("interaction-environment", 0, 0, func(args []Value) (Value, error) {
			return vm.global, nil
		})
		// a fresh global environment holding only the static primitives
		vm.DefinePrimitive("make-environment", 0, 0, func(args []Value) (Value, error) {
			env := NewEnvironment()
			DefinePrimitives(env)
			return env, nil
		})
		vm.DefinePrimitive("environment-bound?", 2, 2, func(args []Value) (Value, error) {
			env, ok := args[0].(*Environment)
			if !ok {
				return wrongType("environment-bound?", 0, "an environment", args[0]), nil
			}
			sym, e := symbolArg("environment-bound?", args, 1)
			if e != nil {
				return e, nil
			}
			return MakeBoolean(env.IsBound(sym)), nil
		})
		return nil
	})
}
