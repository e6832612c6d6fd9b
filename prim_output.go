package ptscheme

import "io"

func init() {
	RegisterModule("output", func(vm *VM) error {
		vm.DefinePrimitive("display", 1, 1, func(args []Value) (Value, error) {
			if _, err := io.WriteString(vm.out, Display(args[0])); err != nil {
				return nil, err
			}
			return OK, nil
		})
		vm.DefinePrimitive("write", 1, 1, func(args []Value) (Value, error) {
			if err := WriteValue(vm.out, args[0]); err != nil {
				return nil, err
			}
			return OK, nil
		})
		vm.DefinePrimitive("newline", 0, 0, func(args []Value) (Value, error) {
			if _, err := io.WriteString(vm.out, "\n"); err != nil {
				return nil, err
			}
			return OK, nil
		})
		return nil
	})
}
