package ptscheme

// Frames with more names than this keep a name index next to the slices.
const frameIndexThreshold = 16

type frame struct {
	names  []*Symbol
	values []Value
	index  map[*Symbol]int
}

func (f *frame) find(sym *Symbol) int {
	if f.index != nil {
		if i, ok := f.index[sym]; ok {
			return i
		}
		return -1
	}
	for i, name := range f.names {
		if name == sym {
			return i
		}
	}
	return -1
}

func (f *frame) add(sym *Symbol, val Value) {
	f.names = append(f.names, sym)
	f.values = append(f.values, val)
	if f.index != nil {
		f.index[sym] = len(f.names) - 1
	} else if len(f.names) > frameIndexThreshold {
		f.index = make(map[*Symbol]int, len(f.names)*2)
		for i, name := range f.names {
			f.index[name] = i
		}
	}
}

// Environment is one frame of bindings plus the enclosing environment. The
// outermost environment has a nil parent.
type Environment struct {
	frame  *frame
	parent *Environment
}

// NewEnvironment returns an environment with one empty frame and no parent.
func NewEnvironment() *Environment {
	return &Environment{frame: &frame{}}
}

func (*Environment) Kind() Kind     { return EnvironmentKind }
func (*Environment) value()         {}
func (*Environment) String() string { return "#<environment>" }

// Parent returns the enclosing environment, or nil.
func (env *Environment) Parent() *Environment {
	return env.parent
}

// Names lists the variables of the innermost frame in definition order.
func (env *Environment) Names() []*Symbol {
	return append([]*Symbol(nil), env.frame.names...)
}

func (env *Environment) lookup(sym *Symbol) (*frame, int) {
	for e := env; e != nil; e = e.parent {
		if i := e.frame.find(sym); i >= 0 {
			return e.frame, i
		}
	}
	return nil, -1
}

// IsBound reports whether sym has a binding anywhere in the chain.
func (env *Environment) IsBound(sym *Symbol) bool {
	f, _ := env.lookup(sym)
	return f != nil
}

// LookupVariable returns the value bound to sym. An unbound variable yields an
// *Error value rather than a failure, so a bad reference at the prompt does
// not end the session.
func (env *Environment) LookupVariable(sym *Symbol) Value {
	if f, i := env.lookup(sym); f != nil {
		return f.values[i]
	}
	return Errorf(UnboundVariable, "unbound variable: %s", sym.Name)
}

// SetVariable overwrites the innermost existing binding of sym. Unlike
// LookupVariable, a missing binding is a hard error.
func (env *Environment) SetVariable(sym *Symbol, val Value) error {
	if f, i := env.lookup(sym); f != nil {
		f.values[i] = val
		return nil
	}
	return Errorf(UnboundVariable, "set!: unbound variable: %s", sym.Name)
}

// DefineVariable binds sym in the innermost frame only, replacing an existing
// binding of the same name in that frame.
func (env *Environment) DefineVariable(sym *Symbol, val Value) {
	if i := env.frame.find(sym); i >= 0 {
		env.frame.values[i] = val
		return
	}
	env.frame.add(sym, val)
}

// ExtendEnvironment returns a new environment whose single frame binds params
// to args, with base as parent. params is a proper list of symbols, a dotted
// list whose tail symbol receives the remaining arguments as a list, or a
// lone symbol receiving all of them.
func ExtendEnvironment(params Value, args []Value, base *Environment) (*Environment, error) {
	f := &frame{}
	params0 := params
	i := 0
	for {
		switch p := params.(type) {
		case Empty:
			if i != len(args) {
				return nil, arityError(params0, len(args))
			}
			return &Environment{frame: f, parent: base}, nil
		case *Symbol:
			if f.find(p) >= 0 {
				return nil, Errorf(MalformedSpecialForm, "duplicate parameter %s", p.Name)
			}
			f.add(p, ListFromSlice(args[i:], EmptyList))
			return &Environment{frame: f, parent: base}, nil
		case *Pair:
			sym, ok := p.Car.(*Symbol)
			if !ok {
				return nil, Errorf(MalformedSpecialForm, "parameter %s is not a symbol", Repr(p.Car))
			}
			if i >= len(args) {
				return nil, arityError(params0, len(args))
			}
			if f.find(sym) >= 0 {
				return nil, Errorf(MalformedSpecialForm, "duplicate parameter %s", sym.Name)
			}
			f.add(sym, args[i])
			i++
			params = p.Cdr
		default:
			return nil, Errorf(MalformedSpecialForm, "malformed parameter list %s", Repr(params))
		}
	}
}

func arityError(params Value, got int) *Error {
	n := 0
	for p, ok := params.(*Pair); ok; p, ok = p.Cdr.(*Pair) {
		n++
	}
	if IsList(params) {
		return Errorf(ArityMismatch, "expected %d argument(s), got %d", n, got)
	}
	return Errorf(ArityMismatch, "expected at least %d argument(s), got %d", n, got)
}
