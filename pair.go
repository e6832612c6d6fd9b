package ptscheme

func Cons(car, cdr Value) *Pair {
	return &Pair{
		Car: car,
		Cdr: cdr,
	}
}

func notAPair(op string, v Value) *Error {
	return Errorf(NotAPair, "%s: %s is not a pair", op, Repr(v))
}

func Car(v Value) (Value, error) {
	if p, ok := v.(*Pair); ok {
		return p.Car, nil
	}
	return nil, notAPair("car", v)
}

func Cdr(v Value) (Value, error) {
	if p, ok := v.(*Pair); ok {
		return p.Cdr, nil
	}
	return nil, notAPair("cdr", v)
}

func SetCar(v Value, car Value) error {
	if p, ok := v.(*Pair); ok {
		p.Car = car
		return nil
	}
	return notAPair("set-car!", v)
}

func SetCdr(v Value, cdr Value) error {
	if p, ok := v.(*Pair); ok {
		p.Cdr = cdr
		return nil
	}
	return notAPair("set-cdr!", v)
}

// cxr applies a car/cdr path read right to left, as in the accessor names:
// "ad" is cadr, i.e. car of cdr.
func cxr(v Value, path string) (Value, error) {
	var err error
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case 'a':
			v, err = Car(v)
		case 'd':
			v, err = Cdr(v)
		}
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func Caar(v Value) (Value, error)   { return cxr(v, "aa") }
func Cadr(v Value) (Value, error)   { return cxr(v, "ad") }
func Cdar(v Value) (Value, error)   { return cxr(v, "da") }
func Cddr(v Value) (Value, error)   { return cxr(v, "dd") }
func Caadr(v Value) (Value, error)  { return cxr(v, "aad") }
func Caddr(v Value) (Value, error)  { return cxr(v, "add") }
func Cdadr(v Value) (Value, error)  { return cxr(v, "dad") }
func Cdddr(v Value) (Value, error)  { return cxr(v, "ddd") }
func Cadddr(v Value) (Value, error) { return cxr(v, "addd") }

// List builds a proper list of vs.
func List(vs ...Value) Value {
	return ListFromSlice(vs, EmptyList)
}

// ListFromSlice builds a list of vs ending in tail. With tail == EmptyList the
// result is a proper list.
func ListFromSlice(vs []Value, tail Value) Value {
	result := tail
	for i := len(vs) - 1; i >= 0; i-- {
		result = Cons(vs[i], result)
	}
	return result
}

// ListToSlice returns the elements of a proper list.
func ListToSlice(v Value) ([]Value, error) {
	var result []Value
	start := v
	for slow := v; ; {
		p, ok := v.(*Pair)
		if !ok {
			break
		}
		result = append(result, p.Car)
		v = p.Cdr
		if len(result)%2 == 0 {
			slow = slow.(*Pair).Cdr
			if slow == v {
				return nil, Errorf(WrongType, "circular list %s", Repr(start))
			}
		}
	}
	if !IsEmpty(v) {
		return nil, Errorf(WrongType, "%s is not a proper list", Repr(start))
	}
	return result, nil
}

// IsList reports whether v is a finite proper list.
func IsList(v Value) bool {
	slow := v
	for {
		p, ok := v.(*Pair)
		if !ok {
			return IsEmpty(v)
		}
		v = p.Cdr
		p, ok = v.(*Pair)
		if !ok {
			return IsEmpty(v)
		}
		v = p.Cdr
		slow = slow.(*Pair).Cdr
		if v == slow {
			return false
		}
	}
}

// Length returns the number of elements of a proper list, or -1.
func Length(v Value) int {
	if !IsList(v) {
		return -1
	}
	n := 0
	for p, ok := v.(*Pair); ok; p, ok = p.Cdr.(*Pair) {
		n++
	}
	return n
}

// Equal compares structurally: pairs by contents, strings and numbers by
// value, everything else by identity. A pair of pairs met again during the
// comparison counts as equal, so cyclic structure terminates.
func Equal(a, b Value) bool {
	return equalPairs(a, b, make(map[[2]*Pair]bool))
}

func equalPairs(a, b Value, seen map[[2]*Pair]bool) bool {
	for {
		pa, ok := a.(*Pair)
		if !ok {
			return Eqv(a, b)
		}
		pb, ok := b.(*Pair)
		if !ok {
			return false
		}
		if pa == pb {
			return true
		}
		key := [2]*Pair{pa, pb}
		if seen[key] {
			return true
		}
		seen[key] = true
		if !equalPairs(pa.Car, pb.Car, seen) {
			return false
		}
		a, b = pa.Cdr, pb.Cdr
	}
}

// Eqv is identity for reference variants and value equality for atoms.
// Integer and Float never compare equal to each other.
func Eqv(a, b Value) bool {
	return a == b
}
