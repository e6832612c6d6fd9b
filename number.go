package ptscheme

import (
	"math"
	"strconv"
	"strings"
)

// Number is implemented by Integer and Float. Mixed operations promote the
// integer operand to Float.
type Number interface {
	Value
	Add(rhs Number) Number
	Sub(rhs Number) Number
	Mul(rhs Number) Number
	Div(rhs Number) Value
	Cmp(rhs Number) int
	Float64() float64
}

// Integer

type Integer int64

func (Integer) Kind() Kind { return IntegerKind }
func (Integer) value()     {}

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i Integer) Float64() float64 {
	return float64(i)
}

func (i1 Integer) Add(v2 Number) Number {
	if i2, ok := v2.(Integer); ok {
		return i1 + i2
	}
	return Float(i1).Add(v2)
}

func (i1 Integer) Sub(v2 Number) Number {
	if i2, ok := v2.(Integer); ok {
		return i1 - i2
	}
	return Float(i1).Sub(v2)
}

func (i1 Integer) Mul(v2 Number) Number {
	if i2, ok := v2.(Integer); ok {
		return i1 * i2
	}
	return Float(i1).Mul(v2)
}

// Div returns an Integer when the division is exact, a Float otherwise.
func (i1 Integer) Div(v2 Number) Value {
	i2, ok := v2.(Integer)
	if !ok {
		return Float(i1).Div(v2)
	}
	if i2 == 0 {
		return Errorf(DivisionByZero, "integer division by zero")
	}
	if i1%i2 == 0 {
		return i1 / i2
	}
	return Float(float64(i1) / float64(i2))
}

func (i1 Integer) Cmp(v2 Number) int {
	if i2, ok := v2.(Integer); ok {
		switch {
		case i1 < i2:
			return -1
		case i1 > i2:
			return 1
		}
		return 0
	}
	return Float(i1).Cmp(v2)
}

// Quotient truncates toward zero.
func (i1 Integer) Quotient(i2 Integer) Value {
	if i2 == 0 {
		return Errorf(DivisionByZero, "quotient: division by zero")
	}
	return i1 / i2
}

// Remainder has the sign of the dividend.
func (i1 Integer) Remainder(i2 Integer) Value {
	if i2 == 0 {
		return Errorf(DivisionByZero, "remainder: division by zero")
	}
	return i1 % i2
}

// Modulo has the sign of the divisor.
func (i1 Integer) Modulo(i2 Integer) Value {
	if i2 == 0 {
		return Errorf(DivisionByZero, "modulo: division by zero")
	}
	m := i1 % i2
	if m != 0 && (m < 0) != (i2 < 0) {
		m += i2
	}
	return m
}

// Float

type Float float64

func (Float) Kind() Kind { return FloatKind }
func (Float) value()     {}

func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return s
	}
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func (f Float) Float64() float64 {
	return float64(f)
}

func (f1 Float) Add(v2 Number) Number {
	return f1 + Float(v2.Float64())
}

func (f1 Float) Sub(v2 Number) Number {
	return f1 - Float(v2.Float64())
}

func (f1 Float) Mul(v2 Number) Number {
	return f1 * Float(v2.Float64())
}

func (f1 Float) Div(v2 Number) Value {
	f2 := v2.Float64()
	if f2 == 0.0 {
		return Errorf(DivisionByZero, "float division by zero")
	}
	return f1 / Float(f2)
}

func (f1 Float) Cmp(v2 Number) int {
	f2 := Float(v2.Float64())
	switch {
	case f1 < f2:
		return -1
	case f1 > f2:
		return 1
	}
	return 0
}
