package ptscheme

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	BooleanKind Kind = iota
	CharacterKind
	IntegerKind
	FloatKind
	StringKind
	SymbolKind
	EmptyListKind
	PairKind
	ErrorKind
	PrimitiveKind
	CompoundKind
	InputPortKind
	OutputPortKind
	EOFKind
	EnvironmentKind
)

var kindNames = [...]string{
	BooleanKind:     "boolean",
	CharacterKind:   "character",
	IntegerKind:     "integer",
	FloatKind:       "float",
	StringKind:      "string",
	SymbolKind:      "symbol",
	EmptyListKind:   "empty-list",
	PairKind:        "pair",
	ErrorKind:       "error",
	PrimitiveKind:   "primitive-procedure",
	CompoundKind:    "compound-procedure",
	InputPortKind:   "input-port",
	OutputPortKind:  "output-port",
	EOFKind:         "eof-object",
	EnvironmentKind: "environment",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is any object the reader can produce or the evaluator can return.
// The set of implementations is closed: only this package can add variants.
type Value interface {
	Kind() Kind
	String() string
	value()
}

// KindOf returns the variant of v.
func KindOf(v Value) Kind {
	return v.Kind()
}

// Boolean

type Boolean bool

const (
	True  = Boolean(true)
	False = Boolean(false)
)

// MakeBoolean returns the canonical True or False.
func MakeBoolean(b bool) Boolean {
	if b {
		return True
	}
	return False
}

func (Boolean) Kind() Kind { return BooleanKind }
func (Boolean) value()     {}

func (b Boolean) String() string {
	if b == True {
		return "#t"
	}
	return "#f"
}

// IsTrue reports whether v counts as true in a conditional. Only #f is false.
func IsTrue(v Value) bool {
	return v != Value(False)
}

// IsFalse reports whether v is the #f singleton.
func IsFalse(v Value) bool {
	return v == Value(False)
}

// Character

type Character rune

func (Character) Kind() Kind { return CharacterKind }
func (Character) value()     {}

func (c Character) String() string {
	return "#'" + escapeRune(rune(c)) + "'"
}

// Integer and Float live in number.go.

// String

type String string

func (String) Kind() Kind { return StringKind }
func (String) value()     {}

func (s String) String() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range string(s) {
		sb.WriteString(escapeRune(r))
	}
	sb.WriteByte('"')
	return sb.String()
}

func escapeRune(r rune) string {
	switch r {
	case 0:
		return "NULL"
	case '\a':
		return `\a`
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\v':
		return `\v`
	case '\\':
		return `\\`
	case '\'':
		return `\'`
	case '"':
		return `\"`
	case '?':
		return `\?`
	default:
		return string(r)
	}
}

// Symbol

type Symbol struct {
	Name string
}

func (*Symbol) Kind() Kind { return SymbolKind }
func (*Symbol) value()     {}

func (sym *Symbol) String() string {
	return sym.Name
}

// EmptyList

type Empty struct{}

// EmptyList is the one and only empty list.
var EmptyList = Empty{}

func (Empty) Kind() Kind     { return EmptyListKind }
func (Empty) value()         {}
func (Empty) String() string { return "()" }

// IsEmpty reports whether v is the empty list singleton.
func IsEmpty(v Value) bool {
	return v == Value(EmptyList)
}

// Pair

type Pair struct {
	Car Value
	Cdr Value
}

func (*Pair) Kind() Kind { return PairKind }
func (*Pair) value()     {}

func (p *Pair) String() string {
	return Repr(p)
}

// Procedures

// PrimitiveFn implements a primitive procedure. Arguments are already
// evaluated. Soft failures are returned as *Error values, hard failures
// through the error result.
type PrimitiveFn func(args []Value) (Value, error)

type Primitive struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 means no upper bound
	Fn      PrimitiveFn
}

func (*Primitive) Kind() Kind       { return PrimitiveKind }
func (*Primitive) value()           {}
func (*Primitive) String() string   { return "#<primitive-procedure>" }
func (p *Primitive) Variadic() bool { return p.MaxArgs < 0 }

func (p *Primitive) checkArity(n int) error {
	if n < p.MinArgs || (p.MaxArgs >= 0 && n > p.MaxArgs) {
		var want string
		switch {
		case p.MaxArgs < 0:
			want = fmt.Sprintf("at least %d", p.MinArgs)
		case p.MinArgs == p.MaxArgs:
			want = strconv.Itoa(p.MinArgs)
		default:
			want = fmt.Sprintf("%d to %d", p.MinArgs, p.MaxArgs)
		}
		return Errorf(ArityMismatch, "%s expects %s argument(s), got %d", p.Name, want, n)
	}
	return nil
}

// Compound is a closure created by lambda.
type Compound struct {
	Name   *Symbol
	Params Value
	Body   Value
	Env    *Environment
}

func (*Compound) Kind() Kind     { return CompoundKind }
func (*Compound) value()         {}
func (*Compound) String() string { return "#<compound-procedure>" }

func (c *Compound) name() string {
	if c.Name == nil {
		return "anonymous procedure"
	}
	return c.Name.Name
}

// IsProcedure reports whether v can be applied.
func IsProcedure(v Value) bool {
	switch v.(type) {
	case *Primitive, *Compound:
		return true
	}
	return false
}

// Ports

type InputPort struct {
	*bufio.Reader
}

// NewInputPort wraps r for rune-at-a-time reading.
func NewInputPort(r io.Reader) *InputPort {
	if br, ok := r.(*bufio.Reader); ok {
		return &InputPort{br}
	}
	return &InputPort{bufio.NewReader(r)}
}

func (*InputPort) Kind() Kind     { return InputPortKind }
func (*InputPort) value()         {}
func (*InputPort) String() string { return "#<input-port>" }

type OutputPort struct {
	io.Writer
}

func NewOutputPort(w io.Writer) *OutputPort {
	return &OutputPort{w}
}

func (*OutputPort) Kind() Kind     { return OutputPortKind }
func (*OutputPort) value()         {}
func (*OutputPort) String() string { return "#<output-port>" }

// EOFObject

type EOFObject struct{}

// EOF is the end-of-file object.
var EOF = EOFObject{}

func (EOFObject) Kind() Kind     { return EOFKind }
func (EOFObject) value()         {}
func (EOFObject) String() string { return "#<eof>" }
