package ptscheme

import (
	"strings"
	"unicode/utf8"
)

func symbolToString(args []Value) (Value, error) {
	sym, e := symbolArg("symbol->string", args, 0)
	if e != nil {
		return e, nil
	}
	return String(sym.Name), nil
}

func stringToSymbol(args []Value) (Value, error) {
	s, e := stringArg("string->symbol", args, 0)
	if e != nil {
		return e, nil
	}
	return Intern(string(s)), nil
}

func numberToString(args []Value) (Value, error) {
	n, e := numberArg("number->string", args, 0)
	if e != nil {
		return e, nil
	}
	return String(n.String()), nil
}

func stringLength(args []Value) (Value, error) {
	s, e := stringArg("string-length", args, 0)
	if e != nil {
		return e, nil
	}
	return Integer(utf8.RuneCountInString(string(s))), nil
}

func stringAppend(args []Value) (Value, error) {
	var sb strings.Builder
	for i := range args {
		s, e := stringArg("string-append", args, i)
		if e != nil {
			return e, nil
		}
		sb.WriteString(string(s))
	}
	return String(sb.String()), nil
}

func charToInteger(args []Value) (Value, error) {
	c, ok := args[0].(Character)
	if !ok {
		return wrongType("char->integer", 0, "a character", args[0]), nil
	}
	return Integer(c), nil
}

func integerToChar(args []Value) (Value, error) {
	n, e := integerArg("integer->char", args, 0)
	if e != nil {
		return e, nil
	}
	if n < 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return wrongType("integer->char", 0, "a valid code point", n), nil
	}
	return Character(rune(n)), nil
}

// (error message irritant...) returns a UserError whose message is the
// displayed message followed by the written irritants.
func errorPrimitive(args []Value) (Value, error) {
	var sb strings.Builder
	sb.WriteString(Display(args[0]))
	for _, irritant := range args[1:] {
		sb.WriteByte(' ')
		sb.WriteString(Repr(irritant))
	}
	return Errorf(UserError, "%s", sb.String()), nil
}

func init() {
	definePrimitive("symbol->string", 1, 1, symbolToString)
	definePrimitive("string->symbol", 1, 1, stringToSymbol)
	definePrimitive("number->string", 1, 1, numberToString)
	definePrimitive("string-length", 1, 1, stringLength)
	definePrimitive("string-append", 0, -1, stringAppend)
	definePrimitive("char->integer", 1, 1, charToInteger)
	definePrimitive("integer->char", 1, 1, integerToChar)
	definePrimitive("error", 1, -1, errorPrimitive)
}
