package ptscheme

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an *Error. Codes that existed in earlier releases keep
// their numeric value.
type ErrorCode int

const (
	UnknownBooleanLiteral     ErrorCode = 3
	IncompleteLiteral         ErrorCode = 4
	UnterminatedString        ErrorCode = 6
	StringTooLong             ErrorCode = 7
	UnexpectedEndOfLine       ErrorCode = 10
	DotNotFollowedByDelimiter ErrorCode = 34
	MissingClosingParen       ErrorCode = 35
	SymbolTooLong             ErrorCode = 40
	SymbolNotDelimited        ErrorCode = 41
	UnboundVariable           ErrorCode = 50
	NotAPair                  ErrorCode = 60
	WrongType                 ErrorCode = 61
	ArityMismatch             ErrorCode = 70
	DivisionByZero            ErrorCode = 80
	MalformedNumber           ErrorCode = 99
	MalformedSpecialForm      ErrorCode = 120
	UnrecognizedInput         ErrorCode = 234
	UnknownProcedureType      ErrorCode = 342
	StackExhausted            ErrorCode = 500
	UserError                 ErrorCode = 1000
)

var errorCodeNames = map[ErrorCode]string{
	UnknownBooleanLiteral:     "UnknownBooleanLiteral",
	IncompleteLiteral:         "IncompleteLiteral",
	UnterminatedString:        "UnterminatedString",
	StringTooLong:             "StringTooLong",
	UnexpectedEndOfLine:       "UnexpectedEndOfLine",
	DotNotFollowedByDelimiter: "DotNotFollowedByDelimiter",
	MissingClosingParen:       "MissingClosingParen",
	SymbolTooLong:             "SymbolTooLong",
	SymbolNotDelimited:        "SymbolNotDelimited",
	UnboundVariable:           "UnboundVariable",
	NotAPair:                  "NotAPair",
	WrongType:                 "WrongType",
	ArityMismatch:             "ArityMismatch",
	DivisionByZero:            "DivisionByZero",
	MalformedNumber:           "MalformedNumber",
	MalformedSpecialForm:      "MalformedSpecialForm",
	UnrecognizedInput:         "UnrecognizedInput",
	UnknownProcedureType:      "UnknownProcedureType",
	StackExhausted:            "StackExhausted",
	UserError:                 "UserError",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is both a Scheme value and a Go error. Returned as a Value it is a
// soft error the caller may print and continue past; returned through an
// error result it aborts evaluation.
type Error struct {
	Code    ErrorCode
	Message string

	// set when the reader ran out of input in the middle of a datum
	incomplete bool
}

func (*Error) Kind() Kind { return ErrorKind }
func (*Error) value()     {}

func (e *Error) String() string {
	return fmt.Sprintf("Error %d: %s", e.Code, e.Message)
}

func (e *Error) Error() string {
	return e.String()
}

// Is matches any *Error with the same code, so errors.Is(err, &Error{Code: c})
// works as a code test.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func IsError(v Value) bool {
	_, ok := v.(*Error)
	return ok
}

// CodeOf extracts the code of a hard or soft error, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsIncomplete reports whether v is a reader error caused by the input ending
// in the middle of a datum. More input may complete it.
func IsIncomplete(v Value) bool {
	e, ok := v.(*Error)
	return ok && e.incomplete
}

func incompletef(code ErrorCode, format string, args ...any) *Error {
	e := Errorf(code, format, args...)
	e.incomplete = true
	return e
}
