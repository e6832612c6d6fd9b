package ptscheme

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

const (
	DefaultMaxStringLength = 999
	DefaultMaxSymbolLength = 999
)

const eofRune rune = -1

// Reader turns a character stream into values. Malformed input produces
// *Error values and skips the rest of the offending line; Read returns io.EOF
// once the stream is exhausted between data.
type Reader struct {
	src             io.RuneScanner
	maxStringLength int
	maxSymbolLength int
	floats          bool
}

type ReaderOption func(*Reader)

func WithMaxStringLength(n int) ReaderOption {
	return func(rd *Reader) { rd.maxStringLength = n }
}

func WithMaxSymbolLength(n int) ReaderOption {
	return func(rd *Reader) { rd.maxSymbolLength = n }
}

// WithFloats controls whether numbers with a decimal point are accepted.
func WithFloats(enabled bool) ReaderOption {
	return func(rd *Reader) { rd.floats = enabled }
}

func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	src, ok := r.(io.RuneScanner)
	if !ok {
		src = bufio.NewReader(r)
	}
	return newReader(src, opts...)
}

func newReader(src io.RuneScanner, opts ...ReaderOption) *Reader {
	rd := &Reader{
		src:             src,
		maxStringLength: DefaultMaxStringLength,
		maxSymbolLength: DefaultMaxSymbolLength,
		floats:          true,
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Read reads one datum from src with default reader settings.
func Read(src io.RuneScanner) (Value, error) {
	return newReader(src).Read()
}

// ReadString reads every datum in s.
func ReadString(s string, opts ...ReaderOption) ([]Value, error) {
	rd := NewReader(strings.NewReader(s), opts...)
	var result []Value
	for {
		v, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return result, err
		}
		result = append(result, v)
	}
}

func (rd *Reader) readRune() (rune, error) {
	r, _, err := rd.src.ReadRune()
	if errors.Is(err, io.EOF) {
		return eofRune, nil
	}
	return r, err
}

func (rd *Reader) peekRune() (rune, error) {
	r, _, err := rd.src.ReadRune()
	if errors.Is(err, io.EOF) {
		return eofRune, nil
	}
	if err != nil {
		return 0, err
	}
	return r, rd.src.UnreadRune()
}

// flushLine discards input up to and including the next newline.
func (rd *Reader) flushLine() error {
	for {
		r, err := rd.readRune()
		if err != nil {
			return err
		}
		if r == eofRune || r == '\n' {
			return nil
		}
	}
}

// fail discards the rest of the line and returns a soft error.
func (rd *Reader) fail(code ErrorCode, format string, args ...any) (Value, error) {
	if err := rd.flushLine(); err != nil {
		return nil, err
	}
	return Errorf(code, format, args...), nil
}

func isDelimiter(r rune) bool {
	return r == eofRune ||
		unicode.IsSpace(r) ||
		r == '(' ||
		r == ')' ||
		r == '"' ||
		r == ';'
}

func isInitial(r rune) bool {
	return unicode.IsLetter(r) || strings.ContainsRune("*/<>=?!$%&:^_~", r)
}

func isSubsequent(r rune) bool {
	return isInitial(r) || isDigit(r) || r == '+' || r == '-' || r == '.'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// skipAtmosphere consumes whitespace and comments.
func (rd *Reader) skipAtmosphere() error {
	for {
		r, err := rd.peekRune()
		if err != nil {
			return err
		}
		switch {
		case r == ';':
			if err := rd.flushLine(); err != nil {
				return err
			}
		case r != eofRune && unicode.IsSpace(r):
			if _, err := rd.readRune(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (rd *Reader) Read() (Value, error) {
	if err := rd.skipAtmosphere(); err != nil {
		return nil, err
	}
	r, err := rd.readRune()
	if err != nil {
		return nil, err
	}
	switch {
	case r == eofRune:
		return nil, io.EOF
	case r == '#':
		return rd.readHash()
	case isDigit(r):
		return rd.readNumber(r)
	case r == '-' || r == '+':
		next, err := rd.peekRune()
		if err != nil {
			return nil, err
		}
		if isDigit(next) || next == '.' {
			return rd.readNumber(r)
		}
		return rd.readSymbol(r)
	case r == '.':
		next, err := rd.peekRune()
		if err != nil {
			return nil, err
		}
		if isDigit(next) {
			return rd.readNumber(r)
		}
		return rd.fail(UnrecognizedInput, "unexpected '.'")
	case r == '"':
		return rd.readString()
	case r == '(':
		return rd.readList()
	case r == '\'':
		return rd.readQuote()
	case isInitial(r):
		return rd.readSymbol(r)
	default:
		return rd.fail(UnrecognizedInput, "unrecognized input %q", r)
	}
}

func (rd *Reader) readHash() (Value, error) {
	r, err := rd.readRune()
	if err != nil {
		return nil, err
	}
	switch r {
	case eofRune:
		return incompletef(UnexpectedEndOfLine, "unexpected end of input after '#'"), nil
	case '\n':
		return Errorf(UnexpectedEndOfLine, "unexpected end of line encountered"), nil
	case 't', 'f':
		next, err := rd.peekRune()
		if err != nil {
			return nil, err
		}
		if !isDelimiter(next) {
			return rd.fail(UnknownBooleanLiteral, "unknown boolean literal")
		}
		return MakeBoolean(r == 't'), nil
	case '\'':
		return rd.readCharacter()
	default:
		return rd.fail(UnknownBooleanLiteral, "unknown boolean literal")
	}
}

func unescape(r rune) rune {
	switch r {
	case '0':
		return 0
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	}
	// \\ \' \" \? and unknown escapes stand for the character itself
	return r
}

// readCharacter reads the rest of a #'c' literal; "#'" is already consumed.
func (rd *Reader) readCharacter() (Value, error) {
	r, err := rd.readRune()
	if err != nil {
		return nil, err
	}
	switch r {
	case eofRune:
		return incompletef(IncompleteLiteral, "incomplete character literal"), nil
	case '\n':
		return Errorf(IncompleteLiteral, "incomplete character literal"), nil
	case '\\':
		r, err = rd.readRune()
		if err != nil {
			return nil, err
		}
		switch r {
		case eofRune:
			return incompletef(IncompleteLiteral, "incomplete character literal"), nil
		case '\n':
			return Errorf(IncompleteLiteral, "incomplete character literal"), nil
		}
		r = unescape(r)
	}
	end, err := rd.readRune()
	if err != nil {
		return nil, err
	}
	switch end {
	case '\'':
		return Character(r), nil
	case eofRune:
		return incompletef(IncompleteLiteral, "character literal missing termination"), nil
	case '\n':
		return Errorf(IncompleteLiteral, "character literal missing termination"), nil
	}
	return rd.fail(IncompleteLiteral, "character literal missing termination")
}

func (rd *Reader) readNumber(first rune) (Value, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	digits := isDigit(first)
	decimal := first == '.'
	for {
		r, err := rd.peekRune()
		if err != nil {
			return nil, err
		}
		if isDelimiter(r) {
			break
		}
		switch {
		case isDigit(r):
			digits = true
		case r == '.' && !decimal:
			decimal = true
		default:
			return rd.fail(MalformedNumber, "improperly formatted number")
		}
		if _, err := rd.readRune(); err != nil {
			return nil, err
		}
		sb.WriteRune(r)
	}
	if !digits {
		return rd.fail(MalformedNumber, "improperly formatted number")
	}
	text := sb.String()
	if decimal {
		if !rd.floats {
			return rd.fail(MalformedNumber, "floating point literal %s not supported", text)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return rd.fail(MalformedNumber, "number %s out of range", text)
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return rd.fail(MalformedNumber, "number %s out of range", text)
	}
	return Integer(i), nil
}

// readString reads the rest of a string literal; the opening quote is already
// consumed.
func (rd *Reader) readString() (Value, error) {
	var sb strings.Builder
	n := 0
	for {
		r, err := rd.readRune()
		if err != nil {
			return nil, err
		}
		switch r {
		case eofRune:
			return incompletef(UnterminatedString, "non-terminated string literal"), nil
		case '"':
			return String(sb.String()), nil
		}
		if n == rd.maxStringLength {
			return rd.fail(StringTooLong, "string too long")
		}
		if r == '\\' {
			r, err = rd.readRune()
			if err != nil {
				return nil, err
			}
			if r == eofRune {
				return incompletef(IncompleteLiteral, "incomplete escape sequence in string literal"), nil
			}
			r = unescape(r)
		}
		sb.WriteRune(r)
		n++
	}
}

func (rd *Reader) readSymbol(first rune) (Value, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	n := 1
	for {
		r, err := rd.peekRune()
		if err != nil {
			return nil, err
		}
		if isDelimiter(r) {
			return Intern(sb.String()), nil
		}
		if !isSubsequent(r) {
			return rd.fail(SymbolNotDelimited, "symbol not followed by a delimiter")
		}
		if n == rd.maxSymbolLength {
			return rd.fail(SymbolTooLong, "symbol too long")
		}
		if _, err := rd.readRune(); err != nil {
			return nil, err
		}
		sb.WriteRune(r)
		n++
	}
}

func (rd *Reader) readQuote() (Value, error) {
	datum, err := rd.Read()
	if errors.Is(err, io.EOF) {
		return incompletef(IncompleteLiteral, "quote not followed by a datum"), nil
	}
	if err != nil || IsError(datum) {
		return datum, err
	}
	return List(symQuote, datum), nil
}

// readList reads the rest of a list; the opening parenthesis is already
// consumed. Elements are read recursively, the spine iteratively.
func (rd *Reader) readList() (Value, error) {
	head := &Pair{Cdr: EmptyList}
	tail := head
	for {
		if err := rd.skipAtmosphere(); err != nil {
			return nil, err
		}
		r, err := rd.peekRune()
		if err != nil {
			return nil, err
		}
		switch {
		case r == eofRune:
			return incompletef(MissingClosingParen, "unexpected end of input in list"), nil
		case r == ')':
			if _, err := rd.readRune(); err != nil {
				return nil, err
			}
			return head.Cdr, nil
		case r == '.' && tail != head:
			if _, err := rd.readRune(); err != nil {
				return nil, err
			}
			next, err := rd.peekRune()
			if err != nil {
				return nil, err
			}
			if isDigit(next) {
				item, err := rd.readNumber('.')
				if err != nil || IsError(item) {
					return item, err
				}
				cell := Cons(item, EmptyList)
				tail.Cdr = cell
				tail = cell
				continue
			}
			if !isDelimiter(next) {
				return rd.fail(DotNotFollowedByDelimiter, "dot not followed by a delimiter")
			}
			return rd.readDottedTail(head, tail)
		}
		item, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return incompletef(MissingClosingParen, "unexpected end of input in list"), nil
		}
		if err != nil || IsError(item) {
			return item, err
		}
		cell := Cons(item, EmptyList)
		tail.Cdr = cell
		tail = cell
	}
}

func (rd *Reader) readDottedTail(head, tail *Pair) (Value, error) {
	cdr, err := rd.Read()
	if errors.Is(err, io.EOF) {
		return incompletef(MissingClosingParen, "unexpected end of input after dot"), nil
	}
	if err != nil || IsError(cdr) {
		return cdr, err
	}
	if err := rd.skipAtmosphere(); err != nil {
		return nil, err
	}
	r, err := rd.readRune()
	if err != nil {
		return nil, err
	}
	switch r {
	case ')':
		tail.Cdr = cdr
		return head.Cdr, nil
	case eofRune:
		return incompletef(MissingClosingParen, "trailing right parenthesis is missing after dotted cdr"), nil
	}
	return rd.fail(MissingClosingParen, "trailing right parenthesis is missing after dotted cdr")
}
