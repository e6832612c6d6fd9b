package ptscheme

import (
	"io"
	"strings"
)

// Repr returns the written representation of v.
func Repr(v Value) string {
	var sb strings.Builder
	p := printer{sb: &sb}
	p.print(v)
	return sb.String()
}

// WriteValue writes the representation of v to w.
func WriteValue(w io.Writer, v Value) error {
	_, err := io.WriteString(w, Repr(v))
	return err
}

// Display returns v the way display would show it: strings and characters
// without quoting, everything else as Repr.
func Display(v Value) string {
	switch x := v.(type) {
	case String:
		return string(x)
	case Character:
		return string(rune(x))
	}
	return Repr(v)
}

type printer struct {
	sb *strings.Builder
	// pairs currently being printed; meeting one again means a cycle
	active map[*Pair]bool
}

func (p *printer) print(v Value) {
	switch x := v.(type) {
	case nil:
		p.sb.WriteString("#<nil>")
	case *Pair:
		if p.active[x] {
			p.sb.WriteString("...")
			return
		}
		p.printPair(x)
	default:
		p.sb.WriteString(v.String())
	}
}

func (p *printer) printPair(pair *Pair) {
	if p.active == nil {
		p.active = make(map[*Pair]bool)
	}
	var spine []*Pair
	defer func() {
		for _, c := range spine {
			delete(p.active, c)
		}
	}()
	p.sb.WriteByte('(')
	for {
		if p.active[pair] {
			p.sb.WriteString("...")
			break
		}
		p.active[pair] = true
		spine = append(spine, pair)
		p.print(pair.Car)
		next, ok := pair.Cdr.(*Pair)
		if ok {
			p.sb.WriteByte(' ')
			pair = next
			continue
		}
		if !IsEmpty(pair.Cdr) {
			p.sb.WriteString(" . ")
			p.print(pair.Cdr)
		}
		break
	}
	p.sb.WriteByte(')')
}
