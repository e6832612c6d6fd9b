package ptscheme

import "sync"

var symtab sync.Map

// Intern returns the unique symbol for name. Two calls with equal names
// return the same pointer, so symbols can be compared with ==.
func Intern(name string) *Symbol {
	if sym, ok := symtab.Load(name); ok {
		return sym.(*Symbol)
	}
	sym, _ := symtab.LoadOrStore(name, &Symbol{Name: name})
	return sym.(*Symbol)
}

var (
	symQuote   = Intern("quote")
	symSet     = Intern("set!")
	symDefine  = Intern("define")
	symIf      = Intern("if")
	symLambda  = Intern("lambda")
	symBegin   = Intern("begin")
	symCond    = Intern("cond")
	symElse    = Intern("else")
	symLet     = Intern("let")
	symLetStar = Intern("let*")
	symAnd     = Intern("and")
	symOr      = Intern("or")
	symApply   = Intern("apply")
	symEval    = Intern("eval")

	// OK is returned by set!, define and the mutating primitives.
	OK = Intern("ok")
)
