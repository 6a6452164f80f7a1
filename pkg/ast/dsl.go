package ast

// Symbol and literal helpers.

func Sym(name string) *Symbol {
	return NewSymbol(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

// List helpers.

func Lst(elements ...Expression) *List {
	if elements == nil {
		elements = []Expression{}
	}
	return NewList(elements)
}

// Call builds a list headed by the named symbol, e.g. Call("+", Int(1), Int(2)).
func Call(head string, args ...Expression) *List {
	elements := make([]Expression, 0, len(args)+1)
	elements = append(elements, Sym(head))
	elements = append(elements, args...)
	return NewList(elements)
}

func Quote(expr Expression) *List {
	return Call("quote", expr)
}

func Syms(names ...string) *List {
	elements := make([]Expression, 0, len(names))
	for _, name := range names {
		elements = append(elements, Sym(name))
	}
	return NewList(elements)
}
