package parser

import (
	"strconv"

	"github.com/edwingeng/deque"

	"github.com/tartley/lispy/pkg/ast"
)

// Reader turns a token sequence into expressions, one top-level form per
// Read. Tokens are consumed from the front of the queue and never revisited.
type Reader struct {
	tokens deque.Deque
}

// NewReader queues tokens for reading.
func NewReader(tokens []Token) *Reader {
	q := deque.NewDeque()
	for _, tok := range tokens {
		q.PushBack(tok)
	}
	return &Reader{tokens: q}
}

// NewStringReader tokenizes source and returns a reader over the result.
func NewStringReader(source string) *Reader {
	return NewReader(Tokenize(source))
}

// More reports whether unread tokens remain.
func (r *Reader) More() bool {
	return !r.tokens.Empty()
}

// Remaining returns the number of unread tokens.
func (r *Reader) Remaining() int {
	return r.tokens.Len()
}

func (r *Reader) pop() Token {
	tok := r.tokens.Front().(Token)
	r.tokens.PopFront()
	return tok
}

func (r *Reader) peek() Token {
	return r.tokens.Front().(Token)
}

// Read consumes exactly one complete form.
func (r *Reader) Read() (ast.Expression, error) {
	if r.tokens.Empty() {
		return nil, unexpectedEOF(nil)
	}
	tok := r.pop()
	switch {
	case tok.isOpen():
		return r.readList(tok)
	case tok.isClose():
		return nil, unexpectedCloseParen(tok)
	default:
		return classifyAtom(tok.Text), nil
	}
}

func (r *Reader) readList(open Token) (ast.Expression, error) {
	elements := []ast.Expression{}
	for {
		if r.tokens.Empty() {
			return nil, unexpectedEOF(&open)
		}
		if r.peek().isClose() {
			r.pop()
			return ast.NewList(elements), nil
		}
		el, err := r.Read()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
}

// classifyAtom tries an integer, then a float, and falls back to a symbol.
func classifyAtom(text string) ast.Atom {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ast.NewIntegerLiteral(n)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return ast.NewFloatLiteral(f)
	}
	return ast.NewSymbol(text)
}

// ParseAll reads every top-level form in source, stopping at the first
// syntax error. Forms read before the error are returned alongside it.
func ParseAll(source string) ([]ast.Expression, error) {
	r := NewStringReader(source)
	var forms []ast.Expression
	for r.More() {
		expr, err := r.Read()
		if err != nil {
			return forms, err
		}
		forms = append(forms, expr)
	}
	return forms, nil
}
