package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a parenthesis or a raw atom together with the position of its
// first rune (1-based).
type Token struct {
	Text   string
	Line   int
	Column int
}

func (t Token) isOpen() bool  { return t.Text == "(" }
func (t Token) isClose() bool { return t.Text == ")" }

// Tokenize splits source on whitespace and around every parenthesis.
// It never fails; malformed atoms surface later as parse or eval errors.
// Atom text is copied byte for byte, so invalid UTF-8 is preserved.
func Tokenize(source string) []Token {
	var (
		tokens     []Token
		atom       strings.Builder
		atomLine   int
		atomColumn int
	)
	line, column := 1, 0

	flush := func() {
		if atom.Len() == 0 {
			return
		}
		tokens = append(tokens, Token{Text: atom.String(), Line: atomLine, Column: atomColumn})
		atom.Reset()
	}

	for offset := 0; offset < len(source); {
		r, size := utf8.DecodeRuneInString(source[offset:])
		raw := source[offset : offset+size]
		offset += size
		column++
		switch {
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, Token{Text: string(r), Line: line, Column: column})
		case unicode.IsSpace(r):
			flush()
			if r == '\n' {
				line++
				column = 0
			}
		default:
			if atom.Len() == 0 {
				atomLine, atomColumn = line, column
			}
			atom.WriteString(raw)
		}
	}
	flush()
	return tokens
}

// TokenTexts strips positions, mostly useful in tests and diagnostics.
func TokenTexts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for idx, tok := range tokens {
		out[idx] = tok.Text
	}
	return out
}
