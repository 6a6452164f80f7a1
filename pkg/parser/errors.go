package parser

import (
	"errors"
	"fmt"
)

// SyntaxErrorKind classifies reader failures. Like runtime.ErrorKind it is
// an error value usable as an errors.Is target.
type SyntaxErrorKind int

const (
	UnexpectedEOF SyntaxErrorKind = iota + 1
	UnexpectedCloseParen
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case UnexpectedCloseParen:
		return "UnexpectedCloseParen"
	default:
		return fmt.Sprintf("SyntaxErrorKind(%d)", int(k))
	}
}

func (k SyntaxErrorKind) Error() string { return k.String() }

// SourceLocation is the 1-based position a syntax error refers to. Zero
// values mean the position is unknown (e.g. empty input).
type SourceLocation struct {
	Line   int
	Column int
}

// SyntaxError includes the failure kind plus a best-effort location.
type SyntaxError struct {
	Kind     SyntaxErrorKind
	Message  string
	Location SourceLocation
}

func (e *SyntaxError) Error() string {
	if e.Location.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Location.Line, e.Location.Column, e.Message)
}

func (e *SyntaxError) Is(target error) bool {
	kind, ok := target.(SyntaxErrorKind)
	return ok && kind == e.Kind
}

// IsIncomplete reports whether err only means the input ended inside an
// unfinished form, so that more input could complete it.
func IsIncomplete(err error) bool {
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		return false
	}
	return syntaxErr.Kind == UnexpectedEOF && syntaxErr.Location.Line != 0
}

func unexpectedEOF(open *Token) *SyntaxError {
	if open == nil {
		return &SyntaxError{Kind: UnexpectedEOF, Message: "unexpected EOF while reading"}
	}
	return &SyntaxError{
		Kind:     UnexpectedEOF,
		Message:  "unexpected EOF while reading; '(' is never closed",
		Location: SourceLocation{Line: open.Line, Column: open.Column},
	}
}

func unexpectedCloseParen(tok Token) *SyntaxError {
	return &SyntaxError{
		Kind:     UnexpectedCloseParen,
		Message:  "unexpected ')'",
		Location: SourceLocation{Line: tok.Line, Column: tok.Column},
	}
}
