package parser

import (
	"reflect"
	"testing"
)

func TestTokenizeSplitsAroundParens(t *testing.T) {
	got := TokenTexts(Tokenize("(set var 123)"))
	want := []string{"(", "set", "var", "123", ")"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeAdjacentParensAndAtoms(t *testing.T) {
	got := TokenTexts(Tokenize("((a)b)c)"))
	want := []string{"(", "(", "a", ")", "b", ")", "c", ")"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeWhitespaceVariants(t *testing.T) {
	got := TokenTexts(Tokenize("  1\t2\r\n\n3  "))
	want := []string{"1", "2", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	if toks := Tokenize(" \n\t "); len(toks) != 0 {
		t.Fatalf("expected no tokens for blank input, got %v", toks)
	}
}

func TestTokenizePassesOddCharactersThrough(t *testing.T) {
	got := TokenTexts(Tokenize(`(foo "bar" 'baz #t λ)`))
	want := []string{"(", "foo", `"bar"`, "'baz", "#t", "λ", ")"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeRecordsPositions(t *testing.T) {
	toks := Tokenize("(define x\n  10)")
	want := []Token{
		{Text: "(", Line: 1, Column: 1},
		{Text: "define", Line: 1, Column: 2},
		{Text: "x", Line: 1, Column: 9},
		{Text: "10", Line: 2, Column: 3},
		{Text: ")", Line: 2, Column: 5},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Fatalf("Tokenize positions = %#v, want %#v", toks, want)
	}
}

func TestTokenizeKeepsInvalidUTF8Bytes(t *testing.T) {
	tokens := Tokenize("(a\xffb λ\xfe)")
	got := TokenTexts(tokens)
	want := []string{"(", "a\xffb", "λ\xfe", ")"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %q, want %q", got, want)
	}
	if tokens[2].Column != 6 || tokens[3].Column != 8 {
		t.Fatalf("unexpected columns %d and %d", tokens[2].Column, tokens[3].Column)
	}
}
