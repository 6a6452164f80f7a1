package ast

import "testing"

func TestFormatNestedList(t *testing.T) {
	expr := Lst(Int(1), Lst(Int(2), Flt(3)), Sym("x"))
	if got, want := Format(expr), "(1 (2 3.0) x)"; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatEmptyList(t *testing.T) {
	if got := Format(Lst()); got != "()" {
		t.Fatalf("Format(empty) = %q, want ()", got)
	}
}

func TestFormatFloatKeepsFloatSpelling(t *testing.T) {
	cases := map[float64]string{
		3:       "3.0",
		-2:      "-2.0",
		0.5:     "0.5",
		1e21:    "1e+21",
		123.456: "123.456",
	}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Fatalf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestListHeadAndOperands(t *testing.T) {
	call := Call("+", Int(1), Int(2))
	head, ok := call.Head().(*Symbol)
	if !ok || head.Name != "+" {
		t.Fatalf("unexpected head %#v", call.Head())
	}
	if len(call.Operands()) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(call.Operands()))
	}
	if Lst().Head() != nil {
		t.Fatalf("expected nil head for empty list")
	}
}
