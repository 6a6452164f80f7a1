package interpreter

import (
	"bytes"
	"testing"

	"github.com/tartley/lispy/pkg/runtime"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewWithOptions(Options{Output: &out, MaxDepth: DefaultMaxDepth}), &out
}

func mustEval(t *testing.T, interp *Interpreter, src string) runtime.Value {
	t.Helper()
	val, err := interp.EvaluateSource(src)
	if err != nil {
		t.Fatalf("evaluate %q: %v", src, err)
	}
	return val
}

func evalErr(t *testing.T, interp *Interpreter, src string) error {
	t.Helper()
	_, err := interp.EvaluateSource(src)
	if err == nil {
		t.Fatalf("expected %q to fail", src)
	}
	return err
}

func wantInt(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	iv, ok := val.(runtime.IntegerValue)
	if !ok || iv.Val != want {
		t.Fatalf("expected integer %d, got %#v", want, val)
	}
}

func wantFloat(t *testing.T, val runtime.Value, want float64) {
	t.Helper()
	fv, ok := val.(runtime.FloatValue)
	if !ok || fv.Val != want {
		t.Fatalf("expected float %v, got %#v", want, val)
	}
}

func wantBool(t *testing.T, val runtime.Value, want bool) {
	t.Helper()
	bv, ok := val.(runtime.BoolValue)
	if !ok || bv.Val != want {
		t.Fatalf("expected bool %v, got %#v", want, val)
	}
}
