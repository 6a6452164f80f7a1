package runtime

import (
	"fmt"
	"io"

	"github.com/tartley/lispy/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindSymbol
	KindList
	KindFunction
	KindNativeFunction
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type SymbolValue struct {
	Name string
}

func (v SymbolValue) Kind() Kind { return KindSymbol }

// VoidValue is the result of forms evaluated only for their effect
// (define, set!, display). Hosts do not print it.
type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

//-----------------------------------------------------------------------------
// Lists
//-----------------------------------------------------------------------------

// ListValue is immutable: builtins that derive a new list never write into
// an existing Elements slice, so slices may be shared between lists.
type ListValue struct {
	Elements []Value
}

func (v ListValue) Kind() Kind { return KindList }

func (v ListValue) Len() int { return len(v.Elements) }

func NewList(elements ...Value) ListValue {
	if elements == nil {
		elements = []Value{}
	}
	return ListValue{Elements: elements}
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a closure created by lambda. Closure is the environment
// active where the lambda was evaluated and is never reassigned.
type FunctionValue struct {
	Name    string
	Params  []string
	Body    []ast.Expression
	Closure *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NativeCallContext provides hooks for native functions.
type NativeCallContext struct {
	Output io.Writer
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

// NativeFunctionValue is a builtin. MaxArgs < 0 means no upper bound.
type NativeFunctionValue struct {
	Name    string
	MinArgs int
	MaxArgs int
	Impl    NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

// AcceptsArgs reports whether n arguments satisfy the declared arity.
func (v NativeFunctionValue) AcceptsArgs(n int) bool {
	if n < v.MinArgs {
		return false
	}
	return v.MaxArgs < 0 || n <= v.MaxArgs
}

// IsProcedure reports whether v can be applied.
func IsProcedure(v Value) bool {
	switch v.(type) {
	case *FunctionValue, NativeFunctionValue:
		return true
	default:
		return false
	}
}

// IsTruthy implements the conditional rule: only #f is false.
func IsTruthy(v Value) bool {
	if b, ok := v.(BoolValue); ok {
		return b.Val
	}
	return true
}
