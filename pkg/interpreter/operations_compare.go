package interpreter

import (
	"math"

	"github.com/tartley/lispy/pkg/runtime"
)

// compareNumbers returns -1, 0 or 1. Mixed operands compare as floats.
func compareNumbers(a, b number) int {
	if !a.isFloat && !b.isFloat {
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		default:
			return 0
		}
	}
	af, bf := a.float(), b.float()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

func comparison(op string, accept func(int) bool) runtime.NativeFunc {
	return func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		nums, err := toNumbers(op, args)
		if err != nil {
			return nil, err
		}
		a, b := nums[0], nums[1]
		if a.isFloat || b.isFloat {
			// NaN compares false against everything, including itself.
			if math.IsNaN(a.float()) || math.IsNaN(b.float()) {
				return runtime.BoolValue{Val: false}, nil
			}
		}
		return runtime.BoolValue{Val: accept(compareNumbers(a, b))}, nil
	}
}

func builtinEqP(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.BoolValue{Val: valuesEqv(args[0], args[1])}, nil
}

func builtinEqualP(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.BoolValue{Val: valuesEqual(args[0], args[1])}, nil
}

// valuesEqv is eq?: atoms compare by value and kind (1 and 1.0 differ),
// lists are only eq? when both are empty, procedures by identity.
func valuesEqv(a, b runtime.Value) bool {
	switch x := a.(type) {
	case runtime.IntegerValue:
		y, ok := b.(runtime.IntegerValue)
		return ok && x.Val == y.Val
	case runtime.FloatValue:
		y, ok := b.(runtime.FloatValue)
		return ok && x.Val == y.Val
	case runtime.BoolValue:
		y, ok := b.(runtime.BoolValue)
		return ok && x.Val == y.Val
	case runtime.SymbolValue:
		y, ok := b.(runtime.SymbolValue)
		return ok && x.Name == y.Name
	case runtime.ListValue:
		y, ok := b.(runtime.ListValue)
		return ok && x.Len() == 0 && y.Len() == 0
	case *runtime.FunctionValue:
		y, ok := b.(*runtime.FunctionValue)
		return ok && x == y
	case runtime.NativeFunctionValue:
		y, ok := b.(runtime.NativeFunctionValue)
		return ok && x.Name == y.Name
	case runtime.VoidValue:
		_, ok := b.(runtime.VoidValue)
		return ok
	default:
		return false
	}
}

// valuesEqual is equal?: lists compare element-wise, everything else as eq?.
func valuesEqual(a, b runtime.Value) bool {
	x, ok := a.(runtime.ListValue)
	if !ok {
		return valuesEqv(a, b)
	}
	y, ok := b.(runtime.ListValue)
	if !ok || x.Len() != y.Len() {
		return false
	}
	for idx := range x.Elements {
		if !valuesEqual(x.Elements[idx], y.Elements[idx]) {
			return false
		}
	}
	return true
}
