package interpreter

import (
	"math"

	"github.com/tartley/lispy/pkg/runtime"
)

// number is an operand after promotion checks. isFloat marks values that
// must be combined in floating point.
type number struct {
	isFloat bool
	i       int64
	f       float64
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n number) value() runtime.Value {
	if n.isFloat {
		return runtime.FloatValue{Val: n.f}
	}
	return runtime.IntegerValue{Val: n.i}
}

func toNumber(op string, position int, v runtime.Value) (number, error) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return number{i: n.Val}, nil
	case runtime.FloatValue:
		return number{isFloat: true, f: n.Val}, nil
	default:
		return number{}, typeMismatch(op, position, "a number", v)
	}
}

func toNumbers(op string, args []runtime.Value) ([]number, error) {
	out := make([]number, len(args))
	for idx, arg := range args {
		n, err := toNumber(op, idx, arg)
		if err != nil {
			return nil, err
		}
		out[idx] = n
	}
	return out, nil
}

// fold combines operands left to right starting from seed. The result is
// a float as soon as any operand is a float, or when an integer step
// overflows int64.
func fold(op string, args []runtime.Value, seed int64, intOp func(a, b int64) (int64, bool), floatOp func(a, b float64) float64) (runtime.Value, error) {
	nums, err := toNumbers(op, args)
	if err != nil {
		return nil, err
	}
	acc := number{i: seed}
	for _, n := range nums {
		if acc.isFloat || n.isFloat {
			acc = number{isFloat: true, f: floatOp(acc.float(), n.float())}
			continue
		}
		if r, ok := intOp(acc.i, n.i); ok {
			acc.i = r
			continue
		}
		acc = number{isFloat: true, f: floatOp(acc.float(), n.float())}
	}
	return acc.value(), nil
}

func builtinAdd(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return fold("+", args, 0,
		addInt64,
		func(a, b float64) float64 { return a + b })
}

func builtinMul(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return fold("*", args, 1,
		mulInt64,
		func(a, b float64) float64 { return a * b })
}

// addInt64, subInt64 and mulInt64 report false when the exact result does
// not fit in an int64.
func addInt64(a, b int64) (int64, bool) {
	s := a + b
	return s, (a^s)&(b^s) >= 0
}

func subInt64(a, b int64) (int64, bool) {
	d := a - b
	return d, (a^b)&(a^d) >= 0
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

// builtinSub negates a single operand or subtracts the second from the first.
func builtinSub(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	nums, err := toNumbers("-", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 1 {
		if nums[0].isFloat {
			return runtime.FloatValue{Val: -nums[0].f}, nil
		}
		if nums[0].i == math.MinInt64 {
			return runtime.FloatValue{Val: -float64(nums[0].i)}, nil
		}
		return runtime.IntegerValue{Val: -nums[0].i}, nil
	}
	a, b := nums[0], nums[1]
	if a.isFloat || b.isFloat {
		return runtime.FloatValue{Val: a.float() - b.float()}, nil
	}
	if d, ok := subInt64(a.i, b.i); ok {
		return runtime.IntegerValue{Val: d}, nil
	}
	return runtime.FloatValue{Val: a.float() - b.float()}, nil
}

// builtinDiv divides two numbers. Integers that divide evenly stay
// integers; any other quotient is a float.
func builtinDiv(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	nums, err := toNumbers("/", args)
	if err != nil {
		return nil, err
	}
	a, b := nums[0], nums[1]
	if b.float() == 0 {
		return nil, runtime.Errorf(runtime.DivisionByZero, "/: division by zero")
	}
	overflows := a.i == math.MinInt64 && b.i == -1
	if !a.isFloat && !b.isFloat && !overflows && a.i%b.i == 0 {
		return runtime.IntegerValue{Val: a.i / b.i}, nil
	}
	return runtime.FloatValue{Val: a.float() / b.float()}, nil
}

func builtinAbs(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	n, err := toNumber("abs", 0, args[0])
	if err != nil {
		return nil, err
	}
	if n.isFloat {
		return runtime.FloatValue{Val: math.Abs(n.f)}, nil
	}
	if n.i == math.MinInt64 {
		return runtime.FloatValue{Val: -float64(n.i)}, nil
	}
	if n.i < 0 {
		return runtime.IntegerValue{Val: -n.i}, nil
	}
	return n.value(), nil
}

func builtinMin(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return extremum("min", args, func(c int) bool { return c < 0 })
}

func builtinMax(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return extremum("max", args, func(c int) bool { return c > 0 })
}

func extremum(op string, args []runtime.Value, better func(int) bool) (runtime.Value, error) {
	nums, err := toNumbers(op, args)
	if err != nil {
		return nil, err
	}
	best := nums[0]
	anyFloat := best.isFloat
	for _, n := range nums[1:] {
		anyFloat = anyFloat || n.isFloat
		if better(compareNumbers(n, best)) {
			best = n
		}
	}
	if anyFloat && !best.isFloat {
		return runtime.FloatValue{Val: best.float()}, nil
	}
	return best.value(), nil
}
