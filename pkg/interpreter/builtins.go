package interpreter

import (
	"strings"

	"github.com/tartley/lispy/pkg/runtime"
)

const variadic = -1

// builtinTable is the fixed set of procedures installed into every root
// environment.
func builtinTable() []runtime.NativeFunctionValue {
	return []runtime.NativeFunctionValue{
		// arithmetic
		{Name: "+", MinArgs: 0, MaxArgs: variadic, Impl: builtinAdd},
		{Name: "*", MinArgs: 0, MaxArgs: variadic, Impl: builtinMul},
		{Name: "-", MinArgs: 1, MaxArgs: 2, Impl: builtinSub},
		{Name: "/", MinArgs: 2, MaxArgs: 2, Impl: builtinDiv},
		{Name: "abs", MinArgs: 1, MaxArgs: 1, Impl: builtinAbs},
		{Name: "min", MinArgs: 1, MaxArgs: variadic, Impl: builtinMin},
		{Name: "max", MinArgs: 1, MaxArgs: variadic, Impl: builtinMax},

		// comparison
		{Name: "<", MinArgs: 2, MaxArgs: 2, Impl: comparison("<", func(c int) bool { return c < 0 })},
		{Name: ">", MinArgs: 2, MaxArgs: 2, Impl: comparison(">", func(c int) bool { return c > 0 })},
		{Name: "<=", MinArgs: 2, MaxArgs: 2, Impl: comparison("<=", func(c int) bool { return c <= 0 })},
		{Name: ">=", MinArgs: 2, MaxArgs: 2, Impl: comparison(">=", func(c int) bool { return c >= 0 })},
		{Name: "=", MinArgs: 2, MaxArgs: 2, Impl: comparison("=", func(c int) bool { return c == 0 })},

		// lists
		{Name: "car", MinArgs: 1, MaxArgs: 1, Impl: builtinCar},
		{Name: "cdr", MinArgs: 1, MaxArgs: 1, Impl: builtinCdr},
		{Name: "cons", MinArgs: 2, MaxArgs: 2, Impl: builtinCons},
		{Name: "list", MinArgs: 0, MaxArgs: variadic, Impl: builtinList},
		{Name: "length", MinArgs: 1, MaxArgs: 1, Impl: builtinLength},
		{Name: "null?", MinArgs: 1, MaxArgs: 1, Impl: builtinNullP},

		// predicates
		{Name: "eq?", MinArgs: 2, MaxArgs: 2, Impl: builtinEqP},
		{Name: "equal?", MinArgs: 2, MaxArgs: 2, Impl: builtinEqualP},
		{Name: "not", MinArgs: 1, MaxArgs: 1, Impl: builtinNot},
		{Name: "number?", MinArgs: 1, MaxArgs: 1, Impl: kindPredicate(runtime.KindInteger, runtime.KindFloat)},
		{Name: "symbol?", MinArgs: 1, MaxArgs: 1, Impl: kindPredicate(runtime.KindSymbol)},
		{Name: "list?", MinArgs: 1, MaxArgs: 1, Impl: kindPredicate(runtime.KindList)},
		{Name: "procedure?", MinArgs: 1, MaxArgs: 1, Impl: builtinProcedureP},

		// output
		{Name: "display", MinArgs: 0, MaxArgs: variadic, Impl: builtinDisplay},
	}
}

func installBuiltins(env *runtime.Environment) {
	for _, fn := range builtinTable() {
		env.Define(fn.Name, fn)
	}
	env.Define("#t", runtime.BoolValue{Val: true})
	env.Define("#f", runtime.BoolValue{Val: false})
}

func builtinDisplay(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = FormatValue(arg)
	}
	if ctx != nil && ctx.Output != nil {
		if _, err := ctx.Output.Write([]byte(strings.Join(parts, " ") + "\n")); err != nil {
			return nil, err
		}
	}
	return runtime.VoidValue{}, nil
}

func builtinNot(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.BoolValue{Val: !runtime.IsTruthy(args[0])}, nil
}

func builtinProcedureP(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.BoolValue{Val: runtime.IsProcedure(args[0])}, nil
}

func kindPredicate(kinds ...runtime.Kind) runtime.NativeFunc {
	return func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		got := args[0].Kind()
		for _, k := range kinds {
			if got == k {
				return runtime.BoolValue{Val: true}, nil
			}
		}
		return runtime.BoolValue{Val: false}, nil
	}
}

func typeMismatch(op string, position int, want string, got runtime.Value) error {
	return runtime.Errorf(runtime.TypeMismatch, "%s: argument %d must be %s, got %s %s", op, position+1, want, kindOf(got), FormatValue(got))
}
