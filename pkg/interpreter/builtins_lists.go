package interpreter

import (
	"github.com/tartley/lispy/pkg/runtime"
)

func toList(op string, position int, v runtime.Value) (runtime.ListValue, error) {
	list, ok := v.(runtime.ListValue)
	if !ok {
		return runtime.ListValue{}, typeMismatch(op, position, "a list", v)
	}
	return list, nil
}

func builtinCar(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	list, err := toList("car", 0, args[0])
	if err != nil {
		return nil, err
	}
	if list.Len() == 0 {
		return nil, runtime.Errorf(runtime.EmptyList, "car: empty list")
	}
	return list.Elements[0], nil
}

func builtinCdr(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	list, err := toList("cdr", 0, args[0])
	if err != nil {
		return nil, err
	}
	if list.Len() == 0 {
		return nil, runtime.Errorf(runtime.EmptyList, "cdr: empty list")
	}
	return runtime.NewList(list.Elements[1:]...), nil
}

// builtinCons prepends onto a fresh copy of the tail.
func builtinCons(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	tail, err := toList("cons", 1, args[1])
	if err != nil {
		return nil, err
	}
	elements := make([]runtime.Value, 0, tail.Len()+1)
	elements = append(elements, args[0])
	elements = append(elements, tail.Elements...)
	return runtime.NewList(elements...), nil
}

func builtinList(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	elements := make([]runtime.Value, len(args))
	copy(elements, args)
	return runtime.NewList(elements...), nil
}

func builtinLength(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	list, err := toList("length", 0, args[0])
	if err != nil {
		return nil, err
	}
	return runtime.IntegerValue{Val: int64(list.Len())}, nil
}

// builtinNullP is true only for the empty list; non-lists are simply #f.
func builtinNullP(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	list, ok := args[0].(runtime.ListValue)
	return runtime.BoolValue{Val: ok && list.Len() == 0}, nil
}
