// Package interpreter evaluates lispy expression trees produced by
// pkg/parser against chains of runtime.Environment frames. An Interpreter
// owns one root environment, populated with the builtin procedures when it
// is created; hosts thread that environment through every Evaluate call.
//
// Evaluation is recursive and performs no tail-call elimination. Deep
// recursion is bounded by Options.MaxDepth instead of the Go stack.
package interpreter
