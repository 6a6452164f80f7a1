package interpreter

import (
	"io"
	"os"
	"strconv"

	"github.com/tevino/abool/v2"

	"github.com/tartley/lispy/pkg/ast"
	"github.com/tartley/lispy/pkg/parser"
	"github.com/tartley/lispy/pkg/runtime"
)

// DefaultMaxDepth bounds nested evaluations for interpreters built by New.
const DefaultMaxDepth = 10000

// Options configures an Interpreter.
type Options struct {
	// Output receives text written by display. Nil means os.Stdout.
	Output io.Writer
	// MaxDepth limits nested evaluations; 0 disables the limit.
	MaxDepth int
}

// Interpreter drives evaluation of lispy expressions.
type Interpreter struct {
	global      *runtime.Environment
	output      io.Writer
	maxDepth    int
	depth       int
	interrupted *abool.AtomicBool
}

// New returns an interpreter whose root environment holds the builtins.
func New() *Interpreter {
	return NewWithOptions(Options{MaxDepth: DefaultMaxDepth})
}

// NewWithOptions is New with explicit options.
func NewWithOptions(opts Options) *Interpreter {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	i := &Interpreter{
		global:      runtime.NewEnvironment(nil),
		output:      out,
		maxDepth:    opts.MaxDepth,
		interrupted: abool.New(),
	}
	installBuiltins(i.global)
	return i
}

// GlobalEnvironment returns the interpreter's root environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interrupt asks the evaluation in progress to stop. It is safe to call
// from another goroutine (typically a signal handler). The next evaluation
// step fails with runtime.Interrupted and the request is cleared.
func (i *Interpreter) Interrupt() {
	i.interrupted.Set()
}

// ResetInterrupt drops a pending Interrupt request.
func (i *Interpreter) ResetInterrupt() {
	i.interrupted.UnSet()
}

// Evaluate computes the value of one expression in env.
func (i *Interpreter) Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if env == nil {
		env = i.global
	}
	return i.evaluateExpression(expr, env)
}

// EvaluateSource reads and evaluates every top-level form of src in the
// root environment and returns the value of the last one. The first syntax
// or evaluation error aborts the remaining forms.
func (i *Interpreter) EvaluateSource(src string) (runtime.Value, error) {
	var last runtime.Value = runtime.VoidValue{}
	r := parser.NewStringReader(src)
	for r.More() {
		expr, err := r.Read()
		if err != nil {
			return nil, err
		}
		val, err := i.evaluateExpression(expr, i.global)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

func (i *Interpreter) enter() error {
	if i.interrupted.SetToIf(true, false) {
		return runtime.Errorf(runtime.Interrupted, "evaluation interrupted")
	}
	i.depth++
	if i.maxDepth > 0 && i.depth > i.maxDepth {
		i.depth--
		return runtime.Errorf(runtime.RecursionDepthExceeded, "maximum evaluation depth %d exceeded", i.maxDepth)
	}
	return nil
}

func (i *Interpreter) leave() {
	i.depth--
}

// evaluateExpression dispatches on the expression shape.
func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if err := i.enter(); err != nil {
		return nil, err
	}
	defer i.leave()

	switch n := node.(type) {
	case *ast.Symbol:
		return env.Get(n.Name)
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.List:
		if len(n.Elements) == 0 {
			return nil, runtime.Errorf(runtime.MalformedForm, "cannot evaluate the empty list ()")
		}
		if head, ok := n.Elements[0].(*ast.Symbol); ok && isSpecialForm(head.Name) {
			return i.evaluateSpecialForm(head.Name, n, env)
		}
		return i.evaluateApplication(n, env)
	case nil:
		return nil, runtime.Errorf(runtime.MalformedForm, "missing expression")
	default:
		return nil, runtime.Errorf(runtime.MalformedForm, "unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateApplication(call *ast.List, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Elements[0], env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Elements)-1)
	for _, argExpr := range call.Operands() {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.apply(callee, args)
}

// CallFunction applies a procedure value to already evaluated arguments.
func (i *Interpreter) CallFunction(fn runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return i.apply(fn, args)
}

func (i *Interpreter) apply(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case runtime.NativeFunctionValue:
		if !fn.AcceptsArgs(len(args)) {
			return nil, arityError(fn, len(args))
		}
		ctx := &runtime.NativeCallContext{Output: i.output}
		return fn.Impl(ctx, args)
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	default:
		return nil, runtime.Errorf(runtime.TypeMismatch, "cannot apply %s %s", kindOf(callee), FormatValue(callee))
	}
}

func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, runtime.Errorf(runtime.ArityMismatch, "%s expects %d arguments, got %d", describeFunction(fn), len(fn.Params), len(args))
	}
	localEnv := fn.Closure.Extend()
	for idx, param := range fn.Params {
		localEnv.Define(param, args[idx])
	}
	return i.evaluateSequence(fn.Body, localEnv)
}

// evaluateSequence evaluates body forms in order and returns the last value.
func (i *Interpreter) evaluateSequence(body []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.VoidValue{}
	for _, expr := range body {
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func arityError(fn runtime.NativeFunctionValue, got int) error {
	var want string
	switch {
	case fn.MaxArgs < 0:
		want = "at least " + strconv.Itoa(fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs:
		want = strconv.Itoa(fn.MinArgs)
	default:
		want = strconv.Itoa(fn.MinArgs) + " or " + strconv.Itoa(fn.MaxArgs)
	}
	return runtime.Errorf(runtime.ArityMismatch, "%s expects %s arguments, got %d", fn.Name, want, got)
}

func describeFunction(fn *runtime.FunctionValue) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "lambda"
}

func kindOf(v runtime.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
