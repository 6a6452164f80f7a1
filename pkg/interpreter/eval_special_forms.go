package interpreter

import (
	"github.com/ahrtr/gocontainer/set"

	"github.com/tartley/lispy/pkg/ast"
	"github.com/tartley/lispy/pkg/runtime"
)

const (
	formQuote  = "quote"
	formIf     = "if"
	formDefine = "define"
	formSet    = "set!"
	formLambda = "lambda"
	formBegin  = "begin"
)

// specialForms holds the head symbols that are dispatched before any
// environment lookup. Binding one of these names has no effect on lists
// headed by it.
var specialForms = newSpecialFormSet()

func newSpecialFormSet() set.Interface {
	s := set.New()
	s.Add(formQuote, formIf, formDefine, formSet, formLambda, formBegin)
	return s
}

func isSpecialForm(name string) bool {
	return specialForms.Contains(name)
}

// SpecialForms lists the keywords handled by dedicated evaluation logic.
func SpecialForms() []string {
	return []string{formQuote, formIf, formDefine, formSet, formLambda, formBegin}
}

func (i *Interpreter) evaluateSpecialForm(name string, form *ast.List, env *runtime.Environment) (runtime.Value, error) {
	operands := form.Operands()
	switch name {
	case formQuote:
		return evaluateQuote(operands)
	case formIf:
		return i.evaluateIf(operands, env)
	case formDefine:
		return i.evaluateDefine(operands, env)
	case formSet:
		return i.evaluateSet(operands, env)
	case formLambda:
		return evaluateLambda("", operands, env)
	case formBegin:
		if len(operands) == 0 {
			return nil, runtime.Errorf(runtime.EmptyBegin, "(begin) requires at least one expression")
		}
		return i.evaluateSequence(operands, env)
	default:
		return nil, runtime.Errorf(runtime.MalformedForm, "unknown special form %s", name)
	}
}

func evaluateQuote(operands []ast.Expression) (runtime.Value, error) {
	if len(operands) != 1 {
		return nil, runtime.Errorf(runtime.MalformedForm, "(quote E) takes exactly 1 operand, got %d", len(operands))
	}
	return quoteExpression(operands[0])
}

// quoteExpression converts syntax to data without evaluating anything.
func quoteExpression(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Symbol:
		return runtime.SymbolValue{Name: e.Name}, nil
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: e.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: e.Value}, nil
	case *ast.List:
		elements := make([]runtime.Value, len(e.Elements))
		for idx, el := range e.Elements {
			val, err := quoteExpression(el)
			if err != nil {
				return nil, err
			}
			elements[idx] = val
		}
		return runtime.NewList(elements...), nil
	case nil:
		return nil, runtime.Errorf(runtime.MalformedForm, "cannot quote a missing expression")
	default:
		return nil, runtime.Errorf(runtime.MalformedForm, "cannot quote %s", e.NodeType())
	}
}

func (i *Interpreter) evaluateIf(operands []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if len(operands) != 3 {
		return nil, runtime.Errorf(runtime.MalformedIf, "(if C T F) takes exactly 3 operands, got %d", len(operands))
	}
	cond, err := i.evaluateExpression(operands[0], env)
	if err != nil {
		return nil, err
	}
	if runtime.IsTruthy(cond) {
		return i.evaluateExpression(operands[1], env)
	}
	return i.evaluateExpression(operands[2], env)
}

func (i *Interpreter) evaluateDefine(operands []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if len(operands) == 0 {
		return nil, runtime.Errorf(runtime.MalformedForm, "(define) requires a name")
	}
	switch target := operands[0].(type) {
	case *ast.Symbol:
		if len(operands) != 2 {
			return nil, runtime.Errorf(runtime.MalformedForm, "(define %s E) takes exactly 1 value, got %d", target.Name, len(operands)-1)
		}
		val, err := i.evaluateExpression(operands[1], env)
		if err != nil {
			return nil, err
		}
		env.Define(target.Name, val)
		return runtime.VoidValue{}, nil
	case *ast.List:
		// (define (name p...) body...)
		name, ok := target.Head().(*ast.Symbol)
		if !ok {
			return nil, runtime.Errorf(runtime.MalformedForm, "(define (name params...) body) requires a symbol name")
		}
		lambdaOperands := make([]ast.Expression, 0, len(operands))
		lambdaOperands = append(lambdaOperands, ast.NewList(target.Operands()))
		lambdaOperands = append(lambdaOperands, operands[1:]...)
		fn, err := evaluateLambda(name.Name, lambdaOperands, env)
		if err != nil {
			return nil, err
		}
		env.Define(name.Name, fn)
		return runtime.VoidValue{}, nil
	default:
		return nil, runtime.Errorf(runtime.MalformedForm, "cannot define %s", ast.Format(operands[0]))
	}
}

func (i *Interpreter) evaluateSet(operands []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if len(operands) != 2 {
		return nil, runtime.Errorf(runtime.MalformedForm, "(set! sym E) takes exactly 2 operands, got %d", len(operands))
	}
	target, ok := operands[0].(*ast.Symbol)
	if !ok {
		return nil, runtime.Errorf(runtime.MalformedForm, "cannot set! %s", ast.Format(operands[0]))
	}
	val, err := i.evaluateExpression(operands[1], env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(target.Name, val); err != nil {
		return nil, err
	}
	return runtime.VoidValue{}, nil
}

func evaluateLambda(name string, operands []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if len(operands) < 2 {
		return nil, runtime.Errorf(runtime.MalformedForm, "(lambda (params...) body) requires a parameter list and a body")
	}
	paramList, ok := operands[0].(*ast.List)
	if !ok {
		return nil, runtime.Errorf(runtime.MalformedForm, "lambda parameters must be a list, got %s", ast.Format(operands[0]))
	}
	params := make([]string, 0, len(paramList.Elements))
	seen := make(map[string]struct{}, len(paramList.Elements))
	for _, p := range paramList.Elements {
		sym, ok := p.(*ast.Symbol)
		if !ok {
			return nil, runtime.Errorf(runtime.MalformedForm, "lambda parameter must be a symbol, got %s", ast.Format(p))
		}
		if _, dup := seen[sym.Name]; dup {
			return nil, runtime.Errorf(runtime.MalformedForm, "duplicate lambda parameter %s", sym.Name)
		}
		seen[sym.Name] = struct{}{}
		params = append(params, sym.Name)
	}
	return &runtime.FunctionValue{
		Name:    name,
		Params:  params,
		Body:    operands[1:],
		Closure: env,
	}, nil
}
