package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tartley/lispy/pkg/ast"
	"github.com/tartley/lispy/pkg/runtime"
)

// FormatValue renders a value the way the REPL and display print it.
// VoidValue renders as the empty string.
func FormatValue(val runtime.Value) string {
	var b strings.Builder
	writeValue(&b, val)
	return b.String()
}

func writeValue(b *strings.Builder, val runtime.Value) {
	switch v := val.(type) {
	case runtime.IntegerValue:
		b.WriteString(strconv.FormatInt(v.Val, 10))
	case runtime.FloatValue:
		b.WriteString(ast.FormatFloat(v.Val))
	case runtime.BoolValue:
		if v.Val {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case runtime.SymbolValue:
		b.WriteString(v.Name)
	case runtime.ListValue:
		b.WriteByte('(')
		for idx, el := range v.Elements {
			if idx > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, el)
		}
		b.WriteByte(')')
	case *runtime.FunctionValue:
		if v.Name != "" {
			fmt.Fprintf(b, "<lambda %s (%s)>", v.Name, strings.Join(v.Params, " "))
		} else {
			fmt.Fprintf(b, "<lambda (%s)>", strings.Join(v.Params, " "))
		}
	case runtime.NativeFunctionValue:
		fmt.Fprintf(b, "<builtin %s>", v.Name)
	case runtime.VoidValue:
	case nil:
		b.WriteString("<nil>")
	default:
		fmt.Fprintf(b, "[%s]", v.Kind())
	}
}
