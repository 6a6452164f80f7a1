package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders an expression back to source text. Reading the result
// yields a tree equal to expr.
func Format(expr Expression) string {
	var b strings.Builder
	writeExpression(&b, expr)
	return b.String()
}

func writeExpression(b *strings.Builder, expr Expression) {
	switch e := expr.(type) {
	case *Symbol:
		b.WriteString(e.Name)
	case *IntegerLiteral:
		b.WriteString(strconv.FormatInt(e.Value, 10))
	case *FloatLiteral:
		b.WriteString(FormatFloat(e.Value))
	case *List:
		b.WriteByte('(')
		for idx, el := range e.Elements {
			if idx > 0 {
				b.WriteByte(' ')
			}
			writeExpression(b, el)
		}
		b.WriteByte(')')
	case nil:
		b.WriteString("<nil>")
	default:
		fmt.Fprintf(b, "<%s>", expr.NodeType())
	}
}

// FormatFloat prints a float so that it always reads back as a float:
// 3 becomes "3.0", never "3".
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
