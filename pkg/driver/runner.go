package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/tartley/lispy/pkg/interpreter"
	"github.com/tartley/lispy/pkg/parser"
	"github.com/tartley/lispy/pkg/runtime"
)

// Runner evaluates whole programs against one interpreter and reports
// results and errors the way the lis command prints them.
type Runner struct {
	Interp       *interpreter.Interpreter
	PrintResults bool
	KeepGoing    bool

	out         io.Writer
	errOut      io.Writer
	errorColor  *color.Color
	resultColor *color.Color
}

// NewRunner builds an interpreter configured by cfg. Results go to out,
// display output to out as well, diagnostics to errOut.
func NewRunner(cfg *Config, out, errOut io.Writer) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	interp := interpreter.NewWithOptions(interpreter.Options{
		Output:   out,
		MaxDepth: cfg.MaxDepth,
	})
	r := &Runner{
		Interp:       interp,
		PrintResults: cfg.PrintResults,
		KeepGoing:    cfg.KeepGoing,
		out:          out,
		errOut:       errOut,
		errorColor:   color.New(color.FgRed, color.Bold),
		resultColor:  color.New(color.FgCyan),
	}
	r.SetColorMode(cfg.Color)
	return r
}

// SetColorMode forces colors on or off; auto leaves the decision to the
// terminal detection done by the color package.
func (r *Runner) SetColorMode(mode ColorMode) {
	for _, c := range []*color.Color{r.errorColor, r.resultColor} {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
}

// LoadPrelude evaluates each file silently in the root environment.
func (r *Runner) LoadPrelude(paths []string) error {
	for _, path := range paths {
		source, err := ReadSourceFile(path)
		if err != nil {
			return fmt.Errorf("prelude: %w", err)
		}
		if _, err := r.Interp.EvaluateSource(source); err != nil {
			return fmt.Errorf("prelude %s: %w", path, err)
		}
	}
	return nil
}

// Run evaluates every top-level form of source in order and returns the
// number of forms that failed. Without KeepGoing the first failure stops
// the run. An unterminated form always ends it.
func (r *Runner) Run(source string) int {
	failures := 0
	reader := parser.NewStringReader(source)
	for reader.More() {
		expr, err := reader.Read()
		if err != nil {
			r.ReportError(err)
			failures++
			if !r.KeepGoing || errors.Is(err, parser.UnexpectedEOF) {
				return failures
			}
			continue
		}
		val, err := r.Interp.Evaluate(expr, r.Interp.GlobalEnvironment())
		if err != nil {
			r.ReportError(err)
			failures++
			if !r.KeepGoing {
				return failures
			}
			continue
		}
		if r.PrintResults {
			r.PrintValue(val)
		}
	}
	return failures
}

// PrintValue writes a result line; void results print nothing.
func (r *Runner) PrintValue(val runtime.Value) {
	if _, ok := val.(runtime.VoidValue); ok || val == nil {
		return
	}
	r.resultColor.Fprintln(r.out, interpreter.FormatValue(val))
}

// ReportError writes "error: <message>" to the diagnostics writer.
func (r *Runner) ReportError(err error) {
	r.errorColor.Fprint(r.errOut, "error:")
	fmt.Fprintf(r.errOut, " %v\n", err)
}
