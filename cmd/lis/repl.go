package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/tartley/lispy/pkg/driver"
	"github.com/tartley/lispy/pkg/interpreter"
	"github.com/tartley/lispy/pkg/parser"
	"github.com/tartley/lispy/pkg/runtime"
)

const (
	promptMain = "lis> "
	promptCont = "...> "
)

// prompter is the part of *liner.State the input loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func runREPL(runner *driver.Runner, historyPath string, stdout io.Writer) int {
	fmt.Fprintf(stdout, "lis %s. Type :quit to exit.\n", versionString)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	// Ctrl-C while a form is running interrupts it; at the prompt liner
	// handles it as an aborted line.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-sigc:
				runner.Interp.Interrupt()
			case <-done:
				return
			}
		}
	}()

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if isQuitCommand(trimmed) {
				return 0
			}
			if strings.EqualFold(trimmed, ":env") {
				for _, line := range userBindings(runner.Interp.GlobalEnvironment()) {
					fmt.Fprintln(stdout, line)
				}
				continue
			}
			fmt.Fprintln(stdout, "unknown command. Commands: :env, :quit")
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		runner.Interp.ResetInterrupt()
		runner.Run(code)
	}
}

func isQuitCommand(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	default:
		return false
	}
}

// userBindings renders the bindings of env that are not builtins, one
// "name = value" line each, sorted by name.
func userBindings(env *runtime.Environment) []string {
	values := env.Snapshot()
	var lines []string
	for _, name := range env.Keys() {
		val := values[name]
		if _, builtin := val.(runtime.NativeFunctionValue); builtin {
			continue
		}
		if name == "#t" || name == "#f" {
			continue
		}
		lines = append(lines, name+" = "+interpreter.FormatValue(val))
	}
	return lines
}

// readInput collects lines until they parse or fail with something other
// than an unterminated form. It reports false at end of input.
func readInput(p prompter) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.ParseAll(src); parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
