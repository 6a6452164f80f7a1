package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"github.com/tartley/lispy/pkg/driver"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// isolateConfig points LIS_CONFIG at a config that disables color so
// nothing above the test directory leaks in.
func isolateConfig(t *testing.T, dir string) {
	t.Helper()
	path := filepath.Join(dir, "isolated.yml")
	writeFile(t, path, "color: never\n")
	t.Setenv("LIS_CONFIG", path)
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := runWith(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersionAndHelp(t *testing.T) {
	for _, args := range [][]string{{"-v"}, {"--version"}} {
		code, out, _ := runCLI(t, "", args...)
		if code != 0 || out != "v0.1\n" {
			t.Fatalf("%v: expected version, got code=%d out=%q", args, code, out)
		}
	}
	for _, args := range [][]string{{"-h"}, {"--help"}} {
		code, out, _ := runCLI(t, "", args...)
		if code != 0 || !strings.HasPrefix(out, "usage: lis") {
			t.Fatalf("%v: expected usage, got code=%d out=%q", args, code, out)
		}
	}
}

func TestRunProgramFile(t *testing.T) {
	dir := t.TempDir()
	isolateConfig(t, dir)
	program := filepath.Join(dir, "prog.lis")
	writeFile(t, program, "(define (sq x) (* x x))\n(sq 12)\n(display (quote done))\n")

	code, out, errOut := runCLI(t, "", program)
	if code != 0 {
		t.Fatalf("expected success, got %d: %s", code, errOut)
	}
	if out != "144\ndone\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunMissingFile(t *testing.T) {
	dir := t.TempDir()
	isolateConfig(t, dir)
	code, _, errOut := runCLI(t, "", filepath.Join(dir, "absent.lis"))
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.HasPrefix(errOut, "error: ") {
		t.Fatalf("unexpected diagnostics %q", errOut)
	}
}

func TestRunFromStdin(t *testing.T) {
	isolateConfig(t, t.TempDir())
	code, out, _ := runCLI(t, "(+ 1 2 3)\n(+ 1 2.0)\n")
	if code != 0 || out != "6\n3.0\n" {
		t.Fatalf("unexpected result code=%d out=%q", code, out)
	}
}

func TestErrorStopsWithStatusOne(t *testing.T) {
	isolateConfig(t, t.TempDir())
	code, out, errOut := runCLI(t, "1\n(car (list))\n2\n")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if out != "1\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if errOut != "error: EmptyList: car: empty list\n" {
		t.Fatalf("unexpected diagnostics %q", errOut)
	}
}

func TestKeepGoingAndQuiet(t *testing.T) {
	isolateConfig(t, t.TempDir())
	code, out, errOut := runCLI(t, "1\nmissing\n(display 2)\n3\n", "-k", "-q")
	if code != 1 {
		t.Fatalf("expected exit 1 after a failure, got %d", code)
	}
	if out != "2\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(errOut, "UnboundSymbol: missing") {
		t.Fatalf("unexpected diagnostics %q", errOut)
	}
}

func TestExplicitConfigFlag(t *testing.T) {
	dir := t.TempDir()
	isolateConfig(t, dir)
	writeFile(t, filepath.Join(dir, "lib", "util.lis"), "(define (inc x) (+ x 1))\n")
	cfgPath := filepath.Join(dir, "custom.yml")
	writeFile(t, cfgPath, "color: never\nkeep_going: true\nprelude:\n  - lib/util.lis\n")

	for _, args := range [][]string{{"-c", cfgPath}, {"--config=" + cfgPath}, {"--config", cfgPath}} {
		code, out, errOut := runCLI(t, "nope\n(inc 41)\n", args...)
		if code != 1 {
			t.Fatalf("%v: expected exit 1, got %d", args, code)
		}
		if out != "42\n" {
			t.Fatalf("%v: unexpected output %q (%s)", args, out, errOut)
		}
	}
}

func TestConfigFoundNextToProgram(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIS_CONFIG", "")
	writeFile(t, filepath.Join(dir, "lis.yml"), "print_results: false\ncolor: never\n")
	program := filepath.Join(dir, "src", "prog.lis")
	writeFile(t, program, "(+ 1 1)\n(display 7)\n")

	code, out, errOut := runCLI(t, "", program)
	if code != 0 {
		t.Fatalf("expected success, got %d: %s", code, errOut)
	}
	if out != "7\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yml")
	writeFile(t, cfgPath, "color: plaid\n")
	code, _, errOut := runCLI(t, "", "-c", cfgPath)
	if code != 1 || !strings.Contains(errOut, "failed to load config") {
		t.Fatalf("expected config failure, got code=%d err=%q", code, errOut)
	}
}

func TestUsageErrors(t *testing.T) {
	isolateConfig(t, t.TempDir())
	for _, args := range [][]string{{"-x"}, {"--bogus"}, {"a.lis", "b.lis"}, {"--help=yes"}} {
		code, _, errOut := runCLI(t, "", args...)
		if code != 1 || !strings.Contains(errOut, "usage: lis") {
			t.Fatalf("%v: expected usage error, got code=%d err=%q", args, code, errOut)
		}
	}
}

func TestNormalizeLongFlags(t *testing.T) {
	got, err := normalizeLongFlags([]string{"--quiet", "--config=x.yml", "--keep-going", "--", "--help"})
	if err != nil {
		t.Fatalf("normalizeLongFlags returned error: %v", err)
	}
	want := []string{"-q", "-cx.yml", "-k", "--", "--help"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

type scriptedPrompter struct {
	lines   []string
	prompts []string
	final   error
}

func (s *scriptedPrompter) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		if s.final != nil {
			return "", s.final
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestReadInputContinuesIncompleteForms(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"(define (f x)", "  (* x 2))", "(f 4)"}}
	code, ok := readInput(p)
	if !ok || code != "(define (f x)\n  (* x 2))" {
		t.Fatalf("unexpected first input %q ok=%v", code, ok)
	}
	if strings.Join(p.prompts, "|") != promptMain+"|"+promptCont {
		t.Fatalf("unexpected prompts %q", p.prompts)
	}
	code, ok = readInput(p)
	if !ok || code != "(f 4)" {
		t.Fatalf("unexpected second input %q ok=%v", code, ok)
	}
	if _, ok = readInput(p); ok {
		t.Fatalf("expected end of input")
	}
}

func TestReadInputStrayParenIsComplete(t *testing.T) {
	p := &scriptedPrompter{lines: []string{")"}}
	code, ok := readInput(p)
	if !ok || code != ")" {
		t.Fatalf("stray paren should be handed to the evaluator, got %q", code)
	}
}

func TestReadInputAbortedLine(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"(+ 1"}, final: liner.ErrPromptAborted}
	code, ok := readInput(p)
	if !ok || code != "" {
		t.Fatalf("aborted line should be discarded, got %q ok=%v", code, ok)
	}
}

func TestReadInputEOFInsideForm(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"(+ 1"}}
	code, ok := readInput(p)
	if !ok || code != "(+ 1" {
		t.Fatalf("partial input should be returned at EOF, got %q ok=%v", code, ok)
	}
}

func TestQuitCommands(t *testing.T) {
	for _, cmd := range []string{":quit", ":Q", ":exit"} {
		if !isQuitCommand(cmd) {
			t.Fatalf("%s should quit", cmd)
		}
	}
	if isQuitCommand(":help") {
		t.Fatalf(":help should not quit")
	}
}

func TestUserBindingsListsDefinitions(t *testing.T) {
	cfg := driver.DefaultConfig()
	cfg.Color = driver.ColorNever
	var out, errOut bytes.Buffer
	runner := driver.NewRunner(cfg, &out, &errOut)
	runner.Run("(define b 2.5)\n(define (f x) x)\n(define a (quote (1 2)))\n(define car 1)\n")
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors: %s", errOut.String())
	}
	got := strings.Join(userBindings(runner.Interp.GlobalEnvironment()), "|")
	want := "a = (1 2)|b = 2.5|car = 1|f = <lambda f (x)>"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
