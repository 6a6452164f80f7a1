package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/mattn/go-isatty"

	"github.com/tartley/lispy/pkg/driver"
)

const versionString = "v0.1"

var errUsage = errors.New("usage")

type cliOptions struct {
	showHelp    bool
	showVersion bool
	quiet       bool
	keepGoing   bool
	configPath  string
	programFile string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return runWith(args, os.Stdin, os.Stdout, os.Stderr)
}

func runWith(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		printUsage(stderr)
		return 1
	}
	if opts.showHelp {
		printUsage(stdout)
		return 0
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, versionString)
		return 0
	}

	startDir := "."
	if opts.programFile != "" {
		startDir = filepath.Dir(opts.programFile)
	}
	cfg, err := driver.ResolveConfig(opts.configPath, startDir)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if opts.quiet {
		cfg.PrintResults = false
	}
	if opts.keepGoing {
		cfg.KeepGoing = true
	}

	runner := driver.NewRunner(cfg, stdout, stderr)
	if err := runner.LoadPrelude(cfg.Prelude); err != nil {
		runner.ReportError(err)
		return 1
	}

	var source string
	switch {
	case opts.programFile != "":
		source, err = driver.ReadSourceFile(opts.programFile)
	case isTerminal(stdin):
		return runREPL(runner, cfg.HistoryFile, stdout)
	default:
		source, err = driver.ReadSource(stdin)
	}
	if err != nil {
		runner.ReportError(err)
		return 1
	}
	if failures := runner.Run(source); failures > 0 {
		return 1
	}
	return 0
}

func parseArgs(args []string) (*cliOptions, error) {
	normalized, err := normalizeLongFlags(args)
	if err != nil {
		return nil, err
	}
	// getopt expects argv[0] to be the program name.
	argv := append([]string{"lis"}, normalized...)
	parsed, optind, err := getopt.Getopts(argv, "hvqkc:")
	if err != nil {
		return nil, err
	}
	opts := &cliOptions{}
	for _, opt := range parsed {
		switch opt.Option {
		case 'h':
			opts.showHelp = true
		case 'v':
			opts.showVersion = true
		case 'q':
			opts.quiet = true
		case 'k':
			opts.keepGoing = true
		case 'c':
			opts.configPath = opt.Value
		}
	}
	rest := argv[optind:]
	switch len(rest) {
	case 0:
	case 1:
		opts.programFile = rest[0]
	default:
		return nil, fmt.Errorf("%w: expected at most one program file, got %d", errUsage, len(rest))
	}
	return opts, nil
}

var longFlags = map[string]string{
	"--help":       "-h",
	"--version":    "-v",
	"--quiet":      "-q",
	"--keep-going": "-k",
	"--config":     "-c",
}

// normalizeLongFlags rewrites the long spellings into the short options
// getopt understands. Arguments after "--" are left alone.
func normalizeLongFlags(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for idx, arg := range args {
		if arg == "--" {
			out = append(out, args[idx:]...)
			break
		}
		if !strings.HasPrefix(arg, "--") {
			out = append(out, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg, "=")
		short, ok := longFlags[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown option %s", errUsage, name)
		}
		if hasValue {
			if short != "-c" {
				return nil, fmt.Errorf("%w: option %s takes no value", errUsage, name)
			}
			out = append(out, short+value)
			continue
		}
		out = append(out, short)
	}
	return out, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: lis [-v|--version] [-h|--help] [-q] [-k] [-c config] [program_file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Evaluates program_file, or stdin when it is not a terminal. With no")
	fmt.Fprintln(w, "program and a terminal on stdin, starts an interactive session.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -h, --help        show this help and exit")
	fmt.Fprintln(w, "  -v, --version     print the version and exit")
	fmt.Fprintln(w, "  -q, --quiet       do not print top-level results")
	fmt.Fprintln(w, "  -k, --keep-going  continue after a failing top-level form")
	fmt.Fprintln(w, "  -c, --config      path to lis.yml (default: $LIS_CONFIG or nearest lis.yml)")
}
