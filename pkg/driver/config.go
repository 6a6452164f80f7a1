package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tartley/lispy/pkg/interpreter"
)

const (
	// ConfigFileName is the file FindConfig looks for.
	ConfigFileName = "lis.yml"
	// ConfigEnvVar names an explicit config path when -c is not given.
	ConfigEnvVar = "LIS_CONFIG"
	// DefaultHistoryFile is used by the REPL when the config sets none.
	DefaultHistoryFile = "~/.lis_history"
)

// ErrConfigNotFound is returned by FindConfig when no lis.yml exists between
// the start directory and the filesystem root.
var ErrConfigNotFound = errors.New("lis.yml not found")

// ColorMode selects when diagnostics and results are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config represents the parsed contents of lis.yml.
type Config struct {
	// Path is the absolute path of the file the config came from, empty for
	// the built-in defaults.
	Path         string
	PrintResults bool
	KeepGoing    bool
	Color        ColorMode
	MaxDepth     int
	// Prelude holds absolute paths of files evaluated before the program.
	Prelude     []string
	HistoryFile string
}

// DefaultConfig returns the settings used when no lis.yml is found.
func DefaultConfig() *Config {
	return &Config{
		PrintResults: true,
		Color:        ColorAuto,
		MaxDepth:     interpreter.DefaultMaxDepth,
		HistoryFile:  expandHome(DefaultHistoryFile),
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	PrintResults *bool    `yaml:"print_results"`
	KeepGoing    *bool    `yaml:"keep_going"`
	Color        string   `yaml:"color"`
	MaxDepth     *int     `yaml:"max_depth"`
	Prelude      []string `yaml:"prelude"`
	HistoryFile  string   `yaml:"history_file"`
}

// LoadConfig parses lis.yml from disk, returning a validated config. Unset
// fields keep their defaults; an empty file is the default config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cf configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if cf.PrintResults != nil {
		cfg.PrintResults = *cf.PrintResults
	}
	if cf.KeepGoing != nil {
		cfg.KeepGoing = *cf.KeepGoing
	}
	if cf.Color != "" {
		cfg.Color = ColorMode(strings.ToLower(strings.TrimSpace(cf.Color)))
	}
	if cf.MaxDepth != nil {
		cfg.MaxDepth = *cf.MaxDepth
	}
	baseDir := filepath.Dir(path)
	for _, entry := range cf.Prelude {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			cfg.Prelude = append(cfg.Prelude, "")
			continue
		}
		entry = expandHome(entry)
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(baseDir, entry)
		}
		cfg.Prelude = append(cfg.Prelude, filepath.Clean(entry))
	}
	if hist := strings.TrimSpace(cf.HistoryFile); hist != "" {
		hist = expandHome(hist)
		if !filepath.IsAbs(hist) {
			hist = filepath.Join(baseDir, hist)
		}
		cfg.HistoryFile = hist
	}
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	if !c.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color %q must be one of auto, always, never", c.Color))
	}
	if c.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be >= 0, got %d", c.MaxDepth))
	}
	for i, path := range c.Prelude {
		if path == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("prelude[%d] must be a non-empty path", i))
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("prelude[%d] %s: %v", i, path, err))
			continue
		}
		if info.IsDir() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("prelude[%d] %s is a directory", i, path))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindConfig walks from start up to the filesystem root looking for lis.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// ResolveConfig picks the config for a run: an explicit path wins, then
// $LIS_CONFIG, then the nearest lis.yml above startDir, then the defaults.
func ResolveConfig(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	if fromEnv := strings.TrimSpace(os.Getenv(ConfigEnvVar)); fromEnv != "" {
		return LoadConfig(fromEnv)
	}
	if startDir == "" {
		startDir = "."
	}
	path, err := FindConfig(startDir)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return LoadConfig(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
