package ptscheme

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultMaxDepth = 100000

// Config holds the settings read from a ptscheme YAML file.
type Config struct {
	Reader ReaderConfig `yaml:"reader"`
	Eval   EvalConfig   `yaml:"eval"`
	REPL   REPLConfig   `yaml:"repl"`
	Log    LogConfig    `yaml:"log"`

	// Path is the file the configuration was loaded from, if any.
	Path string `yaml:"-"`
}

type ReaderConfig struct {
	MaxStringLength int  `yaml:"max_string_length"`
	MaxSymbolLength int  `yaml:"max_symbol_length"`
	Floats          bool `yaml:"floats"`
}

type EvalConfig struct {
	// MaxDepth bounds nested non-tail evaluations.
	MaxDepth int `yaml:"max_depth"`
	// Prelude controls loading of the built-in library procedures.
	Prelude bool `yaml:"prelude"`
	// Preload lists files loaded into every new VM, after the prelude.
	Preload []string `yaml:"preload"`
}

type REPLConfig struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	Banner             bool   `yaml:"banner"`
}

type LogConfig struct {
	Verbose bool `yaml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		Reader: ReaderConfig{
			MaxStringLength: DefaultMaxStringLength,
			MaxSymbolLength: DefaultMaxSymbolLength,
			Floats:          true,
		},
		Eval: EvalConfig{
			MaxDepth: DefaultMaxDepth,
			Prelude:  true,
		},
		REPL: REPLConfig{
			Prompt:             "> ",
			ContinuationPrompt: "... ",
			HistoryFile:        "~/.ptscheme_history",
			Banner:             true,
		},
	}
}

// ValidationError aggregates configuration validation failures.
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

func (c *Config) Validate() error {
	var errs ValidationError
	if c.Reader.MaxStringLength <= 0 {
		errs.Issues = append(errs.Issues, "reader.max_string_length must be positive")
	}
	if c.Reader.MaxSymbolLength <= 0 {
		errs.Issues = append(errs.Issues, "reader.max_symbol_length must be positive")
	}
	if c.Eval.MaxDepth <= 0 {
		errs.Issues = append(errs.Issues, "eval.max_depth must be positive")
	}
	for i, path := range c.Eval.Preload {
		if path == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("eval.preload[%d] must be a non-empty path", i))
		}
	}
	if c.REPL.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must not be empty")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DecodeConfig reads YAML from r on top of the defaults. Unknown keys are
// rejected; an empty document yields the defaults.
func DecodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig parses and validates the configuration file at path. Relative
// preload paths are resolved against the directory of the file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}
	cfg.Path = absPath
	dir := filepath.Dir(absPath)
	for i, p := range cfg.Eval.Preload {
		p = ExpandHome(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		cfg.Eval.Preload[i] = p
	}
	return cfg, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
