// Package config loads the interpreter's settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete interpreter configuration
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Watch  WatchConfig  `toml:"watch" yaml:"watch"`
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
}

// LogConfig holds diagnostic logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// OutputConfig controls how results are reported on the terminal
type OutputConfig struct {
	Color bool `toml:"color" yaml:"color"`
	// ReportStatus prints "No Error" after a run that displayed nothing.
	ReportStatus bool `toml:"report_status" yaml:"report_status"`
}

// WatchConfig holds settings for run --watch
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// REPLConfig holds interactive prompt settings
type REPLConfig struct {
	Prompt             string `toml:"prompt" yaml:"prompt"`
	ContinuationPrompt string `toml:"continuation_prompt" yaml:"continuation_prompt"`
	HistoryFile        string `toml:"history_file" yaml:"history_file"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string such as \"250ms\"", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the built-in configuration used when no file is given
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Color:        true,
			ReportStatus: true,
		},
		Watch: WatchConfig{
			Debounce: Duration{250 * time.Millisecond},
		},
		REPL: REPLConfig{
			Prompt:             "code> ",
			ContinuationPrompt: "....> ",
			HistoryFile:        filepath.Join("$HOME", ".codeinterp_history"),
		},
	}
}

// Load reads a configuration file on top of the defaults. The format is
// chosen by extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// Validate checks that every setting has a usable value
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Watch.Debounce.Duration <= 0 {
		return fmt.Errorf("watch debounce must be positive, got %s", c.Watch.Debounce)
	}
	return nil
}
