package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hassan/codeinterp/internal/config"
	"github.com/hassan/codeinterp/internal/logging"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

// errReported marks a failure whose diagnostic was already printed.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "codeinterp",
	Short: "Interpreter for the CODE teaching language",
	Long: `codeinterp runs programs written in CODE, a small strongly typed
language with INT, FLOAT, CHAR and BOOL variables, DISPLAY and SCAN
console statements, IF/ELSE IF/ELSE and WHILE.

A program is a single BEGIN CODE ... END CODE block:

  BEGIN CODE
  INT x = 5
  DISPLAY: "x = " & x & $
  END CODE`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// settings bundles what every subcommand needs.
type settings struct {
	cfg    *config.Config
	logger *slog.Logger
	styles styles
}

func loadSettings() (*settings, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return nil, err
		}
	}

	opts := logging.FromConfig(cfg.Log, os.Stderr)
	if verbose {
		opts.Level = "debug"
	}
	logger, err := logging.New(opts)
	if err != nil {
		return nil, err
	}

	return &settings{
		cfg:    cfg,
		logger: logger,
		styles: styles{enabled: cfg.Output.Color && !noColor},
	}, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(data), nil
}
