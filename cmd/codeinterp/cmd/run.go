package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hassan/codeinterp/internal/eval"
	"github.com/hassan/codeinterp/internal/interp"
	"github.com/hassan/codeinterp/internal/watch"
)

var runWatch bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a CODE program",
	Long: `Checks and runs a program. SCAN reads from stdin and DISPLAY writes
to stdout; diagnostics go to stderr.

Examples:
  codeinterp run hello.code
  echo "3, 4" | codeinterp run sum.code
  codeinterp run --watch loop.code`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "re-run whenever the file changes")
}

func runProgram(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	input := eval.Lines(cmd.InOrStdin())
	if runWatch {
		return watchProgram(ctx, s, args[0], input, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return runFile(ctx, s, args[0], input, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runFile checks and executes one program, printing its diagnostic on
// failure.
func runFile(ctx context.Context, s *settings, path string, input eval.LineReader, stdout, stderr io.Writer) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	in, err := interp.New(source,
		interp.WithFilename(path),
		interp.WithLineReader(input),
		interp.WithOutput(stdout),
		interp.WithLogger(s.logger),
	)
	if err == nil {
		err = in.Execute(ctx)
	}
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return err
	}
	if err != nil {
		fmt.Fprintln(stderr, s.styles.Error(err.Error()))
		return errReported
	}

	if s.cfg.Output.ReportStatus && !in.Displayed() {
		fmt.Fprintln(stdout, s.styles.Success("No Error"))
	}
	return nil
}

func watchProgram(ctx context.Context, s *settings, path string, input eval.LineReader, stdout, stderr io.Writer) error {
	w, err := watch.New(path, s.cfg.Watch.Debounce.Duration, func(runCtx context.Context) {
		header := fmt.Sprintf("--- %s %s", filepath.Base(path), time.Now().Format("15:04:05"))
		fmt.Fprintln(stderr, s.styles.Muted(header))

		err := runFile(runCtx, s, path, input, stdout, stderr)
		switch {
		case errors.Is(err, errReported):
		case runCtx.Err() != nil:
			s.logger.Debug("run cancelled", "file", path)
		case err != nil:
			fmt.Fprintln(stderr, s.styles.Error(err.Error()))
		}
	}, s.logger)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
