package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hassan/codeinterp/internal/interp"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a program without running it",
	Long: `Lexes, parses and type-checks a program and reports the first
error, or OK with the number of top-level statements.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return checkFile(s, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkFile(s *settings, path string, stdout, stderr io.Writer) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	in, err := interp.New(source, interp.WithFilename(path), interp.WithLogger(s.logger))
	if err != nil {
		fmt.Fprintln(stderr, s.styles.Error(err.Error()))
		return errReported
	}
	fmt.Fprintln(stdout, s.styles.Success(fmt.Sprintf("OK (%d statements)", len(in.Program().Statements))))
	return nil
}
