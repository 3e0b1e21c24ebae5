package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hassan/codeinterp/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Type and run programs interactively",
	Long: `Reads a program line by line until it is complete, then runs it.
SCAN input is read at the "? " prompt. Enter :quit or press Ctrl-D to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), s.styles.Muted(fmt.Sprintf("CODE interpreter v%s. Type :quit to exit.", Version)))

		return repl.Run(cmd.Context(), repl.Options{
			Prompt:             s.cfg.REPL.Prompt,
			ContinuationPrompt: s.cfg.REPL.ContinuationPrompt,
			ScanPrompt:         "? ",
			ReportStatus:       s.cfg.Output.ReportStatus,
			Output:             cmd.OutOrStdout(),
			Errors:             cmd.ErrOrStderr(),
			Logger:             s.logger,
			FormatError:        func(err error) string { return s.styles.Error(err.Error()) },
			FormatStatus:       s.styles.Success,
		}, s.cfg.REPL.HistoryFile)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
