package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hassan/codeinterp/internal/lexer"
)

var tokensFormat string

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a program",
	Long: `Prints every token the lexer produces, up to and including EOF.
Malformed input shows up as ERROR tokens with their message.

Formats:
  text  - one token per line
  yaml  - a YAML list of token records`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}
		return dumpTokens(cmd.OutOrStdout(), lexer.Tokenize(source, args[0]), tokensFormat)
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", "text", "output format (text, yaml)")
}

// tokenRecord is the YAML form of a token.
type tokenRecord struct {
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
	Type   string `yaml:"type"`
	Lexeme string `yaml:"lexeme"`
	Value  string `yaml:"value,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

func dumpTokens(w io.Writer, tokens []lexer.Token, format string) error {
	switch format {
	case "text":
		for _, tok := range tokens {
			line := fmt.Sprintf("%-8s %-16s %q", tok.Position, tok.Type, tok.Lexeme)
			if tok.Type == lexer.TokenError {
				line += "  " + tok.Message
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil

	case "yaml":
		records := make([]tokenRecord, 0, len(tokens))
		for _, tok := range tokens {
			rec := tokenRecord{
				Line:   tok.Position.Line,
				Column: tok.Position.Column,
				Type:   tok.Type.String(),
				Lexeme: tok.Lexeme,
				Error:  tok.Message,
			}
			if tok.Literal.IsValid() {
				rec.Value = tok.Literal.String()
			}
			records = append(records, rec)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode tokens: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
