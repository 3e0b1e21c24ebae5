// Package repl reads CODE programs interactively and runs them.
//
// Lines are collected until the buffer parses as a whole program, so a
// program can be typed one statement at a time. A SCAN statement in the
// running program reads its input line through the same prompt.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/hassan/codeinterp/internal/diag"
	"github.com/hassan/codeinterp/internal/interp"
	"github.com/hassan/codeinterp/internal/logging"
	"github.com/hassan/codeinterp/internal/parser"
)

const quitCommand = ":quit"

// Prompter reads one line of input after showing a prompt. *liner.State
// satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Options configures a Session.
type Options struct {
	Prompt             string
	ContinuationPrompt string
	ScanPrompt         string

	// ReportStatus prints "No Error" after a program that displayed nothing.
	ReportStatus bool

	Output io.Writer
	Errors io.Writer
	Logger *slog.Logger

	FormatError  func(error) string
	FormatStatus func(string) string
}

// Session is an interactive loop over a Prompter.
type Session struct {
	prompter Prompter
	opts     Options
}

// NewSession creates a session reading from p.
func NewSession(p Prompter, opts Options) *Session {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Errors == nil {
		opts.Errors = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.FormatError == nil {
		opts.FormatError = func(err error) string { return err.Error() }
	}
	if opts.FormatStatus == nil {
		opts.FormatStatus = func(s string) string { return s }
	}
	return &Session{prompter: p, opts: opts}
}

var errQuit = errors.New("quit")

// Loop reads and runs programs until the input ends, ":quit" is entered or
// ctx is done.
func (s *Session) Loop(ctx context.Context) error {
	for ctx.Err() == nil {
		src, err := s.ReadProgram()
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, errQuit):
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			return err
		}
		s.Execute(ctx, src)
	}
	return nil
}

// ReadProgram prompts for lines until they form a complete program or a
// program that fails for a reason other than missing input.
func (s *Session) ReadProgram() (string, error) {
	var b strings.Builder

	for {
		prompt := s.opts.Prompt
		if b.Len() > 0 {
			prompt = s.opts.ContinuationPrompt
		}
		line, err := s.prompter.Prompt(prompt)
		if err != nil {
			return "", err
		}

		if b.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "":
				continue
			case quitCommand:
				return "", errQuit
			}
		} else {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.Parse(src, ""); perr != nil && diag.IsIncomplete(perr) {
			continue
		}
		return src, nil
	}
}

// Execute checks and runs one program. An interrupt cancels a running
// program and returns to the prompt.
func (s *Session) Execute(ctx context.Context, src string) {
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	out := &trailingNewline{w: s.opts.Output}
	in, err := interp.New(src,
		interp.WithLineReader(promptReader{p: s.prompter, prompt: s.opts.ScanPrompt}),
		interp.WithOutput(out),
		interp.WithLogger(s.opts.Logger),
	)
	if err == nil {
		err = in.Execute(runCtx)
	}
	out.finish()

	if err != nil {
		fmt.Fprintln(s.opts.Errors, s.opts.FormatError(err))
		return
	}
	if s.opts.ReportStatus && !in.Displayed() {
		fmt.Fprintln(s.opts.Output, s.opts.FormatStatus("No Error"))
	}
}

// Run starts an interactive session on the terminal. History is loaded from
// and saved to historyFile when it is set.
func Run(ctx context.Context, opts Options, historyFile string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	return NewSession(historyPrompter{ln}, opts).Loop(ctx)
}

// historyPrompter records every non-blank line in the liner history.
type historyPrompter struct {
	*liner.State
}

func (h historyPrompter) Prompt(prompt string) (string, error) {
	line, err := h.State.Prompt(prompt)
	if err == nil && strings.TrimSpace(line) != "" {
		h.AppendHistory(line)
	}
	return line, err
}

// promptReader feeds SCAN from the prompter. The terminal prompt cannot be
// interrupted from outside, so Ctrl-C at the prompt is what cancels the run.
type promptReader struct {
	p      Prompter
	prompt string
}

func (r promptReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := r.p.Prompt(r.prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", context.Canceled
	}
	return line, err
}

// trailingNewline ends partial output lines so the next prompt starts on a
// fresh line.
type trailingNewline struct {
	w    io.Writer
	last byte
}

func (t *trailingNewline) Write(p []byte) (int, error) {
	if len(p) > 0 {
		t.last = p[len(p)-1]
	}
	return t.w.Write(p)
}

func (t *trailingNewline) finish() {
	if t.last != 0 && t.last != '\n' {
		_, _ = io.WriteString(t.w, "\n")
	}
}
