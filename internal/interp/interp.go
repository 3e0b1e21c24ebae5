// Package interp ties the stages of the CODE interpreter together.
//
// New runs the front end (lexing, parsing and semantic analysis) and keeps
// the checked program; Execute runs it against the configured console
// streams. An Interpreter can be executed any number of times, each run
// starting from an empty variable table.
package interp

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hassan/codeinterp/internal/eval"
	"github.com/hassan/codeinterp/internal/logging"
	"github.com/hassan/codeinterp/internal/parser"
	"github.com/hassan/codeinterp/internal/parser/ast"
	"github.com/hassan/codeinterp/internal/semantic"
)

// Interpreter holds a checked program and the streams it runs against.
type Interpreter struct {
	id       string
	filename string
	prog     *ast.Program
	input    eval.LineReader
	out      io.Writer
	logger   *slog.Logger

	written int64
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithFilename sets the name used in diagnostic positions.
func WithFilename(name string) Option {
	return func(in *Interpreter) {
		in.filename = name
	}
}

// WithInput makes SCAN read lines from r.
func WithInput(r io.Reader) Option {
	return func(in *Interpreter) {
		in.input = eval.Lines(r)
	}
}

// WithLineReader makes SCAN read from lr, for callers that edit lines
// themselves.
func WithLineReader(lr eval.LineReader) Option {
	return func(in *Interpreter) {
		in.input = lr
	}
}

// WithOutput sends DISPLAY output to w.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		in.out = w
	}
}

// WithLogger sets the logger for stage tracing. Every record carries the
// run ID.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// New checks source and returns an interpreter ready to execute it. The
// returned error is a *diag.Error for any lexical, syntax or semantic
// failure. Input and output default to os.Stdin and os.Stdout.
func New(source string, opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		id:     uuid.NewString(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.input == nil {
		in.input = eval.Lines(os.Stdin)
	}
	if in.out == nil {
		in.out = os.Stdout
	}
	in.logger = in.logger.With("run", in.id)

	start := time.Now()
	prog, err := parser.Parse(source, in.filename)
	if err != nil {
		in.logger.Debug("parse failed", "error", err)
		return nil, err
	}
	in.logger.Debug("parsed", "file", in.filename, "statements", len(prog.Statements), "duration", time.Since(start))

	start = time.Now()
	if err := semantic.Analyze(prog); err != nil {
		in.logger.Debug("analysis failed", "error", err)
		return nil, err
	}
	in.logger.Debug("analyzed", "duration", time.Since(start))

	in.prog = prog
	return in, nil
}

// Run checks and executes source in one step.
func Run(ctx context.Context, source string, opts ...Option) error {
	in, err := New(source, opts...)
	if err != nil {
		return err
	}
	return in.Execute(ctx)
}

// Execute runs the program. Runtime failures are returned as *diag.Error;
// cancellation of ctx stops a running WHILE loop or a SCAN waiting for
// input and returns ctx.Err().
func (in *Interpreter) Execute(ctx context.Context) error {
	out := &countingWriter{w: in.out}
	ev := eval.New(in.input, out, eval.WithLogger(in.logger))

	start := time.Now()
	err := ev.Execute(ctx, in.prog)
	in.written = out.n
	if err != nil {
		in.logger.Debug("execution failed", "error", err, "duration", time.Since(start))
		return err
	}
	in.logger.Debug("executed", "bytes", out.n, "duration", time.Since(start))
	return nil
}

// ID returns the run ID attached to log records.
func (in *Interpreter) ID() string {
	return in.id
}

// Program returns the checked syntax tree.
func (in *Interpreter) Program() *ast.Program {
	return in.prog
}

// Displayed reports whether the last Execute wrote any output.
func (in *Interpreter) Displayed() bool {
	return in.written > 0
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
