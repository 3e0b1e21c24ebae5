// Package eval executes a checked CODE program.
//
// The evaluator walks the syntax tree a second time, after semantic
// analysis, against its own symbol table of current values. DISPLAY writes
// to an io.Writer and SCAN reads whole lines from a LineReader, so callers
// decide what the console is.
package eval

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hassan/codeinterp/internal/diag"
	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/logging"
	"github.com/hassan/codeinterp/internal/parser/ast"
	"github.com/hassan/codeinterp/internal/symtab"
	"github.com/hassan/codeinterp/internal/types"
)

// Evaluator runs statements for their effects.
//
// DESIGN CHOICE: A tree-walking evaluator rather than compiling to
// bytecode first. Programs are short and run once, so a second
// representation would add a compile step without paying for itself.
//
// The evaluator trusts the analyzer. Type mismatches that the analyzer
// rejects are still reported as runtime errors if they reach it, but
// nothing here is written to recover from them.
type Evaluator struct {
	// table holds the current value of every declared variable. A fresh
	// Evaluator is made for each run, so values never leak between runs.
	table *symtab.Table

	// input feeds SCAN, one line per statement.
	input LineReader

	// out receives DISPLAY output unbuffered.
	out io.Writer

	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// New creates an evaluator with an empty variable table.
func New(input LineReader, out io.Writer, opts ...Option) *Evaluator {
	e := &Evaluator{
		table:  symtab.New(),
		input:  input,
		out:    out,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the runtime variable table.
func (e *Evaluator) Table() *symtab.Table {
	return e.table
}

// Execute runs prog to completion. It returns a *diag.Error of kind Runtime
// on the first failure, or ctx.Err() if ctx is cancelled while a WHILE loop
// is running or SCAN is waiting for input.
func (e *Evaluator) Execute(ctx context.Context, prog *ast.Program) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.execBlock(ctx, prog)
}

func (e *Evaluator) execBlock(ctx context.Context, prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := e.execStmt(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execStmt(ctx context.Context, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return e.execVarDecl(s)
	case *ast.AssignStmt:
		return e.execAssign(s)
	case *ast.DisplayStmt:
		return e.execDisplay(s)
	case *ast.ScanStmt:
		return e.execScan(ctx, s)
	case *ast.IfStmt:
		return e.execIf(ctx, s)
	case *ast.WhileStmt:
		return e.execWhile(ctx, s)
	}
	return e.errorf(stmt.Pos(), "unsupported statement %T", stmt)
}

func (e *Evaluator) execVarDecl(decl *ast.VarDecl) error {
	for _, b := range decl.Bindings {
		sym := &symtab.Symbol{Name: b.Name.Lexeme, Type: decl.Type, Pos: b.Name.Position}
		if b.Init != nil {
			v, err := e.eval(b.Init)
			if err != nil {
				return err
			}
			if !types.Assignable(v.Type, decl.Type) {
				return e.errorf(b.Name.Position, "Unable to assign %s on %q.", v.Type, sym.Name)
			}
			sym.Value = v.Convert(decl.Type)
		}
		// A declaration inside a loop body runs once per iteration.
		if existing := e.table.Lookup(sym.Name); existing != nil && existing.Pos == sym.Pos {
			existing.Value = sym.Value
			continue
		}
		if err := e.table.Define(sym); err != nil {
			return e.errorf(b.Name.Position, "%v", err)
		}
	}
	return nil
}

// execAssign evaluates the value once and stores it in every target.
func (e *Evaluator) execAssign(stmt *ast.AssignStmt) error {
	v, err := e.eval(stmt.Value)
	if err != nil {
		return err
	}
	for _, target := range stmt.Targets {
		if err := e.table.Set(target.Lexeme, v); err != nil {
			return e.errorf(target.Position, "Unable to assign %s on %q.", v.Type, target.Lexeme)
		}
	}
	return nil
}

// execDisplay renders every part and writes the result in one call.
func (e *Evaluator) execDisplay(stmt *ast.DisplayStmt) error {
	var b strings.Builder
	for _, part := range stmt.Parts {
		v, err := e.eval(part)
		if err != nil {
			return err
		}
		b.WriteString(v.String())
	}
	if _, err := io.WriteString(e.out, b.String()); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// execIf runs the first branch whose condition holds, or the ELSE branch.
func (e *Evaluator) execIf(ctx context.Context, stmt *ast.IfStmt) error {
	for _, branch := range stmt.Branches {
		if !branch.IsElse() {
			ok, err := e.evalCondition(branch.Token, branch.Cond)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		return e.execBlock(ctx, branch.Body)
	}
	return nil
}

func (e *Evaluator) execWhile(ctx context.Context, stmt *ast.WhileStmt) error {
	iterations := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ok, err := e.evalCondition(stmt.While, stmt.Cond)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := e.execBlock(ctx, stmt.Body); err != nil {
			return err
		}
		iterations++
	}

	e.logger.Debug("loop finished", "line", stmt.While.Position.Line, "iterations", iterations)
	return nil
}

func (e *Evaluator) evalCondition(keyword lexer.Token, cond ast.Expr) (bool, error) {
	v, err := e.eval(cond)
	if err != nil {
		return false, err
	}
	if v.Type != types.Bool {
		return false, e.errorf(keyword.Position, "Expression is not Bool.")
	}
	return v.Bool(), nil
}

func (e *Evaluator) errorf(pos lexer.Position, format string, args ...interface{}) error {
	return diag.Errorf(diag.Runtime, pos, format, args...)
}
