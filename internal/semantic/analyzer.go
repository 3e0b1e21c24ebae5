// Package semantic type-checks a parsed CODE program before it runs.
//
// SEMANTIC ANALYSIS:
// A syntactically valid program can still be wrong. The analyzer checks:
// 1. Name resolution. Every variable is declared before it is used, and
//    no name is declared twice.
// 2. Assignment types. A value only goes into a variable whose declared
//    type accepts it, with Int widening into Float.
// 3. Operator types. Operands of each binary and unary operator have
//    compatible types.
// 4. Conditions. IF and WHILE conditions are Bool.
//
// DESIGN PHILOSOPHY:
// The analyzer walks the whole tree once, every IF, ELSE and WHILE body
// included, so a program that would fail on a branch it never takes is
// still rejected before any output is produced. The first violation ends
// the analysis, matching how the parser reports errors.
//
// PASSES:
// One pass is enough. CODE has no functions and every name must be
// declared above its first use, so declarations are seen in order.
package semantic

import (
	"github.com/hassan/codeinterp/internal/diag"
	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/parser/ast"
	"github.com/hassan/codeinterp/internal/symtab"
	"github.com/hassan/codeinterp/internal/types"
)

// Analyzer checks declarations, assignments, conditions and operator
// operands against the declared types of variables.
//
// DESIGN CHOICE: The analyzer keeps its own symbol table instead of
// sharing the evaluator's. It only records declared types, and it is
// discarded when Analyze returns, so a checked program starts execution
// with nothing declared.
type Analyzer struct {
	// table holds the declared type of every variable seen so far. Values
	// are never stored in it.
	table *symtab.Table
}

// New creates an analyzer with an empty symbol table.
func New() *Analyzer {
	return &Analyzer{table: symtab.New()}
}

// Analyze checks prog. It returns nil or a *diag.Error of kind Semantic.
func Analyze(prog *ast.Program) error {
	return New().Analyze(prog)
}

// Analyze checks prog against a, which must not have analyzed another
// program.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	return a.checkBlock(prog)
}

func (a *Analyzer) checkBlock(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := a.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return a.checkVarDecl(s)
	case *ast.AssignStmt:
		return a.checkAssign(s)
	case *ast.DisplayStmt:
		return a.checkDisplay(s)
	case *ast.ScanStmt:
		return a.checkScan(s)
	case *ast.IfStmt:
		return a.checkIf(s)
	case *ast.WhileStmt:
		return a.checkWhile(s)
	}
	return a.errorf(stmt.Pos(), "unsupported statement %T", stmt)
}

func (a *Analyzer) checkVarDecl(decl *ast.VarDecl) error {
	for _, b := range decl.Bindings {
		name := b.Name.Lexeme
		if a.table.Contains(name) {
			return a.errorf(b.Name.Position, "Variable %q already exists.", name)
		}

		if b.Init != nil {
			t, err := a.exprType(b.Init)
			if err != nil {
				return err
			}
			if !types.Assignable(t, decl.Type) {
				return a.errorf(b.Name.Position, "Unable to assign %s on %q.", t, name)
			}
		}

		if err := a.table.Define(&symtab.Symbol{Name: name, Type: decl.Type, Pos: b.Name.Position}); err != nil {
			return a.errorf(b.Name.Position, "%v", err)
		}
	}
	return nil
}

// checkAssign checks every target against the one expression type.
func (a *Analyzer) checkAssign(stmt *ast.AssignStmt) error {
	t, err := a.exprType(stmt.Value)
	if err != nil {
		return err
	}

	for _, target := range stmt.Targets {
		sym, err := a.lookup(target)
		if err != nil {
			return err
		}
		if !types.Assignable(t, sym.Type) {
			return a.errorf(target.Position, "Unable to assign %s on %q.", t, target.Lexeme)
		}
	}
	return nil
}

// checkDisplay only resolves names. DISPLAY accepts a value of any type.
func (a *Analyzer) checkDisplay(stmt *ast.DisplayStmt) error {
	var err error
	for _, part := range stmt.Parts {
		ast.Inspect(part, func(e ast.Expr) bool {
			if ident, ok := e.(*ast.IdentExpr); ok && err == nil {
				_, err = a.lookup(ident.Token)
			}
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// checkScan only resolves names; input values are checked when they arrive.
func (a *Analyzer) checkScan(stmt *ast.ScanStmt) error {
	for _, name := range stmt.Names {
		if _, err := a.lookup(name); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkIf(stmt *ast.IfStmt) error {
	for _, branch := range stmt.Branches {
		if !branch.IsElse() {
			if err := a.checkCondition(branch.Token, branch.Cond); err != nil {
				return err
			}
		}
		if err := a.checkBlock(branch.Body); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkWhile(stmt *ast.WhileStmt) error {
	if err := a.checkCondition(stmt.While, stmt.Cond); err != nil {
		return err
	}
	return a.checkBlock(stmt.Body)
}

func (a *Analyzer) checkCondition(keyword lexer.Token, cond ast.Expr) error {
	t, err := a.exprType(cond)
	if err != nil {
		return err
	}
	if t != types.Bool {
		return a.errorf(keyword.Position, "Expression is not Bool.")
	}
	return nil
}

func (a *Analyzer) lookup(name lexer.Token) (*symtab.Symbol, error) {
	sym := a.table.Lookup(name.Lexeme)
	if sym == nil {
		return nil, a.errorf(name.Position, "Variable %q does not exist.", name.Lexeme)
	}
	return sym, nil
}

func (a *Analyzer) errorf(pos lexer.Position, format string, args ...interface{}) error {
	return diag.Errorf(diag.Semantic, pos, format, args...)
}
