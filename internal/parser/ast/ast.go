// Package ast defines the syntax tree the parser builds for a CODE program.
//
// Statements and expressions are closed sets: Stmt and Expr carry unexported
// marker methods, so only the node types in this package satisfy them, and
// later stages dispatch with type switches over those types.
package ast

import (
	"github.com/hassan/codeinterp/internal/lexer"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the position of the node's first token.
	Pos() lexer.Position
}

// Expr is an expression node.
type Expr interface {
	Node
	String() string
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is a BEGIN/END delimited block. The whole source is a Program
// closed by CODE; IF, ELSE and WHILE bodies are Programs closed by IF or
// WHILE.
type Program struct {
	Begin      lexer.Token
	Keyword    lexer.TokenType
	Statements []Stmt
}

func (p *Program) Pos() lexer.Position { return p.Begin.Position }

// Inspect walks expr depth-first, calling f for every expression node.
// Children are skipped when f returns false.
func Inspect(expr Expr, f func(Expr) bool) {
	if expr == nil || !f(expr) {
		return
	}
	switch e := expr.(type) {
	case *BinaryExpr:
		Inspect(e.Left, f)
		Inspect(e.Right, f)
	case *UnaryExpr:
		Inspect(e.Operand, f)
	case *ParenExpr:
		Inspect(e.Inner, f)
	}
}
