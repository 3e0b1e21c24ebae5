package ast

import (
	"strconv"

	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/types"
)

// BinaryExpr is "Left Operator Right".
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (b *BinaryExpr) Pos() lexer.Position { return b.Left.Pos() }
func (b *BinaryExpr) exprNode()           {}

func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator.Type.String() + " " + b.Right.String() + ")"
}

// UnaryExpr is a prefix +, - or NOT applied to Operand.
type UnaryExpr struct {
	Operator lexer.Token
	Operand  Expr
}

func (u *UnaryExpr) Pos() lexer.Position { return u.Operator.Position }
func (u *UnaryExpr) exprNode()           {}

func (u *UnaryExpr) String() string {
	if u.Operator.Type == lexer.TokenNot {
		return "(NOT " + u.Operand.String() + ")"
	}
	return "(" + u.Operator.Type.String() + u.Operand.String() + ")"
}

// ParenExpr is a parenthesized expression. It is kept in the tree because
// IF and WHILE conditions are always parenthesized.
type ParenExpr struct {
	Lparen lexer.Token
	Inner  Expr
}

func (p *ParenExpr) Pos() lexer.Position { return p.Lparen.Position }
func (p *ParenExpr) exprNode()           {}
func (p *ParenExpr) String() string      { return "[" + p.Inner.String() + "]" }

// IdentExpr is a reference to a variable.
type IdentExpr struct {
	Token lexer.Token
}

func (i *IdentExpr) Pos() lexer.Position { return i.Token.Position }
func (i *IdentExpr) exprNode()           {}
func (i *IdentExpr) String() string      { return i.Token.Lexeme }

// Name returns the referenced variable name.
func (i *IdentExpr) Name() string { return i.Token.Lexeme }

// LiteralExpr is a constant: a numeric, character, boolean or string
// literal, an escape code, or the newline contributed by "$".
type LiteralExpr struct {
	Token lexer.Token
	Value types.Value
}

func (l *LiteralExpr) Pos() lexer.Position { return l.Token.Position }
func (l *LiteralExpr) exprNode()           {}

func (l *LiteralExpr) String() string {
	switch l.Value.Type {
	case types.Char:
		return "'" + l.Value.String() + "'"
	case types.String:
		return strconv.Quote(l.Value.Text())
	case types.Bool:
		return `"` + l.Value.String() + `"`
	}
	return l.Value.String()
}
