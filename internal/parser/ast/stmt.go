package ast

import (
	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/types"
)

// VarDecl declares one or more variables of a single type:
//
//	INT a, b = 5, c
type VarDecl struct {
	TypeToken lexer.Token
	Type      types.DataType
	Bindings  []*Binding
}

// Binding is one declared name with its optional initializer.
type Binding struct {
	Name lexer.Token
	Init Expr
}

func (d *VarDecl) Pos() lexer.Position { return d.TypeToken.Position }
func (d *VarDecl) stmtNode()           {}

// AssignStmt writes Value to every target, left to right:
//
//	x = y = 4
//
// Assigns holds the "=" token that follows each target.
type AssignStmt struct {
	Targets []lexer.Token
	Assigns []lexer.Token
	Value   Expr
}

func (a *AssignStmt) Pos() lexer.Position { return a.Targets[0].Position }
func (a *AssignStmt) stmtNode()           {}

// DisplayStmt prints the concatenation of Parts.
type DisplayStmt struct {
	Display lexer.Token
	Parts   []Expr
}

func (d *DisplayStmt) Pos() lexer.Position { return d.Display.Position }
func (d *DisplayStmt) stmtNode()           {}

// ScanStmt reads one input line into Names.
type ScanStmt struct {
	Scan  lexer.Token
	Names []lexer.Token
}

func (s *ScanStmt) Pos() lexer.Position { return s.Scan.Position }
func (s *ScanStmt) stmtNode()           {}

// IfStmt is an IF with its ELSE IF and ELSE arms, in source order. Only
// the last branch may have a nil Cond.
type IfStmt struct {
	Branches []*Branch
}

// Branch is one arm of an IfStmt. Token is the IF or ELSE keyword that
// starts it.
type Branch struct {
	Token lexer.Token
	Cond  Expr
	Body  *Program
}

// IsElse reports whether b is the unconditional ELSE arm.
func (b *Branch) IsElse() bool { return b.Cond == nil }

func (i *IfStmt) Pos() lexer.Position { return i.Branches[0].Token.Position }
func (i *IfStmt) stmtNode()           {}

// WhileStmt repeats Body while Cond holds.
type WhileStmt struct {
	While lexer.Token
	Cond  Expr
	Body  *Program
}

func (w *WhileStmt) Pos() lexer.Position { return w.While.Position }
func (w *WhileStmt) stmtNode()           {}
