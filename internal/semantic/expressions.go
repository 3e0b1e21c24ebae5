package semantic

import (
	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/parser"
	"github.com/hassan/codeinterp/internal/parser/ast"
	"github.com/hassan/codeinterp/internal/types"
)

// exprType infers the type of expr.
func (a *Analyzer) exprType(expr ast.Expr) (types.DataType, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return e.Value.Type, nil

	case *ast.IdentExpr:
		sym, err := a.lookup(e.Token)
		if err != nil {
			return types.Invalid, err
		}
		return sym.Type, nil

	case *ast.ParenExpr:
		return a.exprType(e.Inner)

	case *ast.UnaryExpr:
		return a.unaryType(e)

	case *ast.BinaryExpr:
		return a.binaryType(e)
	}
	return types.Invalid, a.errorf(expr.Pos(), "unsupported expression %T", expr)
}

func (a *Analyzer) unaryType(expr *ast.UnaryExpr) (types.DataType, error) {
	t, err := a.exprType(expr.Operand)
	if err != nil {
		return types.Invalid, err
	}

	op := expr.Operator
	switch op.Type {
	case lexer.TokenNot:
		if t != types.Bool {
			return types.Invalid, a.errorf(op.Position, "Operator '%s' cannot be applied to operand of type %s.", op.Lexeme, t)
		}
		return types.Bool, nil
	case lexer.TokenPlus, lexer.TokenMinus:
		if !t.IsNumeric() {
			return types.Invalid, a.errorf(op.Position, "Operator '%s' cannot be applied to operand of type %s.", op.Lexeme, t)
		}
		return t, nil
	}
	return types.Invalid, a.errorf(op.Position, "Unknown unary operator '%s'.", op.Lexeme)
}

// binaryType applies the operand rules:
//   - both sides must be compatible (Int and Float mix freely)
//   - arithmetic needs numbers
//   - AND and OR need Bool
//   - ordering comparisons reject Bool
//
// Comparisons and logical operators yield Bool; arithmetic yields the wider
// operand type.
func (a *Analyzer) binaryType(expr *ast.BinaryExpr) (types.DataType, error) {
	left, err := a.exprType(expr.Left)
	if err != nil {
		return types.Invalid, err
	}
	right, err := a.exprType(expr.Right)
	if err != nil {
		return types.Invalid, err
	}

	op := expr.Operator
	invalid := func() (types.DataType, error) {
		return types.Invalid, a.errorf(op.Position,
			"Operator '%s' cannot be applied to operands of type %s and %s.", op.Lexeme, left, right)
	}

	if !types.Compatible(left, right) {
		return invalid()
	}

	switch {
	case parser.IsArithmetic(op.Type):
		if !left.IsNumeric() || !right.IsNumeric() {
			return invalid()
		}
		return types.Wider(left, right), nil

	case parser.IsLogical(op.Type):
		if left != types.Bool || right != types.Bool {
			return invalid()
		}
		return types.Bool, nil

	case parser.IsComparison(op.Type):
		if left == types.Bool && op.Type != lexer.TokenEqual && op.Type != lexer.TokenNotEqual {
			return invalid()
		}
		return types.Bool, nil
	}
	return types.Invalid, a.errorf(op.Position, "Unknown binary operator '%s'.", op.Lexeme)
}
