package eval

import (
	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/parser/ast"
	"github.com/hassan/codeinterp/internal/types"
)

// eval computes the value of expr.
func (e *Evaluator) eval(expr ast.Expr) (types.Value, error) {
	switch x := expr.(type) {
	case *ast.LiteralExpr:
		return x.Value, nil

	case *ast.IdentExpr:
		sym := e.table.Lookup(x.Name())
		if sym == nil {
			return types.Value{}, e.errorf(x.Pos(), "Variable %q does not exist.", x.Name())
		}
		if !sym.HasValue() {
			return types.Value{}, e.errorf(x.Pos(), "Variable %q is null.", x.Name())
		}
		return sym.Value, nil

	case *ast.ParenExpr:
		return e.eval(x.Inner)

	case *ast.UnaryExpr:
		v, err := e.eval(x.Operand)
		if err != nil {
			return types.Value{}, err
		}
		out, err := unary(x.Operator.Type, v)
		if err != nil {
			return types.Value{}, e.operatorError(x.Operator, err)
		}
		return out, nil

	case *ast.BinaryExpr:
		left, err := e.eval(x.Left)
		if err != nil {
			return types.Value{}, err
		}
		right, err := e.eval(x.Right)
		if err != nil {
			return types.Value{}, err
		}
		out, err := binary(x.Operator.Type, left, right)
		if err != nil {
			return types.Value{}, e.operatorError(x.Operator, err)
		}
		return out, nil
	}
	return types.Value{}, e.errorf(expr.Pos(), "unsupported expression %T", expr)
}

func (e *Evaluator) operatorError(op lexer.Token, err error) error {
	return e.errorf(op.Position, "%v", err)
}
