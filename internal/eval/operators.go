package eval

import (
	"cmp"
	"errors"
	"fmt"
	"math"

	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/types"
)

var errDivisionByZero = errors.New("Division by zero.")

// binary applies op to two operand values. Int and Float operands are
// promoted to Float when they are mixed.
func binary(op lexer.TokenType, l, r types.Value) (types.Value, error) {
	switch op {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return arithmetic(op, l, r)
	case lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual,
		lexer.TokenEqual, lexer.TokenNotEqual:
		return compare(op, l, r)
	case lexer.TokenAnd, lexer.TokenOr:
		return logical(op, l, r)
	}
	return types.Value{}, fmt.Errorf("Unknown binary operator '%s'.", op)
}

func arithmetic(op lexer.TokenType, l, r types.Value) (types.Value, error) {
	if !l.Type.IsNumeric() || !r.Type.IsNumeric() {
		return types.Value{}, operandError(op, l, r)
	}

	if l.Type == types.Int && r.Type == types.Int {
		a, b := l.Int(), r.Int()
		switch op {
		case lexer.TokenPlus:
			return types.IntValue(a + b), nil
		case lexer.TokenMinus:
			return types.IntValue(a - b), nil
		case lexer.TokenStar:
			return types.IntValue(a * b), nil
		case lexer.TokenSlash:
			if b == 0 {
				return types.Value{}, errDivisionByZero
			}
			return types.IntValue(a / b), nil
		case lexer.TokenPercent:
			if b == 0 {
				return types.Value{}, errDivisionByZero
			}
			return types.IntValue(a % b), nil
		}
	}

	a, b := l.Float(), r.Float()
	switch op {
	case lexer.TokenPlus:
		return types.FloatValue(a + b), nil
	case lexer.TokenMinus:
		return types.FloatValue(a - b), nil
	case lexer.TokenStar:
		return types.FloatValue(a * b), nil
	case lexer.TokenSlash:
		return types.FloatValue(a / b), nil
	case lexer.TokenPercent:
		return types.FloatValue(math.Mod(a, b)), nil
	}
	return types.Value{}, operandError(op, l, r)
}

// compare orders numbers numerically, characters by code point and strings
// lexically. Booleans only support == and <>.
func compare(op lexer.TokenType, l, r types.Value) (types.Value, error) {
	var c int
	switch {
	case l.Type.IsNumeric() && r.Type.IsNumeric():
		if l.Type == types.Int && r.Type == types.Int {
			c = cmp.Compare(l.Int(), r.Int())
		} else {
			c = cmp.Compare(l.Float(), r.Float())
		}
	case l.Type != r.Type:
		return types.Value{}, operandError(op, l, r)
	case l.Type == types.Char:
		c = cmp.Compare(l.Char(), r.Char())
	case l.Type == types.String:
		c = cmp.Compare(l.Text(), r.Text())
	case l.Type == types.Bool:
		switch op {
		case lexer.TokenEqual:
			return types.BoolValue(l.Bool() == r.Bool()), nil
		case lexer.TokenNotEqual:
			return types.BoolValue(l.Bool() != r.Bool()), nil
		}
		return types.Value{}, operandError(op, l, r)
	default:
		return types.Value{}, operandError(op, l, r)
	}

	switch op {
	case lexer.TokenLess:
		return types.BoolValue(c < 0), nil
	case lexer.TokenLessEqual:
		return types.BoolValue(c <= 0), nil
	case lexer.TokenGreater:
		return types.BoolValue(c > 0), nil
	case lexer.TokenGreaterEqual:
		return types.BoolValue(c >= 0), nil
	case lexer.TokenEqual:
		return types.BoolValue(c == 0), nil
	case lexer.TokenNotEqual:
		return types.BoolValue(c != 0), nil
	}
	return types.Value{}, operandError(op, l, r)
}

// logical evaluates AND and OR. Both operands are already evaluated.
func logical(op lexer.TokenType, l, r types.Value) (types.Value, error) {
	if l.Type != types.Bool || r.Type != types.Bool {
		return types.Value{}, operandError(op, l, r)
	}
	if op == lexer.TokenAnd {
		return types.BoolValue(l.Bool() && r.Bool()), nil
	}
	return types.BoolValue(l.Bool() || r.Bool()), nil
}

func unary(op lexer.TokenType, v types.Value) (types.Value, error) {
	switch op {
	case lexer.TokenNot:
		if v.Type == types.Bool {
			return types.BoolValue(!v.Bool()), nil
		}
	case lexer.TokenMinus:
		switch v.Type {
		case types.Int:
			return types.IntValue(-v.Int()), nil
		case types.Float:
			return types.FloatValue(-v.Float()), nil
		}
	case lexer.TokenPlus:
		if v.Type.IsNumeric() {
			return v, nil
		}
	}
	return types.Value{}, fmt.Errorf("Operator '%s' cannot be applied to operand of type %s.", op, v.Type)
}

func operandError(op lexer.TokenType, l, r types.Value) error {
	return fmt.Errorf("Operator '%s' cannot be applied to operands of type %s and %s.", op, l.Type, r.Type)
}
