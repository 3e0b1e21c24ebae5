package parser

import (
	"github.com/hassan/codeinterp/internal/lexer"
)

// Precedence is the binding strength of a binary operator. Higher binds
// tighter; PrecNone means the token is not a binary operator.
type Precedence int

const (
	PrecNone       Precedence = 0
	PrecOr         Precedence = 1 // OR
	PrecAnd        Precedence = 2 // AND
	PrecComparison Precedence = 4 // < <= > >= == <>
	PrecTerm       Precedence = 5 // + -
	PrecModulo     Precedence = 6 // %
	PrecFactor     Precedence = 7 // * /
)

// getPrecedence returns the binary precedence of tokenType.
func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd
	case lexer.TokenLess, lexer.TokenLessEqual,
		lexer.TokenGreater, lexer.TokenGreaterEqual,
		lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecComparison
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenPercent:
		return PrecModulo
	case lexer.TokenStar, lexer.TokenSlash:
		return PrecFactor
	}
	return PrecNone
}

// IsComparison reports whether tokenType yields a Bool from two operands of
// the same kind.
func IsComparison(tokenType lexer.TokenType) bool {
	return getPrecedence(tokenType) == PrecComparison
}

// IsArithmetic reports whether tokenType is one of + - * / %.
func IsArithmetic(tokenType lexer.TokenType) bool {
	p := getPrecedence(tokenType)
	return p >= PrecTerm
}

// IsLogical reports whether tokenType is AND or OR.
func IsLogical(tokenType lexer.TokenType) bool {
	return tokenType == lexer.TokenAnd || tokenType == lexer.TokenOr
}
