package parser

import (
	"testing"

	"github.com/hassan/codeinterp/internal/lexer"
)

func TestGetPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		token    lexer.TokenType
		expected Precedence
	}{
		{"or", lexer.TokenOr, PrecOr},
		{"and", lexer.TokenAnd, PrecAnd},
		{"less", lexer.TokenLess, PrecComparison},
		{"less equal", lexer.TokenLessEqual, PrecComparison},
		{"greater", lexer.TokenGreater, PrecComparison},
		{"greater equal", lexer.TokenGreaterEqual, PrecComparison},
		{"equal", lexer.TokenEqual, PrecComparison},
		{"not equal", lexer.TokenNotEqual, PrecComparison},
		{"plus", lexer.TokenPlus, PrecTerm},
		{"minus", lexer.TokenMinus, PrecTerm},
		{"percent", lexer.TokenPercent, PrecModulo},
		{"star", lexer.TokenStar, PrecFactor},
		{"slash", lexer.TokenSlash, PrecFactor},
		{"assign", lexer.TokenAssign, PrecNone},
		{"ampersand", lexer.TokenAmpersand, PrecNone},
		{"not", lexer.TokenNot, PrecNone},
		{"identifier", lexer.TokenIdentifier, PrecNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getPrecedence(tt.token); got != tt.expected {
				t.Errorf("getPrecedence(%v) = %v, want %v", tt.token, got, tt.expected)
			}
		})
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	order := []Precedence{PrecNone, PrecOr, PrecAnd, PrecComparison, PrecTerm, PrecModulo, PrecFactor}
	for i := 1; i < len(order); i++ {
		if order[i] <= order[i-1] {
			t.Errorf("precedence %d (%v) not above %d (%v)", i, order[i], i-1, order[i-1])
		}
	}
}

func TestOperatorClasses(t *testing.T) {
	if !IsComparison(lexer.TokenNotEqual) || IsComparison(lexer.TokenPlus) {
		t.Error("IsComparison() misclassifies <> or +")
	}
	if !IsArithmetic(lexer.TokenPercent) || IsArithmetic(lexer.TokenEqual) {
		t.Error("IsArithmetic() misclassifies % or ==")
	}
	if !IsLogical(lexer.TokenOr) || IsLogical(lexer.TokenNot) {
		t.Error("IsLogical() misclassifies OR or NOT")
	}
}
