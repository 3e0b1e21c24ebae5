package lexer

import (
	"testing"

	"github.com/hassan/codeinterp/internal/types"
)

func TestTokenType_String(t *testing.T) {
	tests := []struct {
		tt   TokenType
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenIdentifier, "IDENTIFIER"},
		{TokenDisplay, "DISPLAY"},
		{TokenNotEqual, "<>"},
		{TokenType(999), "TokenType(999)"},
	}

	for _, tt := range tests {
		if got := tt.tt.String(); got != tt.want {
			t.Errorf("TokenType.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTokenType_Classes(t *testing.T) {
	if !TokenWhile.IsKeyword() || TokenInt.IsKeyword() {
		t.Error("IsKeyword() misclassifies WHILE or INT")
	}
	if !TokenBool.IsDataType() || TokenBegin.IsDataType() {
		t.Error("IsDataType() misclassifies BOOL or BEGIN")
	}
	if !TokenEscape.IsLiteral() || TokenIdentifier.IsLiteral() {
		t.Error("IsLiteral() misclassifies ESCAPE or IDENTIFIER")
	}
}

func TestTokenType_DataType(t *testing.T) {
	tests := []struct {
		tt   TokenType
		want types.DataType
	}{
		{TokenInt, types.Int},
		{TokenFloat, types.Float},
		{TokenChar, types.Char},
		{TokenBool, types.Bool},
		{TokenIdentifier, types.Invalid},
	}

	for _, tt := range tests {
		if got := tt.tt.DataType(); got != tt.want {
			t.Errorf("%v.DataType() = %v, want %v", tt.tt, got, tt.want)
		}
	}
}

func TestLookupWord(t *testing.T) {
	tests := []struct {
		word string
		want TokenType
	}{
		{"BEGIN", TokenBegin},
		{"FLOAT", TokenFloat},
		{"counter", TokenIdentifier},
		{"If", TokenError},
		{"bool", TokenError},
		{"BEGINx", TokenIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got, _ := LookupWord(tt.word); got != tt.want {
				t.Errorf("LookupWord(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestPosition_String(t *testing.T) {
	if got := (Position{Filename: "a.code", Line: 3, Column: 5}).String(); got != "a.code:3:5" {
		t.Errorf("Position.String() = %q, want %q", got, "a.code:3:5")
	}
	if got := (Position{Line: 3, Column: 5}).String(); got != "3:5" {
		t.Errorf("Position.String() = %q, want %q", got, "3:5")
	}
	if (Position{}).IsValid() {
		t.Error("zero Position reported valid")
	}
}
