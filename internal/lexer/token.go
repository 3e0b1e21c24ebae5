package lexer

import (
	"fmt"
	"strings"

	"github.com/hassan/codeinterp/internal/types"
)

// TokenType represents the kind of a token.
type TokenType int

const (
	// Special tokens

	// TokenEOF marks the end of the input. The lexer keeps returning it once
	// the source is exhausted.
	TokenEOF TokenType = iota

	// TokenError carries a lexical diagnostic in Token.Message instead of a
	// value. The parser decides whether it is fatal.
	TokenError

	// TokenNewline terminates statements.
	TokenNewline

	// Literals

	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenBoolLiteral
	TokenStringLiteral

	// TokenEscape is a bracketed escape code such as [#], valued as a Char.
	TokenEscape

	TokenIdentifier

	// Keywords

	TokenBegin
	TokenEnd
	TokenCode
	TokenIf
	TokenElse
	TokenWhile
	TokenDisplay
	TokenScan
	TokenAnd
	TokenOr
	TokenNot

	// Data type keywords

	TokenInt
	TokenFloat
	TokenChar
	TokenBool

	// Operators

	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenPercent      // %
	TokenGreater      // >
	TokenLess         // <
	TokenGreaterEqual // >=
	TokenLessEqual    // <=
	TokenEqual        // ==
	TokenNotEqual     // <>
	TokenAssign       // =

	// Delimiters

	TokenDollar     // $
	TokenAmpersand  // &
	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,
	TokenColon      // :
)

var tokenNames = [...]string{
	TokenEOF:           "EOF",
	TokenError:         "ERROR",
	TokenNewline:       "NEWLINE",
	TokenIntLiteral:    "INTLITERAL",
	TokenFloatLiteral:  "FLOATLITERAL",
	TokenCharLiteral:   "CHARLITERAL",
	TokenBoolLiteral:   "BOOLLITERAL",
	TokenStringLiteral: "STRINGLITERAL",
	TokenEscape:        "ESCAPE",
	TokenIdentifier:    "IDENTIFIER",
	TokenBegin:         "BEGIN",
	TokenEnd:           "END",
	TokenCode:          "CODE",
	TokenIf:            "IF",
	TokenElse:          "ELSE",
	TokenWhile:         "WHILE",
	TokenDisplay:       "DISPLAY",
	TokenScan:          "SCAN",
	TokenAnd:           "AND",
	TokenOr:            "OR",
	TokenNot:           "NOT",
	TokenInt:           "INT",
	TokenFloat:         "FLOAT",
	TokenChar:          "CHAR",
	TokenBool:          "BOOL",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenGreater:       ">",
	TokenLess:          "<",
	TokenGreaterEqual:  ">=",
	TokenLessEqual:     "<=",
	TokenEqual:         "==",
	TokenNotEqual:      "<>",
	TokenAssign:        "=",
	TokenDollar:        "$",
	TokenAmpersand:     "&",
	TokenLeftParen:     "(",
	TokenRightParen:    ")",
	TokenComma:         ",",
	TokenColon:         ":",
}

// String returns the name of the token type as it appears in diagnostics.
func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) || tokenNames[t] == "" {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenNames[t]
}

// IsKeyword reports whether t is one of the reserved words, data types
// excluded.
func (t TokenType) IsKeyword() bool {
	return t >= TokenBegin && t <= TokenNot
}

// IsDataType reports whether t is one of INT, FLOAT, CHAR or BOOL.
func (t TokenType) IsDataType() bool {
	return t >= TokenInt && t <= TokenBool
}

// IsLiteral reports whether t carries a typed value in Token.Literal.
func (t TokenType) IsLiteral() bool {
	return t >= TokenIntLiteral && t <= TokenEscape
}

// DataType maps a data type keyword to the type it declares. Other token
// types map to types.Invalid.
func (t TokenType) DataType() types.DataType {
	switch t {
	case TokenInt:
		return types.Int
	case TokenFloat:
		return types.Float
	case TokenChar:
		return types.Char
	case TokenBool:
		return types.Bool
	}
	return types.Invalid
}

// Token is a single lexeme produced by the lexer.
type Token struct {
	Type   TokenType
	Lexeme string

	// Literal holds the value of literal and escape tokens.
	Literal types.Value

	// Message holds the diagnostic of a TokenError.
	Message string

	Position Position
	Length   int
}

// String returns a debug rendering such as IDENTIFIER("x")@3:5.
func (t Token) String() string {
	switch t.Type {
	case TokenNewline:
		return fmt.Sprintf("NEWLINE@%d:%d", t.Position.Line, t.Position.Column)
	case TokenEOF:
		return fmt.Sprintf("EOF@%d:%d", t.Position.Line, t.Position.Column)
	case TokenError:
		return fmt.Sprintf("ERROR(%q: %s)@%d:%d", t.Lexeme, t.Message, t.Position.Line, t.Position.Column)
	}
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Lexeme, t.Position.Line, t.Position.Column)
}

// keywords maps reserved words to their token types. Lookup is
// case-sensitive.
var keywords = map[string]TokenType{
	"BEGIN":   TokenBegin,
	"END":     TokenEnd,
	"CODE":    TokenCode,
	"IF":      TokenIf,
	"ELSE":    TokenElse,
	"WHILE":   TokenWhile,
	"DISPLAY": TokenDisplay,
	"SCAN":    TokenScan,
	"AND":     TokenAnd,
	"OR":      TokenOr,
	"NOT":     TokenNot,
}

var dataTypes = map[string]TokenType{
	"INT":   TokenInt,
	"FLOAT": TokenFloat,
	"CHAR":  TokenChar,
	"BOOL":  TokenBool,
}

// LookupWord classifies a scanned word. Exact matches resolve to keyword or
// data type tokens. A word that only matches ignoring case resolves to
// TokenError with a message naming the correct spelling. Everything else is
// an identifier.
func LookupWord(word string) (TokenType, string) {
	if tt, ok := keywords[word]; ok {
		return tt, ""
	}
	if tt, ok := dataTypes[word]; ok {
		return tt, ""
	}

	upper := strings.ToUpper(word)
	if _, ok := keywords[upper]; ok {
		return TokenError, fmt.Sprintf("Invalid keyword '%s' should be %s", word, upper)
	}
	if _, ok := dataTypes[upper]; ok {
		return TokenError, fmt.Sprintf("Invalid data type '%s' should be %s", word, upper)
	}
	return TokenIdentifier, ""
}
