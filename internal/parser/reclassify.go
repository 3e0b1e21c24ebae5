package parser

import (
	"strings"

	"github.com/hassan/codeinterp/internal/lexer"
)

// Reclassify decides whether an error token produced by the lexer can be
// read as an identifier instead. preceding is the type of the token the
// parser consumed just before tok, and known holds the variable names
// declared so far.
//
// A keyword or data type casing error right after a data type keyword is a
// new variable name ("INT int"). An error token whose text is an already
// declared name is a reference to that variable. In both cases the returned
// token is a fresh IDENTIFIER and ok is true; otherwise tok is returned
// unchanged and ok is false.
func Reclassify(tok lexer.Token, preceding lexer.TokenType, known map[string]bool) (lexer.Token, bool) {
	if tok.Type != lexer.TokenError {
		return tok, true
	}

	if preceding.IsDataType() &&
		(strings.Contains(tok.Message, "Invalid keyword") || strings.Contains(tok.Message, "Invalid data type")) {
		return asIdentifier(tok), true
	}
	if known[tok.Lexeme] {
		return asIdentifier(tok), true
	}
	return tok, false
}

func asIdentifier(tok lexer.Token) lexer.Token {
	return lexer.Token{
		Type:     lexer.TokenIdentifier,
		Lexeme:   tok.Lexeme,
		Position: tok.Position,
		Length:   tok.Length,
	}
}
