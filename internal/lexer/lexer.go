package lexer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hassan/codeinterp/internal/types"
)

var (
	intPattern   = regexp.MustCompile(`^\d+$`)
	floatPattern = regexp.MustCompile(`^\d*\.\d+$`)
)

// charEscapes are the characters that need a bracket escape inside a
// character literal. Outside character literals the quote is not special,
// so escapeCodes omits it.
const (
	charEscapes = `[]&$#'`
	escapeCodes = `[]&$#`
)

// Lexer performs lexical analysis on CODE source, turning it into a stream
// of tokens.
//
// DESIGN PHILOSOPHY:
// The lexer is the first stage of the pipeline. Its responsibilities are:
// 1. Break the source into tokens
// 2. Track the line and column of every token for diagnostics
// 3. Drop blanks and '#' comments, but keep newlines as tokens
// 4. Decode literals (numbers, characters, strings, booleans, escapes)
// 5. Turn malformed input into TokenError tokens with a readable message
//
// The lexer does NOT:
// - Check statement structure (the parser does that)
// - Know which names are declared (the semantic analyzer does that)
//
// Newlines are tokens because CODE statements end at the end of a line.
// Keeping them in the token stream lets the parser enforce that directly
// instead of guessing from positions.
//
// DESIGN CHOICE: Errors are tokens rather than a second return value.
// The parser already has to look at every token's type, so a TokenError
// costs it one case in advance. The `tokens` command can also print a
// bad token in place, next to its neighbours, and keep going.
type Lexer struct {
	// source is the complete program text. Programs are small, and
	// holding the whole text makes lookahead a slice index.
	source string

	// filename is copied into every Position. It is never opened.
	filename string

	// start is the byte offset of the token being scanned. The token's
	// lexeme is source[start:current].
	start int

	// current is the byte offset of the next unread byte.
	current int

	// line is the current line number, starting at 1.
	line int

	// lineStart is the byte offset where the current line begins.
	//
	// DESIGN CHOICE: Columns are computed from lineStart when a token is
	// made, counting runes rather than bytes, so a multi-byte character
	// earlier on the line still counts as one column.
	lineStart int
}

// New creates a lexer over source. filename only appears in positions.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1, // Lines are 1-based
	}
}

// Tokenize scans the whole source, including the final TokenEOF.
func Tokenize(source, filename string) []Token {
	l := New(source, filename)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken returns the next token.
//
// This is the main entry point for consuming tokens. The parser calls it
// repeatedly until it sees TokenEOF, and after the input is exhausted
// every further call returns TokenEOF again.
//
// Malformed input yields a TokenError carrying a message rather than
// stopping the lexer. The next call resumes after the bad lexeme.
func (l *Lexer) NextToken() Token {
	// Blanks and comments never produce tokens.
	l.skipBlanks()

	// Mark the start of this token.
	l.start = l.current

	if l.isAtEnd() {
		return l.makeToken(TokenEOF)
	}

	ch := l.advance()

	// Words and numbers have open-ended lexemes, so they get their own
	// scanners. Everything else is decided by the first character.
	if isLetter(ch) {
		return l.scanWord()
	}
	if isDigit(ch) || ch == '.' {
		return l.scanNumber()
	}

	switch ch {
	case '\n':
		// The newline token belongs to the line it ends.
		tok := l.makeToken(TokenNewline)
		l.line++
		l.lineStart = l.current
		return tok
	case '\'':
		return l.scanChar()
	case '"':
		return l.scanString()
	case '[':
		return l.scanEscape()

	case '+':
		return l.makeToken(TokenPlus)
	case '-':
		return l.makeToken(TokenMinus)
	case '*':
		return l.makeToken(TokenStar)
	case '/':
		return l.makeToken(TokenSlash)
	case '%':
		return l.makeToken(TokenPercent)
	case '>':
		if l.match('=') {
			return l.makeToken(TokenGreaterEqual)
		}
		return l.makeToken(TokenGreater)
	case '<':
		if l.match('=') {
			return l.makeToken(TokenLessEqual)
		}
		if l.match('>') {
			return l.makeToken(TokenNotEqual)
		}
		return l.makeToken(TokenLess)
	case '=':
		if l.match('=') {
			return l.makeToken(TokenEqual)
		}
		return l.makeToken(TokenAssign)

	case '$':
		return l.makeToken(TokenDollar)
	case '&':
		return l.makeToken(TokenAmpersand)
	case '(':
		return l.makeToken(TokenLeftParen)
	case ')':
		return l.makeToken(TokenRightParen)
	case ',':
		return l.makeToken(TokenComma)
	case ':':
		return l.makeToken(TokenColon)
	}

	return l.errorToken(fmt.Sprintf("Unknown symbol '%c'.", ch))
}

// skipBlanks skips spaces, tabs, carriage returns and '#' comments. The
// newline ending a comment is left for NextToken.
func (l *Lexer) skipBlanks() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '#':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanWord() Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	tt, msg := LookupWord(l.text())
	if tt == TokenError {
		return l.errorToken(msg)
	}
	return l.makeToken(tt)
}

// scanNumber scans a maximal run of digits and dots.
func (l *Lexer) scanNumber() Token {
	for isDigit(l.peek()) || l.peek() == '.' {
		l.advance()
	}

	text := l.text()
	switch {
	case intPattern.MatchString(text):
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return l.errorToken("Invalid Number.")
		}
		return l.literalToken(TokenIntLiteral, types.IntValue(n))
	case floatPattern.MatchString(text):
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorToken("Invalid Number.")
		}
		return l.literalToken(TokenFloatLiteral, types.FloatValue(f))
	}
	return l.errorToken("Invalid Number.")
}

// scanChar scans a character literal: 'c' or '[c]' for the characters in
// charEscapes. The opening quote has been consumed.
func (l *Lexer) scanChar() Token {
	rest := l.source[l.current:]

	if len(rest) >= 4 && rest[0] == '[' && rest[2] == ']' && rest[3] == '\'' &&
		strings.IndexByte(charEscapes, rest[1]) >= 0 {
		c := rune(rest[1])
		l.current += 4
		return l.literalToken(TokenCharLiteral, types.CharValue(c))
	}

	c := l.peek()
	if !l.isAtEnd() && c != '\n' && l.peekNext() == '\'' && !strings.ContainsRune(charEscapes, c) {
		l.advance()
		l.advance()
		return l.literalToken(TokenCharLiteral, types.CharValue(c))
	}

	for !l.isAtEnd() && !unicode.IsSpace(l.peek()) {
		if l.advance() == '\'' {
			break
		}
	}
	return l.errorToken("Invalid CHAR literal.")
}

// scanString scans a double-quoted literal on a single line. "TRUE" and
// "FALSE" are boolean literals, anything else is a string literal.
func (l *Lexer) scanString() Token {
	for !l.isAtEnd() && l.peek() != '"' && l.peek() != '\n' {
		l.advance()
	}

	if l.isAtEnd() || l.peek() == '\n' {
		if text := l.text(); strings.Contains(text, "TRUE") || strings.Contains(text, "FALSE") {
			return l.errorToken("Invalid BOOL literal.")
		}
		return l.errorToken("Invalid STRING literal.")
	}
	l.advance()

	text := l.text()
	content := text[1 : len(text)-1]
	switch content {
	case "TRUE":
		return l.literalToken(TokenBoolLiteral, types.BoolValue(true))
	case "FALSE":
		return l.literalToken(TokenBoolLiteral, types.BoolValue(false))
	}
	return l.literalToken(TokenStringLiteral, types.StringValue(content))
}

// scanEscape scans a bracket escape up to the next whitespace. Only the
// exact forms [[] []] [&] [$] [#] are valid.
func (l *Lexer) scanEscape() Token {
	for !l.isAtEnd() && !unicode.IsSpace(l.peek()) {
		l.advance()
	}

	text := l.text()
	if len(text) == 3 && text[2] == ']' && strings.IndexByte(escapeCodes, text[1]) >= 0 {
		return l.literalToken(TokenEscape, types.CharValue(rune(text[1])))
	}
	return l.errorToken(fmt.Sprintf("Invalid '%s' as escape sequence.", text))
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return ch
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected || l.isAtEnd() {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) text() string {
	return l.source[l.start:l.current]
}

func (l *Lexer) makeToken(tt TokenType) Token {
	return Token{
		Type:     tt,
		Lexeme:   l.text(),
		Position: l.position(),
		Length:   l.current - l.start,
	}
}

func (l *Lexer) literalToken(tt TokenType, v types.Value) Token {
	tok := l.makeToken(tt)
	tok.Literal = v
	return tok
}

func (l *Lexer) errorToken(message string) Token {
	tok := l.makeToken(TokenError)
	tok.Message = message
	return tok
}

// position returns the position of the token being scanned.
func (l *Lexer) position() Position {
	return Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   utf8.RuneCountInString(l.source[l.lineStart:l.start]) + 1,
		Offset:   l.start,
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
