// Package parser builds the syntax tree of a CODE program.
//
// PARSING STRATEGY:
// Statements are parsed by recursive descent, one function per grammar
// rule. Binary expressions use precedence climbing over the table in
// precedence.go.
//
// The parser pulls tokens from the lexer one at a time and keeps a single
// token of lookahead. Newlines are real tokens, so a rule that must end a
// line checks for TokenNewline itself.
//
// ERROR HANDLING STRATEGY:
// The first error aborts the parse. failf panics with a bailout value and
// ParseProgram recovers it into a *diag.Error, so grammar functions never
// thread errors through their return values. Any other panic is re-raised.
package parser

import (
	"github.com/hassan/codeinterp/internal/diag"
	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/parser/ast"
	"github.com/hassan/codeinterp/internal/types"
)

// Parser converts a stream of tokens into a syntax tree.
//
// DESIGN CHOICE: The parser reads tokens lazily instead of tokenizing the
// whole source first. Whether some error tokens are really identifiers
// depends on what has been parsed so far (see Reclassify), and only the
// parser knows that at the moment the token arrives.
type Parser struct {
	// lexer is the source of tokens.
	lexer *lexer.Lexer

	// current is the token being examined. It is never a TokenError.
	current lexer.Token

	// previous is the last token consumed.
	previous lexer.Token

	// known records every declared variable name. It only feeds Reclassify,
	// and the semantic analyzer does the real scope checking later.
	known map[string]bool
}

// bailout carries the first diagnostic up to ParseProgram.
type bailout struct {
	err *diag.Error
}

// New creates a parser reading from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{
		lexer: l,
		known: make(map[string]bool),
	}
}

// Parse parses a complete program from source.
func Parse(source, filename string) (*ast.Program, error) {
	return New(lexer.New(source, filename)).ParseProgram()
}

// ParseProgram parses a complete program.
//
// GRAMMAR:
//   program = NEWLINE* "BEGIN" "CODE" NEWLINE* body "END" "CODE" NEWLINE* EOF
//
// Either the program or the error is nil. The error is always a
// *diag.Error, marked Incomplete when the input ran out mid-program.
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()

	p.advance()
	return p.parseBlock(lexer.TokenCode), nil
}

// parseBlock parses a delimited block. keyword is CODE, IF or WHILE.
//
// GRAMMAR:
//   block = "BEGIN" keyword NEWLINE* body "END" keyword NEWLINE*
//   body  = (varDecl NEWLINE+)* (stmt NEWLINE+)*
//
// Each block allows its own leading declarations. Once a non-declaration
// statement has been parsed, a later declaration in the same block is a
// syntax error.
func (p *Parser) parseBlock(keyword lexer.TokenType) *ast.Program {
	p.skipNewlines()
	begin := p.consume(lexer.TokenBegin)
	p.consume(keyword)
	p.skipNewlines()

	prog := &ast.Program{Begin: begin, Keyword: keyword}
	canDeclare := true
	for !p.check(lexer.TokenEnd) {
		prog.Statements = append(prog.Statements, p.parseStatement(&canDeclare))
		p.skipNewlines()
	}

	p.consume(lexer.TokenEnd)
	p.consume(keyword)
	p.skipNewlines()
	if keyword == lexer.TokenCode {
		p.consume(lexer.TokenEOF)
	}
	return prog
}

// parseStatement parses one statement and clears *canDeclare once a
// non-declaration has been seen.
//
// GRAMMAR:
//   stmt = varDecl | assignment | display | scan | if | while
func (p *Parser) parseStatement(canDeclare *bool) ast.Stmt {
	if p.current.Type.IsDataType() {
		if !*canDeclare {
			p.failf(p.current, "Invalid syntax %q. Declarations must come before other statements.", p.current.Lexeme)
		}
		return p.parseVarDecl()
	}
	*canDeclare = false

	switch p.current.Type {
	case lexer.TokenIdentifier:
		return p.parseAssignment()
	case lexer.TokenDisplay:
		return p.parseDisplay()
	case lexer.TokenScan:
		return p.parseScan()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenEOF:
		p.failf(p.current, "Missing End Statement.")
	}
	p.failf(p.current, "Invalid syntax %q.", p.current.Lexeme)
	return nil
}

// parseVarDecl parses a declaration of one or more variables.
//
// GRAMMAR:
//   varDecl = type binding ("," binding)*
//   binding = IDENT ("=" expr)?
//   type    = "INT" | "FLOAT" | "CHAR" | "BOOL"
func (p *Parser) parseVarDecl() *ast.VarDecl {
	typeTok := p.current
	p.advance()

	decl := &ast.VarDecl{TypeToken: typeTok, Type: typeTok.Type.DataType()}
	for {
		name := p.consume(lexer.TokenIdentifier)
		p.known[name.Lexeme] = true

		binding := &ast.Binding{Name: name}
		if p.match(lexer.TokenAssign) {
			binding.Init = p.parseExpression()
		}
		decl.Bindings = append(decl.Bindings, binding)

		if !p.match(lexer.TokenComma) {
			return decl
		}
	}
}

// parseAssignment parses a possibly chained assignment.
//
// GRAMMAR:
//   assignment = IDENT "=" (IDENT "=")* expr
//
// The grammar is not LL(1) as written, so the parser reads a full
// expression after each "=". If another "=" follows, that expression must
// have been a bare identifier and becomes the next target.
func (p *Parser) parseAssignment() *ast.AssignStmt {
	target := p.consume(lexer.TokenIdentifier)
	eq := p.consume(lexer.TokenAssign)

	stmt := &ast.AssignStmt{
		Targets: []lexer.Token{target},
		Assigns: []lexer.Token{eq},
	}

	value := p.parseExpression()
	for p.check(lexer.TokenAssign) {
		ident, ok := value.(*ast.IdentExpr)
		if !ok {
			p.failf(p.current, "Invalid assignment target %s.", value)
		}
		stmt.Targets = append(stmt.Targets, ident.Token)
		stmt.Assigns = append(stmt.Assigns, p.current)
		p.advance()
		value = p.parseExpression()
	}
	stmt.Value = value
	return stmt
}

// parseDisplay parses an output statement.
//
// GRAMMAR:
//   display = "DISPLAY" ":" part ("&" part)* NEWLINE
//   part    = "$" | expr
//
// The trailing newline is checked but not consumed.
func (p *Parser) parseDisplay() *ast.DisplayStmt {
	stmt := &ast.DisplayStmt{Display: p.current}
	p.advance()
	p.consume(lexer.TokenColon)

	stmt.Parts = append(stmt.Parts, p.parseDisplayPart())
	for p.match(lexer.TokenAmpersand) {
		if p.check(lexer.TokenNewline) {
			p.unexpected("expression")
		}
		stmt.Parts = append(stmt.Parts, p.parseDisplayPart())
	}

	if !p.check(lexer.TokenNewline) {
		p.unexpected(lexer.TokenNewline.String())
	}
	return stmt
}

func (p *Parser) parseDisplayPart() ast.Expr {
	if p.check(lexer.TokenDollar) {
		tok := p.current
		p.advance()
		return &ast.LiteralExpr{Token: tok, Value: types.Newline}
	}
	return p.parseExpression()
}

// parseScan parses an input statement.
//
// GRAMMAR:
//   scan = "SCAN" ":" IDENT ("," IDENT)*
func (p *Parser) parseScan() *ast.ScanStmt {
	stmt := &ast.ScanStmt{Scan: p.current}
	p.advance()
	p.consume(lexer.TokenColon)

	stmt.Names = append(stmt.Names, p.consume(lexer.TokenIdentifier))
	for p.match(lexer.TokenComma) {
		stmt.Names = append(stmt.Names, p.consume(lexer.TokenIdentifier))
	}
	return stmt
}

// parseIf parses an IF statement with any ELSE IF arms and an optional
// final ELSE.
//
// GRAMMAR:
//   if = "IF" condition block(IF) ("ELSE" "IF" condition block(IF))*
//        ("ELSE" block(IF))?
func (p *Parser) parseIf() *ast.IfStmt {
	ifTok := p.current
	p.advance()

	stmt := &ast.IfStmt{}
	cond := p.parseCondition()
	stmt.Branches = append(stmt.Branches, &ast.Branch{
		Token: ifTok,
		Cond:  cond,
		Body:  p.parseBlock(lexer.TokenIf),
	})

	for p.check(lexer.TokenElse) {
		elseTok := p.current
		if stmt.Branches[len(stmt.Branches)-1].IsElse() {
			p.failf(elseTok, "Invalid syntax %q. ELSE must be the last branch.", elseTok.Lexeme)
		}
		p.advance()

		branch := &ast.Branch{Token: elseTok}
		if p.match(lexer.TokenIf) {
			branch.Cond = p.parseCondition()
		}
		branch.Body = p.parseBlock(lexer.TokenIf)
		stmt.Branches = append(stmt.Branches, branch)
	}
	return stmt
}

// GRAMMAR:
//   while = "WHILE" condition block(WHILE)
func (p *Parser) parseWhile() *ast.WhileStmt {
	whileTok := p.current
	p.advance()

	cond := p.parseCondition()
	return &ast.WhileStmt{
		While: whileTok,
		Cond:  cond,
		Body:  p.parseBlock(lexer.TokenWhile),
	}
}

// parseCondition parses the parenthesized condition of IF and WHILE.
//
// GRAMMAR:
//   condition = "(" expr ")"
func (p *Parser) parseCondition() ast.Expr {
	lparen := p.consume(lexer.TokenLeftParen)
	inner := p.parseExpression()
	p.consume(lexer.TokenRightParen)
	return &ast.ParenExpr{Lparen: lparen, Inner: inner}
}

// parseExpression parses an operand followed by any chain of binary
// operators.
//
// GRAMMAR:
//   expr = ESCAPE | operand (binop operand)*
//
// An escape code stands alone and never starts a binary expression.
func (p *Parser) parseExpression() ast.Expr {
	if p.check(lexer.TokenEscape) {
		return p.parseOperand()
	}
	return p.parseBinary(p.parseOperand(), PrecOr)
}

// parseBinary folds operators of precedence >= minPrec onto left.
//
// GRAMMAR:
//   binary = operand (binop operand)*
//   binop  = "OR" | "AND" | "<" | "<=" | ">" | ">=" | "==" | "<>"
//          | "+" | "-" | "%" | "*" | "/"
//
// This is precedence climbing. After each right operand, operators that
// bind tighter than the one just consumed are folded into that operand
// first. Equal precedences fold left, so "a - b - c" is "(a - b) - c".
//
// DESIGN CHOICE: Precedence climbing rather than one function per level.
// CODE has six levels, and a table lookup keeps them in one place
// (precedence.go) instead of six nearly identical functions.
func (p *Parser) parseBinary(left ast.Expr, minPrec Precedence) ast.Expr {
	for prec := getPrecedence(p.current.Type); prec != PrecNone && prec >= minPrec; prec = getPrecedence(p.current.Type) {
		op := p.current
		p.advance()

		right := p.parseOperand()
		for next := getPrecedence(p.current.Type); next > prec; next = getPrecedence(p.current.Type) {
			right = p.parseBinary(right, next)
		}
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

// parseOperand parses a literal, identifier, parenthesized expression or a
// unary operator applied to another operand.
//
// GRAMMAR:
//   operand = IDENT | literal | "(" expr ")" | ("+" | "-" | "NOT") operand
func (p *Parser) parseOperand() ast.Expr {
	tok := p.current

	switch tok.Type {
	case lexer.TokenIdentifier:
		p.advance()
		return &ast.IdentExpr{Token: tok}

	case lexer.TokenIntLiteral, lexer.TokenFloatLiteral, lexer.TokenCharLiteral,
		lexer.TokenBoolLiteral, lexer.TokenStringLiteral, lexer.TokenEscape:
		p.advance()
		return &ast.LiteralExpr{Token: tok, Value: tok.Literal}

	case lexer.TokenLeftParen:
		p.advance()
		inner := p.parseExpression()
		p.consume(lexer.TokenRightParen)
		return &ast.ParenExpr{Lparen: tok, Inner: inner}

	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenNot:
		p.advance()
		return &ast.UnaryExpr{Operator: tok, Operand: p.parseOperand()}
	}

	p.unexpected("expression")
	return nil
}

// Helper methods

// advance moves to the next token. Error tokens that Reclassify cannot turn
// into identifiers are fatal.
func (p *Parser) advance() {
	p.previous = p.current

	tok := p.lexer.NextToken()
	if tok.Type == lexer.TokenError {
		var ok bool
		if tok, ok = Reclassify(tok, p.previous.Type, p.known); !ok {
			panic(bailout{diag.Errorf(diag.Lexical, tok.Position, "%s", tok.Message)})
		}
	}
	p.current = tok
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) match(tokenType lexer.TokenType) bool {
	if !p.check(tokenType) {
		return false
	}
	p.advance()
	return true
}

// consume returns the current token and advances if it has type
// tokenType, and fails otherwise.
func (p *Parser) consume(tokenType lexer.TokenType) lexer.Token {
	if !p.check(tokenType) {
		p.unexpected(tokenType.String())
	}
	tok := p.current
	if tokenType != lexer.TokenEOF {
		p.advance()
	}
	return tok
}

func (p *Parser) skipNewlines() {
	for p.check(lexer.TokenNewline) {
		p.advance()
	}
}

func (p *Parser) unexpected(expected string) {
	p.failf(p.current, "Unexpected %s token expected %s.", p.current.Type, expected)
}

// failf aborts the parse with a syntax error at tok. Errors raised at the
// end of the input are marked incomplete.
func (p *Parser) failf(tok lexer.Token, format string, args ...interface{}) {
	err := diag.Errorf(diag.Syntax, tok.Position, format, args...)
	err.Incomplete = tok.Type == lexer.TokenEOF
	panic(bailout{err})
}
