package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/hassan/codeinterp/internal/diag"
	"github.com/hassan/codeinterp/internal/parser/ast"
	"github.com/hassan/codeinterp/internal/types"
)

func wrap(body string) string {
	return "BEGIN CODE\n" + body + "\nEND CODE"
}

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := Parse(source, "test.code")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return prog
}

func parseError(t *testing.T, source string) *diag.Error {
	t.Helper()
	_, err := Parse(source, "test.code")
	if err == nil {
		t.Fatalf("Parse() succeeded, want error")
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("Parse() error = %T, want *diag.Error", err)
	}
	return de
}

func TestParse_ExpressionShapes(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "([(1 + 2)] * 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"1 - 2 * 3 + 4", "((1 - (2 * 3)) + 4)"},
		{"1 + 2 * 3 - 4", "((1 + (2 * 3)) - 4)"},
		{"1 * 2 + 3 * 4", "((1 * 2) + (3 * 4))"},
		{"10 % 3 * 2", "(10 % (3 * 2))"},
		{"a OR b AND c", "(a OR (b AND c))"},
		{"1 + 2 > 3 AND 4 < 5", "(((1 + 2) > 3) AND (4 < 5))"},
		{"a <> b OR a == b", "((a <> b) OR (a == b))"},
		{"-a + 1", "((-a) + 1)"},
		{"NOT a AND b", "((NOT a) AND b)"},
		{"- -a", "(-(-a))"},
		{"-(a + 1) * 2", "((-[(a + 1)]) * 2)"},
		{"(a) + 1", "([a] + 1)"},
		{"'c'", "'c'"},
		{`"TRUE"`, `"TRUE"`},
		{"2.5", "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			prog := mustParse(t, wrap("INT a, b, c\na = "+tt.expr))
			stmt, ok := prog.Statements[1].(*ast.AssignStmt)
			if !ok {
				t.Fatalf("statement 1 = %T, want *ast.AssignStmt", prog.Statements[1])
			}
			if got := stmt.Value.String(); got != tt.want {
				t.Errorf("parse(%q) = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParse_EmptyProgram(t *testing.T) {
	prog := mustParse(t, "\n\nBEGIN CODE\nEND CODE\n\n")
	if len(prog.Statements) != 0 {
		t.Errorf("len(Statements) = %d, want 0", len(prog.Statements))
	}
}

func TestParse_VarDecl(t *testing.T) {
	prog := mustParse(t, wrap("INT a, b = 5, c\nCHAR d = 'x'"))

	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement 0 = %T, want *ast.VarDecl", prog.Statements[0])
	}
	if decl.Type != types.Int {
		t.Errorf("decl.Type = %v, want Int", decl.Type)
	}

	var names []string
	for _, b := range decl.Bindings {
		names = append(names, b.Name.Lexeme)
	}
	if got := strings.Join(names, ","); got != "a,b,c" {
		t.Errorf("bindings = %s, want a,b,c", got)
	}
	if decl.Bindings[0].Init != nil || decl.Bindings[1].Init == nil || decl.Bindings[2].Init != nil {
		t.Errorf("only b should have an initializer")
	}

	char := prog.Statements[1].(*ast.VarDecl)
	if char.Type != types.Char || char.Bindings[0].Init.String() != "'x'" {
		t.Errorf("second declaration = %v %s", char.Type, char.Bindings[0].Init)
	}
}

func TestParse_ChainedAssignment(t *testing.T) {
	prog := mustParse(t, wrap("INT x, y\nx = y = 4"))

	stmt := prog.Statements[1].(*ast.AssignStmt)
	if len(stmt.Targets) != 2 || stmt.Targets[0].Lexeme != "x" || stmt.Targets[1].Lexeme != "y" {
		t.Errorf("targets = %v, want [x y]", stmt.Targets)
	}
	if len(stmt.Assigns) != len(stmt.Targets) {
		t.Errorf("len(Assigns) = %d, want %d", len(stmt.Assigns), len(stmt.Targets))
	}
	if stmt.Value.String() != "4" {
		t.Errorf("value = %s, want 4", stmt.Value)
	}
}

func TestParse_ChainedAssignmentNeedsIdentifier(t *testing.T) {
	err := parseError(t, wrap("INT x, y\nx = 1 + 2 = 3"))
	if err.Kind != diag.Syntax || !strings.Contains(err.Msg, "Invalid assignment target") {
		t.Errorf("error = %v, want invalid assignment target", err)
	}
}

func TestParse_Display(t *testing.T) {
	prog := mustParse(t, wrap(`INT x
DISPLAY: "Val: " & x & $`))

	stmt := prog.Statements[1].(*ast.DisplayStmt)
	if len(stmt.Parts) != 3 {
		t.Fatalf("len(Parts) = %d, want 3", len(stmt.Parts))
	}
	last, ok := stmt.Parts[2].(*ast.LiteralExpr)
	if !ok || last.Value.Text() != "\n" {
		t.Errorf("last part = %v, want newline literal", stmt.Parts[2])
	}
}

func TestParse_DisplayLeadingDollarAndEscape(t *testing.T) {
	prog := mustParse(t, wrap("DISPLAY: $ & [#] & (1 + 2)"))

	stmt := prog.Statements[0].(*ast.DisplayStmt)
	want := []string{`"\n"`, "'#'", "[(1 + 2)]"}
	for i, part := range stmt.Parts {
		if got := part.String(); got != want[i] {
			t.Errorf("part %d = %s, want %s", i, got, want[i])
		}
	}
}

func TestParse_DisplayErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"dangling ampersand", "INT x\nDISPLAY: x &\n", "Unexpected NEWLINE token expected expression."},
		{"missing newline", "INT x, y\nDISPLAY: x y", "Unexpected IDENTIFIER token expected NEWLINE."},
		{"missing colon", "DISPLAY x", "Unexpected IDENTIFIER token expected :."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, wrap(tt.body))
			if err.Msg != tt.msg {
				t.Errorf("error = %q, want %q", err.Msg, tt.msg)
			}
		})
	}
}

func TestParse_Scan(t *testing.T) {
	prog := mustParse(t, wrap("INT a, b\nSCAN: a, b"))

	stmt := prog.Statements[1].(*ast.ScanStmt)
	if len(stmt.Names) != 2 || stmt.Names[0].Lexeme != "a" || stmt.Names[1].Lexeme != "b" {
		t.Errorf("names = %v, want [a b]", stmt.Names)
	}
}

func TestParse_IfChain(t *testing.T) {
	prog := mustParse(t, wrap(`IF ("FALSE")
BEGIN IF
DISPLAY: 1
END IF
ELSE IF ("FALSE")
BEGIN IF
DISPLAY: 2
END IF
ELSE
BEGIN IF
DISPLAY: 3
END IF`))

	stmt := prog.Statements[0].(*ast.IfStmt)
	if len(stmt.Branches) != 3 {
		t.Fatalf("len(Branches) = %d, want 3", len(stmt.Branches))
	}
	for i, b := range stmt.Branches[:2] {
		if b.IsElse() {
			t.Errorf("branch %d has no condition", i)
		}
		if _, ok := b.Cond.(*ast.ParenExpr); !ok {
			t.Errorf("branch %d condition = %T, want *ast.ParenExpr", i, b.Cond)
		}
	}
	if !stmt.Branches[2].IsElse() {
		t.Errorf("last branch should be ELSE")
	}
	for i, b := range stmt.Branches {
		if len(b.Body.Statements) != 1 {
			t.Errorf("branch %d has %d statements, want 1", i, len(b.Body.Statements))
		}
	}
}

func TestParse_ElseAfterElse(t *testing.T) {
	err := parseError(t, wrap(`IF ("TRUE")
BEGIN IF
END IF
ELSE
BEGIN IF
END IF
ELSE
BEGIN IF
END IF`))
	if err.Kind != diag.Syntax || err.Pos.Line != 8 {
		t.Errorf("error = %v, want syntax error on line 8", err)
	}
}

func TestParse_While(t *testing.T) {
	prog := mustParse(t, wrap(`INT i = 0
WHILE (i < 3)
BEGIN WHILE
i = i + 1
END WHILE`))

	stmt := prog.Statements[1].(*ast.WhileStmt)
	if got := stmt.Cond.String(); got != "[(i < 3)]" {
		t.Errorf("condition = %s, want [(i < 3)]", got)
	}
	if len(stmt.Body.Statements) != 1 {
		t.Errorf("len(Body.Statements) = %d, want 1", len(stmt.Body.Statements))
	}
}

func TestParse_WrongBlockKeyword(t *testing.T) {
	err := parseError(t, wrap(`WHILE ("TRUE")
BEGIN IF
END IF`))
	if err.Msg != "Unexpected IF token expected WHILE." {
		t.Errorf("error = %q", err.Msg)
	}
}

func TestParse_DeclarationsLeadTheBlock(t *testing.T) {
	err := parseError(t, wrap("INT x\nx = 1\nINT y"))
	if err.Kind != diag.Syntax || err.Pos.Line != 4 {
		t.Errorf("error = %v, want syntax error on line 4", err)
	}
}

func TestParse_NestedBlocksMayDeclare(t *testing.T) {
	mustParse(t, wrap(`INT x = 1
DISPLAY: x
IF (x == 1)
BEGIN IF
INT y = 2
DISPLAY: y
END IF`))
}

func TestParse_MissingEnd(t *testing.T) {
	err := parseError(t, "BEGIN CODE\nINT x\n")
	if err.Msg != "Missing End Statement." {
		t.Errorf("error = %q, want Missing End Statement.", err.Msg)
	}
	if !diag.IsIncomplete(err) {
		t.Errorf("IsIncomplete() = false, want true")
	}
}

func TestParse_TrailingInput(t *testing.T) {
	err := parseError(t, "BEGIN CODE\nEND CODE\nx")
	if err.Msg != "Unexpected IDENTIFIER token expected EOF." {
		t.Errorf("error = %q", err.Msg)
	}
	if diag.IsIncomplete(err) {
		t.Errorf("IsIncomplete() = true, want false")
	}
}

func TestParse_InvalidStatement(t *testing.T) {
	err := parseError(t, wrap("INT x\n5 = x"))
	if err.Msg != `Invalid syntax "5".` {
		t.Errorf("error = %q", err.Msg)
	}
}

func TestParse_LexicalErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{"keyword casing", "begin CODE\nEND CODE", "Invalid keyword 'begin' should be BEGIN"},
		{"unknown symbol", wrap("INT x = 5 @"), "Unknown symbol '@'."},
		{"bad char", wrap("CHAR c = 'ab'"), "Invalid CHAR literal."},
		{"undeclared near miss", wrap("INT x\nx = int"), "Invalid data type 'int' should be INT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, tt.source)
			if err.Kind != diag.Lexical || err.Msg != tt.msg {
				t.Errorf("error = %v, want lexical %q", err, tt.msg)
			}
		})
	}
}

func TestParse_ReclassifiedNames(t *testing.T) {
	prog := mustParse(t, wrap("INT int = 5\nint = 6\nDISPLAY: int"))

	decl := prog.Statements[0].(*ast.VarDecl)
	if decl.Bindings[0].Name.Lexeme != "int" {
		t.Errorf("declared name = %q, want int", decl.Bindings[0].Name.Lexeme)
	}
	assign := prog.Statements[1].(*ast.AssignStmt)
	if assign.Targets[0].Lexeme != "int" {
		t.Errorf("assignment target = %q, want int", assign.Targets[0].Lexeme)
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	err := parseError(t, "BEGIN CODE\nINT x\n  x = )\nEND CODE")
	if err.Pos.Line != 3 || err.Pos.Column != 7 {
		t.Errorf("error at %d:%d, want 3:7", err.Pos.Line, err.Pos.Column)
	}
	if got := err.Error(); !strings.HasPrefix(got, "test.code:3:7: syntax error:") {
		t.Errorf("Error() = %q", got)
	}
}
