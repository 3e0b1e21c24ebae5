package eval

import (
	"bufio"
	"context"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/hassan/codeinterp/internal/parser/ast"
	"github.com/hassan/codeinterp/internal/types"
)

// LineReader supplies SCAN with one line of input per call, without the
// line terminator. ReadLine returns ctx.Err() if ctx is done before a line
// is available.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

type lineResult struct {
	line string
	err  error
}

// bufferedLines reads from its source in a background goroutine so that a
// waiting SCAN can be cancelled. A line read while nobody is waiting stays
// queued for the next ReadLine.
type bufferedLines struct {
	r     *bufio.Reader
	once  sync.Once
	lines chan lineResult
	err   error
}

// Lines adapts r to a LineReader. Nothing is read from r until the first
// ReadLine call.
func Lines(r io.Reader) LineReader {
	return &bufferedLines{r: bufio.NewReader(r), lines: make(chan lineResult)}
}

func (b *bufferedLines) ReadLine(ctx context.Context) (string, error) {
	b.once.Do(func() { go b.pump() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-b.lines:
		if !ok {
			return "", b.err
		}
		return res.line, nil
	}
}

// pump delivers lines until the source fails. The final error is kept in
// b.err and reported to every later ReadLine once lines is closed.
func (b *bufferedLines) pump() {
	for {
		line, err := b.r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			b.err = err
			close(b.lines)
			return
		}
		b.lines <- lineResult{line: strings.TrimRight(line, "\r\n")}
	}
}

var (
	inputInt   = regexp.MustCompile(`^[+-]?\d+$`)
	inputFloat = regexp.MustCompile(`^[+-]?\d*\.\d+$`)
	inputChar  = regexp.MustCompile(`^'(?:\[[\[\]&$#']\]|[^\[\]&$#'])'$`)
	inputBool  = regexp.MustCompile(`^"(?:TRUE|FALSE)"$`)
)

// ParseInput reads one SCAN field as a typed value. Fields use the literal
// syntax of the language, with an optional sign on numbers.
func ParseInput(field string) (types.Value, bool) {
	switch {
	case inputInt.MatchString(field):
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return types.Value{}, false
		}
		return types.IntValue(n), true

	case inputFloat.MatchString(field):
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return types.Value{}, false
		}
		return types.FloatValue(f), true

	case inputChar.MatchString(field):
		inner := field[1 : len(field)-1]
		if strings.HasPrefix(inner, "[") && len(inner) == 3 {
			inner = inner[1:2]
		}
		c, _ := utf8.DecodeRuneInString(inner)
		return types.CharValue(c), true

	case inputBool.MatchString(field):
		return types.BoolValue(field == `"TRUE"`), true
	}
	return types.Value{}, false
}

// execScan reads one line, splits it on commas and assigns the fields to
// the named variables in order. Every field is checked before any variable
// changes.
func (e *Evaluator) execScan(ctx context.Context, stmt *ast.ScanStmt) error {
	line, err := e.input.ReadLine(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return e.errorf(stmt.Scan.Position, "Unable to read input: %v", err)
	}

	var fields []string
	if stripped := stripSpace(line); stripped != "" {
		fields = strings.Split(stripped, ",")
	}

	switch {
	case len(fields) < len(stmt.Names):
		return e.errorf(stmt.Scan.Position, "Missing input/s.")
	case len(fields) > len(stmt.Names):
		return e.errorf(stmt.Scan.Position, "Too many input/s.")
	}

	values := make([]types.Value, len(fields))
	for i, field := range fields {
		v, ok := ParseInput(field)
		if !ok {
			return e.errorf(stmt.Scan.Position, "Invalid input %s.", field)
		}

		name := stmt.Names[i]
		sym := e.table.Lookup(name.Lexeme)
		if sym == nil {
			return e.errorf(name.Position, "Variable %q does not exist.", name.Lexeme)
		}
		if !types.Assignable(v.Type, sym.Type) {
			return e.errorf(name.Position, "Unable to assign %s on %q.", v.Type, name.Lexeme)
		}
		values[i] = v
	}

	for i, v := range values {
		if err := e.table.Set(stmt.Names[i].Lexeme, v); err != nil {
			return e.errorf(stmt.Names[i].Position, "%v", err)
		}
	}
	e.logger.Debug("scan", "line", stmt.Scan.Position.Line, "fields", len(values))
	return nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
