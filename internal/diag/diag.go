// Package diag defines the error type raised by every stage of the
// interpreter pipeline.
package diag

import (
	"errors"
	"fmt"

	"github.com/hassan/codeinterp/internal/lexer"
)

// Kind classifies a diagnostic by the stage that raised it.
type Kind int

const (
	Lexical Kind = iota + 1
	Syntax
	Semantic
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Runtime:
		return "runtime"
	}
	return "unknown"
}

// Error is a single fatal diagnostic. Pos is the zero Position when the
// failure has no source location, as with malformed SCAN input.
type Error struct {
	Kind Kind
	Pos  lexer.Position
	Msg  string

	// Incomplete is set when the parser ran out of input while it still
	// expected tokens.
	Incomplete bool
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s error: %s", e.Pos, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

// Errorf builds an Error at pos.
func Errorf(kind Kind, pos lexer.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// IsIncomplete reports whether err means the source ended too early, so
// more input could still make it a valid program.
func IsIncomplete(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Incomplete
}
