// Package symtab provides the variable table shared by the analyzer and the
// evaluator.
//
// CODE has no block scoping: a declaration anywhere in a program, nested
// IF and WHILE bodies included, lands in one flat table that lives for the
// whole run. The analyzer and the evaluator each build their own Table; the
// two are never shared.
package symtab

import (
	"fmt"

	"github.com/hassan/codeinterp/internal/lexer"
	"github.com/hassan/codeinterp/internal/types"
)

// Symbol is a declared variable.
type Symbol struct {
	Name string
	Type types.DataType

	// Value is the current value. The zero Value means the variable has been
	// declared but never assigned. Only the evaluator's table fills it in.
	Value types.Value

	// Pos is where the variable was declared.
	Pos lexer.Position
}

// HasValue reports whether the variable has been assigned.
func (s *Symbol) HasValue() bool {
	return s.Value.IsValid()
}

func (s *Symbol) String() string {
	if !s.HasValue() {
		return fmt.Sprintf("%s %s = <nil>", s.Type, s.Name)
	}
	return fmt.Sprintf("%s %s = %s", s.Type, s.Name, s.Value)
}
