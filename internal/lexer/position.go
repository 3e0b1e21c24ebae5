// Package lexer turns CODE source text into a lazy stream of tokens.
package lexer

import "strconv"

// Position is a location in the source. Line and Column are 1-based, Column
// counts runes. Offset is the 0-based byte offset.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

// String formats the position as "file:line:col", or "line:col" when the
// source has no file name.
func (p Position) String() string {
	lc := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.Filename == "" {
		return lc
	}
	return p.Filename + ":" + lc
}

// IsValid reports whether the position points into a source.
func (p Position) IsValid() bool {
	return p.Line > 0
}
