package symtab

import (
	"fmt"
	"strings"

	"github.com/hassan/codeinterp/internal/types"
)

// Table maps variable names to symbols. Entries are never removed.
//
// DESIGN CHOICE: One flat table rather than a chain of scopes. A CODE
// variable declared inside an IF or WHILE body stays visible after the
// body ends, so nested scopes would only have to be flattened again on
// every lookup.
type Table struct {
	// symbols indexes the table by name. Names are case-sensitive.
	symbols map[string]*Symbol

	// order keeps the symbols in declaration order for Symbols and
	// String.
	order []*Symbol
}

// New returns an empty table.
func New() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// Define adds sym. It fails if the name is already declared.
func (t *Table) Define(sym *Symbol) error {
	if existing, ok := t.symbols[sym.Name]; ok {
		return fmt.Errorf("symbol %s already declared at %s", sym.Name, existing.Pos)
	}
	t.symbols[sym.Name] = sym
	t.order = append(t.order, sym)
	return nil
}

// Lookup returns the symbol named name, or nil.
func (t *Table) Lookup(name string) *Symbol {
	return t.symbols[name]
}

// Contains reports whether name is declared.
func (t *Table) Contains(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

// Set stores v in the variable named name, converting it to the variable's
// declared type. The declared type itself never changes.
func (t *Table) Set(name string, v types.Value) error {
	sym, ok := t.symbols[name]
	if !ok {
		return fmt.Errorf("symbol %s is not declared", name)
	}
	if !types.Assignable(v.Type, sym.Type) {
		return fmt.Errorf("cannot store %s in %s %s", v.Type, sym.Type, name)
	}
	sym.Value = v.Convert(sym.Type)
	return nil
}

// Len returns the number of declared variables.
func (t *Table) Len() int {
	return len(t.order)
}

// Symbols returns the declared symbols in declaration order.
func (t *Table) Symbols() []*Symbol {
	out := make([]*Symbol, len(t.order))
	copy(out, t.order)
	return out
}

// String renders one symbol per line, in declaration order.
func (t *Table) String() string {
	var b strings.Builder
	for _, sym := range t.order {
		b.WriteString(sym.String())
		b.WriteByte('\n')
	}
	return b.String()
}
