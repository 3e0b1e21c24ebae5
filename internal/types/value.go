package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a tagged runtime value. Exactly one payload field is meaningful,
// selected by Type. The zero Value has type Invalid and stands for "no value",
// which is how a declared but unassigned variable is represented.
//
// DESIGN CHOICE: A struct with a type tag rather than an interface with one
// implementation per type. Values are copied on every assignment and
// operator, and a plain struct copies without allocating. Binary operators
// also switch on the pair of operand types, which reads more directly as
// a switch on two tags than as nested type switches.
type Value struct {
	// Type selects the payload. Invalid means no value.
	Type DataType

	// Payloads. They are unexported so a Value can only be built through
	// the constructors below, which keeps Type and payload in agreement.
	i int64
	f float64
	c rune
	b bool
	s string
}

func IntValue(n int64) Value { return Value{Type: Int, i: n} }
func FloatValue(f float64) Value { return Value{Type: Float, f: f} }
func CharValue(c rune) Value { return Value{Type: Char, c: c} }
func BoolValue(b bool) Value { return Value{Type: Bool, b: b} }
func StringValue(s string) Value { return Value{Type: String, s: s} }

// Newline is the value a "$" contributes to a DISPLAY statement.
var Newline = StringValue("\n")

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool { return v.Type != Invalid }

func (v Value) Int() int64 { return v.i }
func (v Value) Char() rune { return v.c }
func (v Value) Bool() bool { return v.b }
func (v Value) Text() string { return v.s }

// Float returns the value as a float64, promoting an Int.
func (v Value) Float() float64 {
	if v.Type == Int {
		return float64(v.i)
	}
	return v.f
}

// Convert returns v as a value of type target, widening an Int to Float.
// Any other combination returns v unchanged; callers check Assignable first.
func (v Value) Convert(target DataType) Value {
	if v.Type == Int && target == Float {
		return FloatValue(float64(v.i))
	}
	return v
}

// Equal reports whether two values are the same. Int and Float compare
// numerically.
func (v Value) Equal(o Value) bool {
	if v.Type.IsNumeric() && o.Type.IsNumeric() {
		if v.Type == Int && o.Type == Int {
			return v.i == o.i
		}
		return v.Float() == o.Float()
	}
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case Char:
		return v.c == o.c
	case Bool:
		return v.b == o.b
	case String:
		return v.s == o.s
	}
	return true
}

// String renders v the way DISPLAY prints it. Booleans print as TRUE and
// FALSE, and integral floats keep a ".0" so they read as floats.
func (v Value) String() string {
	switch v.Type {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if !strings.ContainsAny(s, ".NI") {
			s += ".0"
		}
		return s
	case Char:
		return string(v.c)
	case Bool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case String:
		return v.s
	}
	return "<nil>"
}

// GoString is used by %#v and in test failures.
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%s)", v.Type, v.String())
}
