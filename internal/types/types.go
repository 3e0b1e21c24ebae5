// Package types defines the data types of the CODE language and the rules
// that relate them.
//
// There are four user-declarable scalar types (INT, FLOAT, CHAR, BOOL) and an
// internal String type that only string literals and the "$" line terminator
// carry. Types are plain enum values; there are no composite types.
package types

// DataType identifies the type of a declared variable, an expression or a
// runtime value.
type DataType int

const (
	// Invalid is the zero value and never describes a well-typed expression.
	Invalid DataType = iota
	Int
	Float
	Char
	Bool
	String
)

var dataTypeNames = [...]string{
	Invalid: "Invalid",
	Int:     "Int",
	Float:   "Float",
	Char:    "Char",
	Bool:    "Bool",
	String:  "String",
}

// String returns the name used for the type in diagnostics.
func (t DataType) String() string {
	if t < 0 || int(t) >= len(dataTypeNames) {
		return "Invalid"
	}
	return dataTypeNames[t]
}

// IsNumeric reports whether t takes part in arithmetic.
func (t DataType) IsNumeric() bool {
	return t == Int || t == Float
}

// Compatible reports whether values of type a and b may be combined by a
// binary operator. Int and Float are mutually compatible; every other pair
// must match exactly.
func Compatible(a, b DataType) bool {
	if a == Invalid || b == Invalid {
		return false
	}
	if a.IsNumeric() && b.IsNumeric() {
		return true
	}
	return a == b
}

// Assignable reports whether a value of type value may be stored in a
// variable declared as target. An Int value widens into a Float variable;
// the reverse narrowing is rejected.
func Assignable(value, target DataType) bool {
	if value == Invalid || target == Invalid {
		return false
	}
	if value == target {
		return true
	}
	return value == Int && target == Float
}

// Wider returns the result type of an arithmetic operator applied to a and
// b: Float if either side is Float, otherwise a.
func Wider(a, b DataType) DataType {
	if a == Float || b == Float {
		return Float
	}
	return a
}
