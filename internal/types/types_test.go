package types

import (
	"math"
	"testing"
)

func TestDataType_String(t *testing.T) {
	tests := []struct {
		typ  DataType
		want string
	}{
		{Int, "Int"},
		{Float, "Float"},
		{Char, "Char"},
		{Bool, "Bool"},
		{String, "String"},
		{Invalid, "Invalid"},
		{DataType(42), "Invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("DataType.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b DataType
		want bool
	}{
		{"int int", Int, Int, true},
		{"int float", Int, Float, true},
		{"float int", Float, Int, true},
		{"char char", Char, Char, true},
		{"bool bool", Bool, Bool, true},
		{"string string", String, String, true},
		{"int char", Int, Char, false},
		{"bool string", Bool, String, false},
		{"float bool", Float, Bool, false},
		{"invalid invalid", Invalid, Invalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.a, tt.b); got != tt.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAssignable(t *testing.T) {
	tests := []struct {
		name          string
		value, target DataType
		want          bool
	}{
		{"int to int", Int, Int, true},
		{"int to float", Int, Float, true},
		{"float to int", Float, Int, false},
		{"char to char", Char, Char, true},
		{"string to char", String, Char, false},
		{"bool to bool", Bool, Bool, true},
		{"int to bool", Int, Bool, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assignable(tt.value, tt.target); got != tt.want {
				t.Errorf("Assignable(%s, %s) = %v, want %v", tt.value, tt.target, got, tt.want)
			}
		})
	}
}

func TestWider(t *testing.T) {
	if got := Wider(Int, Float); got != Float {
		t.Errorf("Wider(Int, Float) = %s, want Float", got)
	}
	if got := Wider(Float, Int); got != Float {
		t.Errorf("Wider(Float, Int) = %s, want Float", got)
	}
	if got := Wider(Int, Int); got != Int {
		t.Errorf("Wider(Int, Int) = %s, want Int", got)
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", IntValue(42), "42"},
		{"negative int", IntValue(-7), "-7"},
		{"float", FloatValue(3.25), "3.25"},
		{"integral float", FloatValue(5), "5.0"},
		{"infinity", FloatValue(math.Inf(1)), "+Inf"},
		{"char", CharValue('x'), "x"},
		{"true", BoolValue(true), "TRUE"},
		{"false", BoolValue(false), "FALSE"},
		{"string", StringValue("Val: "), "Val: "},
		{"newline", Newline, "\n"},
		{"absent", Value{}, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("Value.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Convert(t *testing.T) {
	got := IntValue(5).Convert(Float)
	if got.Type != Float || got.Float() != 5.0 {
		t.Errorf("IntValue(5).Convert(Float) = %#v, want Float(5.0)", got)
	}

	same := CharValue('a').Convert(Char)
	if same.Type != Char || same.Char() != 'a' {
		t.Errorf("CharValue('a').Convert(Char) = %#v, want Char(a)", same)
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints", IntValue(3), IntValue(3), true},
		{"int float", IntValue(3), FloatValue(3), true},
		{"different ints", IntValue(3), IntValue(4), false},
		{"chars", CharValue('a'), CharValue('a'), true},
		{"bools", BoolValue(true), BoolValue(false), false},
		{"strings", StringValue("a"), StringValue("a"), true},
		{"mixed", StringValue("a"), CharValue('a'), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%#v.Equal(%#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
