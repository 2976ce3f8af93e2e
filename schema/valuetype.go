package schema

import (
	"strings"

	"github.com/teranos/cfgopt/errors"
)

// ValueType is the closed set of value types a flag or positional can hold.
// The zero value means "not set" and never survives decoding.
type ValueType int

const (
	Boolean ValueType = iota + 1
	Int64
	Float64
	String
)

// ValueTypes lists every ValueType in declaration order
func ValueTypes() []ValueType {
	return []ValueType{Boolean, Int64, Float64, String}
}

// String returns the schema spelling of the type ("boolean", "int64", ...)
func (t ValueType) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case String:
		return "string"
	}
	return ""
}

// Valid reports whether t is one of the four value types
func (t ValueType) Valid() bool {
	return t.String() != ""
}

// ParseValueType parses the schema spelling of a value type
func ParseValueType(s string) (ValueType, error) {
	for _, t := range ValueTypes() {
		if s == t.String() {
			return t, nil
		}
	}
	names := make([]string, 0, 4)
	for _, t := range ValueTypes() {
		names = append(names, t.String())
	}
	return 0, errors.Newf("unknown type %q (supported: %s)", s, strings.Join(names, ", "))
}

// MarshalText implements encoding.TextMarshaler
func (t ValueType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Newf("invalid value type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ValueType) UnmarshalText(text []byte) error {
	parsed, err := ParseValueType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Cardinality distinguishes a single value from repeated values
type Cardinality int

const (
	Scalar Cardinality = iota
	Array
)

// String returns "scalar" or "array"
func (c Cardinality) String() string {
	if c == Array {
		return "array"
	}
	return "scalar"
}

// TypeTag returns the canonical lowercase tag for a (type, cardinality) pair,
// e.g. "int64" or "int64_array". Generators use it to name dispatch functions.
func TypeTag(t ValueType, c Cardinality) string {
	if c == Array {
		return t.String() + "_array"
	}
	return t.String()
}
