package c

import (
	"strings"

	"github.com/teranos/cfgopt/errors"
	"github.com/teranos/cfgopt/schema"
)

// ScalarType returns the C type holding one value of t
func ScalarType(t schema.ValueType) string {
	switch t {
	case schema.Boolean:
		return "bool"
	case schema.Int64:
		return "int64_t"
	case schema.Float64:
		return "double"
	case schema.String:
		return "char const *"
	}
	panic(errors.AssertionFailedf("unhandled value type %d", int(t)))
}

// ArrayType returns the aggregate type holding repeated values of t.
// There is one aggregate per value type, declared in cfgopt.h.
func ArrayType(t schema.ValueType) string {
	return "struct cfgopt_" + t.String() + "_array"
}

// StorageType returns the C storage type for a (type, cardinality) pair
func StorageType(t schema.ValueType, card schema.Cardinality) string {
	if card == schema.Array {
		return ArrayType(t)
	}
	return ScalarType(t)
}

// ZeroLiteral returns the value a field gets when no default is given.
// Arrays have no zero literal and always go through cfgopt_array_init.
func ZeroLiteral(t schema.ValueType, card schema.Cardinality) string {
	if card == schema.Array {
		return "cfgopt_array_init(" + ArrayType(t) + ")"
	}
	switch t {
	case schema.Boolean:
		return "false"
	case schema.Int64:
		return "0"
	case schema.Float64:
		return "0.0"
	case schema.String:
		return "NULL"
	}
	panic(errors.AssertionFailedf("unhandled value type %d", int(t)))
}

// DefaultLiteral returns the explicit default verbatim when present,
// otherwise the zero literal. The explicit default is not checked against t.
func DefaultLiteral(explicit *string, t schema.ValueType, card schema.Cardinality) string {
	if explicit != nil {
		return *explicit
	}
	return ZeroLiteral(t, card)
}

// declare renders a declaration of name with the given C type, keeping
// pointer stars attached to the type ("char const *name")
func declare(ctype, name string) string {
	if len(ctype) > 0 && ctype[len(ctype)-1] == '*' {
		return ctype + name
	}
	return ctype + " " + name
}

// pointerTo returns the C type of a pointer to ctype
func pointerTo(ctype string) string {
	if strings.HasSuffix(ctype, "*") {
		return ctype + "*"
	}
	return ctype + " *"
}
