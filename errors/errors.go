// Package errors provides error handling for cfgopt.
//
// This package re-exports github.com/cockroachdb/errors so every stage of the
// generator wraps failures the same way, and defines the error kinds a
// generation run can end with.
//
// Usage:
//
//	// Wrap with the stage that failed
//	if err := schema.Validate(app); err != nil {
//	    return errors.Wrap(err, "validate schema")
//	}
//
//	// Classify
//	if errors.Is(err, errors.ErrDuplicateName) {
//	    // two entries share a name
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions and marking
var (
	AssertionFailedf = crdb.AssertionFailedf
	Mark             = crdb.Mark
)

// Error kinds of a generation run. Every failure returned by the schema,
// typegen and driver packages wraps exactly one of these, so callers can
// classify with errors.Is regardless of how much context was added.
var (
	// ErrSourceUnavailable indicates the schema source could not be read
	ErrSourceUnavailable = New("schema source unavailable")

	// ErrSchemaMalformed indicates the schema text did not parse, carried an
	// unknown key, or missed a required key
	ErrSchemaMalformed = New("schema malformed")

	// ErrDuplicateName indicates two entries collide in the shared name namespace
	ErrDuplicateName = New("duplicate name")

	// ErrOutputUnwritable indicates the destination could not be created or written
	ErrOutputUnwritable = New("output unwritable")

	// ErrUnknownLanguage indicates no generator exists for the requested target
	ErrUnknownLanguage = New("unknown target language")

	// ErrOutOfDate indicates generated files on disk differ from a fresh generation
	ErrOutOfDate = New("generated output is out of date")
)

// IsSourceUnavailable checks if an error is or wraps ErrSourceUnavailable
func IsSourceUnavailable(err error) bool {
	return err != nil && Is(err, ErrSourceUnavailable)
}

// IsSchemaMalformed checks if an error is or wraps ErrSchemaMalformed
func IsSchemaMalformed(err error) bool {
	return err != nil && Is(err, ErrSchemaMalformed)
}

// IsDuplicateName checks if an error is or wraps ErrDuplicateName
func IsDuplicateName(err error) bool {
	return err != nil && Is(err, ErrDuplicateName)
}

// IsOutputUnwritable checks if an error is or wraps ErrOutputUnwritable
func IsOutputUnwritable(err error) bool {
	return err != nil && Is(err, ErrOutputUnwritable)
}

// NewSchemaMalformedError creates a schema-malformed error with a formatted message
func NewSchemaMalformedError(format string, args ...interface{}) error {
	return Wrapf(ErrSchemaMalformed, format, args...)
}

// NewDuplicateNameError creates a duplicate-name error naming the offending entity
func NewDuplicateNameError(kind, name string) error {
	return Wrapf(ErrDuplicateName, "%s %q", kind, name)
}

// WrapSourceUnavailable marks err as a failure to read the schema source
func WrapSourceUnavailable(err error, source string) error {
	return crdb.Mark(Wrapf(err, "schema source unavailable: %s", source), ErrSourceUnavailable)
}

// WrapOutputUnwritable marks err as a failure to write the destination
func WrapOutputUnwritable(err error, destination string) error {
	return crdb.Mark(Wrapf(err, "output unwritable: %s", destination), ErrOutputUnwritable)
}
