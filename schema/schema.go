// Package schema holds the in-memory model of a cfgopt schema: the
// application, its flags and its positionals.
//
// A schema is decoded once (Decode/Load), checked once (Validate, which may
// append the synthetic help flag) and then handed to a generator. Declaration
// order of flags and positionals is preserved end to end.
package schema

import (
	"unicode"
	"unicode/utf8"

	"github.com/teranos/cfgopt/errors"
)

// DefaultFile is the schema file name used when none is given
const DefaultFile = "cfgopt.toml"

// NoShort is the sentinel for a flag without a short form
const NoShort Short = 0

// Short is the optional single-character form of a flag
type Short rune

// IsSet reports whether the flag has a short form
func (s Short) IsSet() bool {
	return s != NoShort
}

// String returns the character as a string, or "" for NoShort
func (s Short) String() string {
	if !s.IsSet() {
		return ""
	}
	return string(rune(s))
}

// MarshalText implements encoding.TextMarshaler
func (s Short) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The text must be exactly one character that is neither whitespace nor '-'.
func (s *Short) UnmarshalText(text []byte) error {
	r, size := utf8.DecodeRune(text)
	if len(text) == 0 || size != len(text) || r == utf8.RuneError {
		return errors.Newf("short must be a single character, got %q", string(text))
	}
	if unicode.IsSpace(r) || r == '-' || r == 0 {
		return errors.Newf("short cannot be %q", string(text))
	}
	*s = Short(r)
	return nil
}

// Flag is a named switch with a value type and cardinality
type Flag struct {
	Name      string    `toml:"name" yaml:"name" json:"name"`
	Type      ValueType `toml:"type" yaml:"type" json:"type"`
	Help      string    `toml:"help" yaml:"help" json:"help"`
	Multiple  bool      `toml:"multiple,omitempty" yaml:"multiple,omitempty" json:"multiple,omitempty"`
	Short     Short     `toml:"short,omitempty" yaml:"short,omitempty" json:"short,omitempty"`
	Default   *string   `toml:"default,omitempty" yaml:"default,omitempty" json:"default,omitempty"`
	ValueName string    `toml:"value_name,omitempty" yaml:"value_name,omitempty" json:"value_name,omitempty"`
	Alias     []string  `toml:"alias,omitempty" yaml:"alias,omitempty" json:"alias,omitempty"`
	Env       string    `toml:"env,omitempty" yaml:"env,omitempty" json:"env,omitempty"`
}

// Cardinality returns Array for multiple flags, Scalar otherwise
func (f *Flag) Cardinality() Cardinality {
	if f.Multiple {
		return Array
	}
	return Scalar
}

// TypeTag returns the canonical tag of the flag's type and cardinality
func (f *Flag) TypeTag() string {
	return TypeTag(f.Type, f.Cardinality())
}

// HasDefault reports whether an explicit default literal was given
func (f *Flag) HasDefault() bool {
	return f.Default != nil
}

// Positional is an argument identified by position. It has no short form,
// no default and no aliases.
type Positional struct {
	Name     string    `toml:"name" yaml:"name" json:"name"`
	Type     ValueType `toml:"type" yaml:"type" json:"type"`
	Help     string    `toml:"help" yaml:"help" json:"help"`
	Multiple bool      `toml:"multiple,omitempty" yaml:"multiple,omitempty" json:"multiple,omitempty"`
}

// Cardinality returns Array for multiple positionals, Scalar otherwise
func (p *Positional) Cardinality() Cardinality {
	if p.Multiple {
		return Array
	}
	return Scalar
}

// TypeTag returns the canonical tag of the positional's type and cardinality
func (p *Positional) TypeTag() string {
	return TypeTag(p.Type, p.Cardinality())
}

// App is the schema root
type App struct {
	Name        string       `toml:"name" yaml:"name" json:"name"`
	Version     string       `toml:"version,omitempty" yaml:"version,omitempty" json:"version,omitempty"`
	About       string       `toml:"about,omitempty" yaml:"about,omitempty" json:"about,omitempty"`
	NoAutoHelp  bool         `toml:"no-auto-help,omitempty" yaml:"no-auto-help,omitempty" json:"no-auto-help,omitempty"`
	Flags       []Flag       `toml:"flags,omitempty" yaml:"flags,omitempty" json:"flags,omitempty"`
	Positionals []Positional `toml:"positionals,omitempty" yaml:"positionals,omitempty" json:"positionals,omitempty"`
}

// AutoHelp reports whether the synthetic help flag applies to this app
func (a *App) AutoHelp() bool {
	return !a.NoAutoHelp
}

// Help flag constants
const (
	HelpName  = "help"
	HelpShort = Short('h')
	HelpText  = "print this help and exit"
)

// HelpFlag returns the synthetic help flag appended by Validate
func HelpFlag() Flag {
	return Flag{
		Name:  HelpName,
		Type:  Boolean,
		Short: HelpShort,
		Help:  HelpText,
	}
}
