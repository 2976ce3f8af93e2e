package schema

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/cfgopt/errors"
)

// Format is a schema text format
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json" // output only
)

// FormatFromPath picks the format from a file extension; anything that is
// not .yaml/.yml is treated as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads and decodes the schema at path. "-" reads from stdin.
func Load(path string) (*App, error) {
	if path == "" {
		path = DefaultFile
	}

	data, err := Read(path, os.Stdin)
	if err != nil {
		return nil, err
	}

	app, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return app, nil
}

// Read returns the raw schema text at path, or everything on stdin when
// path is "-". Failures are ErrSourceUnavailable.
func Read(path string, stdin io.Reader) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		if stdin == nil {
			return nil, errors.WrapSourceUnavailable(errors.New("no stdin"), path)
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.WrapSourceUnavailable(err, path)
	}
	return data, nil
}

// Decode strictly decodes schema text. Unknown keys, unknown types and
// missing required keys are all ErrSchemaMalformed.
func Decode(data []byte, format Format) (*App, error) {
	var app App
	var err error

	switch format {
	case FormatTOML, "":
		err = decodeTOML(data, &app)
	case FormatYAML:
		err = decodeYAML(data, &app)
	default:
		return nil, errors.NewSchemaMalformedError("unsupported schema format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if err := checkRequired(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

func decodeTOML(data []byte, app *App) error {
	md, err := toml.Decode(string(data), app)
	if err != nil {
		malformed := errors.Mark(errors.Wrap(err, "schema malformed"), errors.ErrSchemaMalformed)
		var perr toml.ParseError
		if errors.As(err, &perr) {
			malformed = errors.WithDetail(malformed, perr.ErrorWithPosition())
		}
		return malformed
	}

	// The decoder matches keys case-insensitively; "Help" fills Help but is
	// still not a key of the schema.
	var unknown []string
	for _, k := range md.Keys() {
		if !knownKey(k) {
			unknown = append(unknown, k.String())
		}
	}
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		unknown = slices.Compact(unknown)
		return errors.WithHint(
			errors.NewSchemaMalformedError("unknown key(s): %s", strings.Join(unknown, ", ")),
			"check the key spelling; keys are case-sensitive and unknown keys are rejected")
	}
	return nil
}

var (
	rootKeys       = tomlKeys(App{})
	flagKeys       = tomlKeys(Flag{})
	positionalKeys = tomlKeys(Positional{})
)

// knownKey reports whether every component of k is spelled exactly as a
// toml tag at its level. Array tables show up without an index.
func knownKey(k toml.Key) bool {
	switch len(k) {
	case 1:
		return rootKeys[k[0]]
	case 2:
		switch k[0] {
		case "flags":
			return flagKeys[k[1]]
		case "positionals":
			return positionalKeys[k[1]]
		}
	}
	return false
}

// tomlKeys collects the toml tag names of a struct's fields
func tomlKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("toml"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

func decodeYAML(data []byte, app *App) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(app); err != nil {
		if err == io.EOF {
			return errors.NewSchemaMalformedError("empty schema")
		}
		return errors.Mark(errors.Wrap(err, "schema malformed"), errors.ErrSchemaMalformed)
	}
	return nil
}

// checkRequired enforces the keys the schema cannot omit
func checkRequired(app *App) error {
	if app.Name == "" {
		return errors.NewSchemaMalformedError("missing required key %q", "name")
	}
	if !isIdentifier(app.Name) {
		return errors.NewSchemaMalformedError("app name %q is not an identifier", app.Name)
	}

	for i := range app.Flags {
		f := &app.Flags[i]
		where := entityRef("flags", i, f.Name)
		if err := requireEntity(where, f.Name, f.Type, f.Help); err != nil {
			return err
		}
		if f.Default != nil && strings.TrimSpace(*f.Default) == "" {
			return errors.WithHint(
				errors.NewSchemaMalformedError("%s: default is empty", where),
				`defaults are C literals; write default = '""' for an empty string or drop the key`)
		}
		for _, alias := range f.Alias {
			if !isIdentifier(alias) {
				return errors.NewSchemaMalformedError("%s: alias %q is not an identifier", where, alias)
			}
		}
	}

	for i := range app.Positionals {
		p := &app.Positionals[i]
		if err := requireEntity(entityRef("positionals", i, p.Name), p.Name, p.Type, p.Help); err != nil {
			return err
		}
	}
	return nil
}

func requireEntity(where, name string, t ValueType, help string) error {
	switch {
	case name == "":
		return errors.NewSchemaMalformedError("%s: missing required key %q", where, "name")
	case !isIdentifier(name):
		return errors.NewSchemaMalformedError("%s: name is not an identifier", where)
	case !t.Valid():
		return errors.NewSchemaMalformedError("%s: missing required key %q", where, "type")
	case help == "":
		return errors.NewSchemaMalformedError("%s: missing required key %q", where, "help")
	}
	return nil
}

func entityRef(list string, i int, name string) string {
	if name == "" {
		return fmt.Sprintf("%s[%d]", list, i)
	}
	return fmt.Sprintf("%s[%d] %q", list, i, name)
}

// isIdentifier accepts letters, digits, '_' and '-', not starting with '-'
func isIdentifier(s string) bool {
	if s == "" || s[0] == '-' {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r == '-' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')) {
			return false
		}
	}
	return true
}
