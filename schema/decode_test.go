package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/cfgopt/errors"
)

func assertDemo(t *testing.T, app *App) {
	t.Helper()

	assert.Equal(t, "demo", app.Name)
	assert.Equal(t, "1.2.0", app.Version)
	assert.Equal(t, "A demo application", app.About)
	assert.False(t, app.NoAutoHelp)

	require.Len(t, app.Flags, 3)
	assert.Equal(t, "verbose", app.Flags[0].Name)
	assert.Equal(t, Boolean, app.Flags[0].Type)
	assert.Equal(t, Short('v'), app.Flags[0].Short)
	assert.False(t, app.Flags[0].HasDefault())

	port := app.Flags[1]
	assert.Equal(t, Int64, port.Type)
	require.True(t, port.HasDefault())
	assert.Equal(t, "8080", *port.Default)
	assert.Equal(t, "PORT", port.ValueName)
	assert.Equal(t, "DEMO_PORT", port.Env)

	tags := app.Flags[2]
	assert.Equal(t, Array, tags.Cardinality())
	assert.Equal(t, "string_array", tags.TypeTag())
	assert.Equal(t, []string{"tag"}, tags.Alias)
	assert.Equal(t, NoShort, tags.Short)

	require.Len(t, app.Positionals, 1)
	assert.Equal(t, "input", app.Positionals[0].Name)
	assert.Equal(t, String, app.Positionals[0].Type)
	assert.Equal(t, Scalar, app.Positionals[0].Cardinality())
}

func TestLoad_TOML(t *testing.T) {
	app, err := Load(filepath.Join("testdata", "demo.toml"))
	require.NoError(t, err)
	assertDemo(t, app)
}

func TestLoad_YAML(t *testing.T) {
	app, err := Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)
	assertDemo(t, app)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
	assert.Contains(t, err.Error(), "nope.toml")
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(`name = "cwd"`), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	app, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cwd", app.Name)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		wantMsg string
	}{
		{
			name:    "unknown root key",
			format:  FormatTOML,
			input:   "name = \"demo\"\ncolour = \"red\"\n",
			wantMsg: "colour",
		},
		{
			name:    "unknown flag key",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"x\"\ntype = \"boolean\"\nhelp = \"x\"\nshrt = \"x\"\n",
			wantMsg: "shrt",
		},
		{
			name:    "unknown positional key",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[positionals]]\nname = \"x\"\ntype = \"string\"\nhelp = \"x\"\ndefault = \"a\"\n",
			wantMsg: "default",
		},
		{
			name:    "syntax error",
			format:  FormatTOML,
			input:   "name = \"demo\n",
			wantMsg: "schema malformed",
		},
		{
			name:    "unknown type",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"x\"\ntype = \"int32\"\nhelp = \"x\"\n",
			wantMsg: "int32",
		},
		{
			name:    "short too long",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"x\"\ntype = \"boolean\"\nhelp = \"x\"\nshort = \"xy\"\n",
			wantMsg: "single character",
		},
		{
			name:    "short dash",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"x\"\ntype = \"boolean\"\nhelp = \"x\"\nshort = \"-\"\n",
			wantMsg: "short cannot be",
		},
		{
			name:    "missing app name",
			format:  FormatTOML,
			input:   "version = \"1\"\n",
			wantMsg: `missing required key "name"`,
		},
		{
			name:    "missing flag type",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"x\"\nhelp = \"x\"\n",
			wantMsg: `flags[0] "x": missing required key "type"`,
		},
		{
			name:    "missing flag help",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"x\"\ntype = \"string\"\n",
			wantMsg: `missing required key "help"`,
		},
		{
			name:    "missing positional name",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[positionals]]\ntype = \"string\"\nhelp = \"x\"\n",
			wantMsg: `positionals[0]: missing required key "name"`,
		},
		{
			name:    "flag name not an identifier",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"a b\"\ntype = \"string\"\nhelp = \"x\"\n",
			wantMsg: "not an identifier",
		},
		{
			name:    "case variant keys",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"x\"\nTYPE = \"boolean\"\nHelp = \"x\"\n",
			wantMsg: "flags.Help, flags.TYPE",
		},
		{
			name:    "case variant root key",
			format:  FormatTOML,
			input:   "Name = \"demo\"\n",
			wantMsg: "unknown key(s): Name",
		},
		{
			name:    "yaml case variant keys",
			format:  FormatYAML,
			input:   "name: demo\nflags:\n  - name: x\n    TYPE: boolean\n    Help: x\n",
			wantMsg: "TYPE",
		},
		{
			name:    "empty default",
			format:  FormatTOML,
			input:   "name = \"demo\"\n[[flags]]\nname = \"x\"\ntype = \"string\"\nhelp = \"x\"\ndefault = \"\"\n",
			wantMsg: `flags[0] "x": default is empty`,
		},
		{
			name:    "yaml unknown key",
			format:  FormatYAML,
			input:   "name: demo\nflags:\n  - name: x\n    type: boolean\n    help: x\n    envvar: X\n",
			wantMsg: "envvar",
		},
		{
			name:    "yaml empty",
			format:  FormatYAML,
			input:   "",
			wantMsg: "empty schema",
		},
		{
			name:    "unsupported format",
			format:  Format("ini"),
			input:   "name = demo",
			wantMsg: "unsupported schema format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := Decode([]byte(tt.input), tt.format)
			require.Error(t, err)
			assert.Nil(t, app)
			assert.True(t, errors.IsSchemaMalformed(err), "want ErrSchemaMalformed, got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecode_EmptyDefaultHint(t *testing.T) {
	input := "name = \"demo\"\n[[flags]]\nname = \"x\"\ntype = \"string\"\nhelp = \"x\"\ndefault = \"  \"\n"
	_, err := Decode([]byte(input), FormatTOML)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaMalformed(err))
	assert.Contains(t, errors.FlattenHints(err), `default = '""'`)
}

func TestDecode_StringDefaultLiteral(t *testing.T) {
	input := "name = \"demo\"\n[[flags]]\nname = \"x\"\ntype = \"string\"\nhelp = \"x\"\ndefault = '\"\"'\n"
	app, err := Decode([]byte(input), FormatTOML)
	require.NoError(t, err)
	require.NotNil(t, app.Flags[0].Default)
	assert.Equal(t, `""`, *app.Flags[0].Default)
}

func TestDecode_UnknownKeyFailsBeforeValidation(t *testing.T) {
	// Duplicate flags would fail validation; the unknown key must win first.
	input := `
name = "demo"
bogus = 1

[[flags]]
name = "x"
type = "boolean"
help = "x"

[[flags]]
name = "x"
type = "boolean"
help = "x"
`
	_, err := Decode([]byte(input), FormatTOML)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaMalformed(err))
	assert.False(t, errors.IsDuplicateName(err))
}

func TestDecode_NoAutoHelpKey(t *testing.T) {
	app, err := Decode([]byte("name = \"demo\"\nno-auto-help = true\n"), FormatTOML)
	require.NoError(t, err)
	assert.True(t, app.NoAutoHelp)
	assert.False(t, app.AutoHelp())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatFromPath("cfgopt.toml"))
	assert.Equal(t, FormatYAML, FormatFromPath("cfgopt.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("CFGOPT.YML"))
	assert.Equal(t, FormatTOML, FormatFromPath("-"))
	assert.Equal(t, FormatTOML, FormatFromPath("schema"))
}

func TestRead_Stdin(t *testing.T) {
	data, err := Read("-", strings.NewReader("name = \"piped\"\n"))
	require.NoError(t, err)

	app, err := Decode(data, FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "piped", app.Name)
}

func TestRead_NoStdin(t *testing.T) {
	_, err := Read("-", nil)
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
}
