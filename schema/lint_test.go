package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLint_Clean(t *testing.T) {
	app := &App{
		Name:    "demo",
		Version: "1.2.0",
		Flags:   []Flag{flag("verbose", Boolean, 'v'), flag("port", Int64, 'p')},
	}
	require.NoError(t, Validate(app))
	assert.Empty(t, Lint(app))
}

func TestLint_Version(t *testing.T) {
	app := &App{Name: "demo", Version: "one point oh"}
	warnings := Lint(app)
	require.Len(t, warnings, 1)
	assert.Equal(t, `app "demo"`, warnings[0].Entity)
	assert.Contains(t, warnings[0].Message, "not a semantic version")
}

func TestLint_PrefixShadowing(t *testing.T) {
	app := &App{
		Name: "demo",
		Flags: []Flag{
			flag("log", Boolean, 0),
			flag("log-level", String, 'L'),
			flag("logfile", String, 0),
		},
	}
	require.NoError(t, Validate(app))

	warnings := Lint(app)
	require.Len(t, warnings, 2)
	assert.Equal(t, `flag "log-level": -log-level is taken by flag "log", declared earlier; only -L reaches it`, warnings[0].String())
	assert.Equal(t, `flag "logfile"`, warnings[1].Entity)
}

func TestLint_LaterPrefixIsFine(t *testing.T) {
	// The longer name is tested first, so both stay reachable
	app := &App{
		Name:  "demo",
		Flags: []Flag{flag("log-level", String, 0), flag("log", Boolean, 0)},
	}
	assert.Empty(t, Lint(app))
}
