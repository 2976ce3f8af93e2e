package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestNewDuplicateNameError(t *testing.T) {
	err := NewDuplicateNameError("flag", "verbose")
	require.NotNil(t, err)

	assert.Equal(t, `flag "verbose": duplicate name`, err.Error())
	assert.True(t, IsDuplicateName(err))
	assert.False(t, IsSchemaMalformed(err))

	staged := Wrap(err, "validate schema")
	assert.True(t, IsDuplicateName(staged))
	assert.Contains(t, staged.Error(), "validate schema")
}

func TestNewSchemaMalformedError(t *testing.T) {
	err := NewSchemaMalformedError("flags[%d]: missing required key %q", 2, "type")

	assert.True(t, IsSchemaMalformed(err))
	assert.Contains(t, err.Error(), `flags[2]: missing required key "type"`)
}

func TestWrapSourceUnavailable(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "cfgopt.toml", Err: fs.ErrNotExist}
	err := WrapSourceUnavailable(cause, "cfgopt.toml")

	assert.True(t, IsSourceUnavailable(err))
	assert.True(t, Is(err, fs.ErrNotExist), "OS cause must stay inspectable")
	assert.Contains(t, err.Error(), "schema source unavailable: cfgopt.toml")
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestWrapOutputUnwritable(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "/ro/demo.h", Err: fs.ErrPermission}
	err := WrapOutputUnwritable(cause, "/ro/demo.h")

	assert.True(t, IsOutputUnwritable(err))
	assert.False(t, IsSourceUnavailable(err))
	assert.True(t, Is(err, fs.ErrPermission))
}

func TestKindHelpers_Nil(t *testing.T) {
	assert.False(t, IsSourceUnavailable(nil))
	assert.False(t, IsSchemaMalformed(nil))
	assert.False(t, IsDuplicateName(nil))
	assert.False(t, IsOutputUnwritable(nil))
}

func TestWithHint(t *testing.T) {
	err := WithHint(NewDuplicateNameError("flag", "help"), "set no-auto-help = true")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "set no-auto-help = true", hints[0])
	assert.True(t, IsDuplicateName(err))
}
