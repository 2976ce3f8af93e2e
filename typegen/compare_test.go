package typegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	same := filepath.Join(dir, "same.h")
	stale := filepath.Join(dir, "stale.h")
	missing := filepath.Join(dir, "missing.c")

	require.NoError(t, os.WriteFile(same, []byte("a\nb\n"), 0644))
	require.NoError(t, os.WriteFile(stale, []byte("a\nold\n"), 0644))

	paths := []string{same, stale, missing}
	expected := map[string][]byte{
		same:    []byte("a\nb\n"),
		stale:   []byte("a\nnew\n"),
		missing: []byte("x"),
	}

	result, err := Compare(paths, expected)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	require.Len(t, result.Differences, 2)

	assert.Equal(t, stale, result.Differences[0].Path)
	assert.False(t, result.Differences[0].Missing)
	assert.Contains(t, result.Differences[0].Diff, "old")
	assert.Contains(t, result.Differences[0].Diff, "new")

	assert.Equal(t, missing, result.Differences[1].Path)
	assert.True(t, result.Differences[1].Missing)
}

func TestCompare_UpToDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.h")
	require.NoError(t, os.WriteFile(path, []byte("same"), 0644))

	result, err := Compare([]string{path}, map[string][]byte{path: []byte("same")})
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Empty(t, result.Differences)
}
