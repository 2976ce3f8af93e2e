package typegen

import (
	"bytes"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/teranos/cfgopt/errors"
)

// Difference describes one generated file that does not match the disk
type Difference struct {
	Path    string
	Missing bool
	// Diff is a line diff, "-" for disk and "+" for fresh output
	Diff string
}

// CompareResult is the outcome of comparing fresh output with the disk
type CompareResult struct {
	UpToDate    bool
	Differences []Difference
}

// Compare checks each expected file (path -> content) against the disk.
// Paths are visited in the order given.
func Compare(paths []string, expected map[string][]byte) (*CompareResult, error) {
	result := &CompareResult{UpToDate: true}

	for _, path := range paths {
		want := expected[path]
		got, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				result.UpToDate = false
				result.Differences = append(result.Differences, Difference{Path: path, Missing: true})
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}

		if bytes.Equal(got, want) {
			continue
		}
		result.UpToDate = false
		result.Differences = append(result.Differences, Difference{
			Path: path,
			Diff: cmp.Diff(strings.Split(string(got), "\n"), strings.Split(string(want), "\n")),
		})
	}

	return result, nil
}
