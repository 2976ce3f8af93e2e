// Package typegen defines the contract between a validated schema and the
// per-language code generators, and the file plumbing shared by all of them.
package typegen

import (
	"github.com/teranos/cfgopt/schema"
)

// Mode selects how declarations and definitions are laid out
type Mode string

const (
	// ModeSingle emits one header whose definitions sit behind a
	// compilation guard keyed by the app name
	ModeSingle Mode = "single"
	// ModeSplit emits a declaration-only header and a separate source file
	ModeSplit Mode = "split"
)

// Modes lists the supported modes
func Modes() []Mode {
	return []Mode{ModeSingle, ModeSplit}
}

// Options configures one generation
type Options struct {
	Mode Mode
	// BaseName is the output file name without extension; the split
	// source file includes the header by this name
	BaseName string
	// Source names the schema in the generated banner
	Source string
}

// File is one generated artifact
type File struct {
	// Name is relative to the output directory
	Name    string
	Content []byte
}

// Output holds every file of one generation, header first
type Output struct {
	Files []File
}

// Generator is implemented by each target language
type Generator interface {
	// Language returns the selector name, e.g. "c"
	Language() string
	// FileExtension returns the header extension without dot, e.g. "h"
	FileExtension() string
	// Generate renders a validated app. Output must be a pure function of
	// app and opts.
	Generate(app *schema.App, opts Options) (*Output, error)
}

// RuntimeProvider is implemented by generators whose output depends on a
// support library shipped with cfgopt
type RuntimeProvider interface {
	RuntimeFiles() []File
}
