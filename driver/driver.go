// Package driver runs one generation: read the schema, decode it strictly,
// validate it, emit code for the selected language and write the files.
//
// Each stage wraps its error with the stage name, so a failure reads
// "validate schema: flag \"x\": duplicate name" while errors.Is still finds
// the error kind underneath.
package driver

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/cfgopt/errors"
	"github.com/teranos/cfgopt/logger"
	"github.com/teranos/cfgopt/schema"
	"github.com/teranos/cfgopt/typegen"
	"github.com/teranos/cfgopt/typegen/c"
)

// Stage names, used as error prefixes and in logs
const (
	StageLoad     = "load schema"
	StageDecode   = "decode schema"
	StageValidate = "validate schema"
	StageEmit     = "emit"
	StageWrite    = "write output"
)

// StdoutName identifies standard output in logs and errors
const StdoutName = "<stdout>"

// Options for a single run
type Options struct {
	// SchemaPath is the schema source; "" means schema.DefaultFile, "-" stdin
	SchemaPath string
	// OutputPath is the generated header; "" writes to Stdout (single mode only)
	OutputPath string
	Lang       string
	Mode       typegen.Mode
	// RuntimeDir, when set, also receives the language's support files
	RuntimeDir string

	Stdin  io.Reader
	Stdout io.Writer
}

// PlannedFile is a generated file and where it goes
type PlannedFile struct {
	Path    string
	Content []byte
}

// Plan is the result of every stage except writing
type Plan struct {
	App       *schema.App
	Generator typegen.Generator
	// Files are the generated files, header first. When ToStdout is set
	// there is exactly one and its Path is StdoutName.
	Files    []PlannedFile
	Runtime  []PlannedFile
	ToStdout bool
}

// Result summarizes a successful Run
type Result struct {
	App     string
	Written []string
}

// Languages lists the supported target languages
func Languages() []string {
	return []string{"c"}
}

// NewGenerator returns the generator for lang
func NewGenerator(lang string) (typegen.Generator, error) {
	switch strings.ToLower(lang) {
	case "c":
		return c.NewGenerator(), nil
	default:
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrUnknownLanguage, "%q", lang),
			"supported languages: %s", strings.Join(Languages(), ", "))
	}
}

// runStage times fn and prefixes its error with the stage name
func runStage(name string, fn func() error) error {
	log := logger.ComponentLogger("driver")
	start := time.Now()

	err := fn()
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		log.Debugw("Stage failed",
			logger.FieldStage, name,
			logger.FieldDurationMS, elapsed,
			logger.FieldError, err)
		return errors.Wrap(err, name)
	}

	log.Debugw("Stage complete",
		logger.FieldStage, name,
		logger.FieldDurationMS, elapsed)
	return nil
}

// LoadSchema runs the load, decode and validate stages. The returned app
// has the synthetic help flag appended when applicable.
func LoadSchema(path string, stdin io.Reader) (*schema.App, error) {
	if path == "" {
		path = schema.DefaultFile
	}

	var data []byte
	if err := runStage(StageLoad, func() error {
		var err error
		data, err = schema.Read(path, stdin)
		return err
	}); err != nil {
		return nil, err
	}

	var app *schema.App
	if err := runStage(StageDecode, func() error {
		var err error
		app, err = schema.Decode(data, schema.FormatFromPath(path))
		if err != nil {
			return errors.Wrapf(err, "%s", path)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage(StageValidate, func() error {
		return schema.Validate(app)
	}); err != nil {
		return nil, err
	}

	log := logger.ComponentLogger("driver")
	for _, w := range schema.Lint(app) {
		log.Warnw(w.Message,
			logger.FieldSchema, path,
			logger.FieldEntity, w.Entity)
	}

	log.Debugw("Schema loaded",
		logger.FieldSchema, path,
		logger.FieldApp, app.Name,
		logger.FieldFlags, len(app.Flags),
		logger.FieldPositionals, len(app.Positionals))

	return app, nil
}

// Prepare runs every stage up to, but not including, writing
func Prepare(opts Options) (*Plan, error) {
	mode := opts.Mode
	if mode == "" {
		mode = typegen.ModeSingle
	}
	if mode == typegen.ModeSplit && opts.OutputPath == "" {
		return nil, errors.WithHint(
			errors.New("split mode writes two files and needs an output path"),
			"pass --output path/to/header.h")
	}

	gen, err := NewGenerator(opts.Lang)
	if err != nil {
		return nil, err
	}

	app, err := LoadSchema(opts.SchemaPath, opts.Stdin)
	if err != nil {
		return nil, err
	}

	source := opts.SchemaPath
	if source == "" {
		source = schema.DefaultFile
	}
	genOpts := typegen.Options{Mode: mode, Source: filepath.Base(source)}
	if opts.OutputPath != "" {
		base := filepath.Base(opts.OutputPath)
		genOpts.BaseName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if source == "-" {
		genOpts.Source = "stdin"
	}

	var out *typegen.Output
	if err := runStage(StageEmit+" "+gen.Language(), func() error {
		var err error
		out, err = gen.Generate(app, genOpts)
		return err
	}); err != nil {
		return nil, err
	}

	plan := &Plan{App: app, Generator: gen}
	switch {
	case opts.OutputPath == "":
		plan.ToStdout = true
		plan.Files = []PlannedFile{{Path: StdoutName, Content: out.Files[0].Content}}
	case mode == typegen.ModeSingle:
		plan.Files = []PlannedFile{{Path: opts.OutputPath, Content: out.Files[0].Content}}
	default:
		dir := filepath.Dir(opts.OutputPath)
		for _, f := range out.Files {
			plan.Files = append(plan.Files, PlannedFile{Path: filepath.Join(dir, f.Name), Content: f.Content})
		}
	}

	if opts.RuntimeDir != "" {
		rp, ok := gen.(typegen.RuntimeProvider)
		if ok {
			for _, f := range rp.RuntimeFiles() {
				plan.Runtime = append(plan.Runtime, PlannedFile{Path: filepath.Join(opts.RuntimeDir, f.Name), Content: f.Content})
			}
		}
	}

	return plan, nil
}

// Run executes the whole pipeline. Nothing is written unless every earlier
// stage succeeded.
func Run(opts Options) (*Result, error) {
	plan, err := Prepare(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{App: plan.App.Name}
	if err := runStage(StageWrite, func() error {
		written, err := plan.write(opts.Stdout)
		result.Written = written
		return err
	}); err != nil {
		return nil, err
	}

	logger.ComponentLogger("driver").Infow("Generated",
		logger.FieldApp, result.App,
		logger.FieldLang, plan.Generator.Language(),
		logger.FieldOutput, strings.Join(result.Written, ", "))

	return result, nil
}

// all returns the generated files followed by the runtime files
func (p *Plan) all() []PlannedFile {
	files := make([]PlannedFile, 0, len(p.Files)+len(p.Runtime))
	files = append(files, p.Files...)
	return append(files, p.Runtime...)
}

func (p *Plan) write(stdout io.Writer) ([]string, error) {
	var written []string

	for _, f := range p.all() {
		if f.Path == StdoutName {
			if stdout == nil {
				stdout = os.Stdout
			}
			if err := typegen.WriteTo(stdout, StdoutName, f.Content); err != nil {
				return written, err
			}
		} else if err := typegen.WriteFileAtomic(f.Path, f.Content, 0644); err != nil {
			return written, err
		}

		logger.ComponentLogger("driver").Debugw("Wrote file",
			logger.FieldFile, f.Path,
			logger.FieldBytes, len(f.Content))
		written = append(written, f.Path)
	}

	return written, nil
}

// Check regenerates in memory and compares with the files on disk. It needs
// an output path; runtime files are compared too when RuntimeDir is set.
func Check(opts Options) (*typegen.CompareResult, error) {
	if opts.OutputPath == "" {
		return nil, errors.WithHint(
			errors.New("check needs an output path to compare against"),
			"pass --output path/to/header.h")
	}

	plan, err := Prepare(opts)
	if err != nil {
		return nil, err
	}

	var paths []string
	expected := make(map[string][]byte)
	for _, f := range plan.all() {
		paths = append(paths, f.Path)
		expected[f.Path] = f.Content
	}

	return typegen.Compare(paths, expected)
}
