package c

import (
	"fmt"
	"strings"

	"github.com/teranos/cfgopt/errors"
	"github.com/teranos/cfgopt/schema"
	"github.com/teranos/cfgopt/typegen"
	"github.com/teranos/cfgopt/typegen/util"
)

// FieldPrefix is prepended to every flag and positional name to form the
// struct member name
const FieldPrefix = "cfg_"

// SwitchPrefix is what a command line token starts with to name a flag
const SwitchPrefix = "-"

// Generator implements typegen.Generator for C
type Generator struct{}

// NewGenerator creates a new C generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "c"
func (g *Generator) Language() string {
	return "c"
}

// FileExtension returns "h"
func (g *Generator) FileExtension() string {
	return "h"
}

// field is one struct member, in struct order: flags then positionals
type field struct {
	name   string
	member string
	vt     schema.ValueType
	card   schema.Cardinality
	init   string
	flag   *schema.Flag
}

func (f *field) ctype() string {
	return StorageType(f.vt, f.card)
}

// symbols are the app-level names every emitted identifier derives from
type symbols struct {
	app    string
	strct  string
	init   string
	drop   string
	help   string
	parse  string
	guard  string
	impl   string
	source string
}

func newSymbols(app *schema.App, opts typegen.Options) symbols {
	ident := util.ToCIdent(app.Name)
	macro := util.ToScreamingSnake(app.Name)
	source := opts.Source
	if source == "" {
		source = schema.DefaultFile
	}
	return symbols{
		app:    ident,
		strct:  "struct " + ident + "_args",
		init:   ident + "_args_init",
		drop:   ident + "_args_drop",
		help:   ident + "_args_print_help",
		parse:  ident + "_args_parse",
		guard:  "CFGOPT_GEN_" + macro + "_H_",
		impl:   "CFGOPT_" + macro + "_IMPL",
		source: source,
	}
}

// ImplMacro returns the macro a unit defines before including a single-mode
// header to receive the definitions
func ImplMacro(app *schema.App) string {
	return "CFGOPT_" + util.ToScreamingSnake(app.Name) + "_IMPL"
}

// ConversionFunc returns the name of the hand-written conversion function a
// flag dispatches to
func ConversionFunc(app *schema.App, f *schema.Flag) string {
	return util.ToCIdent(app.Name) + "_parse_" + util.ToCIdent(f.Name) + "_" + f.TypeTag()
}

// collectFields lays out the struct. Two names that map to the same C
// identifier (e.g. "log-level" and "log_level") are a DuplicateName error.
func collectFields(app *schema.App) ([]field, error) {
	fields := make([]field, 0, len(app.Flags)+len(app.Positionals))
	owner := make(map[string]string)

	add := func(f field) error {
		if prev, taken := owner[f.member]; taken {
			return errors.WithDetailf(
				errors.NewDuplicateNameError("field", f.name),
				"%q and %q both map to C member %s", prev, f.name, f.member)
		}
		owner[f.member] = f.name
		fields = append(fields, f)
		return nil
	}

	for i := range app.Flags {
		fl := &app.Flags[i]
		card := fl.Cardinality()
		err := add(field{
			name:   fl.Name,
			member: FieldPrefix + util.ToCIdent(fl.Name),
			vt:     fl.Type,
			card:   card,
			init:   DefaultLiteral(fl.Default, fl.Type, card),
			flag:   fl,
		})
		if err != nil {
			return nil, err
		}
	}

	for i := range app.Positionals {
		p := &app.Positionals[i]
		card := p.Cardinality()
		err := add(field{
			name:   p.Name,
			member: FieldPrefix + util.ToCIdent(p.Name),
			vt:     p.Type,
			card:   card,
			init:   ZeroLiteral(p.Type, card),
		})
		if err != nil {
			return nil, err
		}
	}

	return fields, nil
}

// Generate renders a validated app (implements typegen.Generator)
func (g *Generator) Generate(app *schema.App, opts typegen.Options) (*typegen.Output, error) {
	if app == nil {
		return nil, errors.AssertionFailedf("generate: nil app")
	}

	fields, err := collectFields(app)
	if err != nil {
		return nil, err
	}

	sym := newSymbols(app, opts)
	base := opts.BaseName
	if base == "" {
		base = sym.app + "_cfgopt"
	}
	headerName := base + "." + g.FileExtension()

	switch opts.Mode {
	case typegen.ModeSingle, "":
		var sb strings.Builder
		writeBanner(&sb, sym, fmt.Sprintf(
			"This file is both header and source. Define %s before including it\n"+
				" * in exactly one unit to get the definitions.", sym.impl))
		writeDeclarations(&sb, app, sym, fields)
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#ifdef %s\n", sym.impl))
		sb.WriteString(fmt.Sprintf("#ifndef %sIMPL_\n", sym.guard))
		sb.WriteString(fmt.Sprintf("#define %sIMPL_\n\n", sym.guard))
		writeDefinitions(&sb, app, sym, fields, true)
		sb.WriteString(fmt.Sprintf("\n#endif /* %sIMPL_ */\n", sym.guard))
		sb.WriteString(fmt.Sprintf("#endif /* %s */\n", sym.impl))

		return &typegen.Output{Files: []typegen.File{
			{Name: headerName, Content: []byte(sb.String())},
		}}, nil

	case typegen.ModeSplit:
		sourceName := base + ".c"

		var header strings.Builder
		writeBanner(&header, sym, fmt.Sprintf("Definitions are in %s.", sourceName))
		writeDeclarations(&header, app, sym, fields)

		var source strings.Builder
		writeBanner(&source, sym, "")
		source.WriteString(fmt.Sprintf("#include %s\n\n", util.CString(headerName)))
		writeDefinitions(&source, app, sym, fields, false)

		return &typegen.Output{Files: []typegen.File{
			{Name: headerName, Content: []byte(header.String())},
			{Name: sourceName, Content: []byte(source.String())},
		}}, nil

	default:
		return nil, errors.Newf("unknown mode %q (supported: single, split)", opts.Mode)
	}
}

func writeBanner(sb *strings.Builder, sym symbols, note string) {
	sb.WriteString(fmt.Sprintf("/* Code generated by cfgopt from %s. DO NOT EDIT.", util.CComment(sym.source)))
	if note != "" {
		sb.WriteString("\n *\n * ")
		sb.WriteString(note)
		sb.WriteString("\n")
	}
	sb.WriteString(" */\n\n")
}

// writeDeclarations emits the include-guarded part every unit sees
func writeDeclarations(sb *strings.Builder, app *schema.App, sym symbols, fields []field) {
	sb.WriteString(fmt.Sprintf("#ifndef %s\n", sym.guard))
	sb.WriteString(fmt.Sprintf("#define %s\n\n", sym.guard))
	sb.WriteString("#include <stdbool.h>\n")
	sb.WriteString("#include <stdint.h>\n")
	sb.WriteString("#include <stdio.h>\n\n")
	sb.WriteString("#include \"cfgopt.h\"\n\n")

	sb.WriteString(fmt.Sprintf("/* Command line arguments of %s. */\n", util.CComment(app.Name)))
	sb.WriteString(fmt.Sprintf("%s {\n", sym.strct))
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("    %s;\n", declare(f.ctype(), f.member)))
	}
	if len(fields) == 0 {
		// Empty structs are not valid C
		sb.WriteString("    char cfg_unused_;\n")
	}
	sb.WriteString("};\n\n")

	sb.WriteString("/* Set every field of cfg to its default. */\n")
	sb.WriteString(fmt.Sprintf("void %s(%s *cfg);\n\n", sym.init, sym.strct))
	sb.WriteString("/* Release what cfg owns and reset every field. */\n")
	sb.WriteString(fmt.Sprintf("void %s(%s *cfg);\n\n", sym.drop, sym.strct))
	sb.WriteString(fmt.Sprintf("/* Print usage of %s to fp. */\n", util.CComment(app.Name)))
	sb.WriteString(fmt.Sprintf("void %s(FILE *fp);\n\n", sym.help))
	sb.WriteString("/* Apply defaults, then dispatch argv[1] .. argv[argc - 1] to the conversion\n")
	sb.WriteString(" * function of the first flag each token matches.\n */\n")
	sb.WriteString(fmt.Sprintf("struct cfgopt_result %s(%s *cfg, int argc, char const **argv);\n\n", sym.parse, sym.strct))
	sb.WriteString(fmt.Sprintf("#endif /* %s */\n", sym.guard))
}

// writeDefinitions emits the bodies. Conversion functions are only declared:
// static when the definitions live behind the compilation guard, external
// when they live in a separate source file.
func writeDefinitions(sb *strings.Builder, app *schema.App, sym symbols, fields []field, static bool) {
	sb.WriteString("#include <stdlib.h>\n")
	sb.WriteString("#include <string.h>\n\n")

	if len(app.Flags) > 0 {
		storage := ""
		where := "another unit"
		if static {
			storage = "static "
			where = "this unit"
		}
		sb.WriteString(fmt.Sprintf("/* Conversion functions. Not generated: define them in %s. */\n", where))
		for i := range app.Flags {
			fl := &app.Flags[i]
			sb.WriteString(fmt.Sprintf("%sstruct cfgopt_result %s(%s, char const *arg);\n",
				storage, ConversionFunc(app, fl), declare(pointerTo(StorageType(fl.Type, fl.Cardinality())), "out")))
		}
		sb.WriteString("\n")
	}

	writeInit(sb, sym, fields)
	sb.WriteString("\n")
	writeDrop(sb, sym, fields)
	sb.WriteString("\n")
	writeHelp(sb, app, sym)
	sb.WriteString("\n")
	writeParse(sb, app, sym, fields)
}

func writeInit(sb *strings.Builder, sym symbols, fields []field) {
	sb.WriteString(fmt.Sprintf("void %s(%s *cfg) {\n", sym.init, sym.strct))
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("    cfg->%s = %s;\n", f.member, f.init))
	}
	if len(fields) == 0 {
		sb.WriteString("    cfg->cfg_unused_ = 0;\n")
	}
	sb.WriteString("}\n")
}

func writeDrop(sb *strings.Builder, sym symbols, fields []field) {
	sb.WriteString(fmt.Sprintf("void %s(%s *cfg) {\n", sym.drop, sym.strct))
	for _, f := range fields {
		if f.card == schema.Array {
			sb.WriteString(fmt.Sprintf("    cfgopt_array_drop(&cfg->%s);\n", f.member))
		} else {
			sb.WriteString(fmt.Sprintf("    cfg->%s = %s;\n", f.member, ZeroLiteral(f.vt, f.card)))
		}
	}
	if len(fields) == 0 {
		sb.WriteString("    cfg->cfg_unused_ = 0;\n")
	}
	sb.WriteString("}\n")
}

// writeParse emits the dispatch loop. For each token the flags are tested
// in declaration order; a flag matches when the token starts with "-" + name
// or "-" + alias (compared over exactly that many bytes), equals "-" + short,
// or starts with "-" + short + "=". The first match wins, so "-log" declared
// before "-log-level" takes "-log-level" too.
func writeParse(sb *strings.Builder, app *schema.App, sym symbols, fields []field) {
	sb.WriteString(fmt.Sprintf("struct cfgopt_result %s(%s *cfg, int argc, char const **argv) {\n", sym.parse, sym.strct))
	if len(app.Flags) > 0 {
		sb.WriteString("    struct cfgopt_result r;\n")
	}
	sb.WriteString("    int argi;\n\n")
	sb.WriteString(fmt.Sprintf("    %s(cfg);\n\n", sym.init))

	sb.WriteString("    for (argi = 1; argi < argc; ++argi) {\n")
	sb.WriteString("        char const *arg = argv[argi];\n\n")

	for _, f := range fields {
		if f.flag == nil {
			continue
		}
		fl := f.flag
		sb.WriteString(fmt.Sprintf("        if (%s) {\n", matchCondition(fl)))
		sb.WriteString(fmt.Sprintf("            r = %s(&cfg->%s, arg);\n", ConversionFunc(app, fl), f.member))
		sb.WriteString("            if (r.type != CFGOPT_OK) {\n")
		sb.WriteString("                return r;\n")
		sb.WriteString("            }\n")
		sb.WriteString("            continue;\n")
		sb.WriteString("        }\n\n")
	}

	// Tokens without a switch prefix are left for the caller
	sb.WriteString(fmt.Sprintf("        if (strncmp(arg, %s, %d) == 0) {\n", util.CString(SwitchPrefix), len(SwitchPrefix)))
	sb.WriteString("            return cfgopt_new_undefined_flag(arg);\n")
	sb.WriteString("        }\n")
	sb.WriteString("    }\n\n")

	if app.AutoHelp() {
		sb.WriteString(fmt.Sprintf("    if (cfg->%s%s) {\n", FieldPrefix, util.ToCIdent(schema.HelpName)))
		sb.WriteString(fmt.Sprintf("        %s(stdout);\n", sym.help))
		sb.WriteString("        exit(0);\n")
		sb.WriteString("    }\n\n")
	}

	sb.WriteString("    return cfgopt_ok();\n")
	sb.WriteString("}\n")
}

// matchCondition is the C expression that is true when arg names fl
func matchCondition(fl *schema.Flag) string {
	prefix := func(switchText string) string {
		return fmt.Sprintf("strncmp(arg, %s, %d) == 0", util.CString(switchText), len(switchText))
	}

	conds := []string{prefix(SwitchPrefix + fl.Name)}
	for _, alias := range fl.Alias {
		conds = append(conds, prefix(SwitchPrefix+alias))
	}
	if fl.Short.IsSet() {
		short := SwitchPrefix + fl.Short.String()
		conds = append(conds,
			fmt.Sprintf("strcmp(arg, %s) == 0", util.CString(short)),
			prefix(short+"="))
	}
	return strings.Join(conds, " || ")
}

// RuntimeFiles returns the support header generated code includes
// (implements typegen.RuntimeProvider)
func (g *Generator) RuntimeFiles() []typegen.File {
	return []typegen.File{{Name: RuntimeHeaderName, Content: RuntimeHeader()}}
}
