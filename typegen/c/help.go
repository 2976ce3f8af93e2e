package c

import (
	"fmt"
	"strings"

	"github.com/teranos/cfgopt/schema"
	"github.com/teranos/cfgopt/typegen/util"
)

// helpGap separates the left column from the descriptions
const helpGap = 2

type helpEntry struct {
	left  string
	right string
}

// HelpText renders the usage text print_help writes. It is plain text;
// the generator turns each line into a C string literal.
func HelpText(app *schema.App) string {
	var sb strings.Builder

	if app.Version != "" {
		sb.WriteString(app.Name + " " + app.Version + "\n")
	}
	if app.About != "" {
		sb.WriteString(app.About + "\n")
	}
	if app.Version != "" || app.About != "" {
		sb.WriteString("\n")
	}

	sb.WriteString("Usage: " + usageLine(app) + "\n")

	if len(app.Flags) > 0 {
		entries := make([]helpEntry, 0, len(app.Flags))
		for i := range app.Flags {
			entries = append(entries, flagEntry(&app.Flags[i]))
		}
		sb.WriteString("\nFlags:\n")
		writeEntries(&sb, entries)
	}

	if len(app.Positionals) > 0 {
		entries := make([]helpEntry, 0, len(app.Positionals))
		for _, p := range app.Positionals {
			entries = append(entries, helpEntry{left: positionalUsage(p), right: p.Help})
		}
		sb.WriteString("\nPositionals:\n")
		writeEntries(&sb, entries)
	}

	return sb.String()
}

func usageLine(app *schema.App) string {
	parts := []string{app.Name}
	if len(app.Flags) > 0 {
		parts = append(parts, "[FLAGS]")
	}
	for _, p := range app.Positionals {
		parts = append(parts, positionalUsage(p))
	}
	return strings.Join(parts, " ")
}

func positionalUsage(p schema.Positional) string {
	if p.Multiple {
		return "<" + p.Name + ">..."
	}
	return "<" + p.Name + ">"
}

func flagEntry(f *schema.Flag) helpEntry {
	var left strings.Builder
	if f.Short.IsSet() {
		left.WriteString(SwitchPrefix + f.Short.String() + ", ")
	} else {
		left.WriteString("    ")
	}
	left.WriteString(SwitchPrefix + f.Name)
	if f.Type != schema.Boolean || f.ValueName != "" {
		vn := f.ValueName
		if vn == "" {
			vn = strings.ToUpper(f.Type.String())
		}
		left.WriteString("=" + vn)
	}
	if f.Multiple {
		left.WriteString("...")
	}

	right := f.Help
	if f.HasDefault() {
		right += fmt.Sprintf(" (default: %s)", *f.Default)
	}
	if f.Env != "" {
		right += fmt.Sprintf(" [env: %s]", f.Env)
	}
	if len(f.Alias) > 0 {
		aliases := make([]string, len(f.Alias))
		for i, a := range f.Alias {
			aliases[i] = SwitchPrefix + a
		}
		right += fmt.Sprintf(" [aliases: %s]", strings.Join(aliases, ", "))
	}

	return helpEntry{left: left.String(), right: right}
}

func writeEntries(sb *strings.Builder, entries []helpEntry) {
	width := 0
	for _, e := range entries {
		if n := len([]rune(e.left)); n > width {
			width = n
		}
	}
	for _, e := range entries {
		pad := width - len([]rune(e.left)) + helpGap
		line := "  " + e.left + strings.Repeat(" ", pad) + e.right
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

func writeHelp(sb *strings.Builder, app *schema.App, sym symbols) {
	sb.WriteString(fmt.Sprintf("void %s(FILE *fp) {\n", sym.help))
	sb.WriteString("    fputs(\n")
	for _, line := range strings.SplitAfter(HelpText(app), "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("        %s\n", util.CString(line)))
	}
	sb.WriteString("        , fp);\n")
	sb.WriteString("}\n")
}
