package commands

import (
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/cfgopt/config"
	"github.com/teranos/cfgopt/driver"
	"github.com/teranos/cfgopt/errors"
	"github.com/teranos/cfgopt/schema"
	"github.com/teranos/cfgopt/typegen"
)

// CheckCmd checks if generated files are up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated files are up to date",
	Long: `Check if the generated files match the current schema.

The schema is generated in memory with the same settings as generate and
compared byte for byte with the files at --output (and --runtime, when set).
Nothing is written.

Exit codes:
  0 - Files are up to date
  1 - Files are out of date or missing (diff shown), or an error occurred

Examples:
  cfgopt check -o include/app.h
  cfgopt check -s app.toml -o src/args.h -m split`,
	RunE: runCheck,
}

func init() {
	AddGenerateFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Check(driverOptions(cmd, cfg))
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	if result.UpToDate {
		pterm.Fprintln(out, pterm.LightGreen("✓ Generated files are up to date"))
		return nil
	}

	pterm.Fprintln(out, pterm.Red("✗ Generated files are out of date."))
	for _, d := range result.Differences {
		if d.Missing {
			pterm.Fprintln(out, "  -", pterm.Yellow(d.Path), pterm.Gray("(missing)"))
			continue
		}
		pterm.Fprintln(out, "  -", pterm.Yellow(d.Path))
		pterm.Fprintln(out, d.Diff)
	}

	return errors.WithHintf(errors.ErrOutOfDate, "run '%s' to update", regenerateCommand(cfg))
}

// regenerateCommand returns the shell command that rewrites the checked files
func regenerateCommand(cfg *config.Config) string {
	args := []string{"cfgopt", "generate"}
	if cfg.Schema != schema.DefaultFile {
		args = append(args, "-s", cfg.Schema)
	}
	args = append(args, "-o", cfg.Output)
	if cfg.Lang != "c" {
		args = append(args, "-l", cfg.Lang)
	}
	if cfg.GenerationMode() != typegen.ModeSingle {
		args = append(args, "-m", cfg.Mode)
	}
	if cfg.Runtime != "" {
		args = append(args, "--runtime", cfg.Runtime)
	}
	return shellquote.Join(args...)
}
