package commands

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/cfgopt/driver"
	"github.com/teranos/cfgopt/typegen"
)

// RuntimeCmd writes the support files generated code depends on
var RuntimeCmd = &cobra.Command{
	Use:   "runtime [DIR]",
	Short: "Write the cfgopt.h support header",
	Long: `Write the support header that generated code includes. It declares
struct cfgopt_result, the array aggregates (struct cfgopt_<type>_array) and
the cfgopt_array_init, cfgopt_array_drop and cfgopt_append helpers.

DIR defaults to the current directory.

Examples:
  cfgopt runtime include/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuntime,
}

func init() {
	RuntimeCmd.Flags().StringP("lang", "l", "", "Target language (default: c)")
}

func runRuntime(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gen, err := driver.NewGenerator(cfg.Lang)
	if err != nil {
		return err
	}
	rp, ok := gen.(typegen.RuntimeProvider)
	if !ok {
		pterm.Fprintln(cmd.ErrOrStderr(), pterm.Yellow("⚠ no runtime files for"), gen.Language())
		return nil
	}

	for _, f := range rp.RuntimeFiles() {
		path := filepath.Join(dir, f.Name)
		if err := typegen.WriteFileAtomic(path, f.Content, 0644); err != nil {
			return err
		}
		pterm.Fprintln(cmd.ErrOrStderr(), pterm.LightGreen("✓ Wrote"), path)
	}
	return nil
}
