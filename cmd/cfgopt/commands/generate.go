package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/cfgopt/config"
	"github.com/teranos/cfgopt/driver"
	"github.com/teranos/cfgopt/errors"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a C argument parser from a schema",
	Long: `Generate a C header from a cfgopt schema.

The header declares struct <app>_args and the functions
<app>_args_init, <app>_args_drop, <app>_args_print_help and
<app>_args_parse. Conversion functions (<app>_parse_<flag>_<type>) are only
declared; define them yourself.

In single mode the definitions sit behind CFGOPT_<APP>_IMPL: define it in
exactly one source file before including the header. In split mode a
declaration-only header and a matching .c file are written instead.

Every setting can also come from the environment (CFGOPT_SCHEMA,
CFGOPT_OUTPUT, CFGOPT_LANG, CFGOPT_MODE, CFGOPT_RUNTIME).

Examples:
  cfgopt generate                           # cfgopt.toml -> stdout
  cfgopt generate -s app.yaml -o app.h      # YAML schema
  cfgopt generate -o src/args.h -m split    # src/args.h + src/args.c
  cfgopt generate -o app.h --runtime .      # also write cfgopt.h
  cfgopt generate -o app.h --watch          # regenerate on every save`,
	RunE: RunGenerate,
}

func init() {
	AddGenerateFlags(GenerateCmd)
	AddWatchFlag(GenerateCmd)
}

// AddGenerateFlags registers the flags shared by generate, check and the root command
func AddGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(config.KeySchema, "s", "", "Schema file, - for stdin (default: cfgopt.toml)")
	cmd.Flags().StringP(config.KeyOutput, "o", "", "Output header path (default: stdout)")
	cmd.Flags().StringP(config.KeyLang, "l", "", "Target language (default: c)")
	cmd.Flags().StringP(config.KeyMode, "m", "", "Emission mode: single, split (default: single)")
	cmd.Flags().String(config.KeyRuntime, "", "Also write the cfgopt.h support header to this directory")
	cmd.Flags().String("config", "", "Read settings from a TOML or YAML file")
}

// AddWatchFlag registers --watch on commands that write files
func AddWatchFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("watch", "w", false, "Regenerate whenever the schema file changes")
}

// loadConfig resolves settings from defaults, --config, env and flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := config.ReadFile(v, path); err != nil {
			return nil, err
		}
	}
	return config.LoadWithViper(v)
}

func driverOptions(cmd *cobra.Command, cfg *config.Config) driver.Options {
	return driver.Options{
		SchemaPath: cfg.Schema,
		OutputPath: cfg.Output,
		Lang:       cfg.Lang,
		Mode:       cfg.GenerationMode(),
		RuntimeDir: cfg.Runtime,
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
	}
}

// RunGenerate runs the whole pipeline with the command's settings
func RunGenerate(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.Newf("unexpected argument %q", args[0])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := driverOptions(cmd, cfg)
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchAndGenerate(cmd, opts)
	}

	result, err := driver.Run(opts)
	if err != nil {
		return err
	}
	reportWritten(cmd, result)
	return nil
}

func reportWritten(cmd *cobra.Command, result *driver.Result) {
	for _, path := range result.Written {
		if path == driver.StdoutName {
			continue
		}
		pterm.Fprintln(cmd.ErrOrStderr(), pterm.LightGreen("✓ Generated"), path)
	}
}

// watchAndGenerate regenerates on every schema change until interrupted.
// Generation errors are printed and do not stop the loop.
func watchAndGenerate(cmd *cobra.Command, opts driver.Options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := driver.NewWatcher(opts, func(result *driver.Result, err error) {
		if err != nil {
			pterm.Fprintln(cmd.ErrOrStderr(), pterm.Red("✗ "+err.Error()))
			return
		}
		reportWritten(cmd, result)
	})
	if err != nil {
		return err
	}

	pterm.Fprintln(cmd.ErrOrStderr(), pterm.Gray("Watching "+opts.SchemaPath+" (Ctrl-C to stop)"))
	return w.Run(ctx)
}
