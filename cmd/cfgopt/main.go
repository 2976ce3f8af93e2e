package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/cfgopt/cmd/cfgopt/commands"
	"github.com/teranos/cfgopt/errors"
	"github.com/teranos/cfgopt/logger"
)

var rootCmd = &cobra.Command{
	Use:   "cfgopt",
	Short: "cfgopt - command line parsers for C from a declarative schema",
	Long: `cfgopt reads a schema describing an application's flags and positionals
(cfgopt.toml by default) and generates a C header with an argument struct,
an initializer applying defaults, a help printer and a parser that
dispatches each token to a hand-written conversion function.

Available commands:
  generate - Generate the header (default when no command is given)
  check    - Verify generated files are up to date
  schema   - Print the validated schema
  runtime  - Write the cfgopt.h support header
  version  - Show version information

Examples:
  cfgopt                               # cfgopt.toml -> stdout
  cfgopt -s app.toml -o include/app.h  # Write a single-file header
  cfgopt -o src/args.h --mode split    # Write args.h and args.c
  cfgopt check -o include/app.h        # Fail if include/app.h is stale`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(verbosity, jsonLogs); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	RunE: commands.RunGenerate,
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	commands.AddGenerateFlags(rootCmd)
	commands.AddWatchFlag(rootCmd)

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.SchemaCmd)
	rootCmd.AddCommand(commands.RuntimeCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hints)
		}
		os.Exit(1)
	}
}
