package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/cfgopt/driver"
	"github.com/teranos/cfgopt/errors"
	"github.com/teranos/cfgopt/schema"
)

// SchemaCmd prints the validated schema
var SchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the validated schema",
	Long: `Load, decode and validate a schema and print it back, with the
synthetic help flag included. Useful for converting between TOML and YAML
and for seeing exactly what the generator works from.

Examples:
  cfgopt schema                          # cfgopt.toml as TOML
  cfgopt schema -s app.toml --format yaml
  cfgopt schema --format json`,
	RunE: runSchema,
}

func init() {
	SchemaCmd.Flags().StringP("schema", "s", "", "Schema file, - for stdin (default: cfgopt.toml)")
	SchemaCmd.Flags().StringP("format", "f", "toml", "Output format: toml, yaml, json")
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("format")
	format := schema.Format(name)
	switch format {
	case schema.FormatTOML, schema.FormatYAML, schema.FormatJSON:
	default:
		return errors.Newf("invalid format: %s (supported: toml, yaml, json)", name)
	}

	app, err := driver.LoadSchema(cfg.Schema, cmd.InOrStdin())
	if err != nil {
		return err
	}

	data, err := schema.Encode(app, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
