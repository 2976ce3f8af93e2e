// Package config holds the generator settings: which schema to read, which
// language to emit and where to put the result. Values come from, in
// increasing precedence, defaults, an optional config file, CFGOPT_*
// environment variables and command line flags.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/cfgopt/errors"
	"github.com/teranos/cfgopt/schema"
	"github.com/teranos/cfgopt/typegen"
)

// EnvPrefix is prepended to every environment variable, e.g. CFGOPT_SCHEMA
const EnvPrefix = "CFGOPT"

// Keys
const (
	KeySchema  = "schema"
	KeyOutput  = "output"
	KeyLang    = "lang"
	KeyMode    = "mode"
	KeyRuntime = "runtime"
)

// Config is the resolved generator configuration
type Config struct {
	// Schema is the schema source; "-" reads stdin
	Schema string `mapstructure:"schema"`
	// Output is the generated header path; empty means stdout
	Output string `mapstructure:"output"`
	Lang   string `mapstructure:"lang"`
	Mode   string `mapstructure:"mode"`
	// Runtime is a directory that also receives cfgopt.h
	Runtime string `mapstructure:"runtime"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySchema, schema.DefaultFile)
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyLang, "c")
	v.SetDefault(KeyMode, string(typegen.ModeSingle))
	v.SetDefault(KeyRuntime, "")
}

// New returns a viper instance with defaults and environment binding
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// BindFlags binds every flag in fs whose name is a config key, so a flag
// that was set on the command line wins over env and defaults
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeySchema, KeyOutput, KeyLang, KeyMode, KeyRuntime} {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", key)
		}
	}
	return nil
}

// ReadFile merges a TOML or YAML config file into v. Values from the file
// sit between defaults and environment variables.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}

// LoadWithViper unmarshals and validates the configuration held by v
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.Lang = strings.ToLower(cfg.Lang)
	cfg.Mode = strings.ToLower(cfg.Mode)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseMode converts a mode name to a typegen.Mode
func ParseMode(s string) (typegen.Mode, error) {
	for _, m := range typegen.Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.Newf("mode must be one of single, split, got %q", s)
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Schema == "" {
		return errors.New("schema cannot be empty (omit for cfgopt.toml)")
	}
	if c.Lang == "" {
		return errors.New("lang cannot be empty (omit for c)")
	}

	mode, err := ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if mode == typegen.ModeSplit && c.Output == "" {
		return errors.WithHint(
			errors.New("mode split needs an output path"),
			"pass --output path/to/header.h or set CFGOPT_OUTPUT")
	}
	return nil
}

// GenerationMode returns the validated mode
func (c *Config) GenerationMode() typegen.Mode {
	mode, err := ParseMode(c.Mode)
	if err != nil {
		return typegen.ModeSingle
	}
	return mode
}
