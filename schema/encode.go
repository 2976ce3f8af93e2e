package schema

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/cfgopt/errors"
)

// Encode renders the app in the given format. Used to show a schema after
// validation, with the synthetic help flag in place.
func Encode(app *App, format Format) ([]byte, error) {
	switch format {
	case FormatTOML, "":
		data, err := toml.Marshal(app)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal schema as toml")
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(app)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal schema as yaml")
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(app, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal schema as json")
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Newf("unsupported format: %s (supported: toml, yaml, json)", format)
	}
}
