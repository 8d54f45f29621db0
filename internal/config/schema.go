package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of cascade.toml, for editor validation.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:               "toml",
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/LISSConsulting/LISSTech.Cascade/cascade.schema.json"
	schema.Title = "Cascade configuration"
	schema.Description = "Configuration for the Cascade menu engine and its terminal demo"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("config: marshal schema: %w", err)
	}
	return data, nil
}
