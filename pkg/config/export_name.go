package config

import (
	"encoding/json"
	"strings"

	"github.com/invopop/jsonschema"
)

// ExportName is the public-facing export path of a configuration file,
// e.g. "./tsconfig.json".
type ExportName string

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (e *ExportName) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*e = ExportName(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler interface.
func (e ExportName) MarshalYAML() (interface{}, error) {
	return string(e), nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (e *ExportName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = ExportName(s)
	return nil
}

// MarshalJSON implements json.Marshaler interface.
func (e ExportName) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(e))
}

// String returns the export path as written.
func (e ExportName) String() string {
	return string(e)
}

// FileName returns the export path with a leading "./" removed.
func (e ExportName) FileName() string {
	return strings.TrimPrefix(string(e), "./")
}

// JSONSchema returns the JSON schema for ExportName type.
func (ExportName) JSONSchema() *jsonschema.Schema {
	minLen := uint64(1)
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Public export path of the file, conventionally prefixed with ./",
		Examples:    []any{"./tsconfig.json", "./biome.jsonc"},
		MinLength:   &minLen,
	}
}
