// Package static holds the JSON schemas generated by cmd/schema-gen.
package static

import (
	_ "embed"
	"encoding/json"
	"fmt"

	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

//go:generate go run ../cmd/schema-gen --chdir .. --name BuildConfig --input internal/config/config.go --out-dir static/schemas
//go:generate go run ../cmd/schema-gen --chdir .. --name DotfilesConfig --input internal/dotfiles/config.go --out-dir static/schemas

// BuildConfigSchema contains the JSON schema for cfgbundle build configuration files.
// It is embedded at build time from schemas/BuildConfig.json.
//
//go:embed schemas/BuildConfig.json
var BuildConfigSchema []byte

// DotfilesConfigSchema contains the JSON schema for dotfile manager configuration files.
// It is embedded at build time from schemas/DotfilesConfig.json.
//
//go:embed schemas/DotfilesConfig.json
var DotfilesConfigSchema []byte

// CompileSchema compiles an embedded JSON schema document registered under schemaURL.
func CompileSchema(raw []byte, schemaURL string) (*jschema.Schema, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty schema %s", schemaURL)
	}

	compiler := jschema.NewCompiler()

	// AddResource expects a decoded JSON value, not raw bytes.
	var schemaDoc interface{}
	if err := json.Unmarshal(raw, &schemaDoc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	return schema, nil
}
