// Package config holds the public, schema-described types shared by the
// cfgbundle build configuration and the bundle plugins.
package config

// ConfigFile describes a configuration file to copy from the source tree
// into the build output.
type ConfigFile struct {
	// Path is the file location relative to the source directory.
	Path string `yaml:"path" json:"path" jsonschema:"minLength=1,example=tsconfig.json"`

	// ExportName is the public export path of the file, conventionally prefixed with "./".
	ExportName ExportName `yaml:"export_name" json:"export_name"`
}

// SchemaJob describes a JSON Schema generated from a Go type before the bundle is built.
type SchemaJob struct {
	// Name is the Go type to generate the schema for. It also names the output file.
	Name string `yaml:"name" json:"name" jsonschema:"minLength=1,example=DotfilesConfig"`

	// Input is the Go source file declaring the type.
	Input string `yaml:"input" json:"input" jsonschema:"minLength=1,example=internal/dotfiles/config.go"`

	// OutputDir is the directory the schema file is written to.
	OutputDir string `yaml:"output_dir" json:"output_dir" jsonschema:"minLength=1,example=public"`
}
