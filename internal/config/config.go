package config

import pkgconfig "github.com/woozymasta/cfgbundle/pkg/config"

// BuildConfig is the cfgbundle build configuration.
type BuildConfig struct {
	// SrcDir is the directory config file paths are relative to.
	// If empty, "src" under the working directory is used.
	SrcDir string `yaml:"src_dir,omitempty" json:"src_dir,omitempty" jsonschema:"example=./src"`

	// OutDir is the directory the bundle is written to.
	OutDir string `yaml:"out_dir,omitempty" json:"out_dir,omitempty" default:"dist" jsonschema:"default=dist,example=./dist"`

	// ConfigFiles lists the config files to export.
	// If omitted, the built-in list is used; an empty list exports nothing.
	ConfigFiles []pkgconfig.ConfigFile `yaml:"config_files,omitempty" json:"config_files,omitempty"`

	// Schemas lists JSON schemas generated before the bundle is built.
	Schemas []pkgconfig.SchemaJob `yaml:"schemas,omitempty" json:"schemas,omitempty"`

	// MetricsFile is a path the build metrics are written to in Prometheus text format.
	MetricsFile string `yaml:"metrics_file,omitempty" json:"metrics_file,omitempty" jsonschema:"example=./dist/cfgbundle.prom"`

	// BaseDir is the directory of the loaded configuration file.
	BaseDir string `yaml:"-" json:"-"`
}
