package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/creasty/defaults"
	"github.com/rs/zerolog/log"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	jamle "github.com/woozymasta/jamle"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/cfgbundle/static"
)

var (
	schemaOnce sync.Once
	schema     *jschema.Schema
	schemaErr  error
)

// getSchema lazily compiles the embedded JSON schema and returns it.
func getSchema() (*jschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = static.CompileSchema(static.BuildConfigSchema, "embedded://build-config-schema")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("%w: %v", ErrSchemaLoad, schemaErr)
		}
	})

	return schema, schemaErr
}

// Load reads, validates and decodes the build configuration at path. The
// file may be YAML or JSON; environment variables inside it are expanded by
// jamle. Relative directories are resolved against the file's directory.
func Load(_ context.Context, path string) (*BuildConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrConfigNotFound)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("stat config %q: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, expected file", ErrInvalidConfig, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := validate(raw); err != nil {
		return nil, err
	}

	var cfg BuildConfig
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := jamle.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
		}
	}

	// Apply default values for fields that weren't set in the config.
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("%w: apply defaults: %v", ErrInvalidConfig, err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	cfg.BaseDir = baseDir
	cfg.SrcDir = resolve(baseDir, cfg.SrcDir)
	cfg.OutDir = resolve(baseDir, cfg.OutDir)
	cfg.MetricsFile = resolve(baseDir, cfg.MetricsFile)

	log.Info().
		Str("config_path", path).
		Str("out_dir", cfg.OutDir).
		Int("config_files", len(cfg.ConfigFiles)).
		Int("schemas", len(cfg.Schemas)).
		Msg("Configuration loaded and validated")

	return &cfg, nil
}

// validate checks the raw document against the embedded JSON schema and
// returns a wrapped ErrSchemaValidation on failure.
func validate(raw []byte) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: decode YAML: %v", ErrInvalidConfig, err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	return nil
}

// resolve makes a non-empty relative path absolute against base.
func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
