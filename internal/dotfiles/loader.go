package dotfiles

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"

	"github.com/woozymasta/cfgbundle/static"
)

// FileName is the name of the configuration file in the home directory.
const FileName = ".dotfile-manager.json"

var (
	schemaOnce sync.Once
	schema     *jschema.Schema
	schemaErr  error
)

func getSchema() (*jschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = static.CompileSchema(static.DotfilesConfigSchema, "embedded://dotfiles-config-schema")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("%w: %v", ErrSchemaLoad, schemaErr)
		}
	})

	return schema, schemaErr
}

// ConfigPath returns the default configuration location in the user's home directory.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Load reads the configuration at path. A missing file yields an empty configuration.
func Load(fs afero.Fs, path string) (*DotfilesConfig, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &DotfilesConfig{}, nil
		}
		return nil, fmt.Errorf("read dotfiles config %q: %w", path, err)
	}

	doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}

	s, err := getSchema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	var cfg DotfilesConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// Save writes cfg to path as indented JSON.
func Save(fs afero.Fs, path string, cfg *DotfilesConfig) error {
	out := *cfg
	if out.Files == nil {
		out.Files = []FileMapping{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dotfiles config: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("write dotfiles config %q: %w", path, err)
	}

	return nil
}
