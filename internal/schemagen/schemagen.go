// Package schemagen derives JSON schemas from Go type declarations and
// writes them to disk as a build step.
package schemagen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/woozymasta/cfgbundle/internal/metrics"
)

// exit terminates the process; replaced in tests.
var exit = os.Exit

// Options describes a single schema generation.
type Options struct {
	// Name is the type to generate the schema for. The file is named <Name>.json.
	Name string
	// Input is the Go source file declaring the type.
	Input string
	// OutputDir is the directory the schema file is written to.
	OutputDir string

	// WorkDir resolves relative Input and OutputDir. Defaults to the process working directory.
	WorkDir string
	// Fs is used for all reads and writes. Defaults to the OS filesystem.
	Fs afero.Fs
}

// Generate creates the schema described by opts and writes it to
// <WorkDir>/<OutputDir>/<Name>.json, replacing any existing file.
// It returns the written path.
func Generate(opts Options) (string, error) {
	path, err := generate(opts)
	if err != nil {
		metrics.IncSchema(metrics.StatusError)
		return "", err
	}
	metrics.IncSchema(metrics.StatusSuccess)
	return path, nil
}

func generate(opts Options) (string, error) {
	log.Info().
		Str("type", opts.Name).
		Str("input", opts.Input).
		Msg("Generating schema")

	if opts.Name == "" || opts.Input == "" {
		return "", fmt.Errorf("%w: name and input are required", ErrInvalidOptions)
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	wd := opts.WorkDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	gen, err := NewGenerator(Config{
		Path: resolve(wd, opts.Input),
		Type: opts.Name,
		Fs:   fs,
	})
	if err != nil {
		return "", err
	}

	schema, err := gen.CreateSchema(opts.Name)
	if err != nil {
		return "", err
	}

	data, err := encode(schema)
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(resolve(wd, opts.OutputDir), opts.Name+".json")
	if err := fs.MkdirAll(filepath.Dir(outputPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := afero.WriteFile(fs, outputPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write schema: %w", err)
	}

	log.Info().
		Str("type", opts.Name).
		Str("path", outputPath).
		Msg("Generated schema")

	return outputPath, nil
}

// GenerateAndWriteSchema runs Generate and terminates the process with exit
// code 1 on any failure.
func GenerateAndWriteSchema(opts Options) {
	if _, err := Generate(opts); err != nil {
		log.Error().Err(err).
			Str("type", opts.Name).
			Str("input", opts.Input).
			Msg("Error generating schema")
		exit(1)
	}
}

func resolve(wd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(wd, p)
}

func encode(schema *jsonschema.Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schema); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

// Hook runs a schema generation as a build:prepare hook.
type Hook struct {
	opts Options
}

// Plugin returns a build plugin generating the schema described by opts
// before the bundle is built.
func Plugin(opts Options) *Hook {
	return &Hook{opts: opts}
}

// Name implements bundle.Plugin.
func (h *Hook) Name() string {
	return "schema:" + h.opts.Name
}

// BuildPrepare implements bundle.BuildPreparer.
func (h *Hook) BuildPrepare(_ context.Context) error {
	_, err := Generate(h.opts)
	return err
}
