package bundle

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Builder runs plugin hooks in registration order.
type Builder struct {
	opts    OutputOptions
	plugins []Plugin
}

// NewBuilder creates a Builder for the given output options and plugins.
func NewBuilder(opts OutputOptions, plugins ...Plugin) *Builder {
	return &Builder{opts: opts, plugins: plugins}
}

// Build runs all prepare hooks, then all generate hooks against one shared
// bundle. The first hook error aborts the build.
func (b *Builder) Build(ctx context.Context) (Bundle, error) {
	for _, p := range b.plugins {
		preparer, ok := p.(BuildPreparer)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug().Str("plugin", p.Name()).Msg("Running build:prepare hook")
		if err := preparer.BuildPrepare(ctx); err != nil {
			return nil, fmt.Errorf("plugin %s: build:prepare: %w", p.Name(), err)
		}
	}

	out := make(Bundle)
	for _, p := range b.plugins {
		generator, ok := p.(BundleGenerator)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug().Str("plugin", p.Name()).Msg("Running generateBundle hook")
		pc := &pluginContext{plugin: p.Name(), bundle: out}
		if err := generator.GenerateBundle(pc, b.opts, out); err != nil {
			return nil, fmt.Errorf("plugin %s: generateBundle: %w", p.Name(), err)
		}
	}

	if err := checkFileNames(out); err != nil {
		return nil, err
	}

	log.Info().
		Int("plugins", len(b.plugins)).
		Int("outputs", len(out)).
		Msg("Bundle generated")

	return out, nil
}

type pluginContext struct {
	plugin string
	bundle Bundle
}

// EmitFile stores an asset in the bundle under its file name.
func (c *pluginContext) EmitFile(file EmittedFile) error {
	if file.Type != OutputAsset {
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, file.Type)
	}
	if file.FileName == "" || !filepath.IsLocal(file.FileName) {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, file.FileName)
	}

	if owner, ok := c.bundle.FileOwner(file.FileName); ok {
		prev := c.bundle[owner]
		if owner == file.FileName && prev.Type() == OutputAsset && bytes.Equal(prev.Contents(), file.Source) {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrFileNameConflict, file.FileName)
	}
	// The key may be taken by an output written under another name.
	if _, ok := c.bundle[file.FileName]; ok {
		return fmt.Errorf("%w: %q", ErrFileNameConflict, file.FileName)
	}

	c.bundle[file.FileName] = &Asset{
		FileName: file.FileName,
		Name:     file.Name,
		Source:   file.Source,
	}

	log.Trace().
		Str("plugin", c.plugin).
		Str("file", file.FileName).
		Int("size", len(file.Source)).
		Msg("Asset emitted")

	return nil
}
