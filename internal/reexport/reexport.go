// Package reexport implements the export-config-files bundle plugin. It copies
// configuration files from a package source tree into the build output and
// inserts a synthetic re-export module for each of them.
package reexport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/woozymasta/cfgbundle/internal/bundle"
	"github.com/woozymasta/cfgbundle/internal/metrics"
	"github.com/woozymasta/cfgbundle/pkg/config"
)

// PluginName is the name reported by the plugin.
const PluginName = "export-config-files"

// Options configures the plugin.
type Options struct {
	// ConfigFiles lists the files to export. Nil selects DefaultConfigFiles;
	// an empty non-nil slice exports nothing.
	ConfigFiles []config.ConfigFile

	// SrcDir is the directory config file paths are relative to.
	// Defaults to "src" under the working directory.
	SrcDir string

	// Fs is the filesystem files are read from. Defaults to the OS filesystem.
	Fs afero.Fs
}

// Plugin is the export-config-files plugin.
type Plugin struct {
	opts Options
}

// New creates the plugin. opts may be nil.
func New(opts *Options) *Plugin {
	p := &Plugin{}
	if opts != nil {
		p.opts = *opts
	}
	if p.opts.Fs == nil {
		p.opts.Fs = afero.NewOsFs()
	}
	return p
}

// Name implements bundle.Plugin.
func (p *Plugin) Name() string {
	return PluginName
}

// GenerateBundle emits every readable config file as an asset and inserts a
// re-export chunk for it. Per-file failures never fail the build.
func (p *Plugin) GenerateBundle(pc bundle.PluginContext, _ bundle.OutputOptions, b bundle.Bundle) error {
	srcDir := p.srcDir()

	files := p.opts.ConfigFiles
	if files == nil {
		files = DefaultConfigFiles
	}

	emitted := 0
	for _, file := range files {
		ok, err := p.processEntry(pc, b, srcDir, file)
		switch {
		case err != nil:
			metrics.IncConfigFile(metrics.StatusFailed)
			log.Warn().Err(err).
				Str("path", file.Path).
				Msg("Could not process config file")
		case !ok:
			metrics.IncConfigFile(metrics.StatusSkipped)
		default:
			metrics.IncConfigFile(metrics.StatusEmitted)
			emitted++
		}
	}

	log.Info().
		Str("src_dir", srcDir).
		Int("config_files", len(files)).
		Int("emitted", emitted).
		Msg("Config files exported")

	return nil
}

func (p *Plugin) srcDir() string {
	if p.opts.SrcDir != "" {
		return p.opts.SrcDir
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to get working directory, using relative src")
		return "src"
	}
	return filepath.Join(wd, "src")
}

// processEntry exports a single config file. It reports false without an
// error when the source file cannot be read: config files are optional.
func (p *Plugin) processEntry(pc bundle.PluginContext, b bundle.Bundle, srcDir string, file config.ConfigFile) (bool, error) {
	fullPath := filepath.Join(srcDir, file.Path)

	source, err := afero.ReadFile(p.opts.Fs, fullPath)
	if err != nil {
		log.Debug().Err(err).
			Str("path", fullPath).
			Msg("Config file not readable, skipping")
		return false, nil
	}

	fileName := file.ExportName.FileName()
	chunkName := fileName + ".js"
	if owner, taken := b.FileOwner(chunkName); taken {
		return false, fmt.Errorf("%w: %q is already written by %q", bundle.ErrFileNameConflict, chunkName, owner)
	}

	if err := pc.EmitFile(bundle.EmittedFile{
		Type:     bundle.OutputAsset,
		FileName: fileName,
		Source:   source,
	}); err != nil {
		return false, fmt.Errorf("emit %s: %w", fileName, err)
	}

	id := VirtualModuleID(file.ExportName)
	b[id] = reexportChunk(id, file.ExportName, fileName, chunkName)

	log.Trace().
		Str("path", fullPath).
		Str("export", file.ExportName.String()).
		Msg("Config file exported")

	return true, nil
}

// VirtualModuleID returns the bundle key of the re-export chunk for name.
// The NUL prefix keeps other plugins from resolving it as a source file.
func VirtualModuleID(name config.ExportName) string {
	return "\x00" + name.String()
}

// ReexportCode returns the module code re-exporting name.
func ReexportCode(name config.ExportName) string {
	return fmt.Sprintf("export { default as config } from '%[1]s';\nexport * from '%[1]s';", name)
}

func reexportChunk(id string, name config.ExportName, fileName, chunkName string) *bundle.Chunk {
	return &bundle.Chunk{
		FileName:               chunkName,
		Name:                   strings.ReplaceAll(fileName, ".", "_"),
		Code:                   ReexportCode(name),
		FacadeModuleID:         id,
		PreliminaryFileName:    chunkName,
		Exports:                []string{"config"},
		Imports:                []string{},
		DynamicImports:         []string{},
		ReferencedFiles:        []string{},
		ImplicitlyLoadedBefore: []string{},
		ModuleIDs:              []string{},
		Modules:                map[string]bundle.RenderedModule{},
		ImportedBindings:       map[string][]string{},
	}
}
