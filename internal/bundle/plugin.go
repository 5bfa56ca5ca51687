package bundle

import (
	"context"
)

// OutputOptions are the output settings handed to output-generation hooks.
type OutputOptions struct {
	// Dir is the directory the bundle is written to.
	Dir string
}

// EmittedFile is a file a plugin asks the host to add to the bundle.
type EmittedFile struct {
	Type     OutputType
	FileName string
	Name     string
	Source   []byte
}

// PluginContext exposes host capabilities to plugin hooks.
type PluginContext interface {
	EmitFile(file EmittedFile) error
}

// Plugin is a named build plugin. Hooks are picked up by implementing
// BuildPreparer and/or BundleGenerator.
type Plugin interface {
	Name() string
}

// BuildPreparer is implemented by plugins that run before the bundle is generated.
type BuildPreparer interface {
	BuildPrepare(ctx context.Context) error
}

// BundleGenerator is implemented by plugins that run once after module
// resolution, immediately before the bundle is emitted.
type BundleGenerator interface {
	GenerateBundle(pc PluginContext, opts OutputOptions, b Bundle) error
}
