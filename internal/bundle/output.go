// Package bundle is the minimal build host used by cfgbundle: it runs plugin
// hooks against a shared output bundle and writes the result to disk.
package bundle

// OutputType identifies the kind of a bundle output.
type OutputType string

// Supported output types.
const (
	OutputAsset OutputType = "asset"
	OutputChunk OutputType = "chunk"
)

// Output is a single unit of the build output.
type Output interface {
	// Type reports whether the output is an asset or a chunk.
	Type() OutputType
	// OutputFileName is the path of the output relative to the output directory.
	OutputFileName() string
	// Contents returns the bytes written for the output.
	Contents() []byte
}

// Bundle holds build outputs keyed by output identifier. Assets are keyed by
// their file name; synthetic chunks may use a virtual module identifier.
type Bundle map[string]Output

// FileOwner returns the key of the output written to fileName, if any.
func (b Bundle) FileOwner(fileName string) (string, bool) {
	if out, ok := b[fileName]; ok && out.OutputFileName() == fileName {
		return fileName, true
	}
	for k, out := range b {
		if out.OutputFileName() == fileName {
			return k, true
		}
	}
	return "", false
}

// Asset is a file emitted verbatim into the output tree.
type Asset struct {
	FileName string
	Name     string
	Source   []byte
}

// Type implements Output.
func (*Asset) Type() OutputType { return OutputAsset }

// OutputFileName implements Output.
func (a *Asset) OutputFileName() string { return a.FileName }

// Contents implements Output.
func (a *Asset) Contents() []byte { return a.Source }

// RenderedModule describes a module rendered into a chunk.
type RenderedModule struct {
	Code           string
	RenderedLength int
}

// SourceMap is a v3 source map attached to a chunk.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// Chunk is a generated JavaScript module in the output bundle.
type Chunk struct {
	FileName               string
	Name                   string
	Code                   string
	FacadeModuleID         string
	PreliminaryFileName    string
	SourcemapFileName      string
	Exports                []string
	Imports                []string
	DynamicImports         []string
	ReferencedFiles        []string
	ImplicitlyLoadedBefore []string
	ModuleIDs              []string
	Modules                map[string]RenderedModule
	ImportedBindings       map[string][]string
	IsEntry                bool
	IsDynamicEntry         bool
	IsImplicitEntry        bool
	// Map is nil when the chunk has no source map.
	Map *SourceMap
}

// Type implements Output.
func (*Chunk) Type() OutputType { return OutputChunk }

// OutputFileName implements Output.
func (c *Chunk) OutputFileName() string { return c.FileName }

// Contents implements Output.
func (c *Chunk) Contents() []byte { return []byte(c.Code) }
