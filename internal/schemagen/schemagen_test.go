package schemagen

import (
	"bytes"
	"context"
	"encoding/json"
	htmltemplate "html/template"
	"path/filepath"
	"testing"
	"text/template"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/cfgbundle/internal/bundle"
)

const widgetSource = `package schemagen

// Widget is a configurable widget.
type Widget struct {
	// Name identifies the widget.
	Name string
	Size int // Size in millimetres.
	Parts []Part
}

// Part is a widget component.
type Part struct {
	// ID of the part.
	ID string
}

// Buffer shadows bytes.Buffer.
type Buffer struct{}

type hidden struct{}
`

type Widget struct {
	Name  string `json:"name"`
	Size  int    `json:"size,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	ID string `json:"id"`
}

type Buffer struct{}

type Manifest struct {
	Output bundle.OutputOptions `json:"output"`
}

const manifestSource = `package schemagen

// Manifest describes a build.
type Manifest struct {
	Output bundle.OutputOptions
}
`

const outputOptionsSource = `package bundle

// OutputOptions are the output settings.
type OutputOptions struct {
	// Dir is the output directory.
	Dir string
}
`

func init() {
	Register(Widget{}, &Part{}, Buffer{}, (*bytes.Buffer)(nil), Manifest{})
	Register((*template.Template)(nil), (*htmltemplate.Template)(nil))
}

func newProject(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/internal/widget/widget.go", []byte(widgetSource), 0o644))
	return fs
}

func readSchema(t *testing.T, fs afero.Fs, path string) map[string]any {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestGenerateWritesSchema(t *testing.T) {
	t.Parallel()

	fs := newProject(t)
	path, err := Generate(Options{
		Name:      "Widget",
		Input:     "internal/widget/widget.go",
		OutputDir: "public/schemas",
		WorkDir:   "/proj",
		Fs:        fs,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/proj", "public", "schemas", "Widget.json"), path)

	doc := readSchema(t, fs, path)
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
	assert.Equal(t, "#/$defs/Widget", doc["$ref"])

	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)

	widget, ok := defs["Widget"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Widget is a configurable widget.", widget["description"])
	assert.Equal(t, false, widget["additionalProperties"])
	assert.ElementsMatch(t, []any{"name", "parts"}, widget["required"])

	props, ok := widget["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Name identifies the widget.", props["name"].(map[string]any)["description"])
	assert.Equal(t, "Size in millimetres.", props["size"].(map[string]any)["description"])

	part, ok := defs["Part"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Part is a widget component.", part["description"])
}

func TestGenerateIsIdempotent(t *testing.T) {
	t.Parallel()

	fs := newProject(t)
	opts := Options{Name: "Widget", Input: "/proj/internal/widget/widget.go", OutputDir: "/out", Fs: fs}

	path, err := Generate(opts)
	require.NoError(t, err)
	first, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, path, []byte("stale"), 0o644))

	_, err = Generate(opts)
	require.NoError(t, err)
	second, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, byte('\n'), second[len(second)-1])
}

func TestGenerateTypeNotFoundWritesNothing(t *testing.T) {
	t.Parallel()

	fs := newProject(t)
	_, err := Generate(Options{Name: "Gadget", Input: "internal/widget/widget.go", OutputDir: "public", WorkDir: "/proj", Fs: fs})
	require.ErrorIs(t, err, ErrTypeNotFound)

	exists, err := afero.Exists(fs, "/proj/public/Gadget.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	fs := newProject(t)
	require.NoError(t, afero.WriteFile(fs, "/proj/broken.go", []byte("package broken\ntype {"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/extra.go", []byte("package schemagen\n\ntype Unregistered struct{}\n"), 0o644))

	cases := []struct {
		name string
		opts Options
		err  error
	}{
		{name: "empty name", opts: Options{Input: "internal/widget/widget.go"}},
		{name: "missing input", opts: Options{Name: "Widget", Input: "missing.go"}},
		{name: "parse error", opts: Options{Name: "Widget", Input: "broken.go"}},
		{name: "unexported", opts: Options{Name: "hidden", Input: "internal/widget/widget.go"}, err: ErrTypeNotFound},
		{name: "not registered", opts: Options{Name: "Unregistered", Input: "extra.go"}, err: ErrTypeNotRegistered},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.WorkDir = "/proj"
			tc.opts.OutputDir = "out"
			tc.opts.Fs = fs

			_, err := Generate(tc.opts)
			require.Error(t, err)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestGenerateLogsStartBeforeValidating(t *testing.T) {
	orig := log.Logger
	t.Cleanup(func() { log.Logger = orig })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	_, err := Generate(Options{Name: "Widget"})
	require.ErrorIs(t, err, ErrInvalidOptions)
	assert.Contains(t, buf.String(), `"message":"Generating schema"`)
	assert.Contains(t, buf.String(), `"type":"Widget"`)
}

func TestLookupTypeMatchesPackage(t *testing.T) {
	t.Parallel()

	typ, err := lookupType("Buffer", "schemagen")
	require.NoError(t, err)
	assert.Equal(t, "github.com/woozymasta/cfgbundle/internal/schemagen", typ.PkgPath())

	typ, err = lookupType("Buffer", "bytes")
	require.NoError(t, err)
	assert.Equal(t, "bytes", typ.PkgPath())

	_, err = lookupType("Buffer", "other")
	require.ErrorIs(t, err, ErrTypeNotRegistered)

	_, err = lookupType("Widget", "other")
	require.ErrorIs(t, err, ErrTypeNotRegistered)

	_, err = lookupType("Template", "template")
	require.ErrorIs(t, err, ErrAmbiguousType)
}

func TestGenerateRejectsTypeFromOtherPackage(t *testing.T) {
	t.Parallel()

	fs := newProject(t)
	require.NoError(t, afero.WriteFile(fs, "/proj/other/widget.go", []byte("package other\n\n// Widget is unrelated.\ntype Widget struct{ Foo string }\n"), 0o644))

	_, err := Generate(Options{Name: "Widget", Input: "other/widget.go", OutputDir: "public", WorkDir: "/proj", Fs: fs})
	require.ErrorIs(t, err, ErrTypeNotRegistered)

	exists, err := afero.Exists(fs, "/proj/public/Widget.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateDescribesReferencedPackages(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/internal/schemagen/manifest.go", []byte(manifestSource), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/internal/bundle/plugin.go", []byte(outputOptionsSource), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/internal/bundle/plugin_test.go", []byte("package bundle\n\n// OutputOptions is shadowed.\ntype OutputOptions struct{}\n"), 0o644))

	path, err := Generate(Options{Name: "Manifest", Input: "internal/schemagen/manifest.go", OutputDir: "out", WorkDir: "/proj", Fs: fs})
	require.NoError(t, err)

	doc := readSchema(t, fs, path)
	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)

	manifest, ok := defs["Manifest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Manifest describes a build.", manifest["description"])

	opts, ok := defs["OutputOptions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "OutputOptions are the output settings.", opts["description"])

	props, ok := opts["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dir is the output directory.", props["Dir"].(map[string]any)["description"])
}

func TestModuleRoot(t *testing.T) {
	t.Parallel()

	root, prefix := moduleRoot("/proj/internal/config", "github.com/woozymasta/cfgbundle/internal/config")
	assert.Equal(t, filepath.Clean("/proj"), root)
	assert.Equal(t, "github.com/woozymasta/cfgbundle", prefix)

	root, prefix = moduleRoot("/src/cfgbundle/internal/config", "github.com/woozymasta/cfgbundle/internal/config")
	assert.Equal(t, filepath.Clean("/src"), root)
	assert.Equal(t, "github.com/woozymasta", prefix)

	root, prefix = moduleRoot("/proj/internal/widget", "github.com/woozymasta/cfgbundle/internal/schemagen")
	assert.Equal(t, filepath.Clean("/proj/internal/widget"), root)
	assert.Equal(t, "github.com/woozymasta/cfgbundle/internal/schemagen", prefix)
}

func TestRegisterUnnamedTypePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Register(struct{}{}) })
	assert.Panics(t, func() { Register(nil) })
}

func TestGenerateAndWriteSchemaExitsOnError(t *testing.T) {
	code := -1
	orig := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = orig })

	fs := newProject(t)
	GenerateAndWriteSchema(Options{Name: "Gadget", Input: "internal/widget/widget.go", OutputDir: "public", WorkDir: "/proj", Fs: fs})
	assert.Equal(t, 1, code)

	code = -1
	GenerateAndWriteSchema(Options{Name: "Widget", Input: "internal/widget/widget.go", OutputDir: "public", WorkDir: "/proj", Fs: fs})
	assert.Equal(t, -1, code)

	exists, err := afero.Exists(fs, "/proj/public/Widget.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

var (
	_ bundle.Plugin        = (*Hook)(nil)
	_ bundle.BuildPreparer = (*Hook)(nil)
)

func TestPluginRunsBeforeBundle(t *testing.T) {
	t.Parallel()

	fs := newProject(t)
	p := Plugin(Options{Name: "Widget", Input: "internal/widget/widget.go", OutputDir: "public", WorkDir: "/proj", Fs: fs})
	assert.Equal(t, "schema:Widget", p.Name())

	_, err := bundle.NewBuilder(bundle.OutputOptions{}, p).Build(context.Background())
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/proj/public/Widget.json")
	require.NoError(t, err)
	assert.True(t, exists)

	failing := Plugin(Options{Name: "Gadget", Input: "internal/widget/widget.go", OutputDir: "public", WorkDir: "/proj", Fs: fs})
	_, err = bundle.NewBuilder(bundle.OutputOptions{}, failing).Build(context.Background())
	require.ErrorIs(t, err, ErrTypeNotFound)
}
