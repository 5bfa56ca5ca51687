package bundle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name       string
	calls      *[]string
	prepareErr error
	emit       []EmittedFile
	emitErrs   []error
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) BuildPrepare(context.Context) error {
	*p.calls = append(*p.calls, p.name+":prepare")
	return p.prepareErr
}

func (p *recordingPlugin) GenerateBundle(pc PluginContext, _ OutputOptions, _ Bundle) error {
	*p.calls = append(*p.calls, p.name+":generate")
	for _, f := range p.emit {
		p.emitErrs = append(p.emitErrs, pc.EmitFile(f))
	}
	return nil
}

type nameOnly string

func (n nameOnly) Name() string { return string(n) }

func TestBuilderRunsHooksInOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	a := &recordingPlugin{name: "a", calls: &calls}
	b := &recordingPlugin{name: "b", calls: &calls}

	out, err := NewBuilder(OutputOptions{Dir: "dist"}, a, nameOnly("noop"), b).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []string{"a:prepare", "b:prepare", "a:generate", "b:generate"}, calls)
}

func TestBuilderPrepareErrorAborts(t *testing.T) {
	t.Parallel()

	var calls []string
	boom := errors.New("boom")
	a := &recordingPlugin{name: "a", calls: &calls, prepareErr: boom}
	b := &recordingPlugin{name: "b", calls: &calls}

	_, err := NewBuilder(OutputOptions{}, a, b).Build(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a:prepare"}, calls)
}

func TestEmitFile(t *testing.T) {
	t.Parallel()

	var calls []string
	p := &recordingPlugin{
		name:  "emit",
		calls: &calls,
		emit: []EmittedFile{
			{Type: OutputAsset, FileName: "a.json", Source: []byte(`{"a":1}`)},
			{Type: OutputAsset, FileName: "a.json", Source: []byte(`{"a":1}`)},
			{Type: OutputAsset, FileName: "a.json", Source: []byte(`{"a":2}`)},
			{Type: OutputChunk, FileName: "b.js"},
			{Type: OutputAsset, FileName: "../escape.json"},
			{Type: OutputAsset, FileName: "/abs.json"},
			{Type: OutputAsset, FileName: ""},
			{Type: OutputAsset, FileName: "nested/c.yml", Source: []byte("c: 1")},
		},
	}

	out, err := NewBuilder(OutputOptions{}, p).Build(context.Background())
	require.NoError(t, err)

	require.Len(t, p.emitErrs, 8)
	assert.NoError(t, p.emitErrs[0])
	assert.NoError(t, p.emitErrs[1])
	assert.ErrorIs(t, p.emitErrs[2], ErrFileNameConflict)
	assert.ErrorIs(t, p.emitErrs[3], ErrUnsupportedFileType)
	assert.ErrorIs(t, p.emitErrs[4], ErrInvalidFileName)
	assert.ErrorIs(t, p.emitErrs[5], ErrInvalidFileName)
	assert.ErrorIs(t, p.emitErrs[6], ErrInvalidFileName)
	assert.NoError(t, p.emitErrs[7])

	require.Len(t, out, 2)
	asset, ok := out["a.json"].(*Asset)
	require.True(t, ok)
	assert.Equal(t, OutputAsset, asset.Type())
	assert.Equal(t, []byte(`{"a":1}`), asset.Contents())
	assert.Equal(t, "nested/c.yml", out["nested/c.yml"].OutputFileName())
}

func TestBuilderStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	var calls []string
	p := &recordingPlugin{name: "a", calls: &calls}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(OutputOptions{}, p).Build(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}

type chunkPlugin struct {
	key   string
	chunk *Chunk
}

func (p *chunkPlugin) Name() string { return "chunk" }

func (p *chunkPlugin) GenerateBundle(_ PluginContext, _ OutputOptions, b Bundle) error {
	b[p.key] = p.chunk
	return nil
}

func TestBuilderRejectsOutputsSharingFileName(t *testing.T) {
	t.Parallel()

	var calls []string
	chunk := &chunkPlugin{key: "\x00./a.json", chunk: &Chunk{FileName: "a.json.js"}}
	asset := &recordingPlugin{
		name:  "asset",
		calls: &calls,
		emit:  []EmittedFile{{Type: OutputAsset, FileName: "a.json.js", Source: []byte("ASSET")}},
	}

	_, err := NewBuilder(OutputOptions{}, chunk, asset).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, asset.emitErrs, 1)
	assert.ErrorIs(t, asset.emitErrs[0], ErrFileNameConflict)

	late := &chunkPlugin{key: "\x00./b.json", chunk: &Chunk{FileName: "a.json.js"}}
	_, err = NewBuilder(OutputOptions{}, chunk, late).Build(context.Background())
	require.ErrorIs(t, err, ErrFileNameConflict)
}

func TestBundleFileOwner(t *testing.T) {
	t.Parallel()

	b := Bundle{
		"a.json":       &Asset{FileName: "a.json"},
		"\x00./a.json": &Chunk{FileName: "a.json.js"},
	}

	owner, ok := b.FileOwner("a.json.js")
	require.True(t, ok)
	assert.Equal(t, "\x00./a.json", owner)

	owner, ok = b.FileOwner("a.json")
	require.True(t, ok)
	assert.Equal(t, "a.json", owner)

	_, ok = b.FileOwner("b.json")
	assert.False(t, ok)
}
