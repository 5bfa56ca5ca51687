package bundle

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Write stores every output of b under dir and returns the written paths in
// key order. Intermediate directories are created as needed. Nothing is
// written when an output file name is invalid or used by two outputs.
func Write(fs afero.Fs, dir string, b Bundle) ([]string, error) {
	if err := checkFileNames(b); err != nil {
		return nil, err
	}

	keys := sortedKeys(b)
	written := make([]string, 0, len(keys))
	for _, k := range keys {
		out := b[k]
		name := out.OutputFileName()

		path := filepath.Join(dir, name)
		if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return written, fmt.Errorf("create output directory: %w", err)
		}
		if err := afero.WriteFile(fs, path, out.Contents(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}

		log.Trace().
			Str("type", string(out.Type())).
			Str("path", path).
			Msg("Output written")
		written = append(written, path)
	}

	return written, nil
}

// checkFileNames reports the first output, in key order, whose file name is
// invalid or already used by another output.
func checkFileNames(b Bundle) error {
	seen := make(map[string]string, len(b))
	for _, k := range sortedKeys(b) {
		name := b[k].OutputFileName()
		if name == "" || !filepath.IsLocal(name) {
			return fmt.Errorf("%w: output %q has file name %q", ErrInvalidFileName, k, name)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q is written by both %q and %q", ErrFileNameConflict, name, prev, k)
		}
		seen[name] = k
	}
	return nil
}

func sortedKeys(b Bundle) []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
