package bundle

import "errors"

// Named errors returned by the build host.
var (
	// ErrUnsupportedFileType is returned when a plugin emits a file of a type the host cannot store.
	ErrUnsupportedFileType = errors.New("unsupported emitted file type")

	// ErrInvalidFileName is returned when an emitted file name is empty, absolute or escapes the output directory.
	ErrInvalidFileName = errors.New("invalid emitted file name")

	// ErrFileNameConflict is returned when two different files are emitted under the same name.
	ErrFileNameConflict = errors.New("emitted file name conflicts with a previous file")
)
