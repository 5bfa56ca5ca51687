package dotfiles

import "errors"

// Named errors used by the dotfiles configuration loader.
var (
	// ErrInvalidConfig is returned when the configuration cannot be decoded.
	ErrInvalidConfig = errors.New("invalid dotfiles configuration")

	// ErrSchemaLoad is returned when the embedded JSON schema cannot be compiled.
	ErrSchemaLoad = errors.New("failed to load dotfiles configuration schema")

	// ErrSchemaValidation is returned when the configuration does not match the JSON schema.
	ErrSchemaValidation = errors.New("dotfiles configuration schema validation failed")
)
