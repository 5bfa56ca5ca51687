package schemagen

import "errors"

// Named errors returned by the schema generator.
var (
	// ErrInvalidOptions is returned when a required option is empty.
	ErrInvalidOptions = errors.New("invalid schema generation options")

	// ErrTypeNotFound is returned when the input file does not declare the requested type.
	ErrTypeNotFound = errors.New("type not found in input file")

	// ErrTypeNotRegistered is returned when the requested type was not registered for reflection.
	ErrTypeNotRegistered = errors.New("type not registered")

	// ErrAmbiguousType is returned when several registered types match the requested name.
	ErrAmbiguousType = errors.New("ambiguous type name")

	// ErrInvalidSchema is returned when the generated document is not a valid JSON schema.
	ErrInvalidSchema = errors.New("generated schema is invalid")
)
