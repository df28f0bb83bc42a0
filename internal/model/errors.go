package model

import "errors"

var (
	// ErrNameRequired is returned when a pattern request is missing the name.
	ErrNameRequired = errors.New("pattern name is required")

	// ErrBodyRequired is returned when a pattern request is missing the body.
	ErrBodyRequired = errors.New("pattern body is required")

	// ErrPatternNotFound is returned when a pattern is not found.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrPatternExists is returned when creating a pattern whose name is
	// already taken.
	ErrPatternExists = errors.New("pattern already exists")
)
