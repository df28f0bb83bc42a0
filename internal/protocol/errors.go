package protocol

import "errors"

var (
	// ErrUnknownCommand is returned when a command name is outside the closed
	// command set.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidArgument is returned when a command payload cannot be built
	// from its external presentation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedFrame is returned when a wire frame cannot be decoded. It is
	// recoverable: the frame is skipped and the connection stays up.
	ErrMalformedFrame = errors.New("malformed frame")
)
