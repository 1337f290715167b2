package domain

import "errors"

// Domain errors
var (
	// ErrUnknownGame is returned when input matches no game name or alias
	ErrUnknownGame = errors.New("unknown game")

	// ErrUnknownPlatform is returned when input matches no known platform
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrInvalidNumber is returned when a wait time does not parse as a number
	ErrInvalidNumber = errors.New("not a number")

	// ErrStoreUnavailable is returned when the backing store cannot be reached
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrEmptyBatch is returned when an add is attempted with no beacons
	ErrEmptyBatch = errors.New("empty beacon batch")
)
