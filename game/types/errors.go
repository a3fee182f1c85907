package types

import "errors"

var (
	// ErrConfiguration marks an invalid grid, tile or cadence setup. Fatal at startup.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNoSpaceAvailable is returned when food cannot be placed because the
	// snake covers every cell
	ErrNoSpaceAvailable = errors.New("no free cell available")
)
