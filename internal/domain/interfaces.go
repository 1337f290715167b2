package domain

import "context"

// Matchmaking is the command-facing surface over beacon storage. Handlers
// build beacons from transport input and hand them here; expiry is enforced
// by the storage layer at query time, never by a background task.
type Matchmaking interface {
	// Add stores the beacon, merging into an existing beacon with the same
	// identity, and returns the active beacons now waiting for the same game
	// (the caller included).
	Add(ctx context.Context, beacon Beacon) ([]Beacon, error)

	// List returns all active beacons
	List(ctx context.Context) ([]Beacon, error)

	// ListForGame returns the active beacons for the sample's game
	ListForGame(ctx context.Context, sample Beacon) ([]Beacon, error)

	// Stop ends every beacon of the sample's user and reports whether any
	// active beacon existed
	Stop(ctx context.Context, sample Beacon) (bool, error)
}
