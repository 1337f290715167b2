// Package repository defines the persistence contract for beacon storage and
// the merge rule every backend applies on add.
package repository

import (
	"context"

	"wp-matchmaking/internal/domain"
)

// BeaconRepository is the store contract every beacon backend satisfies.
//
// Expiry is enforced lazily: the list methods only return beacons whose end
// timestamp is still in the future, while stopped or expired rows may stay
// stored. Backends do not retry; transient errors wrap
// domain.ErrStoreUnavailable. The read-merge-write sequence in Add is not
// atomic against a concurrent Add or Stop for the same user; the last write
// wins.
type BeaconRepository interface {
	// List returns all active beacons
	List(ctx context.Context) ([]domain.Beacon, error)

	// ListForGame returns all active beacons for the sample's game
	ListForGame(ctx context.Context, sample domain.Beacon) ([]domain.Beacon, error)

	// ListByUserID returns all active beacons for the sample's user
	ListByUserID(ctx context.Context, sample domain.Beacon) ([]domain.Beacon, error)

	// Add inserts new beacons, or merges each one into an existing beacon
	// with the same identity by replacing its wait time while keeping the
	// stored start. The merge lookup is scoped to the FIRST beacon's user,
	// so callers must only pass beacons for one user per call. An empty
	// batch is a programming error and fails with domain.ErrEmptyBatch.
	Add(ctx context.Context, beacons []domain.Beacon) error

	// StopByUserID ends every stored beacon of the sample's user and reports
	// whether any active beacon existed
	StopByUserID(ctx context.Context, sample domain.Beacon) (bool, error)
}
