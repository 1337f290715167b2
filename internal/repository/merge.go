package repository

import "wp-matchmaking/internal/domain"

type identityKey struct {
	userID   string
	username string
	gameName string
	platform string
}

func identityOf(b domain.Beacon) identityKey {
	return identityKey{
		userID:   b.UserID,
		username: b.Username,
		gameName: b.GameName,
		platform: b.Platform,
	}
}

// MergeWithExisting applies the merge-on-add rule shared by all backends: a
// beacon whose identity matches an existing one becomes that existing beacon
// with the new wait time, keeping the stored start; anything else passes
// through as a fresh insert. Output order follows input order.
func MergeWithExisting(beacons, existing []domain.Beacon) []domain.Beacon {
	byIdentity := make(map[identityKey]domain.Beacon, len(existing))
	for _, current := range existing {
		byIdentity[identityOf(current)] = current
	}

	merged := make([]domain.Beacon, 0, len(beacons))
	for _, beacon := range beacons {
		if current, ok := byIdentity[identityOf(beacon)]; ok {
			wait := domain.WaitTimeFromMinutes(beacon.MinutesAvailable)
			merged = append(merged, current.WithWaitTime(wait))
		} else {
			merged = append(merged, beacon)
		}
	}
	return merged
}
