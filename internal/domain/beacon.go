package domain

import "time"

// Beacon is a time-boxed matchmaking request: one player waiting a bounded
// window for one game on one platform.
//
// Two beacons share an identity when user id, username, game name and
// platform all match. Wait time and start are deliberately not part of
// identity, so re-adding a beacon extends or shortens the existing one
// instead of duplicating it.
type Beacon struct {
	UserID           string // Opaque transport user id, kept as a string
	Username         string // Display name, snapshotted at creation
	GameName         string // Canonical Game.Name, never the alias typed
	Platform         string // Resolved platform, defaulted per game
	MinutesAvailable int    // Wait window length in minutes
	start            time.Time
}

// NewBeacon builds a Beacon from resolved domain values. A nil platform, or
// one the game is not on, falls back to the game's default. A zero start
// means now.
func NewBeacon(userID, username string, game Game, wait WaitTime, platform *Platform, start time.Time) Beacon {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return Beacon{
		UserID:           userID,
		Username:         username,
		GameName:         game.Name,
		Platform:         PlatformOrDefault(platform, game),
		MinutesAvailable: wait.Minutes(),
		start:            start,
	}
}

// WithWaitTime returns a copy with the wait time replaced. Identity fields
// and the original start are preserved, so elapsed waiting time stays
// visible after a merge.
func (b Beacon) WithWaitTime(wait WaitTime) Beacon {
	updated := b
	updated.MinutesAvailable = wait.Minutes()
	return updated
}

// StartTimestamp returns the start as a Unix timestamp
func (b Beacon) StartTimestamp() int64 {
	return b.start.Unix()
}

// EndTimestamp returns the Unix timestamp at which the beacon expires
func (b Beacon) EndTimestamp() int64 {
	return b.start.Add(time.Duration(b.MinutesAvailable) * time.Minute).Unix()
}

// MinutesRemaining returns the whole minutes until expiry, floored at zero
func (b Beacon) MinutesRemaining() int {
	remaining := int(b.EndTimestamp()-time.Now().Unix()) / 60
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SameIdentity reports whether two beacons refer to the same waiting player:
// user id, username, game and platform. This is the merge target check.
func (b Beacon) SameIdentity(other Beacon) bool {
	return b.UserID == other.UserID &&
		b.Username == other.Username &&
		b.GameName == other.GameName &&
		b.Platform == other.Platform
}

// Equal additionally compares wait time and start timestamp. Used by tests
// and round-trip verification, never by the store.
func (b Beacon) Equal(other Beacon) bool {
	return b.SameIdentity(other) &&
		b.MinutesAvailable == other.MinutesAvailable &&
		b.StartTimestamp() == other.StartTimestamp()
}
