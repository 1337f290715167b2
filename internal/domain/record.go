package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// RecordTypeName discriminates beacon records in shared storage
const RecordTypeName = "Beacon"

// UnixSeconds is a Unix timestamp that tolerates both integer and
// floating-point wire encodings, normalising by truncation.
type UnixSeconds int64

// UnmarshalJSON accepts either numeric form and truncates fractional seconds
func (u *UnixSeconds) UnmarshalJSON(data []byte) error {
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("timestamp %s: %w", data, err)
	}
	*u = UnixSeconds(int64(seconds))
	return nil
}

// Record is the backend-agnostic persisted shape of a Beacon
type Record struct {
	UniqueID     string      `json:"UniqueId"`
	TypeName     string      `json:"TypeName"`
	GameName     string      `json:"GameName"`
	PlatformName string      `json:"PlatformName"`
	GamePlatform string      `json:"GamePlatformCombination"`
	StartTime    UnixSeconds `json:"StartTime"`
	EndTime      UnixSeconds `json:"EndTime"`
	UserID       string      `json:"UserId"`
	Username     string      `json:"Username"`
}

// NewRecord encodes a Beacon for storage. The unique id is the identity
// tuple plus the original start, so a merged update overwrites the same row
// rather than creating a sibling.
func NewRecord(b Beacon) Record {
	return Record{
		UniqueID:     fmt.Sprintf("%s-%s-%s-%d", b.UserID, b.GameName, b.Platform, b.StartTimestamp()),
		TypeName:     RecordTypeName,
		GameName:     b.GameName,
		PlatformName: b.Platform,
		GamePlatform: fmt.Sprintf("%s-%s", b.GameName, b.Platform),
		StartTime:    UnixSeconds(b.StartTimestamp()),
		EndTime:      UnixSeconds(b.EndTimestamp()),
		UserID:       b.UserID,
		Username:     b.Username,
	}
}

// ToBeacon decodes a Record back into a Beacon, resolving the stored game
// name through the given catalog.
func (r Record) ToBeacon(catalog *Catalog) (Beacon, error) {
	game, err := catalog.ResolveGame(r.GameName)
	if err != nil {
		return Beacon{}, err
	}
	platform, err := catalog.ResolvePlatform(r.PlatformName)
	if err != nil {
		return Beacon{}, err
	}
	wait := WaitTimeFromTimestamps(int64(r.StartTime), int64(r.EndTime))
	start := time.Unix(int64(r.StartTime), 0).UTC()
	return NewBeacon(r.UserID, r.Username, game, wait, &platform, start), nil
}
