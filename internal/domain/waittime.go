package domain

import (
	"fmt"
	"strconv"
)

const (
	// MinWaitHours is the shortest wait a beacon can advertise (15 minutes)
	MinWaitHours = 0.25
	// MaxWaitHours is the longest wait a beacon can advertise
	MaxWaitHours = 24.0
)

// WaitTime is how long a player is willing to wait for a match. It is held
// in hours and clamped to [MinWaitHours, MaxWaitHours] on every construction
// path, no matter which unit it was built from.
type WaitTime struct {
	Hours float64
}

// ParseWaitTime builds a WaitTime from raw user input in hours
func ParseWaitTime(raw string) (WaitTime, error) {
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return WaitTime{}, fmt.Errorf("%q: %w", raw, ErrInvalidNumber)
	}
	return WaitTimeFromHours(hours), nil
}

// WaitTimeFromHours builds a clamped WaitTime from a number of hours
func WaitTimeFromHours(hours float64) WaitTime {
	return WaitTime{Hours: clampHours(hours)}
}

// WaitTimeFromMinutes builds a clamped WaitTime from a number of minutes
func WaitTimeFromMinutes(minutes int) WaitTime {
	return WaitTimeFromHours(float64(minutes) / 60)
}

// WaitTimeFromTimestamps builds a clamped WaitTime from a start and end Unix
// timestamp pair
func WaitTimeFromTimestamps(start, end int64) WaitTime {
	return WaitTimeFromHours(float64(end-start) / 3600)
}

// Minutes returns the wait time in whole minutes
func (w WaitTime) Minutes() int {
	return int(w.Hours * 60)
}

// Equal reports whether two wait times agree to the minute. Sub-minute
// differences are insignificant.
func (w WaitTime) Equal(other WaitTime) bool {
	return w.Minutes() == other.Minutes()
}

func clampHours(hours float64) float64 {
	if hours < MinWaitHours {
		return MinWaitHours
	}
	if hours > MaxWaitHours {
		return MaxWaitHours
	}
	return hours
}
