package repository

import (
	"testing"
	"time"

	"wp-matchmaking/internal/domain"
)

var mergeTestGame = domain.Game{
	Name:            "st",
	Title:           "Super Turbo",
	Platforms:       []string{"ps4", "pc"},
	DefaultPlatform: "pc",
}

func mergeBeacon(userID, username string, hours float64, start time.Time) domain.Beacon {
	platform := domain.Platform{Value: "pc"}
	return domain.NewBeacon(userID, username, mergeTestGame, domain.WaitTimeFromHours(hours), &platform, start)
}

func TestMergeWithExistingReplacesWaitTimeOnly(t *testing.T) {
	start := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	existing := mergeBeacon("1", "Player One", 1.5, start)
	incoming := mergeBeacon("1", "Player One", 3.0, time.Time{})

	merged := MergeWithExisting([]domain.Beacon{incoming}, []domain.Beacon{existing})

	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if merged[0].MinutesAvailable != 180 {
		t.Errorf("MinutesAvailable = %d, want 180", merged[0].MinutesAvailable)
	}
	if merged[0].StartTimestamp() != existing.StartTimestamp() {
		t.Errorf("start = %d, want the existing beacon's %d",
			merged[0].StartTimestamp(), existing.StartTimestamp())
	}
}

func TestMergeWithExistingPassesThroughNewIdentities(t *testing.T) {
	existing := mergeBeacon("1", "Player One", 2.0, time.Time{})
	fresh := mergeBeacon("2", "Player Two", 2.0, time.Time{})

	merged := MergeWithExisting([]domain.Beacon{fresh}, []domain.Beacon{existing})

	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if !merged[0].Equal(fresh) {
		t.Errorf("fresh beacon should pass through unchanged, got %+v", merged[0])
	}
}

func TestMergeWithExistingKeepsInputOrder(t *testing.T) {
	start := time.Now().UTC().Add(-time.Hour)
	existingPC := mergeBeacon("1", "Player One", 2.0, start)

	other := domain.Platform{Value: "ps4"}
	incomingPS4 := domain.NewBeacon("1", "Player One", mergeTestGame, domain.WaitTimeFromHours(1.0), &other, time.Time{})
	incomingPC := mergeBeacon("1", "Player One", 4.0, time.Time{})

	merged := MergeWithExisting(
		[]domain.Beacon{incomingPS4, incomingPC},
		[]domain.Beacon{existingPC},
	)

	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	if merged[0].Platform != "ps4" {
		t.Errorf("merged[0].Platform = %q, want ps4 (input order)", merged[0].Platform)
	}
	if merged[1].StartTimestamp() != existingPC.StartTimestamp() {
		t.Error("pc beacon should have merged against the existing row")
	}
}

func TestMergeWithExistingEmptyInputs(t *testing.T) {
	if got := MergeWithExisting(nil, nil); len(got) != 0 {
		t.Errorf("merging nothing should yield nothing, got %v", got)
	}

	fresh := mergeBeacon("9", "Player Nine", 1.0, time.Time{})
	merged := MergeWithExisting([]domain.Beacon{fresh}, nil)
	if len(merged) != 1 || !merged[0].Equal(fresh) {
		t.Errorf("merge against empty store should pass through, got %v", merged)
	}
}
