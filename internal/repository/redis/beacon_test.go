package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"wp-matchmaking/internal/catalog"
	"wp-matchmaking/internal/domain"
)

// setupRepo connects to the Redis named by TEST_REDIS_ADDR, skipping the
// test when none is configured. Tests isolate themselves with random user
// ids rather than flushing the database.
func setupRepo(t *testing.T) *BeaconRepository {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping redis integration test")
	}

	client, err := Open(context.Background(), addr, "", 0)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	games, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return NewBeaconRepository(client, games)
}

func newTestBeacon(t *testing.T, userID, gameName string, hours float64, platformName string, start time.Time) domain.Beacon {
	t.Helper()
	games, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	game, err := games.ResolveGame(gameName)
	if err != nil {
		t.Fatalf("failed to resolve game %q: %v", gameName, err)
	}
	platform, err := games.ResolvePlatform(platformName)
	if err != nil {
		t.Fatalf("failed to resolve platform %q: %v", platformName, err)
	}
	return domain.NewBeacon(userID, "Test Dummy Name", game, domain.WaitTimeFromHours(hours), &platform, start)
}

func TestAddAndListByUserID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := uuid.NewString()

	beacon := newTestBeacon(t, userID, "st", 2.0, "pc", time.Time{})
	if err := repo.Add(ctx, []domain.Beacon{beacon}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	stored, err := repo.ListByUserID(ctx, beacon)
	if err != nil {
		t.Fatalf("ListByUserID failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("len(stored) = %d, want 1", len(stored))
	}
	if !stored[0].Equal(beacon) {
		t.Errorf("stored beacon %+v differs from added %+v", stored[0], beacon)
	}
}

func TestAddEmptyBatchFailsFast(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Add(context.Background(), nil)
	if !errors.Is(err, domain.ErrEmptyBatch) {
		t.Errorf("Add(nil) error = %v, want ErrEmptyBatch", err)
	}
}

func TestAddMergesSameIdentity(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := uuid.NewString()

	start := time.Now().UTC().Add(-30 * time.Minute).Truncate(time.Second)
	original := newTestBeacon(t, userID, "st", 1.5, "pc", start)
	if err := repo.Add(ctx, []domain.Beacon{original}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	update := newTestBeacon(t, userID, "st", 3.0, "pc", time.Time{})
	if err := repo.Add(ctx, []domain.Beacon{update}); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}

	stored, err := repo.ListByUserID(ctx, original)
	if err != nil {
		t.Fatalf("ListByUserID failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("len(stored) = %d, want exactly 1 after merge", len(stored))
	}
	if stored[0].MinutesAvailable != 180 {
		t.Errorf("MinutesAvailable = %d, want 180", stored[0].MinutesAvailable)
	}
	if stored[0].StartTimestamp() != original.StartTimestamp() {
		t.Errorf("start = %d, want the original %d (waiting clock must not reset)",
			stored[0].StartTimestamp(), original.StartTimestamp())
	}
}

func TestExpiredBeaconsNeverListed(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := uuid.NewString()

	expired := newTestBeacon(t, userID, "st", 1.0, "pc", time.Now().UTC().Add(-2*time.Hour))
	if err := repo.Add(ctx, []domain.Beacon{expired}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if stored, err := repo.ListByUserID(ctx, expired); err != nil || len(stored) != 0 {
		t.Errorf("ListByUserID = %v, %v; expired beacons must not appear", stored, err)
	}
}

func TestStopByUserID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := uuid.NewString()

	st := newTestBeacon(t, userID, "st", 2.0, "pc", time.Time{})
	sfv := newTestBeacon(t, userID, "sfv", 2.0, "pc", time.Time{})
	if err := repo.Add(ctx, []domain.Beacon{st, sfv}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	stopped, err := repo.StopByUserID(ctx, st)
	if err != nil {
		t.Fatalf("StopByUserID failed: %v", err)
	}
	if !stopped {
		t.Error("StopByUserID = false, want true for a user with active beacons")
	}

	stored, err := repo.ListByUserID(ctx, st)
	if err != nil {
		t.Fatalf("ListByUserID failed: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("ListByUserID returned %d beacons after stop, want 0", len(stored))
	}
}

func TestStopByUserIDNoActiveBeacons(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	sample := newTestBeacon(t, uuid.NewString(), "st", 2.0, "pc", time.Time{})
	stopped, err := repo.StopByUserID(ctx, sample)
	if err != nil {
		t.Fatalf("StopByUserID failed: %v", err)
	}
	if stopped {
		t.Error("StopByUserID = true for a user with no beacons, want false")
	}
}
