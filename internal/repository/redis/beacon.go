// Package redis implements beacon storage on Redis. Each beacon lives as a
// JSON value under its unique id, indexed by three sorted sets scored with
// the beacon's end timestamp so active-only queries are a score range.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"wp-matchmaking/internal/domain"
	"wp-matchmaking/internal/repository"
)

const (
	beaconKey = "beacon:%s"
	activeKey = "beacons:active"
	gameKey   = "beacons:game:%s"
	userKey   = "beacons:user:%s"
)

// Open connects to Redis and verifies the connection
func Open(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return client, nil
}

// BeaconRepository implements repository.BeaconRepository on Redis
type BeaconRepository struct {
	client  *redis.Client
	catalog *domain.Catalog
}

// NewBeaconRepository creates a new BeaconRepository decoding records
// through the given catalog
func NewBeaconRepository(client *redis.Client, catalog *domain.Catalog) *BeaconRepository {
	return &BeaconRepository{client: client, catalog: catalog}
}

// List returns all active beacons
func (r *BeaconRepository) List(ctx context.Context) ([]domain.Beacon, error) {
	return r.queryActive(ctx, activeKey)
}

// ListForGame returns all active beacons for the sample's game
func (r *BeaconRepository) ListForGame(ctx context.Context, sample domain.Beacon) ([]domain.Beacon, error) {
	return r.queryActive(ctx, fmt.Sprintf(gameKey, sample.GameName))
}

// ListByUserID returns all active beacons for the sample's user
func (r *BeaconRepository) ListByUserID(ctx context.Context, sample domain.Beacon) ([]domain.Beacon, error) {
	return r.queryActive(ctx, fmt.Sprintf(userKey, sample.UserID))
}

// Add inserts new beacons, merging each one into an existing beacon with the
// same identity. The merge lookup is scoped to the first beacon's user.
func (r *BeaconRepository) Add(ctx context.Context, beacons []domain.Beacon) error {
	if len(beacons) == 0 {
		return domain.ErrEmptyBatch
	}

	existing, err := r.ListByUserID(ctx, beacons[0])
	if err != nil {
		return err
	}
	merged := repository.MergeWithExisting(beacons, existing)

	records := make([]domain.Record, 0, len(merged))
	for _, beacon := range merged {
		records = append(records, domain.NewRecord(beacon))
	}
	return r.writeRecords(ctx, records)
}

// StopByUserID ends every stored beacon of the sample's user and reports
// whether any active beacon existed
func (r *BeaconRepository) StopByUserID(ctx context.Context, sample domain.Beacon) (bool, error) {
	key := fmt.Sprintf(userKey, sample.UserID)
	ids, err := r.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return false, storeErr("listing user beacons", err)
	}
	if len(ids) == 0 {
		return false, nil
	}

	records, err := r.fetch(ctx, ids)
	if err != nil {
		return false, err
	}

	now := domain.UnixSeconds(time.Now().Unix())
	anyActive := false
	for i := range records {
		if records[i].EndTime > now {
			anyActive = true
		}
		records[i].EndTime = now
	}
	if err := r.writeRecords(ctx, records); err != nil {
		return false, err
	}
	return anyActive, nil
}

// queryActive returns the decoded beacons of an index whose score is still in
// the future
func (r *BeaconRepository) queryActive(ctx context.Context, key string) ([]domain.Beacon, error) {
	now := time.Now().Unix()
	ids, err := r.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(now, 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, storeErr("querying index "+key, err)
	}
	if len(ids) == 0 {
		return []domain.Beacon{}, nil
	}

	records, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	beacons := make([]domain.Beacon, 0, len(records))
	for _, rec := range records {
		beacon, err := rec.ToBeacon(r.catalog)
		if err != nil {
			return nil, fmt.Errorf("decoding beacon %s: %w", rec.UniqueID, err)
		}
		beacons = append(beacons, beacon)
	}
	return beacons, nil
}

func (r *BeaconRepository) fetch(ctx context.Context, ids []string) ([]domain.Record, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf(beaconKey, id))
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeErr("fetching beacons", err)
	}

	records := make([]domain.Record, 0, len(values))
	for i, value := range values {
		data, ok := value.(string)
		if !ok {
			// Index entry without a value, skip the orphan.
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decoding beacon %s: %w", ids[i], err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// writeRecords stores records and their index entries in one transaction
func (r *BeaconRepository) writeRecords(ctx context.Context, records []domain.Record) error {
	pipe := r.client.TxPipeline()
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding beacon %s: %w", rec.UniqueID, err)
		}
		score := float64(rec.EndTime)
		member := redis.Z{Score: score, Member: rec.UniqueID}
		pipe.Set(ctx, fmt.Sprintf(beaconKey, rec.UniqueID), data, 0)
		pipe.ZAdd(ctx, activeKey, member)
		pipe.ZAdd(ctx, fmt.Sprintf(gameKey, rec.GameName), member)
		pipe.ZAdd(ctx, fmt.Sprintf(userKey, rec.UserID), member)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("writing beacons", err)
	}
	return nil
}

func storeErr(msg string, err error) error {
	return fmt.Errorf("%s: %v: %w", msg, err, domain.ErrStoreUnavailable)
}
