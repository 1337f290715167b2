package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wp-matchmaking/internal/domain"
	"wp-matchmaking/internal/repository"
)

const recordColumns = "unique_id, type_name, game_name, platform_name, game_platform, start_time, end_time, user_id, username"

// BeaconRepository implements repository.BeaconRepository for SQLite
type BeaconRepository struct {
	db      *DB
	catalog *domain.Catalog
}

// NewBeaconRepository creates a new BeaconRepository decoding records
// through the given catalog
func NewBeaconRepository(db *DB, catalog *domain.Catalog) *BeaconRepository {
	return &BeaconRepository{db: db, catalog: catalog}
}

// List returns all active beacons
func (r *BeaconRepository) List(ctx context.Context) ([]domain.Beacon, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM beacons
		WHERE type_name = ? AND end_time > ?
	`, domain.RecordTypeName, time.Now().Unix())
	if err != nil {
		return nil, storeErr("failed to query beacons", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListForGame returns all active beacons for the sample's game
func (r *BeaconRepository) ListForGame(ctx context.Context, sample domain.Beacon) ([]domain.Beacon, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM beacons
		WHERE game_name = ? AND end_time > ?
	`, sample.GameName, time.Now().Unix())
	if err != nil {
		return nil, storeErr("failed to query beacons by game", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListByUserID returns all active beacons for the sample's user
func (r *BeaconRepository) ListByUserID(ctx context.Context, sample domain.Beacon) ([]domain.Beacon, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM beacons
		WHERE user_id = ? AND end_time > ?
	`, sample.UserID, time.Now().Unix())
	if err != nil {
		return nil, storeErr("failed to query beacons by user", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// Add inserts or merges a single-user batch of beacons in one transaction
func (r *BeaconRepository) Add(ctx context.Context, beacons []domain.Beacon) error {
	if len(beacons) == 0 {
		return domain.ErrEmptyBatch
	}

	existing, err := r.ListByUserID(ctx, beacons[0])
	if err != nil {
		return err
	}
	merged := repository.MergeWithExisting(beacons, existing)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("failed to begin transaction", err)
	}
	for _, beacon := range merged {
		if err := upsertRecord(ctx, tx, domain.NewRecord(beacon)); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return storeErr("failed to commit beacons", err)
	}
	return nil
}

// StopByUserID rewrites every stored beacon of the user with an end time of
// now and reports whether any active beacon existed
func (r *BeaconRepository) StopByUserID(ctx context.Context, sample domain.Beacon) (bool, error) {
	now := time.Now().Unix()

	var active int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM beacons WHERE user_id = ? AND end_time > ?
	`, sample.UserID, now).Scan(&active)
	if err != nil {
		return false, storeErr("failed to count active beacons", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, storeErr("failed to begin transaction", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE beacons SET end_time = ? WHERE user_id = ?
	`, now, sample.UserID); err != nil {
		tx.Rollback()
		return false, storeErr("failed to stop beacons", err)
	}
	if err := tx.Commit(); err != nil {
		return false, storeErr("failed to commit stop", err)
	}

	return active > 0, nil
}

func upsertRecord(ctx context.Context, tx *sql.Tx, rec domain.Record) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO beacons (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(unique_id) DO UPDATE SET
			end_time = excluded.end_time,
			username = excluded.username
	`,
		rec.UniqueID,
		rec.TypeName,
		rec.GameName,
		rec.PlatformName,
		rec.GamePlatform,
		int64(rec.StartTime),
		int64(rec.EndTime),
		rec.UserID,
		rec.Username,
	)
	if err != nil {
		return storeErr("failed to write beacon "+rec.UniqueID, err)
	}
	return nil
}

func (r *BeaconRepository) collect(rows *sql.Rows) ([]domain.Beacon, error) {
	var beacons []domain.Beacon
	for rows.Next() {
		var rec domain.Record
		var start, end int64
		if err := rows.Scan(
			&rec.UniqueID,
			&rec.TypeName,
			&rec.GameName,
			&rec.PlatformName,
			&rec.GamePlatform,
			&start,
			&end,
			&rec.UserID,
			&rec.Username,
		); err != nil {
			return nil, storeErr("failed to scan beacon row", err)
		}
		rec.StartTime = domain.UnixSeconds(start)
		rec.EndTime = domain.UnixSeconds(end)

		beacon, err := rec.ToBeacon(r.catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to decode beacon %s: %w", rec.UniqueID, err)
		}
		beacons = append(beacons, beacon)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to iterate beacon rows", err)
	}
	return beacons, nil
}

// storeErr wraps a backend failure so callers can match ErrStoreUnavailable
func storeErr(msg string, err error) error {
	return fmt.Errorf("%s: %v: %w", msg, err, domain.ErrStoreUnavailable)
}
