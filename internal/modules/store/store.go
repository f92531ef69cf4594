// README: Store persistence: PostgreSQL rows plus a Redis GEO index for nearby search.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vikrant8989/Drop-Go/internal/types"
)

const geoKey = "stores:geo"

type PGStore struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewPGStore(db *pgxpool.Pool, redis *redis.Client) *PGStore {
	return &PGStore{db: db, redis: redis}
}

const storeColumns = `
	id, name, address, city, pincode, owner_name, timings, is_open,
	price_per_day, price_small, price_medium, price_large,
	capacity, contact_number, description, email, images,
	latitude, longitude, ratings, total_reviews, amenities, created_by, created_at`

func (s *PGStore) Create(ctx context.Context, st *Store) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO stores (`+storeColumns+`
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24
		)`,
		string(st.ID), st.Name, st.Address, st.City, st.Pincode, st.OwnerName, st.Timings, st.IsOpen,
		st.PricePerDay, st.PricePerMonth["small"], st.PricePerMonth["medium"], st.PricePerMonth["large"],
		st.Capacity, st.ContactNumber, nullIfEmpty(st.Description), st.Email, st.Images,
		st.Position.Lat, st.Position.Lng, st.Ratings, st.TotalReviews, st.Amenities, st.CreatedBy, st.CreatedAt,
	)
	if err != nil {
		return err
	}

	// Index the location so nearby search can find it. The row is the source
	// of truth; a failed index write is logged by the caller, not fatal.
	return s.redis.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      string(st.ID),
		Longitude: st.Position.Lng,
		Latitude:  st.Position.Lat,
	}).Err()
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Store, error) {
	row := s.db.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, string(id))
	return scanStore(row)
}

func (s *PGStore) ListByCity(ctx context.Context, city string) ([]Store, error) {
	rows, err := s.db.Query(ctx, `SELECT `+storeColumns+` FROM stores WHERE city = $1 ORDER BY created_at DESC`, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStores(rows)
}

func (s *PGStore) ListAll(ctx context.Context) ([]Store, error) {
	rows, err := s.db.Query(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStores(rows)
}

// ReserveCapacity atomically decrements a store's remaining capacity by bags.
// The conditional write is the whole point: two concurrent bookings can never
// both pass a stale capacity check, because the floor is enforced by the
// UPDATE itself.
func (s *PGStore) ReserveCapacity(ctx context.Context, id types.ID, bags int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE stores SET capacity = capacity - $2
		WHERE id = $1 AND capacity >= $2`,
		string(id), bags,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Distinguish a missing store from an over-subscribed one.
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)`, string(id)).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInsufficientCapacity
}

// ReleaseCapacity returns bag slots to a store after a cancellation or a
// downsized edit.
func (s *PGStore) ReleaseCapacity(ctx context.Context, id types.ID, bags int) error {
	tag, err := s.db.Exec(ctx, `UPDATE stores SET capacity = capacity + $2 WHERE id = $1`, string(id), bags)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

// Nearby returns store IDs within radiusKm of p, nearest first.
func (s *PGStore) Nearby(ctx context.Context, p types.Point, radiusKm float64, limit int) ([]NearbyResult, error) {
	locs, err := s.redis.GeoSearchLocation(ctx, geoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  p.Lng,
			Latitude:   p.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, err
	}

	results := make([]NearbyResult, 0, len(locs))
	for _, loc := range locs {
		st, err := s.Get(ctx, types.ID(loc.Name))
		if errors.Is(err, ErrNotFound) {
			// Stale index entry; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, NearbyResult{Store: *st, DistanceKm: loc.Dist})
	}
	return results, nil
}

// OrderStatsByCity returns, for every store in the city, the count of its
// orders grouped by status.
func (s *PGStore) OrderStatsByCity(ctx context.Context, city string) (map[types.ID]OrderStats, error) {
	rows, err := s.db.Query(ctx, `
		SELECT o.store_id, o.status, COUNT(*)
		FROM orders o
		JOIN stores st ON st.id = o.store_id
		WHERE st.city = $1
		GROUP BY o.store_id, o.status`, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[types.ID]OrderStats)
	for rows.Next() {
		var storeID, status string
		var count int
		if err := rows.Scan(&storeID, &status, &count); err != nil {
			return nil, err
		}
		st := stats[types.ID(storeID)]
		switch status {
		case "Pending":
			st.Pending = count
		case "Confirmed":
			st.Confirmed = count
		case "Checked In":
			st.CheckedIn = count
		case "Checked Out":
			st.CheckedOut = count
		case "Cancelled":
			st.Cancelled = count
		case "Completed":
			st.Completed = count
		}
		stats[types.ID(storeID)] = st
	}
	return stats, rows.Err()
}

func scanStore(row pgx.Row) (*Store, error) {
	var st Store
	var id, createdBy string
	var desc sql.NullString
	var priceSmall, priceMedium, priceLarge int64

	err := row.Scan(
		&id, &st.Name, &st.Address, &st.City, &st.Pincode, &st.OwnerName, &st.Timings, &st.IsOpen,
		&st.PricePerDay, &priceSmall, &priceMedium, &priceLarge,
		&st.Capacity, &st.ContactNumber, &desc, &st.Email, &st.Images,
		&st.Position.Lat, &st.Position.Lng, &st.Ratings, &st.TotalReviews, &st.Amenities, &createdBy, &st.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	st.ID = types.ID(id)
	st.CreatedBy = createdBy
	if desc.Valid {
		st.Description = desc.String
	}
	st.PricePerMonth = map[string]int64{
		"small":  priceSmall,
		"medium": priceMedium,
		"large":  priceLarge,
	}
	return &st, nil
}

func collectStores(rows pgx.Rows) ([]Store, error) {
	var out []Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
