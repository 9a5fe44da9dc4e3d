package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type distanceCache struct {
	storage *Storage
}

func (c *distanceCache) Get(ctx context.Context, origin, destination string) (int, bool, error) {
	const query = `SELECT distance_km FROM distance_cache WHERE origin=$1 AND destination=$2`
	var km int
	if err := c.storage.pool.QueryRow(ctx, query, origin, destination).Scan(&km); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return km, true, nil
}

func (c *distanceCache) Put(ctx context.Context, origin, destination string, km int) error {
	const query = `INSERT INTO distance_cache (origin, destination, distance_km) VALUES ($1, $2, $3)
                   ON CONFLICT (origin, destination) DO UPDATE
                   SET distance_km = EXCLUDED.distance_km, updated_at = NOW()`
	_, err := c.storage.pool.Exec(ctx, query, origin, destination, km)
	return err
}
