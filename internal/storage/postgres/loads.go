package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
)

type loadRepository struct {
	storage *Storage
}

const loadColumns = `id, shipper_id, pickup_city, pickup_state, pickup_address,
       dropoff_city, dropoff_state, dropoff_address, weight_tons, truck_type, rate_type,
       shipper_price, admin_price, accepted_bid_amount, suggested_price, status, created_at, updated_at`

// claims older than this are considered abandoned by a crashed worker.
const quoteClaimTimeout = "1 minute"

func scanLoad(row rowScanner) (model.Load, error) {
	var l model.Load
	err := row.Scan(
		&l.ID, &l.ShipperID,
		&l.Pickup.City, &l.Pickup.State, &l.Pickup.Address,
		&l.Dropoff.City, &l.Dropoff.State, &l.Dropoff.Address,
		&l.WeightTons, &l.TruckType, &l.RateType,
		&l.ShipperPrice, &l.AdminPrice, &l.AcceptedBidAmount, &l.SuggestedPrice,
		&l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func collectLoads(rows pgx.Rows) ([]model.Load, error) {
	defer rows.Close()

	var result []model.Load
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *loadRepository) Create(ctx context.Context, load model.Load) (*model.Load, error) {
	const query = `INSERT INTO loads (shipper_id, pickup_city, pickup_state, pickup_address,
                       dropoff_city, dropoff_state, dropoff_address, weight_tons, truck_type, rate_type,
                       shipper_price, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		load.ShipperID, load.Pickup.City, load.Pickup.State, load.Pickup.Address,
		load.Dropoff.City, load.Dropoff.State, load.Dropoff.Address,
		load.WeightTons, load.TruckType, load.RateType, load.ShipperPrice, load.Status,
	).Scan(&load.ID, &load.CreatedAt, &load.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &load, nil
}

func (r *loadRepository) GetByID(ctx context.Context, id int64) (*model.Load, error) {
	const query = `SELECT ` + loadColumns + ` FROM loads WHERE id=$1`
	l, err := scanLoad(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &l, nil
}

func (r *loadRepository) ListByShipper(ctx context.Context, shipperID int64) ([]model.Load, error) {
	const query = `SELECT ` + loadColumns + ` FROM loads WHERE shipper_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, shipperID)
	if err != nil {
		return nil, err
	}
	return collectLoads(rows)
}

func (r *loadRepository) ListByStatus(ctx context.Context, statuses ...model.LoadStatus) ([]model.Load, error) {
	if len(statuses) == 0 {
		const query = `SELECT ` + loadColumns + ` FROM loads ORDER BY created_at DESC`
		rows, err := r.storage.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		return collectLoads(rows)
	}

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	const query = `SELECT ` + loadColumns + ` FROM loads WHERE status = ANY($1) ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, names)
	if err != nil {
		return nil, err
	}
	return collectLoads(rows)
}

func (r *loadRepository) UpdateStatus(ctx context.Context, id int64, from, to model.LoadStatus) error {
	const query = `UPDATE loads SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return loadMissOrConflict(ctx, r.storage.pool, id)
	}
	return nil
}

func (r *loadRepository) SetAdminPrice(ctx context.Context, id int64, price decimal.Decimal, from, to model.LoadStatus) error {
	const query = `UPDATE loads SET admin_price=$1, status=$2, updated_at=NOW() WHERE id=$3 AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, price, to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return loadMissOrConflict(ctx, r.storage.pool, id)
	}
	return nil
}

func (r *loadRepository) SetSuggestedPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	const query = `UPDATE loads SET suggested_price=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, price, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *loadRepository) SelectUnquoted(ctx context.Context, limit int) ([]model.Load, error) {
	const selectQuery = `SELECT ` + loadColumns + `
                         FROM loads
                         WHERE status = 'pending' AND suggested_price IS NULL
                           AND (quote_attempted_at IS NULL OR quote_attempted_at < NOW() - INTERVAL '` + quoteClaimTimeout + `')
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`
	const claimQuery = `UPDATE loads SET quote_attempted_at=NOW() WHERE id = ANY($1)`

	var loads []model.Load
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		loads, err = collectLoads(rows)
		if err != nil {
			return err
		}
		if len(loads) == 0 {
			return nil
		}

		ids := make([]int64, len(loads))
		for i, l := range loads {
			ids[i] = l.ID
		}
		_, err = tx.Exec(ctx, claimQuery, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loads, nil
}

// missOrConflict explains why a compare-and-set update touched no rows.
func loadMissOrConflict(ctx context.Context, q querier, id int64) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM loads WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrConflict
}
