package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
)

type bidRepository struct {
	storage *Storage
}

const bidColumns = `id, load_id, carrier_id, amount, counter_amount, status, created_at, updated_at`

func scanBid(row rowScanner) (model.Bid, error) {
	var b model.Bid
	err := row.Scan(&b.ID, &b.LoadID, &b.CarrierID, &b.Amount, &b.CounterAmount, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *bidRepository) Create(ctx context.Context, bid model.Bid) (*model.Bid, error) {
	const query = `INSERT INTO bids (load_id, carrier_id, amount, status) VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at, updated_at`
	if bid.Status == "" {
		bid.Status = model.BidStatusActive
	}
	err := r.storage.pool.QueryRow(ctx, query, bid.LoadID, bid.CarrierID, bid.Amount, bid.Status).
		Scan(&bid.ID, &bid.CreatedAt, &bid.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &bid, nil
}

func (r *bidRepository) GetByID(ctx context.Context, id int64) (*model.Bid, error) {
	const query = `SELECT ` + bidColumns + ` FROM bids WHERE id=$1`
	b, err := scanBid(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &b, nil
}

func (r *bidRepository) ListByLoad(ctx context.Context, loadID int64) ([]model.Bid, error) {
	const query = `SELECT ` + bidColumns + ` FROM bids WHERE load_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, loadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Bid
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *bidRepository) SetCounter(ctx context.Context, bidID int64, amount decimal.Decimal, loadFrom model.LoadStatus) error {
	const counterQuery = `UPDATE bids SET counter_amount=$1, updated_at=NOW()
                          WHERE id=$2 AND status='active' RETURNING load_id`
	const loadQuery = `UPDATE loads SET status='counter_received', updated_at=NOW() WHERE id=$1 AND status=$2`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var loadID int64
		if err := tx.QueryRow(ctx, counterQuery, amount, bidID).Scan(&loadID); err != nil {
			return activeBidError(err)
		}
		tag, err := tx.Exec(ctx, loadQuery, loadID, loadFrom)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}
		return nil
	})
}

func (r *bidRepository) Reject(ctx context.Context, bidID int64) error {
	const query = `UPDATE bids SET status='rejected', updated_at=NOW() WHERE id=$1 AND status='active'`
	tag, err := r.storage.pool.Exec(ctx, query, bidID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrConflict
	}
	return nil
}

const (
	rejectOtherBids = `UPDATE bids SET status='rejected', updated_at=NOW()
                       WHERE load_id=$1 AND id<>$2 AND status='active'`
	awardLoad = `UPDATE loads SET status='awarded', accepted_bid_amount=$1, updated_at=NOW()
                 WHERE id=$2 AND status=$3`
)

func (r *bidRepository) Accept(ctx context.Context, bidID int64, amount decimal.Decimal, loadFrom model.LoadStatus) error {
	const acceptQuery = `UPDATE bids SET status='accepted', updated_at=NOW()
                         WHERE id=$1 AND status='active' RETURNING load_id`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var loadID int64
		if err := tx.QueryRow(ctx, acceptQuery, bidID).Scan(&loadID); err != nil {
			return activeBidError(err)
		}
		return award(ctx, tx, loadID, bidID, amount, loadFrom)
	})
}

func (r *bidRepository) CreateAccepted(ctx context.Context, bid model.Bid, loadFrom model.LoadStatus) (*model.Bid, error) {
	const query = `INSERT INTO bids (load_id, carrier_id, amount, status) VALUES ($1, $2, $3, 'accepted')
                   RETURNING id, created_at, updated_at`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query, bid.LoadID, bid.CarrierID, bid.Amount).
			Scan(&bid.ID, &bid.CreatedAt, &bid.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrConflict
			}
			return mapError(err)
		}
		return award(ctx, tx, bid.LoadID, bid.ID, bid.Amount, loadFrom)
	})
	if err != nil {
		return nil, err
	}
	bid.Status = model.BidStatusAccepted
	return &bid, nil
}

// award rejects the other active bids and moves the load to awarded.
func award(ctx context.Context, tx pgx.Tx, loadID, bidID int64, amount decimal.Decimal, loadFrom model.LoadStatus) error {
	if _, err := tx.Exec(ctx, rejectOtherBids, loadID, bidID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, awardLoad, amount, loadID, loadFrom)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrConflict
	}
	return nil
}

// activeBidError maps a failed update of an active bid. Callers load the bid
// beforehand, so a missing row means it is no longer active.
func activeBidError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
		return domainErrors.ErrConflict
	}
	return err
}
