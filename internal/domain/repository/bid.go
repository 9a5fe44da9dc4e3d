package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// BidRepository describes persistence operations with carrier bids.
type BidRepository interface {
	Create(ctx context.Context, bid model.Bid) (*model.Bid, error)
	GetByID(ctx context.Context, id int64) (*model.Bid, error)
	ListByLoad(ctx context.Context, loadID int64) ([]model.Bid, error)
	// SetCounter records a counter offer on an active bid and moves its load from loadFrom to counter_received.
	SetCounter(ctx context.Context, bidID int64, amount decimal.Decimal, loadFrom model.LoadStatus) error
	Reject(ctx context.Context, bidID int64) error
	// Accept marks the bid accepted, rejects the remaining active bids and awards the load at amount.
	Accept(ctx context.Context, bidID int64, amount decimal.Decimal, loadFrom model.LoadStatus) error
	// CreateAccepted stores an already accepted bid and awards its load in one step.
	// Nothing is stored when the load has left loadFrom.
	CreateAccepted(ctx context.Context, bid model.Bid, loadFrom model.LoadStatus) (*model.Bid, error)
}
