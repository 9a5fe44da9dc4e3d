package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// LoadRepository describes persistence operations with loads.
//
// Status changes are compare-and-set: they apply only while the load is still in
// the expected status and return errors.ErrConflict otherwise.
type LoadRepository interface {
	Create(ctx context.Context, load model.Load) (*model.Load, error)
	GetByID(ctx context.Context, id int64) (*model.Load, error)
	ListByShipper(ctx context.Context, shipperID int64) ([]model.Load, error)
	// ListByStatus returns every load when no status is given.
	ListByStatus(ctx context.Context, statuses ...model.LoadStatus) ([]model.Load, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.LoadStatus) error
	SetAdminPrice(ctx context.Context, id int64, price decimal.Decimal, from, to model.LoadStatus) error
	SetSuggestedPrice(ctx context.Context, id int64, price decimal.Decimal) error
	// SelectUnquoted claims up to limit pending loads without a suggested price.
	SelectUnquoted(ctx context.Context, limit int) ([]model.Load, error)
}
