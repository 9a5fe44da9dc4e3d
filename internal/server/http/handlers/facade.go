package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/invoice"
	"github.com/polkiloo/freightdesk/internal/pricing"
	"github.com/polkiloo/freightdesk/internal/usecase"
	"github.com/polkiloo/freightdesk/internal/workflow"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (usecase.Actor, error)
}

// LoadFacade covers load submission, listing and admin workflow operations.
type LoadFacade interface {
	SubmitLoad(ctx context.Context, shipperID int64, in usecase.LoadInput) (*model.Load, error)
	ShipperLoads(ctx context.Context, shipperID int64) ([]model.Load, error)
	Marketplace(ctx context.Context) ([]model.Load, error)
	LoadsByStatus(ctx context.Context, statuses ...model.LoadStatus) ([]model.Load, error)
	Load(ctx context.Context, actor usecase.Actor, id int64) (*model.Load, error)
	PriceLoad(ctx context.Context, id int64, price decimal.Decimal) (*model.Load, error)
	ApplyAction(ctx context.Context, id int64, action workflow.Action) (*model.Load, error)
	QuoteForLoad(ctx context.Context, id int64) (*model.Load, pricing.Quote, error)
	EstimatePrice(ctx context.Context, in pricing.Input) pricing.Quote
}

// BidFacade covers carrier bidding and admin negotiation.
type BidFacade interface {
	PlaceBid(ctx context.Context, carrierID, loadID int64, amount decimal.Decimal) (*model.Bid, error)
	AcceptPostedPrice(ctx context.Context, carrierID, loadID int64) (*model.Bid, error)
	CounterBid(ctx context.Context, bidID int64, amount decimal.Decimal) (*model.Bid, error)
	AcceptBid(ctx context.Context, actor usecase.Actor, bidID int64) (*model.Bid, error)
	RejectBid(ctx context.Context, bidID int64) (*model.Bid, error)
	Bids(ctx context.Context, actor usecase.Actor, loadID int64) ([]model.Bid, error)
}

// InvoiceFacade covers invoice composition and approval.
type InvoiceFacade interface {
	PreviewInvoice(ctx context.Context, loadID int64, form invoice.Form) (invoice.Draft, error)
	SaveInvoice(ctx context.Context, loadID int64, form invoice.Form) (usecase.InvoiceResult, error)
	SendInvoice(ctx context.Context, loadID int64, form invoice.Form, idempotencyKey string) (usecase.InvoiceResult, error)
	Invoice(ctx context.Context, actor usecase.Actor, loadID int64) (*model.Invoice, error)
	ApproveInvoice(ctx context.Context, actor usecase.Actor, loadID int64) (*model.Invoice, error)
}

// FreightFacade aggregates the full set of operations used across handlers.
type FreightFacade interface {
	AuthFacade
	LoadFacade
	BidFacade
	InvoiceFacade
}
