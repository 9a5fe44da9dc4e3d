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

// facadeStub implements FreightFacade. Unset functions answer with zero values.
type facadeStub struct {
	RegisterFn     func(ctx context.Context, login, password string, role model.Role) (*model.User, string, error)
	AuthenticateFn func(ctx context.Context, login, password string) (*model.User, string, error)
	ParseTokenFn   func(token string) (usecase.Actor, error)

	SubmitLoadFn    func(ctx context.Context, shipperID int64, in usecase.LoadInput) (*model.Load, error)
	ShipperLoadsFn  func(ctx context.Context, shipperID int64) ([]model.Load, error)
	MarketplaceFn   func(ctx context.Context) ([]model.Load, error)
	LoadsByStatusFn func(ctx context.Context, statuses ...model.LoadStatus) ([]model.Load, error)
	LoadFn          func(ctx context.Context, actor usecase.Actor, id int64) (*model.Load, error)
	PriceLoadFn     func(ctx context.Context, id int64, price decimal.Decimal) (*model.Load, error)
	ApplyActionFn   func(ctx context.Context, id int64, action workflow.Action) (*model.Load, error)
	QuoteForLoadFn  func(ctx context.Context, id int64) (*model.Load, pricing.Quote, error)
	EstimatePriceFn func(ctx context.Context, in pricing.Input) pricing.Quote

	PlaceBidFn          func(ctx context.Context, carrierID, loadID int64, amount decimal.Decimal) (*model.Bid, error)
	AcceptPostedPriceFn func(ctx context.Context, carrierID, loadID int64) (*model.Bid, error)
	CounterBidFn        func(ctx context.Context, bidID int64, amount decimal.Decimal) (*model.Bid, error)
	AcceptBidFn         func(ctx context.Context, actor usecase.Actor, bidID int64) (*model.Bid, error)
	RejectBidFn         func(ctx context.Context, bidID int64) (*model.Bid, error)
	BidsFn              func(ctx context.Context, actor usecase.Actor, loadID int64) ([]model.Bid, error)

	PreviewInvoiceFn func(ctx context.Context, loadID int64, form invoice.Form) (invoice.Draft, error)
	SaveInvoiceFn    func(ctx context.Context, loadID int64, form invoice.Form) (usecase.InvoiceResult, error)
	SendInvoiceFn    func(ctx context.Context, loadID int64, form invoice.Form, key string) (usecase.InvoiceResult, error)
	InvoiceFn        func(ctx context.Context, actor usecase.Actor, loadID int64) (*model.Invoice, error)
	ApproveInvoiceFn func(ctx context.Context, actor usecase.Actor, loadID int64) (*model.Invoice, error)
}

var _ FreightFacade = facadeStub{}

func (s facadeStub) Register(ctx context.Context, login, password string, role model.Role) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, role)
	}
	return &model.User{ID: 1, Login: login, Role: role}, "token", nil
}

func (s facadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login, Role: model.RoleShipper}, "token", nil
}

func (s facadeStub) ParseToken(token string) (usecase.Actor, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return usecase.Actor{UserID: 1, Role: model.RoleShipper}, nil
}

func (s facadeStub) SubmitLoad(ctx context.Context, shipperID int64, in usecase.LoadInput) (*model.Load, error) {
	if s.SubmitLoadFn != nil {
		return s.SubmitLoadFn(ctx, shipperID, in)
	}
	return &model.Load{ID: 1, ShipperID: shipperID, Status: model.LoadStatusPending}, nil
}

func (s facadeStub) ShipperLoads(ctx context.Context, shipperID int64) ([]model.Load, error) {
	if s.ShipperLoadsFn != nil {
		return s.ShipperLoadsFn(ctx, shipperID)
	}
	return nil, nil
}

func (s facadeStub) Marketplace(ctx context.Context) ([]model.Load, error) {
	if s.MarketplaceFn != nil {
		return s.MarketplaceFn(ctx)
	}
	return nil, nil
}

func (s facadeStub) LoadsByStatus(ctx context.Context, statuses ...model.LoadStatus) ([]model.Load, error) {
	if s.LoadsByStatusFn != nil {
		return s.LoadsByStatusFn(ctx, statuses...)
	}
	return nil, nil
}

func (s facadeStub) Load(ctx context.Context, actor usecase.Actor, id int64) (*model.Load, error) {
	if s.LoadFn != nil {
		return s.LoadFn(ctx, actor, id)
	}
	return &model.Load{ID: id, Status: model.LoadStatusPending}, nil
}

func (s facadeStub) PriceLoad(ctx context.Context, id int64, price decimal.Decimal) (*model.Load, error) {
	if s.PriceLoadFn != nil {
		return s.PriceLoadFn(ctx, id, price)
	}
	return &model.Load{ID: id, Status: model.LoadStatusPriced, AdminPrice: decimal.NewNullDecimal(price)}, nil
}

func (s facadeStub) ApplyAction(ctx context.Context, id int64, action workflow.Action) (*model.Load, error) {
	if s.ApplyActionFn != nil {
		return s.ApplyActionFn(ctx, id, action)
	}
	return &model.Load{ID: id}, nil
}

func (s facadeStub) QuoteForLoad(ctx context.Context, id int64) (*model.Load, pricing.Quote, error) {
	if s.QuoteForLoadFn != nil {
		return s.QuoteForLoadFn(ctx, id)
	}
	return &model.Load{ID: id}, pricing.Quote{}, nil
}

func (s facadeStub) EstimatePrice(ctx context.Context, in pricing.Input) pricing.Quote {
	if s.EstimatePriceFn != nil {
		return s.EstimatePriceFn(ctx, in)
	}
	return pricing.Quote{}
}

func (s facadeStub) PlaceBid(ctx context.Context, carrierID, loadID int64, amount decimal.Decimal) (*model.Bid, error) {
	if s.PlaceBidFn != nil {
		return s.PlaceBidFn(ctx, carrierID, loadID, amount)
	}
	return &model.Bid{ID: 1, LoadID: loadID, CarrierID: carrierID, Amount: amount, Status: model.BidStatusActive}, nil
}

func (s facadeStub) AcceptPostedPrice(ctx context.Context, carrierID, loadID int64) (*model.Bid, error) {
	if s.AcceptPostedPriceFn != nil {
		return s.AcceptPostedPriceFn(ctx, carrierID, loadID)
	}
	return &model.Bid{ID: 1, LoadID: loadID, CarrierID: carrierID, Status: model.BidStatusAccepted}, nil
}

func (s facadeStub) CounterBid(ctx context.Context, bidID int64, amount decimal.Decimal) (*model.Bid, error) {
	if s.CounterBidFn != nil {
		return s.CounterBidFn(ctx, bidID, amount)
	}
	return &model.Bid{ID: bidID, CounterAmount: decimal.NewNullDecimal(amount), Status: model.BidStatusActive}, nil
}

func (s facadeStub) AcceptBid(ctx context.Context, actor usecase.Actor, bidID int64) (*model.Bid, error) {
	if s.AcceptBidFn != nil {
		return s.AcceptBidFn(ctx, actor, bidID)
	}
	return &model.Bid{ID: bidID, Status: model.BidStatusAccepted}, nil
}

func (s facadeStub) RejectBid(ctx context.Context, bidID int64) (*model.Bid, error) {
	if s.RejectBidFn != nil {
		return s.RejectBidFn(ctx, bidID)
	}
	return &model.Bid{ID: bidID, Status: model.BidStatusRejected}, nil
}

func (s facadeStub) Bids(ctx context.Context, actor usecase.Actor, loadID int64) ([]model.Bid, error) {
	if s.BidsFn != nil {
		return s.BidsFn(ctx, actor, loadID)
	}
	return nil, nil
}

func (s facadeStub) PreviewInvoice(ctx context.Context, loadID int64, form invoice.Form) (invoice.Draft, error) {
	if s.PreviewInvoiceFn != nil {
		return s.PreviewInvoiceFn(ctx, loadID, form)
	}
	return invoice.Compose(loadID, 1, invoice.Options{}, form), nil
}

func (s facadeStub) SaveInvoice(ctx context.Context, loadID int64, form invoice.Form) (usecase.InvoiceResult, error) {
	if s.SaveInvoiceFn != nil {
		return s.SaveInvoiceFn(ctx, loadID, form)
	}
	return usecase.InvoiceResult{Draft: invoice.Compose(loadID, 1, invoice.Options{}, form)}, nil
}

func (s facadeStub) SendInvoice(ctx context.Context, loadID int64, form invoice.Form, key string) (usecase.InvoiceResult, error) {
	if s.SendInvoiceFn != nil {
		return s.SendInvoiceFn(ctx, loadID, form, key)
	}
	return usecase.InvoiceResult{Draft: invoice.Compose(loadID, 1, invoice.Options{}, form)}, nil
}

func (s facadeStub) Invoice(ctx context.Context, actor usecase.Actor, loadID int64) (*model.Invoice, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, actor, loadID)
	}
	return &model.Invoice{LoadID: loadID}, nil
}

func (s facadeStub) ApproveInvoice(ctx context.Context, actor usecase.Actor, loadID int64) (*model.Invoice, error) {
	if s.ApproveInvoiceFn != nil {
		return s.ApproveInvoiceFn(ctx, actor, loadID)
	}
	return &model.Invoice{LoadID: loadID, Status: model.InvoiceStatusApproved}, nil
}
