package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/invoice"
	"github.com/polkiloo/freightdesk/internal/pricing"
	"github.com/polkiloo/freightdesk/internal/usecase"
	"github.com/polkiloo/freightdesk/internal/workflow"
)

type FreightFacade struct {
	auth     *usecase.AuthUseCase
	loads    *usecase.LoadUseCase
	bids     *usecase.BidUseCase
	invoices *usecase.InvoiceUseCase
}

func NewFreightFacade(auth *usecase.AuthUseCase, loads *usecase.LoadUseCase, bids *usecase.BidUseCase, invoices *usecase.InvoiceUseCase) *FreightFacade {
	return &FreightFacade{auth: auth, loads: loads, bids: bids, invoices: invoices}
}

func (f *FreightFacade) Register(ctx context.Context, login, password string, role model.Role) (*model.User, string, error) {
	return f.auth.Register(ctx, login, password, role)
}

func (f *FreightFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *FreightFacade) ParseToken(token string) (usecase.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *FreightFacade) EnsureAdmin(ctx context.Context, login, password string) (*model.User, error) {
	return f.auth.EnsureAdmin(ctx, login, password)
}

func (f *FreightFacade) SubmitLoad(ctx context.Context, shipperID int64, in usecase.LoadInput) (*model.Load, error) {
	return f.loads.Submit(ctx, shipperID, in)
}

func (f *FreightFacade) ShipperLoads(ctx context.Context, shipperID int64) ([]model.Load, error) {
	return f.loads.ListForShipper(ctx, shipperID)
}

func (f *FreightFacade) Marketplace(ctx context.Context) ([]model.Load, error) {
	return f.loads.Marketplace(ctx)
}

func (f *FreightFacade) LoadsByStatus(ctx context.Context, statuses ...model.LoadStatus) ([]model.Load, error) {
	return f.loads.ListByStatus(ctx, statuses...)
}

func (f *FreightFacade) Load(ctx context.Context, actor usecase.Actor, id int64) (*model.Load, error) {
	return f.loads.Get(ctx, actor, id)
}

func (f *FreightFacade) PriceLoad(ctx context.Context, id int64, price decimal.Decimal) (*model.Load, error) {
	return f.loads.SetPrice(ctx, id, price)
}

func (f *FreightFacade) ApplyAction(ctx context.Context, id int64, action workflow.Action) (*model.Load, error) {
	return f.loads.Apply(ctx, id, action)
}

func (f *FreightFacade) QuoteForLoad(ctx context.Context, id int64) (*model.Load, pricing.Quote, error) {
	return f.loads.Quote(ctx, id)
}

func (f *FreightFacade) EstimatePrice(ctx context.Context, in pricing.Input) pricing.Quote {
	return f.loads.Estimate(ctx, in)
}

func (f *FreightFacade) PendingQuotes(ctx context.Context, limit int) ([]model.Load, error) {
	return f.loads.PendingQuotes(ctx, limit)
}

func (f *FreightFacade) QuoteLoad(ctx context.Context, load model.Load) (pricing.Quote, error) {
	return f.loads.QuoteStrict(ctx, load)
}

func (f *FreightFacade) RecordQuote(ctx context.Context, loadID int64, price decimal.Decimal) error {
	return f.loads.RecordQuote(ctx, loadID, price)
}

func (f *FreightFacade) PlaceBid(ctx context.Context, carrierID, loadID int64, amount decimal.Decimal) (*model.Bid, error) {
	return f.bids.Place(ctx, carrierID, loadID, amount)
}

func (f *FreightFacade) AcceptPostedPrice(ctx context.Context, carrierID, loadID int64) (*model.Bid, error) {
	return f.bids.AcceptPostedPrice(ctx, carrierID, loadID)
}

func (f *FreightFacade) CounterBid(ctx context.Context, bidID int64, amount decimal.Decimal) (*model.Bid, error) {
	return f.bids.Counter(ctx, bidID, amount)
}

func (f *FreightFacade) AcceptBid(ctx context.Context, actor usecase.Actor, bidID int64) (*model.Bid, error) {
	return f.bids.Accept(ctx, actor, bidID)
}

func (f *FreightFacade) RejectBid(ctx context.Context, bidID int64) (*model.Bid, error) {
	return f.bids.Reject(ctx, bidID)
}

func (f *FreightFacade) Bids(ctx context.Context, actor usecase.Actor, loadID int64) ([]model.Bid, error) {
	return f.bids.List(ctx, actor, loadID)
}

func (f *FreightFacade) PreviewInvoice(ctx context.Context, loadID int64, form invoice.Form) (invoice.Draft, error) {
	return f.invoices.Preview(ctx, loadID, form)
}

func (f *FreightFacade) SaveInvoice(ctx context.Context, loadID int64, form invoice.Form) (usecase.InvoiceResult, error) {
	return f.invoices.Save(ctx, loadID, form)
}

func (f *FreightFacade) SendInvoice(ctx context.Context, loadID int64, form invoice.Form, idempotencyKey string) (usecase.InvoiceResult, error) {
	return f.invoices.Send(ctx, loadID, form, idempotencyKey)
}

func (f *FreightFacade) Invoice(ctx context.Context, actor usecase.Actor, loadID int64) (*model.Invoice, error) {
	return f.invoices.Get(ctx, actor, loadID)
}

func (f *FreightFacade) ApproveInvoice(ctx context.Context, actor usecase.Actor, loadID int64) (*model.Invoice, error) {
	return f.invoices.Approve(ctx, actor, loadID)
}
