package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/domain/repository"
	"github.com/polkiloo/freightdesk/internal/pricing"
	"github.com/polkiloo/freightdesk/internal/workflow"
)

// Quoter prices loads.
type Quoter interface {
	// Estimate always produces a quote, falling back when no distance source knows the route.
	Estimate(ctx context.Context, in pricing.Input) pricing.Quote
	// Quote fails on distance source errors other than an unknown route.
	Quote(ctx context.Context, in pricing.Input) (pricing.Quote, error)
}

// LoadInput is a load submission after boundary parsing.
type LoadInput struct {
	Pickup       model.Location
	Dropoff      model.Location
	WeightTons   decimal.Decimal
	TruckType    string
	RateType     string
	ShipperPrice decimal.NullDecimal
}

// LoadUseCase drives loads through the workflow.
type LoadUseCase struct {
	loads  repository.LoadRepository
	quoter Quoter
	events EventPublisher
	clock  Clock
	logger *slog.Logger
}

// NewLoadUseCase constructs LoadUseCase.
func NewLoadUseCase(loads repository.LoadRepository, quoter Quoter, events EventPublisher, clock Clock, logger *slog.Logger) *LoadUseCase {
	return &LoadUseCase{loads: loads, quoter: quoter, events: events, clock: clock, logger: logger}
}

// Submit stores a new pending load for the shipper.
func (u *LoadUseCase) Submit(ctx context.Context, shipperID int64, in LoadInput) (*model.Load, error) {
	load, err := in.toLoad(shipperID)
	if err != nil {
		return nil, err
	}

	created, err := u.loads.Create(ctx, load)
	if err != nil {
		return nil, err
	}

	u.publish(ctx, model.EventLoadSubmitted, created.ID, created.Status)
	return created, nil
}

func (in LoadInput) toLoad(shipperID int64) (model.Load, error) {
	pickup := trimLocation(in.Pickup)
	dropoff := trimLocation(in.Dropoff)
	if pickup.City == "" || dropoff.City == "" {
		return model.Load{}, fmt.Errorf("%w: pickup and dropoff city are required", domainErrors.ErrInvalidInput)
	}
	if !in.WeightTons.IsPositive() {
		return model.Load{}, fmt.Errorf("%w: weight must be positive", domainErrors.ErrInvalidInput)
	}

	// Unknown truck types are stored as given and priced at the default rate.
	truck, _ := model.ParseTruckType(in.TruckType)
	if truck == "" {
		return model.Load{}, fmt.Errorf("%w: truck type is required", domainErrors.ErrInvalidInput)
	}

	rate := model.RateTypeFixed
	if strings.TrimSpace(in.RateType) != "" {
		parsed, ok := model.ParseRateType(in.RateType)
		if !ok {
			return model.Load{}, fmt.Errorf("%w: unknown rate type %q", domainErrors.ErrInvalidInput, in.RateType)
		}
		rate = parsed
	}

	if in.ShipperPrice.Valid && in.ShipperPrice.Decimal.IsNegative() {
		return model.Load{}, fmt.Errorf("%w: price cannot be negative", domainErrors.ErrInvalidAmount)
	}

	return model.Load{
		ShipperID:    shipperID,
		Pickup:       pickup,
		Dropoff:      dropoff,
		WeightTons:   in.WeightTons,
		TruckType:    truck,
		RateType:     rate,
		ShipperPrice: in.ShipperPrice,
		Status:       model.LoadStatusPending,
	}, nil
}

func trimLocation(l model.Location) model.Location {
	return model.Location{
		City:    strings.TrimSpace(l.City),
		State:   strings.TrimSpace(l.State),
		Address: strings.TrimSpace(l.Address),
	}
}

// ListForShipper returns the shipper's loads, newest first.
func (u *LoadUseCase) ListForShipper(ctx context.Context, shipperID int64) ([]model.Load, error) {
	return u.loads.ListByShipper(ctx, shipperID)
}

// Marketplace returns the loads carriers can currently bid on.
func (u *LoadUseCase) Marketplace(ctx context.Context) ([]model.Load, error) {
	return u.loads.ListByStatus(ctx,
		model.LoadStatusPostedToCarriers,
		model.LoadStatusOpenForBid,
		model.LoadStatusCounterReceived,
	)
}

// ListByStatus returns loads in any of the statuses, or every load when none is given.
func (u *LoadUseCase) ListByStatus(ctx context.Context, statuses ...model.LoadStatus) ([]model.Load, error) {
	return u.loads.ListByStatus(ctx, statuses...)
}

// Get returns a load visible to the actor.
func (u *LoadUseCase) Get(ctx context.Context, actor Actor, id int64) (*model.Load, error) {
	load, err := u.loads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canView(load) {
		// shippers must not learn which ids exist
		return nil, domainErrors.ErrNotFound
	}
	return load, nil
}

// SetPrice records the admin sale price and moves a pending load to priced.
func (u *LoadUseCase) SetPrice(ctx context.Context, id int64, price decimal.Decimal) (*model.Load, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", domainErrors.ErrInvalidAmount)
	}

	load, err := u.loads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	to, err := workflow.Transition(load.Status, workflow.ActionPrice)
	if err != nil {
		return nil, err
	}
	if err := u.loads.SetAdminPrice(ctx, id, price, load.Status, to); err != nil {
		return nil, err
	}

	load.AdminPrice = decimal.NewNullDecimal(price)
	load.Status = to
	u.publish(ctx, model.EventLoadStatusChanged, id, to)
	return load, nil
}

// Apply performs a manual workflow action such as posting or cancelling a load.
func (u *LoadUseCase) Apply(ctx context.Context, id int64, action workflow.Action) (*model.Load, error) {
	if !workflow.IsManual(action) {
		return nil, fmt.Errorf("%w: %s has its own operation", domainErrors.ErrInvalidInput, action)
	}

	load, err := u.loads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	to, err := workflow.Transition(load.Status, action)
	if err != nil {
		return nil, err
	}
	if err := u.loads.UpdateStatus(ctx, id, load.Status, to); err != nil {
		return nil, err
	}

	load.Status = to
	u.publish(ctx, model.EventLoadStatusChanged, id, to)
	return load, nil
}

// Quote prices a stored load. It never fails once the load is found.
func (u *LoadUseCase) Quote(ctx context.Context, id int64) (*model.Load, pricing.Quote, error) {
	load, err := u.loads.GetByID(ctx, id)
	if err != nil {
		return nil, pricing.Quote{}, err
	}
	return load, u.quoter.Estimate(ctx, pricing.InputFromLoad(*load)), nil
}

// Estimate prices an ad hoc route.
func (u *LoadUseCase) Estimate(ctx context.Context, in pricing.Input) pricing.Quote {
	return u.quoter.Estimate(ctx, in)
}

// PendingQuotes claims up to limit pending loads without a suggested price.
func (u *LoadUseCase) PendingQuotes(ctx context.Context, limit int) ([]model.Load, error) {
	return u.loads.SelectUnquoted(ctx, limit)
}

// QuoteStrict prices a load for background processing and surfaces provider errors.
func (u *LoadUseCase) QuoteStrict(ctx context.Context, load model.Load) (pricing.Quote, error) {
	return u.quoter.Quote(ctx, pricing.InputFromLoad(load))
}

// RecordQuote stores the suggested price of a load.
func (u *LoadUseCase) RecordQuote(ctx context.Context, id int64, price decimal.Decimal) error {
	if err := u.loads.SetSuggestedPrice(ctx, id, price); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Warn("quoted load disappeared", slog.Int64("load_id", id))
		}
		return err
	}
	return nil
}

func (u *LoadUseCase) publish(ctx context.Context, typ model.EventType, loadID int64, status model.LoadStatus) {
	u.events.Publish(ctx, model.Event{Type: typ, LoadID: loadID, Status: status, At: u.clock.now()})
}
