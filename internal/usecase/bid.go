package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/domain/repository"
	"github.com/polkiloo/freightdesk/internal/workflow"
)

// BidUseCase handles carrier bids and admin negotiation.
type BidUseCase struct {
	loads  repository.LoadRepository
	bids   repository.BidRepository
	events EventPublisher
	clock  Clock
	logger *slog.Logger
}

// NewBidUseCase constructs BidUseCase.
func NewBidUseCase(loads repository.LoadRepository, bids repository.BidRepository, events EventPublisher, clock Clock, logger *slog.Logger) *BidUseCase {
	return &BidUseCase{loads: loads, bids: bids, events: events, clock: clock, logger: logger}
}

// Place records a carrier bid. The first bid on a posted load opens it for bidding.
func (u *BidUseCase) Place(ctx context.Context, carrierID, loadID int64, amount decimal.Decimal) (*model.Bid, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: bid must be positive", domainErrors.ErrInvalidAmount)
	}

	load, err := u.biddable(ctx, loadID)
	if err != nil {
		return nil, err
	}

	bid, err := u.bids.Create(ctx, model.Bid{LoadID: loadID, CarrierID: carrierID, Amount: amount})
	if err != nil {
		return nil, err
	}

	u.openBidding(ctx, load)
	u.publish(ctx, model.EventBidPlaced, loadID, bid.ID, "")
	return bid, nil
}

// AcceptPostedPrice lets a carrier take the load at the admin price, or the
// shipper price when no admin price was set.
func (u *BidUseCase) AcceptPostedPrice(ctx context.Context, carrierID, loadID int64) (*model.Bid, error) {
	load, err := u.biddable(ctx, loadID)
	if err != nil {
		return nil, err
	}

	price := load.AdminPrice
	if !price.Valid {
		price = load.ShipperPrice
	}
	if !price.Valid || !price.Decimal.IsPositive() {
		return nil, fmt.Errorf("%w: load %d has no posted price", domainErrors.ErrInvalidAmount, loadID)
	}

	bid, err := u.bids.CreateAccepted(ctx, model.Bid{LoadID: loadID, CarrierID: carrierID, Amount: price.Decimal}, load.Status)
	if err != nil {
		return nil, err
	}

	u.publish(ctx, model.EventBidAccepted, loadID, bid.ID, model.LoadStatusAwarded)
	return bid, nil
}

// Counter records an admin counter offer on an active bid.
func (u *BidUseCase) Counter(ctx context.Context, bidID int64, amount decimal.Decimal) (*model.Bid, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: counter offer must be positive", domainErrors.ErrInvalidAmount)
	}

	bid, load, err := u.activeBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if _, err := workflow.Transition(load.Status, workflow.ActionCounter); err != nil {
		return nil, err
	}
	if err := u.bids.SetCounter(ctx, bidID, amount, load.Status); err != nil {
		return nil, err
	}

	bid.CounterAmount = decimal.NewNullDecimal(amount)
	u.publish(ctx, model.EventBidCountered, load.ID, bid.ID, model.LoadStatusCounterReceived)
	return bid, nil
}

// Accept awards the load to a bid at its agreed amount. Admins may accept any
// active bid; carriers may only accept a counter offer made on their own bid.
func (u *BidUseCase) Accept(ctx context.Context, actor Actor, bidID int64) (*model.Bid, error) {
	bid, load, err := u.activeBid(ctx, bidID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case model.RoleAdmin:
	case model.RoleCarrier:
		if bid.CarrierID != actor.UserID || !bid.CounterAmount.Valid {
			return nil, domainErrors.ErrForbidden
		}
	default:
		return nil, domainErrors.ErrForbidden
	}

	if _, err := workflow.Transition(load.Status, workflow.ActionAward); err != nil {
		return nil, err
	}
	amount := bid.Agreed()
	if err := u.bids.Accept(ctx, bidID, amount, load.Status); err != nil {
		return nil, err
	}

	bid.Status = model.BidStatusAccepted
	u.publish(ctx, model.EventBidAccepted, load.ID, bid.ID, model.LoadStatusAwarded)
	return bid, nil
}

// Reject declines an active bid.
func (u *BidUseCase) Reject(ctx context.Context, bidID int64) (*model.Bid, error) {
	bid, err := u.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.Status != model.BidStatusActive {
		return nil, fmt.Errorf("%w: bid %d is %s", domainErrors.ErrConflict, bidID, bid.Status)
	}
	if err := u.bids.Reject(ctx, bidID); err != nil {
		return nil, err
	}

	bid.Status = model.BidStatusRejected
	u.publish(ctx, model.EventBidRejected, bid.LoadID, bid.ID, "")
	return bid, nil
}

// List returns the bids of a load. Carriers only see their own bids.
func (u *BidUseCase) List(ctx context.Context, actor Actor, loadID int64) ([]model.Bid, error) {
	load, err := u.loads.GetByID(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if !actor.canView(load) {
		return nil, domainErrors.ErrNotFound
	}

	bids, err := u.bids.ListByLoad(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleCarrier {
		return bids, nil
	}

	own := bids[:0:0]
	for _, b := range bids {
		if b.CarrierID == actor.UserID {
			own = append(own, b)
		}
	}
	return own, nil
}

func (u *BidUseCase) biddable(ctx context.Context, loadID int64) (*model.Load, error) {
	load, err := u.loads.GetByID(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if !workflow.AcceptsBids(load.Status) {
		return nil, fmt.Errorf("%w: load %d is %s", domainErrors.ErrIllegalTransition, loadID, load.Status)
	}
	return load, nil
}

func (u *BidUseCase) activeBid(ctx context.Context, bidID int64) (*model.Bid, *model.Load, error) {
	bid, err := u.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, nil, err
	}
	if bid.Status != model.BidStatusActive {
		return nil, nil, fmt.Errorf("%w: bid %d is %s", domainErrors.ErrConflict, bidID, bid.Status)
	}
	load, err := u.loads.GetByID(ctx, bid.LoadID)
	if err != nil {
		return nil, nil, err
	}
	return bid, load, nil
}

// openBidding moves a posted load to open_for_bid. Losing the race to another bid is fine.
func (u *BidUseCase) openBidding(ctx context.Context, load *model.Load) {
	if load.Status != model.LoadStatusPostedToCarriers {
		return
	}
	err := u.loads.UpdateStatus(ctx, load.ID, load.Status, model.LoadStatusOpenForBid)
	switch {
	case err == nil:
		u.publish(ctx, model.EventLoadStatusChanged, load.ID, 0, model.LoadStatusOpenForBid)
	case errors.Is(err, domainErrors.ErrConflict):
	default:
		u.logger.Warn("failed to open bidding",
			slog.Int64("load_id", load.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (u *BidUseCase) publish(ctx context.Context, typ model.EventType, loadID, bidID int64, status model.LoadStatus) {
	u.events.Publish(ctx, model.Event{Type: typ, LoadID: loadID, BidID: bidID, Status: status, At: u.clock.now()})
}
