package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	testhelpers "github.com/polkiloo/freightdesk/internal/test"
)

type bidFixture struct {
	loads  *testhelpers.LoadRepositoryStub
	bids   *testhelpers.BidRepositoryStub
	events *testhelpers.EventRecorder
	uc     *BidUseCase
}

func newBidFixture() bidFixture {
	loads := testhelpers.NewLoadRepositoryStub()
	f := bidFixture{
		loads:  loads,
		bids:   testhelpers.NewBidRepositoryStub(loads),
		events: &testhelpers.EventRecorder{},
	}
	f.uc = NewBidUseCase(f.loads, f.bids, f.events, fixedClock(), discardLogger())
	return f
}

func (f bidFixture) postedLoad() model.Load {
	return f.loads.Put(model.Load{
		ShipperID:  1,
		Status:     model.LoadStatusPostedToCarriers,
		AdminPrice: decimal.NewNullDecimal(dec("77612")),
	})
}

func TestBidUseCasePlaceOpensBidding(t *testing.T) {
	f := newBidFixture()
	load := f.postedLoad()
	ctx := context.Background()

	bid, err := f.uc.Place(ctx, 5, load.ID, dec("70000"))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if bid.Status != model.BidStatusActive || bid.CarrierID != 5 {
		t.Fatalf("unexpected bid %+v", bid)
	}
	if got := f.loads.Snapshot(load.ID).Status; got != model.LoadStatusOpenForBid {
		t.Fatalf("expected load to open for bidding, got %q", got)
	}

	if _, err := f.uc.Place(ctx, 6, load.ID, dec("69000")); err != nil {
		t.Fatalf("second bid: %v", err)
	}

	want := []model.EventType{model.EventLoadStatusChanged, model.EventBidPlaced, model.EventBidPlaced}
	if got := f.events.Types(); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
}

func TestBidUseCasePlaceValidation(t *testing.T) {
	f := newBidFixture()
	pending := f.loads.Put(model.Load{ShipperID: 1, Status: model.LoadStatusPending})
	ctx := context.Background()

	if _, err := f.uc.Place(ctx, 5, pending.ID, dec("-5")); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := f.uc.Place(ctx, 5, pending.ID, dec("100")); !errors.Is(err, domainErrors.ErrIllegalTransition) {
		t.Fatalf("expected pending load to refuse bids, got %v", err)
	}
	if _, err := f.uc.Place(ctx, 5, 404, dec("100")); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBidUseCaseAcceptPostedPrice(t *testing.T) {
	t.Run("admin price", func(t *testing.T) {
		f := newBidFixture()
		load := f.postedLoad()
		rival, _ := f.uc.Place(context.Background(), 6, load.ID, dec("60000"))

		bid, err := f.uc.AcceptPostedPrice(context.Background(), 5, load.ID)
		if err != nil {
			t.Fatalf("accept posted price: %v", err)
		}
		if bid.Status != model.BidStatusAccepted || !bid.Amount.Equal(dec("77612")) {
			t.Fatalf("unexpected bid %+v", bid)
		}
		stored := f.loads.Snapshot(load.ID)
		if stored.Status != model.LoadStatusAwarded || !stored.AcceptedBidAmount.Decimal.Equal(dec("77612")) {
			t.Fatalf("unexpected load %+v", stored)
		}
		if other, _ := f.bids.GetByID(context.Background(), rival.ID); other.Status != model.BidStatusRejected {
			t.Fatalf("expected rival bid rejected, got %q", other.Status)
		}
	})

	t.Run("shipper price fallback", func(t *testing.T) {
		f := newBidFixture()
		load := f.loads.Put(model.Load{
			ShipperID:    1,
			Status:       model.LoadStatusOpenForBid,
			ShipperPrice: decimal.NewNullDecimal(dec("50000")),
		})
		bid, err := f.uc.AcceptPostedPrice(context.Background(), 5, load.ID)
		if err != nil || !bid.Amount.Equal(dec("50000")) {
			t.Fatalf("expected shipper price, got %+v %v", bid, err)
		}
	})

	t.Run("lost race stores nothing", func(t *testing.T) {
		f := newBidFixture()
		ctx := context.Background()
		load := f.postedLoad()
		winner, _ := f.bids.Create(ctx, model.Bid{LoadID: load.ID, CarrierID: 6, Amount: dec("77612"), Status: model.BidStatusAccepted})

		if _, err := f.uc.AcceptPostedPrice(ctx, 5, load.ID); !errors.Is(err, domainErrors.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
		bids, _ := f.bids.ListByLoad(ctx, load.ID)
		if len(bids) != 1 || bids[0].ID != winner.ID {
			t.Fatalf("expected only the winning bid to remain, got %+v", bids)
		}
		if got := f.loads.Snapshot(load.ID).Status; got != model.LoadStatusPostedToCarriers {
			t.Fatalf("expected load untouched, got %q", got)
		}
	})

	t.Run("load moved on", func(t *testing.T) {
		f := newBidFixture()
		ctx := context.Background()
		load := f.postedLoad()
		if err := f.loads.UpdateStatus(ctx, load.ID, model.LoadStatusPostedToCarriers, model.LoadStatusCancelled); err != nil {
			t.Fatalf("cancel load: %v", err)
		}
		// the stored load has moved on while the carrier still sees it posted
		if _, err := f.bids.CreateAccepted(ctx, model.Bid{LoadID: load.ID, CarrierID: 5, Amount: dec("77612")}, model.LoadStatusPostedToCarriers); !errors.Is(err, domainErrors.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
		if bids, _ := f.bids.ListByLoad(ctx, load.ID); len(bids) != 0 {
			t.Fatalf("expected no bid stored, got %+v", bids)
		}
	})

	t.Run("no price", func(t *testing.T) {
		f := newBidFixture()
		load := f.loads.Put(model.Load{ShipperID: 1, Status: model.LoadStatusOpenForBid})
		if _, err := f.uc.AcceptPostedPrice(context.Background(), 5, load.ID); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("expected invalid amount, got %v", err)
		}
	})
}

func TestBidUseCaseCounterAndCarrierAccept(t *testing.T) {
	f := newBidFixture()
	load := f.postedLoad()
	ctx := context.Background()

	bid, err := f.uc.Place(ctx, 5, load.ID, dec("70000"))
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	carrier := Actor{UserID: 5, Role: model.RoleCarrier}
	if _, err := f.uc.Accept(ctx, carrier, bid.ID); err != domainErrors.ErrForbidden {
		t.Fatalf("expected carrier to need a counter offer first, got %v", err)
	}

	if _, err := f.uc.Counter(ctx, bid.ID, decimal.Zero); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	countered, err := f.uc.Counter(ctx, bid.ID, dec("74000"))
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	if !countered.CounterAmount.Decimal.Equal(dec("74000")) {
		t.Fatalf("unexpected counter %v", countered.CounterAmount)
	}
	if got := f.loads.Snapshot(load.ID).Status; got != model.LoadStatusCounterReceived {
		t.Fatalf("expected counter_received, got %q", got)
	}

	if _, err := f.uc.Accept(ctx, Actor{UserID: 6, Role: model.RoleCarrier}, bid.ID); err != domainErrors.ErrForbidden {
		t.Fatalf("expected another carrier to be forbidden, got %v", err)
	}
	if _, err := f.uc.Accept(ctx, Actor{UserID: 1, Role: model.RoleShipper}, bid.ID); err != domainErrors.ErrForbidden {
		t.Fatalf("expected shipper to be forbidden, got %v", err)
	}

	accepted, err := f.uc.Accept(ctx, carrier, bid.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != model.BidStatusAccepted {
		t.Fatalf("expected accepted bid, got %q", accepted.Status)
	}
	stored := f.loads.Snapshot(load.ID)
	if stored.Status != model.LoadStatusAwarded || !stored.AcceptedBidAmount.Decimal.Equal(dec("74000")) {
		t.Fatalf("expected award at counter amount, got %+v", stored)
	}

	if _, err := f.uc.Accept(ctx, Actor{UserID: 9, Role: model.RoleAdmin}, bid.ID); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected accepted bid to be final, got %v", err)
	}
}

func TestBidUseCaseAdminAccept(t *testing.T) {
	f := newBidFixture()
	load := f.postedLoad()
	ctx := context.Background()
	admin := Actor{UserID: 9, Role: model.RoleAdmin}

	first, _ := f.uc.Place(ctx, 5, load.ID, dec("70000"))
	second, _ := f.uc.Place(ctx, 6, load.ID, dec("65000"))

	if _, err := f.uc.Accept(ctx, admin, second.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if got := f.loads.Snapshot(load.ID).AcceptedBidAmount.Decimal; !got.Equal(dec("65000")) {
		t.Fatalf("expected award at bid amount, got %s", got)
	}
	if _, err := f.uc.Accept(ctx, admin, first.ID); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected second award to conflict, got %v", err)
	}
}

func TestBidUseCaseAcceptLosesRace(t *testing.T) {
	f := newBidFixture()
	load := f.postedLoad()
	ctx := context.Background()
	bid, _ := f.uc.Place(ctx, 5, load.ID, dec("70000"))

	f.bids.AcceptFn = func(context.Context, int64, decimal.Decimal, model.LoadStatus) error {
		return domainErrors.ErrConflict
	}
	if _, err := f.uc.Accept(ctx, Actor{UserID: 9, Role: model.RoleAdmin}, bid.ID); err != domainErrors.ErrConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	for _, typ := range f.events.Types() {
		if typ == model.EventBidAccepted {
			t.Fatal("expected no acceptance event after a lost race")
		}
	}
}

func TestBidUseCaseReject(t *testing.T) {
	f := newBidFixture()
	load := f.postedLoad()
	ctx := context.Background()
	bid, _ := f.uc.Place(ctx, 5, load.ID, dec("70000"))

	rejected, err := f.uc.Reject(ctx, bid.ID)
	if err != nil || rejected.Status != model.BidStatusRejected {
		t.Fatalf("expected rejection, got %+v %v", rejected, err)
	}
	if _, err := f.uc.Reject(ctx, bid.ID); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected second rejection to conflict, got %v", err)
	}
	if _, err := f.uc.Reject(ctx, 404); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBidUseCaseList(t *testing.T) {
	f := newBidFixture()
	load := f.postedLoad()
	ctx := context.Background()
	f.uc.Place(ctx, 5, load.ID, dec("70000"))
	f.uc.Place(ctx, 6, load.ID, dec("69000"))
	f.uc.Place(ctx, 5, load.ID, dec("68000"))

	cases := []struct {
		actor Actor
		want  int
		err   error
	}{
		{actor: Actor{UserID: 9, Role: model.RoleAdmin}, want: 3},
		{actor: Actor{UserID: 1, Role: model.RoleShipper}, want: 3},
		{actor: Actor{UserID: 5, Role: model.RoleCarrier}, want: 2},
		{actor: Actor{UserID: 7, Role: model.RoleCarrier}, want: 0},
		{actor: Actor{UserID: 2, Role: model.RoleShipper}, err: domainErrors.ErrNotFound},
	}

	for _, tc := range cases {
		bids, err := f.uc.List(ctx, tc.actor, load.ID)
		if err != tc.err {
			t.Fatalf("%+v: expected error %v, got %v", tc.actor, tc.err, err)
		}
		if len(bids) != tc.want {
			t.Fatalf("%+v: expected %d bids, got %d", tc.actor, tc.want, len(bids))
		}
	}
}
