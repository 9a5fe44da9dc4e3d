package handlers

import (
	"context"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/server/http/dto"
	"github.com/polkiloo/freightdesk/internal/usecase"
	"github.com/polkiloo/freightdesk/internal/workflow"
)

func sampleLoad(status model.LoadStatus) model.Load {
	return model.Load{
		ID:             7,
		ShipperID:      shipper.UserID,
		Pickup:         model.Location{City: "Mumbai", State: "MH"},
		Dropoff:        model.Location{City: "Delhi", State: "DL"},
		WeightTons:     decimal.NewFromInt(6),
		TruckType:      model.TruckOpen,
		RateType:       model.RateTypeFixed,
		ShipperPrice:   decimal.NewNullDecimal(decimal.NewFromInt(70000)),
		SuggestedPrice: decimal.NewNullDecimal(decimal.NewFromInt(77612)),
		Status:         status,
		CreatedAt:      time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestLoadHandlerSubmit(t *testing.T) {
	var got usecase.LoadInput
	var gotShipper int64
	handler := NewLoadHandler(facadeStub{SubmitLoadFn: func(_ context.Context, shipperID int64, in usecase.LoadInput) (*model.Load, error) {
		got, gotShipper = in, shipperID
		l := sampleLoad(model.LoadStatusPending)
		return &l, nil
	}})

	body := []byte(`{"pickup":{"city":"Mumbai","state":"MH"},"dropoff":{"city":"Delhi"},"weightTons":"6","truckType":"open truck","rateType":"fixed","price":70000}`)
	w := performRequest(t, http.MethodPost, "/loads", "/loads", handler.Submit, &shipper, body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotShipper != shipper.UserID {
		t.Fatalf("expected shipper %d, got %d", shipper.UserID, gotShipper)
	}
	if got.Pickup.City != "Mumbai" || got.Dropoff.City != "Delhi" || got.TruckType != "open truck" {
		t.Fatalf("unexpected input %+v", got)
	}
	if !got.ShipperPrice.Valid || !got.ShipperPrice.Decimal.Equal(decimal.NewFromInt(70000)) {
		t.Fatalf("expected shipper price 70000, got %+v", got.ShipperPrice)
	}

	resp := decode[dto.LoadResponse](t, w)
	if resp.Display.Label != workflow.DisplayFor(model.LoadStatusPending).Label {
		t.Fatalf("expected pending display, got %+v", resp.Display)
	}
	if resp.SuggestedPrice != nil || resp.AdminAction != nil {
		t.Fatalf("shipper must not see admin fields: %+v", resp)
	}
}

func TestLoadHandlerSubmitRejected(t *testing.T) {
	handler := NewLoadHandler(facadeStub{SubmitLoadFn: func(context.Context, int64, usecase.LoadInput) (*model.Load, error) {
		return nil, domainErrors.ErrInvalidAmount
	}})
	body := []byte(`{"pickup":{"city":"Mumbai"},"dropoff":{"city":"Delhi"},"weightTons":-1,"truckType":"Open Truck"}`)
	w := performRequest(t, http.MethodPost, "/loads", "/loads", handler.Submit, &shipper, body, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	w = performRequest(t, http.MethodPost, "/loads", "/loads", handler.Submit, &shipper, []byte(`{"weightTons":"heavy"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unparsable weight, got %d", w.Code)
	}
}

func TestLoadHandlerGetShapesByRole(t *testing.T) {
	handler := NewLoadHandler(facadeStub{LoadFn: func(_ context.Context, _ usecase.Actor, id int64) (*model.Load, error) {
		l := sampleLoad(model.LoadStatusPending)
		l.ID = id
		return &l, nil
	}})

	w := performRequest(t, http.MethodGet, "/loads/:id", "/loads/7", handler.Get, &admin, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[dto.LoadResponse](t, w)
	if resp.SuggestedPrice == nil || *resp.SuggestedPrice != "77612.00" {
		t.Fatalf("expected admin to see suggested price, got %v", resp.SuggestedPrice)
	}
	if resp.AdminAction == nil || resp.AdminAction.ID != string(workflow.ActionPrice) {
		t.Fatalf("expected price action for pending load, got %+v", resp.AdminAction)
	}

	w = performRequest(t, http.MethodGet, "/loads/:id", "/loads/7", handler.Get, &carrier, nil, nil)
	resp = decode[dto.LoadResponse](t, w)
	if resp.ShipperPrice != nil || resp.SuggestedPrice != nil {
		t.Fatalf("carrier must not see shipper or suggested price: %+v", resp)
	}

	handler = NewLoadHandler(facadeStub{LoadFn: func(context.Context, usecase.Actor, int64) (*model.Load, error) {
		return nil, domainErrors.ErrNotFound
	}})
	w = performRequest(t, http.MethodGet, "/loads/:id", "/loads/7", handler.Get, &shipper, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestLoadHandlerLists(t *testing.T) {
	loads := []model.Load{sampleLoad(model.LoadStatusPostedToCarriers), sampleLoad(model.LoadStatusOpenForBid)}
	handler := NewLoadHandler(facadeStub{
		ShipperLoadsFn: func(_ context.Context, id int64) ([]model.Load, error) {
			if id != shipper.UserID {
				t.Fatalf("expected shipper id, got %d", id)
			}
			return loads, nil
		},
		MarketplaceFn: func(context.Context) ([]model.Load, error) { return loads, nil },
	})

	w := performRequest(t, http.MethodGet, "/loads", "/loads", handler.Mine, &shipper, nil, nil)
	if got := decode[[]dto.LoadResponse](t, w); len(got) != 2 {
		t.Fatalf("expected two loads, got %d", len(got))
	}

	w = performRequest(t, http.MethodGet, "/market", "/market", handler.Marketplace, &carrier, nil, nil)
	got := decode[[]dto.LoadResponse](t, w)
	if len(got) != 2 || got[1].Status != string(model.LoadStatusOpenForBid) {
		t.Fatalf("unexpected marketplace %+v", got)
	}

	handler = NewLoadHandler(facadeStub{ShipperLoadsFn: func(context.Context, int64) ([]model.Load, error) { return nil, nil }})
	w = performRequest(t, http.MethodGet, "/loads", "/loads", handler.Mine, &shipper, nil, nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %d %q", w.Code, w.Body.String())
	}
}

func TestLoadHandlerAdminListParsesStatuses(t *testing.T) {
	var got []model.LoadStatus
	handler := NewLoadHandler(facadeStub{LoadsByStatusFn: func(_ context.Context, statuses ...model.LoadStatus) ([]model.Load, error) {
		got = statuses
		return nil, nil
	}})

	w := performRequest(t, http.MethodGet, "/admin/loads", "/admin/loads?status=pending,PRICED&status=awarded", handler.AdminList, &admin, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	want := []model.LoadStatus{model.LoadStatusPending, model.LoadStatusPriced, model.LoadStatusAwarded}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	w = performRequest(t, http.MethodGet, "/admin/loads", "/admin/loads?status=lost", handler.AdminList, &admin, nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestLoadHandlerPrice(t *testing.T) {
	var gotPrice decimal.Decimal
	handler := NewLoadHandler(facadeStub{PriceLoadFn: func(_ context.Context, id int64, price decimal.Decimal) (*model.Load, error) {
		gotPrice = price
		l := sampleLoad(model.LoadStatusPriced)
		l.AdminPrice = decimal.NewNullDecimal(price)
		return &l, nil
	}})

	w := performRequest(t, http.MethodPost, "/admin/loads/:id/price", "/admin/loads/7/price", handler.Price, &admin, []byte(`{"price":"80000.50"}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !gotPrice.Equal(decimal.RequireFromString("80000.50")) {
		t.Fatalf("unexpected price %s", gotPrice)
	}
	resp := decode[dto.LoadResponse](t, w)
	if resp.AdminPrice == nil || *resp.AdminPrice != "80000.50" {
		t.Fatalf("expected admin price in response, got %v", resp.AdminPrice)
	}
	if resp.AdminAction == nil || resp.AdminAction.ID != string(workflow.ActionPost) {
		t.Fatalf("expected post action after pricing, got %+v", resp.AdminAction)
	}

	handler = NewLoadHandler(facadeStub{PriceLoadFn: func(context.Context, int64, decimal.Decimal) (*model.Load, error) {
		return nil, domainErrors.ErrIllegalTransition
	}})
	w = performRequest(t, http.MethodPost, "/admin/loads/:id/price", "/admin/loads/7/price", handler.Price, &admin, []byte(`{"price":1}`), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestLoadHandlerAction(t *testing.T) {
	var got workflow.Action
	handler := NewLoadHandler(facadeStub{ApplyActionFn: func(_ context.Context, id int64, action workflow.Action) (*model.Load, error) {
		got = action
		l := sampleLoad(model.LoadStatusOpenForBid)
		return &l, nil
	}})

	w := performRequest(t, http.MethodPost, "/admin/loads/:id/actions/:action", "/admin/loads/7/actions/Open_Bidding", handler.Action, &admin, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != workflow.ActionOpenBidding {
		t.Fatalf("expected open_bidding, got %q", got)
	}

	w = performRequest(t, http.MethodPost, "/admin/loads/:id/actions/:action", "/admin/loads/7/actions/teleport", handler.Action, &admin, nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", w.Code)
	}
}
