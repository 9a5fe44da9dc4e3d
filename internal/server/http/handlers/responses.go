package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/invoice"
	"github.com/polkiloo/freightdesk/internal/pricing"
	"github.com/polkiloo/freightdesk/internal/server/http/dto"
	"github.com/polkiloo/freightdesk/internal/usecase"
	"github.com/polkiloo/freightdesk/internal/workflow"
)

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Login: u.Login, Role: string(u.Role)}
}

func toDisplay(d workflow.Display) dto.Display {
	return dto.Display{Label: d.Label, Variant: string(d.Variant), StyleHint: d.StyleHint}
}

func toAdminAction(a *workflow.AdminAction) *dto.AdminAction {
	if a == nil {
		return nil
	}
	return &dto.AdminAction{ID: string(a.ID), ButtonLabel: a.ButtonLabel}
}

func toLocation(l model.Location) dto.Location {
	return dto.Location{City: l.City, State: l.State, Address: l.Address}
}

func fromLocation(l dto.Location) model.Location {
	return model.Location{City: l.City, State: l.State, Address: l.Address}
}

func money(v decimal.NullDecimal) *string {
	if !v.Valid {
		return nil
	}
	s := v.Decimal.StringFixed(2)
	return &s
}

// toLoadResponse renders a load for the actor. The suggested price is internal
// to admins and carriers never see what the shipper offered.
func toLoadResponse(l model.Load, actor usecase.Actor) dto.LoadResponse {
	resp := dto.LoadResponse{
		ID:                l.ID,
		ShipperID:         l.ShipperID,
		Pickup:            toLocation(l.Pickup),
		Dropoff:           toLocation(l.Dropoff),
		WeightTons:        l.WeightTons.String(),
		TruckType:         string(l.TruckType),
		RateType:          string(l.RateType),
		AdminPrice:        money(l.AdminPrice),
		AcceptedBidAmount: money(l.AcceptedBidAmount),
		Status:            string(l.Status),
		Display:           toDisplay(workflow.DisplayFor(l.Status)),
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
	if actor.Role != model.RoleCarrier {
		resp.ShipperPrice = money(l.ShipperPrice)
	}
	if actor.Role == model.RoleAdmin {
		resp.SuggestedPrice = money(l.SuggestedPrice)
		if a, ok := workflow.AdminActionFor(l.Status); ok {
			resp.AdminAction = toAdminAction(&a)
		}
	}
	return resp
}

func toLoadResponses(loads []model.Load, actor usecase.Actor) []dto.LoadResponse {
	resp := make([]dto.LoadResponse, 0, len(loads))
	for _, l := range loads {
		resp = append(resp, toLoadResponse(l, actor))
	}
	return resp
}

func toBidResponse(b model.Bid) dto.BidResponse {
	return dto.BidResponse{
		ID:            b.ID,
		LoadID:        b.LoadID,
		CarrierID:     b.CarrierID,
		Amount:        b.Amount.StringFixed(2),
		CounterAmount: money(b.CounterAmount),
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}

func toQuoteResponse(loadID int64, q pricing.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		LoadID:         loadID,
		SuggestedPrice: q.SuggestedPrice.String(),
		Breakdown: dto.Breakdown{
			Base:     q.Breakdown.Base.StringFixed(2),
			Fuel:     q.Breakdown.Fuel.String(),
			Margin:   q.Breakdown.Margin.String(),
			Handling: q.Breakdown.Handling.String(),
		},
		DistanceKM:     q.Params.DistanceKM,
		DistanceSource: q.Params.DistanceSource,
		WeightTons:     q.Params.WeightTons.String(),
		RatePerKM:      q.Params.RatePerKM.String(),
	}
}

func toInvoiceResponse(inv model.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		Submission:     invoice.SubmissionOf(inv),
		ID:             inv.ID,
		Status:         string(inv.Status),
		TaxApplied:     inv.TaxApplied,
		IdempotencyKey: inv.IdempotencyKey,
		SentAt:         inv.SentAt,
		ApprovedAt:     inv.ApprovedAt,
	}
}
