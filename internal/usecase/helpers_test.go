package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/pricing"
)

var fixedNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() Clock { return func() time.Time { return fixedNow } }

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

type quoterStub struct {
	EstimateFn func(context.Context, pricing.Input) pricing.Quote
	QuoteFn    func(context.Context, pricing.Input) (pricing.Quote, error)
	inputs     []pricing.Input
}

func (q *quoterStub) Estimate(ctx context.Context, in pricing.Input) pricing.Quote {
	q.inputs = append(q.inputs, in)
	if q.EstimateFn != nil {
		return q.EstimateFn(ctx, in)
	}
	return pricing.Compute(1000, "stub", in.TruckType, in.WeightTons)
}

func (q *quoterStub) Quote(ctx context.Context, in pricing.Input) (pricing.Quote, error) {
	q.inputs = append(q.inputs, in)
	if q.QuoteFn != nil {
		return q.QuoteFn(ctx, in)
	}
	return pricing.Compute(1000, "stub", in.TruckType, in.WeightTons), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
