package pricing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// FallbackSourceName marks quotes whose distance came from the Fallback.
const FallbackSourceName = "fallback"

var (
	fuelShare       = decimal.RequireFromString("0.12")
	marginShare     = decimal.RequireFromString("0.08")
	handlingFee     = decimal.NewFromInt(500)
	surchargeFreeT  = decimal.NewFromInt(5)
	surchargePerTon = decimal.RequireFromString("0.02")
)

// Input describes the load being priced.
type Input struct {
	Pickup     string
	Dropoff    string
	TruckType  model.TruckType
	WeightTons decimal.Decimal
}

// InputFromLoad builds an Input from a stored load.
func InputFromLoad(l model.Load) Input {
	return Input{
		Pickup:     l.Pickup.Label(),
		Dropoff:    l.Dropoff.Label(),
		TruckType:  l.TruckType,
		WeightTons: l.WeightTons,
	}
}

// Breakdown lists the components of a suggested price.
type Breakdown struct {
	Base     decimal.Decimal
	Fuel     decimal.Decimal
	Margin   decimal.Decimal
	Handling decimal.Decimal
}

// Params records the inputs the price was computed from.
type Params struct {
	DistanceKM     int
	DistanceSource string
	WeightTons     decimal.Decimal
	RatePerKM      decimal.Decimal
}

// Quote is a suggested sale price.
type Quote struct {
	SuggestedPrice decimal.Decimal
	Breakdown      Breakdown
	Params         Params
}

// Estimator prices loads from a chain of distance sources and a fallback.
type Estimator struct {
	sources  []DistanceSource
	fallback Fallback
	logger   *slog.Logger
}

// NewEstimator consults sources in order and uses fallback when none knows the route.
func NewEstimator(fallback Fallback, logger *slog.Logger, sources ...DistanceSource) *Estimator {
	if fallback == nil {
		fallback = NewRandomFallback(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Estimator{sources: sources, fallback: fallback, logger: logger}
}

// Estimate always returns a quote. Source failures are logged and skipped.
func (e *Estimator) Estimate(ctx context.Context, in Input) Quote {
	q, _ := e.estimate(ctx, in, false)
	return q
}

// Quote is like Estimate but stops at the first source failure other than
// ErrRouteNotFound, so callers can back off and retry instead of pricing
// against the fallback distance.
func (e *Estimator) Quote(ctx context.Context, in Input) (Quote, error) {
	return e.estimate(ctx, in, true)
}

func (e *Estimator) estimate(ctx context.Context, in Input, strict bool) (Quote, error) {
	km, source, err := e.distance(ctx, in.Pickup, in.Dropoff, strict)
	if err != nil {
		return Quote{}, err
	}
	return Compute(km, source, in.TruckType, in.WeightTons), nil
}

func (e *Estimator) distance(ctx context.Context, origin, destination string, strict bool) (int, string, error) {
	for _, src := range e.sources {
		km, err := src.Lookup(ctx, origin, destination)
		if err == nil && km > 0 {
			return km, src.Name(), nil
		}
		if err == nil || errors.Is(err, ErrRouteNotFound) {
			continue
		}
		if strict {
			return 0, "", err
		}
		e.logger.Warn("distance source failed",
			slog.String("source", src.Name()),
			slog.String("origin", origin),
			slog.String("destination", destination),
			slog.Any("error", err),
		)
	}

	km := e.fallback.Estimate(origin, destination)
	e.logger.Debug("distance fallback used",
		slog.String("origin", origin),
		slog.String("destination", destination),
		slog.Int("km", km),
	)
	return km, FallbackSourceName, nil
}

// Compute prices a known distance. Fuel and margin are rounded before the total is summed.
func Compute(distanceKM int, source string, truck model.TruckType, weightTons decimal.Decimal) Quote {
	rate := RatePerKM(truck)
	base := decimal.NewFromInt(int64(distanceKM)).Mul(rate)
	if weightTons.GreaterThan(surchargeFreeT) {
		factor := decimal.NewFromInt(1).Add(weightTons.Sub(surchargeFreeT).Mul(surchargePerTon))
		base = base.Mul(factor)
	}

	fuel := base.Mul(fuelShare).Round(0)
	margin := base.Mul(marginShare).Round(0)
	// the total uses the unrounded base; Breakdown.Base is rounded for display only
	total := base.Add(fuel).Add(margin).Add(handlingFee).Round(0)

	return Quote{
		SuggestedPrice: total,
		Breakdown: Breakdown{
			Base:     base.Round(2),
			Fuel:     fuel,
			Margin:   margin,
			Handling: handlingFee,
		},
		Params: Params{
			DistanceKM:     distanceKM,
			DistanceSource: source,
			WeightTons:     weightTons,
			RatePerKM:      rate,
		},
	}
}
