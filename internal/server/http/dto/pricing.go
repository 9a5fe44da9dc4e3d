package dto

import "github.com/shopspring/decimal"

// EstimateRequest prices an ad hoc route.
type EstimateRequest struct {
	Pickup     string          `json:"pickup"`
	Dropoff    string          `json:"dropoff"`
	TruckType  string          `json:"truckType"`
	WeightTons decimal.Decimal `json:"weightTons"`
}

type Breakdown struct {
	Base     string `json:"base"`
	Fuel     string `json:"fuel"`
	Margin   string `json:"margin"`
	Handling string `json:"handling"`
}

type QuoteResponse struct {
	LoadID         int64     `json:"loadId,omitempty"`
	SuggestedPrice string    `json:"suggestedPrice"`
	Breakdown      Breakdown `json:"breakdown"`
	DistanceKM     int       `json:"distanceKm"`
	DistanceSource string    `json:"distanceSource"`
	WeightTons     string    `json:"weightTons"`
	RatePerKM      string    `json:"ratePerKm"`
}
