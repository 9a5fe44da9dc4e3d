package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type Location struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Address string `json:"address,omitempty"`
}

// LoadRequest is a shipper's load submission. Amounts accept JSON numbers or strings.
type LoadRequest struct {
	Pickup     Location            `json:"pickup"`
	Dropoff    Location            `json:"dropoff"`
	WeightTons decimal.Decimal     `json:"weightTons"`
	TruckType  string              `json:"truckType"`
	RateType   string              `json:"rateType,omitempty"`
	Price      decimal.NullDecimal `json:"price"`
}

// PriceRequest sets the admin sale price of a load.
type PriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type Display struct {
	Label     string `json:"label"`
	Variant   string `json:"variant"`
	StyleHint string `json:"styleHint,omitempty"`
}

type AdminAction struct {
	ID          string `json:"id"`
	ButtonLabel string `json:"buttonLabel"`
}

// LoadResponse is a load with its presentation. Money is rendered as decimal strings.
type LoadResponse struct {
	ID                int64        `json:"id"`
	ShipperID         int64        `json:"shipperId"`
	Pickup            Location     `json:"pickup"`
	Dropoff           Location     `json:"dropoff"`
	WeightTons        string       `json:"weightTons"`
	TruckType         string       `json:"truckType"`
	RateType          string       `json:"rateType"`
	ShipperPrice      *string      `json:"shipperPrice,omitempty"`
	AdminPrice        *string      `json:"adminPrice,omitempty"`
	AcceptedBidAmount *string      `json:"acceptedBidAmount,omitempty"`
	SuggestedPrice    *string      `json:"suggestedPrice,omitempty"`
	Status            string       `json:"status"`
	Display           Display      `json:"display"`
	AdminAction       *AdminAction `json:"adminAction,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// StatusEntry is one row of the status display table.
type StatusEntry struct {
	Status      string       `json:"status"`
	Display     Display      `json:"display"`
	AdminAction *AdminAction `json:"adminAction,omitempty"`
}
