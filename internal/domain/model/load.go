package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoadStatus is the workflow position of a load.
type LoadStatus string

const (
	LoadStatusDraft            LoadStatus = "draft"
	LoadStatusPending          LoadStatus = "pending"
	LoadStatusPriced           LoadStatus = "priced"
	LoadStatusPostedToCarriers LoadStatus = "posted_to_carriers"
	LoadStatusOpenForBid       LoadStatus = "open_for_bid"
	LoadStatusCounterReceived  LoadStatus = "counter_received"
	LoadStatusAwarded          LoadStatus = "awarded"
	LoadStatusInvoiceSent      LoadStatus = "invoice_sent"
	LoadStatusInvoiceApproved  LoadStatus = "invoice_approved"
	LoadStatusInTransit        LoadStatus = "in_transit"
	LoadStatusDelivered        LoadStatus = "delivered"
	LoadStatusClosed           LoadStatus = "closed"
	LoadStatusCancelled        LoadStatus = "cancelled"
)

// LoadStatuses lists every status in workflow order.
var LoadStatuses = []LoadStatus{
	LoadStatusDraft,
	LoadStatusPending,
	LoadStatusPriced,
	LoadStatusPostedToCarriers,
	LoadStatusOpenForBid,
	LoadStatusCounterReceived,
	LoadStatusAwarded,
	LoadStatusInvoiceSent,
	LoadStatusInvoiceApproved,
	LoadStatusInTransit,
	LoadStatusDelivered,
	LoadStatusClosed,
	LoadStatusCancelled,
}

// ParseLoadStatus matches raw case-insensitively against the known statuses.
func ParseLoadStatus(raw string) (LoadStatus, bool) {
	s := LoadStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range LoadStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Terminal reports whether no further transitions are possible.
func (s LoadStatus) Terminal() bool {
	return s == LoadStatusClosed || s == LoadStatusCancelled
}

// RateType is how the shipper declared their price.
type RateType string

const (
	RateTypePerTon RateType = "per_ton"
	RateTypeFixed  RateType = "fixed"
)

// ParseRateType accepts "per_ton" and "fixed" in any case.
func ParseRateType(raw string) (RateType, bool) {
	switch r := RateType(strings.ToLower(strings.TrimSpace(raw))); r {
	case RateTypePerTon, RateTypeFixed:
		return r, true
	default:
		return "", false
	}
}

// Location is a pickup or drop-off point.
type Location struct {
	City    string
	State   string
	Address string
}

// Label renders "City, State" as used for distance lookups.
func (l Location) Label() string {
	if l.State == "" {
		return l.City
	}
	return l.City + ", " + l.State
}

// Load is a shipment request posted by a shipper.
type Load struct {
	ID                int64
	ShipperID         int64
	Pickup            Location
	Dropoff           Location
	WeightTons        decimal.Decimal
	TruckType         TruckType
	RateType          RateType
	ShipperPrice      decimal.NullDecimal
	AdminPrice        decimal.NullDecimal
	AcceptedBidAmount decimal.NullDecimal
	SuggestedPrice    decimal.NullDecimal
	Status            LoadStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
