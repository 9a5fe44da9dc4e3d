package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BidStatus describes where a carrier offer stands.
type BidStatus string

const (
	BidStatusActive   BidStatus = "active"
	BidStatusRejected BidStatus = "rejected"
	BidStatusAccepted BidStatus = "accepted"
)

// Bid is a carrier offer against a load.
type Bid struct {
	ID            int64
	LoadID        int64
	CarrierID     int64
	Amount        decimal.Decimal
	CounterAmount decimal.NullDecimal
	Status        BidStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Agreed returns the amount the load is awarded at when this bid is accepted.
// A countered bid settles at the counter amount.
func (b Bid) Agreed() decimal.Decimal {
	if b.CounterAmount.Valid {
		return b.CounterAmount.Decimal
	}
	return b.Amount
}
