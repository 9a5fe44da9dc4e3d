package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountRequest carries a bid or counter offer amount.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type BidResponse struct {
	ID            int64     `json:"id"`
	LoadID        int64     `json:"loadId"`
	CarrierID     int64     `json:"carrierId"`
	Amount        string    `json:"amount"`
	CounterAmount *string   `json:"counterAmount,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
