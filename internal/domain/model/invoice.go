package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTerms controls how far the due date lies after submission.
type PaymentTerms string

const (
	TermsDueOnReceipt PaymentTerms = "Due on Receipt"
	TermsNet7         PaymentTerms = "Net 7"
	TermsNet15        PaymentTerms = "Net 15"
	TermsNet30        PaymentTerms = "Net 30"
	TermsNet45        PaymentTerms = "Net 45"
)

// DefaultPaymentTerms applies when none or an unknown value is given.
const DefaultPaymentTerms = TermsNet30

// Days returns the number of calendar days granted. Unknown terms get 30.
func (p PaymentTerms) Days() int {
	switch p.normalize() {
	case TermsDueOnReceipt:
		return 0
	case TermsNet7:
		return 7
	case TermsNet15:
		return 15
	case TermsNet45:
		return 45
	default:
		return 30
	}
}

func (p PaymentTerms) normalize() PaymentTerms {
	trimmed := strings.TrimSpace(string(p))
	for _, known := range []PaymentTerms{TermsDueOnReceipt, TermsNet7, TermsNet15, TermsNet30, TermsNet45} {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return ""
}

// Normalize maps p to its canonical spelling or the default terms.
func (p PaymentTerms) Normalize() PaymentTerms {
	if n := p.normalize(); n != "" {
		return n
	}
	return DefaultPaymentTerms
}

// InvoiceStatus tracks a persisted invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusSent     InvoiceStatus = "sent"
	InvoiceStatusApproved InvoiceStatus = "approved"
)

// LineItem is one billable row. Amount is always Quantity × Rate.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Code        string          `json:"code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is the submitted form of an invoice draft.
type Invoice struct {
	ID             int64
	LoadID         int64
	ShipperID      int64
	Status         InvoiceStatus
	LineItems      []LineItem
	FuelSurcharge  decimal.Decimal
	TollCharges    decimal.Decimal
	HandlingFee    decimal.Decimal
	InsuranceFee   decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountReason string
	TaxApplied     bool
	TaxPercent     decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentTerms   PaymentTerms
	DueDate        string
	Notes          string
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SentAt         *time.Time
	ApprovedAt     *time.Time
}
