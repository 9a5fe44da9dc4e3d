package dto

import (
	"time"

	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/invoice"
)

// LineItemRequest mirrors the invoice form. Numbers arrive as entered.
type LineItemRequest struct {
	Description string `json:"description"`
	Code        string `json:"code"`
	Quantity    Amount `json:"quantity"`
	Rate        Amount `json:"rate"`
}

type InvoiceRequest struct {
	LineItems      []LineItemRequest `json:"lineItems"`
	FuelSurcharge  Amount            `json:"fuelSurcharge"`
	TollCharges    Amount            `json:"tollCharges"`
	HandlingFee    Amount            `json:"handlingFee"`
	InsuranceFee   Amount            `json:"insuranceFee"`
	DiscountAmount Amount            `json:"discountAmount"`
	DiscountReason string            `json:"discountReason"`
	TaxPercent     Amount            `json:"taxPercent"`
	PaymentTerms   string            `json:"paymentTerms"`
	Notes          string            `json:"notes"`
}

// Form converts the request into composer input.
func (r InvoiceRequest) Form() invoice.Form {
	items := make([]invoice.ItemInput, len(r.LineItems))
	for i, it := range r.LineItems {
		items[i] = invoice.ItemInput{
			Description: it.Description,
			Code:        it.Code,
			Quantity:    it.Quantity.Decimal(),
			Rate:        it.Rate.Decimal(),
		}
	}
	return invoice.Form{
		Items:          items,
		FuelSurcharge:  r.FuelSurcharge.Decimal(),
		TollCharges:    r.TollCharges.Decimal(),
		HandlingFee:    r.HandlingFee.Decimal(),
		InsuranceFee:   r.InsuranceFee.Decimal(),
		DiscountAmount: r.DiscountAmount.Decimal(),
		DiscountReason: r.DiscountReason,
		TaxPercent:     r.TaxPercent.Decimal(),
		PaymentTerms:   model.PaymentTerms(r.PaymentTerms),
		Notes:          r.Notes,
	}
}

// InvoiceResponse is the submission record plus storage metadata.
type InvoiceResponse struct {
	invoice.Submission
	ID             int64      `json:"id,omitempty"`
	Status         string     `json:"status,omitempty"`
	TaxApplied     bool       `json:"taxApplied"`
	IdempotencyKey string     `json:"idempotencyKey,omitempty"`
	Replayed       bool       `json:"replayed,omitempty"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
}
