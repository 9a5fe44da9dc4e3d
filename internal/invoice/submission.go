package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// SubmissionItem is a line item on the wire. Money is encoded as decimal strings.
type SubmissionItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// Submission is the JSON record sent when an invoice is saved or sent.
type Submission struct {
	LoadID         int64            `json:"loadId"`
	ShipperID      int64            `json:"shipperId"`
	LineItems      []SubmissionItem `json:"lineItems"`
	Subtotal       string           `json:"subtotal"`
	FuelSurcharge  string           `json:"fuelSurcharge"`
	TollCharges    string           `json:"tollCharges"`
	HandlingFee    string           `json:"handlingFee"`
	InsuranceFee   string           `json:"insuranceFee"`
	DiscountAmount string           `json:"discountAmount"`
	DiscountReason string           `json:"discountReason"`
	TaxPercent     string           `json:"taxPercent"`
	TaxAmount      string           `json:"taxAmount"`
	TotalAmount    string           `json:"totalAmount"`
	PaymentTerms   string           `json:"paymentTerms"`
	DueDate        string           `json:"dueDate"`
	Notes          string           `json:"notes"`
}

// Submission renders the draft for the wire.
func (d Draft) Submission(submittedAt time.Time) Submission {
	return SubmissionOf(d.Invoice(submittedAt))
}

// SubmissionOf renders a stored invoice for the wire.
func SubmissionOf(inv model.Invoice) Submission {
	items := make([]SubmissionItem, len(inv.LineItems))
	for i, it := range inv.LineItems {
		items[i] = SubmissionItem{
			ID:          it.ID,
			Description: it.Description,
			Code:        it.Code,
			Quantity:    it.Quantity.String(),
			Rate:        money(it.Rate),
			Amount:      money(it.Amount),
		}
	}
	return Submission{
		LoadID:         inv.LoadID,
		ShipperID:      inv.ShipperID,
		LineItems:      items,
		Subtotal:       money(inv.Subtotal),
		FuelSurcharge:  money(inv.FuelSurcharge),
		TollCharges:    money(inv.TollCharges),
		HandlingFee:    money(inv.HandlingFee),
		InsuranceFee:   money(inv.InsuranceFee),
		DiscountAmount: money(inv.DiscountAmount),
		DiscountReason: inv.DiscountReason,
		TaxPercent:     inv.TaxPercent.String(),
		TaxAmount:      money(inv.TaxAmount),
		TotalAmount:    money(inv.TotalAmount),
		PaymentTerms:   string(inv.PaymentTerms),
		DueDate:        inv.DueDate,
		Notes:          inv.Notes,
	}
}

// money renders at least 2 decimal places and never rounds. Line amounts stay
// exactly quantity×rate, so the sent items always add up to the sent subtotal.
func money(v decimal.Decimal) string {
	places := int32(2)
	if _, frac, ok := strings.Cut(v.String(), "."); ok && int32(len(frac)) > places {
		places = int32(len(frac))
	}
	return v.StringFixed(places)
}
