package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// ItemInput is a line item as entered by the user.
type ItemInput struct {
	Description string
	Code        string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
}

// Form is a complete set of invoice form values as entered.
type Form struct {
	Items          []ItemInput
	FuelSurcharge  decimal.Decimal
	TollCharges    decimal.Decimal
	HandlingFee    decimal.Decimal
	InsuranceFee   decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountReason string
	TaxPercent     decimal.Decimal
	PaymentTerms   model.PaymentTerms
	Notes          string
}

// Compose replays a form onto a fresh draft through the regular draft operations.
// An empty item list keeps the initial empty item.
func Compose(loadID, shipperID int64, opts Options, form Form) Draft {
	d := New(loadID, shipperID, opts)
	for i, in := range form.Items {
		if i > 0 {
			d = d.AddLineItem()
		}
		items := d.items
		id := items[len(items)-1].ID
		d = d.SetDescription(id, in.Description).
			UpdateLineItem(id, FieldCode, in.Code).
			SetQuantity(id, in.Quantity).
			SetRate(id, in.Rate)
	}

	return d.
		WithFuelSurcharge(form.FuelSurcharge).
		WithTollCharges(form.TollCharges).
		WithHandlingFee(form.HandlingFee).
		WithInsuranceFee(form.InsuranceFee).
		WithDiscount(form.DiscountAmount, form.DiscountReason).
		WithTaxPercent(form.TaxPercent).
		WithPaymentTerms(form.PaymentTerms).
		WithNotes(form.Notes)
}

// Restore rebuilds a draft from a stored invoice so it can be edited again.
// Line item ids are kept.
func Restore(inv model.Invoice, opts Options) Draft {
	d := New(inv.LoadID, inv.ShipperID, opts)
	if len(inv.LineItems) > 0 {
		d.items = make([]model.LineItem, len(inv.LineItems))
		for i, it := range inv.LineItems {
			it.Amount = it.Quantity.Mul(it.Rate)
			d.items[i] = it
		}
	}
	d.fuelSurcharge = inv.FuelSurcharge
	d.tollCharges = inv.TollCharges
	d.handlingFee = inv.HandlingFee
	d.insuranceFee = inv.InsuranceFee
	d.discountAmount = inv.DiscountAmount
	d.discountReason = inv.DiscountReason
	d.taxPercent = inv.TaxPercent
	d.terms = inv.PaymentTerms.Normalize()
	d.notes = inv.Notes
	return d
}
