// Package invoice composes invoice drafts. A Draft is immutable: every
// operation returns a new Draft and leaves the receiver untouched.
package invoice

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// TaxMode selects whether tax is charged on top of the discounted subtotal.
type TaxMode string

const (
	TaxApplied TaxMode = "applied"
	TaxExempt  TaxMode = "exempt"
)

// Field names a line item attribute editable through UpdateLineItem.
type Field string

const (
	FieldDescription Field = "description"
	FieldCode        Field = "code"
	FieldQuantity    Field = "quantity"
	FieldRate        Field = "rate"
)

// Options configure a Draft.
type Options struct {
	TaxMode TaxMode
	// NewID generates line item identifiers. Defaults to random UUIDs.
	NewID func() string
}

// Draft is an invoice under composition for one load.
type Draft struct {
	loadID    int64
	shipperID int64
	opts      Options

	items []model.LineItem

	fuelSurcharge  decimal.Decimal
	tollCharges    decimal.Decimal
	handlingFee    decimal.Decimal
	insuranceFee   decimal.Decimal
	discountAmount decimal.Decimal
	discountReason string
	taxPercent     decimal.Decimal
	terms          model.PaymentTerms
	notes          string
}

// New starts a draft holding a single empty line item.
func New(loadID, shipperID int64, opts Options) Draft {
	if opts.TaxMode != TaxExempt {
		opts.TaxMode = TaxApplied
	}
	d := Draft{
		loadID:    loadID,
		shipperID: shipperID,
		opts:      opts,
		terms:     model.DefaultPaymentTerms,
	}
	d.items = []model.LineItem{d.emptyItem()}
	return d
}

func (d Draft) newID() string {
	if d.opts.NewID != nil {
		return d.opts.NewID()
	}
	return uuid.NewString()
}

func (d Draft) emptyItem() model.LineItem {
	return model.LineItem{
		ID:       d.newID(),
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.Zero,
		Amount:   decimal.Zero,
	}
}

func (d Draft) clone() Draft {
	d.items = slices.Clone(d.items)
	return d
}

func (d Draft) LoadID() int64 { return d.loadID }
func (d Draft) ShipperID() int64 { return d.shipperID }
func (d Draft) TaxMode() TaxMode { return d.opts.TaxMode }
func (d Draft) PaymentTerms() model.PaymentTerms { return d.terms }

// Items returns a copy of the line items in insertion order.
func (d Draft) Items() []model.LineItem {
	return slices.Clone(d.items)
}

// AddLineItem appends an item with quantity 1 and rate 0.
func (d Draft) AddLineItem() Draft {
	next := d.clone()
	next.items = append(next.items, d.emptyItem())
	return next
}

// UpdateLineItem sets one field of the item with the given id. Quantity and
// rate are parsed as decimals, unparsable input counts as zero, and the
// item amount is recomputed. Unknown ids and fields leave the draft unchanged.
func (d Draft) UpdateLineItem(id string, field Field, value string) Draft {
	switch field {
	case FieldDescription:
		return d.update(id, func(it *model.LineItem) { it.Description = value })
	case FieldCode:
		return d.update(id, func(it *model.LineItem) { it.Code = value })
	case FieldQuantity:
		return d.SetQuantity(id, ParseAmount(value))
	case FieldRate:
		return d.SetRate(id, ParseAmount(value))
	default:
		return d
	}
}

func (d Draft) SetDescription(id, description string) Draft {
	return d.update(id, func(it *model.LineItem) { it.Description = description })
}

func (d Draft) SetQuantity(id string, quantity decimal.Decimal) Draft {
	return d.update(id, func(it *model.LineItem) {
		it.Quantity = quantity
		it.Amount = quantity.Mul(it.Rate)
	})
}

func (d Draft) SetRate(id string, rate decimal.Decimal) Draft {
	return d.update(id, func(it *model.LineItem) {
		it.Rate = rate
		it.Amount = it.Quantity.Mul(rate)
	})
}

func (d Draft) update(id string, apply func(*model.LineItem)) Draft {
	i := d.index(id)
	if i < 0 {
		return d
	}
	next := d.clone()
	apply(&next.items[i])
	return next
}

// RemoveLineItem drops the item unless it is the only one left.
func (d Draft) RemoveLineItem(id string) Draft {
	i := d.index(id)
	if i < 0 || len(d.items) <= 1 {
		return d
	}
	next := d.clone()
	next.items = slices.Delete(next.items, i, i+1)
	return next
}

func (d Draft) index(id string) int {
	return slices.IndexFunc(d.items, func(it model.LineItem) bool { return it.ID == id })
}

func (d Draft) WithFuelSurcharge(v decimal.Decimal) Draft {
	d = d.clone()
	d.fuelSurcharge = v
	return d
}

func (d Draft) WithTollCharges(v decimal.Decimal) Draft {
	d = d.clone()
	d.tollCharges = v
	return d
}

func (d Draft) WithHandlingFee(v decimal.Decimal) Draft {
	d = d.clone()
	d.handlingFee = v
	return d
}

func (d Draft) WithInsuranceFee(v decimal.Decimal) Draft {
	d = d.clone()
	d.insuranceFee = v
	return d
}

func (d Draft) WithTaxPercent(v decimal.Decimal) Draft {
	d = d.clone()
	d.taxPercent = v
	return d
}

func (d Draft) WithNotes(notes string) Draft {
	d = d.clone()
	d.notes = notes
	return d
}

func (d Draft) WithDiscount(amount decimal.Decimal, reason string) Draft {
	d = d.clone()
	d.discountAmount = amount
	d.discountReason = reason
	return d
}

// WithPaymentTerms normalizes unknown terms to the default.
func (d Draft) WithPaymentTerms(terms model.PaymentTerms) Draft {
	d = d.clone()
	d.terms = terms.Normalize()
	return d
}

// Subtotal is the sum of line amounts plus every surcharge.
func (d Draft) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range d.items {
		sum = sum.Add(it.Amount)
	}
	return sum.Add(d.fuelSurcharge).Add(d.tollCharges).Add(d.handlingFee).Add(d.insuranceFee)
}

// DiscountedSubtotal never drops below zero.
func (d Draft) DiscountedSubtotal() decimal.Decimal {
	v := d.Subtotal().Sub(d.discountAmount)
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// TaxAmount is rounded to 2 decimal places. It is zero for tax exempt drafts.
func (d Draft) TaxAmount() decimal.Decimal {
	if d.opts.TaxMode == TaxExempt {
		return decimal.Zero
	}
	return d.DiscountedSubtotal().Mul(d.taxPercent).Div(decimal.NewFromInt(100)).Round(2)
}

func (d Draft) TotalAmount() decimal.Decimal {
	return d.DiscountedSubtotal().Add(d.TaxAmount())
}

// ParseAmount parses a decimal from user input. Anything unparsable is zero.
func ParseAmount(raw string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return v
}

// DueDate adds the terms' days to the submission date and formats it as YYYY-MM-DD
// in the location of submittedAt.
func DueDate(terms model.PaymentTerms, submittedAt time.Time) string {
	return submittedAt.AddDate(0, 0, terms.Days()).Format(time.DateOnly)
}

// Invoice renders the draft as the record submitted for the load.
func (d Draft) Invoice(submittedAt time.Time) model.Invoice {
	return model.Invoice{
		LoadID:         d.loadID,
		ShipperID:      d.shipperID,
		Status:         model.InvoiceStatusDraft,
		LineItems:      d.Items(),
		FuelSurcharge:  d.fuelSurcharge,
		TollCharges:    d.tollCharges,
		HandlingFee:    d.handlingFee,
		InsuranceFee:   d.insuranceFee,
		DiscountAmount: d.discountAmount,
		DiscountReason: d.discountReason,
		TaxApplied:     d.opts.TaxMode != TaxExempt,
		TaxPercent:     d.taxPercent,
		Subtotal:       d.Subtotal(),
		TaxAmount:      d.TaxAmount(),
		TotalAmount:    d.TotalAmount(),
		PaymentTerms:   d.terms,
		DueDate:        DueDate(d.terms, submittedAt),
		Notes:          d.notes,
	}
}
