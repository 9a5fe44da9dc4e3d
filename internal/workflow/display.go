// Package workflow maps load statuses to their presentation and applies status transitions.
package workflow

import "github.com/polkiloo/freightdesk/internal/domain/model"

// Variant is the severity tag used to colour a status badge.
type Variant string

const (
	VariantNeutral Variant = "neutral"
	VariantInfo    Variant = "info"
	VariantWarning Variant = "warning"
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
)

// Display is how a status is shown to users.
type Display struct {
	Label     string
	Variant   Variant
	StyleHint string
}

const (
	styleNeutral = "bg-gray-100 text-gray-800"
	styleInfo    = "bg-blue-100 text-blue-800"
	styleIndigo  = "bg-indigo-100 text-indigo-800"
	stylePurple  = "bg-purple-100 text-purple-800"
	styleWarning = "bg-yellow-100 text-yellow-800"
	styleOrange  = "bg-orange-100 text-orange-800"
	styleSuccess = "bg-green-100 text-green-800"
	styleEmerald = "bg-emerald-100 text-emerald-800"
	styleDanger  = "bg-red-100 text-red-800"
)

// ResolveStateDisplay returns the label, variant and style for a raw status string.
// Matching is case-insensitive; unknown statuses are shown verbatim as neutral.
func ResolveStateDisplay(status string) Display {
	s, ok := model.ParseLoadStatus(status)
	if !ok {
		return Display{Label: status, Variant: VariantNeutral}
	}
	return DisplayFor(s)
}

// DisplayFor returns the display of a known status.
func DisplayFor(s model.LoadStatus) Display {
	switch s {
	case model.LoadStatusDraft:
		return Display{Label: "Draft", Variant: VariantNeutral, StyleHint: styleNeutral}
	case model.LoadStatusPending:
		return Display{Label: "Pending Review", Variant: VariantWarning, StyleHint: styleWarning}
	case model.LoadStatusPriced:
		return Display{Label: "Priced", Variant: VariantInfo, StyleHint: styleInfo}
	case model.LoadStatusPostedToCarriers:
		return Display{Label: "Posted to Carriers", Variant: VariantInfo, StyleHint: styleIndigo}
	case model.LoadStatusOpenForBid:
		return Display{Label: "Open for Bids", Variant: VariantInfo, StyleHint: stylePurple}
	case model.LoadStatusCounterReceived:
		return Display{Label: "Counter Received", Variant: VariantWarning, StyleHint: styleOrange}
	case model.LoadStatusAwarded:
		return Display{Label: "Awarded", Variant: VariantSuccess, StyleHint: styleSuccess}
	case model.LoadStatusInvoiceSent:
		return Display{Label: "Invoice Sent", Variant: VariantInfo, StyleHint: styleInfo}
	case model.LoadStatusInvoiceApproved:
		return Display{Label: "Invoice Approved", Variant: VariantSuccess, StyleHint: styleEmerald}
	case model.LoadStatusInTransit:
		return Display{Label: "In Transit", Variant: VariantInfo, StyleHint: styleIndigo}
	case model.LoadStatusDelivered:
		return Display{Label: "Delivered", Variant: VariantSuccess, StyleHint: styleSuccess}
	case model.LoadStatusClosed:
		return Display{Label: "Closed", Variant: VariantNeutral, StyleHint: styleNeutral}
	case model.LoadStatusCancelled:
		return Display{Label: "Cancelled", Variant: VariantDanger, StyleHint: styleDanger}
	default:
		return Display{Label: string(s), Variant: VariantNeutral}
	}
}
