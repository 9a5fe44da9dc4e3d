package workflow

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// Action identifies a workflow operation.
type Action string

const (
	ActionSubmit         Action = "submit"
	ActionPrice          Action = "price"
	ActionPost           Action = "post"
	ActionOpenBidding    Action = "open_bidding"
	ActionReviewBids     Action = "review_bids"
	ActionReviewCounter  Action = "review_counter"
	ActionCounter        Action = "counter"
	ActionAward          Action = "award"
	ActionSendInvoice    Action = "send_invoice"
	ActionApproveInvoice Action = "approve_invoice"
	ActionStartTransit   Action = "start_transit"
	ActionMarkDelivered  Action = "mark_delivered"
	ActionClose          Action = "close"
	ActionCancel         Action = "cancel"
)

// ParseAction normalizes an action id.
func ParseAction(raw string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	switch a {
	case ActionSubmit, ActionPrice, ActionPost, ActionOpenBidding, ActionReviewBids,
		ActionReviewCounter, ActionCounter, ActionAward, ActionSendInvoice,
		ActionApproveInvoice, ActionStartTransit, ActionMarkDelivered, ActionClose, ActionCancel:
		return a, true
	default:
		return "", false
	}
}

// IsManual reports whether the action is a bare status change with no payload.
// Pricing, bidding and invoicing go through their own operations.
func IsManual(a Action) bool {
	switch a {
	case ActionPost, ActionOpenBidding, ActionStartTransit, ActionMarkDelivered, ActionClose, ActionCancel:
		return true
	default:
		return false
	}
}

// AdminAction is the next operation an admin is prompted to take.
type AdminAction struct {
	ID          Action
	ButtonLabel string
}

// ResolveAdminAction returns the recommended admin action for a raw status string.
func ResolveAdminAction(status string) (AdminAction, bool) {
	s, ok := model.ParseLoadStatus(status)
	if !ok {
		return AdminAction{}, false
	}
	return AdminActionFor(s)
}

// AdminActionFor returns the recommended admin action of a known status.
func AdminActionFor(s model.LoadStatus) (AdminAction, bool) {
	switch s {
	case model.LoadStatusPending:
		return AdminAction{ID: ActionPrice, ButtonLabel: "Price Load"}, true
	case model.LoadStatusPriced:
		return AdminAction{ID: ActionPost, ButtonLabel: "Post to Carriers"}, true
	case model.LoadStatusPostedToCarriers:
		return AdminAction{ID: ActionOpenBidding, ButtonLabel: "Open for Bidding"}, true
	case model.LoadStatusOpenForBid:
		return AdminAction{ID: ActionReviewBids, ButtonLabel: "Review Bids"}, true
	case model.LoadStatusCounterReceived:
		return AdminAction{ID: ActionReviewCounter, ButtonLabel: "Review Counter Offer"}, true
	case model.LoadStatusAwarded:
		return AdminAction{ID: ActionSendInvoice, ButtonLabel: "Send Invoice"}, true
	case model.LoadStatusInvoiceApproved:
		return AdminAction{ID: ActionStartTransit, ButtonLabel: "Mark In Transit"}, true
	case model.LoadStatusInTransit:
		return AdminAction{ID: ActionMarkDelivered, ButtonLabel: "Mark Delivered"}, true
	case model.LoadStatusDelivered:
		return AdminAction{ID: ActionClose, ButtonLabel: "Close Load"}, true
	case model.LoadStatusDraft, model.LoadStatusInvoiceSent, model.LoadStatusClosed, model.LoadStatusCancelled:
		return AdminAction{}, false
	default:
		return AdminAction{}, false
	}
}

// Transition applies action to a load in status from and returns the resulting status.
// It returns an error wrapping errors.ErrIllegalTransition when the action is not allowed.
func Transition(from model.LoadStatus, action Action) (model.LoadStatus, error) {
	to, ok := next(from, action)
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", domainErrors.ErrIllegalTransition, action, from)
	}
	return to, nil
}

func next(from model.LoadStatus, action Action) (model.LoadStatus, bool) {
	switch action {
	case ActionSubmit:
		return model.LoadStatusPending, from == model.LoadStatusDraft
	case ActionPrice:
		return model.LoadStatusPriced, from == model.LoadStatusPending
	case ActionPost:
		return model.LoadStatusPostedToCarriers, from == model.LoadStatusPriced
	case ActionOpenBidding:
		return model.LoadStatusOpenForBid, from == model.LoadStatusPostedToCarriers
	case ActionCounter:
		return model.LoadStatusCounterReceived,
			from == model.LoadStatusOpenForBid || from == model.LoadStatusCounterReceived
	case ActionAward:
		return model.LoadStatusAwarded, AcceptsBids(from)
	case ActionSendInvoice:
		return model.LoadStatusInvoiceSent, from == model.LoadStatusAwarded
	case ActionApproveInvoice:
		return model.LoadStatusInvoiceApproved, from == model.LoadStatusInvoiceSent
	case ActionStartTransit:
		return model.LoadStatusInTransit, from == model.LoadStatusInvoiceApproved
	case ActionMarkDelivered:
		return model.LoadStatusDelivered, from == model.LoadStatusInTransit
	case ActionClose:
		return model.LoadStatusClosed, from == model.LoadStatusDelivered
	case ActionCancel:
		return model.LoadStatusCancelled, cancellable(from)
	default:
		return from, false
	}
}

// AcceptsBids reports whether carriers may bid on a load in status s.
func AcceptsBids(s model.LoadStatus) bool {
	return s == model.LoadStatusPostedToCarriers ||
		s == model.LoadStatusOpenForBid ||
		s == model.LoadStatusCounterReceived
}

func cancellable(s model.LoadStatus) bool {
	switch s {
	case model.LoadStatusInTransit, model.LoadStatusDelivered, model.LoadStatusClosed, model.LoadStatusCancelled:
		return false
	default:
		_, known := model.ParseLoadStatus(string(s))
		return known
	}
}
