package model

import "time"

// EventType names a workflow push event.
type EventType string

const (
	EventLoadSubmitted     EventType = "load.submitted"
	EventLoadStatusChanged EventType = "load.status_changed"
	EventBidPlaced         EventType = "bid.placed"
	EventBidCountered      EventType = "bid.countered"
	EventBidAccepted       EventType = "bid.accepted"
	EventBidRejected       EventType = "bid.rejected"
	EventInvoiceSaved      EventType = "invoice.saved"
	EventInvoiceSent       EventType = "invoice.sent"
)

// Event notifies clients that load or bid state changed and should be re-fetched.
type Event struct {
	Type   EventType  `json:"type"`
	LoadID int64      `json:"loadId"`
	BidID  int64      `json:"bidId,omitempty"`
	Status LoadStatus `json:"status,omitempty"`
	At     time.Time  `json:"at"`
}
