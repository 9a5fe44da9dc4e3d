package test

import (
	"context"
	"sync"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// EventRecorder collects published events.
type EventRecorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *EventRecorder) Publish(_ context.Context, ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a snapshot of everything published so far.
func (r *EventRecorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types lists the published event types in order.
func (r *EventRecorder) Types() []model.EventType {
	var types []model.EventType
	for _, ev := range r.Events() {
		types = append(types, ev.Type)
	}
	return types
}
