package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// EventPublisher delivers workflow events to connected clients. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, ev model.Event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.Event) {}

// Clock returns the current time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
