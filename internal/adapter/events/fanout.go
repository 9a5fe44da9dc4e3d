package events

import (
	"context"
	"log/slog"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// Fanout delivers each event to every sink. Sink failures are logged.
type Fanout struct {
	sinks  []Sink
	logger *slog.Logger
}

func NewFanout(logger *slog.Logger, sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks, logger: logger}
}

func (f *Fanout) Publish(ctx context.Context, ev model.Event) {
	for _, s := range f.sinks {
		if err := s.Publish(ctx, ev); err != nil {
			f.logger.Warn("event delivery failed",
				slog.String("sink", s.Name()),
				slog.String("type", string(ev.Type)),
				slog.Int64("load_id", ev.LoadID),
				slog.String("error", err.Error()),
			)
		}
	}
}
