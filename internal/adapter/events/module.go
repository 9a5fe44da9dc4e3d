package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/freightdesk/internal/config"
	"github.com/polkiloo/freightdesk/internal/usecase"
)

// Module wires the websocket hub, the optional Kafka publisher and the
// fanout used by use cases.
var Module = fx.Options(
	fx.Provide(
		NewHub,
		newKafkaPublisher,
		newFanout,
		func(f *Fanout) usecase.EventPublisher { return f },
	),
	fx.Invoke(registerLifecycle),
)

type kafkaParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// newKafkaPublisher returns nil when no brokers are configured.
func newKafkaPublisher(p kafkaParams) *KafkaPublisher {
	if len(p.Config.KafkaBrokers) == 0 {
		return nil
	}
	p.Logger.Info("publishing events to kafka",
		slog.Any("brokers", p.Config.KafkaBrokers),
		slog.String("topic", p.Config.KafkaTopic),
	)
	return NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.KafkaTopic)
}

func newFanout(logger *slog.Logger, hub *Hub, kafka *KafkaPublisher) *Fanout {
	sinks := []Sink{hub}
	if kafka != nil {
		sinks = append(sinks, kafka)
	}
	return NewFanout(logger, sinks...)
}

func registerLifecycle(lc fx.Lifecycle, hub *Hub, kafka *KafkaPublisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			hub.Close()
			if kafka != nil {
				return kafka.Close()
			}
			return nil
		},
	})
}
