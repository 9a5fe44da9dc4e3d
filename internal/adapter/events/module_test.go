package events

import (
	"context"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/freightdesk/internal/config"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/usecase"
)

func TestNewKafkaPublisherDisabledWithoutBrokers(t *testing.T) {
	if p := newKafkaPublisher(kafkaParams{Config: &config.Config{}, Logger: testLogger()}); p != nil {
		t.Fatal("expected kafka to be disabled")
	}
	p := newKafkaPublisher(kafkaParams{Config: &config.Config{KafkaBrokers: []string{"k1:9092"}, KafkaTopic: "t"}, Logger: testLogger()})
	if p == nil {
		t.Fatal("expected kafka publisher")
	}
}

func TestNewFanoutSkipsMissingKafka(t *testing.T) {
	hub := NewHub(testLogger())
	if f := newFanout(testLogger(), hub, nil); len(f.sinks) != 1 {
		t.Fatalf("expected hub only, got %d sinks", len(f.sinks))
	}
	kafka := NewKafkaPublisherWithWriter(&fakeWriter{})
	if f := newFanout(testLogger(), hub, kafka); len(f.sinks) != 2 {
		t.Fatalf("expected hub and kafka, got %d sinks", len(f.sinks))
	}
}

func TestModuleProvidesPublisher(t *testing.T) {
	var (
		publisher usecase.EventPublisher
		hub       *Hub
	)
	app := fxtest.New(t,
		fx.Supply(&config.Config{}, testLogger()),
		Module,
		fx.Populate(&publisher, &hub),
	)
	app.RequireStart()

	publisher.Publish(context.Background(), model.Event{Type: model.EventLoadSubmitted, LoadID: 1})

	app.RequireStop()
	if !hub.closed {
		t.Fatal("expected hub to be closed on stop")
	}
}
