// Package notifications forwards booking domain events to subscribers.
// Dispatch is fire and forget: a delivery failure is logged and never fails
// the request that produced the event.
package notifications

import (
	"context"

	"hotelbooking/pkg/events"
	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/logger"

	"github.com/google/uuid"
)

// Dispatcher delivers domain events after the persistence commit.
type Dispatcher interface {
	Emit(ctx context.Context, event events.Event)
}

// EmitAll forwards every event in order.
func EmitAll(ctx context.Context, d Dispatcher, evs []events.Event) {
	for _, ev := range evs {
		d.Emit(ctx, ev)
	}
}

// KafkaDispatcher publishes events to the booking events topic, keyed by
// booking ID so events for one booking stay in order on a partition.
type KafkaDispatcher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaDispatcher(producer *kafka.Producer, source string, log *logger.Logger) *KafkaDispatcher {
	return &KafkaDispatcher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (d *KafkaDispatcher) Emit(ctx context.Context, ev events.Event) {
	msg := kafka.NewMessage().
		WithKey(ev.Key()).
		WithValue(ev).
		WithEventID(uuid.NewString()).
		WithEventType(string(ev.Type)).
		WithSource(d.source).
		Build()

	if err := d.producer.Publish(ctx, msg); err != nil {
		d.log.Error("Failed to publish booking event",
			"event_type", ev.Type,
			"booking_id", ev.BookingID,
			"error", err,
		)
	}
}

// LogDispatcher is the fallback when no broker is configured. It also backs
// handler tests.
type LogDispatcher struct {
	log *logger.Logger
}

func NewLogDispatcher(log *logger.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Emit(_ context.Context, ev events.Event) {
	d.log.Info("Booking event",
		"event_type", ev.Type,
		"booking_id", ev.BookingID,
		"hotel_id", ev.Targets.HotelID,
		"user_id", ev.Targets.UserID,
		"broadcast", ev.Targets.Broadcast,
	)
}

var _ Dispatcher = (*KafkaDispatcher)(nil)
var _ Dispatcher = (*LogDispatcher)(nil)
