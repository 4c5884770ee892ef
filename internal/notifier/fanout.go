// Package notifier fans booking events out to subscriber channels. It
// consumes the booking events topic and republishes each event once per
// target, keyed so that gateway instances can route by hotel, user, or
// broadcast.
package notifier

import (
	"context"
	"fmt"

	"hotelbooking/pkg/events"
	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/logger"
)

const (
	KeyHotelPrefix = "hotel-"
	KeyUserPrefix  = "user-"
	KeyBroadcast   = "broadcast"
)

// Publisher is the subset of the producer the fan-out needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type Fanout struct {
	publisher Publisher
	log       *logger.Logger
}

func NewFanout(publisher Publisher, log *logger.Logger) *Fanout {
	return &Fanout{
		publisher: publisher,
		log:       log,
	}
}

// Handle consumes one booking event and republishes it per target. A message
// that does not decode is permanent and goes straight to the DLQ.
func (f *Fanout) Handle(ctx context.Context, msg kafka.Message) error {
	var ev events.Event
	if err := msg.DecodeValue(&ev); err != nil {
		return kafka.NewPermanentError("failed to decode booking event", err)
	}

	keys := TargetKeys(ev.Targets)
	if len(keys) == 0 {
		f.log.Warn("Booking event has no targets, dropping",
			"event_type", ev.Type,
			"booking_id", ev.BookingID,
		)
		return nil
	}

	for _, key := range keys {
		out := kafka.NewMessage().
			WithKey(key).
			WithRawValue(msg.Value).
			WithEventID(msg.GetEventID()).
			WithEventType(string(ev.Type)).
			WithCorrelationID(msg.GetCorrelationID()).
			WithSource("notifier").
			Build()

		if err := f.publisher.Publish(ctx, out); err != nil {
			return kafka.NewTransientError(
				fmt.Sprintf("failed to publish notification for key %s", key), err)
		}
	}

	f.log.Debug("Booking event fanned out",
		"event_type", ev.Type,
		"booking_id", ev.BookingID,
		"targets", len(keys),
	)
	return nil
}

// TargetKeys maps event targets to notification routing keys.
func TargetKeys(t events.Targets) []string {
	var keys []string
	if t.HotelID != "" {
		keys = append(keys, KeyHotelPrefix+t.HotelID)
	}
	if t.UserID != "" {
		keys = append(keys, KeyUserPrefix+t.UserID)
	}
	if t.Broadcast {
		keys = append(keys, KeyBroadcast)
	}
	return keys
}
