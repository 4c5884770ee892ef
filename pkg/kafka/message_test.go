package kafka

import "testing"

func TestMessageBuilder_BackfillsEventIDAndTimestamp(t *testing.T) {
	msg := NewMessage().
		WithKey("booking-1").
		WithRawValue([]byte(`{"booking_id":"booking-1"}`)).
		Build()

	if msg.Headers[HeaderEventID] == "" {
		t.Error("expected Build to generate an event ID")
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("expected Build to stamp a timestamp header")
	}
}

func TestMessageBuilder_KeepsExplicitEventID(t *testing.T) {
	msg := NewMessage().
		WithKey("booking-1").
		WithEventID("evt-42").
		WithEventType("booking.created").
		WithSource("bookings").
		Build()

	if got := msg.GetEventID(); got != "evt-42" {
		t.Errorf("event ID = %q, want evt-42", got)
	}
	if got := msg.GetEventType(); got != "booking.created" {
		t.Errorf("event type = %q, want booking.created", got)
	}
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}

	if got := msg.GetRetryCount(); got != 0 {
		t.Errorf("initial retry count = %d, want 0", got)
	}

	for i := 1; i <= 12; i++ {
		msg.IncrementRetryCount()
		if got := msg.GetRetryCount(); got != i {
			t.Fatalf("retry count after %d increments = %d", i, got)
		}
	}
}

func TestMessage_RetryCountMalformedHeader(t *testing.T) {
	msg := Message{Headers: map[string]string{HeaderRetryCount: "not-a-number"}}
	if got := msg.GetRetryCount(); got != 0 {
		t.Errorf("retry count = %d, want 0 for malformed header", got)
	}
}
