package events

import (
	"time"

	"hotelbooking/pkg/model"
)

// Type identifies a booking domain event.
type Type string

const (
	TypeBookingCreated       Type = "booking.created"
	TypeBookingStatusChanged Type = "booking.status_changed"
	TypeBookingCancelled     Type = "booking.cancelled"
	// TypeBookingUpdate is the generic fan-out sent to every subscriber
	// alongside the targeted events.
	TypeBookingUpdate Type = "booking.update"
)

// Targets addresses an event: the hotel's subscribers, the booking user's
// subscribers, or everyone.
type Targets struct {
	HotelID   string `json:"hotel_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Broadcast bool   `json:"broadcast,omitempty"`
}

// Event is the contract between the booking lifecycle service and the
// notification dispatcher. The service never talks to a transport; it
// returns a list of these and the caller forwards them after the
// persistence commit succeeded.
type Event struct {
	Type    Type    `json:"type"`
	Targets Targets `json:"targets"`

	BookingID      string    `json:"booking_id"`
	HotelID        string    `json:"hotel_id"`
	UserID         string    `json:"user_id"`
	RoomType       string    `json:"room_type,omitempty"`
	CheckInDate    time.Time `json:"check_in_date,omitempty"`
	CheckOutDate   time.Time `json:"check_out_date,omitempty"`
	Guests         int       `json:"guests,omitempty"`
	TotalPrice     float64   `json:"total_price,omitempty"`
	Status         string    `json:"status,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Key is the partition key: keyed per booking so events for one booking
// stay ordered.
func (e Event) Key() string {
	return e.BookingID
}

// BookingCreated builds the event set for a new booking: one targeted at
// the hotel's subscribers, one at the booking user, plus the broadcast
// update.
func BookingCreated(b *model.Booking, roomType string, now time.Time) []Event {
	base := Event{
		Type:         TypeBookingCreated,
		BookingID:    b.ID,
		HotelID:      b.HotelID,
		UserID:       b.UserID,
		RoomType:     roomType,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Guests:       b.Guests,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status,
		OccurredAt:   now,
	}

	hotelEvent := base
	hotelEvent.Targets = Targets{HotelID: b.HotelID}

	userEvent := base
	userEvent.Targets = Targets{UserID: b.UserID}

	return []Event{hotelEvent, userEvent, broadcastUpdate(b, now)}
}

// BookingStatusChanged builds the event set for a status transition.
func BookingStatusChanged(b *model.Booking, previousStatus string, now time.Time) []Event {
	base := Event{
		Type:           TypeBookingStatusChanged,
		BookingID:      b.ID,
		HotelID:        b.HotelID,
		UserID:         b.UserID,
		Status:         b.Status,
		PreviousStatus: previousStatus,
		OccurredAt:     now,
	}

	hotelEvent := base
	hotelEvent.Targets = Targets{HotelID: b.HotelID}

	userEvent := base
	userEvent.Targets = Targets{UserID: b.UserID}

	return []Event{hotelEvent, userEvent, broadcastUpdate(b, now)}
}

// BookingCancelled builds the event set for a user-initiated cancellation.
func BookingCancelled(b *model.Booking, previousStatus string, now time.Time) []Event {
	base := Event{
		Type:           TypeBookingCancelled,
		BookingID:      b.ID,
		HotelID:        b.HotelID,
		UserID:         b.UserID,
		Status:         b.Status,
		PreviousStatus: previousStatus,
		Reason:         b.CancellationReason,
		OccurredAt:     now,
	}

	hotelEvent := base
	hotelEvent.Targets = Targets{HotelID: b.HotelID}

	userEvent := base
	userEvent.Targets = Targets{UserID: b.UserID}

	return []Event{hotelEvent, userEvent, broadcastUpdate(b, now)}
}

func broadcastUpdate(b *model.Booking, now time.Time) Event {
	return Event{
		Type:       TypeBookingUpdate,
		Targets:    Targets{Broadcast: true},
		BookingID:  b.ID,
		HotelID:    b.HotelID,
		UserID:     b.UserID,
		Status:     b.Status,
		OccurredAt: now,
	}
}
