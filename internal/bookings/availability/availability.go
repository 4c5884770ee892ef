// Package availability holds the pure booking-core calculations: room
// availability over a date range and total stay pricing. Nothing here touches
// storage; callers supply the candidate bookings.
package availability

import (
	"fmt"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/pkg/model"
)

// IsRoomAvailable reports whether the room is free for the requested range.
// Only pending and confirmed bookings block dates; cancelled and completed
// bookings never do. Ranges are half-open, so a stay ending on a given day
// does not conflict with one starting that day.
func IsRoomAvailable(roomID string, rng model.DateRange, bookings []*model.Booking) bool {
	for _, b := range bookings {
		if b.RoomID != roomID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Range().Overlaps(rng) {
			return false
		}
	}
	return true
}

// FirstConflict returns the first active booking overlapping the range, or
// nil when the room is free. Used to report which stay blocks a request.
func FirstConflict(roomID string, rng model.DateRange, bookings []*model.Booking) *model.Booking {
	for _, b := range bookings {
		if b.RoomID != roomID || !b.IsActive() {
			continue
		}
		if b.Range().Overlaps(rng) {
			return b
		}
	}
	return nil
}

// TotalPrice computes nightlyRate times the number of nights in the range.
// Partial nights round up.
func TotalPrice(nightlyRate float64, rng model.DateRange) (float64, error) {
	if nightlyRate < 0 {
		return 0, fmt.Errorf("%w: %f", bookingserrors.ErrInvalidRate, nightlyRate)
	}

	nights := rng.Nights()
	if nights <= 0 {
		return 0, bookingserrors.ErrInvalidRange
	}

	return nightlyRate * float64(nights), nil
}
