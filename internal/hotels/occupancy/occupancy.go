// Package occupancy computes hotel-level availability summaries. It is a
// pure projection over fetched rooms and bookings and never mutates either.
package occupancy

import (
	"math"

	"hotelbooking/internal/bookings/availability"
	"hotelbooking/pkg/model"
)

// Summary counts a hotel's rooms and how many are bookable.
type Summary struct {
	TotalRooms     int `json:"total_rooms"`
	AvailableRooms int `json:"available_rooms"`
}

// Compute counts available rooms. A room counts as available when its
// administrative flag is on and, if a range is given, no active booking
// overlaps it. activeByRoom maps room ID to that room's active bookings.
func Compute(rooms []*model.Room, activeByRoom map[string][]*model.Booking, rng *model.DateRange) Summary {
	summary := Summary{TotalRooms: len(rooms)}

	for _, room := range rooms {
		if !room.IsAvailable {
			continue
		}
		if rng != nil && !availability.IsRoomAvailable(room.ID, *rng, activeByRoom[room.ID]) {
			continue
		}
		summary.AvailableRooms++
	}

	return summary
}

// OccupancyRate is the percentage of occupied rooms, rounded to the nearest
// integer. A hotel with no rooms has a rate of zero.
func (s Summary) OccupancyRate() int {
	if s.TotalRooms == 0 {
		return 0
	}
	occupied := s.TotalRooms - s.AvailableRooms
	return int(math.Round(100 * float64(occupied) / float64(s.TotalRooms)))
}

// GroupByRoom indexes bookings by their room ID for Compute.
func GroupByRoom(bookings []*model.Booking) map[string][]*model.Booking {
	grouped := make(map[string][]*model.Booking)
	for _, b := range bookings {
		grouped[b.RoomID] = append(grouped[b.RoomID], b)
	}
	return grouped
}
