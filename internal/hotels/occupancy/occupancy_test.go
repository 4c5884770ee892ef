package occupancy

import (
	"testing"
	"time"

	"hotelbooking/pkg/model"
)

func day(d int) time.Time {
	return time.Date(2026, 11, d, 0, 0, 0, 0, time.UTC)
}

func room(id string, available bool) *model.Room {
	return &model.Room{ID: id, IsAvailable: available}
}

func activeBooking(roomID string, checkIn, checkOut time.Time) *model.Booking {
	return &model.Booking{
		RoomID:       roomID,
		Status:       model.StatusConfirmed,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}
}

func TestCompute(t *testing.T) {
	rng := model.NewDateRange(day(10), day(13))

	rooms := []*model.Room{
		room("r1", true),
		room("r2", true),
		room("r3", true),
		room("r4", true),
		room("r5", true),
		room("r6", true),
		room("r7", true),
		room("r8", false),
		room("r9", false),
		room("r10", false),
	}

	bookings := GroupByRoom([]*model.Booking{
		activeBooking("r1", day(11), day(14)),
		activeBooking("r2", day(9), day(11)),
		{RoomID: "r3", Status: model.StatusCancelled, CheckInDate: day(10), CheckOutDate: day(13)},
	})

	got := Compute(rooms, bookings, &rng)

	if got.TotalRooms != 10 {
		t.Errorf("total rooms = %d, want 10", got.TotalRooms)
	}
	// 3 disabled by flag, 2 blocked by overlapping bookings, cancelled does not block.
	if got.AvailableRooms != 5 {
		t.Errorf("available rooms = %d, want 5", got.AvailableRooms)
	}
	if rate := got.OccupancyRate(); rate != 50 {
		t.Errorf("occupancy rate = %d, want 50", rate)
	}
}

func TestCompute_NoRangeUsesFlagOnly(t *testing.T) {
	rooms := []*model.Room{
		room("r1", true),
		room("r2", false),
	}
	bookings := GroupByRoom([]*model.Booking{
		activeBooking("r1", day(10), day(13)),
	})

	got := Compute(rooms, bookings, nil)
	if got.AvailableRooms != 1 {
		t.Errorf("available rooms without range = %d, want 1 (bookings ignored)", got.AvailableRooms)
	}
}

func TestOccupancyRate_ZeroRooms(t *testing.T) {
	got := Compute(nil, nil, nil)
	if got.TotalRooms != 0 || got.AvailableRooms != 0 {
		t.Fatalf("unexpected summary for no rooms: %+v", got)
	}
	if rate := got.OccupancyRate(); rate != 0 {
		t.Errorf("occupancy rate with zero rooms = %d, want 0", rate)
	}
}

func TestOccupancyRate_Rounding(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    int
	}{
		{"one of three occupied rounds to 33", Summary{TotalRooms: 3, AvailableRooms: 2}, 33},
		{"two of three occupied rounds to 67", Summary{TotalRooms: 3, AvailableRooms: 1}, 67},
		{"fully occupied", Summary{TotalRooms: 4, AvailableRooms: 0}, 100},
		{"fully available", Summary{TotalRooms: 4, AvailableRooms: 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.OccupancyRate(); got != tt.want {
				t.Errorf("OccupancyRate() = %d, want %d", got, tt.want)
			}
		})
	}
}
