package availability

import (
	"errors"
	"testing"
	"time"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/pkg/model"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func booking(roomID, status string, checkIn, checkOut time.Time) *model.Booking {
	return &model.Booking{
		RoomID:       roomID,
		Status:       status,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}
}

func TestIsRoomAvailable(t *testing.T) {
	rng := model.NewDateRange(day(10), day(13))

	tests := []struct {
		name     string
		bookings []*model.Booking
		want     bool
	}{
		{
			name:     "no bookings",
			bookings: nil,
			want:     true,
		},
		{
			name: "overlapping pending booking blocks",
			bookings: []*model.Booking{
				booking("room-1", model.StatusPending, day(11), day(14)),
			},
			want: false,
		},
		{
			name: "overlapping confirmed booking blocks",
			bookings: []*model.Booking{
				booking("room-1", model.StatusConfirmed, day(9), day(11)),
			},
			want: false,
		},
		{
			name: "cancelled booking does not block",
			bookings: []*model.Booking{
				booking("room-1", model.StatusCancelled, day(10), day(13)),
			},
			want: true,
		},
		{
			name: "completed booking does not block",
			bookings: []*model.Booking{
				booking("room-1", model.StatusCompleted, day(10), day(13)),
			},
			want: true,
		},
		{
			name: "other room does not block",
			bookings: []*model.Booking{
				booking("room-2", model.StatusConfirmed, day(10), day(13)),
			},
			want: true,
		},
		{
			name: "back-to-back checkout equals checkin is allowed",
			bookings: []*model.Booking{
				booking("room-1", model.StatusConfirmed, day(7), day(10)),
				booking("room-1", model.StatusConfirmed, day(13), day(15)),
			},
			want: true,
		},
		{
			name: "one conflict among many",
			bookings: []*model.Booking{
				booking("room-1", model.StatusCancelled, day(10), day(13)),
				booking("room-2", model.StatusConfirmed, day(10), day(13)),
				booking("room-1", model.StatusPending, day(12), day(16)),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRoomAvailable("room-1", rng, tt.bookings); got != tt.want {
				t.Errorf("IsRoomAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstConflict(t *testing.T) {
	rng := model.NewDateRange(day(10), day(13))

	blocker := booking("room-1", model.StatusConfirmed, day(12), day(14))
	bookings := []*model.Booking{
		booking("room-1", model.StatusCancelled, day(10), day(13)),
		booking("room-2", model.StatusConfirmed, day(10), day(13)),
		blocker,
	}

	if got := FirstConflict("room-1", rng, bookings); got != blocker {
		t.Errorf("FirstConflict() = %v, want the confirmed overlapping booking", got)
	}

	if got := FirstConflict("room-3", rng, bookings); got != nil {
		t.Errorf("FirstConflict() for free room = %v, want nil", got)
	}
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		rng     model.DateRange
		want    float64
		wantErr error
	}{
		{
			name: "three nights at 100",
			rate: 100,
			rng:  model.NewDateRange(day(10), day(13)),
			want: 300,
		},
		{
			name: "zero rate is free",
			rate: 0,
			rng:  model.NewDateRange(day(10), day(12)),
			want: 0,
		},
		{
			name: "partial night rounds up",
			rate: 80,
			rng: model.NewDateRange(
				time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 11, 11, 0, 0, 0, time.UTC),
			),
			want: 80,
		},
		{
			name:    "negative rate rejected",
			rate:    -1,
			rng:     model.NewDateRange(day(10), day(13)),
			wantErr: bookingserrors.ErrInvalidRate,
		},
		{
			name:    "inverted range rejected",
			rate:    100,
			rng:     model.NewDateRange(day(13), day(10)),
			wantErr: bookingserrors.ErrInvalidRange,
		},
		{
			name:    "zero length range rejected",
			rate:    100,
			rng:     model.NewDateRange(day(10), day(10)),
			wantErr: bookingserrors.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalPrice(tt.rate, tt.rng)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("TotalPrice() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("TotalPrice() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TotalPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}
