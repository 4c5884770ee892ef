package service

import (
	"context"
	"testing"
	"time"

	"hotelbooking/internal/hotels/validator"
	"hotelbooking/pkg/config"
	mongotx "hotelbooking/pkg/db/mongo"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const testHotelID = "507f1f77bcf86cd799439013"

func day(d int) time.Time {
	return time.Date(2026, 11, d, 0, 0, 0, 0, time.UTC)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.JSON}),
	}
}

// --- Mocks ---

type mockHotelRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Hotel, error)
	createFn   func(ctx context.Context, h *model.Hotel) error
	updateFn   func(ctx context.Context, id string, h *model.Hotel) (*mongo.UpdateResult, error)
}

func (m *mockHotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	if m.createFn != nil {
		return m.createFn(ctx, h)
	}
	h.ID = testHotelID
	return nil
}

func (m *mockHotelRepo) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &model.Hotel{ID: id, IsActive: true}, nil
}

func (m *mockHotelRepo) FindAll(ctx context.Context, filter model.HotelFilter, limit int, offset int64) ([]*model.Hotel, error) {
	return nil, nil
}

func (m *mockHotelRepo) Count(ctx context.Context, filter model.HotelFilter) (int64, error) {
	return 0, nil
}

func (m *mockHotelRepo) Update(ctx context.Context, id string, h *model.Hotel) (*mongo.UpdateResult, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, h)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockHotelRepo) Delete(ctx context.Context, id string) error { return nil }

type mockRoomRepo struct {
	rooms []*model.Room
}

func (m *mockRoomRepo) Create(ctx context.Context, room *model.Room) error { return nil }

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) FindAll(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) FindByHotel(ctx context.Context, hotelID string) ([]*model.Room, error) {
	return m.rooms, nil
}

func (m *mockRoomRepo) Count(ctx context.Context, filter model.RoomFilter) (int64, error) {
	return int64(len(m.rooms)), nil
}

func (m *mockRoomRepo) Update(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockRoomRepo) Delete(ctx context.Context, id string) error { return nil }

type mockBookingRepo struct {
	active []*model.Booking
}

func (m *mockBookingRepo) Create(ctx context.Context, b *model.Booking) error { return nil }

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindByHotel(ctx context.Context, hotelID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindActiveByRoom(ctx context.Context, roomID string, rng *model.DateRange) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindActiveByHotel(ctx context.Context, hotelID string, rng *model.DateRange) ([]*model.Booking, error) {
	return m.active, nil
}

func (m *mockBookingRepo) Update(ctx context.Context, id string, b *model.Booking) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockBookingRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) CountByHotel(ctx context.Context, hotelID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) CountByHotelAndStatus(ctx context.Context, hotelID string, status string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) CountByUserAndStatus(ctx context.Context, userID string, status string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) CountUpcomingByUser(ctx context.Context, userID string, from time.Time) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(hotelRepo *mockHotelRepo, roomRepo *mockRoomRepo, bookingRepo *mockBookingRepo) HotelService {
	cfg := testConfig()
	return NewHotelService(hotelRepo, roomRepo, bookingRepo, validator.NewHotelValidator(cfg.Log), cfg)
}

// --- Tests ---

func TestAvailability(t *testing.T) {
	rooms := []*model.Room{
		{ID: "r1", IsAvailable: true},
		{ID: "r2", IsAvailable: true},
		{ID: "r3", IsAvailable: true},
		{ID: "r4", IsAvailable: false},
	}
	active := []*model.Booking{
		{RoomID: "r1", Status: model.StatusConfirmed, CheckInDate: day(10), CheckOutDate: day(12)},
	}

	svc := newTestService(&mockHotelRepo{}, &mockRoomRepo{rooms: rooms}, &mockBookingRepo{active: active})

	rng := model.NewDateRange(day(10), day(13))
	view, err := svc.Availability(context.Background(), testHotelID, &rng)
	if err != nil {
		t.Fatalf("Availability() unexpected error: %v", err)
	}

	if view.TotalRooms != 4 {
		t.Errorf("total rooms = %d, want 4", view.TotalRooms)
	}
	if view.AvailableRooms != 2 {
		t.Errorf("available rooms = %d, want 2 (one disabled, one booked)", view.AvailableRooms)
	}
	if view.OccupancyRate != 50 {
		t.Errorf("occupancy rate = %d, want 50", view.OccupancyRate)
	}
}

func TestAvailability_NoRooms(t *testing.T) {
	svc := newTestService(&mockHotelRepo{}, &mockRoomRepo{}, &mockBookingRepo{})

	view, err := svc.Availability(context.Background(), testHotelID, nil)
	if err != nil {
		t.Fatalf("Availability() unexpected error: %v", err)
	}
	if view.OccupancyRate != 0 {
		t.Errorf("occupancy rate for zero rooms = %d, want 0", view.OccupancyRate)
	}
}

func TestAvailability_InvalidRange(t *testing.T) {
	svc := newTestService(&mockHotelRepo{}, &mockRoomRepo{}, &mockBookingRepo{})

	rng := model.NewDateRange(day(13), day(10))
	_, err := svc.Availability(context.Background(), testHotelID, &rng)
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidRange {
		t.Errorf("error code = %s, want %s", appErr.Code, apperrors.CodeInvalidRange)
	}
}

func TestCreate_SanitizesFields(t *testing.T) {
	var created *model.Hotel
	repo := &mockHotelRepo{
		createFn: func(ctx context.Context, h *model.Hotel) error {
			h.ID = testHotelID
			created = h
			return nil
		},
	}
	svc := newTestService(repo, &mockRoomRepo{}, &mockBookingRepo{})

	hotel := &model.Hotel{
		Name:        "  Grand   Hotel ",
		Description: "A fine place to stay",
		Address:     "1 Seaside Blvd",
		City:        " Haifa ",
		State:       "North",
		Country:     "Israel",
		Contact:     "+97241234567",
		Amenities:   []string{"WiFi", "wifi", "Pool"},
		OwnerID:     "507f1f77bcf86cd799439011",
	}

	if err := svc.Create(context.Background(), hotel); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if created.Name != "Grand Hotel" {
		t.Errorf("name = %q, want normalized", created.Name)
	}
	if created.City != "Haifa" {
		t.Errorf("city = %q, want trimmed", created.City)
	}
	if len(created.Amenities) != 2 {
		t.Errorf("amenities = %v, want deduped to 2", created.Amenities)
	}
	if !created.IsActive {
		t.Error("new hotel should be active")
	}
}
