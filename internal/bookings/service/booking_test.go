package service

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingsrepository "hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/bookings/validator"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/events"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	mongotx "hotelbooking/pkg/db/mongo"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testUserID  = "507f1f77bcf86cd799439011"
	testRoomID  = "507f1f77bcf86cd799439012"
	testHotelID = "507f1f77bcf86cd799439013"
	otherUserID = "507f1f77bcf86cd799439014"
)

func testDay(d int) time.Time {
	return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:  "error",
			Format: logger.JSON,
		}),
		RoomLockTTL: 10 * time.Second,
	}
}

func validBooking() *model.Booking {
	return &model.Booking{
		UserID:        testUserID,
		RoomID:        testRoomID,
		CheckInDate:   testDay(10),
		CheckOutDate:  testDay(13),
		Guests:        2,
		PaymentMethod: model.PaymentAtHotel,
	}
}

func availableRoom() *model.Room {
	return &model.Room{
		ID:            testRoomID,
		HotelID:       testHotelID,
		RoomType:      model.RoomDoubleBed,
		PricePerNight: 100,
		Capacity:      4,
		IsAvailable:   true,
	}
}

// --- Mocks ---

type mockBookingRepo struct {
	createFn           func(ctx context.Context, b *model.Booking) error
	findByIDFn         func(ctx context.Context, id string) (*model.Booking, error)
	findActiveByRoomFn func(ctx context.Context, roomID string, rng *model.DateRange) ([]*model.Booking, error)
	updateFn           func(ctx context.Context, id string, b *model.Booking) (*mongo.UpdateResult, error)
	countFn            func() (int64, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, b)
	}
	b.ID = "507f1f77bcf86cd799439099"
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindByHotel(ctx context.Context, hotelID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindActiveByRoom(ctx context.Context, roomID string, rng *model.DateRange) ([]*model.Booking, error) {
	if m.findActiveByRoomFn != nil {
		return m.findActiveByRoomFn(ctx, roomID, rng)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindActiveByHotel(ctx context.Context, hotelID string, rng *model.DateRange) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) Update(ctx context.Context, id string, b *model.Booking) (*mongo.UpdateResult, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, b)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockBookingRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

func (m *mockBookingRepo) CountByHotel(ctx context.Context, hotelID string) (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

func (m *mockBookingRepo) CountByHotelAndStatus(ctx context.Context, hotelID string, status string) (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

func (m *mockBookingRepo) CountByUserAndStatus(ctx context.Context, userID string, status string) (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

func (m *mockBookingRepo) CountUpcomingByUser(ctx context.Context, userID string, from time.Time) (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

// memLockRepo honors the unique _id semantics of the real lock collection.
type memLockRepo struct {
	mu    sync.Mutex
	locks map[string]bool
}

func newMemLockRepo() *memLockRepo {
	return &memLockRepo{locks: make(map[string]bool)}
}

func (m *memLockRepo) Create(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[lock.ID] {
		return nil, mongo.CommandError{Code: 11000, Message: "duplicate key"}
	}
	m.locks[lock.ID] = true
	return lock, nil
}

func (m *memLockRepo) Delete(ctx context.Context, lockID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, lockID)
	return nil
}

type mockRoomRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Room, error)
}

func (m *mockRoomRepo) Create(ctx context.Context, room *model.Room) error { return nil }

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return availableRoom(), nil
}

func (m *mockRoomRepo) FindAll(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) FindByHotel(ctx context.Context, hotelID string) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) Count(ctx context.Context, filter model.RoomFilter) (int64, error) {
	return 0, nil
}

func (m *mockRoomRepo) Update(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockRoomRepo) Delete(ctx context.Context, id string) error { return nil }

func newTestService(repo bookingsrepository.BookingRepository, lockRepo bookingsrepository.RoomLockRepository, roomRepo *mockRoomRepo) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, lockRepo, roomRepo, validator.NewBookingValidator(cfg.Log), cfg)
}

// --- Tests ---

func TestCreate_Success(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

	booking := validBooking()
	evs, err := svc.Create(context.Background(), booking)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if booking.Status != model.StatusPending {
		t.Errorf("status = %q, want %q", booking.Status, model.StatusPending)
	}
	if booking.TotalPrice != 300 {
		t.Errorf("total price = %v, want 300 (3 nights at 100)", booking.TotalPrice)
	}
	if booking.HotelID != testHotelID {
		t.Errorf("hotel ID = %q, want %q", booking.HotelID, testHotelID)
	}

	if len(evs) != 3 {
		t.Fatalf("events = %d, want 3 (hotel, user, broadcast)", len(evs))
	}
	if evs[0].Type != events.TypeBookingCreated || evs[0].Targets.HotelID != testHotelID {
		t.Errorf("first event should target the hotel, got %+v", evs[0])
	}
	if evs[1].Targets.UserID != testUserID {
		t.Errorf("second event should target the user, got %+v", evs[1])
	}
	if !evs[2].Targets.Broadcast {
		t.Errorf("third event should be the broadcast update, got %+v", evs[2])
	}
}

func TestCreate_DateConflict(t *testing.T) {
	existing := validBooking()
	existing.ID = "507f1f77bcf86cd799439055"
	existing.Status = model.StatusConfirmed
	existing.CheckInDate = testDay(11)
	existing.CheckOutDate = testDay(14)

	repo := &mockBookingRepo{
		findActiveByRoomFn: func(ctx context.Context, roomID string, rng *model.DateRange) ([]*model.Booking, error) {
			return []*model.Booking{existing}, nil
		},
	}
	svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

	_, err := svc.Create(context.Background(), validBooking())
	assertAppErrorCode(t, err, apperrors.CodeDateConflict)
}

func TestCreate_BackToBackAllowed(t *testing.T) {
	existing := validBooking()
	existing.ID = "507f1f77bcf86cd799439055"
	existing.Status = model.StatusConfirmed
	existing.CheckInDate = testDay(7)
	existing.CheckOutDate = testDay(10)

	repo := &mockBookingRepo{
		findActiveByRoomFn: func(ctx context.Context, roomID string, rng *model.DateRange) ([]*model.Booking, error) {
			return []*model.Booking{existing}, nil
		},
	}
	svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

	if _, err := svc.Create(context.Background(), validBooking()); err != nil {
		t.Fatalf("back-to-back booking should be allowed, got: %v", err)
	}
}

func TestCreate_InvalidRange(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, newMemLockRepo(), &mockRoomRepo{})

	booking := validBooking()
	booking.CheckInDate = testDay(13)
	booking.CheckOutDate = testDay(10)

	_, err := svc.Create(context.Background(), booking)
	assertAppErrorCode(t, err, apperrors.CodeInvalidRange)
}

func TestCreate_RoomDisabled(t *testing.T) {
	roomRepo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Room, error) {
			room := availableRoom()
			room.IsAvailable = false
			return room, nil
		},
	}
	svc := newTestService(&mockBookingRepo{}, newMemLockRepo(), roomRepo)

	_, err := svc.Create(context.Background(), validBooking())
	assertAppErrorCode(t, err, apperrors.CodeRoomUnavailable)
}

func TestCreate_GuestsExceedCapacity(t *testing.T) {
	roomRepo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Room, error) {
			room := availableRoom()
			room.Capacity = 1
			return room, nil
		},
	}
	svc := newTestService(&mockBookingRepo{}, newMemLockRepo(), roomRepo)

	booking := validBooking()
	booking.Guests = 3

	_, err := svc.Create(context.Background(), booking)
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestCreate_ZeroGuestsRejected(t *testing.T) {
	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, b *model.Booking) error {
			t.Error("booking with zero guests must not be persisted")
			return nil
		},
	}
	svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

	booking := validBooking()
	booking.Guests = 0

	_, err := svc.Create(context.Background(), booking)
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

// ctxRecordingLockRepo captures the context state seen at release time.
type ctxRecordingLockRepo struct {
	memLockRepo
	deleteCalled bool
	deleteCtxErr error
}

func (m *ctxRecordingLockRepo) Delete(ctx context.Context, lockID string) error {
	m.deleteCalled = true
	m.deleteCtxErr = ctx.Err()
	return m.memLockRepo.Delete(ctx, lockID)
}

func TestCreate_LockReleasedAfterContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, b *model.Booking) error {
			// Client goes away mid-write.
			cancel()
			return context.Canceled
		},
	}
	lockRepo := &ctxRecordingLockRepo{memLockRepo: memLockRepo{locks: make(map[string]bool)}}
	svc := newTestService(repo, lockRepo, &mockRoomRepo{})

	if _, err := svc.Create(ctx, validBooking()); err == nil {
		t.Fatal("expected create to fail")
	}

	if !lockRepo.deleteCalled {
		t.Fatal("lock was never released")
	}
	if lockRepo.deleteCtxErr != nil {
		t.Errorf("release ran on a dead context: %v", lockRepo.deleteCtxErr)
	}
	if len(lockRepo.locks) != 0 {
		t.Errorf("locks remaining = %d, want 0", len(lockRepo.locks))
	}
}

func TestCreate_ConcurrentRequestsOneWinner(t *testing.T) {
	const workers = 8

	var mu sync.Mutex
	var stored []*model.Booking

	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, b *model.Booking) error {
			mu.Lock()
			defer mu.Unlock()
			b.ID = "507f1f77bcf86cd799439099"
			copied := *b
			stored = append(stored, &copied)
			return nil
		},
		findActiveByRoomFn: func(ctx context.Context, roomID string, rng *model.DateRange) ([]*model.Booking, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]*model.Booking(nil), stored...), nil
		},
	}
	svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Create(context.Background(), validBooking())
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case apperrors.AsAppError(err).Code == apperrors.CodeDateConflict:
			conflicts++
		default:
			t.Errorf("unexpected error kind: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if conflicts != workers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, workers-1)
	}
	if len(stored) != 1 {
		t.Errorf("persisted bookings = %d, want 1", len(stored))
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantCode string
	}{
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, ""},
		{"pending to cancelled", model.StatusPending, model.StatusCancelled, ""},
		{"confirmed to completed", model.StatusConfirmed, model.StatusCompleted, ""},
		{"confirmed to pending rejected", model.StatusConfirmed, model.StatusPending, apperrors.CodeInvalidTransition},
		{"cancelled is terminal", model.StatusCancelled, model.StatusConfirmed, apperrors.CodeInvalidTransition},
		{"completed is terminal", model.StatusCompleted, model.StatusCancelled, apperrors.CodeInvalidTransition},
		{"unknown status rejected", model.StatusPending, "paused", apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := validBooking()
			existing.ID = "507f1f77bcf86cd799439099"
			existing.HotelID = testHotelID
			existing.Status = tt.from

			repo := &mockBookingRepo{
				findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
					return existing, nil
				},
			}
			svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

			updated, evs, err := svc.UpdateStatus(context.Background(), existing.ID, tt.to, model.CancelledByAdmin)
			if tt.wantCode != "" {
				assertAppErrorCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus() unexpected error: %v", err)
			}
			if updated.Status != tt.to {
				t.Errorf("status = %q, want %q", updated.Status, tt.to)
			}
			if len(evs) != 3 {
				t.Errorf("events = %d, want 3", len(evs))
			}
			if evs[0].PreviousStatus != tt.from {
				t.Errorf("previous status = %q, want %q", evs[0].PreviousStatus, tt.from)
			}
		})
	}
}

func TestUpdateStatus_CancelledByHotelStampsMetadata(t *testing.T) {
	tests := []struct {
		name            string
		actorRole       string
		wantCancelledBy string
	}{
		{"hotel role", model.CancelledByHotel, model.CancelledByHotel},
		{"admin role", model.CancelledByAdmin, model.CancelledByAdmin},
		{"non-admin staff role acts for the hotel", "hotelOwner", model.CancelledByHotel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := validBooking()
			existing.ID = "507f1f77bcf86cd799439099"
			existing.Status = model.StatusConfirmed

			repo := &mockBookingRepo{
				findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
					return existing, nil
				},
			}
			svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

			updated, _, err := svc.UpdateStatus(context.Background(), existing.ID, model.StatusCancelled, tt.actorRole)
			if err != nil {
				t.Fatalf("UpdateStatus() unexpected error: %v", err)
			}
			if updated.CancelledBy != tt.wantCancelledBy {
				t.Errorf("cancelled_by = %q, want %q", updated.CancelledBy, tt.wantCancelledBy)
			}
			if updated.CancelledAt == nil {
				t.Error("cancelled_at not stamped")
			}
		})
	}
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		requester string
		wantCode  string
	}{
		{"owner cancels pending", model.StatusPending, testUserID, ""},
		{"owner cancels confirmed", model.StatusConfirmed, testUserID, ""},
		{"non-owner forbidden", model.StatusPending, otherUserID, apperrors.CodeForbidden},
		{"completed is terminal", model.StatusCompleted, testUserID, apperrors.CodeInvalidTransition},
		{"already cancelled", model.StatusCancelled, testUserID, apperrors.CodeInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := validBooking()
			existing.ID = "507f1f77bcf86cd799439099"
			existing.Status = tt.status

			repo := &mockBookingRepo{
				findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
					return existing, nil
				},
			}
			svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

			cancelled, evs, err := svc.Cancel(context.Background(), existing.ID, tt.requester, "  change of plans  ")
			if tt.wantCode != "" {
				assertAppErrorCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("Cancel() unexpected error: %v", err)
			}
			if cancelled.Status != model.StatusCancelled {
				t.Errorf("status = %q, want cancelled", cancelled.Status)
			}
			if cancelled.CancelledBy != model.CancelledByUser {
				t.Errorf("cancelled_by = %q, want user", cancelled.CancelledBy)
			}
			if cancelled.CancellationReason != "change of plans" {
				t.Errorf("reason = %q, want normalized text", cancelled.CancellationReason)
			}
			if len(evs) != 3 || evs[0].Type != events.TypeBookingCancelled {
				t.Errorf("expected cancellation events, got %+v", evs)
			}
		})
	}
}

func TestHotelStats(t *testing.T) {
	repo := &mockBookingRepo{
		countFn: func() (int64, error) { return 2, nil },
	}
	svc := newTestService(repo, newMemLockRepo(), &mockRoomRepo{})

	stats, err := svc.HotelStats(context.Background(), testHotelID)
	if err != nil {
		t.Fatalf("HotelStats() unexpected error: %v", err)
	}
	if stats.Total != 2 || stats.Pending != 2 || stats.Completed != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func assertAppErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", wantCode)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != wantCode {
		t.Fatalf("error code = %s, want %s (error: %v)", appErr.Code, wantCode, err)
	}
}
