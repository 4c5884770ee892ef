package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotelbooking/internal/bookings/availability"
	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/bookings/validator"
	roomserrors "hotelbooking/internal/rooms/errors"
	roomsrepository "hotelbooking/internal/rooms/repository"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/events"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// HotelStats aggregates booking counts for a hotel dashboard.
type HotelStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

// UserStats aggregates booking counts for a user profile.
type UserStats struct {
	Total     int64 `json:"total"`
	Upcoming  int64 `json:"upcoming"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

// BookingService owns the booking lifecycle. Mutating operations return the
// domain events describing what happened; they are emitted only after the
// persistence commit succeeded, and the caller decides how to forward them.
type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) ([]events.Event, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByHotel(ctx context.Context, hotelID string, limit int, offset int64) ([]*model.Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, newStatus string, actorRole string) (*model.Booking, []events.Event, error)
	Cancel(ctx context.Context, id string, requesterID string, reason string) (*model.Booking, []events.Event, error)
	HotelStats(ctx context.Context, hotelID string) (*HotelStats, error)
	UserStats(ctx context.Context, userID string) (*UserStats, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.RoomLockRepository
	roomRepo  roomsrepository.RoomRepository
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.RoomLockRepository,
	roomRepo roomsrepository.RoomRepository,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		roomRepo:  roomRepo,
		validator: validator,
		cfg:       cfg,
	}
}

// Create books a room for the requested dates. The availability check and the
// insert run inside a transaction guarded by a per-room advisory lock, so two
// concurrent requests for overlapping dates cannot both succeed: the loser
// gets a date conflict.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) ([]events.Event, error) {
	s.applyDefaults(booking)
	s.sanitize(booking)

	rng := booking.Range()
	if !rng.IsValid() {
		return nil, apperrors.InvalidRange("check_in_date must be strictly before check_out_date")
	}

	room, err := s.roomRepo.FindByID(ctx, booking.RoomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", booking.RoomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Persistence("Failed to retrieve room", err)
	}

	if !room.IsAvailable {
		return nil, apperrors.RoomUnavailable(room.ID)
	}
	booking.HotelID = room.HotelID

	if err := s.validate(booking); err != nil {
		return nil, err
	}
	if booking.Guests > room.Capacity {
		return nil, apperrors.Validation("Guest count exceeds room capacity", map[string]any{
			"guests":   booking.Guests,
			"capacity": room.Capacity,
		})
	}

	total, err := availability.TotalPrice(room.PricePerNight, rng)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidRate) {
			return nil, apperrors.InvalidRate("Room has an invalid nightly rate")
		}
		return nil, apperrors.InvalidRange("check_in_date must be strictly before check_out_date")
	}
	booking.TotalPrice = total

	// Serialize check-then-insert per room so two overlapping requests
	// cannot interleave between the availability read and the write.
	lockID, err := s.acquireRoomLock(ctx, booking.RoomID)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Release outlives the request context; an abandoned lock would
		// otherwise block the room until the TTL reaper fires.
		if releaseErr := s.releaseRoomLock(context.WithoutCancel(ctx), lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindActiveByRoom(sessCtx, booking.RoomID, &rng)
		if err != nil {
			return apperrors.Persistence("Failed to check existing bookings", err)
		}

		if conflict := availability.FirstConflict(booking.RoomID, rng, existing); conflict != nil {
			return apperrors.DateConflict(fmt.Sprintf(
				"Room is already booked from %s to %s",
				conflict.CheckInDate.Format("2006-01-02"),
				conflict.CheckOutDate.Format("2006-01-02"),
			))
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return apperrors.DateConflict("Room was booked by a concurrent request")
			}
			return apperrors.Persistence("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"room_id", booking.RoomID,
			"user_id", booking.UserID,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"hotel_id", booking.HotelID,
		"check_in", booking.CheckInDate,
		"check_out", booking.CheckOutDate,
		"total_price", booking.TotalPrice,
	)

	return events.BookingCreated(booking, room.RoomType, time.Now().UTC()), nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id)
	}

	return booking, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings by user", "user_id", userID, "error", errCount)
			errCount = apperrors.Persistence("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings by user", "user_id", userID, "error", errFind)
			errFind = apperrors.Persistence("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetByHotel(ctx context.Context, hotelID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if hotelID == "" {
		return nil, 0, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByHotel(ctx, hotelID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings by hotel", "hotel_id", hotelID, "error", errCount)
			errCount = apperrors.Persistence("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByHotel(ctx, hotelID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings by hotel", "hotel_id", hotelID, "error", errFind)
			errFind = apperrors.Persistence("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// UpdateStatus moves a booking through the state machine on behalf of hotel
// staff or an administrator. Transitions out of a terminal status are
// rejected.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, newStatus string, actorRole string) (*model.Booking, []events.Event, error) {
	if id == "" {
		return nil, nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if !isKnownStatus(newStatus) {
		return nil, nil, apperrors.InvalidInput(fmt.Sprintf("Unknown booking status: %s", newStatus))
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, s.translateLookupError(err, id)
	}

	if !model.CanTransition(booking.Status, newStatus) {
		return nil, nil, apperrors.InvalidTransition(booking.Status, newStatus)
	}

	previous := booking.Status
	now := time.Now().UTC()

	booking.Status = newStatus
	booking.UpdatedAt = now
	if newStatus == model.StatusCancelled {
		booking.CancelledAt = &now
		booking.CancelledBy = cancelledByRole(actorRole)
	}

	if _, err := s.repo.Update(ctx, id, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, nil, apperrors.Persistence("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"from", previous,
		"to", newStatus,
		"actor_role", actorRole,
	)

	return booking, events.BookingStatusChanged(booking, previous, now), nil
}

// Cancel is the user-facing cancellation: only the booking owner may cancel,
// and only while the booking is still active.
func (s *bookingService) Cancel(ctx context.Context, id string, requesterID string, reason string) (*model.Booking, []events.Event, error) {
	if id == "" {
		return nil, nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if requesterID == "" {
		return nil, nil, apperrors.Unauthorized("Missing requester identity")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, s.translateLookupError(err, id)
	}

	if booking.UserID != requesterID {
		return nil, nil, apperrors.Forbidden("Not authorized to cancel this booking")
	}
	if booking.IsTerminal() {
		return nil, nil, apperrors.InvalidTransition(booking.Status, model.StatusCancelled)
	}

	previous := booking.Status
	now := time.Now().UTC()

	booking.Status = model.StatusCancelled
	booking.CancellationReason = sanitizer.TrimAndNormalize(reason)
	booking.CancelledAt = &now
	booking.CancelledBy = model.CancelledByUser
	booking.UpdatedAt = now

	if _, err := s.repo.Update(ctx, id, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return nil, nil, apperrors.Persistence("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "id", id, "user_id", requesterID)

	return booking, events.BookingCancelled(booking, previous, now), nil
}

func (s *bookingService) HotelStats(ctx context.Context, hotelID string) (*HotelStats, error) {
	if hotelID == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	stats := &HotelStats{}
	counts := []struct {
		dst    *int64
		status string
	}{
		{&stats.Pending, model.StatusPending},
		{&stats.Confirmed, model.StatusConfirmed},
		{&stats.Cancelled, model.StatusCancelled},
		{&stats.Completed, model.StatusCompleted},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(counts)+1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		stats.Total, errs[0] = s.repo.CountByHotel(ctx, hotelID)
	}()

	for i, c := range counts {
		wg.Add(1)
		go func(i int, dst *int64, status string) {
			defer wg.Done()
			*dst, errs[i+1] = s.repo.CountByHotelAndStatus(ctx, hotelID, status)
		}(i, c.dst, c.status)
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			s.cfg.Log.Error("Failed to compute hotel stats", "hotel_id", hotelID, "error", err)
			return nil, apperrors.Persistence("Failed to compute booking stats", err)
		}
	}

	return stats, nil
}

func (s *bookingService) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	stats := &UserStats{}
	var wg sync.WaitGroup
	errs := make([]error, 4)

	wg.Add(4)
	go func() {
		defer wg.Done()
		stats.Total, errs[0] = s.repo.CountByUser(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		stats.Upcoming, errs[1] = s.repo.CountUpcomingByUser(ctx, userID, time.Now().UTC())
	}()
	go func() {
		defer wg.Done()
		stats.Cancelled, errs[2] = s.repo.CountByUserAndStatus(ctx, userID, model.StatusCancelled)
	}()
	go func() {
		defer wg.Done()
		stats.Completed, errs[3] = s.repo.CountByUserAndStatus(ctx, userID, model.StatusCompleted)
	}()

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			s.cfg.Log.Error("Failed to compute user stats", "user_id", userID, "error", err)
			return nil, apperrors.Persistence("Failed to compute booking stats", err)
		}
	}

	return stats, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.SpecialRequests = sanitizer.TrimAndNormalize(b.SpecialRequests)
	b.CancellationReason = sanitizer.TrimAndNormalize(b.CancellationReason)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) translateLookupError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Persistence("Failed to retrieve booking", err)
}

func isKnownStatus(status string) bool {
	switch status {
	case model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted:
		return true
	}
	return false
}

// Only a literal admin role stamps admin; any other staff role acts
// on behalf of the hotel.
func cancelledByRole(actorRole string) string {
	if actorRole == model.CancelledByAdmin {
		return model.CancelledByAdmin
	}
	return model.CancelledByHotel
}

// acquireRoomLock creates the per-room advisory lock. A duplicate key error
// means another request holds the room, which surfaces as a date conflict.
func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID := fmt.Sprintf("room_lock_%s", roomID)

	lock := &model.RoomLock{
		ID:        lockID,
		RoomID:    roomID,
		ExpiresAt: time.Now().Add(s.cfg.RoomLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.DateConflict("This room is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Persistence("Failed to acquire room lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseRoomLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
