package service

import (
	"context"
	"errors"
	"sync"

	"hotelbooking/internal/bookings/availability"
	bookingsrepository "hotelbooking/internal/bookings/repository"
	roomserrors "hotelbooking/internal/rooms/errors"
	"hotelbooking/internal/rooms/repository"
	"hotelbooking/internal/rooms/validator"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
)

// RoomAvailability answers whether one room is free over a range. It is a
// read-only projection and never touches the room's administrative flag.
type RoomAvailability struct {
	RoomID    string          `json:"room_id"`
	Range     model.DateRange `json:"range"`
	Available bool            `json:"available"`
}

type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetAll(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, int64, error)
	Update(ctx context.Context, id string, updates *model.RoomUpdate) error
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, roomID string, rng model.DateRange) (*RoomAvailability, error)
}

type roomService struct {
	repo        repository.RoomRepository
	bookingRepo bookingsrepository.BookingRepository
	validator   *validator.RoomValidator
	cfg         *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	bookingRepo bookingsrepository.BookingRepository,
	validator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:        repo,
		bookingRepo: bookingRepo,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	s.sanitize(room)
	room.IsAvailable = true

	if err := s.validate(room); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateRoomNumber) {
			return apperrors.Conflict("Room number already exists for this hotel")
		}
		s.cfg.Log.Error("Failed to create room", "hotel_id", room.HotelID, "error", err)
		return apperrors.Persistence("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully", "id", room.ID, "hotel_id", room.HotelID, "room_number", room.RoomNumber)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id)
	}

	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, int64, error) {
	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Persistence("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Persistence("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

func (s *roomService) Update(ctx context.Context, id string, updates *model.RoomUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateLookupError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Room update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeRoomUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrDuplicateRoomNumber) {
			return apperrors.Conflict("Room number already exists for this hotel")
		}
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return apperrors.Persistence("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated successfully", "id", id)
	return nil
}

func (s *roomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid room ID format")
		}
		return apperrors.Persistence("Failed to delete room", err)
	}

	s.cfg.Log.Info("Room deleted successfully", "id", id)
	return nil
}

// Availability checks whether the room can be booked for the range. A room
// disabled by its administrative flag is never available.
func (s *roomService) Availability(ctx context.Context, roomID string, rng model.DateRange) (*RoomAvailability, error) {
	if roomID == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}
	if !rng.IsValid() {
		return nil, apperrors.InvalidRange("check_in must be strictly before check_out")
	}

	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return nil, s.translateLookupError(err, roomID)
	}

	view := &RoomAvailability{RoomID: roomID, Range: rng}
	if !room.IsAvailable {
		return view, nil
	}

	active, err := s.bookingRepo.FindActiveByRoom(ctx, roomID, &rng)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch active bookings", "room_id", roomID, "error", err)
		return nil, apperrors.Persistence("Failed to retrieve bookings", err)
	}

	view.Available = availability.IsRoomAvailable(roomID, rng, active)
	return view, nil
}

// --- Helpers ---

func (s *roomService) sanitize(r *model.Room) {
	r.Description = sanitizer.TrimAndNormalize(r.Description)
	r.RoomNumber = sanitizer.TrimAndNormalize(r.RoomNumber)
	r.Amenities = sanitizer.NormalizeAmenities(r.Amenities)
	r.Images = sanitizer.NormalizeImages(r.Images)
}

func (s *roomService) validate(room *model.Room) error {
	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *roomService) mergeRoomUpdates(existing *model.Room, updates *model.RoomUpdate) *model.Room {
	merged := *existing

	if updates.RoomType != "" {
		merged.RoomType = updates.RoomType
	}
	if updates.RoomNumber != "" {
		merged.RoomNumber = updates.RoomNumber
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.PricePerNight != nil {
		merged.PricePerNight = *updates.PricePerNight
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Amenities != nil {
		merged.Amenities = *updates.Amenities
	}
	if updates.Images != nil {
		merged.Images = *updates.Images
	}
	if updates.IsAvailable != nil {
		merged.IsAvailable = *updates.IsAvailable
	}
	if updates.Size != nil {
		merged.Size = *updates.Size
	}
	if updates.Floor != nil {
		merged.Floor = *updates.Floor
	}

	return &merged
}

func (s *roomService) translateLookupError(err error, id string) error {
	if errors.Is(err, roomserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Room", id)
	}
	if errors.Is(err, roomserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid room ID format")
	}
	return apperrors.Persistence("Failed to retrieve room", err)
}
