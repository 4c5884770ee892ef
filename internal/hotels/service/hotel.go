package service

import (
	"context"
	"errors"
	"sync"

	bookingsrepository "hotelbooking/internal/bookings/repository"
	hotelserrors "hotelbooking/internal/hotels/errors"
	"hotelbooking/internal/hotels/occupancy"
	"hotelbooking/internal/hotels/repository"
	"hotelbooking/internal/hotels/validator"
	roomsrepository "hotelbooking/internal/rooms/repository"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
)

// HotelAvailability is the availability view for one hotel over an optional
// date range. It is computed from fetched rooms and bookings and never
// written back.
type HotelAvailability struct {
	HotelID        string           `json:"hotel_id"`
	Range          *model.DateRange `json:"range,omitempty"`
	TotalRooms     int              `json:"total_rooms"`
	AvailableRooms int              `json:"available_rooms"`
	OccupancyRate  int              `json:"occupancy_rate"`
}

type HotelService interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	GetAll(ctx context.Context, filter model.HotelFilter, limit int, offset int64) ([]*model.Hotel, int64, error)
	Update(ctx context.Context, id string, updates *model.HotelUpdate) error
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, hotelID string, rng *model.DateRange) (*HotelAvailability, error)
}

type hotelService struct {
	repo        repository.HotelRepository
	roomRepo    roomsrepository.RoomRepository
	bookingRepo bookingsrepository.BookingRepository
	validator   *validator.HotelValidator
	cfg         *config.Config
}

func NewHotelService(
	repo repository.HotelRepository,
	roomRepo roomsrepository.RoomRepository,
	bookingRepo bookingsrepository.BookingRepository,
	validator *validator.HotelValidator,
	cfg *config.Config,
) HotelService {
	return &hotelService{
		repo:        repo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *hotelService) Create(ctx context.Context, hotel *model.Hotel) error {
	s.sanitize(hotel)
	hotel.IsActive = true

	if err := s.validate(hotel); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, hotel); err != nil {
		s.cfg.Log.Error("Failed to create hotel", "name", hotel.Name, "error", err)
		return apperrors.Persistence("Failed to create hotel", err)
	}

	s.cfg.Log.Info("Hotel created successfully", "id", hotel.ID, "name", hotel.Name, "city", hotel.City)
	return nil
}

func (s *hotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	hotel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id)
	}

	return hotel, nil
}

func (s *hotelService) GetAll(ctx context.Context, filter model.HotelFilter, limit int, offset int64) ([]*model.Hotel, int64, error) {
	filter.City = sanitizer.NormalizeCity(filter.City)
	filter.Amenities = sanitizer.NormalizeAmenities(filter.Amenities)

	var count int64
	var hotels []*model.Hotel
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count hotels", "error", errCount)
			errCount = apperrors.Persistence("Failed to count hotels", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		hotels, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list hotels", "error", errFind)
			errFind = apperrors.Persistence("Failed to retrieve hotels", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return hotels, count, nil
}

func (s *hotelService) Update(ctx context.Context, id string, updates *model.HotelUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateLookupError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Hotel update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeHotelUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Hotel", id)
		}
		s.cfg.Log.Error("Failed to update hotel", "id", id, "error", err)
		return apperrors.Persistence("Failed to update hotel", err)
	}

	s.cfg.Log.Info("Hotel updated successfully", "id", id)
	return nil
}

func (s *hotelService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Hotel", id)
		}
		if errors.Is(err, hotelserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid hotel ID format")
		}
		return apperrors.Persistence("Failed to delete hotel", err)
	}

	s.cfg.Log.Info("Hotel deleted successfully", "id", id)
	return nil
}

// Availability aggregates room availability for one hotel. Rooms and active
// bookings are fetched concurrently, then projected into a summary.
func (s *hotelService) Availability(ctx context.Context, hotelID string, rng *model.DateRange) (*HotelAvailability, error) {
	if hotelID == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}
	if rng != nil && !rng.IsValid() {
		return nil, apperrors.InvalidRange("check_in must be strictly before check_out")
	}

	if _, err := s.repo.FindByID(ctx, hotelID); err != nil {
		return nil, s.translateLookupError(err, hotelID)
	}

	var rooms []*model.Room
	var bookings []*model.Booking
	var errRooms, errBookings error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		rooms, errRooms = s.roomRepo.FindByHotel(ctx, hotelID)
	}()

	go func() {
		defer wg.Done()
		if rng == nil {
			return
		}
		bookings, errBookings = s.bookingRepo.FindActiveByHotel(ctx, hotelID, rng)
	}()

	wg.Wait()
	if errRooms != nil {
		s.cfg.Log.Error("Failed to fetch rooms for availability", "hotel_id", hotelID, "error", errRooms)
		return nil, apperrors.Persistence("Failed to retrieve rooms", errRooms)
	}
	if errBookings != nil {
		s.cfg.Log.Error("Failed to fetch bookings for availability", "hotel_id", hotelID, "error", errBookings)
		return nil, apperrors.Persistence("Failed to retrieve bookings", errBookings)
	}

	summary := occupancy.Compute(rooms, occupancy.GroupByRoom(bookings), rng)

	return &HotelAvailability{
		HotelID:        hotelID,
		Range:          rng,
		TotalRooms:     summary.TotalRooms,
		AvailableRooms: summary.AvailableRooms,
		OccupancyRate:  summary.OccupancyRate(),
	}, nil
}

// --- Helpers ---

func (s *hotelService) sanitize(h *model.Hotel) {
	h.Name = sanitizer.NormalizeName(h.Name)
	h.Address = sanitizer.NormalizeAddress(h.Address)
	h.City = sanitizer.NormalizeCity(h.City)
	h.State = sanitizer.TrimAndNormalize(h.State)
	h.Country = sanitizer.TrimAndNormalize(h.Country)
	h.Amenities = sanitizer.NormalizeAmenities(h.Amenities)
	h.Images = sanitizer.NormalizeImages(h.Images)
}

func (s *hotelService) validate(hotel *model.Hotel) error {
	if err := s.validator.Validate(hotel); err != nil {
		s.cfg.Log.Warn("Hotel validation failed", "error", err)
		return apperrors.Validation("Hotel validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *hotelService) mergeHotelUpdates(existing *model.Hotel, updates *model.HotelUpdate) *model.Hotel {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.Address != "" {
		merged.Address = updates.Address
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.State != "" {
		merged.State = updates.State
	}
	if updates.Country != "" {
		merged.Country = updates.Country
	}
	if updates.ZipCode != "" {
		merged.ZipCode = updates.ZipCode
	}
	if updates.Contact != "" {
		merged.Contact = updates.Contact
	}
	if updates.Email != "" {
		merged.Email = updates.Email
	}
	if updates.Website != "" {
		merged.Website = updates.Website
	}
	if updates.Images != nil {
		merged.Images = *updates.Images
	}
	if updates.Amenities != nil {
		merged.Amenities = *updates.Amenities
	}
	if updates.PriceRange != nil {
		merged.PriceRange = *updates.PriceRange
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}

	return &merged
}

func (s *hotelService) translateLookupError(err error, id string) error {
	if errors.Is(err, hotelserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Hotel", id)
	}
	if errors.Is(err, hotelserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid hotel ID format")
	}
	return apperrors.Persistence("Failed to retrieve hotel", err)
}
