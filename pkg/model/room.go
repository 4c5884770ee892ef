package model

import "time"

// Room types offered by hotels.
const (
	RoomSingleBed   = "Single Bed"
	RoomDoubleBed   = "Double Bed"
	RoomTwinBed     = "Twin Bed"
	RoomQueenBed    = "Queen Bed"
	RoomKingBed     = "King Bed"
	RoomSuite       = "Suite"
	RoomDeluxeSuite = "Deluxe Suite"
)

// Room is read-only to the booking core. IsAvailable is the administrative
// flag set by the hotel owner; it is independent of booking-derived
// availability.
type Room struct {
	ID               string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	HotelID          string    `json:"hotel_id" bson:"hotel_id" validate:"required,mongodb"`
	RoomType         string    `json:"room_type" bson:"room_type" validate:"required,oneof='Single Bed' 'Double Bed' 'Twin Bed' 'Queen Bed' 'King Bed' Suite 'Deluxe Suite'"`
	RoomNumber       string    `json:"room_number" bson:"room_number" validate:"required,min=1,max=10"`
	Description      string    `json:"description" bson:"description" validate:"required,min=2,max=1000"`
	PricePerNight    float64   `json:"price_per_night" bson:"price_per_night" validate:"min=0"`
	Capacity         int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=10"`
	Amenities        []string  `json:"amenities" bson:"amenities" validate:"omitempty,dive,min=1,max=50"`
	Images           []string  `json:"images" bson:"images" validate:"omitempty,dive,url"`
	IsAvailable      bool      `json:"is_available" bson:"is_available"`
	Size             int       `json:"size" bson:"size" validate:"required,min=1"`
	Floor            int       `json:"floor" bson:"floor" validate:"omitempty,min=0"`
	HasBalcony       bool      `json:"has_balcony" bson:"has_balcony"`
	HasOceanView     bool      `json:"has_ocean_view" bson:"has_ocean_view"`
	HasMountainView  bool      `json:"has_mountain_view" bson:"has_mountain_view"`
	IsSmokingAllowed bool      `json:"is_smoking_allowed" bson:"is_smoking_allowed"`
	IsPetFriendly    bool      `json:"is_pet_friendly" bson:"is_pet_friendly"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// RoomUpdate carries the mutable room fields for PATCH requests.
type RoomUpdate struct {
	RoomType      string    `json:"room_type,omitempty" validate:"omitempty,oneof='Single Bed' 'Double Bed' 'Twin Bed' 'Queen Bed' 'King Bed' Suite 'Deluxe Suite'"`
	RoomNumber    string    `json:"room_number,omitempty" validate:"omitempty,min=1,max=10"`
	Description   string    `json:"description,omitempty" validate:"omitempty,min=2,max=1000"`
	PricePerNight *float64  `json:"price_per_night,omitempty" validate:"omitempty,min=0"`
	Capacity      *int      `json:"capacity,omitempty" validate:"omitempty,min=1,max=10"`
	Amenities     *[]string `json:"amenities,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Images        *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
	IsAvailable   *bool     `json:"is_available,omitempty"`
	Size          *int      `json:"size,omitempty" validate:"omitempty,min=1"`
	Floor         *int      `json:"floor,omitempty" validate:"omitempty,min=0"`
}

// RoomFilter narrows room listings.
type RoomFilter struct {
	HotelID     string
	RoomType    string
	MinPrice    *float64
	MaxPrice    *float64
	IsAvailable *bool
}
