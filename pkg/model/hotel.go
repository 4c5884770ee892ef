package model

import "time"

// Hotel is opaque to the booking core except as the join point for
// occupancy aggregation and event targeting.
type Hotel struct {
	ID           string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description  string     `json:"description" bson:"description" validate:"required,min=2,max=2000"`
	Address      string     `json:"address" bson:"address" validate:"required,min=2,max=200"`
	City         string     `json:"city" bson:"city" validate:"required,min=2,max=100"`
	State        string     `json:"state" bson:"state" validate:"required,min=2,max=100"`
	Country      string     `json:"country" bson:"country" validate:"required,min=2,max=100"`
	ZipCode      string     `json:"zip_code,omitempty" bson:"zip_code,omitempty" validate:"omitempty,max=20"`
	Contact      string     `json:"contact" bson:"contact" validate:"required,min=5,max=30"`
	Email        string     `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Website      string     `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,url"`
	Images       []string   `json:"images" bson:"images" validate:"omitempty,dive,url"`
	Amenities    []string   `json:"amenities" bson:"amenities" validate:"omitempty,dive,min=1,max=50"`
	Rating       float64    `json:"rating" bson:"rating" validate:"min=0,max=5"`
	TotalReviews int        `json:"total_reviews" bson:"total_reviews" validate:"min=0"`
	PriceRange   PriceRange `json:"price_range" bson:"price_range"`
	OwnerID      string     `json:"owner_id" bson:"owner_id" validate:"required,mongodb"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type PriceRange struct {
	Min float64 `json:"min" bson:"min" validate:"min=0"`
	Max float64 `json:"max" bson:"max" validate:"min=0,gtefield=Min"`
}

// HotelUpdate carries the mutable hotel fields for PATCH requests.
type HotelUpdate struct {
	Name         string      `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description  string      `json:"description,omitempty" validate:"omitempty,min=2,max=2000"`
	Address      string      `json:"address,omitempty" validate:"omitempty,min=2,max=200"`
	City         string      `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
	State        string      `json:"state,omitempty" validate:"omitempty,min=2,max=100"`
	Country      string      `json:"country,omitempty" validate:"omitempty,min=2,max=100"`
	ZipCode      string      `json:"zip_code,omitempty" validate:"omitempty,max=20"`
	Contact      string      `json:"contact,omitempty" validate:"omitempty,min=5,max=30"`
	Email        string      `json:"email,omitempty" validate:"omitempty,email"`
	Website      string      `json:"website,omitempty" validate:"omitempty,url"`
	Images       *[]string   `json:"images,omitempty" validate:"omitempty,dive,url"`
	Amenities    *[]string   `json:"amenities,omitempty" validate:"omitempty,dive,min=1,max=50"`
	PriceRange   *PriceRange `json:"price_range,omitempty"`
	IsActive     *bool       `json:"is_active,omitempty"`
}

// HotelFilter narrows hotel listings.
type HotelFilter struct {
	City      string
	MinRating *float64
	Amenities []string
}
