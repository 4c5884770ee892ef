package model

import (
	"time"
)

// Booking statuses. Pending and confirmed bookings are "active" and
// participate in conflict detection; cancelled and completed are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	CancelledByUser  = "user"
	CancelledByHotel = "hotel"
	CancelledByAdmin = "admin"
)

const (
	PaymentStripe  = "Stripe"
	PaymentAtHotel = "Pay At Hotel"
	PaymentPayPal  = "PayPal"
)

type Booking struct {
	ID                 string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID             string     `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	RoomID             string     `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	HotelID            string     `json:"hotel_id" bson:"hotel_id" validate:"omitempty,mongodb"`
	CheckInDate        time.Time  `json:"check_in_date" bson:"check_in_date" validate:"required"`
	CheckOutDate       time.Time  `json:"check_out_date" bson:"check_out_date" validate:"required,gtfield=CheckInDate"`
	Guests             int        `json:"guests" bson:"guests" validate:"required,min=1,max=10"`
	TotalPrice         float64    `json:"total_price" bson:"total_price" validate:"min=0"`
	Status             string     `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentMethod      string     `json:"payment_method" bson:"payment_method" validate:"required,oneof=Stripe 'Pay At Hotel' PayPal"`
	IsPaid             bool       `json:"is_paid" bson:"is_paid"`
	PaymentID          string     `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	SpecialRequests    string     `json:"special_requests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=500"`
	CancellationReason string     `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty" validate:"omitempty,max=500"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CancelledBy        string     `json:"cancelled_by,omitempty" bson:"cancelled_by,omitempty" validate:"omitempty,oneof=user hotel admin"`
	CreatedAt          time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt          time.Time  `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// Range returns the stay interval of the booking.
func (b *Booking) Range() DateRange {
	return DateRange{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}

// IsActive reports whether the booking blocks its room's dates.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal reports whether further status transitions are forbidden.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// allowedTransitions is the booking state machine:
// pending -> confirmed|cancelled|completed, confirmed -> cancelled|completed.
// Terminal statuses have no outgoing edges.
var allowedTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether a booking may move between the two statuses.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
