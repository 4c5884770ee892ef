package model

import (
	"time"
)

const nanosPerNight = float64(24 * time.Hour)

// DateRange is the half-open stay interval [CheckIn, CheckOut).
// A checkout on day X does not conflict with a check-in on day X.
type DateRange struct {
	CheckIn  time.Time `json:"check_in" bson:"check_in"`
	CheckOut time.Time `json:"check_out" bson:"check_out"`
}

func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: checkIn, CheckOut: checkOut}
}

// IsValid reports whether the range has positive length.
// Zero-length ranges are rejected before overlap checks run.
func (r DateRange) IsValid() bool {
	return r.CheckIn.Before(r.CheckOut)
}

// Overlaps reports whether two half-open ranges share any instant.
// Degenerate ranges overlap nothing, themselves included.
func (r DateRange) Overlaps(other DateRange) bool {
	if !r.IsValid() || !other.IsValid() {
		return false
	}
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Nights returns the number of billable nights, rounding partial
// days up the way the checkout desk does.
func (r DateRange) Nights() int {
	if !r.IsValid() {
		return 0
	}
	nights := float64(r.CheckOut.Sub(r.CheckIn)) / nanosPerNight
	n := int(nights)
	if nights > float64(n) {
		n++
	}
	return n
}
