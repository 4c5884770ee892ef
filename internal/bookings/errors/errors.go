package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrInvalidRange = errors.New("check-in must be strictly before check-out")

	ErrInvalidRate = errors.New("nightly rate cannot be negative")

	ErrDateConflict = errors.New("booking dates conflict with an existing booking")
)
