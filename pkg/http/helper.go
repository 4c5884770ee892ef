package http

import (
	"net/http"
	"strconv"
	"time"

	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDateRange parses optional check_in / check_out query parameters.
// Returns nil when neither is supplied; both are required together.
func ExtractDateRange(r *http.Request) (*model.DateRange, error) {
	query := r.URL.Query()
	checkInStr := query.Get("check_in")
	checkOutStr := query.Get("check_out")

	if checkInStr == "" && checkOutStr == "" {
		return nil, nil
	}
	if checkInStr == "" || checkOutStr == "" {
		return nil, apperrors.InvalidInput("check_in and check_out must be supplied together")
	}

	checkIn, err := parseDate(checkInStr)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid check_in format, must be RFC3339 or YYYY-MM-DD")
	}
	checkOut, err := parseDate(checkOutStr)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid check_out format, must be RFC3339 or YYYY-MM-DD")
	}

	rng := model.NewDateRange(checkIn, checkOut)
	if !rng.IsValid() {
		return nil, apperrors.InvalidRange("check_in must be strictly before check_out")
	}
	return &rng, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
