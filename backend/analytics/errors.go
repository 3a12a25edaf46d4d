package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by entity drill-downs when the id matches no
	// usage rows. List operations return empty slices instead.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for limit/offset values outside the sane
	// range. Unrecognized range tokens and sort keys are not errors; they
	// fall back to defaults.
	ErrInvalidInput = errors.New("invalid input")
)

const (
	maxLimit  = 500
	maxOffset = 1_000_000
)

// checkLimit validates limit, substituting fallback for an absent (zero)
// value.
func checkLimit(limit, fallback int) (int, error) {
	if limit == 0 {
		return fallback, nil
	}
	if limit < 0 || limit > maxLimit {
		return 0, fmt.Errorf("limit %d out of range [1, %d]: %w", limit, maxLimit, ErrInvalidInput)
	}
	return limit, nil
}

func checkOffset(offset int) error {
	if offset < 0 || offset > maxOffset {
		return fmt.Errorf("offset %d out of range [0, %d]: %w", offset, maxOffset, ErrInvalidInput)
	}
	return nil
}
