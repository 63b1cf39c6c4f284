package pathutil

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidCount is returned when a count path segment is not a non-negative decimal integer.
	ErrInvalidCount = errors.New("invalid count")

	// ErrCountOutOfRange is returned when a count does not fit in an int.
	ErrCountOutOfRange = errors.New("count out of range")
)

// ParseCount parses a non-negative decimal count taken from a URL path.
// Signs, spaces and other characters are rejected; values too large for an
// int yield ErrCountOutOfRange.
//
// Example:
//
//	n, err := ParseCount("5")
//	// Returns: 5, nil
func ParseCount(raw string) (int, error) {
	if raw == "" {
		return 0, ErrInvalidCount
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, ErrInvalidCount
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrCountOutOfRange
		}
		return 0, ErrInvalidCount
	}
	return n, nil
}
