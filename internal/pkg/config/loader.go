package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LoadResult is the outcome of loading one configuration value.
type LoadResult[T any] struct {
	Value T

	// Set reports whether the source supplied a usable value.
	Set bool

	// FallbackApplied is true when the source supplied a value that could not
	// be parsed or failed validation, and the default was kept instead.
	FallbackApplied bool

	Warning string
}

// Parser converts a raw string into a typed value.
type Parser[T any] func(string) (T, error)

// Load reads key from src, parses it and validates it. On a missing key the
// default is returned; on a parse or validation error the default is returned
// with FallbackApplied set and a warning describing the rejected input.
func Load[T any](src Source, key string, def T, parse Parser[T], validate func(T) error) LoadResult[T] {
	raw, ok := src.Lookup(key)
	if !ok {
		return LoadResult[T]{Value: def}
	}

	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           def,
			FallbackApplied: true,
			Warning: fmt.Sprintf("Invalid %s='%s' from %s: %v, falling back to '%v'",
				key, raw, src.Name(), err, def),
		}
	}
	return LoadResult[T]{Value: v, Set: true}
}

// ParseString accepts any string, trimmed.
func ParseString(raw string) (string, error) {
	return strings.TrimSpace(raw), nil
}

// ParseInt parses a base-10 integer.
func ParseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer format")
	}
	return n, nil
}

// ParseFloat parses a decimal number.
func ParseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format")
	}
	return f, nil
}

// ParseBool accepts the forms understood by strconv.ParseBool.
func ParseBool(raw string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("invalid boolean format, expected 'true' or 'false'")
	}
	return b, nil
}

// ParseDuration accepts Go duration strings ("5m", "30s") and bare integers,
// which are read as seconds.
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

// ParseList splits a comma separated list, dropping empty elements.
func ParseList(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
