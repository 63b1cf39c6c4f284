package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateEvery checks that d can drive an "@every" cron schedule.
// cron truncates to whole seconds, so anything under a second is rejected.
//
// Example:
//
//	err := ValidateEvery(5 * time.Minute)   // nil
//	err := ValidateEvery(0)                 // error
func ValidateEvery(d time.Duration) error {
	if d < time.Second {
		return fmt.Errorf("interval %v must be at least 1s", d)
	}
	if _, err := cron.ParseStandard("@every " + d.String()); err != nil {
		return fmt.Errorf("invalid interval %v: %w", d, err)
	}
	return nil
}

// ValidateDuration checks that duration is within [min, max].
func ValidateDuration(duration, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}

	if duration < min {
		return fmt.Errorf("duration %v is below minimum %v", duration, min)
	}

	if duration > max {
		return fmt.Errorf("duration %v exceeds maximum %v", duration, max)
	}

	return nil
}

// ValidateIntRange checks that value is within [min, max].
//
// Example:
//
//	err := ValidateIntRange(10000, 1, 65535)  // nil
//	err := ValidateIntRange(0, 1, 65535)      // error: value 0 is below minimum 1
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}

	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}

	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}

	return nil
}

// ValidateFloatRange checks that value is within [min, max].
func ValidateFloatRange(value, min, max float64) error {
	if value < min || value > max {
		return fmt.Errorf("value %g is outside [%g, %g]", value, min, max)
	}
	return nil
}

// ValidateNonNegativeDuration rejects negative durations. Zero is allowed and
// usually means "disabled" or "library default".
func ValidateNonNegativeDuration(duration time.Duration) error {
	if duration < 0 {
		return fmt.Errorf("duration must not be negative, got %v", duration)
	}
	return nil
}

// ValidateNonEmpty rejects empty strings.
func ValidateNonEmpty(value string) error {
	if value == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}
