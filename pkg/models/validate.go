package models

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is the sentinel wrapped by all settings validation
// failures.
var ErrInvalidSettings = errors.New("invalid settings")

// Validate checks the settings invariants: positive timeout, worker count in
// range, non-negative auto-refresh.
func (s Settings) Validate() error {
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout must be a positive number of seconds, got %v", ErrInvalidSettings, s.TimeoutSeconds)
	}

	if s.MaxWorkers < 1 || s.MaxWorkers > MaxWorkersLimit {
		return fmt.Errorf("%w: max workers must be between 1 and %d, got %d", ErrInvalidSettings, MaxWorkersLimit, s.MaxWorkers)
	}

	if s.AutoRefreshSeconds < 0 {
		return fmt.Errorf("%w: auto refresh must be 0 or a positive number of seconds, got %d", ErrInvalidSettings, s.AutoRefreshSeconds)
	}

	if s.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must be 0 or positive, got %v", ErrInvalidSettings, s.RateLimit)
	}

	return nil
}
