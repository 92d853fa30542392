package registry

import "errors"

var (
	// ErrInvalidTarget is wrapped by all target validation failures.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrTargetNotFound is returned when removing a target that is not
	// registered.
	ErrTargetNotFound = errors.New("target not found")
)
